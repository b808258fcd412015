package board

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/voicenotes/internal/effect"
	"github.com/llehouerou/voicenotes/internal/errmsg"
	"github.com/llehouerou/voicenotes/internal/keymap"
	"github.com/llehouerou/voicenotes/internal/playback"
)

// Update handles messages and returns the updated model and commands.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.grid = newGrid(m.width, m.height).follow(m.cursor)
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.MouseMsg:
		return m.handleMouse(msg)

	case ViewMsg:
		if msg.ID >= 0 && msg.ID < len(m.views) {
			m.views[msg.ID] = playback.View(msg)
		}
		return m, WatchBoard(m.sub)

	case StateMsg, EffectMsg:
		return m, WatchBoard(m.sub)

	case ErrorMsg:
		m.notify(msg.Err.Error(), true)
		return m, WatchBoard(m.sub)

	case NoticeMsg:
		m.notify(msg.Text, false)
		return m, WatchNotices(m.notices)

	case ClosedMsg:
		return m, nil
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	key := msg.String()
	action := m.keys.Resolve(key)

	if m.showHelp && action != keymap.ActionQuit {
		if action == keymap.ActionHelp || key == "esc" {
			m.showHelp = false
		}
		return m, nil
	}

	switch action {
	case keymap.ActionQuit:
		return m, tea.Quit
	case keymap.ActionHelp:
		m.showHelp = true
		return m, nil
	case keymap.ActionMoveLeft:
		m.setCursor(m.cursor - 1)
	case keymap.ActionMoveRight:
		m.setCursor(m.cursor + 1)
	case keymap.ActionMoveUp:
		m.setCursor(m.cursor - m.grid.cols)
	case keymap.ActionMoveDown:
		m.setCursor(m.cursor + m.grid.cols)
	case keymap.ActionJumpStart:
		m.setCursor(0)
	case keymap.ActionJumpEnd:
		m.setCursor(len(m.views) - 1)
	case keymap.ActionStopAll:
		m.board.StopAll()
	default:
		c := m.focused()
		if c == nil {
			return m, nil
		}
		m.runClipAction(c, action, key)
	}

	m.refresh()
	return m, nil
}

func (m *Model) runClipAction(c *playback.Controller, action keymap.Action, key string) {
	switch action {
	case keymap.ActionPlayPause:
		m.report(errmsg.OpClipPlay, c, c.Toggle())
	case keymap.ActionStop:
		c.Stop()
	case keymap.ActionRestart:
		if err := c.Seek(0); err != nil {
			m.report(errmsg.OpClipSeek, c, err)
			return
		}
		if c.State() != playback.StatePlaying {
			m.report(errmsg.OpClipPlay, c, c.Play())
		}
	case keymap.ActionSeekBack:
		m.seekBy(c, -seekStep)
	case keymap.ActionSeekForward:
		m.seekBy(c, seekStep)
	case keymap.ActionSeekTenth:
		if p, ok := m.keys.Fraction(key); ok {
			m.report(errmsg.OpClipSeek, c, c.Seek(p))
		}
	case keymap.ActionEffectBass:
		m.setEffect(c, effect.Bass)
	case keymap.ActionEffectFast:
		m.setEffect(c, effect.Fast)
	case keymap.ActionEffectSlow:
		m.setEffect(c, effect.Slow)
	case keymap.ActionEffectChopped:
		m.setEffect(c, effect.Chopped)
	case keymap.ActionEffectNormal:
		m.report(errmsg.OpEffectSet, c, c.ApplyEffect(effect.Normal))
	}
}

func (m *Model) seekBy(c *playback.Controller, delta float64) {
	d := c.Duration()
	if d <= 0 {
		return
	}
	p := float64(c.Position())/float64(d) + delta
	m.report(errmsg.OpClipSeek, c, c.Seek(p))
}

// setEffect toggles e on c. An effect the engine plays unprocessed is
// reported as a notice, not an error.
func (m *Model) setEffect(c *playback.Controller, e effect.Effect) {
	if err := c.SetEffect(e); err != nil {
		m.report(errmsg.OpEffectSet, c, err)
		return
	}
	if c.View().VisualOnly {
		m.notify(c.Clip().Title+": effect shown without processing", false)
		return
	}
	m.notify("", false)
}

// report shows err in the status bar, or clears it.
func (m *Model) report(op errmsg.Op, c *playback.Controller, err error) {
	if err == nil {
		m.notify("", false)
		return
	}
	m.notify(errmsg.FormatWith(op, c.Clip().Title, err), true)
}

func (m Model) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	switch msg.Action {
	case tea.MouseActionRelease:
		m.scrub = scrub{}
		return m, nil
	case tea.MouseActionMotion:
		if msg.Button == tea.MouseButtonLeft && m.scrub.active && !m.showHelp {
			m.dragTo(msg.X)
			m.refresh()
		}
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.setCursor(m.cursor - m.grid.cols)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.setCursor(m.cursor + m.grid.cols)
		return m, nil
	case tea.MouseButtonLeft:
	default:
		return m, nil
	}
	if msg.Action != tea.MouseActionPress || m.showHelp {
		return m, nil
	}

	h, ok := m.grid.locate(msg.X, msg.Y, len(m.views))
	if !ok {
		return m, nil
	}
	m.setCursor(h.card)
	c := m.focused()

	switch h.row {
	case rowTitle:
		m.report(errmsg.OpClipPlay, c, c.Toggle())
	case rowWaveform, rowProgress:
		if h.col >= 0 && h.col < scrubWidth(h.row) {
			m.scrub = scrub{active: true, card: h.card, row: h.row}
			m.report(errmsg.OpClipSeek, c, c.Seek(columnFraction(h.col, scrubWidth(h.row))))
		}
	case rowButtons:
		if i, ok := buttonAt(h.col, len(effect.Selectable)); ok {
			m.setEffect(c, effect.Selectable[i])
		}
	}

	m.refresh()
	return m, nil
}

// dragTo seeks the scrubbed clip to screen column x. The pointer may leave
// the row or the card while the button is held; x is clamped to the bar.
func (m *Model) dragTo(x int) {
	left := (m.scrub.card%m.grid.cols)*CardWidth + 2
	c := m.board.Controller(m.scrub.card)
	if c == nil {
		m.scrub = scrub{}
		return
	}
	m.report(errmsg.OpClipSeek, c, c.Seek(columnFraction(x-left, scrubWidth(m.scrub.row))))
}
