package board

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/llehouerou/voicenotes/internal/keymap"
	"github.com/llehouerou/voicenotes/internal/ui/overlay"
	"github.com/llehouerou/voicenotes/internal/ui/render"
	"github.com/llehouerou/voicenotes/internal/ui/styles"
)

const appTitle = "Voice Notes"

// View renders the board.
func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.header())
	b.WriteString("\n\n")

	body := m.cardsView()
	if m.showHelp {
		body = overlay.Center(body, m.help(), m.width, m.height-headerLines-footerLines)
	}
	b.WriteString(body)

	b.WriteString("\n")
	b.WriteString(m.footer())
	return b.String()
}

func (m Model) header() string {
	t := styles.T()
	left := styles.ApplyBoldGradient(appTitle, t.Primary, t.Secondary)

	right := t.S().Muted.Render(fmt.Sprintf("%d clips", len(m.views)))
	if c := m.board.Playing(); c != nil {
		v := m.views[c.ID()]
		right = t.S().Playing.Render(playGlyph+" ") +
			t.S().Base.Render(render.Truncate(v.Title, max(m.width/3, 8))) +
			t.S().Muted.Render(" "+v.DurationLabel)
	}
	return render.Row(left, right, m.width)
}

func (m Model) cardsView() string {
	first := m.grid.top * m.grid.cols
	last := min(first+m.grid.rows*m.grid.cols, len(m.views))

	var rows []string
	for start := first; start < last; start += m.grid.cols {
		end := min(start+m.grid.cols, last)
		cells := make([]string, 0, end-start)
		for i := start; i < end; i++ {
			cells = append(cells, m.cards[i].render(m.views[i], i == m.cursor))
		}
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	body := lipgloss.JoinVertical(lipgloss.Left, rows...)

	// pad so the footer stays at the bottom
	used := len(rows) * CardHeight
	if avail := m.height - headerLines - footerLines; used < avail {
		body += strings.Repeat("\n", avail-used)
	}
	return body
}

func (m Model) footer() string {
	s := styles.T().S()
	status := render.Truncate(m.status, m.width)
	if m.statusErr {
		status = s.Error.Render(status)
	} else {
		status = s.Muted.Render(status)
	}

	hint := "space play/pause · s stop · b/f/w/c effects · ,/. seek · 0-9 jump · ? help · q quit"
	return status + "\n" + s.Subtle.Render(render.Truncate(hint, m.width))
}

// helpColumns lists the help sections per column, by keymap context.
var helpColumns = [][]struct {
	title   string
	context string
}{
	{{"Playback", "playback"}, {"Effects", "effects"}},
	{{"Board", "board"}, {"General", "global"}},
}

// help renders the key reference as a bordered panel.
func (m Model) help() string {
	t := styles.T()
	s := t.S()
	cols := make([]string, 0, len(helpColumns))
	for _, col := range helpColumns {
		var b strings.Builder
		for i, sec := range col {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(s.Title.Render(sec.title))
			b.WriteString("\n")
			for _, kb := range keymap.ByContext(sec.context) {
				b.WriteString(s.Playing.Render(render.Fit(m.keys.Label(kb.Action), 12)))
				b.WriteString(s.Base.Render(kb.Description))
				b.WriteString("\n")
			}
		}
		cols = append(cols, strings.TrimRight(b.String(), "\n"))
	}
	body := lipgloss.JoinHorizontal(lipgloss.Top, cols[0], "    ", cols[1])
	return styles.CardStyle(t.Primary, true).Padding(0, 2).Render(body)
}
