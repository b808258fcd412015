// Package board is the terminal surface of the voice-note board: a grid of
// clip cards driven by keys and mouse.
package board

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/llehouerou/voicenotes/internal/keymap"
	"github.com/llehouerou/voicenotes/internal/playback"
)

const (
	defaultWidth  = 80
	defaultHeight = 24

	// seekStep is the fraction moved by the seek keys.
	seekStep = 0.05
)

// Model is the bubbletea model of the board.
type Model struct {
	board   *playback.Board
	sub     *playback.Subscription
	notices <-chan string
	keys    *keymap.Resolver

	views []playback.View
	cards []card

	cursor   int
	grid     grid
	width    int
	height   int
	showHelp bool
	scrub    scrub

	status    string
	statusErr bool
}

// New creates the model for b. notices, if non-nil, feeds the status bar.
func New(b *playback.Board, notices <-chan string) Model {
	m := Model{
		board:   b,
		sub:     b.Subscribe(),
		notices: notices,
		keys:    keymap.NewResolver(keymap.Bindings),
		width:   defaultWidth,
		height:  defaultHeight,
	}
	for i, c := range b.Controllers() {
		m.views = append(m.views, c.View())
		m.cards = append(m.cards, newCard(i, c.Clip().Ref))
	}
	m.grid = newGrid(m.width, m.height)
	return m
}

// Init starts listening for board events.
func (m Model) Init() tea.Cmd {
	return tea.Batch(WatchBoard(m.sub), WatchNotices(m.notices))
}

// Cursor returns the focused clip index.
func (m Model) Cursor() int { return m.cursor }

// HelpVisible reports whether the key help is shown.
func (m Model) HelpVisible() bool { return m.showHelp }

// Status returns the status bar text.
func (m Model) Status() string { return m.status }

func (m Model) focused() *playback.Controller {
	return m.board.Controller(m.cursor)
}

// refresh pulls every view directly so the next frame reflects an action
// without waiting for the subscription.
func (m *Model) refresh() {
	for i, c := range m.board.Controllers() {
		m.views[i] = c.View()
	}
}

func (m *Model) setCursor(i int) {
	if len(m.views) == 0 {
		return
	}
	m.cursor = min(max(i, 0), len(m.views)-1)
	m.grid = m.grid.follow(m.cursor)
}

func (m *Model) notify(text string, isErr bool) {
	m.status = text
	m.statusErr = isErr
}
