package testutil

import (
	tea "github.com/charmbracelet/bubbletea"
)

// Harness drives a tea.Model in tests: it feeds messages, keeps the updated
// model and collects the returned commands.
type Harness struct {
	model tea.Model
	cmds  []tea.Cmd
}

// NewHarness wraps m and records its Init command.
func NewHarness(m tea.Model) *Harness {
	h := &Harness{model: m}
	if cmd := m.Init(); cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return h
}

// Model returns the current model.
func (h *Harness) Model() tea.Model {
	return h.model
}

// View returns the rendered model.
func (h *Harness) View() string {
	return h.model.View()
}

// Send feeds msg to the model and returns the resulting command.
func (h *Harness) Send(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	h.model, cmd = h.model.Update(msg)
	if cmd != nil {
		h.cmds = append(h.cmds, cmd)
	}
	return cmd
}

// Resize sends a window size message.
func (h *Harness) Resize(width, height int) tea.Cmd {
	return h.Send(tea.WindowSizeMsg{Width: width, Height: height})
}

// SendKey sends a key by its tea.KeyMsg.String() name: "a", " ", "left",
// "enter", "ctrl+c".
func (h *Harness) SendKey(key string) tea.Cmd {
	return h.Send(KeyMsg(key))
}

// Click sends a left-button press at cell (x, y).
func (h *Harness) Click(x, y int) tea.Cmd {
	return h.Send(tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
}

// Drag sends a left-button motion to cell (x, y).
func (h *Harness) Drag(x, y int) tea.Cmd {
	return h.Send(tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionMotion,
		Button: tea.MouseButtonLeft,
	})
}

// Release sends a left-button release at cell (x, y).
func (h *Harness) Release(x, y int) tea.Cmd {
	return h.Send(tea.MouseMsg{
		X:      x,
		Y:      y,
		Action: tea.MouseActionRelease,
		Button: tea.MouseButtonLeft,
	})
}

// Commands returns every command collected so far.
func (h *Harness) Commands() []tea.Cmd {
	return h.cmds
}

// ViewContains reports whether the unstyled view contains substr.
func (h *Harness) ViewContains(substr string) bool {
	return ContainsLine(StripANSI(h.View()), substr)
}

var specialKeys = map[string]tea.KeyType{
	"enter":  tea.KeyEnter,
	"esc":    tea.KeyEscape,
	"tab":    tea.KeyTab,
	"up":     tea.KeyUp,
	"down":   tea.KeyDown,
	"left":   tea.KeyLeft,
	"right":  tea.KeyRight,
	"home":   tea.KeyHome,
	"end":    tea.KeyEnd,
	" ":      tea.KeySpace,
	"ctrl+c": tea.KeyCtrlC,
}

// KeyMsg builds the tea.KeyMsg whose String() is key.
func KeyMsg(key string) tea.KeyMsg {
	if t, ok := specialKeys[key]; ok {
		if t == tea.KeySpace {
			return tea.KeyMsg{Type: t, Runes: []rune{' '}}
		}
		return tea.KeyMsg{Type: t}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(key)}
}

// ExecuteCmd runs cmd and returns its message, or nil for a nil cmd.
func ExecuteCmd(cmd tea.Cmd) tea.Msg {
	if cmd == nil {
		return nil
	}
	return cmd()
}
