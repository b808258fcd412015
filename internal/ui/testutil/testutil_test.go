package testutil

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

func TestStripANSI(t *testing.T) {
	styled := lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#25d366")).Render("hello")
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "hello", "hello"},
		{"sgr", "\x1b[1;31mhello\x1b[0m", "hello"},
		{"lipgloss", styled, "hello"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := StripANSI(tt.input); got != tt.want {
				t.Errorf("StripANSI(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestFindLine(t *testing.T) {
	out := "first\nsecond line\nthird"
	if got := FindLine(out, "second"); got != "second line" {
		t.Errorf("FindLine = %q", got)
	}
	if got := FindLine(out, "missing"); got != "" {
		t.Errorf("FindLine(missing) = %q", got)
	}
	if got := FindLineIndex(out, "third"); got != 2 {
		t.Errorf("FindLineIndex = %d, want 2", got)
	}
	if got := FindLineIndex(out, "missing"); got != -1 {
		t.Errorf("FindLineIndex(missing) = %d, want -1", got)
	}
	if !ContainsLine(out, "line") || ContainsLine(out, "fourth") {
		t.Error("ContainsLine mismatch")
	}
}

func TestSplitLines(t *testing.T) {
	got := SplitLines("a\nb\n\n  \n")
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("SplitLines = %q", got)
	}
}

func TestKeyMsg_RoundTrips(t *testing.T) {
	for _, key := range []string{"a", " ", "left", "enter", "ctrl+c", ",", "9"} {
		if got := KeyMsg(key).String(); got != key {
			t.Errorf("KeyMsg(%q).String() = %q", key, got)
		}
	}
}

type echoModel struct {
	keys   []string
	width  int
	clicks int
}

func (m echoModel) Init() tea.Cmd { return func() tea.Msg { return "init" } }

func (m echoModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.keys = append(m.keys, msg.String())
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.MouseMsg:
		m.clicks++
		return m, func() tea.Msg { return "clicked" }
	}
	return m, nil
}

func (m echoModel) View() string { return "\x1b[1mecho\x1b[0m" }

func TestHarness(t *testing.T) {
	h := NewHarness(echoModel{})
	if len(h.Commands()) != 1 || ExecuteCmd(h.Commands()[0]) != "init" {
		t.Fatal("Init command not collected")
	}

	h.SendKey("q")
	h.Resize(80, 24)
	cmd := h.Click(3, 4)

	m := h.Model().(echoModel)
	if len(m.keys) != 1 || m.keys[0] != "q" || m.width != 80 || m.clicks != 1 {
		t.Errorf("model = %+v", m)
	}
	if ExecuteCmd(cmd) != "clicked" {
		t.Error("click command not returned")
	}
	if !h.ViewContains("echo") {
		t.Error("ViewContains should strip styling")
	}
	if ExecuteCmd(nil) != nil {
		t.Error("ExecuteCmd(nil) should be nil")
	}
}
