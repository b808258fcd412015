package overlay

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestCompose_ReplacesVisibleSpan(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	over := "\n   XY Z   \n"

	got := Compose(base, over, 10)

	want := "aaaaaaaaaa\nbbbXY Zbbb\ncccccccccc"
	if got != want {
		t.Errorf("Compose() =\n%q\nwant\n%q", got, want)
	}
}

func TestCompose_PadsShortBaseLines(t *testing.T) {
	got := Compose("ab", "    XX", 8)

	if want := "ab  XX  "; got != want {
		t.Errorf("Compose() = %q, want %q", got, want)
	}
}

func TestCompose_IgnoresExtraOverlayLines(t *testing.T) {
	got := Compose("one", "ONE\nTWO", 3)

	if got != "ONE" {
		t.Errorf("Compose() = %q, want %q", got, "ONE")
	}
}

func TestCompose_StyledInputs(t *testing.T) {
	base := lipgloss.NewStyle().Bold(true).Render("0123456789")
	over := "  " + lipgloss.NewStyle().Italic(true).Render("ab")

	got := ansi.Strip(Compose(base, over, 10))

	if got != "01ab456789" {
		t.Errorf("Compose() stripped = %q", got)
	}
}

func TestCenter(t *testing.T) {
	base := strings.TrimSuffix(strings.Repeat(strings.Repeat(".", 9)+"\n", 5), "\n")

	got := Center(base, "#", 9, 5)

	lines := strings.Split(ansi.Strip(got), "\n")
	if len(lines) != 5 {
		t.Fatalf("got %d lines", len(lines))
	}
	if lines[2] != "....#...." {
		t.Errorf("middle line = %q", lines[2])
	}
	if lines[0] != "........." {
		t.Errorf("first line = %q", lines[0])
	}
}
