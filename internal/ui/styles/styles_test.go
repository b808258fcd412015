package styles

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"
)

func TestCardColor_Cycles(t *testing.T) {
	n := len(CardPalette)
	tests := []struct {
		i    int
		want lipgloss.Color
	}{
		{0, "#075e54"},
		{9, "#feca57"},
		{n, "#075e54"},
		{n + 3, "#34b7f1"},
		{-1, "#feca57"},
	}
	for _, tt := range tests {
		if got := CardColor(tt.i); got != tt.want {
			t.Errorf("CardColor(%d) = %q, want %q", tt.i, got, tt.want)
		}
	}
}

func TestReadable_ReachesContrast(t *testing.T) {
	bg, _ := parseHex(T().BgBase)
	for _, c := range CardPalette {
		got, ok := parseHex(Readable(c))
		if !ok {
			t.Fatalf("Readable(%q) is not hex", c)
		}
		if r := contrast(got, bg); r < 3 {
			t.Errorf("Readable(%q) contrast = %.2f, want >= 3", c, r)
		}
	}
}

func TestReadable_KeepsBrightColors(t *testing.T) {
	if got := Readable("#feca57"); got != "#feca57" {
		t.Errorf("Readable(#feca57) = %q, want unchanged", got)
	}
}

func TestOnColor(t *testing.T) {
	tests := []struct {
		bg   lipgloss.Color
		want lipgloss.Color
	}{
		{"#feca57", "#111b21"},
		{"#075e54", "#ffffff"},
		{"#ffffff", "#111b21"},
		{"#000000", "#ffffff"},
	}
	for _, tt := range tests {
		if got := OnColor(tt.bg); got != tt.want {
			t.Errorf("OnColor(%q) = %q, want %q", tt.bg, got, tt.want)
		}
	}
}

func TestFade(t *testing.T) {
	if got := Fade("#25d366", 0); got != "#25d366" {
		t.Errorf("Fade(t=0) = %q, want unchanged", got)
	}
	if got := Fade("#25d366", 1); got != T().BgBase {
		t.Errorf("Fade(t=1) = %q, want background %q", got, T().BgBase)
	}
	if got := Fade("240", 0.5); got != "240" {
		t.Errorf("Fade(ansi) = %q, want passthrough", got)
	}
}

func TestBlend(t *testing.T) {
	got := Blend(3, "#000000", "#ffffff")
	if len(got) != 3 || got[0] != "#000000" || got[2] != "#ffffff" {
		t.Errorf("Blend endpoints = %v", got)
	}
	if Blend(0, "#000000", "#ffffff") != nil {
		t.Error("Blend(0) should be nil")
	}
	if one := Blend(1, "#123456", "#ffffff"); len(one) != 1 || one[0] != "#123456" {
		t.Errorf("Blend(1) = %v", one)
	}
}

func TestApplyBoldGradient_PreservesText(t *testing.T) {
	text := "Voice Notes 🎙"
	got := ansi.Strip(ApplyBoldGradient(text, T().Primary, T().Secondary))
	if got != text {
		t.Errorf("stripped gradient = %q, want %q", got, text)
	}
	if ApplyBoldGradient("", T().Primary, T().Secondary) != "" {
		t.Error("empty text should render empty")
	}
	if !strings.Contains(ansi.Strip(ApplyBoldGradient("a", "#000000", "#ffffff")), "a") {
		t.Error("single cluster should render")
	}
}
