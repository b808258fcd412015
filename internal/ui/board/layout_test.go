package board

import (
	"testing"
)

func TestNewGrid(t *testing.T) {
	tests := []struct {
		w, h       int
		cols, rows int
	}{
		{80, 24, 2, 2},
		{20, 5, 1, 1},
		{200, 60, 5, 7},
	}
	for _, tt := range tests {
		g := newGrid(tt.w, tt.h)
		if g.cols != tt.cols || g.rows != tt.rows {
			t.Errorf("newGrid(%d, %d) = %d cols %d rows, want %d, %d", tt.w, tt.h, g.cols, g.rows, tt.cols, tt.rows)
		}
	}
}

func TestGrid_Follow(t *testing.T) {
	g := grid{cols: 2, rows: 2}

	g = g.follow(5)
	if g.top != 1 {
		t.Errorf("follow(5).top = %d, want 1", g.top)
	}
	g = g.follow(7)
	if g.top != 2 {
		t.Errorf("follow(7).top = %d, want 2", g.top)
	}
	g = g.follow(0)
	if g.top != 0 {
		t.Errorf("follow(0).top = %d, want 0", g.top)
	}
}

func TestGrid_Locate(t *testing.T) {
	g := grid{cols: 2, rows: 2}
	tests := []struct {
		name   string
		x, y   int
		n      int
		want   hit
		wantOK bool
	}{
		{"header", 5, 0, 4, hit{}, false},
		{"first card top border", 5, headerLines, 4, hit{card: 0, row: -1, col: 3}, true},
		{"first card title", 2, headerLines + 1, 4, hit{card: 0, row: 0, col: 0}, true},
		{"second card buttons", CardWidth + 9, headerLines + 5, 4, hit{card: 1, row: 4, col: 7}, true},
		{"left padding", CardWidth + 1, headerLines + 1, 4, hit{card: 1, row: 0, col: -1}, true},
		{"second row", 3, headerLines + CardHeight + 3, 4, hit{card: 2, row: 2, col: 1}, true},
		{"missing card", CardWidth + 3, headerLines + CardHeight + 1, 3, hit{}, false},
		{"beyond columns", 2*CardWidth + 3, headerLines + 1, 4, hit{}, false},
		{"below visible rows", 3, headerLines + 2*CardHeight + 1, 8, hit{}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := g.locate(tt.x, tt.y, tt.n)
			if ok != tt.wantOK || (ok && got != tt.want) {
				t.Errorf("locate(%d, %d) = %+v, %v; want %+v, %v", tt.x, tt.y, got, ok, tt.want, tt.wantOK)
			}
		})
	}
}

func TestGrid_LocateScrolled(t *testing.T) {
	g := grid{cols: 2, rows: 1, top: 3}

	got, ok := g.locate(CardWidth+2, headerLines+1, 10)

	if !ok || got.card != 7 {
		t.Errorf("locate on scrolled grid = %+v, %v; want card 7", got, ok)
	}
}

func TestButtonAt(t *testing.T) {
	tests := []struct {
		col    int
		want   int
		wantOK bool
	}{
		{0, 0, true},
		{5, 0, true},
		{6, 0, false},
		{7, 1, true},
		{14, 2, true},
		{19, 2, true},
		{20, 0, false},
		{21, 3, true},
		{26, 3, true},
		{27, 0, false},
		{28, 0, false},
		{-1, 0, false},
	}
	for _, tt := range tests {
		got, ok := buttonAt(tt.col, 4)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("buttonAt(%d) = %d, %v; want %d, %v", tt.col, got, ok, tt.want, tt.wantOK)
		}
	}
}

func TestWaveform(t *testing.T) {
	a := Waveform("/audio/a.mp3", WaveformBars)
	again := Waveform("/audio/a.mp3", WaveformBars)
	b := Waveform("/audio/b.mp3", WaveformBars)

	if len(a) != WaveformBars {
		t.Fatalf("len = %d, want %d", len(a), WaveformBars)
	}
	same := true
	for i := range a {
		if a[i] != again[i] {
			t.Fatalf("bar %d differs between calls", i)
		}
		if a[i] < 0.15 || a[i] > 1 {
			t.Errorf("bar %d = %v out of range", i, a[i])
		}
		if a[i] != b[i] {
			same = false
		}
	}
	if same {
		t.Error("different refs produced the same waveform")
	}
}

func TestColumnFraction(t *testing.T) {
	tests := []struct {
		col, w int
		want   float64
	}{
		{0, WaveformBars, 0},
		{WaveformBars - 1, WaveformBars, 1},
		{cardInnerW - 1, cardInnerW, 1},
		{-4, cardInnerW, 0},
		{cardInnerW + 4, cardInnerW, 1},
		{2, 5, 0.5},
		{0, 1, 0},
	}
	for _, tt := range tests {
		if got := columnFraction(tt.col, tt.w); got != tt.want {
			t.Errorf("columnFraction(%d, %d) = %v, want %v", tt.col, tt.w, got, tt.want)
		}
	}
}
