package board

// Card geometry, in terminal cells. The content area sits inside a one-cell
// border and one cell of horizontal padding.
const (
	CardWidth   = 36
	CardHeight  = 8
	cardInnerW  = CardWidth - 4
	headerLines = 2
	footerLines = 2
)

// Content rows inside a card.
const (
	rowTitle = iota
	rowArtist
	rowWaveform
	rowProgress
	rowButtons
	rowStatus
)

const (
	buttonWidth = 6
	buttonGap   = 1
)

// grid places cards in columns that fit the terminal width, scrolled so
// that rows [top, top+rows) are visible.
type grid struct {
	cols int
	rows int
	top  int
}

func newGrid(width, height int) grid {
	return grid{
		cols: max(1, width/CardWidth),
		rows: max(1, (height-headerLines-footerLines)/CardHeight),
	}
}

// follow scrolls so card i is visible.
func (g grid) follow(i int) grid {
	row := i / g.cols
	if row < g.top {
		g.top = row
	}
	if row >= g.top+g.rows {
		g.top = row - g.rows + 1
	}
	return g
}

// hit is the result of locating a screen cell on the board.
type hit struct {
	card int
	row  int // content row, -1 on the border
	col  int // content column, -1 on border or padding
}

// locate maps a screen cell to the card under it, or ok=false.
func (g grid) locate(x, y, n int) (hit, bool) {
	if x < 0 || y < headerLines {
		return hit{}, false
	}
	c := x / CardWidth
	r := (y-headerLines)/CardHeight + g.top
	if c >= g.cols || r >= g.top+g.rows {
		return hit{}, false
	}
	i := r*g.cols + c
	if i >= n {
		return hit{}, false
	}

	h := hit{card: i, row: -1, col: -1}
	cy := (y-headerLines)%CardHeight - 1
	cx := x%CardWidth - 2
	if cy >= 0 && cy < CardHeight-2 {
		h.row = cy
	}
	if cx >= 0 && cx < cardInnerW {
		h.col = cx
	}
	return h, true
}

// buttonAt returns the index of the effect button under content column col.
func buttonAt(col, count int) (int, bool) {
	if col < 0 {
		return 0, false
	}
	i := col / (buttonWidth + buttonGap)
	if i >= count || col%(buttonWidth+buttonGap) >= buttonWidth {
		return 0, false
	}
	return i, true
}

// scrub is a left-button drag that started on a waveform or progress bar.
type scrub struct {
	active bool
	card   int
	row    int
}

// scrubWidth is the number of seekable columns on a content row.
func scrubWidth(row int) int {
	if row == rowWaveform {
		return WaveformBars
	}
	return cardInnerW
}

// columnFraction maps column col of a w-column bar to [0, 1], the first
// column to the start and the last to the end.
func columnFraction(col, w int) float64 {
	if w <= 1 {
		return 0
	}
	col = min(max(col, 0), w-1)
	return float64(col) / float64(w-1)
}
