package dux

import (
	"fmt"
	"io"
	"strings"
)

const (
	// progressWidth is the number of cells in the progress bar.
	progressWidth = 40
	// progressStride throttles redraws to every Nth completion.
	progressStride = 10
)

// progressBar renders a fixed-width completion bar in place on a single
// line. Redraws are throttled so bursts of small children do not flood
// the output. A nil bar is a no-op.
type progressBar struct {
	w         io.Writer
	total     int
	completed int
}

// newProgressBar returns a bar for the given total, or nil when w is nil.
func newProgressBar(w io.Writer, total int) *progressBar {
	if w == nil {
		return nil
	}

	return &progressBar{w: w, total: total}
}

// advance records one completed child and redraws the bar when the count
// is a multiple of the stride or equals the total.
func (p *progressBar) advance() {
	if p == nil {
		return
	}

	p.completed++
	if p.completed%progressStride == 0 || p.completed == p.total {
		p.render()
	}
}

// render draws the bar: filled cells use '>', the rest '-', followed by
// the completed/total counts.
func (p *progressBar) render() {
	filled := 0
	if p.total > 0 {
		filled = progressWidth * p.completed / p.total
	}

	fmt.Fprintf(p.w, "\r[%s%s] %d/%d",
		strings.Repeat(">", filled),
		strings.Repeat("-", progressWidth-filled),
		p.completed, p.total)
}

// clear overwrites the bar line with blanks so the report can print on a
// clean line.
func (p *progressBar) clear() {
	if p == nil {
		return
	}

	fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", progressWidth+20))
}
