// Package reflow recomputes line wrapping for a new terminal width and
// redraws history in place.
//
// Rows are resegmented from scratch on every geometry change; nothing
// is cached across widths. Only newline and carriage return are
// understood structurally: a newline closes a row, a carriage return
// rewinds the cursor so later characters overwrite earlier columns.
// Any other escape-sequence byte in history is a hard fault, because
// redrawing it at a different width could silently corrupt the screen.
//
// Rows wider than the terminal are wrapped by the terminal itself; the
// redraw only intervenes for rows that no longer fit, eliding excess
// repeats of long homogeneous runs (progress-bar fill and the like) so
// they shrink plausibly. Runs are never lengthened to fill extra
// width.
package reflow

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"
)

// ErrEscapeSequence is returned when history contains an escape
// character. Aborting beats mis-rendering; a cursor-movement-aware
// model would be needed to do better.
var ErrEscapeSequence = errors.New("escape sequence in history, refusing to redraw")

// TermRow is one logical row of output.
type TermRow struct {
	// Cols is the rightmost 0-indexed column ever written in this row,
	// surviving carriage-return overwrites.
	Cols int
	// Text is the slice of history spanning this row, carriage returns
	// included, the terminating newline excluded.
	Text []rune
}

// Result is the transient outcome of resegmenting history at a width.
type Result struct {
	// Lines is the total number of visual lines the rows occupy.
	Lines int
	// Rows are the logical rows in print order.
	Rows []TermRow
}

// Engine turns history plus a terminal width into redraw output.
type Engine struct {
	// threshold is the minimum consecutive repeat count before
	// compaction may elide characters.
	threshold int
	log       *zap.Logger
}

// NewEngine creates an engine with the given compaction threshold.
func NewEngine(threshold int, log *zap.Logger) *Engine {
	return &Engine{threshold: threshold, log: log}
}

// Segment walks history once, left to right, splitting it into rows
// and tracking the rightmost column each row ever reached.
func Segment(history []rune) ([]TermRow, error) {
	var rows []TermRow
	start := 0   // history index where the current row begins
	col := 1     // 1-indexed cursor column
	tracked := 0 // rightmost 0-indexed column written in this row

	for i, r := range history {
		switch r {
		case '\n':
			rows = append(rows, TermRow{Cols: tracked, Text: history[start:i]})
			start = i + 1
			col = 1
			tracked = 0
		case '\r':
			col = 1
		case 0x1b:
			return nil, ErrEscapeSequence
		default:
			col++
			if col-1 > tracked {
				tracked = col - 1
			}
		}
	}
	if tracked > 0 {
		rows = append(rows, TermRow{Cols: tracked, Text: history[start:]})
	}
	return rows, nil
}

// CountLines sums the visual lines the rows occupy at the given width:
// ceil(cols/width) per row, so an empty row contributes none and an
// exact multiple does not round up.
func CountLines(rows []TermRow, width int) int {
	if width <= 0 {
		return 0
	}
	total := 0
	for _, row := range rows {
		total += (row.Cols + width - 1) / width
	}
	return total
}

// Plan resegments history and counts its visual lines at the width.
func Plan(history []rune, width int) (Result, error) {
	rows, err := Segment(history)
	if err != nil {
		return Result{}, err
	}
	return Result{Lines: CountLines(rows, width), Rows: rows}, nil
}

// Redraw recomputes the layout for the new width and repaints every
// row in place: one relative cursor-up movement over the whole block,
// then per row a clear, the row text (compacted if it no longer fits),
// and a line break. Redraw is a pure reader of history; any write
// failure is fatal I/O.
func (e *Engine) Redraw(w io.Writer, history []rune, width int) error {
	plan, err := Plan(history, width)
	if err != nil {
		return err
	}
	if len(plan.Rows) == 0 {
		return nil
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "\r\x1b[%dF", plan.Lines)
	for _, row := range plan.Rows {
		buf.WriteString("\r\x1b[0K")
		if row.Cols <= width {
			buf.WriteString(string(row.Text))
		} else {
			e.compact(&buf, row, width)
		}
		buf.WriteByte('\n')
	}

	if _, err := w.Write(buf.Bytes()); err != nil {
		return fmt.Errorf("writing redraw: %w", err)
	}
	e.log.Debug("redraw complete",
		zap.Int("width", width),
		zap.Int("rows", len(plan.Rows)),
		zap.Int("visual_lines", plan.Lines))
	return nil
}

// compact re-walks a row that no longer fits, reproducing
// carriage-return resets and skipping repeats of the active character
// once it has run at least threshold times and the remainder of the
// row would overflow the space left on the current visual line.
func (e *Engine) compact(buf *bytes.Buffer, row TermRow, width int) {
	col := 1
	var prev rune
	run := 0

	for i, r := range row.Text {
		if r == '\r' {
			buf.WriteRune('\r')
			col = 1
			prev = 0
			run = 0
			continue
		}

		if r == prev {
			run++
		} else {
			prev = r
			run = 1
		}

		remaining := len(row.Text) - i
		space := width - (col - 1)
		if remaining > space && run >= e.threshold {
			continue
		}

		buf.WriteRune(r)
		col++
		if col > width {
			// The terminal wraps here on its own.
			col = 1
		}
	}
}
