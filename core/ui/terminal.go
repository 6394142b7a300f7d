// Package ui - Terminal user interface
// Section headers, aligned tables, and colors for the cli report.
package ui

import (
	"fmt"
	"io"
	"os"
	"strings"
	"unicode/utf8"
)

// Colors for terminal output
const (
	Reset  = "\033[0m"
	Bold   = "\033[1m"
	Dim    = "\033[2m"
	Green  = "\033[32m"
	Yellow = "\033[33m"
	Blue   = "\033[34m"
	Cyan   = "\033[36m"
)

// Writer is the UI output destination
type Writer struct {
	out       io.Writer
	noColor   bool
	verbosity int
	err       error
}

// NewWriter creates a UI writer
func NewWriter(out io.Writer, noColor bool) *Writer {
	if out == nil {
		out = os.Stdout
	}
	return &Writer{
		out:       out,
		noColor:   noColor,
		verbosity: 1,
	}
}

// SetVerbosity sets output verbosity (0=quiet, 1=normal, 2=verbose)
func (w *Writer) SetVerbosity(level int) {
	w.verbosity = level
}

// Err returns the first write error, if any
func (w *Writer) Err() error {
	return w.err
}

// Color applies color if enabled
func (w *Writer) Color(c, text string) string {
	if w.noColor {
		return text
	}
	return c + text + Reset
}

func (w *Writer) write(s string) {
	if w.err != nil {
		return
	}
	_, w.err = io.WriteString(w.out, s)
}

// Line writes text verbatim with newline
func (w *Writer) Line(text string) {
	w.write(text + "\n")
}

// Header prints a section header
func (w *Writer) Header(title string) {
	w.Line("")
	w.Line(w.Color(Bold+Cyan, "━━━ "+title+" ━━━"))
	w.Line("")
}

// SubHeader prints a subsection header
func (w *Writer) SubHeader(title string) {
	w.Line(w.Color(Bold, "▸ "+title))
}

// Success prints a success message
func (w *Writer) Success(format string, args ...interface{}) {
	w.Line(w.Color(Green, "✓ ") + fmt.Sprintf(format, args...))
}

// Warning prints a warning
func (w *Writer) Warning(format string, args ...interface{}) {
	w.Line(w.Color(Yellow, "⚠ ") + fmt.Sprintf(format, args...))
}

// Info prints an info message
func (w *Writer) Info(format string, args ...interface{}) {
	if w.verbosity < 1 {
		return
	}
	w.Line(w.Color(Blue, "ℹ ") + fmt.Sprintf(format, args...))
}

// Note prints dimmed explanatory text
func (w *Writer) Note(text string) {
	if w.verbosity < 1 {
		return
	}
	w.Line(w.Color(Dim, text))
}

// Align is a column alignment
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table renders a table
type Table struct {
	w       *Writer
	headers []string
	align   []Align
	rows    [][]string
	widths  []int
}

// NewTable creates a table
func (w *Writer) NewTable(headers ...string) *Table {
	widths := make([]int, len(headers))
	for i, h := range headers {
		widths[i] = utf8.RuneCountInString(h)
	}
	return &Table{
		w:       w,
		headers: headers,
		align:   make([]Align, len(headers)),
		rows:    [][]string{},
		widths:  widths,
	}
}

// SetAlign sets the alignment of column i
func (t *Table) SetAlign(i int, a Align) *Table {
	if i >= 0 && i < len(t.align) {
		t.align[i] = a
	}
	return t
}

// AddRow adds a row to the table
func (t *Table) AddRow(cells ...string) {
	// Pad or truncate cells to match header count
	row := make([]string, len(t.headers))
	for i := range row {
		if i < len(cells) {
			row[i] = cells[i]
		}
		if n := utf8.RuneCountInString(row[i]); n > t.widths[i] {
			t.widths[i] = n
		}
	}
	t.rows = append(t.rows, row)
}

func (t *Table) line(cells []string) string {
	var b strings.Builder
	for i, cell := range cells {
		if i > 0 {
			b.WriteString(" │ ")
		}
		if t.align[i] == AlignRight {
			fmt.Fprintf(&b, "%*s", t.widths[i], cell)
		} else {
			fmt.Fprintf(&b, "%-*s", t.widths[i], cell)
		}
	}
	return strings.TrimRight(b.String(), " ")
}

// Render prints the table
func (t *Table) Render() {
	t.w.Line(t.w.Color(Bold, t.line(t.headers)))

	sep := ""
	for i, w := range t.widths {
		if i > 0 {
			sep += "─┼─"
		}
		sep += strings.Repeat("─", w)
	}
	t.w.Line(sep)

	for _, row := range t.rows {
		t.w.Line(t.line(row))
	}
}

// Box prints lines inside a rounded frame
func (w *Writer) Box(title string, lines []string) {
	width := utf8.RuneCountInString(title)
	for _, l := range lines {
		if n := utf8.RuneCountInString(l); n > width {
			width = n
		}
	}
	border := strings.Repeat("─", width+2)
	w.Line(w.Color(Bold, "╭"+border+"╮"))
	w.Line(w.Color(Bold, "│ ") + w.Color(Green, fmt.Sprintf("%-*s", width, title)) + w.Color(Bold, " │"))
	w.Line(w.Color(Bold, "├"+border+"┤"))
	for _, l := range lines {
		w.Line(w.Color(Bold, "│ ") + fmt.Sprintf("%-*s", width, l) + w.Color(Bold, " │"))
	}
	w.Line(w.Color(Bold, "╰"+border+"╯"))
}
