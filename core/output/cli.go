package output

import (
	"io"

	"foody7-pricing/core/analysis"
	"foody7-pricing/core/ui"
)

// CLIFormatter renders the report for a terminal
type CLIFormatter struct {
	NoColor bool
	Quiet   bool
}

// Format returns FormatCLI
func (f *CLIFormatter) Format() Format {
	return FormatCLI
}

// Render writes every section with aligned tables
func (f *CLIFormatter) Render(w io.Writer, report *analysis.Report) error {
	doc := Project(report)
	out := ui.NewWriter(w, f.NoColor)
	if f.Quiet {
		out.SetVerbosity(0)
	}

	out.Line(out.Color(ui.Bold, doc.Title))
	for i, sec := range doc.Sections {
		out.Header(sectionTitle(i, sec.Title))
		if sec.Subtitle != "" {
			out.Note(sec.Subtitle)
			out.Line("")
		}
		for _, l := range sec.Lead {
			out.Line(l)
		}
		if len(sec.Lead) > 0 {
			out.Line("")
		}
		for _, t := range sec.Tables {
			if t.Caption != "" {
				out.SubHeader(t.Caption)
			}
			tbl := out.NewTable(t.Headers...)
			for col, right := range t.Right {
				if right {
					tbl.SetAlign(col, ui.AlignRight)
				}
			}
			for _, row := range t.Rows {
				tbl.AddRow(row...)
			}
			tbl.Render()
			out.Line("")
		}
		for _, n := range sec.Notes {
			out.Note(n)
		}
		for _, warn := range sec.Warnings {
			out.Warning("%s", warn)
		}
	}
	if doc.Footer != "" {
		out.Line("")
		out.Note(doc.Footer)
	}
	return out.Err()
}
