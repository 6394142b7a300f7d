package output

import (
	"fmt"
	"io"
	"strings"

	"foody7-pricing/core/analysis"
)

// MarkdownFormatter renders the report as GitHub-flavoured markdown
type MarkdownFormatter struct{}

// Format returns FormatMarkdown
func (f *MarkdownFormatter) Format() Format {
	return FormatMarkdown
}

// Render writes the same tables as the cli format
func (f *MarkdownFormatter) Render(w io.Writer, report *analysis.Report) error {
	doc := Project(report)
	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n", doc.Title)
	for i, sec := range doc.Sections {
		fmt.Fprintf(&b, "\n## %s\n\n", sectionTitle(i, sec.Title))
		if sec.Subtitle != "" {
			fmt.Fprintf(&b, "_%s_\n\n", sec.Subtitle)
		}
		for _, l := range sec.Lead {
			fmt.Fprintf(&b, "%s\n\n", l)
		}
		for _, t := range sec.Tables {
			if t.Caption != "" {
				fmt.Fprintf(&b, "**%s**\n\n", t.Caption)
			}
			writeMarkdownTable(&b, t)
			b.WriteString("\n")
		}
		for _, n := range sec.Notes {
			fmt.Fprintf(&b, "- %s\n", n)
		}
		for _, warn := range sec.Warnings {
			fmt.Fprintf(&b, "\n> ⚠ %s\n", warn)
		}
	}
	if doc.Footer != "" {
		fmt.Fprintf(&b, "\n---\n\n<sub>%s</sub>\n", doc.Footer)
	}

	_, err := io.WriteString(w, b.String())
	return err
}

func writeMarkdownTable(b *strings.Builder, t Table) {
	b.WriteString("|")
	for _, h := range t.Headers {
		fmt.Fprintf(b, " %s |", markdownCell(h))
	}
	b.WriteString("\n|")
	for i := range t.Headers {
		if t.Right[i] {
			b.WriteString(" ---: |")
		} else {
			b.WriteString(" --- |")
		}
	}
	b.WriteString("\n")
	for _, row := range t.Rows {
		b.WriteString("|")
		for i := range t.Headers {
			cell := ""
			if i < len(row) {
				cell = row[i]
			}
			fmt.Fprintf(b, " %s |", markdownCell(cell))
		}
		b.WriteString("\n")
	}
}

func markdownCell(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), "|", `\|`)
}

func sectionTitle(i int, title string) string {
	return fmt.Sprintf("%d. %s", i+1, title)
}
