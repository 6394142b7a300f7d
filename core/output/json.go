package output

import (
	"encoding/json"
	"io"

	"foody7-pricing/core/analysis"
)

// JSONFormatter writes the raw report. Decimals are encoded as strings.
type JSONFormatter struct {
	Indent string
}

// Format returns FormatJSON
func (f *JSONFormatter) Format() Format {
	return FormatJSON
}

// Render encodes the report
func (f *JSONFormatter) Render(w io.Writer, report *analysis.Report) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if f.Indent != "" {
		enc.SetIndent("", f.Indent)
	}
	return enc.Encode(report)
}
