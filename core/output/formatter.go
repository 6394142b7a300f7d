// Package output provides output formatting interfaces.
// This package produces human and machine-readable pricing reports.
package output

import (
	"io"
	"sort"

	"foody7-pricing/core/analysis"
	"foody7-pricing/internal/errors"
)

// Format represents output format type
type Format string

const (
	// FormatCLI is a human-readable CLI report
	FormatCLI Format = "cli"

	// FormatJSON is machine-readable JSON
	FormatJSON Format = "json"

	// FormatMarkdown is a markdown report
	FormatMarkdown Format = "markdown"
)

// Formatter produces output in a specific format
type Formatter interface {
	// Format returns the format type
	Format() Format

	// Render produces output for the given report
	Render(w io.Writer, report *analysis.Report) error
}

// Options configures the built-in formatters
type Options struct {
	// NoColor disables ANSI colors in cli output
	NoColor bool

	// Quiet hides explanatory notes in cli output
	Quiet bool
}

// Registry manages formatter registration
type Registry struct {
	formatters map[Format]Formatter
}

// NewRegistry returns a registry holding the cli, markdown and json formatters
func NewRegistry(opts Options) *Registry {
	r := &Registry{formatters: make(map[Format]Formatter)}
	for _, f := range []Formatter{
		&CLIFormatter{NoColor: opts.NoColor, Quiet: opts.Quiet},
		&MarkdownFormatter{},
		&JSONFormatter{Indent: "  "},
	} {
		_ = r.Register(f)
	}
	return r
}

// Register adds a formatter to the registry
func (r *Registry) Register(f Formatter) error {
	if _, exists := r.formatters[f.Format()]; exists {
		return errors.Newf(errors.TypeInternal, "formatter %q already registered", f.Format())
	}
	r.formatters[f.Format()] = f
	return nil
}

// GetFormatter returns a formatter for a format type
func (r *Registry) GetFormatter(format Format) (Formatter, error) {
	f, ok := r.formatters[format]
	if !ok {
		return nil, errors.Validation("format", "unknown output format "+string(format)).
			WithContext("available", r.Formats())
	}
	return f, nil
}

// Formats lists registered formats in name order
func (r *Registry) Formats() []string {
	names := make([]string, 0, len(r.formatters))
	for f := range r.formatters {
		names = append(names, string(f))
	}
	sort.Strings(names)
	return names
}
