package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"fragment-generator/internal/diagnostic"
)

// palette holds per-render color instances so concurrent renders with
// different settings do not share state.
type palette struct {
	err, warn, info, code, loc, help, bold *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:  color.New(color.FgRed, color.Bold),
		warn: color.New(color.FgYellow, color.Bold),
		info: color.New(color.FgCyan, color.Bold),
		code: color.New(color.Faint),
		loc:  color.New(color.FgBlue),
		help: color.New(color.FgGreen),
		bold: color.New(color.Bold),
	}

	for _, c := range []*color.Color{p.err, p.warn, p.info, p.code, p.loc, p.help, p.bold} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return p
}

func (p palette) severity(s diagnostic.DiagnosticSeverity) *color.Color {
	switch s {
	case diagnostic.DiagnosticError:
		return p.err
	case diagnostic.DiagnosticWarning:
		return p.warn
	default:
		return p.info
	}
}

// Diagnostics writes diags in the requested format.
func Diagnostics(w io.Writer, diags diagnostic.Diagnostics, opts Options) error {
	switch opts.Format {
	case FormatJSON:
		return writeJSON(w, diags)
	case FormatShort:
		return writeShort(w, diags, opts)
	case FormatPretty, "":
		return writePretty(w, diags, opts)
	default:
		return fmt.Errorf("unknown format %q", opts.Format)
	}
}

func visible(diags diagnostic.Diagnostics, opts Options) []diagnostic.Diagnostic {
	if opts.Quiet {
		diags.Infos = nil
	}

	return diags.All()
}

func writeShort(w io.Writer, diags diagnostic.Diagnostics, opts Options) error {
	for _, d := range visible(diags, opts) {
		var prefix string
		if loc := d.Location.String(); loc != "" {
			prefix = loc + ": "
		}

		if _, err := fmt.Fprintf(w, "%s%s: %s: %s\n", prefix, d.Severity, d.Code, d.Message); err != nil {
			return err
		}
	}

	return nil
}

func writePretty(w io.Writer, diags diagnostic.Diagnostics, opts Options) error {
	p := newPalette(opts.Color)

	var b strings.Builder

	for _, d := range visible(diags, opts) {
		b.WriteString(p.severity(d.Severity).Sprint(d.Severity.String()))
		b.WriteString(p.code.Sprintf("[%s]", d.Code))
		b.WriteString(": ")
		b.WriteString(p.bold.Sprint(d.Message))
		b.WriteByte('\n')

		if loc := d.Location.String(); loc != "" {
			b.WriteString("  --> ")
			b.WriteString(p.loc.Sprint(loc))
			b.WriteByte('\n')
		}

		if len(d.Suggestions) > 0 {
			b.WriteString("  ")
			b.WriteString(p.help.Sprint("help"))
			b.WriteString(": ")
			b.WriteString(suggestionText(d))
			b.WriteByte('\n')
		}

		b.WriteByte('\n')
	}

	b.WriteString(Summary(diags))
	b.WriteByte('\n')

	_, err := io.WriteString(w, b.String())

	return err
}

func suggestionText(d diagnostic.Diagnostic) string {
	quoted := make([]string, len(d.Suggestions))
	for i, s := range d.Suggestions {
		quoted[i] = fmt.Sprintf("%q", s)
	}

	if d.Kind == diagnostic.DuplicateOutputFilename {
		return "already generated as " + strings.Join(quoted, ", ")
	}

	return "did you mean " + strings.Join(quoted, " or ") + "?"
}

// Summary returns a one-line count of diags, e.g. "1 error, 2 warnings, 0 infos".
func Summary(diags diagnostic.Diagnostics) string {
	return fmt.Sprintf("%s, %s, %s",
		plural(len(diags.Errors), "error"),
		plural(len(diags.Warnings), "warning"),
		plural(len(diags.Infos), "info"))
}

func plural(n int, word string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, word)
	}

	return fmt.Sprintf("%d %ss", n, word)
}

// jsonOutput is the root of the JSON format.
type jsonOutput struct {
	Diagnostics []diagnostic.Diagnostic `json:"diagnostics"`
	Summary     jsonSummary             `json:"summary"`
}

type jsonSummary struct {
	Errors   int `json:"errors"`
	Warnings int `json:"warnings"`
	Infos    int `json:"infos"`
}

func writeJSON(w io.Writer, diags diagnostic.Diagnostics) error {
	out := jsonOutput{
		Diagnostics: diags.All(),
		Summary: jsonSummary{
			Errors:   len(diags.Errors),
			Warnings: len(diags.Warnings),
			Infos:    len(diags.Infos),
		},
	}

	if out.Diagnostics == nil {
		out.Diagnostics = []diagnostic.Diagnostic{}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")

	return enc.Encode(out)
}
