package diagnostic

import (
	"fmt"

	"fragment-generator/internal/common"
	"fragment-generator/internal/decl"
)

// Diagnostics holds all diagnostics surfaced by one generator run.
type Diagnostics struct {
	Errors   []Diagnostic `msgpack:"errors"   json:"errors,omitempty"`
	Warnings []Diagnostic `msgpack:"warnings" json:"warnings,omitempty"`
	Infos    []Diagnostic `msgpack:"infos"    json:"infos,omitempty"`
}

// Diagnostic represents a single rendered diagnostic message.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity DiagnosticSeverity `msgpack:"severity" json:"severity"`
	// Kind is the class of the diagnostic.
	Kind Kind `msgpack:"kind" json:"-"`
	// Code is the stable identifier of the Kind (e.g. "AMFC0001").
	Code string `msgpack:"code" json:"code"`
	// Message is the human-readable description.
	Message string `msgpack:"message" json:"message"`
	// Location points at the offending declaration.
	Location decl.Location `msgpack:"location" json:"location"`
	// Suggestions are potential fixes or alternatives.
	Suggestions []string `msgpack:"suggestions" json:"suggestions,omitempty"`
}

// DiagnosticSeverity represents the severity level of a diagnostic.
type DiagnosticSeverity int

const (
	DiagnosticInfo DiagnosticSeverity = iota
	DiagnosticWarning
	DiagnosticError
)

// String returns a human-readable severity name.
func (s DiagnosticSeverity) String() string {
	switch s {
	case DiagnosticInfo:
		return "info"
	case DiagnosticWarning:
		return "warning"
	case DiagnosticError:
		return "error"
	default:
		return common.UnknownStr
	}
}

// MarshalText implements encoding.TextMarshaler so JSON output carries the name.
func (s DiagnosticSeverity) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *DiagnosticSeverity) UnmarshalText(text []byte) error {
	switch string(text) {
	case "info":
		*s = DiagnosticInfo
	case "warning":
		*s = DiagnosticWarning
	case "error":
		*s = DiagnosticError
	default:
		return fmt.Errorf("unknown severity %q", string(text))
	}

	return nil
}

// Report renders info and files it under its severity. A nil info is the
// silent-drop case and is ignored.
func (d *Diagnostics) Report(info *Info) {
	if info == nil {
		return
	}

	d.add(info.Diagnostic())
}

// ReportAll reports every info in order.
func (d *Diagnostics) ReportAll(infos []*Info) {
	for _, info := range infos {
		d.Report(info)
	}
}

func (d *Diagnostics) add(diag Diagnostic) {
	switch diag.Severity {
	case DiagnosticError:
		d.Errors = append(d.Errors, diag)
	case DiagnosticWarning:
		d.Warnings = append(d.Warnings, diag)
	default:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic that has no registered Kind.
func (d *Diagnostics) AddError(code, message string, loc decl.Location) {
	d.add(Diagnostic{Severity: DiagnosticError, Code: code, Message: message, Location: loc})
}

// AddWarning adds a warning diagnostic that has no registered Kind.
func (d *Diagnostics) AddWarning(code, message string, loc decl.Location) {
	d.add(Diagnostic{Severity: DiagnosticWarning, Code: code, Message: message, Location: loc})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// All returns errors, then warnings, then infos, each in reporting order.
func (d *Diagnostics) All() []Diagnostic {
	out := make([]Diagnostic, 0, d.Len())
	out = append(out, d.Errors...)
	out = append(out, d.Warnings...)

	return append(out, d.Infos...)
}

// OfKind returns the diagnostics of the given kind in All order.
func (d *Diagnostics) OfKind(kind Kind) []Diagnostic {
	return common.FilterFunc(d.All(), func(diag Diagnostic) bool {
		return diag.Kind == kind
	})
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// IsValid returns true if there are no errors.
func (d *Diagnostics) IsValid() bool {
	return len(d.Errors) == 0
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if loc := d.Location.String(); loc != "" {
		return loc + ": " + msg
	}

	return msg
}
