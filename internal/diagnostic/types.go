package diagnostic

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
)

// Diagnostics holds the data-quality findings of a load or check pass.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic represents a single finding.
type Diagnostic struct {
	// Severity of the diagnostic.
	Severity Severity
	// Code is a stable identifier for this kind of finding, e.g. "duplicate_location".
	Code string
	// Message is the human-readable description.
	Message string
	// Subject names the record the finding is about (a company or item identifier).
	Subject string
	// Field names the offending field of the record (if any).
	Field string
	// Suggestions are potential fixes, e.g. similarly named companies.
	Suggestions []string
}

// Severity represents the severity level of a diagnostic.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns a human-readable severity name.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, subject, field string) {
	d.Errors = append(d.Errors, Diagnostic{
		Severity: SeverityError,
		Code:     code,
		Message:  message,
		Subject:  subject,
		Field:    field,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, subject, field string) {
	d.Warnings = append(d.Warnings, Diagnostic{
		Severity: SeverityWarning,
		Code:     code,
		Message:  message,
		Subject:  subject,
		Field:    field,
	})
}

// AddInfo adds an info diagnostic with optional suggestions.
func (d *Diagnostics) AddInfo(code, message, subject, field string, suggestions ...string) {
	d.Infos = append(d.Infos, Diagnostic{
		Severity:    SeverityInfo,
		Code:        code,
		Message:     message,
		Subject:     subject,
		Field:       field,
		Suggestions: suggestions,
	})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the total number of diagnostics of every severity.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
// A nil other is a no-op.
func (d *Diagnostics) Merge(other *Diagnostics) {
	if other == nil {
		return
	}

	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// All returns every diagnostic, errors first, then warnings, then infos.
func (d *Diagnostics) All() []Diagnostic {
	all := make([]Diagnostic, 0, d.Len())
	all = append(all, d.Errors...)
	all = append(all, d.Warnings...)
	all = append(all, d.Infos...)

	return all
}

// WithCode returns the diagnostics of any severity carrying the given code.
func (d *Diagnostics) WithCode(code string) []Diagnostic {
	var out []Diagnostic

	for _, diag := range d.All() {
		if diag.Code == code {
			out = append(out, diag)
		}
	}

	return out
}

// Error returns a combined error from all error diagnostics, or nil if there are none.
func (d *Diagnostics) Error() error {
	if !d.HasErrors() {
		return nil
	}

	parts := make([]string, 0, len(d.Errors))
	for _, e := range d.Errors {
		parts = append(parts, e.String())
	}

	return errors.New(strings.Join(parts, "; "))
}

// Log writes every diagnostic to logger at the level matching its severity.
func (d *Diagnostics) Log(logger *slog.Logger) {
	for _, diag := range d.All() {
		attrs := []any{slog.String("code", diag.Code)}
		if diag.Subject != "" {
			attrs = append(attrs, slog.String("subject", diag.Subject))
		}

		if diag.Field != "" {
			attrs = append(attrs, slog.String("field", diag.Field))
		}

		if len(diag.Suggestions) > 0 {
			attrs = append(attrs, slog.Any("suggestions", diag.Suggestions))
		}

		switch diag.Severity {
		case SeverityError:
			logger.Error(diag.Message, attrs...)
		case SeverityWarning:
			logger.Warn(diag.Message, attrs...)
		default:
			logger.Info(diag.Message, attrs...)
		}
	}
}

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Subject != "" {
		prefix = append(prefix, "["+d.Subject+"]")
	}

	if d.Field != "" {
		prefix = append(prefix, d.Field)
	}

	msg := d.Message
	if d.Code != "" {
		msg = fmt.Sprintf("[%s] %s", d.Code, msg)
	}

	if len(d.Suggestions) > 0 {
		msg += " (did you mean " + strings.Join(d.Suggestions, ", ") + "?)"
	}

	if len(prefix) > 0 {
		return strings.Join(prefix, " ") + ": " + msg
	}

	return msg
}
