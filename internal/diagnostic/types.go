package diagnostic

import (
	"errors"
	"fmt"
	"strings"
)

// Diagnostic codes.
const (
	CodeNotProxyable      = "not_proxyable"
	CodeBadDirective      = "bad_directive"
	CodeUnspellableMember = "unspellable_member"
	CodeUnsupportedType   = "unsupported_type"
	CodeLoad              = "load_failed"
	CodeManifest          = "manifest_invalid"
	CodeUnknownModifier   = "unknown_modifier"
	CodeUnknownKind       = "unknown_kind"
	CodeUnknownSupertype  = "unknown_supertype"
	CodeDuplicateType     = "duplicate_type"
	CodeInheritanceCycle  = "inheritance_cycle"
	CodeRender            = "render_failed"
	CodeWrite             = "write_failed"
	CodeDuplicateOutput   = "duplicate_output"
)

// Diagnostics holds every diagnostic of a run.
type Diagnostics struct {
	Errors   []Diagnostic
	Warnings []Diagnostic
	Infos    []Diagnostic
}

// Diagnostic is a single reported problem.
type Diagnostic struct {
	Severity Severity
	// Code identifies the kind of problem.
	Code    string
	Message string
	// Type is the qualified name of the type concerned, if any.
	Type string
	// Member names the member concerned, if any.
	Member string
	// Position is "file:line:col" when known.
	Position string
	// Suggestions are "did you mean" alternatives.
	Suggestions []string
}

// Severity is the level of a diagnostic.
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

// Add appends a diagnostic to the list matching its severity.
func (d *Diagnostics) Add(diag Diagnostic) {
	switch diag.Severity {
	case SeverityError:
		d.Errors = append(d.Errors, diag)
	case SeverityWarning:
		d.Warnings = append(d.Warnings, diag)
	case SeverityInfo:
		d.Infos = append(d.Infos, diag)
	}
}

// AddError adds an error diagnostic.
func (d *Diagnostics) AddError(code, message, typeName, member string) {
	d.Add(Diagnostic{Severity: SeverityError, Code: code, Message: message, Type: typeName, Member: member})
}

// AddErrorWithSuggestions adds an error diagnostic carrying alternatives.
func (d *Diagnostics) AddErrorWithSuggestions(code, message, typeName, member string, suggestions []string) {
	d.Add(Diagnostic{
		Severity:    SeverityError,
		Code:        code,
		Message:     message,
		Type:        typeName,
		Member:      member,
		Suggestions: suggestions,
	})
}

// AddWarning adds a warning diagnostic.
func (d *Diagnostics) AddWarning(code, message, typeName, member string) {
	d.Add(Diagnostic{Severity: SeverityWarning, Code: code, Message: message, Type: typeName, Member: member})
}

// AddInfo adds an info diagnostic.
func (d *Diagnostics) AddInfo(code, message, typeName, member string) {
	d.Add(Diagnostic{Severity: SeverityInfo, Code: code, Message: message, Type: typeName, Member: member})
}

// HasErrors returns true if there are any error diagnostics.
func (d *Diagnostics) HasErrors() bool {
	return len(d.Errors) > 0
}

// Len returns the total number of diagnostics.
func (d *Diagnostics) Len() int {
	return len(d.Errors) + len(d.Warnings) + len(d.Infos)
}

// Merge merges another Diagnostics instance into this one.
func (d *Diagnostics) Merge(other Diagnostics) {
	d.Errors = append(d.Errors, other.Errors...)
	d.Warnings = append(d.Warnings, other.Warnings...)
	d.Infos = append(d.Infos, other.Infos...)
}

// Error returns a combined error from all error diagnostics, or nil.
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

// String returns a formatted diagnostic string.
func (d Diagnostic) String() string {
	var prefix []string
	if d.Position != "" {
		prefix = append(prefix, d.Position)
	}

	if d.Type != "" {
		prefix = append(prefix, "["+d.Type+"]")
	}

	if d.Member != "" {
		prefix = append(prefix, d.Member)
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
