// Copyright © 2025 The cssls authors

// Package diagnostic renders annotated stylesheet diagnostics for CLI
// output. It is intentionally independent of the css/ package so that
// it can format findings from any source without import cycles.
package diagnostic

// Severity indicates the severity level of a diagnostic.
type Severity int

const (
	SeverityError Severity = iota
	SeverityWarning
	SeverityInfo
	SeverityHint
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	case SeverityInfo:
		return "info"
	case SeverityHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Span identifies the region of source to underline. The caller supplies
// the source line text; the renderer never reads files itself.
type Span struct {
	File   string // display path
	Line   int    // 1-based line number
	Col    int    // 1-based start column
	EndCol int    // 1-based column one past the underline
	Source string // text of the line, without trailing newline
	Label  string // text shown after the underline
}

// Diagnostic is a single finding with an optional source annotation and
// trailing notes.
type Diagnostic struct {
	Severity Severity
	Code     string // short machine name shown as "warning[code]"
	Message  string
	Span     Span
	Notes    []string // "= note:" lines
}
