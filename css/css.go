// Copyright © 2025 The cssls authors

// Package css implements parsing and semantic analysis for CSS-family
// stylesheets. It provides a tolerant scanner and parser that always
// produce a usable model, per-dialect language services answering
// validation and editor queries, and a property data table used for
// hover, completion, and lint checks.
package css

// Dialect identifies a stylesheet syntax variant. It matches the LSP
// language identifier sent by clients.
type Dialect string

const (
	DialectCSS  Dialect = "css"
	DialectSCSS Dialect = "scss"
	DialectLESS Dialect = "less"
)

// lineComments reports whether the dialect supports // line comments.
func (d Dialect) lineComments() bool {
	return d == DialectSCSS || d == DialectLESS
}

// Span is a half-open byte offset range [Start, End) into the source
// text of a stylesheet.
type Span struct {
	Start int
	End   int
}

// Contains reports whether the offset falls inside the span.
func (s Span) Contains(offset int) bool {
	return offset >= s.Start && offset < s.End
}

// Len returns the span length in bytes.
func (s Span) Len() int {
	return s.End - s.Start
}
