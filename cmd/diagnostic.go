// Copyright © 2025 The cssls authors

package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/luthersystems/cssls/css"
	"github.com/luthersystems/cssls/diagnostic"
)

func colorMode() diagnostic.ColorMode {
	switch colorFlag {
	case "always":
		return diagnostic.ColorAlways
	case "never":
		return diagnostic.ColorNever
	default:
		return diagnostic.ColorAuto
	}
}

func newRenderer() *diagnostic.Renderer {
	return &diagnostic.Renderer{Color: colorMode()}
}

// convertDiagnostic maps a validation finding onto a renderable
// diagnostic, resolving its byte span to a line, column, and source line
// in content.
func convertDiagnostic(path, content string, d css.Diagnostic) diagnostic.Diagnostic {
	out := diagnostic.Diagnostic{
		Severity: mapSeverity(d.Severity),
		Code:     d.Code,
		Message:  d.Message,
	}

	line, col, text := lineAt(content, d.Start)
	span := diagnostic.Span{
		File:   path,
		Line:   line,
		Col:    col,
		Source: text,
	}
	// Underline stops at the end of the span or the end of the line,
	// whichever comes first.
	endLine, endCol, _ := lineAt(content, d.End)
	if endLine == line {
		span.EndCol = endCol
	} else {
		span.EndCol = len(text) + 1
	}
	out.Span = span

	if d.Code == css.CodeUnknownProperties && d.Start < d.End && d.End <= len(content) {
		if name, ok := css.ClosestProperty(content[d.Start:d.End]); ok {
			out.Notes = append(out.Notes, fmt.Sprintf("did you mean %q?", name))
		}
	}
	return out
}

func mapSeverity(s css.Severity) diagnostic.Severity {
	switch s {
	case css.SeverityError:
		return diagnostic.SeverityError
	case css.SeverityWarning:
		return diagnostic.SeverityWarning
	case css.SeverityInformation:
		return diagnostic.SeverityInfo
	default:
		return diagnostic.SeverityHint
	}
}

// lineAt resolves a byte offset to a 1-based line and column plus the
// text of that line. Offsets past the end of content land on the last
// line.
func lineAt(content string, offset int) (line, col int, text string) {
	if offset < 0 {
		offset = 0
	}
	if offset > len(content) {
		offset = len(content)
	}
	start := 0
	line = 1
	for {
		end := strings.IndexByte(content[start:], '\n')
		if end < 0 {
			return line, offset - start + 1, content[start:]
		}
		end += start
		if offset <= end {
			return line, offset - start + 1, content[start:end]
		}
		start = end + 1
		line++
	}
}

// renderDiagnostics writes validation findings for one document to stderr.
func renderDiagnostics(path, content string, diags []css.Diagnostic) {
	ds := make([]diagnostic.Diagnostic, 0, len(diags))
	for _, d := range diags {
		ds = append(ds, convertDiagnostic(path, content, d))
	}
	r := newRenderer()
	_ = r.RenderAll(os.Stderr, ds)
}
