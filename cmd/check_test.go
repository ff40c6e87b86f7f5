// Copyright © 2025 The cssls authors

package cmd

import (
	"bytes"
	"testing"

	"github.com/luthersystems/cssls/css"
	"github.com/luthersystems/cssls/diagnostic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand_DefaultFlags(t *testing.T) {
	assert.Equal(t, "check [flags] [files...]", checkCmd.Use)
	assert.NotNil(t, checkCmd.Flags().Lookup("json"))
}

func TestDialectForPath(t *testing.T) {
	assert.Equal(t, css.DialectCSS, dialectForPath("site.css"))
	assert.Equal(t, css.DialectSCSS, dialectForPath("theme.scss"))
	assert.Equal(t, css.DialectSCSS, dialectForPath("THEME.SCSS"))
	assert.Equal(t, css.DialectLESS, dialectForPath("vars.less"))
	assert.Equal(t, css.DialectCSS, dialectForPath("README"))
}

func TestLineAt(t *testing.T) {
	content := ".x {\n  color: red;\n}\n"

	line, col, text := lineAt(content, 0)
	assert.Equal(t, 1, line)
	assert.Equal(t, 1, col)
	assert.Equal(t, ".x {", text)

	line, col, text = lineAt(content, 7)
	assert.Equal(t, 2, line)
	assert.Equal(t, 3, col)
	assert.Equal(t, "  color: red;", text)

	// Past the end lands on the last line.
	line, _, text = lineAt(content, 1000)
	assert.Equal(t, 4, line)
	assert.Equal(t, "", text)
}

func TestCheckContent(t *testing.T) {
	diags := checkContent("site.css", ".x { colr: red }\n", css.DialectCSS)
	require.Len(t, diags, 1)
	assert.Equal(t, css.CodeUnknownProperties, diags[0].Code)

	assert.Empty(t, checkContent("site.css", ".x { color: red }\n", css.DialectCSS))
}

func TestConvertDiagnostic(t *testing.T) {
	content := ".x { colr: red }\n"
	diags := checkContent("site.css", content, css.DialectCSS)
	require.Len(t, diags, 1)

	d := convertDiagnostic("site.css", content, diags[0])
	assert.Equal(t, diagnostic.SeverityWarning, d.Severity)
	assert.Equal(t, css.CodeUnknownProperties, d.Code)
	assert.Equal(t, "site.css", d.Span.File)
	assert.Equal(t, 1, d.Span.Line)
	assert.Equal(t, 6, d.Span.Col)
	assert.Equal(t, 10, d.Span.EndCol)
	assert.Equal(t, ".x { colr: red }", d.Span.Source)
	require.Len(t, d.Notes, 1)
	assert.Equal(t, `did you mean "color"?`, d.Notes[0])
}

func TestConvertDiagnosticMultiline(t *testing.T) {
	// An empty ruleset spans two lines; the underline stays on the first.
	content := ".x {\n}\n"
	diags := checkContent("site.css", content, css.DialectCSS)
	require.Len(t, diags, 1)
	require.Equal(t, css.CodeEmptyRules, diags[0].Code)

	d := convertDiagnostic("site.css", content, diags[0])
	assert.Equal(t, diagnostic.SeverityHint, d.Severity)
	assert.Equal(t, 1, d.Span.Line)
	assert.Equal(t, ".x {", d.Span.Source)
	assert.Equal(t, len(".x {")+1, d.Span.EndCol)
}

func TestJSONFindings(t *testing.T) {
	content := ".x { colr: red }\n"
	diags := checkContent("site.css", content, css.DialectCSS)
	findings := jsonFindings("site.css", content, diags)
	require.Len(t, findings, 1)
	assert.Equal(t, "site.css", findings[0].File)
	assert.Equal(t, 1, findings[0].Line)
	assert.Equal(t, 6, findings[0].Col)
	assert.Equal(t, "warning", findings[0].Severity)
	assert.Equal(t, css.CodeUnknownProperties, findings[0].Code)

	var buf bytes.Buffer
	require.NoError(t, writeFindingsJSON(&buf, findings))
	assert.Contains(t, buf.String(), `"code": "unknownProperties"`)
}
