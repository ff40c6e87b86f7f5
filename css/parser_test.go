// Copyright © 2025 The cssls authors

package css

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseSimpleRule(t *testing.T) {
	sheet := Parse("file:///a.css", ".x{color:red}", DialectCSS)
	require.Len(t, sheet.Rules, 1)
	require.Empty(t, sheet.Errors)

	rule := sheet.Rules[0]
	require.Len(t, rule.Selectors, 1)
	assert.Equal(t, ".x", rule.Selectors[0].Text)
	require.Len(t, rule.Declarations, 1)
	assert.Equal(t, "color", rule.Declarations[0].Property)
	assert.Equal(t, "red", rule.Declarations[0].Value)
}

func TestParseSelectorList(t *testing.T) {
	sheet := Parse("file:///a.css", "h1, h2 , .title { margin: 0 }", DialectCSS)
	require.Len(t, sheet.Rules, 1)
	sels := sheet.Rules[0].Selectors
	require.Len(t, sels, 3)
	assert.Equal(t, "h1", sels[0].Text)
	assert.Equal(t, "h2", sels[1].Text)
	assert.Equal(t, ".title", sels[2].Text)
}

func TestParsePseudoSelectorVsDeclaration(t *testing.T) {
	// "a:hover" contains a colon but must parse as a selector, not a
	// declaration.
	sheet := Parse("file:///a.css", "a:hover { color: blue; }", DialectCSS)
	require.Len(t, sheet.Rules, 1)
	require.Empty(t, sheet.Errors)
	require.Len(t, sheet.Rules[0].Selectors, 1)
	assert.Equal(t, "a:hover", sheet.Rules[0].Selectors[0].Text)
}

func TestParseAtRules(t *testing.T) {
	t.Run("with block", func(t *testing.T) {
		src := "@media (min-width: 600px) { .x { color: red } }"
		sheet := Parse("file:///a.css", src, DialectCSS)
		require.Len(t, sheet.Rules, 1)
		media := sheet.Rules[0]
		assert.Equal(t, "@media", media.AtKeyword)
		assert.Equal(t, "(min-width: 600px)", media.Prelude)
		require.Len(t, media.Children, 1)
		assert.Equal(t, ".x", media.Children[0].Selectors[0].Text)
	})
	t.Run("without block", func(t *testing.T) {
		sheet := Parse("file:///a.css", `@import "theme.css";`, DialectCSS)
		require.Len(t, sheet.Rules, 1)
		assert.Equal(t, "@import", sheet.Rules[0].AtKeyword)
		assert.Empty(t, sheet.Errors)
	})
}

func TestParseErrors(t *testing.T) {
	t.Run("missing close brace", func(t *testing.T) {
		sheet := Parse("file:///a.css", ".x { color: red;", DialectCSS)
		require.Len(t, sheet.Rules, 1)
		require.NotEmpty(t, sheet.Errors)
		assert.Contains(t, sheet.Errors[0].Message, "'}'")
		// The model is still usable.
		assert.Equal(t, "color", sheet.Rules[0].Declarations[0].Property)
	})
	t.Run("unexpected close brace", func(t *testing.T) {
		sheet := Parse("file:///a.css", "} .x { color: red }", DialectCSS)
		require.Len(t, sheet.Rules, 1)
		require.NotEmpty(t, sheet.Errors)
		assert.Contains(t, sheet.Errors[0].Message, "unexpected '}'")
	})
	t.Run("missing colon", func(t *testing.T) {
		sheet := Parse("file:///a.css", ".x { color red; top: 0 }", DialectCSS)
		require.Len(t, sheet.Rules, 1)
		require.NotEmpty(t, sheet.Errors)
		assert.Contains(t, sheet.Errors[0].Message, "':'")
		// Recovery continues with the next declaration.
		require.Len(t, sheet.Rules[0].Declarations, 1)
		assert.Equal(t, "top", sheet.Rules[0].Declarations[0].Property)
	})
	t.Run("missing semicolon", func(t *testing.T) {
		sheet := Parse("file:///a.css", ".x { color: red top: 0 }", DialectCSS)
		require.NotEmpty(t, sheet.Errors)
		assert.Contains(t, sheet.Errors[0].Message, "';'")
		require.Len(t, sheet.Rules[0].Declarations, 2)
		assert.Equal(t, "red", sheet.Rules[0].Declarations[0].Value)
		assert.Equal(t, "top", sheet.Rules[0].Declarations[1].Property)
	})
	t.Run("unterminated string", func(t *testing.T) {
		sheet := Parse("file:///a.css", `.x { content: "oops }`, DialectCSS)
		require.NotEmpty(t, sheet.Errors)
		assert.Contains(t, sheet.Errors[0].Message, "unterminated string")
	})
}

func TestParseCustomProperties(t *testing.T) {
	src := ":root { --accent: #ff0000; }\n.x { color: var(--accent); border-color: var(--missing); }"
	sheet := Parse("file:///a.css", src, DialectCSS)

	require.Len(t, sheet.Variables, 1)
	assert.Equal(t, "--accent", sheet.Variables[0].Name)
	assert.Equal(t, VarCustomProperty, sheet.Variables[0].Kind)
	assert.Equal(t, "#ff0000", sheet.Variables[0].Value)

	require.Len(t, sheet.VarRefs, 2)
	assert.Equal(t, "--accent", sheet.VarRefs[0].Name)
	assert.Equal(t, "--missing", sheet.VarRefs[1].Name)
}

func TestParseSCSS(t *testing.T) {
	src := "$accent: #ff0000;\n.x {\n  color: $accent;\n  // line comment\n  .y { top: 0; }\n}"
	sheet := Parse("file:///a.scss", src, DialectSCSS)
	require.Empty(t, sheet.Errors)

	require.Len(t, sheet.Variables, 1)
	assert.Equal(t, "$accent", sheet.Variables[0].Name)
	assert.Equal(t, VarSCSS, sheet.Variables[0].Kind)

	require.Len(t, sheet.VarRefs, 1)
	assert.Equal(t, "$accent", sheet.VarRefs[0].Name)

	// Nested rule.
	require.Len(t, sheet.Rules, 1)
	require.Len(t, sheet.Rules[0].Children, 1)
	assert.Equal(t, ".y", sheet.Rules[0].Children[0].Selectors[0].Text)
}

func TestParseLESS(t *testing.T) {
	src := "@accent: #ff0000;\n.x { color: @accent; }"
	sheet := Parse("file:///a.less", src, DialectLESS)
	require.Empty(t, sheet.Errors)

	require.Len(t, sheet.Variables, 1)
	assert.Equal(t, "@accent", sheet.Variables[0].Name)
	assert.Equal(t, VarLESS, sheet.Variables[0].Kind)

	require.Len(t, sheet.VarRefs, 1)
	assert.Equal(t, "@accent", sheet.VarRefs[0].Name)
}

func TestParseDeclarationOutsideRule(t *testing.T) {
	sheet := Parse("file:///a.css", "color: red;", DialectCSS)
	require.NotEmpty(t, sheet.Errors)
	assert.Contains(t, sheet.Errors[0].Message, "outside")
}

func TestRuleAt(t *testing.T) {
	src := ".x { color: red; .y { top: 0 } }"
	sheet := Parse("file:///a.scss", src, DialectSCSS)

	outer := sheet.RuleAt(6) // inside .x body
	require.NotNil(t, outer)
	assert.Equal(t, ".x", outer.Selectors[0].Text)

	innerOff := len(".x { color: red; .y { t")
	inner := sheet.RuleAt(innerOff)
	require.NotNil(t, inner)
	assert.Equal(t, ".y", inner.Selectors[0].Text)

	assert.Nil(t, sheet.RuleAt(0))
}

func TestDeclarationAndSelectorAt(t *testing.T) {
	src := ".x{color:red}"
	sheet := Parse("file:///a.css", src, DialectCSS)

	decl := sheet.DeclarationAt(4) // inside "color"
	require.NotNil(t, decl)
	assert.Equal(t, "color", decl.Property)

	sel := sheet.SelectorAt(0)
	require.NotNil(t, sel)
	assert.Equal(t, ".x", sel.Text)
}

func TestParseIsPure(t *testing.T) {
	src := ".x { color: red }"
	a := Parse("file:///a.css", src, DialectCSS)
	b := Parse("file:///a.css", src, DialectCSS)
	assert.Equal(t, a.Rules[0].Span, b.Rules[0].Span)
	assert.Equal(t, a.Rules[0].Declarations[0], b.Rules[0].Declarations[0])
}
