// Copyright © 2025 The cssls authors

package css

import (
	"fmt"
	"strings"
)

// Diagnostic codes reported by Validate.
const (
	CodeSyntax              = "syntax"
	CodeUnknownProperties   = "unknownProperties"
	CodeEmptyRules          = "emptyRules"
	CodeDuplicateProperties = "duplicateProperties"
	CodeUndefinedVariables  = "undefinedVariables"
)

// Diagnostic is a problem report tied to a source span.
type Diagnostic struct {
	Span
	Severity Severity
	Code     string
	Message  string
}

// Validate checks a stylesheet model and returns diagnostics in source
// order. Parse errors are always reported; lint checks honor the
// settings. A nil settings means DefaultSettings.
func Validate(sheet *Stylesheet, settings *Settings) []Diagnostic {
	if settings == nil {
		settings = DefaultSettings()
	}
	if !settings.Validate {
		return nil
	}

	var diags []Diagnostic
	for _, perr := range sheet.Errors {
		diags = append(diags, Diagnostic{
			Span:     perr.Span,
			Severity: SeverityError,
			Code:     CodeSyntax,
			Message:  perr.Message,
		})
	}

	ignored := make(map[string]bool, len(settings.Lint.IgnoredProperties))
	for _, name := range settings.Lint.IgnoredProperties {
		ignored[name] = true
	}

	for _, rule := range sheet.AllRules() {
		if rule.Empty() {
			if sev, on := severityFor(settings.Lint.EmptyRules, SeverityHint); on {
				diags = append(diags, Diagnostic{
					Span:     rule.Span,
					Severity: sev,
					Code:     CodeEmptyRules,
					Message:  "ruleset is empty",
				})
			}
		}
		diags = append(diags, checkProperties(rule, settings, ignored)...)
	}

	diags = append(diags, checkVariables(sheet, settings)...)
	return diags
}

// checkProperties reports unknown and duplicate properties within one
// rule body.
func checkProperties(rule *Rule, settings *Settings, ignored map[string]bool) []Diagnostic {
	var diags []Diagnostic
	seen := make(map[string]bool, len(rule.Declarations))
	for _, decl := range rule.Declarations {
		name := strings.ToLower(decl.Property)
		if dupSev, on := severityFor(settings.Lint.DuplicateProperties, SeverityWarning); on && seen[name] {
			diags = append(diags, Diagnostic{
				Span:     decl.PropSpan,
				Severity: dupSev,
				Code:     CodeDuplicateProperties,
				Message:  fmt.Sprintf("duplicate property %q", decl.Property),
			})
		}
		seen[name] = true

		if skipPropertyCheck(decl, ignored) {
			continue
		}
		if sev, on := severityFor(settings.Lint.UnknownProperties, SeverityWarning); on && !KnownProperty(name) {
			diags = append(diags, Diagnostic{
				Span:     decl.PropSpan,
				Severity: sev,
				Code:     CodeUnknownProperties,
				Message:  fmt.Sprintf("unknown property %q", decl.Property),
			})
		}
	}
	return diags
}

// skipPropertyCheck exempts custom properties, dialect variables, and
// vendor-prefixed names from the unknown property check.
func skipPropertyCheck(decl *Declaration, ignored map[string]bool) bool {
	if decl.Custom || ignored[decl.Property] {
		return true
	}
	if strings.HasPrefix(decl.Property, "$") || strings.HasPrefix(decl.Property, "@") {
		return true
	}
	return isVendorPrefixed(decl.Property)
}

// checkVariables reports references to variables with no definition in
// the document. Cross-document definitions are out of scope, so the
// check stays quiet for documents that define no variables at all;
// they most likely import their palette from elsewhere.
func checkVariables(sheet *Stylesheet, settings *Settings) []Diagnostic {
	sev, on := severityFor(settings.Lint.UndefinedVariables, SeverityWarning)
	if !on || len(sheet.Variables) == 0 {
		return nil
	}
	var diags []Diagnostic
	for _, ref := range sheet.VarRefs {
		if sheet.VariableNamed(ref.Name) == nil {
			diags = append(diags, Diagnostic{
				Span:     ref.Span,
				Severity: sev,
				Code:     CodeUndefinedVariables,
				Message:  fmt.Sprintf("undefined variable %s", ref.Name),
			})
		}
	}
	return diags
}
