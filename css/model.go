// Copyright © 2025 The cssls authors

package css

import "strings"

// Stylesheet is the parsed semantic model of a document. It is a pure
// function of the document's content and identity: parsing the same
// content always yields an equivalent model. Queries against a model
// are cheap; building one is the expensive step that the server's
// model cache exists to avoid repeating.
type Stylesheet struct {
	URI     string
	Dialect Dialect
	Source  string

	// Rules are the top-level rules in document order. Nested rules and
	// at-rule bodies hang off Rule.Children.
	Rules []*Rule

	// Errors are parse errors collected during the tolerant parse.
	// A non-empty Errors never prevents the rest of the model from
	// being populated.
	Errors []*ParseError

	// Variables and VarRefs cover scss $vars, less @vars, and css
	// custom properties document-wide, in source order.
	Variables []*Variable
	VarRefs   []*VarRef
}

// ParseError is a recoverable syntax error with its source span.
type ParseError struct {
	Span
	Message string
}

// Rule is a ruleset (selectors + declaration block) or an at-rule.
// For at-rules AtKeyword is non-empty (e.g. "@media") and Selectors is
// empty; Prelude holds the raw text between the keyword and the block.
type Rule struct {
	Span
	AtKeyword    string
	Prelude      string
	Selectors    []*Selector
	Declarations []*Declaration
	Children     []*Rule

	// Body is the span between the braces, exclusive. Zero for at-rules
	// terminated by a semicolon.
	Body Span
}

// IsAtRule reports whether the rule is an at-rule.
func (r *Rule) IsAtRule() bool {
	return r.AtKeyword != ""
}

// Empty reports whether a ruleset has no declarations and no nested
// rules. At-rules are never considered empty.
func (r *Rule) Empty() bool {
	return !r.IsAtRule() && len(r.Declarations) == 0 && len(r.Children) == 0
}

// Selector is one comma-separated member of a rule's selector list.
type Selector struct {
	Span
	Text        string
	Parts       []SelectorPart
	Specificity Specificity
}

// Declaration is a property: value pair inside a rule body, or a
// variable definition (scss $var, less @var, css --custom-prop).
type Declaration struct {
	Span
	Property  string
	PropSpan  Span
	Value     string
	ValueSpan Span
	Custom    bool // css custom property (--name)
}

// VarKind classifies a stylesheet variable.
type VarKind int

const (
	VarCustomProperty VarKind = iota // --name, referenced via var(--name)
	VarSCSS                          // $name
	VarLESS                          // @name
)

// Variable is a variable definition site.
type Variable struct {
	Name  string // including sigil: "--accent", "$accent", "@accent"
	Kind  VarKind
	Span  Span // span of the name token at the definition
	Value string
}

// VarRef is a variable reference site.
type VarRef struct {
	Name string
	Span Span
}

// AllRules returns every rule in the sheet, depth first.
func (sh *Stylesheet) AllRules() []*Rule {
	var out []*Rule
	var walk func(rules []*Rule)
	walk = func(rules []*Rule) {
		for _, r := range rules {
			out = append(out, r)
			walk(r.Children)
		}
	}
	walk(sh.Rules)
	return out
}

// RuleAt returns the innermost rule whose body contains the offset, or
// nil when the offset is outside every rule body.
func (sh *Stylesheet) RuleAt(offset int) *Rule {
	var found *Rule
	var walk func(rules []*Rule)
	walk = func(rules []*Rule) {
		for _, r := range rules {
			if r.Body.Len() > 0 && r.Body.Contains(offset) {
				found = r
				walk(r.Children)
			}
		}
	}
	walk(sh.Rules)
	return found
}

// DeclarationAt returns the declaration containing the offset, if any.
func (sh *Stylesheet) DeclarationAt(offset int) *Declaration {
	for _, r := range sh.AllRules() {
		for _, d := range r.Declarations {
			if d.Contains(offset) {
				return d
			}
		}
	}
	return nil
}

// SelectorAt returns the selector containing the offset, if any.
func (sh *Stylesheet) SelectorAt(offset int) *Selector {
	for _, r := range sh.AllRules() {
		for _, sel := range r.Selectors {
			if sel.Contains(offset) {
				return sel
			}
		}
	}
	return nil
}

// VariableNamed returns the first definition of name, or nil.
func (sh *Stylesheet) VariableNamed(name string) *Variable {
	for _, v := range sh.Variables {
		if v.Name == name {
			return v
		}
	}
	return nil
}

// RefsNamed returns all reference sites for a variable name.
func (sh *Stylesheet) RefsNamed(name string) []*VarRef {
	var out []*VarRef
	for _, ref := range sh.VarRefs {
		if ref.Name == name {
			out = append(out, ref)
		}
	}
	return out
}

// VariableAt resolves the variable whose definition or reference spans
// the offset. The returned span is the name token that was hit.
func (sh *Stylesheet) VariableAt(offset int) (v *Variable, at Span, isDef bool) {
	for _, def := range sh.Variables {
		if def.Span.Contains(offset) {
			return def, def.Span, true
		}
	}
	for _, ref := range sh.VarRefs {
		if ref.Span.Contains(offset) {
			return sh.VariableNamed(ref.Name), ref.Span, false
		}
	}
	return nil, Span{}, false
}

// isVendorPrefixed reports whether a property name carries a vendor
// prefix like -webkit- or -moz-.
func isVendorPrefixed(property string) bool {
	return strings.HasPrefix(property, "-") && !strings.HasPrefix(property, "--")
}
