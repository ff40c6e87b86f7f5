// Copyright © 2025 The cssls authors

package css

import (
	"fmt"
	"sort"
	"strings"
)

// Hover is a query result with markdown contents and the span it
// describes.
type Hover struct {
	Span
	Contents string
}

// CompletionKind classifies a completion item.
type CompletionKind int

const (
	CompleteProperty CompletionKind = iota
	CompleteValue
	CompleteVariable
	CompleteAtKeyword
)

// CompletionItem is one completion proposal.
type CompletionItem struct {
	Label      string
	Kind       CompletionKind
	Detail     string
	Doc        string
	InsertText string
}

// SymbolKind classifies a document symbol.
type SymbolKind int

const (
	SymbolRule SymbolKind = iota
	SymbolAtRule
	SymbolVariable
)

// Symbol is a document outline entry.
type Symbol struct {
	Span
	Name string
	Kind SymbolKind
}

// HighlightKind distinguishes definition sites from reference sites.
type HighlightKind int

const (
	HighlightRead HighlightKind = iota
	HighlightWrite
)

// Highlight is one occurrence for textDocument/documentHighlight.
type Highlight struct {
	Span
	Kind HighlightKind
}

// TextEdit replaces a span with new text.
type TextEdit struct {
	Span
	NewText string
}

// CodeAction is a quick fix proposed for a diagnostic.
type CodeAction struct {
	Title string
	Edits []TextEdit
	Fixes *Diagnostic
}

// Hover answers a hover query at a byte offset: property docs inside
// declarations, specificity for selectors, values for variables.
func (s *Service) Hover(sheet *Stylesheet, offset int) *Hover {
	if v, at, _ := sheet.VariableAt(offset); at.Len() > 0 {
		return variableHover(sheet, v, at)
	}
	if decl := sheet.DeclarationAt(offset); decl != nil && decl.PropSpan.Contains(offset) {
		if prop, ok := LookupProperty(strings.ToLower(decl.Property)); ok {
			var sb strings.Builder
			fmt.Fprintf(&sb, "**%s**\n\n%s", prop.Name, prop.Doc)
			if prop.Syntax != "" {
				fmt.Fprintf(&sb, "\n\nSyntax: `%s`", prop.Syntax)
			}
			return &Hover{Span: decl.PropSpan, Contents: sb.String()}
		}
		return nil
	}
	if sel := sheet.SelectorAt(offset); sel != nil {
		spec := sel.Specificity
		return &Hover{
			Span: sel.Span,
			Contents: fmt.Sprintf("`%s`\n\n[Selector Specificity](https://developer.mozilla.org/docs/Web/CSS/Specificity): (%d, %d, %d)",
				sel.Text, spec.ID, spec.Class, spec.Type),
		}
	}
	return nil
}

func variableHover(sheet *Stylesheet, v *Variable, at Span) *Hover {
	name := sheet.Source[at.Start:at.End]
	if v == nil {
		return &Hover{Span: at, Contents: fmt.Sprintf("**%s** — undefined variable", name)}
	}
	if v.Value == "" {
		return &Hover{Span: at, Contents: fmt.Sprintf("**%s**", v.Name)}
	}
	return &Hover{Span: at, Contents: fmt.Sprintf("**%s** — `%s`", v.Name, v.Value)}
}

// Completions proposes completion items at a byte offset. Inside a
// declaration value it offers keyword values and variables; inside a
// rule body it offers property names; at the top level it offers
// at-keywords.
func (s *Service) Completions(sheet *Stylesheet, offset int) []CompletionItem {
	prefix := wordBefore(sheet.Source, offset)

	if decl := activeDeclarationValue(sheet, offset); decl != nil {
		return s.valueCompletions(sheet, decl, prefix)
	}
	if sheet.RuleAt(offset) != nil {
		return propertyCompletions(prefix)
	}
	return atKeywordCompletions(prefix)
}

func (s *Service) valueCompletions(sheet *Stylesheet, decl *Declaration, prefix string) []CompletionItem {
	var items []CompletionItem
	if prop, ok := LookupProperty(strings.ToLower(decl.Property)); ok {
		for _, v := range prop.Values {
			if !strings.HasPrefix(v, prefix) {
				continue
			}
			items = append(items, CompletionItem{
				Label:  v,
				Kind:   CompleteValue,
				Detail: prop.Name,
			})
		}
	}
	for _, v := range sheet.Variables {
		label, insert := variableInsertion(v)
		items = append(items, CompletionItem{
			Label:      label,
			Kind:       CompleteVariable,
			Detail:     v.Value,
			InsertText: insert,
		})
	}
	return items
}

// variableInsertion returns the label and insert text for completing a
// variable in value position. Custom properties complete as var()
// calls.
func variableInsertion(v *Variable) (label, insert string) {
	if v.Kind == VarCustomProperty {
		return v.Name, "var(" + v.Name + ")"
	}
	return v.Name, v.Name
}

func propertyCompletions(prefix string) []CompletionItem {
	var items []CompletionItem
	for _, name := range PropertyNames() {
		if !strings.HasPrefix(name, prefix) {
			continue
		}
		prop := properties[name]
		items = append(items, CompletionItem{
			Label:      name,
			Kind:       CompleteProperty,
			Detail:     prop.Syntax,
			Doc:        prop.Doc,
			InsertText: name + ": ",
		})
	}
	return items
}

var atKeywords = []string{"@charset", "@font-face", "@import", "@keyframes", "@media", "@supports"}

func atKeywordCompletions(prefix string) []CompletionItem {
	var items []CompletionItem
	for _, kw := range atKeywords {
		if !strings.HasPrefix(kw, prefix) && prefix != "" {
			continue
		}
		items = append(items, CompletionItem{Label: kw, Kind: CompleteAtKeyword})
	}
	return items
}

// activeDeclarationValue returns the declaration whose value region
// covers the offset, including the space right after "property:"
// while the value is still being typed.
func activeDeclarationValue(sheet *Stylesheet, offset int) *Declaration {
	for _, r := range sheet.AllRules() {
		for _, d := range r.Declarations {
			if d.ValueSpan.Len() > 0 && (d.ValueSpan.Contains(offset) || offset == d.ValueSpan.End) {
				return d
			}
			if d.ValueSpan.Len() == 0 && offset > d.PropSpan.End && offset <= d.Span.End+1 {
				return d
			}
		}
	}
	return nil
}

// Symbols returns the document outline: one entry per selector, one
// per named at-rule, and one per variable definition.
func (s *Service) Symbols(sheet *Stylesheet) []Symbol {
	var out []Symbol
	for _, r := range sheet.AllRules() {
		if r.IsAtRule() {
			name := r.AtKeyword
			if r.Prelude != "" {
				name += " " + r.Prelude
			}
			out = append(out, Symbol{Span: r.Span, Name: name, Kind: SymbolAtRule})
			continue
		}
		for _, sel := range r.Selectors {
			out = append(out, Symbol{Span: r.Span, Name: sel.Text, Kind: SymbolRule})
		}
	}
	for _, v := range sheet.Variables {
		out = append(out, Symbol{Span: v.Span, Name: v.Name, Kind: SymbolVariable})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Start < out[j].Start })
	return out
}

// Definition resolves a variable reference at the offset to its
// definition span.
func (s *Service) Definition(sheet *Stylesheet, offset int) *Span {
	v, at, _ := sheet.VariableAt(offset)
	if v == nil || at.Len() == 0 {
		return nil
	}
	span := v.Span
	return &span
}

// References returns all reference sites for the variable at the
// offset, optionally including the definition.
func (s *Service) References(sheet *Stylesheet, offset int, includeDecl bool) []Span {
	name, ok := variableNameAt(sheet, offset)
	if !ok {
		return nil
	}
	var out []Span
	if includeDecl {
		if v := sheet.VariableNamed(name); v != nil {
			out = append(out, v.Span)
		}
	}
	for _, ref := range sheet.RefsNamed(name) {
		out = append(out, ref.Span)
	}
	return out
}

// Highlights returns all occurrences of the variable at the offset,
// marking the definition as a write.
func (s *Service) Highlights(sheet *Stylesheet, offset int) []Highlight {
	name, ok := variableNameAt(sheet, offset)
	if !ok {
		return nil
	}
	var out []Highlight
	if v := sheet.VariableNamed(name); v != nil {
		out = append(out, Highlight{Span: v.Span, Kind: HighlightWrite})
	}
	for _, ref := range sheet.RefsNamed(name) {
		out = append(out, Highlight{Span: ref.Span, Kind: HighlightRead})
	}
	return out
}

// Rename renames the variable at the offset across the document.
// Only variables are renameable; anything else returns an error.
func (s *Service) Rename(sheet *Stylesheet, offset int, newName string) ([]TextEdit, error) {
	name, ok := variableNameAt(sheet, offset)
	if !ok {
		return nil, fmt.Errorf("no renameable symbol at offset %d", offset)
	}
	newName = withSigil(name, newName)
	var edits []TextEdit
	if v := sheet.VariableNamed(name); v != nil {
		edits = append(edits, TextEdit{Span: v.Span, NewText: newName})
	}
	for _, ref := range sheet.RefsNamed(name) {
		edits = append(edits, TextEdit{Span: ref.Span, NewText: newName})
	}
	if len(edits) == 0 {
		return nil, fmt.Errorf("no occurrences of %s", name)
	}
	return edits, nil
}

// withSigil carries the old name's sigil ($, @, --) over to the new
// name when the caller omitted it.
func withSigil(oldName, newName string) string {
	for _, sigil := range []string{"--", "$", "@"} {
		if strings.HasPrefix(oldName, sigil) {
			if !strings.HasPrefix(newName, sigil) {
				return sigil + newName
			}
			return newName
		}
	}
	return newName
}

// CodeActions proposes quick fixes for the given diagnostics: renaming
// a typo'd property to the closest known one, and removing empty
// rulesets.
func (s *Service) CodeActions(sheet *Stylesheet, diags []Diagnostic) []CodeAction {
	var actions []CodeAction
	for i := range diags {
		diag := diags[i]
		switch diag.Code {
		case CodeUnknownProperties:
			name := sheet.Source[diag.Start:diag.End]
			if suggestion, ok := ClosestProperty(strings.ToLower(name)); ok {
				actions = append(actions, CodeAction{
					Title: fmt.Sprintf("Rename to '%s'", suggestion),
					Edits: []TextEdit{{Span: diag.Span, NewText: suggestion}},
					Fixes: &diag,
				})
			}
		case CodeEmptyRules:
			actions = append(actions, CodeAction{
				Title: "Remove empty ruleset",
				Edits: []TextEdit{{Span: diag.Span, NewText: ""}},
				Fixes: &diag,
			})
		}
	}
	return actions
}

// variableNameAt resolves the variable name whose definition or
// reference token contains the offset.
func variableNameAt(sheet *Stylesheet, offset int) (string, bool) {
	for _, v := range sheet.Variables {
		if v.Span.Contains(offset) {
			return v.Name, true
		}
	}
	for _, ref := range sheet.VarRefs {
		if ref.Span.Contains(offset) {
			return ref.Name, true
		}
	}
	return "", false
}

// wordBefore extracts the identifier characters immediately preceding
// the offset, used as a completion filter prefix.
func wordBefore(source string, offset int) string {
	if offset > len(source) {
		offset = len(source)
	}
	start := offset
	for start > 0 {
		c := source[start-1]
		if isIdentChar(c) || c == '$' || c == '@' {
			start--
			continue
		}
		break
	}
	return source[start:offset]
}
