// Copyright © 2025 The cssls authors

package css

import (
	parsec "github.com/prataprc/goparsec"
)

// SelectorPartKind classifies one component of a parsed selector.
type SelectorPartKind int

const (
	PartElement SelectorPartKind = iota
	PartClass
	PartID
	PartPseudoClass
	PartPseudoElement
	PartAttribute
	PartCombinator
	PartNesting // & in scss/less
	PartOpaque  // unparseable selector text kept verbatim
)

// SelectorPart is one component of a selector.
type SelectorPart struct {
	Kind  SelectorPartKind
	Value string
}

// Specificity is a CSS selector specificity triple (id, class, type).
type Specificity struct {
	ID    int
	Class int
	Type  int
}

// selectorGrammar builds the goparsec parser for a single selector.
// Attribute blocks and pseudo arguments are matched opaquely; the
// grammar classifies parts, it does not validate them.
func selectorGrammar() parsec.Parser {
	element := parsec.Token(`(?:\*|[a-zA-Z][\w-]*)`, "ELEMENT")
	class := parsec.Token(`\.-?[a-zA-Z_][\w-]*`, "CLASS")
	id := parsec.Token(`#[a-zA-Z_][\w-]*`, "ID")
	pseudoElement := parsec.Token(`::[a-zA-Z-]+(\([^)]*\))?`, "PSEUDOELEMENT")
	pseudoClass := parsec.Token(`:[a-zA-Z-]+(\([^)]*\))?`, "PSEUDOCLASS")
	attribute := parsec.Token(`\[[^\]]*\]`, "ATTRIBUTE")
	nesting := parsec.Token(`&`, "NESTING")
	combinator := parsec.Token(`[>+~]`, "COMBINATOR")

	part := parsec.OrdChoice(nil,
		class,
		id,
		pseudoElement,
		pseudoClass, // after pseudo-element; ':' is a prefix of '::'
		attribute,
		nesting,
		combinator,
		element, // last; it matches the widest set of tokens
	)
	return parsec.Kleene(nil, part)
}

// parseSelector parses selector text into classified parts and
// computes its specificity. Unparseable text degrades to a single
// opaque part with zero specificity. Selectors never fail hard,
// mirroring the server's lenient handling of unknown input.
func parseSelector(text string) ([]SelectorPart, Specificity) {
	if text == "" {
		return nil, Specificity{}
	}
	s := parsec.NewScanner([]byte(text))
	node, s := selectorGrammar()(s)
	parts := collectSelectorParts(node)
	_, s = s.SkipWS()
	if len(parts) == 0 || !s.Endof() {
		return []SelectorPart{{Kind: PartOpaque, Value: text}}, Specificity{}
	}
	return parts, computeSpecificity(parts)
}

// collectSelectorParts flattens the parsec node tree into parts.
func collectSelectorParts(node parsec.ParsecNode) []SelectorPart {
	var parts []SelectorPart
	switch n := node.(type) {
	case *parsec.Terminal:
		if p, ok := terminalPart(n); ok {
			parts = append(parts, p)
		}
	case []parsec.ParsecNode:
		for _, c := range n {
			parts = append(parts, collectSelectorParts(c)...)
		}
	}
	return parts
}

func terminalPart(t *parsec.Terminal) (SelectorPart, bool) {
	var kind SelectorPartKind
	switch t.GetName() {
	case "ELEMENT":
		kind = PartElement
	case "CLASS":
		kind = PartClass
	case "ID":
		kind = PartID
	case "PSEUDOCLASS":
		kind = PartPseudoClass
	case "PSEUDOELEMENT":
		kind = PartPseudoElement
	case "ATTRIBUTE":
		kind = PartAttribute
	case "COMBINATOR":
		kind = PartCombinator
	case "NESTING":
		kind = PartNesting
	default:
		return SelectorPart{}, false
	}
	return SelectorPart{Kind: kind, Value: t.GetValue()}, true
}

// computeSpecificity applies the standard specificity rules: ids;
// classes, attributes and pseudo-classes; elements and
// pseudo-elements. The universal selector and combinators count for
// nothing.
func computeSpecificity(parts []SelectorPart) Specificity {
	var spec Specificity
	for _, p := range parts {
		switch p.Kind {
		case PartID:
			spec.ID++
		case PartClass, PartAttribute, PartPseudoClass:
			spec.Class++
		case PartPseudoElement:
			spec.Type++
		case PartElement:
			if p.Value != "*" {
				spec.Type++
			}
		}
	}
	return spec
}
