// Copyright © 2025 The cssls authors

package css

import "strings"

// Parse builds a stylesheet model from source text. It is tolerant:
// it always returns a model, accumulating syntax problems in
// Stylesheet.Errors instead of failing.
func Parse(uri, content string, dialect Dialect) *Stylesheet {
	sc := newScanner(content, dialect)
	p := &parser{
		toks: sc.scanAll(),
		sheet: &Stylesheet{
			URI:     uri,
			Dialect: dialect,
			Source:  content,
		},
		dialect: dialect,
	}
	p.sheet.Errors = append(p.sheet.Errors, sc.errors...)
	rules, decls := p.parseBlock(0)
	p.sheet.Rules = rules
	for _, d := range decls {
		// Only variable definitions are valid outside a block.
		if !p.isVariableDeclaration(d) {
			p.errorf(d.Span, "declaration outside of a rule")
		}
	}
	return p.sheet
}

type parser struct {
	toks    []Token
	pos     int
	sheet   *Stylesheet
	dialect Dialect
}

func (p *parser) peek() Token {
	return p.peekAt(p.pos)
}

func (p *parser) peekAt(i int) Token {
	if i >= len(p.toks) {
		end := len(p.sheet.Source)
		return Token{Kind: TokenEOF, Start: end, End: end}
	}
	return p.toks[i]
}

func (p *parser) errorf(span Span, msg string) {
	p.sheet.Errors = append(p.sheet.Errors, &ParseError{Span: span, Message: msg})
}

// parseBlock parses rule and declaration content until a closing brace
// (left unconsumed for the caller) or end of input. depth 0 is the top
// level of the sheet.
func (p *parser) parseBlock(depth int) ([]*Rule, []*Declaration) {
	var rules []*Rule
	var decls []*Declaration
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF:
			return rules, decls
		case TokenRBrace:
			if depth == 0 {
				p.errorf(Span{Start: tok.Start, End: tok.End}, "unexpected '}'")
				p.pos++
				continue
			}
			return rules, decls
		case TokenSemicolon:
			p.pos++
			continue
		}

		if p.blockAhead() {
			if r := p.parseRule(depth); r != nil {
				rules = append(rules, r)
			}
			continue
		}

		// An at-keyword not followed by ':' is a block-less at-rule
		// (@import, @charset, @use, ...). With ':' it is a less
		// variable declaration.
		if tok.Kind == TokenAtKeyword && p.peekAt(p.pos+1).Kind != TokenColon {
			rules = append(rules, p.parseAtRuleNoBlock())
			continue
		}

		if d := p.parseDeclaration(); d != nil {
			decls = append(decls, d)
		}
	}
}

// blockAhead reports whether the upcoming tokens form a rule prelude,
// i.e. a '{' appears before any ';' or '}' at bracket depth zero.
// This is how selectors containing ':' (a:hover) are told apart from
// declarations.
func (p *parser) blockAhead() bool {
	nest := 0
	for i := p.pos; i < len(p.toks); i++ {
		switch p.toks[i].Kind {
		case TokenLParen, TokenLBracket:
			nest++
		case TokenRParen, TokenRBracket:
			if nest > 0 {
				nest--
			}
		case TokenLBrace:
			if nest == 0 {
				return true
			}
		case TokenSemicolon, TokenRBrace:
			if nest == 0 {
				return false
			}
		}
	}
	return false
}

// parseAtRuleNoBlock parses an at-rule terminated by a semicolon.
func (p *parser) parseAtRuleNoBlock() *Rule {
	kw := p.peek()
	p.pos++
	end := kw.End
	preludeEnd := kw.End
	for {
		tok := p.peek()
		if tok.Kind == TokenEOF || tok.Kind == TokenRBrace {
			break
		}
		p.pos++
		end = tok.End
		if tok.Kind == TokenSemicolon {
			break
		}
		preludeEnd = tok.End
	}
	return &Rule{
		Span:      Span{Start: kw.Start, End: end},
		AtKeyword: kw.Text,
		Prelude:   strings.TrimSpace(p.sheet.Source[kw.End:preludeEnd]),
	}
}

// parseRule parses a ruleset or at-rule with a block starting at the
// current token.
func (p *parser) parseRule(depth int) *Rule {
	start := p.peek()
	preludeStart := p.pos
	for p.peek().Kind != TokenLBrace && p.peek().Kind != TokenEOF {
		p.pos++
	}
	prelude := p.toks[preludeStart:p.pos]
	lbrace := p.peek()
	p.pos++ // consume '{'

	rule := &Rule{Span: Span{Start: start.Start}}
	if len(prelude) > 0 && prelude[0].Kind == TokenAtKeyword {
		rule.AtKeyword = prelude[0].Text
		rule.Prelude = strings.TrimSpace(p.sheet.Source[prelude[0].End:lbrace.Start])
	} else {
		rule.Selectors = p.parseSelectors(prelude)
		if len(rule.Selectors) == 0 {
			p.errorf(Span{Start: start.Start, End: lbrace.End}, "expected selector")
		}
	}

	bodyStart := lbrace.End
	rule.Children, rule.Declarations = p.parseBlock(depth + 1)

	end := p.peek()
	if end.Kind == TokenRBrace {
		p.pos++
		rule.Span.End = end.End
		rule.Body = Span{Start: bodyStart, End: end.Start}
	} else {
		p.errorf(Span{Start: lbrace.Start, End: lbrace.End}, "expected '}'")
		rule.Span.End = end.End
		rule.Body = Span{Start: bodyStart, End: end.End}
	}
	return rule
}

// parseSelectors splits prelude tokens on commas and parses each
// selector's structure.
func (p *parser) parseSelectors(prelude []Token) []*Selector {
	var out []*Selector
	group := func(toks []Token) {
		if len(toks) == 0 {
			return
		}
		span := Span{Start: toks[0].Start, End: toks[len(toks)-1].End}
		text := strings.TrimSpace(p.sheet.Source[span.Start:span.End])
		sel := &Selector{Span: span, Text: text}
		sel.Parts, sel.Specificity = parseSelector(text)
		out = append(out, sel)
	}
	var cur []Token
	for _, t := range prelude {
		if t.Kind == TokenComma {
			group(cur)
			cur = nil
			continue
		}
		cur = append(cur, t)
	}
	group(cur)
	return out
}

// parseDeclaration parses "property: value" up to a ';', '}', or end
// of input. Returns nil when the input is unusable (the error is
// recorded and tokens are skipped).
func (p *parser) parseDeclaration() *Declaration {
	prop := p.peek()
	switch prop.Kind {
	case TokenIdent, TokenDollarIdent, TokenAtKeyword:
	default:
		p.errorf(Span{Start: prop.Start, End: prop.End}, "expected property name")
		p.skipToDeclEnd()
		return nil
	}
	p.pos++

	if p.peek().Kind != TokenColon {
		p.errorf(Span{Start: prop.Start, End: prop.End}, "expected ':' after "+prop.Text)
		p.skipToDeclEnd()
		return nil
	}
	p.pos++ // consume ':'

	valueStart := -1
	valueEnd := -1
	nest := 0
scan:
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF, TokenRBrace:
			break scan
		case TokenSemicolon:
			if nest == 0 {
				p.pos++
				break scan
			}
		case TokenLParen, TokenLBracket:
			nest++
		case TokenRParen, TokenRBracket:
			if nest > 0 {
				nest--
			}
		case TokenColon:
			if nest == 0 && p.pos > 0 && p.toks[p.pos-1].Kind == TokenIdent && p.toks[p.pos-1].Start > valueStart {
				// "color: red background: blue" is a missed semicolon.
				// Rewind so the trailing ident starts a new declaration.
				p.errorf(Span{Start: tok.Start, End: tok.End}, "expected ';'")
				p.pos--
				if p.pos > 0 {
					valueEnd = p.toks[p.pos-1].End
				}
				break scan
			}
		}
		if valueStart < 0 {
			valueStart = tok.Start
		}
		valueEnd = tok.End
		p.recordVarRef(tok)
		p.pos++
	}

	decl := &Declaration{
		Property: prop.Text,
		PropSpan: Span{Start: prop.Start, End: prop.End},
		Custom:   strings.HasPrefix(prop.Text, "--"),
	}
	if valueStart >= 0 && valueStart < valueEnd {
		decl.ValueSpan = Span{Start: valueStart, End: valueEnd}
		decl.Value = strings.TrimSpace(p.sheet.Source[valueStart:valueEnd])
	} else {
		p.errorf(Span{Start: prop.Start, End: prop.End}, "expected value for "+prop.Text)
	}
	decl.Span = Span{Start: prop.Start, End: max(prop.End, valueEnd)}

	p.recordVariableDef(prop, decl)
	return decl
}

// recordVariableDef registers scss/less variable and custom property
// definitions on the sheet.
func (p *parser) recordVariableDef(prop Token, decl *Declaration) {
	var kind VarKind
	switch {
	case decl.Custom:
		kind = VarCustomProperty
	case prop.Kind == TokenDollarIdent:
		kind = VarSCSS
	case prop.Kind == TokenAtKeyword && p.dialect == DialectLESS:
		kind = VarLESS
	default:
		return
	}
	p.sheet.Variables = append(p.sheet.Variables, &Variable{
		Name:  prop.Text,
		Kind:  kind,
		Span:  decl.PropSpan,
		Value: decl.Value,
	})
}

// recordVarRef registers variable references found in declaration
// values: $name, @name (less), and var(--name).
func (p *parser) recordVarRef(tok Token) {
	switch tok.Kind {
	case TokenDollarIdent:
		p.addRef(tok)
	case TokenAtKeyword:
		if p.dialect == DialectLESS {
			p.addRef(tok)
		}
	case TokenIdent:
		if strings.HasPrefix(tok.Text, "--") && p.insideVarCall() {
			p.addRef(tok)
		}
	}
}

// insideVarCall reports whether the current token is directly preceded
// by "var(".
func (p *parser) insideVarCall() bool {
	return p.pos >= 2 &&
		p.toks[p.pos-1].Kind == TokenLParen &&
		p.toks[p.pos-2].Kind == TokenIdent &&
		strings.EqualFold(p.toks[p.pos-2].Text, "var")
}

func (p *parser) addRef(tok Token) {
	p.sheet.VarRefs = append(p.sheet.VarRefs, &VarRef{
		Name: tok.Text,
		Span: Span{Start: tok.Start, End: tok.End},
	})
}

func (p *parser) isVariableDeclaration(decl *Declaration) bool {
	if decl.Custom {
		return true
	}
	switch p.dialect {
	case DialectSCSS:
		return strings.HasPrefix(decl.Property, "$")
	case DialectLESS:
		return strings.HasPrefix(decl.Property, "@")
	}
	return false
}

func (p *parser) skipToDeclEnd() {
	nest := 0
	for {
		tok := p.peek()
		switch tok.Kind {
		case TokenEOF, TokenRBrace:
			return
		case TokenSemicolon:
			if nest == 0 {
				p.pos++
				return
			}
		case TokenLParen, TokenLBracket:
			nest++
		case TokenRParen, TokenRBracket:
			if nest > 0 {
				nest--
			}
		}
		p.pos++
	}
}
