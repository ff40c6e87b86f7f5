// Copyright © 2025 The cssls authors

package css

// TokenKind classifies a scanned token.
type TokenKind int

const (
	TokenEOF TokenKind = iota
	TokenIdent
	TokenAtKeyword   // @media, @import, or a less variable
	TokenDollarIdent // scss variable
	TokenHash        // #id selector or hex color
	TokenNumber      // number with optional unit or % suffix
	TokenString
	TokenBadString // unterminated string literal
	TokenColon
	TokenSemicolon
	TokenComma
	TokenLBrace
	TokenRBrace
	TokenLParen
	TokenRParen
	TokenLBracket
	TokenRBracket
	TokenDelim // any other single character
)

// Token is a lexical token with its source span.
type Token struct {
	Kind  TokenKind
	Start int
	End   int
	Text  string
}

// scanner tokenizes stylesheet source. It never fails: malformed input
// produces error tokens (e.g. TokenBadString) and scan errors that the
// parser records on the model.
type scanner struct {
	src     string
	pos     int
	dialect Dialect
	errors  []*ParseError
}

func newScanner(src string, dialect Dialect) *scanner {
	return &scanner{src: src, dialect: dialect}
}

// scanAll tokenizes the entire source, excluding the trailing EOF token.
func (s *scanner) scanAll() []Token {
	var toks []Token
	for {
		t := s.next()
		if t.Kind == TokenEOF {
			return toks
		}
		toks = append(toks, t)
	}
}

func (s *scanner) next() Token {
	s.skipSpaceAndComments()
	if s.pos >= len(s.src) {
		return Token{Kind: TokenEOF, Start: s.pos, End: s.pos}
	}
	start := s.pos
	c := s.src[s.pos]

	switch c {
	case ':':
		return s.single(TokenColon)
	case ';':
		return s.single(TokenSemicolon)
	case ',':
		return s.single(TokenComma)
	case '{':
		return s.single(TokenLBrace)
	case '}':
		return s.single(TokenRBrace)
	case '(':
		return s.single(TokenLParen)
	case ')':
		return s.single(TokenRParen)
	case '[':
		return s.single(TokenLBracket)
	case ']':
		return s.single(TokenRBracket)
	case '"', '\'':
		return s.scanString(c)
	case '@':
		if s.pos+1 < len(s.src) && isIdentStart(s.src[s.pos+1]) {
			s.pos++
			s.scanIdentTail()
			return s.emit(TokenAtKeyword, start)
		}
		return s.single(TokenDelim)
	case '$':
		if s.dialect == DialectSCSS && s.pos+1 < len(s.src) && isIdentStart(s.src[s.pos+1]) {
			s.pos++
			s.scanIdentTail()
			return s.emit(TokenDollarIdent, start)
		}
		return s.single(TokenDelim)
	case '#':
		if s.pos+1 < len(s.src) && isIdentChar(s.src[s.pos+1]) {
			s.pos++
			s.scanIdentTail()
			return s.emit(TokenHash, start)
		}
		return s.single(TokenDelim)
	}

	if isDigit(c) || (c == '.' && s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1])) {
		return s.scanNumber(start)
	}
	if c == '-' {
		// "-5" is a number; "-webkit-box" and "--custom-prop" are idents.
		if s.pos+1 < len(s.src) && isDigit(s.src[s.pos+1]) {
			s.pos++
			return s.scanNumber(start)
		}
		if s.pos+1 < len(s.src) && (isIdentStart(s.src[s.pos+1]) || s.src[s.pos+1] == '-') {
			s.scanIdentTail()
			return s.emit(TokenIdent, start)
		}
		return s.single(TokenDelim)
	}
	if isIdentStart(c) {
		s.scanIdentTail()
		return s.emit(TokenIdent, start)
	}
	return s.single(TokenDelim)
}

func (s *scanner) single(kind TokenKind) Token {
	start := s.pos
	s.pos++
	return s.emit(kind, start)
}

func (s *scanner) emit(kind TokenKind, start int) Token {
	return Token{Kind: kind, Start: start, End: s.pos, Text: s.src[start:s.pos]}
}

func (s *scanner) scanIdentTail() {
	for s.pos < len(s.src) && isIdentChar(s.src[s.pos]) {
		s.pos++
	}
}

func (s *scanner) scanNumber(start int) Token {
	for s.pos < len(s.src) && (isDigit(s.src[s.pos]) || s.src[s.pos] == '.') {
		s.pos++
	}
	// Unit or percent suffix becomes part of the number token.
	if s.pos < len(s.src) && s.src[s.pos] == '%' {
		s.pos++
	} else {
		for s.pos < len(s.src) && isIdentStart(s.src[s.pos]) {
			s.pos++
		}
	}
	return s.emit(TokenNumber, start)
}

func (s *scanner) scanString(quote byte) Token {
	start := s.pos
	s.pos++
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		if c == quote {
			s.pos++
			return s.emit(TokenString, start)
		}
		if c == '\n' {
			break
		}
		if c == '\\' && s.pos+1 < len(s.src) {
			s.pos++ // skip escaped character
		}
		s.pos++
	}
	s.errors = append(s.errors, &ParseError{
		Span:    Span{Start: start, End: s.pos},
		Message: "unterminated string",
	})
	return s.emit(TokenBadString, start)
}

func (s *scanner) skipSpaceAndComments() {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\n' || c == '\r':
			s.pos++
		case c == '/' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '*':
			start := s.pos
			s.pos += 2
			closed := false
			for s.pos+1 < len(s.src) {
				if s.src[s.pos] == '*' && s.src[s.pos+1] == '/' {
					s.pos += 2
					closed = true
					break
				}
				s.pos++
			}
			if !closed {
				s.pos = len(s.src)
				s.errors = append(s.errors, &ParseError{
					Span:    Span{Start: start, End: s.pos},
					Message: "unterminated comment",
				})
			}
		case c == '/' && s.dialect.lineComments() && s.pos+1 < len(s.src) && s.src[s.pos+1] == '/':
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
		default:
			return
		}
	}
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isIdentStart(c byte) bool {
	return c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c == '_' || c >= 0x80
}

func isIdentChar(c byte) bool {
	return isIdentStart(c) || isDigit(c) || c == '-'
}
