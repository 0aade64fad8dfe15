package parse

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"
)

type tokenKind int

const (
	tokEOF tokenKind = iota
	tokIdent
	tokKeyword
	tokInt
	tokFloat
	tokString
	tokFString
	tokPunct
	tokBad
)

var tokenKindNames = [...]string{
	tokEOF: "end of input", tokIdent: "identifier", tokKeyword: "keyword",
	tokInt: "integer", tokFloat: "number", tokString: "string",
	tokFString: "f-string", tokPunct: "punctuation", tokBad: "bad token",
}

func (k tokenKind) String() string { return tokenKindNames[k] }

var keywords = map[string]bool{
	"type": true, "is": true, "fn": true, "let": true, "var": true,
	"if": true, "else": true, "for": true, "in": true, "return": true,
	"true": true, "false": true, "nil": true,
}

// Punctuation, longest first so that the lexer can match greedily.
var puncts = []string{
	"+=", "-=", "*=", "/=", "=>", "==", "!=", "<=", ">=", "&&", "||",
	"(", ")", "{", "}", "[", "]", ",", ";", ":", ".", "=",
	"+", "-", "*", "/", "%", "<", ">", "!",
}

type token struct {
	kind tokenKind
	// Source text of the token. For strings, the unquoted content with
	// escapes processed; for f-strings, the raw content between the quotes.
	text     string
	from, to int
	// Whether a newline separates this token from the previous one.
	nlBefore bool
	// For tokBad, a description of the problem.
	err string
}

func (t token) is(kind tokenKind, text string) bool { return t.kind == kind && t.text == text }

func (t token) describe() string {
	switch t.kind {
	case tokEOF:
		return "end of input"
	case tokString, tokFString:
		return fmt.Sprintf("string %q", t.text)
	}
	return fmt.Sprintf("%q", t.text)
}

type lexer struct {
	src      string
	pos, end int
}

func (lx *lexer) next() token {
	nl := lx.skipSpace()
	from := lx.pos
	tok := lx.scan()
	tok.from, tok.to, tok.nlBefore = from, lx.pos, nl
	return tok
}

// Skips whitespace and comments, returning whether a newline was skipped.
func (lx *lexer) skipSpace() bool {
	nl := false
	for lx.pos < lx.end {
		c := lx.src[lx.pos]
		switch {
		case c == '\n':
			nl = true
			lx.pos++
		case c == ' ' || c == '\t' || c == '\r':
			lx.pos++
		case strings.HasPrefix(lx.src[lx.pos:lx.end], "//"):
			for lx.pos < lx.end && lx.src[lx.pos] != '\n' {
				lx.pos++
			}
		default:
			return nl
		}
	}
	return nl
}

func (lx *lexer) scan() token {
	if lx.pos >= lx.end {
		return token{kind: tokEOF}
	}
	rest := lx.src[lx.pos:lx.end]
	r, size := utf8.DecodeRuneInString(rest)
	switch {
	case r == 'f' && strings.HasPrefix(rest, `f"`):
		lx.pos++
		return lx.scanString(true)
	case isIdentStart(r):
		i := 0
		for i < len(rest) {
			r, size := utf8.DecodeRuneInString(rest[i:])
			if !isIdentPart(r) {
				break
			}
			i += size
		}
		lx.pos += i
		if keywords[rest[:i]] {
			return token{kind: tokKeyword, text: rest[:i]}
		}
		return token{kind: tokIdent, text: rest[:i]}
	case '0' <= r && r <= '9':
		return lx.scanNumber()
	case r == '"':
		return lx.scanString(false)
	}
	for _, p := range puncts {
		if strings.HasPrefix(rest, p) {
			lx.pos += len(p)
			return token{kind: tokPunct, text: p}
		}
	}
	lx.pos += size
	return token{kind: tokBad, text: string(r), err: fmt.Sprintf("unexpected rune %q", r)}
}

func (lx *lexer) scanNumber() token {
	start := lx.pos
	digits := func() {
		for lx.pos < lx.end && ('0' <= lx.src[lx.pos] && lx.src[lx.pos] <= '9' || lx.src[lx.pos] == '_') {
			lx.pos++
		}
	}
	digits()
	kind := tokInt
	// A dot is part of the number only if a digit follows, so that "1.x"
	// stays a member access.
	if lx.pos+1 < lx.end && lx.src[lx.pos] == '.' && '0' <= lx.src[lx.pos+1] && lx.src[lx.pos+1] <= '9' {
		kind = tokFloat
		lx.pos++
		digits()
	}
	if lx.pos < lx.end && (lx.src[lx.pos] == 'e' || lx.src[lx.pos] == 'E') {
		kind = tokFloat
		lx.pos++
		if lx.pos < lx.end && (lx.src[lx.pos] == '+' || lx.src[lx.pos] == '-') {
			lx.pos++
		}
		digits()
	}
	return token{kind: kind, text: lx.src[start:lx.pos]}
}

// Scans a double-quoted string starting at lx.pos. For f-strings the raw
// content is kept, since interpolations are parsed later.
func (lx *lexer) scanString(raw bool) token {
	lx.pos++ // opening quote
	var sb strings.Builder
	var bad string
	start := lx.pos
	for lx.pos < lx.end {
		c := lx.src[lx.pos]
		switch c {
		case '"':
			lx.pos++
			switch {
			case bad != "":
				return token{kind: tokBad, text: lx.src[start-1 : lx.pos], err: bad}
			case raw:
				return token{kind: tokFString, text: lx.src[start : lx.pos-1]}
			}
			return token{kind: tokString, text: sb.String()}
		case '\n':
			return token{kind: tokBad, text: lx.src[start-1 : lx.pos], err: "unterminated string"}
		case '\\':
			if lx.pos+1 >= lx.end {
				lx.pos++
				continue
			}
			esc := lx.src[lx.pos+1]
			lx.pos += 2
			if raw {
				continue
			}
			switch esc {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case '"', '\\', '$':
				sb.WriteByte(esc)
			default:
				if bad == "" {
					bad = fmt.Sprintf("invalid escape sequence \\%c", esc)
				}
			}
		default:
			sb.WriteByte(c)
			lx.pos++
		}
	}
	return token{kind: tokBad, text: lx.src[start-1 : lx.pos], err: "unterminated string"}
}

func isIdentStart(r rune) bool { return r == '_' || unicode.IsLetter(r) }

func isIdentPart(r rune) bool { return isIdentStart(r) || unicode.IsDigit(r) }
