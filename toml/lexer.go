package toml

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Lexer splits a document into tokens; comments and insignificant blanks are dropped
type Lexer struct {
	src  []byte
	off  int
	line int
	col  int
}

func NewLexer(src []byte) *Lexer {
	return &Lexer{src: src, line: 1, col: 1}
}

// Next returns the next token; after KindEOF or KindError it keeps returning the same kind
func (l *Lexer) Next() Token {
	l.skipBlank()

	start := Pos{Line: l.line, Col: l.col}
	if l.off >= len(l.src) {
		return Token{Kind: KindEOF, Pos: start}
	}

	ch := l.peek()
	if k, ok := punct(ch); ok {
		l.read()
		return Token{Kind: k, Text: string(ch), Pos: start}
	}

	switch {
	case ch == '\n':
		l.read()
		return Token{Kind: KindNewline, Pos: start}
	case ch == '"':
		return l.basicString(start)
	case ch == '\'':
		return l.literalString(start)
	case isBareChar(ch) || ch == '+':
		return l.word(start)
	}

	l.read()
	return l.fail(start, "unexpected character %q", ch)
}

func punct(ch rune) (Kind, bool) {
	switch ch {
	case '=':
		return KindEqual, true
	case '.':
		return KindDot, true
	case ',':
		return KindComma, true
	case '[':
		return KindLBracket, true
	case ']':
		return KindRBracket, true
	case '{':
		return KindLBrace, true
	case '}':
		return KindRBrace, true
	}
	return 0, false
}

func (l *Lexer) peek() rune {
	if l.off >= len(l.src) {
		return 0
	}
	r, _ := utf8.DecodeRune(l.src[l.off:])
	return r
}

func (l *Lexer) read() rune {
	if l.off >= len(l.src) {
		return 0
	}
	r, w := utf8.DecodeRune(l.src[l.off:])
	l.off += w
	if r == '\n' {
		l.line++
		l.col = 1
	} else {
		l.col++
	}
	return r
}

// skipBlank consumes spaces, tabs, CR and comments up to (not including) the newline
func (l *Lexer) skipBlank() {
	for l.off < len(l.src) {
		switch l.peek() {
		case ' ', '\t', '\r':
			l.read()
		case '#':
			for l.off < len(l.src) && l.peek() != '\n' {
				l.read()
			}
		default:
			return
		}
	}
}

func (l *Lexer) fail(at Pos, format string, args ...any) Token {
	l.off = len(l.src)
	return Token{Kind: KindError, Text: fmt.Sprintf(format, args...), Pos: at}
}

func (l *Lexer) basicString(start Pos) Token {
	l.read()
	var b strings.Builder
	for {
		if l.off >= len(l.src) {
			return l.fail(start, "unterminated string")
		}
		ch := l.read()
		switch ch {
		case '"':
			return Token{Kind: KindString, Text: b.String(), Pos: start}
		case '\n':
			return l.fail(start, "newline in basic string")
		case '\\':
			esc := l.read()
			switch esc {
			case '"', '\\':
				b.WriteRune(esc)
			case 'n':
				b.WriteByte('\n')
			case 't':
				b.WriteByte('\t')
			case 'r':
				b.WriteByte('\r')
			default:
				return l.fail(start, "unsupported escape \\%c", esc)
			}
		default:
			b.WriteRune(ch)
		}
	}
}

func (l *Lexer) literalString(start Pos) Token {
	l.read()
	from := l.off
	for l.off < len(l.src) {
		switch l.peek() {
		case '\'':
			text := string(l.src[from:l.off])
			l.read()
			return Token{Kind: KindString, Text: text, Pos: start}
		case '\n':
			return l.fail(start, "newline in literal string")
		}
		l.read()
	}
	return l.fail(start, "unterminated string")
}

// word reads a bare key, boolean or number; classification happens on the full run
func (l *Lexer) word(start Pos) Token {
	from := l.off
	numeric := isDigit(l.peek()) || l.peek() == '+' || l.peek() == '-'
	for l.off < len(l.src) {
		ch := l.peek()
		if isBareChar(ch) || ch == '+' || (numeric && ch == '.') {
			l.read()
			continue
		}
		break
	}
	text := string(l.src[from:l.off])

	switch text {
	case "true", "false":
		return Token{Kind: KindBool, Text: text, Pos: start}
	case "inf", "+inf", "-inf", "nan", "+nan", "-nan":
		return Token{Kind: KindFloat, Text: text, Pos: start}
	}
	if numeric {
		if kind, ok := classifyNumber(text); ok {
			return Token{Kind: kind, Text: text, Pos: start}
		}
		if strings.ContainsAny(text, ".+") {
			return l.fail(start, "malformed number %q", text)
		}
	}
	return Token{Kind: KindKey, Text: text, Pos: start}
}

// classifyNumber accepts decimal ints, 0x/0o/0b ints and decimal floats with optional exponent
func classifyNumber(s string) (Kind, bool) {
	body := strings.TrimLeft(s, "+-")
	if len(s)-len(body) > 1 || body == "" {
		return 0, false
	}
	if len(body) > 2 && body[0] == '0' && strings.ContainsRune("xob", rune(body[1])) {
		return KindInt, len(body) == len(s)
	}

	digits, dot, exp := 0, false, false
	for i := 0; i < len(body); i++ {
		c := body[i]
		switch {
		case c >= '0' && c <= '9':
			digits++
		case c == '_':
			if i == 0 || i == len(body)-1 {
				return 0, false
			}
		case c == '.':
			if dot || exp || digits == 0 {
				return 0, false
			}
			dot = true
		case c == 'e' || c == 'E':
			if exp || digits == 0 {
				return 0, false
			}
			exp = true
			if i+1 < len(body) && (body[i+1] == '+' || body[i+1] == '-') {
				i++
			}
		default:
			return 0, false
		}
	}
	if digits == 0 || strings.HasSuffix(body, ".") {
		return 0, false
	}
	if dot || exp {
		return KindFloat, true
	}
	return KindInt, true
}

func isDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isBareChar(r rune) bool {
	return (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || isDigit(r) || r == '_' || r == '-'
}
