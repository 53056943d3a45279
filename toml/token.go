package toml

import (
	"fmt"
)

// Kind classifies a lexical token
type Kind int

const (
	KindError Kind = iota
	KindEOF
	KindNewline

	KindKey    // bare key
	KindString // "basic" or 'literal'
	KindInt
	KindFloat
	KindBool

	KindEqual    // =
	KindDot      // .
	KindComma    // ,
	KindLBracket // [
	KindRBracket // ]
	KindLBrace   // {
	KindRBrace   // }
)

var kindNames = [...]string{
	KindError:    "error",
	KindEOF:      "end of input",
	KindNewline:  "newline",
	KindKey:      "key",
	KindString:   "string",
	KindInt:      "integer",
	KindFloat:    "float",
	KindBool:     "boolean",
	KindEqual:    "'='",
	KindDot:      "'.'",
	KindComma:    "','",
	KindLBracket: "'['",
	KindRBracket: "']'",
	KindLBrace:   "'{'",
	KindRBrace:   "'}'",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// Pos is a 1-based source location
type Pos struct {
	Line int
	Col  int
}

func (p Pos) String() string {
	return fmt.Sprintf("%d:%d", p.Line, p.Col)
}

// Token is one lexeme with its decoded text
type Token struct {
	Kind Kind
	Text string
	Pos  Pos
}

func (t Token) String() string {
	switch t.Kind {
	case KindEOF, KindNewline:
		return t.Kind.String()
	case KindError:
		return "error: " + t.Text
	}
	if len(t.Text) > 24 {
		return fmt.Sprintf("%s %q...", t.Kind, t.Text[:24])
	}
	return fmt.Sprintf("%s %q", t.Kind, t.Text)
}

// SyntaxError reports a malformed document
type SyntaxError struct {
	Pos Pos
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("toml %s: %s", e.Pos, e.Msg)
}
