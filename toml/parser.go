package toml

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Table is a decoded TOML table; values are string, int64, float64, bool, []any, Table or []Table
type Table = map[string]any

// Parser builds a Table tree from a token stream
type Parser struct {
	lex  *Lexer
	tok  Token
	root Table
	cur  Table

	// explicit [header] tables, to reject redefinition
	declared map[string]bool
}

func NewParser(src []byte) *Parser {
	p := &Parser{
		lex:      NewLexer(src),
		root:     make(Table),
		declared: make(map[string]bool),
	}
	p.cur = p.root
	p.advance()
	return p
}

// Parse parses the whole document into a Table tree
func Parse(src []byte) (Table, error) {
	return NewParser(src).Parse()
}

func (p *Parser) Parse() (Table, error) {
	for {
		switch p.tok.Kind {
		case KindEOF:
			return p.root, nil
		case KindNewline:
			p.advance()
			continue
		case KindLBracket:
			if err := p.header(); err != nil {
				return nil, err
			}
		case KindKey, KindString, KindInt, KindBool:
			if err := p.keyValue(p.cur); err != nil {
				return nil, err
			}
		default:
			return nil, p.errorf("unexpected %s", p.tok)
		}

		// Every statement ends the line
		if p.tok.Kind != KindNewline && p.tok.Kind != KindEOF {
			return nil, p.errorf("expected end of line, got %s", p.tok)
		}
	}
}

func (p *Parser) advance() {
	p.tok = p.lex.Next()
}

func (p *Parser) errorf(format string, args ...any) error {
	if p.tok.Kind == KindError {
		return &SyntaxError{Pos: p.tok.Pos, Msg: p.tok.Text}
	}
	return &SyntaxError{Pos: p.tok.Pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *Parser) expect(k Kind) error {
	if p.tok.Kind != k {
		return p.errorf("expected %s, got %s", k, p.tok)
	}
	p.advance()
	return nil
}

// header handles [a.b] and [[a.b]]
func (p *Parser) header() error {
	p.advance()
	array := false
	if p.tok.Kind == KindLBracket {
		array = true
		p.advance()
	}

	path, err := p.key()
	if err != nil {
		return err
	}
	if err := p.expect(KindRBracket); err != nil {
		return err
	}
	if array {
		if err := p.expect(KindRBracket); err != nil {
			return err
		}
	}

	parent, err := p.descend(p.root, path[:len(path)-1])
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	name := strings.Join(path, ".")

	if array {
		list, ok := parent[last].([]Table)
		if _, exists := parent[last]; exists && !ok {
			return p.errorf("%s is not an array of tables", name)
		}
		t := make(Table)
		parent[last] = append(list, t)
		p.cur = t
		return nil
	}

	if p.declared[name] {
		return p.errorf("table %s defined twice", name)
	}
	p.declared[name] = true
	switch existing := parent[last].(type) {
	case nil:
		t := make(Table)
		parent[last] = t
		p.cur = t
	case Table:
		p.cur = existing
	default:
		return p.errorf("%s is already a value", name)
	}
	return nil
}

// descend walks (creating as needed) into nested tables; arrays of tables resolve to their last entry
func (p *Parser) descend(t Table, path []string) (Table, error) {
	for _, k := range path {
		switch v := t[k].(type) {
		case nil:
			next := make(Table)
			t[k] = next
			t = next
		case Table:
			t = v
		case []Table:
			if len(v) == 0 {
				return nil, p.errorf("array of tables %s is empty", k)
			}
			t = v[len(v)-1]
		default:
			return nil, p.errorf("key %s is not a table", k)
		}
	}
	return t, nil
}

// key reads a possibly dotted key
func (p *Parser) key() ([]string, error) {
	var parts []string
	for {
		switch p.tok.Kind {
		case KindKey, KindString, KindInt, KindBool:
			parts = append(parts, p.tok.Text)
		case KindFloat:
			// "1.2 = x" lexes as a float; split it back into two key parts
			parts = append(parts, strings.Split(p.tok.Text, ".")...)
		default:
			return nil, p.errorf("expected key, got %s", p.tok)
		}
		p.advance()
		if p.tok.Kind != KindDot {
			return parts, nil
		}
		p.advance()
	}
}

func (p *Parser) keyValue(scope Table) error {
	path, err := p.key()
	if err != nil {
		return err
	}
	if err := p.expect(KindEqual); err != nil {
		return err
	}
	val, err := p.value()
	if err != nil {
		return err
	}

	parent, err := p.descend(scope, path[:len(path)-1])
	if err != nil {
		return err
	}
	last := path[len(path)-1]
	if _, exists := parent[last]; exists {
		return p.errorf("duplicate key %s", strings.Join(path, "."))
	}
	parent[last] = val
	return nil
}

func (p *Parser) value() (any, error) {
	tok := p.tok
	switch tok.Kind {
	case KindString:
		p.advance()
		return tok.Text, nil
	case KindBool:
		p.advance()
		return tok.Text == "true", nil
	case KindInt:
		n, err := parseInt(tok.Text)
		if err != nil {
			return nil, p.errorf("integer %q: %v", tok.Text, err)
		}
		p.advance()
		return n, nil
	case KindFloat:
		f, err := parseFloat(tok.Text)
		if err != nil {
			return nil, p.errorf("float %q: %v", tok.Text, err)
		}
		p.advance()
		return f, nil
	case KindLBracket:
		return p.array()
	case KindLBrace:
		return p.inlineTable()
	}
	return nil, p.errorf("expected value, got %s", tok)
}

func (p *Parser) skipNewlines() {
	for p.tok.Kind == KindNewline {
		p.advance()
	}
}

func (p *Parser) array() ([]any, error) {
	p.advance()
	out := make([]any, 0)
	for {
		p.skipNewlines()
		if p.tok.Kind == KindRBracket {
			p.advance()
			return out, nil
		}
		v, err := p.value()
		if err != nil {
			return nil, err
		}
		out = append(out, v)

		p.skipNewlines()
		switch p.tok.Kind {
		case KindComma:
			p.advance()
		case KindRBracket:
		default:
			return nil, p.errorf("expected ',' or ']' in array, got %s", p.tok)
		}
	}
}

func (p *Parser) inlineTable() (Table, error) {
	p.advance()
	t := make(Table)
	if p.tok.Kind == KindRBrace {
		p.advance()
		return t, nil
	}
	for {
		if err := p.keyValue(t); err != nil {
			return nil, err
		}
		switch p.tok.Kind {
		case KindComma:
			p.advance()
		case KindRBrace:
			p.advance()
			return t, nil
		default:
			return nil, p.errorf("expected ',' or '}' in inline table, got %s", p.tok)
		}
	}
}

func parseInt(s string) (int64, error) {
	body := strings.TrimLeft(s, "+-")
	if len(body) > 2 && body[0] == '0' && strings.ContainsRune("xob", rune(body[1])) {
		// Prefixed forms go through base detection, which also accepts underscores
		return strconv.ParseInt(s, 0, 64)
	}
	if len(body) > 1 && body[0] == '0' {
		return 0, fmt.Errorf("leading zero")
	}
	return strconv.ParseInt(strings.ReplaceAll(s, "_", ""), 10, 64)
}

func parseFloat(s string) (float64, error) {
	switch strings.TrimLeft(s, "+") {
	case "inf":
		return math.Inf(1), nil
	case "-inf":
		return math.Inf(-1), nil
	case "nan", "-nan":
		return math.NaN(), nil
	}
	return strconv.ParseFloat(strings.ReplaceAll(s, "_", ""), 64)
}
