package locale

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf16"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/js"
	"gopkg.in/yaml.v3"
)

// ErrNoExport is returned when a locale source has no exported object
// constant.
var ErrNoExport = errors.New("no exported object literal found")

// ParseError reports a malformed object literal.
type ParseError struct {
	Line   int
	Column int
	Msg    string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%d:%d: %s", e.Line, e.Column, e.Msg)
}

// Source is a parsed locale file: `export const <Name>: <TypeName> = {...}`.
type Source struct {
	Name     string
	TypeName string
	Tree     *yaml.Node
}

// exportPattern matches the exported constant up to the opening brace of
// its object literal.
var exportPattern = regexp.MustCompile(`export\s+const\s+([A-Za-z_$][\w$]*)\s*(?::\s*([^=]+?))?\s*=\s*\{`)

var identPattern = regexp.MustCompile(`^[A-Za-z_$][\w$]*$`)

// Parse extracts the exported object literal from a locale source file.
// The literal is parsed as a JavaScript expression and converted node by
// node; only literal syntax is accepted and nothing is evaluated.
func Parse(src string) (*Source, error) {
	loc := exportPattern.FindStringSubmatchIndex(src)
	if loc == nil {
		return nil, ErrNoExport
	}
	out := &Source{Name: src[loc[2]:loc[3]]}
	if loc[4] >= 0 {
		out.TypeName = strings.TrimSpace(src[loc[4]:loc[5]])
	}

	// The TypeScript header is blanked out and replaced by "(" so the
	// literal parses as a plain expression while every offset, line and
	// column stays the same as in src.
	buf := make([]byte, len(src), len(src)+2)
	copy(buf, src)
	brace := loc[1] - 1
	for i := 0; i < brace; i++ {
		if buf[i] != '\n' {
			buf[i] = ' '
		}
	}
	buf[loc[0]] = '('

	p := &literalParser{src: src, buf: buf, brace: brace}
	end, err := p.end()
	if err != nil {
		return nil, err
	}
	p.buf = append(buf[:end], ')')
	ast, err := js.Parse(parse.NewInputBytes(p.buf), js.Options{})
	if err != nil {
		return nil, p.wrap(err)
	}
	lit, ok := p.literal(ast)
	if !ok {
		return nil, p.errorAt(brace, "expected an object literal")
	}
	tree, err := p.object(lit)
	if err != nil {
		return nil, err
	}
	out.Tree = tree
	return out, nil
}

type literalParser struct {
	src   string
	buf   []byte
	brace int
}

// end returns the offset just past the brace closing the literal.
func (p *literalParser) end() (int, error) {
	l := js.NewLexer(parse.NewInputBytes(p.buf))
	depth := 0
	for {
		tt, data := l.Next()
		switch tt {
		case js.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				return 0, p.wrap(err)
			}
			return 0, p.errorAt(len(p.src), "unexpected end of input, expected '}'")
		case js.OpenBraceToken:
			depth++
		case js.CloseBraceToken:
			depth--
			if depth == 0 {
				return p.offset(data) + 1, nil
			}
		}
	}
}

func (p *literalParser) literal(ast *js.AST) (*js.ObjectExpr, bool) {
	if ast == nil || len(ast.List) != 1 {
		return nil, false
	}
	stmt, ok := ast.List[0].(*js.ExprStmt)
	if !ok {
		return nil, false
	}
	expr := stmt.Value
	if group, ok := expr.(*js.GroupExpr); ok {
		expr = group.X
	}
	lit, ok := expr.(*js.ObjectExpr)
	return lit, ok
}

func (p *literalParser) object(obj *js.ObjectExpr) (*yaml.Node, error) {
	node := NewMapping()
	for _, prop := range obj.List {
		switch {
		case prop.Spread:
			return nil, p.errorNode(prop.Value, "spread elements are not supported")
		case prop.Name == nil:
			return nil, p.errorNode(prop.Value, "shorthand properties are not supported")
		case prop.Name.Computed != nil:
			return nil, p.errorNode(prop.Name.Computed, "computed keys are not supported")
		case prop.Init != nil:
			return nil, p.errorNode(prop.Init, "initializers are not supported")
		}
		key, err := p.key(prop.Name.Literal)
		if err != nil {
			return nil, err
		}
		val, err := p.value(prop.Value)
		if err != nil {
			return nil, err
		}
		Set(node, key, val)
	}
	return node, nil
}

func (p *literalParser) key(lit js.LiteralExpr) (string, error) {
	if lit.TokenType == js.StringToken {
		return p.unquote(lit.Data)
	}
	return string(lit.Data), nil
}

func (p *literalParser) value(expr js.IExpr) (*yaml.Node, error) {
	switch v := expr.(type) {
	case *js.ObjectExpr:
		return p.object(v)
	case *js.ArrayExpr:
		node := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, el := range v.List {
			if el.Value == nil {
				return nil, p.errorNode(expr, "array holes are not supported")
			}
			if el.Spread {
				return nil, p.errorNode(el.Value, "spread elements are not supported")
			}
			item, err := p.value(el.Value)
			if err != nil {
				return nil, err
			}
			node.Content = append(node.Content, item)
		}
		return node, nil
	case *js.TemplateExpr:
		if v.Tag != nil || len(v.List) > 0 {
			return nil, p.errorNode(expr, "template substitutions are not supported")
		}
		s, err := p.unquote(v.Tail)
		if err != nil {
			return nil, err
		}
		return NewString(s), nil
	case *js.UnaryExpr:
		if lit, ok := v.X.(*js.LiteralExpr); ok && v.Op == js.NegToken {
			if n := number("-" + string(lit.Data)); n != nil {
				return n, nil
			}
		}
	case *js.Var:
		if string(v.Data) == "undefined" {
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
	case *js.LiteralExpr:
		switch v.TokenType {
		case js.StringToken:
			s, err := p.unquote(v.Data)
			if err != nil {
				return nil, err
			}
			return NewString(s), nil
		case js.TrueToken, js.FalseToken:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!bool", Value: string(v.Data)}, nil
		case js.NullToken:
			return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}, nil
		}
		if n := number(string(v.Data)); n != nil {
			return n, nil
		}
	}
	return nil, p.errorNode(expr, fmt.Sprintf("unsupported expression %q", expr.String()))
}

func number(raw string) *yaml.Node {
	raw = strings.ReplaceAll(raw, "_", "")
	if _, err := strconv.ParseInt(raw, 0, 64); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: raw}
	}
	if _, err := strconv.ParseFloat(raw, 64); err == nil {
		return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!float", Value: raw}
	}
	return nil
}

// offset locates token data in the input buffer. The lexer and parser
// hand out subslices of buf, so the distance between capacities is the
// start offset.
func (p *literalParser) offset(data []byte) int {
	if data == nil {
		return -1
	}
	off := cap(p.buf) - cap(data)
	if off < 0 || off > len(p.src) {
		return -1
	}
	return off
}

// leftmost returns the token data where expr starts, when the node
// carries any.
func leftmost(expr js.IExpr) []byte {
	switch v := expr.(type) {
	case *js.Var:
		return v.Data
	case *js.LiteralExpr:
		return v.Data
	case *js.TemplateExpr:
		if v.Tag != nil {
			return leftmost(v.Tag)
		}
		if len(v.List) > 0 {
			return v.List[0].Value
		}
		return v.Tail
	case *js.BinaryExpr:
		return leftmost(v.X)
	case *js.UnaryExpr:
		return leftmost(v.X)
	case *js.CallExpr:
		return leftmost(v.X)
	case *js.DotExpr:
		return leftmost(v.X)
	case *js.IndexExpr:
		return leftmost(v.X)
	case *js.GroupExpr:
		return leftmost(v.X)
	case *js.CondExpr:
		return leftmost(v.Cond)
	}
	return nil
}

func (p *literalParser) errorNode(expr js.IExpr, msg string) *ParseError {
	off := p.offset(leftmost(expr))
	if off < 0 {
		off = p.brace
	}
	return p.errorAt(off, msg)
}

func (p *literalParser) errorAt(off int, msg string) *ParseError {
	line, col := 1, 1
	for i := 0; i < off && i < len(p.src); i++ {
		if p.src[i] == '\n' {
			line++
			col = 1
		} else {
			col++
		}
	}
	return &ParseError{Line: line, Column: col, Msg: msg}
}

// wrap converts a lexer or parser error into a *ParseError.
func (p *literalParser) wrap(err error) error {
	var perr *parse.Error
	if errors.As(err, &perr) {
		return &ParseError{Line: perr.Line, Column: perr.Column, Msg: perr.Message}
	}
	return &ParseError{Line: 1, Column: 1, Msg: err.Error()}
}

// unquote strips the delimiters of a string or template token and decodes
// its escapes.
func (p *literalParser) unquote(data []byte) (string, error) {
	start := p.offset(data)
	if len(data) < 2 {
		return "", p.errorAt(start, "malformed string literal")
	}
	body := data[1 : len(data)-1]
	var b strings.Builder
	for i := 0; i < len(body); {
		c := body[i]
		if c != '\\' {
			b.WriteByte(c)
			i++
			continue
		}
		n, err := unescape(&b, body[i+1:])
		if err != nil {
			at := start
			if at >= 0 {
				at += 1 + i
			}
			return "", p.errorAt(at, err.Error())
		}
		i += 1 + n
	}
	return b.String(), nil
}

// unescape writes the character for the escape sequence at the start of
// s (just past the backslash) and returns how many bytes it used.
func unescape(b *strings.Builder, s []byte) (int, error) {
	if len(s) == 0 {
		return 0, errors.New("unterminated escape")
	}
	switch c := s[0]; c {
	case 'n':
		b.WriteByte('\n')
	case 't':
		b.WriteByte('\t')
	case 'r':
		b.WriteByte('\r')
	case 'b':
		b.WriteByte('\b')
	case 'f':
		b.WriteByte('\f')
	case 'v':
		b.WriteByte('\v')
	case '0':
		b.WriteByte(0)
	case '\n':
		// line continuation
	case '\r':
		if len(s) > 1 && s[1] == '\n' {
			return 2, nil
		}
	case 'x':
		r, err := hexRune(s[1:], 2)
		if err != nil {
			return 0, err
		}
		b.WriteRune(r)
		return 3, nil
	case 'u':
		r, n, err := unicodeEscape(s[1:])
		if err != nil {
			return 0, err
		}
		b.WriteRune(r)
		return 1 + n, nil
	default:
		b.WriteByte(c)
	}
	return 1, nil
}

func unicodeEscape(s []byte) (rune, int, error) {
	if len(s) > 0 && s[0] == '{' {
		end := bytes.IndexByte(s, '}')
		if end < 0 {
			return 0, 0, errors.New("invalid unicode escape")
		}
		v, err := strconv.ParseUint(string(s[1:end]), 16, 32)
		if err != nil {
			return 0, 0, errors.New("invalid unicode escape")
		}
		return rune(v), end + 1, nil
	}
	r, err := hexRune(s, 4)
	if err != nil {
		return 0, 0, err
	}
	if utf16.IsSurrogate(r) && bytes.HasPrefix(s[4:], []byte(`\u`)) {
		if lo, err := hexRune(s[6:], 4); err == nil {
			if combined := utf16.DecodeRune(r, lo); combined != unicode.ReplacementChar {
				return combined, 10, nil
			}
		}
	}
	return r, 4, nil
}

func hexRune(s []byte, n int) (rune, error) {
	if len(s) < n {
		return 0, errors.New("invalid hex escape")
	}
	v, err := strconv.ParseUint(string(s[:n]), 16, 32)
	if err != nil {
		return 0, errors.New("invalid hex escape")
	}
	return rune(v), nil
}
