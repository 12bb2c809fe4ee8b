package parser

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/pipe01/hyper/internal/lexer"
	"github.com/pipe01/hyper/internal/parser/ast"
	"golang.org/x/exp/slices"
)

const DefaultMaxDepth = 256

var ErrMaxDepth = errors.New("maximum nesting depth exceeded")

type ParserError struct {
	Inner    error
	Location lexer.Location
}

func (e *ParserError) Unwrap() error {
	return e.Inner
}

func (e *ParserError) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *ParserError) At() lexer.Location {
	return e.Location
}

type UnexpectedInputError struct {
	Found    string
	Expected []string
}

func (e *UnexpectedInputError) Error() string {
	return fmt.Sprintf("expected %s, found %s", joinAlternatives(e.Expected), e.Found)
}

func joinAlternatives(alts []string) string {
	switch len(alts) {
	case 0:
		return "nothing"
	case 1:
		return alts[0]
	}

	return strings.Join(alts[:len(alts)-1], ", ") + " or " + alts[len(alts)-1]
}

// Options tweaks how sources are parsed. The zero value is ready to use.
type Options struct {
	// FileName is attached to every location
	FileName string

	// MaxDepth bounds how many bodies may be nested, DefaultMaxDepth if zero
	MaxDepth int
}

// Parse parses a module made of one or more component definitions.
func Parse(source string) (*ast.Program, error) {
	return Options{}.Parse(source)
}

// ParseElement parses a document made of a single element.
func ParseElement(source string) (*ast.Element, error) {
	return Options{}.ParseElement(source)
}

func (o Options) Parse(source string) (*ast.Program, error) {
	p := o.newParser(source)

	p.s.TakeWhitespace()

	mod, ok := p.parseModule()
	if ok {
		p.s.TakeWhitespace()
		ok = p.end()
	}

	if err := p.result(ok); err != nil {
		return nil, err
	}

	return &ast.Program{Module: mod}, nil
}

func (o Options) ParseElement(source string) (*ast.Element, error) {
	p := o.newParser(source)

	p.s.TakeWhitespace()

	el, ok := p.parseElement()
	if ok {
		p.s.TakeWhitespace()
		ok = p.end()
	}

	if err := p.result(ok); err != nil {
		return nil, err
	}

	return el, nil
}

type parser struct {
	s *lexer.Scanner

	maxDepth int
	depth    int

	// Furthest position where a rule failed and what was expected there
	failed   bool
	failAt   lexer.Location
	expected []string

	// Set when the parse must stop regardless of remaining alternatives
	fatal *ParserError
}

func (o Options) newParser(source string) *parser {
	maxDepth := o.MaxDepth
	if maxDepth <= 0 {
		maxDepth = DefaultMaxDepth
	}

	return &parser{
		s:        lexer.New(source, o.FileName),
		maxDepth: maxDepth,
	}
}

func (p *parser) result(ok bool) error {
	if p.fatal != nil {
		return p.fatal
	}
	if ok {
		return nil
	}

	loc := p.failAt
	if !p.failed {
		loc = p.s.Location()
	}

	return &ParserError{
		Inner: &UnexpectedInputError{
			Found:    p.describeAt(loc),
			Expected: p.expected,
		},
		Location: loc,
	}
}

func (p *parser) describeAt(loc lexer.Location) string {
	src := p.s.Source()
	if loc.Offset >= len(src) {
		return "end of input"
	}

	r, _ := utf8.DecodeRuneInString(src[loc.Offset:])
	return fmt.Sprintf("%q", r)
}

func (p *parser) expect(what string) {
	p.expectAt(p.s.Location(), what)
}

func (p *parser) expectAt(loc lexer.Location, what string) {
	switch {
	case !p.failed || p.failAt.Before(loc):
		p.failed = true
		p.failAt = loc
		p.expected = append(p.expected[:0], what)

	case loc.Offset == p.failAt.Offset && !slices.Contains(p.expected, what):
		p.expected = append(p.expected, what)
	}
}

func (p *parser) expectLexerError(err error) {
	var lerr *lexer.LexerError
	if !errors.As(err, &lerr) {
		p.expect("a string literal")
		return
	}

	var uerr *lexer.UnexpectedRuneError
	if errors.As(lerr.Inner, &uerr) {
		p.expectAt(lerr.Location, uerr.Expected)
	} else {
		p.expectAt(lerr.Location, "a valid unicode code point")
	}
}

func (p *parser) abort(err error) {
	if p.fatal == nil {
		p.fatal = &ParserError{
			Inner:    err,
			Location: p.s.Location(),
		}
	}
}

func (p *parser) char(r rune) bool {
	if p.s.TakeRune(r) {
		return true
	}

	p.expect(fmt.Sprintf("%q", r))
	return false
}

// keyword consumes kw only if it forms a whole identifier.
func (p *parser) keyword(kw string) bool {
	st := p.s.Save()

	ident, ok := p.s.TakeIdentifier()
	if !ok || ident != kw {
		p.s.Restore(st)
		p.expect(strconv.Quote(kw))
		return false
	}

	return true
}

func (p *parser) end() bool {
	if p.s.EOF() {
		return true
	}

	p.expect("end of input")
	return false
}

func (p *parser) parseModule() (*ast.Module, bool) {
	return located(p, func() ([]ast.Statement, bool) {
		var stmts []ast.Statement

		for p.fatal == nil {
			st := p.s.Save()

			if len(stmts) > 0 {
				p.s.TakeWhitespace()
			}

			def, ok := p.parseComponentDef()
			if !ok {
				p.s.Restore(st)
				break
			}

			stmts = append(stmts, def)
		}

		return stmts, len(stmts) > 0
	}, func(span lexer.Span, stmts []ast.Statement) *ast.Module {
		return &ast.Module{
			Loc:        ast.Loc(span),
			Statements: stmts,
		}
	})
}

type componentDefParts struct {
	id     ast.Ident
	params []ast.Ident
	body   *ast.Body
}

func (p *parser) parseComponentDef() (*ast.ComponentDef, bool) {
	return located(p, func() (def componentDefParts, ok bool) {
		if !p.keyword("def") {
			return def, false
		}
		p.s.TakeWhitespace()

		if def.id, ok = p.parseIdent("a component name"); !ok {
			return
		}
		p.s.TakeWhitespace()

		if !p.char('=') {
			return def, false
		}
		p.s.TakeWhitespace()

		if def.params, ok = p.parseParams(); !ok {
			return
		}
		p.s.TakeWhitespace()

		def.body, ok = p.parseBody()
		return
	}, func(span lexer.Span, def componentDefParts) *ast.ComponentDef {
		return &ast.ComponentDef{
			Loc:        ast.Loc(span),
			ID:         def.id,
			Attributes: def.params,
			Body:       def.body,
		}
	})
}

func (p *parser) parseParams() ([]ast.Ident, bool) {
	if !p.char('[') {
		return nil, false
	}
	p.s.TakeWhitespace()

	params, _ := attempt(p, func() ([]ast.Ident, bool) {
		return separated(p, ';', func() (ast.Ident, bool) {
			return p.parseIdent("a parameter name")
		})
	})
	p.s.TakeWhitespace()

	if !p.char(']') {
		return nil, false
	}

	return params, true
}

func (p *parser) parseIdent(what string) (ast.Ident, bool) {
	return located(p, func() (string, bool) {
		name, ok := p.s.TakeIdentifier()
		if !ok {
			p.expect(what)
		}

		return name, ok
	}, func(span lexer.Span, name string) ast.Ident {
		return ast.Ident{
			Loc:  ast.Loc(span),
			Name: name,
		}
	})
}

func (p *parser) parseBody() (*ast.Body, bool) {
	if r, eof := p.s.Peek(); !eof && r == '{' && p.depth >= p.maxDepth {
		p.abort(ErrMaxDepth)
		return nil, false
	}

	p.depth++
	defer func() { p.depth-- }()

	return located(p, func() ([]ast.Child, bool) {
		if !p.char('{') {
			return nil, false
		}

		var children []ast.Child

		for p.fatal == nil {
			st := p.s.Save()

			p.s.TakeWhitespace()

			child, ok := p.parseChild()
			if !ok {
				p.s.Restore(st)
				break
			}

			children = append(children, child)
		}

		if p.fatal != nil {
			return nil, false
		}

		p.s.TakeWhitespace()

		if !p.char('}') {
			return nil, false
		}

		return children, true
	}, func(span lexer.Span, children []ast.Child) *ast.Body {
		return &ast.Body{
			Loc:      ast.Loc(span),
			Children: children,
		}
	})
}

// parseChild tries, in order, a text node, an element and a component
// reference.
func (p *parser) parseChild() (ast.Child, bool) {
	if text, ok := attempt(p, p.parseText); ok {
		return text, true
	}

	if el, ok := attempt(p, p.parseElement); ok {
		return el, true
	}

	if p.fatal != nil {
		return nil, false
	}

	if comp, ok := attempt(p, p.parseComponentExpr); ok {
		return comp, true
	}

	return nil, false
}

func (p *parser) parseText() (*ast.Text, bool) {
	return located(p, func() (string, bool) {
		value, err := p.s.TakeQuoted()
		if err != nil {
			p.expectLexerError(err)
			return "", false
		}

		return value, true
	}, func(span lexer.Span, value string) *ast.Text {
		return &ast.Text{
			Loc:   ast.Loc(span),
			Value: value,
		}
	})
}

func (p *parser) parseTag() (ast.Tag, bool) {
	st := p.s.Save()

	if name, ok := p.s.TakeIdentifier(); ok {
		if tag, found := ast.LookupTag(name); found {
			return tag, true
		}
	}

	p.s.Restore(st)
	p.expect("a tag name")

	return 0, false
}

type elementParts struct {
	tag   ast.Tag
	attrs *ast.Attributes
	body  *ast.Body
}

func (p *parser) parseElement() (*ast.Element, bool) {
	return located(p, func() (el elementParts, ok bool) {
		if el.tag, ok = p.parseTag(); !ok {
			return
		}
		p.s.TakeWhitespace()

		if attrs, ok := attempt(p, p.parseAttributes); ok {
			el.attrs = attrs
			p.s.TakeWhitespace()
		}

		el.body, ok = p.parseBody()
		return
	}, func(span lexer.Span, el elementParts) *ast.Element {
		return &ast.Element{
			Loc:        ast.Loc(span),
			Tag:        el.tag,
			Attributes: el.attrs,
			Body:       el.body,
		}
	})
}

type componentParts struct {
	id    ast.Ident
	attrs *ast.Attributes
	body  *ast.Body
}

func (p *parser) parseComponentExpr() (*ast.ComponentExpr, bool) {
	return located(p, func() (c componentParts, ok bool) {
		if c.id, ok = p.parseIdent("a component name"); !ok {
			return
		}

		// Tag keywords are reserved
		if _, isTag := ast.LookupTag(c.id.Name); isTag {
			p.expectAt(c.id.Span().Start, "a component name")
			return c, false
		}

		st := p.s.Save()
		p.s.TakeWhitespace()
		if attrs, ok := p.parseAttributes(); ok {
			c.attrs = attrs
		} else {
			p.s.Restore(st)
		}

		st = p.s.Save()
		p.s.TakeWhitespace()
		if body, ok := p.parseBody(); ok {
			c.body = body
		} else {
			p.s.Restore(st)
		}

		return c, true
	}, func(span lexer.Span, c componentParts) *ast.ComponentExpr {
		return &ast.ComponentExpr{
			Loc:        ast.Loc(span),
			ID:         c.id,
			Attributes: c.attrs,
			Body:       c.body,
		}
	})
}

type keyValue struct {
	key   ast.Ident
	value string
}

func (p *parser) parseAttributes() (*ast.Attributes, bool) {
	return located(p, func() ([]keyValue, bool) {
		if !p.char('[') {
			return nil, false
		}
		p.s.TakeWhitespace()

		pairs, ok := separated(p, ';', p.parseKeyValue)
		if !ok {
			return nil, false
		}
		p.s.TakeWhitespace()

		if !p.char(']') {
			return nil, false
		}

		return pairs, true
	}, func(span lexer.Span, pairs []keyValue) *ast.Attributes {
		attrs := ast.NewAttributes(span)

		for _, kv := range pairs {
			attrs.Set(kv.key, kv.value)
		}

		return attrs
	})
}

func (p *parser) parseKeyValue() (kv keyValue, ok bool) {
	if kv.key, ok = p.parseIdent("an attribute name"); !ok {
		return
	}
	p.s.TakeWhitespace()

	if !p.char('=') {
		return kv, false
	}
	p.s.TakeWhitespace()

	value, err := p.s.TakeQuoted()
	if err != nil {
		p.expectLexerError(err)
		return kv, false
	}

	kv.value = value
	return kv, true
}
