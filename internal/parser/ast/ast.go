package ast

import (
	"github.com/pipe01/hyper/internal/lexer"
)

type Loc lexer.Span

func (l Loc) Span() lexer.Span {
	return lexer.Span(l)
}

type Node interface {
	Span() lexer.Span
}

// Program is the root of a parsed source file.
type Program struct {
	Module *Module
}

func (p *Program) Span() lexer.Span {
	return p.Module.Span()
}

type Module struct {
	Loc

	Statements []Statement
}

type Statement interface {
	Node
	statement()
}

// Import is reserved and never produced by the parser.
type Import struct {
	Loc
}

func (*Import) statement() {}

type ComponentDef struct {
	Loc

	ID         Ident
	Attributes []Ident
	Body       *Body
}

func (*ComponentDef) statement() {}

type Ident struct {
	Loc

	Name string
}

type Body struct {
	Loc

	Children []Child
}

type Child interface {
	Node
	child()
}

type Text struct {
	Loc

	Value string
}

func (*Text) child() {}

type Element struct {
	Loc

	Tag        Tag
	Attributes *Attributes
	Body       *Body
}

func (*Element) child() {}

// ComponentExpr is a component call site. Its name and attributes are kept
// for tooling, rendering only looks at the body.
type ComponentExpr struct {
	Loc

	ID         Ident
	Attributes *Attributes
	Body       *Body
}

func (*ComponentExpr) child() {}

type Attributes struct {
	Loc

	Attr map[string]string

	// Keys holds every key of Attr once, in the order it was first declared
	Keys []string

	// KeySpans holds the span of the last declaration of each key
	KeySpans map[string]lexer.Span
}

func NewAttributes(span lexer.Span) *Attributes {
	return &Attributes{
		Loc:      Loc(span),
		Attr:     make(map[string]string),
		KeySpans: make(map[string]lexer.Span),
	}
}

// Set stores a key/value pair. A repeated key keeps its original position and
// takes the new value.
func (a *Attributes) Set(key Ident, value string) {
	if _, ok := a.Attr[key.Name]; !ok {
		a.Keys = append(a.Keys, key.Name)
	}

	a.Attr[key.Name] = value
	a.KeySpans[key.Name] = key.Span()
}

func (a *Attributes) Get(key string) (value string, ok bool) {
	if a == nil {
		return "", false
	}

	value, ok = a.Attr[key]
	return
}

func (a *Attributes) Len() int {
	if a == nil {
		return 0
	}

	return len(a.Keys)
}
