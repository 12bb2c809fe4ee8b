// Package format prints parsed trees back as template source in a canonical
// layout: tabs for indentation, one child per line and a blank line between
// definitions.
package format

import (
	"strings"

	"github.com/pipe01/hyper/internal/lexer"
	"github.com/pipe01/hyper/internal/parser/ast"
)

// Source returns the canonical source text for n. Parsing the result yields
// a tree that renders exactly like n.
func Source(n ast.Node) string {
	p := printer{}
	p.print(n)

	if _, ok := n.(*ast.Program); ok {
		p.sb.WriteByte('\n')
	}

	return p.sb.String()
}

type printer struct {
	sb          strings.Builder
	indentation int
}

func (p *printer) newline() {
	p.sb.WriteByte('\n')
	p.sb.WriteString(strings.Repeat("\t", p.indentation))
}

func (p *printer) print(n ast.Node) {
	switch n := n.(type) {
	case *ast.Program:
		p.print(n.Module)

	case *ast.Module:
		for i, st := range n.Statements {
			if i > 0 {
				p.sb.WriteString("\n\n")
			}
			p.print(st)
		}

	case *ast.ComponentDef:
		p.sb.WriteString("def ")
		p.sb.WriteString(n.ID.Name)
		p.sb.WriteString(" = [")
		for i, param := range n.Attributes {
			if i > 0 {
				p.sb.WriteString("; ")
			}
			p.sb.WriteString(param.Name)
		}
		p.sb.WriteString("] ")
		p.print(n.Body)

	case *ast.Element:
		p.sb.WriteString(n.Tag.String())
		if n.Attributes != nil {
			p.sb.WriteByte(' ')
			p.print(n.Attributes)
		}
		p.sb.WriteByte(' ')
		p.print(n.Body)

	case *ast.ComponentExpr:
		p.sb.WriteString(n.ID.Name)
		if n.Attributes != nil {
			p.sb.WriteByte(' ')
			p.print(n.Attributes)
		}
		if n.Body != nil {
			p.sb.WriteByte(' ')
			p.print(n.Body)
		}

	case *ast.Attributes:
		p.sb.WriteByte('[')
		for i, key := range n.Keys {
			if i > 0 {
				p.sb.WriteString("; ")
			}
			p.sb.WriteString(key)
			p.sb.WriteByte('=')
			p.sb.WriteString(lexer.Quote(n.Attr[key]))
		}
		p.sb.WriteByte(']')

	case *ast.Body:
		p.printBody(n)

	case *ast.Text:
		p.sb.WriteString(lexer.Quote(n.Value))

	case *ast.Ident:
		p.sb.WriteString(n.Name)
	}
}

func (p *printer) printBody(n *ast.Body) {
	switch {
	case len(n.Children) == 0:
		p.sb.WriteString("{}")
		return

	case len(n.Children) == 1:
		// Lone text stays on the same line
		if text, ok := n.Children[0].(*ast.Text); ok {
			p.sb.WriteString("{ ")
			p.print(text)
			p.sb.WriteString(" }")
			return
		}
	}

	p.sb.WriteByte('{')
	p.indentation++

	for _, child := range n.Children {
		p.newline()
		p.print(child)
	}

	p.indentation--
	p.newline()
	p.sb.WriteByte('}')
}
