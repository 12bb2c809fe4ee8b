package generator

import (
	"io"
	"strings"

	"github.com/pipe01/hyper/internal/parser/ast"
)

type Options struct {
	// Escape HTML-escapes text nodes and attribute values. When false they
	// are written verbatim.
	Escape bool
}

var DefaultOptions = Options{
	Escape: true,
}

// Render renders any node of a parsed tree to HTML using DefaultOptions.
func Render(n ast.Node) string {
	return RenderOptions(n, DefaultOptions)
}

func RenderOptions(n ast.Node, opts Options) string {
	var sb strings.Builder

	// A strings.Builder never fails to write
	_ = Visit(&sb, n, opts)

	return sb.String()
}

// Visit writes the HTML rendering of n to w. The only errors it returns come
// from w.
func Visit(w io.Writer, n ast.Node, opts Options) error {
	ctx := context{
		w: &outputWriter{
			w:      w,
			escape: opts.Escape,
		},
	}

	ctx.visitNode(n)

	return ctx.w.Err()
}

type context struct {
	w OutputWriter
}

func (c *context) visitNode(n ast.Node) {
	switch n := n.(type) {
	case *ast.Program:
		c.visitNode(n.Module)

	case *ast.Module:
		for _, st := range n.Statements {
			c.visitNode(st)
		}

	case *ast.ComponentDef:
		// Only the body of a definition produces output
		c.visitNode(n.Body)

	case *ast.Body:
		for _, child := range n.Children {
			c.visitNode(child)
		}

	case *ast.Element:
		c.visitElement(n)

	case *ast.Text:
		c.w.WriteText(n.Value)

	case *ast.ComponentExpr:
		// Call sites are not resolved, only their own body is rendered
		if n.Body != nil {
			c.visitNode(n.Body)
		}

	case *ast.Import, *ast.Ident, *ast.Attributes:
		// No output
	}
}

func (c *context) visitElement(n *ast.Element) {
	if n.Tag.IsDocumentRoot() {
		c.w.WriteDoctype()
	}

	c.w.WriteTagStart(n.Tag.String())

	if n.Attributes != nil {
		for _, key := range n.Attributes.Keys {
			c.w.WriteAttribute(key, n.Attributes.Attr[key])
		}
	}

	c.w.WriteTagStartEnd()

	if n.Tag.SelfClosing() {
		return
	}

	c.visitNode(n.Body)

	c.w.WriteTagEnd(n.Tag.String())
}
