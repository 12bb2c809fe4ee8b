package ast

// Walk traverses the tree rooted at n depth-first, in source order. If fn
// returns false the children of that node are skipped.
func Walk(n Node, fn func(Node) bool) {
	if n == nil || !fn(n) {
		return
	}

	switch n := n.(type) {
	case *Program:
		Walk(n.Module, fn)

	case *Module:
		for _, st := range n.Statements {
			Walk(st, fn)
		}

	case *ComponentDef:
		Walk(&n.ID, fn)
		for i := range n.Attributes {
			Walk(&n.Attributes[i], fn)
		}
		Walk(n.Body, fn)

	case *Element:
		if n.Attributes != nil {
			Walk(n.Attributes, fn)
		}
		Walk(n.Body, fn)

	case *ComponentExpr:
		Walk(&n.ID, fn)
		if n.Attributes != nil {
			Walk(n.Attributes, fn)
		}
		if n.Body != nil {
			Walk(n.Body, fn)
		}

	case *Body:
		for _, c := range n.Children {
			Walk(c, fn)
		}
	}
}
