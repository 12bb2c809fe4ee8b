package main

import (
	"sort"

	"github.com/pipe01/hyper/internal/lexer"
	"github.com/pipe01/hyper/internal/parser/ast"
	protocol "github.com/tliron/glsp/protocol_3_16"
)

type tokenType protocol.UInteger

const (
	tokenKeyword tokenType = iota
	tokenFunction
	tokenParameter
	tokenProperty
	tokenString
)

// Order must match the tokenType constants
var tokenLegend = []string{
	"keyword",
	"function",
	"parameter",
	"property",
	"string",
}

type semanticToken struct {
	start  lexer.Location
	length int
	typ    tokenType
}

func spanToken(span lexer.Span, typ tokenType) (semanticToken, bool) {
	// Tokens can't span multiple lines
	if span.Start.Line != span.End.Line {
		return semanticToken{}, false
	}

	return semanticToken{
		start:  span.Start,
		length: span.End.Column - span.Start.Column,
		typ:    typ,
	}, true
}

// prefixSpan returns the span of the n ASCII characters starting at start.
func prefixSpan(start lexer.Location, n int) lexer.Span {
	end := start
	end.Column += n
	end.Offset += n

	return lexer.Span{Start: start, End: end}
}

func collectTokens(root ast.Node) []semanticToken {
	var tokens []semanticToken

	add := func(span lexer.Span, typ tokenType) {
		if tk, ok := spanToken(span, typ); ok {
			tokens = append(tokens, tk)
		}
	}

	ast.Walk(root, func(n ast.Node) bool {
		switch n := n.(type) {
		case *ast.ComponentDef:
			add(prefixSpan(n.Span().Start, len("def")), tokenKeyword)
			add(n.ID.Span(), tokenFunction)
			for _, param := range n.Attributes {
				add(param.Span(), tokenParameter)
			}

		case *ast.Element:
			add(prefixSpan(n.Span().Start, len(n.Tag.String())), tokenKeyword)

		case *ast.ComponentExpr:
			add(n.ID.Span(), tokenFunction)

		case *ast.Attributes:
			for _, key := range n.Keys {
				add(n.KeySpans[key], tokenProperty)
			}

		case *ast.Text:
			add(n.Span(), tokenString)
		}

		return true
	})

	sort.Slice(tokens, func(i, j int) bool {
		return tokens[i].start.Before(tokens[j].start)
	})

	return tokens
}

// encodeTokens packs tokens into the relative format used by the protocol,
// where positions are 0-based and relative to the previous token.
func encodeTokens(tokens []semanticToken) []protocol.UInteger {
	data := make([]protocol.UInteger, 0, len(tokens)*5)

	prevLine, prevCol := 1, 1
	for _, tk := range tokens {
		var startDelta int
		if tk.start.Line == prevLine {
			startDelta = tk.start.Column - prevCol
		} else {
			startDelta = tk.start.Column - 1
		}

		data = append(data,
			protocol.UInteger(tk.start.Line-prevLine),
			protocol.UInteger(startDelta),
			protocol.UInteger(tk.length),
			protocol.UInteger(tk.typ),
			0,
		)

		prevLine, prevCol = tk.start.Line, tk.start.Column
	}

	return data
}
