package parser

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/pipe01/hyper/internal/lexer"
	. "github.com/pipe01/hyper/internal/parser/ast"
)

type TestProgram struct {
	*Program
	T *testing.T
}

func (t *TestProgram) OnlyDef() *ComponentDef {
	stmts := t.Module.Statements
	if len(stmts) != 1 {
		t.T.Fatalf("expected 1 statement, got %d", len(stmts))
	}

	def, ok := stmts[0].(*ComponentDef)
	if !ok {
		t.T.Fatalf("expected a component definition, found %T", stmts[0])
	}

	return def
}

// OnlyChild returns the single child of the first definition's body.
func (t *TestProgram) OnlyChild() TestNode {
	return onlyChild(t.T, t.OnlyDef().Body)
}

func onlyChild(t *testing.T, body *Body) TestNode {
	if len(body.Children) != 1 {
		t.Fatalf("expected 1 child, got %d", len(body.Children))
	}

	return TestNode{
		Node: body.Children[0],
		T:    t,
	}
}

type TestNode struct {
	Node
	T *testing.T
}

func (t TestNode) Run(fn interface{}) {
	fnType := reflect.TypeOf(fn)
	if fnType.Kind() != reflect.Func || fnType.NumIn() != 1 {
		panic("invalid function")
	}

	wantNodeType := fnType.In(0)
	actualNodeType := reflect.TypeOf(t.Node)

	if !actualNodeType.AssignableTo(wantNodeType) {
		t.T.Fatalf("expected node type %q, found %q", wantNodeType, actualNodeType)
	}

	reflect.ValueOf(fn).Call([]reflect.Value{reflect.ValueOf(t.Node)})
}

func assert[T comparable](t *testing.T, expected, got T, msg string) {
	t.Helper()

	if got != expected {
		t.Fatalf("%s: expected %v, got %v", msg, expected, got)
	}
}

func TestParser(t *testing.T) {
	type testCase struct {
		name   string
		src    string
		verify func(f *TestProgram)
	}

	cases := []testCase{
		{
			name: "empty definition",
			src:  `def Main = [] { html {} }`,
			verify: func(f *TestProgram) {
				def := f.OnlyDef()
				assert(f.T, "Main", def.ID.Name, "component name")
				assert(f.T, 0, len(def.Attributes), "parameter count")

				f.OnlyChild().Run(func(n *Element) {
					assert(f.T, TagHTML, n.Tag, "tag")
					assert(f.T, (*Attributes)(nil), n.Attributes, "attributes")
					assert(f.T, 0, len(n.Body.Children), "children")
				})
			},
		},
		{
			name: "parameters",
			src:  "def Card = [ title ;body-text;x1 ] {}",
			verify: func(f *TestProgram) {
				def := f.OnlyDef()

				var names []string
				for _, id := range def.Attributes {
					names = append(names, id.Name)
				}
				assert(f.T, "title,body-text,x1", strings.Join(names, ","), "parameters")
			},
		},
		{
			name: "nested text",
			src:  `def Main = [] { html { head { title {"Hyper!"} } } }`,
			verify: func(f *TestProgram) {
				f.OnlyChild().Run(func(html *Element) {
					onlyChild(f.T, html.Body).Run(func(head *Element) {
						assert(f.T, TagHead, head.Tag, "head tag")

						onlyChild(f.T, head.Body).Run(func(title *Element) {
							assert(f.T, TagTitle, title.Tag, "title tag")

							onlyChild(f.T, title.Body).Run(func(text *Text) {
								assert(f.T, "Hyper!", text.Value, "text")
							})
						})
					})
				})
			},
		},
		{
			name: "attributes keep first position and last value",
			src:  `def Main = [] { link [ rel = "preload" ; href="/a.png";rel="icon"] {} }`,
			verify: func(f *TestProgram) {
				f.OnlyChild().Run(func(n *Element) {
					assert(f.T, TagLink, n.Tag, "tag")
					assert(f.T, 2, n.Attributes.Len(), "attribute count")
					assert(f.T, "rel,href", strings.Join(n.Attributes.Keys, ","), "key order")

					rel, _ := n.Attributes.Get("rel")
					assert(f.T, "icon", rel, "overwritten value")
				})
			},
		},
		{
			name: "header is not head",
			src:  `def Main = [] { header {} }`,
			verify: func(f *TestProgram) {
				f.OnlyChild().Run(func(n *Element) {
					assert(f.T, TagHeader, n.Tag, "tag")
				})
			},
		},
		{
			name: "no whitespace needed around braces",
			src:  `def Main=[]{div{"a""b"}}`,
			verify: func(f *TestProgram) {
				f.OnlyChild().Run(func(n *Element) {
					assert(f.T, 2, len(n.Body.Children), "children")
				})
			},
		},
		{
			name: "bare component reference",
			src:  `def Main = [] { Card }`,
			verify: func(f *TestProgram) {
				f.OnlyChild().Run(func(n *ComponentExpr) {
					assert(f.T, "Card", n.ID.Name, "component name")
					assert(f.T, (*Attributes)(nil), n.Attributes, "attributes")
					assert(f.T, (*Body)(nil), n.Body, "body")
				})
			},
		},
		{
			name: "component reference with attributes and body",
			src:  `def Main = [] { my-card [title="Hi"] { p {"content"} } }`,
			verify: func(f *TestProgram) {
				f.OnlyChild().Run(func(n *ComponentExpr) {
					assert(f.T, "my-card", n.ID.Name, "component name")

					title, ok := n.Attributes.Get("title")
					assert(f.T, true, ok, "title attribute present")
					assert(f.T, "Hi", title, "title attribute")

					onlyChild(f.T, n.Body).Run(func(p *Element) {
						assert(f.T, TagP, p.Tag, "tag")
					})
				})
			},
		},
		{
			name: "component reference followed by siblings",
			src:  "def Main = [] {\n\tNav\n\t\"text\"\n\tFooter [x=\"1\"]\n}",
			verify: func(f *TestProgram) {
				children := f.OnlyDef().Body.Children
				assert(f.T, 3, len(children), "children")

				TestNode{Node: children[0], T: f.T}.Run(func(n *ComponentExpr) {
					assert(f.T, (*Body)(nil), n.Body, "body")
				})
				TestNode{Node: children[1], T: f.T}.Run(func(n *Text) {
					assert(f.T, "text", n.Value, "text")
				})
				TestNode{Node: children[2], T: f.T}.Run(func(n *ComponentExpr) {
					assert(f.T, 1, n.Attributes.Len(), "attribute count")
				})
			},
		},
		{
			name: "self-closing tag keeps its body",
			src:  `def Main = [] { img [src="a.png"] { "ignored" } }`,
			verify: func(f *TestProgram) {
				f.OnlyChild().Run(func(n *Element) {
					assert(f.T, true, n.Tag.SelfClosing(), "self-closing")
					assert(f.T, 1, len(n.Body.Children), "children")
				})
			},
		},
		{
			name: "several definitions",
			src:  "\n\ndef A = [] {}\ndef B = [x] { B }\n\n",
			verify: func(f *TestProgram) {
				stmts := f.Module.Statements
				assert(f.T, 2, len(stmts), "statements")
				assert(f.T, "B", stmts[1].(*ComponentDef).ID.Name, "second name")
			},
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			f, err := Parse(c.src)
			if err != nil {
				t.Fatalf("failed to parse source: %s", err)
			}

			c.verify(&TestProgram{
				Program: f,
				T:       t,
			})
		})
	}
}

func TestParseElement(t *testing.T) {
	el, err := ParseElement("\n  html { head { title {\"Hyper!\"} } }\n")
	if err != nil {
		t.Fatalf("failed to parse source: %s", err)
	}

	assert(t, TagHTML, el.Tag, "root tag")
	assert(t, 2, el.Span().Start.Line, "root line")
	assert(t, 3, el.Span().Start.Column, "root column")

	onlyChild(t, el.Body).Run(func(head *Element) {
		assert(t, TagHead, head.Tag, "child tag")
	})
}

func TestParseErrors(t *testing.T) {
	type testCase struct {
		name     string
		src      string
		element  bool
		line     int
		column   int
		found    string
		expected []string
	}

	cases := []testCase{
		{
			name:     "unclosed element",
			src:      "html { head",
			element:  true,
			line:     1,
			column:   12,
			found:    "end of input",
			expected: []string{"'['", "'{'"},
		},
		{
			name:     "unclosed module",
			src:      "def Main = [] {\n  html { head",
			line:     2,
			column:   14,
			found:    "end of input",
			expected: []string{"'['", "'{'"},
		},
		{
			name:     "no definitions",
			src:      "  ",
			line:     1,
			column:   3,
			found:    "end of input",
			expected: []string{`"def"`},
		},
		{
			name:     "bare element is not a module",
			src:      "html {}",
			line:     1,
			column:   1,
			found:    "'h'",
			expected: []string{`"def"`},
		},
		{
			name:     "empty attribute list",
			src:      "def Main = [] { a [] {} }",
			line:     1,
			column:   20,
			found:    "']'",
			expected: []string{"an attribute name"},
		},
		{
			name:     "unquoted attribute value",
			src:      "def Main = [] { a [href=x] {} }",
			line:     1,
			column:   25,
			found:    "'x'",
			expected: []string{"a string literal"},
		},
		{
			name:     "bad escape",
			src:      `def Main = [] { "a\q" }`,
			line:     1,
			column:   20,
			found:    "'q'",
			expected: []string{"a valid escape character"},
		},
		{
			name:     "tag used as component",
			src:      "def Main = [] { img }",
			line:     1,
			column:   21,
			found:    "'}'",
			expected: []string{"'['", "'{'"},
		},
		{
			name:     "trailing garbage",
			src:      "def Main = [] {} 42",
			line:     1,
			column:   18,
			found:    "'4'",
			expected: []string{`"def"`, "end of input"},
		},
		{
			name:     "tag keywords are lowercase",
			src:      "HTML {}",
			element:  true,
			line:     1,
			column:   1,
			found:    "'H'",
			expected: []string{"a tag name"},
		},
	}

	for _, c := range cases {
		c := c

		t.Run(c.name, func(t *testing.T) {
			var err error
			if c.element {
				_, err = ParseElement(c.src)
			} else {
				_, err = Parse(c.src)
			}

			if err == nil {
				t.Fatal("expected an error")
			}

			var perr *ParserError
			if !errors.As(err, &perr) {
				t.Fatalf("expected a ParserError, got %T", err)
			}

			assert(t, c.line, perr.At().Line, "error line")
			assert(t, c.column, perr.At().Column, "error column")

			var uerr *UnexpectedInputError
			if !errors.As(err, &uerr) {
				t.Fatalf("expected an UnexpectedInputError, got %T", perr.Inner)
			}

			assert(t, c.found, uerr.Found, "found")
			if diff := cmp.Diff(c.expected, uerr.Expected); diff != "" {
				t.Fatalf("expected alternatives mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestMaxDepth(t *testing.T) {
	src := "def Main = [] {" + strings.Repeat("div {", 10) + strings.Repeat("}", 10) + "}"

	if _, err := (Options{MaxDepth: 11}).Parse(src); err != nil {
		t.Fatalf("expected depth 11 to be accepted: %s", err)
	}

	_, err := (Options{MaxDepth: 10}).Parse(src)
	if !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("expected ErrMaxDepth, got %v", err)
	}

	var perr *ParserError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a ParserError, got %T", err)
	}
	assert(t, 15+10*len("div {")-1, perr.At().Offset, "error offset")
}

func TestDeepNestingFailsGracefully(t *testing.T) {
	src := "def Main = [] {" + strings.Repeat("div {", 100000)

	_, err := Parse(src)
	if !errors.Is(err, ErrMaxDepth) {
		t.Fatalf("expected ErrMaxDepth, got %v", err)
	}
}

func TestFileName(t *testing.T) {
	_, err := Options{FileName: "index.hyper"}.Parse("def")

	var perr *ParserError
	if !errors.As(err, &perr) {
		t.Fatalf("expected a ParserError, got %v", err)
	}

	assert(t, "index.hyper", perr.At().File, "file name")
	if !strings.Contains(err.Error(), "at index.hyper:1:4") {
		t.Fatalf("unexpected message %q", err.Error())
	}
}

func loc(line, col, offset int) lexer.Location {
	return lexer.Location{Line: line, Column: col, Offset: offset}
}

func span(start, end lexer.Location) lexer.Span {
	return lexer.Span{Start: start, End: end}
}

func TestSpans(t *testing.T) {
	src := "def Main = [] {\n  html {}\n}\n"

	f, err := Parse(src)
	if err != nil {
		t.Fatalf("failed to parse source: %s", err)
	}

	def := f.Module.Statements[0].(*ComponentDef)
	el := def.Body.Children[0].(*Element)

	got := []lexer.Span{
		f.Span(),
		def.Span(),
		def.ID.Span(),
		def.Body.Span(),
		el.Span(),
		el.Body.Span(),
	}
	want := []lexer.Span{
		span(loc(1, 1, 0), loc(3, 2, 27)),
		span(loc(1, 1, 0), loc(3, 2, 27)),
		span(loc(1, 5, 4), loc(1, 9, 8)),
		span(loc(1, 15, 14), loc(3, 2, 27)),
		span(loc(2, 3, 18), loc(2, 10, 25)),
		span(loc(2, 8, 23), loc(2, 10, 25)),
	}

	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("spans mismatch (-want +got):\n%s", diff)
	}
}

func TestAttributeSpans(t *testing.T) {
	src := `def M = [] { Card [a="1"; b = "2"] }`

	f, err := Parse(src)
	if err != nil {
		t.Fatalf("failed to parse source: %s", err)
	}

	comp := f.Module.Statements[0].(*ComponentDef).Body.Children[0].(*ComponentExpr)

	assert(t, `Card [a="1"; b = "2"]`, slice(src, comp.Span()), "component span")
	assert(t, `[a="1"; b = "2"]`, slice(src, comp.Attributes.Span()), "attributes span")
	assert(t, "b", slice(src, comp.Attributes.KeySpans["b"]), "key span")
}

func slice(src string, s lexer.Span) string {
	return src[s.Start.Offset:s.End.Offset]
}
