package lexer

import "fmt"

type Location struct {
	File string

	// 1-based, Column counts code points
	Line, Column int

	// 0-based byte offset into the source
	Offset int
}

func (l *Location) String() string {
	if l.File == "" {
		return fmt.Sprintf("%d:%d", l.Line, l.Column)
	}

	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// Before reports whether l comes strictly before o in the same source.
func (l Location) Before(o Location) bool {
	return l.Offset < o.Offset
}

// Span is the half-open range [Start, End) a node was parsed from.
type Span struct {
	Start, End Location
}

func (s Span) String() string {
	return fmt.Sprintf("%s-%d:%d", &s.Start, s.End.Line, s.End.Column)
}

// Len returns the number of bytes covered by the span.
func (s Span) Len() int {
	return s.End.Offset - s.Start.Offset
}

// Contains reports whether loc falls inside the span.
func (s Span) Contains(loc Location) bool {
	return s.Start.Offset <= loc.Offset && loc.Offset < s.End.Offset
}
