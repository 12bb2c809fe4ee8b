package parser

import "github.com/pipe01/hyper/internal/lexer"

// located runs inner and hands its result to build together with the span of
// input inner consumed. A failure of inner is returned unchanged.
func located[T, N any](p *parser, inner func() (T, bool), build func(lexer.Span, T) N) (N, bool) {
	start := p.s.Location()

	v, ok := inner()
	if !ok {
		var zero N
		return zero, false
	}

	return build(lexer.Span{Start: start, End: p.s.Location()}, v), true
}

// attempt runs rule and rewinds the input if it fails, so that the next
// alternative starts from the same position.
func attempt[T any](p *parser, rule func() (T, bool)) (T, bool) {
	st := p.s.Save()

	v, ok := rule()
	if !ok {
		p.s.Restore(st)
	}

	return v, ok
}

// separated parses one or more items separated by sep, with optional
// whitespace around each separator.
func separated[T any](p *parser, sep rune, item func() (T, bool)) ([]T, bool) {
	first, ok := item()
	if !ok {
		return nil, false
	}

	items := []T{first}

	for {
		st := p.s.Save()

		p.s.TakeWhitespace()
		if !p.char(sep) {
			p.s.Restore(st)
			break
		}
		p.s.TakeWhitespace()

		next, ok := item()
		if !ok {
			return nil, false
		}

		items = append(items, next)
	}

	return items, true
}
