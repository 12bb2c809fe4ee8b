package lexer

import (
	"errors"
	"strings"
	"unicode/utf8"
)

var ErrInvalidCodePoint = errors.New("invalid unicode code point")

// TakeQuoted consumes a double-quoted string literal and returns its decoded
// value. On failure nothing is consumed and the returned error points at the
// offending rune.
//
// Supported escapes are \n \r \t \b \f \\ \/ \" and \u{XXXX} with one to six
// hex digits. A backslash followed by whitespace drops that whitespace, which
// allows breaking long literals over several lines.
func (s *Scanner) TakeQuoted() (string, error) {
	start := s.Save()

	if !s.TakeRune('"') {
		return "", s.Unexpected("a string literal")
	}

	var sb strings.Builder

	fail := func(err *LexerError) (string, error) {
		s.Restore(start)
		return "", err
	}

	for {
		r, eof := s.Peek()
		if eof {
			return fail(s.Unexpected(`closing '"'`))
		}

		switch r {
		case '"':
			s.Take()
			return sb.String(), nil

		case '\\':
			s.Take()

			if s.TakeWhitespace() {
				continue
			}

			if err := s.takeEscape(&sb); err != nil {
				return fail(err)
			}

		default:
			s.Take()
			sb.WriteRune(r)
		}
	}
}

func (s *Scanner) takeEscape(sb *strings.Builder) *LexerError {
	r, eof := s.Peek()
	if eof {
		return s.Unexpected("an escape sequence")
	}

	switch r {
	case 'n':
		sb.WriteByte('\n')
	case 'r':
		sb.WriteByte('\r')
	case 't':
		sb.WriteByte('\t')
	case 'b':
		sb.WriteByte('\b')
	case 'f':
		sb.WriteByte('\f')
	case '\\', '/', '"':
		sb.WriteRune(r)
	case 'u':
		s.Take()
		return s.takeUnicodeEscape(sb)
	default:
		return s.Unexpected("a valid escape character")
	}

	s.Take()
	return nil
}

func (s *Scanner) takeUnicodeEscape(sb *strings.Builder) *LexerError {
	if !s.TakeRune('{') {
		return s.Unexpected("'{'")
	}

	escStart := s.Location()

	var code rune
	digits := 0

	for {
		r, eof := s.Peek()
		if eof {
			return s.Unexpected("a hex digit or '}'")
		}

		if r == '}' {
			break
		}

		v, ok := hexValue(r)
		if !ok || digits == 6 {
			return s.Unexpected("a hex digit or '}'")
		}

		s.Take()
		code = code<<4 | v
		digits++
	}

	if digits == 0 {
		return s.Unexpected("a hex digit")
	}

	if !utf8.ValidRune(code) {
		return &LexerError{
			Inner:    ErrInvalidCodePoint,
			Location: escStart,
		}
	}

	s.Take()
	sb.WriteRune(code)

	return nil
}

func hexValue(r rune) (rune, bool) {
	switch {
	case r >= '0' && r <= '9':
		return r - '0', true
	case r >= 'a' && r <= 'f':
		return r - 'a' + 10, true
	case r >= 'A' && r <= 'F':
		return r - 'A' + 10, true
	}

	return 0, false
}

// Quote returns lit as a string literal that TakeQuoted decodes back to lit.
func Quote(lit string) string {
	var sb strings.Builder

	sb.WriteByte('"')

	for _, r := range lit {
		switch r {
		case '"':
			sb.WriteString(`\"`)
		case '\\':
			sb.WriteString(`\\`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			sb.WriteRune(r)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}
