package lexer

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

type LexerError struct {
	Inner    error
	Location Location
}

func (e *LexerError) Unwrap() error {
	return e.Inner
}

func (e *LexerError) Error() string {
	return fmt.Sprintf("%s at %s", e.Inner, &e.Location)
}

func (e *LexerError) At() Location {
	return e.Location
}

type UnexpectedRuneError struct {
	Got      rune
	EOF      bool
	Expected string
}

func (e *UnexpectedRuneError) Error() string {
	if e.EOF {
		return fmt.Sprintf("expected %s, found end of input", e.Expected)
	}

	return fmt.Sprintf("expected %s, found %q", e.Expected, e.Got)
}

// State is a snapshot of the scanner position. Saving and restoring it is
// how callers backtrack.
type State struct {
	byteIndex int
	line, col int
}

// Scanner walks a source text rune by rune while keeping track of the
// current line and column.
type Scanner struct {
	filename string
	src      string

	State
}

func New(src, fileName string) *Scanner {
	return &Scanner{
		filename: fileName,
		src:      src,
		State: State{
			line: 1,
			col:  1,
		},
	}
}

func (s *Scanner) Source() string {
	return s.src
}

func (s *Scanner) Save() State {
	return s.State
}

func (s *Scanner) Restore(st State) {
	s.State = st
}

func (s *Scanner) Location() Location {
	return Location{
		File:   s.filename,
		Line:   s.line,
		Column: s.col,
		Offset: s.byteIndex,
	}
}

func (s *Scanner) EOF() bool {
	return s.byteIndex >= len(s.src)
}

func (s *Scanner) Peek() (r rune, eof bool) {
	if s.byteIndex >= len(s.src) {
		return 0, true
	}

	r, _ = utf8.DecodeRuneInString(s.src[s.byteIndex:])
	return r, false
}

func (s *Scanner) Take() (r rune, eof bool) {
	if s.byteIndex >= len(s.src) {
		return 0, true
	}

	r, size := utf8.DecodeRuneInString(s.src[s.byteIndex:])
	s.byteIndex += size

	// A "\r\n" pair only bumps the line once, on the '\n'
	if r == '\n' {
		s.line++
		s.col = 1
	} else {
		s.col++
	}

	return r, false
}

// TakeRune consumes exp if it is the next rune, otherwise nothing is consumed.
func (s *Scanner) TakeRune(exp rune) (taken bool) {
	r, eof := s.Peek()
	if eof || r != exp {
		return false
	}

	s.Take()
	return true
}

// TakeString consumes lit if the remaining input starts with it.
func (s *Scanner) TakeString(lit string) (taken bool) {
	if !strings.HasPrefix(s.src[s.byteIndex:], lit) {
		return false
	}

	end := s.byteIndex + len(lit)
	for s.byteIndex < end {
		s.Take()
	}

	return true
}

// TakeWhitespace consumes a run of spaces, tabs, carriage returns and
// newlines. It never fails.
func (s *Scanner) TakeWhitespace() (took bool) {
	for {
		r, eof := s.Peek()
		if eof || !isWhitespace(r) {
			return took
		}

		s.Take()
		took = true
	}
}

// TakeIdentifier consumes an identifier: a letter or hyphen followed by
// letters, digits or hyphens.
func (s *Scanner) TakeIdentifier() (ident string, found bool) {
	start := s.byteIndex

	r, eof := s.Peek()
	if eof || !IsIdentifierStart(r) {
		return "", false
	}
	s.Take()

	for {
		r, eof := s.Peek()
		if eof || !IsIdentifierPart(r) {
			break
		}

		s.Take()
	}

	return s.src[start:s.byteIndex], true
}

// Unexpected builds an error describing the rune at the current position.
func (s *Scanner) Unexpected(expected string) *LexerError {
	r, eof := s.Peek()

	return &LexerError{
		Inner: &UnexpectedRuneError{
			Got:      r,
			EOF:      eof,
			Expected: expected,
		},
		Location: s.Location(),
	}
}

func IsIdentifierStart(r rune) bool {
	return isASCIILetter(r) || r == '-'
}

func IsIdentifierPart(r rune) bool {
	return isASCIILetter(r) || isASCIIDigit(r) || r == '-'
}

func isASCIILetter(r rune) bool {
	return (r >= 'A' && r <= 'Z') || (r >= 'a' && r <= 'z')
}

func isASCIIDigit(r rune) bool {
	return r >= '0' && r <= '9'
}

func isWhitespace(r rune) bool {
	return r == ' ' || r == '\t' || r == '\r' || r == '\n'
}
