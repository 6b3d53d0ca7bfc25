package css_lexer

import (
	"strings"
	"unicode/utf8"

	"github.com/csslex/csslex/internal/logger"
)

const eof = -1

// The input walks the fragment one code point at a time and keeps the line
// counters needed to turn a byte offset into a position. Every lexical shape
// is matched by saving a mark, trying to consume it, and resetting to the
// mark on failure.
type input struct {
	contents string

	// The code point at "offset". The next code point begins at "current".
	codePoint rune
	offset    int
	current   int

	// Line bookkeeping for the code point at "offset"
	line      int32
	lineStart int

	// Where the fragment begins inside its container document
	base logger.Position
}

type mark struct {
	codePoint rune
	offset    int
	current   int
	line      int32
	lineStart int
}

func newInput(contents string, start *logger.Position) input {
	in := input{
		contents: contents,
		line:     1,
		base:     logger.Position{Line: 1},
	}
	if start != nil {
		in.base = *start
		in.line = start.Line
	}
	in.decode()
	return in
}

func (in *input) decode() {
	codePoint, width := utf8.DecodeRuneInString(in.contents[in.current:])

	// Use -1 to indicate the end of the file
	if width == 0 {
		codePoint = eof
	}

	in.codePoint = codePoint
	in.offset = in.current
	in.current += width
}

// Advances past the current code point unconditionally
func (in *input) step() {
	switch in.codePoint {
	case eof:
		return

	case '\n':
		// The "\r" of a "\r\n" pair already started the new line
		if in.offset == 0 || in.contents[in.offset-1] != '\r' {
			in.line++
		}
		in.lineStart = in.current

	case '\r', '\f':
		in.line++
		in.lineStart = in.current
	}
	in.decode()
}

// Returns the code point "n" code points after the current one
func (in *input) peek(n int) rune {
	i := in.current
	for ; n > 1; n-- {
		_, width := utf8.DecodeRuneInString(in.contents[i:])
		if width == 0 {
			return eof
		}
		i += width
	}
	c, width := utf8.DecodeRuneInString(in.contents[i:])
	if width == 0 {
		return eof
	}
	return c
}

func (in *input) mark() mark {
	return mark{
		codePoint: in.codePoint,
		offset:    in.offset,
		current:   in.current,
		line:      in.line,
		lineStart: in.lineStart,
	}
}

func (in *input) reset(m mark) {
	in.codePoint = m.codePoint
	in.offset = m.offset
	in.current = m.current
	in.line = m.line
	in.lineStart = m.lineStart
}

// Consumes "text" if the input continues with exactly that text
func (in *input) eat(text string) bool {
	if !strings.HasPrefix(in.contents[in.offset:], text) {
		return false
	}
	for end := in.offset + len(text); in.offset < end; {
		in.step()
	}
	return true
}

func (in *input) textSince(m mark) string {
	return in.contents[m.offset:in.offset]
}

// The unrepaired position of the current code point
func (in *input) position() logger.Position {
	column := int32(in.offset - in.lineStart)
	if in.line == in.base.Line {
		column += in.base.Column
	}
	return logger.Position{
		Offset: in.base.Offset + int32(in.offset),
		Line:   in.line,
		Column: column,
	}
}

// The raw text of the current code point, which may be an invalid byte
func (in *input) currentText() string {
	return in.contents[in.offset:in.current]
}
