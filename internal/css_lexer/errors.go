package css_lexer

import (
	"fmt"

	"github.com/csslex/csslex/internal/logger"
)

type LexErrorKind uint8

const (
	UnterminatedComment LexErrorKind = iota
	IncompleteURI
	UnexpectedCharacterInURI
)

func (kind LexErrorKind) String() string {
	switch kind {
	case UnterminatedComment:
		return "UnterminatedComment"
	case IncompleteURI:
		return "IncompleteURI"
	case UnexpectedCharacterInURI:
		return "UnexpectedCharacterInURI"
	}
	return fmt.Sprintf("LexErrorKind(%d)", uint8(kind))
}

// Scanning stops at the first LexError. There is no recovery.
type LexError struct {
	Kind LexErrorKind

	// The offending character for UnexpectedCharacterInURI
	Text string

	// Where scanning stopped, repaired the same way token locations are
	Position logger.Position

	// The same place as a raw offset into the fragment
	Loc logger.Loc
}

func (e *LexError) Message() string {
	switch e.Kind {
	case UnterminatedComment:
		return "Expected \"*/\" to terminate multi-line comment"
	case IncompleteURI:
		return "Expected \")\" to end URL token"
	case UnexpectedCharacterInURI:
		return fmt.Sprintf("Unexpected %q in URL token", e.Text)
	}
	return "Unknown lexer error"
}

func (e *LexError) Error() string {
	return fmt.Sprintf("%s: %s", e.Position, e.Message())
}

func (e *LexError) ToMsg(source *logger.Source) logger.Msg {
	return logger.Msg{
		Kind:     logger.Error,
		Text:     e.Message(),
		Location: logger.LocationOrNil(source, logger.Range{Loc: e.Loc, Len: int32(len(e.Text))}, e.Position),
	}
}
