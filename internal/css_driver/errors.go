package css_driver

import (
	"errors"
	"fmt"

	"github.com/csslex/csslex/internal/css_lexer"
	"github.com/csslex/csslex/internal/logger"
)

// The grammar failed while the driver was positioned at this token
type ParseError struct {
	Token    css_lexer.Token
	Location logger.Location

	// The raw range of the token inside the fragment
	Range logger.Range

	// False when the grammar failed before reading any token
	HasLocation bool

	// What the grammar reported, if anything
	Err error
}

func (e *ParseError) Message() string {
	return fmt.Sprintf("Unexpected %s", e.Token)
}

func (e *ParseError) Error() string {
	if !e.HasLocation {
		return e.Message()
	}
	return fmt.Sprintf("%s: %s", e.Location.Start, e.Message())
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

func (e *ParseError) ToMsg(source *logger.Source) logger.Msg {
	msg := logger.Msg{Kind: logger.Error, Text: e.Message()}
	if e.HasLocation {
		msg.Location = logger.LocationOrNil(source, e.Range, e.Location.Start)
	}
	return msg
}

// Converts any error returned from a parse into a message with a location.
// Errors that aren't lexer or parser errors get no location.
func ErrorToMsg(source *logger.Source, err error) logger.Msg {
	var lexErr *css_lexer.LexError
	if errors.As(err, &lexErr) {
		return lexErr.ToMsg(source)
	}
	var parseErr *ParseError
	if errors.As(err, &parseErr) {
		return parseErr.ToMsg(source)
	}
	return logger.Msg{Kind: logger.Error, Text: err.Error()}
}
