// Package api is the public surface of the CSS lexer. A grammar outside this
// module pulls tokens from a TokenStream; the functions here create the
// stream, run the grammar and report lexer and parser errors with locations
// that can be turned into clang-style messages.
package api

import (
	"github.com/csslex/csslex/internal/css_driver"
	"github.com/csslex/csslex/internal/css_lexer"
	"github.com/csslex/csslex/internal/logger"
)

type Token = css_lexer.Token
type TokenKind = css_lexer.T

const (
	TEndOfFile      = css_lexer.TEndOfFile
	TAtKeyword      = css_lexer.TAtKeyword
	TCloseBrace     = css_lexer.TCloseBrace
	TCloseBracket   = css_lexer.TCloseBracket
	TCloseParen     = css_lexer.TCloseParen
	TColon          = css_lexer.TColon
	TDelim          = css_lexer.TDelim
	TFloatDimension = css_lexer.TFloatDimension
	TFunction       = css_lexer.TFunction
	THash           = css_lexer.THash
	TIdent          = css_lexer.TIdent
	TImportant      = css_lexer.TImportant
	TIntDimension   = css_lexer.TIntDimension
	TNumber         = css_lexer.TNumber
	TOpenBrace      = css_lexer.TOpenBrace
	TOpenBracket    = css_lexer.TOpenBracket
	TOpenParen      = css_lexer.TOpenParen
	TOperator       = css_lexer.TOperator
	TPercent        = css_lexer.TPercent
	TSemicolon      = css_lexer.TSemicolon
	TString         = css_lexer.TString
	TURI            = css_lexer.TURI
	TUnicodeRange   = css_lexer.TUnicodeRange
)

type Position = logger.Position
type Location = logger.Location

type TokenStream = css_driver.TokenStream

type LexError = css_lexer.LexError
type LexErrorKind = css_lexer.LexErrorKind

const (
	UnterminatedComment      = css_lexer.UnterminatedComment
	IncompleteURI            = css_lexer.IncompleteURI
	UnexpectedCharacterInURI = css_lexer.UnexpectedCharacterInURI
)

type ParseError = css_driver.ParseError

type ParseOptions struct {
	// Used as the file name in messages. Defaults to "<stdin>".
	Sourcefile string

	// The 1-based line of the container document on which the fragment
	// begins. Locations on later lines are repaired for hosts that report
	// them two code points too far. Zero disables the repair.
	ContainerLine int

	// Where the fragment begins inside its container document
	StartPosition *Position
}

type MsgLocation struct {
	File     string
	Line     int // 1-based
	Column   int // 0-based, in bytes
	Length   int // in bytes
	LineText string

	// Differs from "Column" when the fragment starts part way into a line
	// of its container
	LineTextColumn int
}

type Message struct {
	Text     string
	Location *MsgLocation
}

type TokenizeResult struct {
	Tokens    []Token
	Locations []Location
	Errors    []Message
}

type FormatOptions struct {
	Color         bool
	TerminalWidth int
}

// Scans the first token of "source"
func ScanOne(source string) (Token, error) {
	return scanOneImpl(source)
}

// Scans all of "source". Scanning stops at the first error, which is
// returned in "Errors" along with the tokens before it.
func Tokenize(source string, options ParseOptions) TokenizeResult {
	return tokenizeImpl(source, options)
}

// Runs "entry" over the tokens of "source". The error is a *LexError if
// scanning failed and a *ParseError if "entry" failed.
func Parse[T any](source string, entry func(TokenStream) (T, error)) (T, error) {
	return ParseString(source, ParseOptions{}, entry)
}

// Like Parse, but for a fragment embedded in a container document
func ParseString[T any](source string, options ParseOptions, entry func(TokenStream) (T, error)) (T, error) {
	var zero T
	lexerOptions, err := validateParseOptions(options)
	if err != nil {
		return zero, err
	}
	src, err := newSource(source, options)
	if err != nil {
		return zero, err
	}
	return css_driver.Run(src, lexerOptions, entry)
}

// Turns an error returned by Parse or ParseString into a message. The
// source and options must be the ones that were used for parsing.
func ErrorToMessage(source string, options ParseOptions, err error) Message {
	return errorToMessageImpl(source, options, err)
}

func FormatMessage(msg Message, options FormatOptions) string {
	return formatMessageImpl(msg, options)
}
