package css_lexer

import (
	"github.com/csslex/csslex/internal/helpers"
	"github.com/csslex/csslex/internal/logger"
)

// The lexer converts a CSS fragment to a stream of tokens. It is pulled one
// token at a time by the parse driver and never looks further ahead than the
// token it is currently reading.
//
// Each token shape is tried in a fixed order against the same starting point
// and the first one that matches wins. The order matters: "url(" comes
// before functions, unicode ranges come before identifiers, and functions
// come before bare identifiers.

type Options struct {
	// Where the fragment begins inside its container document. When this is
	// nil the fragment starts at line 1, column 0.
	StartPosition *logger.Position

	Context ScanContext
}

type Lexer struct {
	source     logger.Source
	context    ScanContext
	in         input
	tokenRange logger.Range
}

func NewLexer(source logger.Source, options Options) *Lexer {
	return &Lexer{
		source:  source,
		context: options.Context,
		in:      newInput(source.Contents, options.StartPosition),
	}
}

// Returns the next token and its location. After the end of the file has
// been reached, every call returns another end-of-file token.
func (lexer *Lexer) Next() (Token, logger.Location, error) {
	if err := lexer.skipCommentsAndWhitespace(); err != nil {
		return Token{}, logger.Location{}, err
	}

	startOffset := lexer.in.offset
	start := lexer.in.position()
	token, err := lexer.scanToken()
	if err != nil {
		return Token{}, logger.Location{}, err
	}
	end := lexer.in.position()

	lexer.tokenRange = logger.Range{
		Loc: logger.Loc{Start: int32(startOffset)},
		Len: int32(lexer.in.offset - startOffset),
	}
	return token, lexer.context.RepairLocation(logger.Location{Start: start, End: end}), nil
}

// The raw range of the most recent token inside the fragment. This is never
// repaired and can always be used to slice the source text.
func (lexer *Lexer) Range() logger.Range {
	return lexer.tokenRange
}

func (lexer *Lexer) Source() *logger.Source {
	return &lexer.source
}

type TokenizeResult struct {
	Tokens    []Token
	Locations []logger.Location
	Ranges    []logger.Range
}

// Runs the lexer to the end of the file. The end-of-file token is not
// included in the result.
func Tokenize(source logger.Source, options Options) (TokenizeResult, error) {
	var result TokenizeResult
	lexer := NewLexer(source, options)
	for {
		token, loc, err := lexer.Next()
		if err != nil {
			return result, err
		}
		if token.Kind == TEndOfFile {
			return result, nil
		}
		result.Tokens = append(result.Tokens, token)
		result.Locations = append(result.Locations, loc)
		result.Ranges = append(result.Ranges, lexer.Range())
	}
}

func (lexer *Lexer) errorHere(kind LexErrorKind, text string) *LexError {
	return &LexError{
		Kind:     kind,
		Text:     text,
		Position: lexer.context.Repair(lexer.in.position()),
		Loc:      logger.Loc{Start: int32(lexer.in.offset)},
	}
}

type skipState uint8

const (
	skipWhitespace skipState = iota
	skipComment
)

// Comments do not nest. The first "*/" ends the comment.
func (lexer *Lexer) skipCommentsAndWhitespace() error {
	in := &lexer.in
	state := skipWhitespace

	for {
		switch state {
		case skipWhitespace:
			for isWhitespace(in.codePoint) {
				in.step()
			}
			if !in.eat("/*") {
				return nil
			}
			state = skipComment

		case skipComment:
			if in.codePoint == eof {
				return lexer.errorHere(UnterminatedComment, "")
			}
			if in.eat("*/") {
				state = skipWhitespace
			} else {
				in.step()
			}
		}
	}
}

var operators = []string{"~=", "|=", "^=", "$=", "*=", "||"}

func (lexer *Lexer) scanToken() (Token, error) {
	// Reference: https://www.w3.org/TR/css-syntax-3/
	in := &lexer.in
	start := in.mark()

	switch in.codePoint {
	case eof:
		return Token{Kind: TEndOfFile}, nil

	case ';':
		in.step()
		return Token{Kind: TSemicolon}, nil

	case '}':
		in.step()
		return Token{Kind: TCloseBrace}, nil

	case '{':
		in.step()
		return Token{Kind: TOpenBrace}, nil

	case ':':
		in.step()
		return Token{Kind: TColon}, nil

	case '(':
		in.step()
		return Token{Kind: TOpenParen}, nil

	case ')':
		in.step()
		return Token{Kind: TCloseParen}, nil

	case '[':
		in.step()
		return Token{Kind: TOpenBracket}, nil

	case ']':
		in.step()
		return Token{Kind: TCloseBracket}, nil

	case '%':
		in.step()
		return Token{Kind: TPercent}, nil
	}

	for _, op := range operators {
		if in.eat(op) {
			return Token{Kind: TOperator, Text: op}, nil
		}
	}

	if lexer.consumeString() {
		text := in.textSince(start)
		return Token{Kind: TString, Text: text[1 : len(text)-1]}, nil
	}

	if in.eat("url(") {
		return lexer.consumeURL()
	}

	if lexer.consumeImportant() {
		return Token{Kind: TImportant}, nil
	}

	if in.codePoint == '@' {
		in.step()
		name := in.mark()
		if lexer.consumeIdent() {
			return Token{Kind: TAtKeyword, Text: in.textSince(name)}, nil
		}
		in.reset(start)
	}

	// This must come before identifiers or "u+a" would become an identifier
	if lexer.consumeUnicodeRange() {
		return Token{Kind: TUnicodeRange, Text: in.textSince(start)}, nil
	}

	if lexer.consumeIdent() {
		name := in.textSince(start)
		if in.codePoint == '(' {
			in.step()
			return Token{Kind: TFunction, Text: name}, nil
		}
		return Token{Kind: TIdent, Text: name}, nil
	}

	if in.codePoint == '#' {
		in.step()
		name := in.mark()
		if lexer.consumeNameContinue() {
			for lexer.consumeNameContinue() {
			}
			return Token{Kind: THash, Text: in.textSince(name)}, nil
		}
		in.reset(start)
	}

	if lexer.consumeNumber() {
		return lexer.consumeDimension(in.textSince(start)), nil
	}

	// Every other code point is a delimiter by itself
	in.step()
	return Token{Kind: TDelim, Text: in.textSince(start)}, nil
}

// Unescaped newlines end a string without matching it. The opening quote is
// then scanned as a delimiter.
func (lexer *Lexer) consumeString() bool {
	in := &lexer.in
	quote := in.codePoint
	if quote != '"' && quote != '\'' {
		return false
	}
	start := in.mark()
	in.step()

	for {
		switch c := in.codePoint; {
		case c == quote:
			in.step()
			return true

		case c == eof, isNewline(c):
			in.reset(start)
			return false

		case c == '\\':
			if isNewline(in.peek(1)) {
				in.step()
				lexer.consumeNewline()
			} else if !lexer.consumeEscape() {
				in.reset(start)
				return false
			}

		default:
			in.step()
		}
	}
}

func (lexer *Lexer) consumeImportant() bool {
	in := &lexer.in
	if in.codePoint != '!' {
		return false
	}
	start := in.mark()
	in.step()
	for isWhitespace(in.codePoint) {
		in.step()
	}
	for _, c := range "important" {
		if helpers.LowerASCII(in.codePoint) != c {
			in.reset(start)
			return false
		}
		in.step()
	}
	return true
}

// Either up to six hex digits padded with "?" wildcards, or two runs of hex
// digits separated by "-"
func (lexer *Lexer) consumeUnicodeRange() bool {
	in := &lexer.in
	if (in.codePoint != 'u' && in.codePoint != 'U') || in.peek(1) != '+' {
		return false
	}
	start := in.mark()
	in.step()
	in.step()

	digits := lexer.consumeHexDigits(6)
	wildcards := 0
	for digits+wildcards < 6 && in.codePoint == '?' {
		in.step()
		wildcards++
	}
	if digits+wildcards == 0 {
		in.reset(start)
		return false
	}

	if wildcards == 0 && in.codePoint == '-' {
		if _, ok := isHex(in.peek(1)); ok {
			in.step()
			lexer.consumeHexDigits(6)
		}
	}
	return true
}

func (lexer *Lexer) consumeHexDigits(limit int) (count int) {
	for count < limit {
		if _, ok := isHex(lexer.in.codePoint); !ok {
			break
		}
		lexer.in.step()
		count++
	}
	return
}

func (lexer *Lexer) consumeIdent() bool {
	in := &lexer.in
	start := in.mark()

	if in.codePoint == '-' {
		in.step()

		// Custom properties such as "--color" start with two dashes
		if in.codePoint == '-' {
			in.step()
			for lexer.consumeNameContinue() {
			}
			return true
		}
	}

	if !lexer.consumeNameStart() {
		in.reset(start)
		return false
	}
	for lexer.consumeNameContinue() {
	}
	return true
}

func (lexer *Lexer) consumeNameStart() bool {
	if IsNameStart(lexer.in.codePoint) {
		lexer.in.step()
		return true
	}
	return lexer.consumeEscape()
}

func (lexer *Lexer) consumeNameContinue() bool {
	if IsNameContinue(lexer.in.codePoint) {
		lexer.in.step()
		return true
	}
	return lexer.consumeEscape()
}

// A backslash followed by 1-6 hex digits and an optional whitespace code
// point, or by any single code point other than a newline. Nothing is
// consumed if this isn't a valid escape.
func (lexer *Lexer) consumeEscape() bool {
	in := &lexer.in
	if in.codePoint != '\\' {
		return false
	}
	c := in.peek(1)
	if c == eof || isNewline(c) {
		return false
	}
	in.step()

	if _, ok := isHex(c); ok {
		lexer.consumeHexDigits(6)
		if isWhitespace(in.codePoint) {
			lexer.consumeNewline()
		}
		return true
	}

	in.step()
	return true
}

// Consumes one whitespace code point, treating "\r\n" as a single newline
func (lexer *Lexer) consumeNewline() {
	in := &lexer.in
	if in.codePoint == '\r' && in.peek(1) == '\n' {
		in.step()
	}
	in.step()
}

func (lexer *Lexer) consumeNumber() bool {
	in := &lexer.in
	start := in.mark()

	// Skip over leading sign
	if in.codePoint == '+' || in.codePoint == '-' {
		in.step()
	}

	digits := lexer.consumeDigits()

	// Skip over digits after dot
	if in.codePoint == '.' && isDigit(in.peek(1)) {
		in.step()
		digits += lexer.consumeDigits()
	}

	if digits == 0 {
		in.reset(start)
		return false
	}

	// Look ahead before advancing to make sure this is an exponent, not a unit
	if in.codePoint == 'e' || in.codePoint == 'E' {
		c := in.peek(1)
		if c == '+' || c == '-' {
			c = in.peek(2)
		}
		if isDigit(c) {
			in.step()
			if in.codePoint == '+' || in.codePoint == '-' {
				in.step()
			}
			lexer.consumeDigits()
		}
	}
	return true
}

func (lexer *Lexer) consumeDigits() (count int) {
	for isDigit(lexer.in.codePoint) {
		lexer.in.step()
		count++
	}
	return
}

func IsNameStart(c rune) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c == '_' || c >= 0x80
}

func IsNameContinue(c rune) bool {
	return IsNameStart(c) || isDigit(c) || c == '-'
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isNewline(c rune) bool {
	switch c {
	case '\n', '\r', '\f':
		return true
	}
	return false
}

func isWhitespace(c rune) bool {
	switch c {
	case ' ', '\t', '\n', '\r', '\f':
		return true
	}
	return false
}

func isHex(c rune) (int, bool) {
	if c >= '0' && c <= '9' {
		return int(c - '0'), true
	}
	if c >= 'a' && c <= 'f' {
		return int(c + (10 - 'a')), true
	}
	if c >= 'A' && c <= 'F' {
		return int(c + (10 - 'A')), true
	}
	return 0, false
}

func isNonPrintable(c rune) bool {
	return c <= 0x08 || c == 0x0B || (c >= 0x0E && c <= 0x1F) || c == 0x7F
}
