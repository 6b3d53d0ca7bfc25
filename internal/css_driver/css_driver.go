package css_driver

// The driver sits between the lexer and a grammar that lives outside this
// module. The grammar pulls one token at a time. When it gives up, the only
// location the driver can report is that of the most recent token, even if
// the grammar actually failed on a token it looked at earlier.

import (
	"errors"

	"github.com/csslex/csslex/internal/css_lexer"
	"github.com/csslex/csslex/internal/logger"
)

type TokenStream interface {
	Next() (css_lexer.Token, logger.Location, error)
}

// A grammar entry point. Any error it returns that isn't a lexer error is
// reported as a ParseError at the most recent token.
type EntryPoint[T any] func(tokens TokenStream) (T, error)

type lastToken struct {
	token css_lexer.Token
	loc   logger.Location
	r     logger.Range
	ok    bool
}

type Driver struct {
	lexer  *css_lexer.Lexer
	last   lastToken
	lexErr *css_lexer.LexError
}

func NewDriver(source logger.Source, options css_lexer.Options) *Driver {
	return &Driver{
		lexer: css_lexer.NewLexer(source, options),
		last:  lastToken{token: css_lexer.Token{Kind: css_lexer.TEndOfFile}},
	}
}

func (d *Driver) Next() (css_lexer.Token, logger.Location, error) {
	// Lexer errors are fatal, so keep returning the same one
	if d.lexErr != nil {
		return css_lexer.Token{}, logger.Location{}, d.lexErr
	}

	token, loc, err := d.lexer.Next()
	if err != nil {
		var lexErr *css_lexer.LexError
		if errors.As(err, &lexErr) {
			d.lexErr = lexErr
		}
		return css_lexer.Token{}, logger.Location{}, err
	}

	d.last = lastToken{token: token, loc: loc, r: d.lexer.Range(), ok: true}
	return token, loc, nil
}

// The most recent token and whether any token has been read yet
func (d *Driver) Last() (css_lexer.Token, logger.Location, bool) {
	return d.last.token, d.last.loc, d.last.ok
}

func (d *Driver) Source() *logger.Source {
	return d.lexer.Source()
}

func (d *Driver) parseError(err error) *ParseError {
	return &ParseError{
		Token:       d.last.token,
		Location:    d.last.loc,
		Range:       d.last.r,
		HasLocation: d.last.ok,
		Err:         err,
	}
}

func Run[T any](source logger.Source, options css_lexer.Options, entry EntryPoint[T]) (T, error) {
	d := NewDriver(source, options)
	result, err := entry(d)

	// A lexer error wins even if the grammar swallowed it
	if d.lexErr != nil {
		var zero T
		return zero, d.lexErr
	}

	if err != nil {
		var zero T
		var lexErr *css_lexer.LexError
		if errors.As(err, &lexErr) {
			return zero, lexErr
		}
		var parseErr *ParseError
		if errors.As(err, &parseErr) {
			return zero, parseErr
		}
		return zero, d.parseError(err)
	}

	return result, nil
}
