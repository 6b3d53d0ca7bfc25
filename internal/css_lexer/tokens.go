package css_lexer

import "fmt"

type T uint8

const (
	TEndOfFile T = iota

	TAtKeyword
	TCloseBrace
	TCloseBracket
	TCloseParen
	TColon
	TDelim
	TFloatDimension
	TFunction
	THash
	TIdent
	TImportant
	TIntDimension
	TNumber
	TOpenBrace
	TOpenBracket
	TOpenParen
	TOperator
	TPercent
	TSemicolon
	TString
	TURI
	TUnicodeRange
)

var tokenToString = []string{
	"end of file",
	"@-keyword",
	"\"}\"",
	"\"]\"",
	"\")\"",
	"\":\"",
	"delimiter",
	"dimension",
	"function token",
	"hash token",
	"identifier",
	"\"!important\"",
	"dimension",
	"number",
	"\"{\"",
	"\"[\"",
	"\"(\"",
	"operator",
	"\"%\"",
	"\";\"",
	"string token",
	"URL token",
	"unicode range",
}

func (t T) String() string {
	return tokenToString[t]
}

// Payloads are the literal source text of the token. Escapes are left as
// written and numbers are not converted.
type Token struct {
	Kind T

	// The identifier, string contents, URL, operator, delimiter character,
	// at-rule or function name without "@" or "(", hash name without "#",
	// number or unicode range. For dimensions this is the number.
	Text string

	// Only used by dimensions
	Unit string
}

func (token Token) String() string {
	switch token.Kind {
	case TFloatDimension, TIntDimension:
		return fmt.Sprintf("%s %q %q", token.Kind, token.Text, token.Unit)

	case TIdent, TString, TURI, TOperator, TDelim, TAtKeyword,
		TFunction, THash, TNumber, TUnicodeRange:
		return fmt.Sprintf("%s %q", token.Kind, token.Text)
	}
	return token.Kind.String()
}
