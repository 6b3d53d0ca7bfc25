package css_lexer

import "github.com/csslex/csslex/internal/helpers"

// Units that accept fractional values
var floatUnits = map[string]bool{
	// Lengths
	"cap": true,
	"ch":  true,
	"cm":  true,
	"em":  true,
	"ex":  true,
	"ic":  true,
	"in":  true,
	"lh":  true,
	"mm":  true,
	"pc":  true,
	"pt":  true,
	"q":   true,
	"rem": true,
	"rlh": true,
	"vh":  true,

	// Angles
	"deg":  true,
	"grad": true,
	"rad":  true,
	"turn": true,

	// Time
	"s": true,

	// Frequency
	"hz":  true,
	"khz": true,
}

// "px" and "ms" are the integer units. Any other identifier after a number
// is also scanned as an integer dimension and left for the parser to reject.
func (lexer *Lexer) consumeDimension(number string) Token {
	in := &lexer.in
	start := in.mark()

	if !lexer.consumeIdent() {
		return Token{Kind: TNumber, Text: number}
	}

	unit := in.textSince(start)
	if isFloatUnit(unit) {
		return Token{Kind: TFloatDimension, Text: number, Unit: unit}
	}
	return Token{Kind: TIntDimension, Text: number, Unit: unit}
}

func isFloatUnit(unit string) bool {
	if len(unit) > 4 {
		return false
	}
	lower := make([]byte, len(unit))
	for i := 0; i < len(unit); i++ {
		lower[i] = byte(helpers.LowerASCII(rune(unit[i])))
	}
	return floatUnits[string(lower)]
}
