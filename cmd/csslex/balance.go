package main

import (
	"fmt"

	"github.com/csslex/csslex/internal/css_driver"
	"github.com/csslex/csslex/internal/css_lexer"
)

// Function tokens include their "(" so they close with ")"
func closerFor(kind css_lexer.T) (css_lexer.T, bool) {
	switch kind {
	case css_lexer.TOpenBrace:
		return css_lexer.TCloseBrace, true
	case css_lexer.TOpenBracket:
		return css_lexer.TCloseBracket, true
	case css_lexer.TOpenParen, css_lexer.TFunction:
		return css_lexer.TCloseParen, true
	}
	return 0, false
}

// A grammar that only checks that blocks are balanced. It returns the number
// of tokens it read.
func checkBalance(tokens css_driver.TokenStream) (int, error) {
	var stack []css_lexer.T
	count := 0

	for {
		token, _, err := tokens.Next()
		if err != nil {
			return 0, err
		}

		switch token.Kind {
		case css_lexer.TEndOfFile:
			if len(stack) > 0 {
				return 0, fmt.Errorf("expected %s", stack[len(stack)-1])
			}
			return count, nil

		case css_lexer.TCloseBrace, css_lexer.TCloseBracket, css_lexer.TCloseParen:
			if len(stack) == 0 || stack[len(stack)-1] != token.Kind {
				return 0, fmt.Errorf("unexpected %s", token.Kind)
			}
			stack = stack[:len(stack)-1]

		default:
			if closer, ok := closerFor(token.Kind); ok {
				stack = append(stack, closer)
			}
		}
		count++
	}
}
