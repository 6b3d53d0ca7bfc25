package main

import (
	"errors"
	"testing"

	"github.com/csslex/csslex/internal/css_driver"
	"github.com/csslex/csslex/internal/css_lexer"
	"github.com/csslex/csslex/internal/test"
)

func check(contents string) (int, error) {
	return css_driver.Run(test.SourceForTest(contents), css_lexer.Options{}, checkBalance)
}

func TestCheckBalance(t *testing.T) {
	count, err := check("a { color: rgb(1, 2, 3); } [x] {}")
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, count, 18)

	count, err = check("")
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, count, 0)
}

func TestCheckBalanceErrors(t *testing.T) {
	expected := []struct {
		contents string
		token    css_lexer.Token
		message  string
	}{
		{"a { b: c;", css_lexer.Token{Kind: css_lexer.TEndOfFile}, "expected \"}\""},
		{"a { b: f(c }", css_lexer.Token{Kind: css_lexer.TCloseBrace}, "unexpected \"}\""},
		{")", css_lexer.Token{Kind: css_lexer.TCloseParen}, "unexpected \")\""},
	}

	for _, it := range expected {
		t.Run(it.contents, func(t *testing.T) {
			_, err := check(it.contents)
			var parseErr *css_driver.ParseError
			if !errors.As(err, &parseErr) {
				t.Fatalf("expected a parse error, got %v", err)
			}
			test.AssertEqual(t, parseErr.Token, it.token)
			test.AssertEqual(t, parseErr.Err.Error(), it.message)
		})
	}
}
