package css_driver

import (
	"errors"
	"testing"

	"github.com/csslex/csslex/internal/css_lexer"
	"github.com/csslex/csslex/internal/logger"
	"github.com/csslex/csslex/internal/test"
)

type declaration struct {
	Property string
	Values   []css_lexer.Token
}

// A tiny grammar for "name: value...;" lists
func parseDeclarations(tokens TokenStream) ([]declaration, error) {
	var decls []declaration
	for {
		token, _, err := tokens.Next()
		if err != nil {
			return nil, err
		}
		switch token.Kind {
		case css_lexer.TEndOfFile:
			return decls, nil
		case css_lexer.TIdent:
		default:
			return nil, errors.New("expected a property name")
		}

		decl := declaration{Property: token.Text}
		colon, _, err := tokens.Next()
		if err != nil {
			return nil, err
		}
		if colon.Kind != css_lexer.TColon {
			return nil, errors.New("expected \":\"")
		}

		for {
			value, _, err := tokens.Next()
			if err != nil {
				return nil, err
			}
			if value.Kind == css_lexer.TSemicolon {
				break
			}
			if value.Kind == css_lexer.TEndOfFile {
				return nil, errors.New("expected \";\"")
			}
			decl.Values = append(decl.Values, value)
		}
		decls = append(decls, decl)
	}
}

func parse(contents string, options css_lexer.Options) ([]declaration, error) {
	return Run(test.SourceForTest(contents), options, parseDeclarations)
}

func expectParseError(t *testing.T, err error) *ParseError {
	t.Helper()
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("expected a parse error, got %v", err)
	}
	return parseErr
}

func TestRun(t *testing.T) {
	decls, err := parse("color: red; margin: 0 1px;", css_lexer.Options{})
	if err != nil {
		t.Fatal(err)
	}
	test.AssertDeepEqual(t, decls, []declaration{
		{Property: "color", Values: []css_lexer.Token{{Kind: css_lexer.TIdent, Text: "red"}}},
		{Property: "margin", Values: []css_lexer.Token{
			{Kind: css_lexer.TNumber, Text: "0"},
			{Kind: css_lexer.TIntDimension, Text: "1", Unit: "px"},
		}},
	})
}

func TestParseErrorUsesLastToken(t *testing.T) {
	_, err := parse("color red;", css_lexer.Options{})
	parseErr := expectParseError(t, err)
	test.AssertEqual(t, parseErr.Token, css_lexer.Token{Kind: css_lexer.TIdent, Text: "red"})
	test.AssertEqual(t, parseErr.Location, logger.Location{
		Start: logger.Position{Offset: 6, Line: 1, Column: 6},
		End:   logger.Position{Offset: 9, Line: 1, Column: 9},
	})
	test.AssertEqual(t, parseErr.HasLocation, true)
	test.AssertEqual(t, parseErr.Error(), "1:6: Unexpected identifier \"red\"")
	test.AssertEqual(t, parseErr.Unwrap().Error(), "expected \":\"")

	_, err = parse("color: red", css_lexer.Options{})
	parseErr = expectParseError(t, err)
	test.AssertEqual(t, parseErr.Token.Kind, css_lexer.TEndOfFile)
	test.AssertEqual(t, parseErr.Error(), "1:10: Unexpected end of file")
}

func TestParseErrorReportsLookahead(t *testing.T) {
	// Fails because of the first token but only after reading the second
	lookahead := func(tokens TokenStream) (int, error) {
		tokens.Next()
		tokens.Next()
		return 0, errors.New("bad first token")
	}
	_, err := Run(test.SourceForTest("# foo"), css_lexer.Options{}, lookahead)
	parseErr := expectParseError(t, err)
	test.AssertEqual(t, parseErr.Token, css_lexer.Token{Kind: css_lexer.TIdent, Text: "foo"})
}

func TestParseErrorBeforeAnyToken(t *testing.T) {
	fail := func(tokens TokenStream) (int, error) {
		return 0, errors.New("nothing to do")
	}
	_, err := Run(test.SourceForTest("a"), css_lexer.Options{}, fail)
	parseErr := expectParseError(t, err)
	test.AssertEqual(t, parseErr.HasLocation, false)
	test.AssertEqual(t, parseErr.Token.Kind, css_lexer.TEndOfFile)
	test.AssertEqual(t, parseErr.Error(), "Unexpected end of file")

	msg := parseErr.ToMsg(&logger.Source{PrettyPath: "<stdin>", Contents: "a"})
	test.AssertEqual(t, msg.Location == nil, true)
}

func TestLexErrorPropagates(t *testing.T) {
	_, err := parse("background: url(x", css_lexer.Options{})
	var lexErr *css_lexer.LexError
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected a lexer error, got %v", err)
	}
	test.AssertEqual(t, lexErr.Kind, css_lexer.IncompleteURI)

	// The lexer error wins even if the grammar ignores it
	ignore := func(tokens TokenStream) (int, error) {
		tokens.Next()
		tokens.Next()
		return 1, nil
	}
	_, err = Run(test.SourceForTest("a /* b"), css_lexer.Options{}, ignore)
	if !errors.As(err, &lexErr) {
		t.Fatalf("expected a lexer error, got %v", err)
	}
	test.AssertEqual(t, lexErr.Kind, css_lexer.UnterminatedComment)

	// A grammar that wraps the lexer error doesn't turn it into a parse error
	wrap := func(tokens TokenStream) (int, error) {
		_, _, err := tokens.Next()
		return 0, errors.Join(errors.New("grammar failed"), err)
	}
	_, err = Run(test.SourceForTest("url("), css_lexer.Options{}, wrap)
	test.AssertEqual(t, err.(*css_lexer.LexError).Kind, css_lexer.IncompleteURI)
}

func TestDriverLast(t *testing.T) {
	d := NewDriver(test.SourceForTest("a b"), css_lexer.Options{})
	_, _, ok := d.Last()
	test.AssertEqual(t, ok, false)

	d.Next()
	d.Next()
	token, loc, ok := d.Last()
	test.AssertEqual(t, ok, true)
	test.AssertEqual(t, token, css_lexer.Token{Kind: css_lexer.TIdent, Text: "b"})
	test.AssertEqual(t, loc.Start.Offset, int32(2))
}

func errorText(contents string, options css_lexer.Options) string {
	source := test.SourceForTest(contents)
	_, err := Run(source, options, parseDeclarations)
	if err == nil {
		return ""
	}
	log := logger.NewDeferLog()
	log.AddMsg(ErrorToMsg(&source, err))
	text := ""
	for _, msg := range log.Done() {
		text += msg.String(logger.StderrOptions{IncludeSource: true}, logger.TerminalInfo{})
	}
	return text
}

func TestErrorMessages(t *testing.T) {
	test.AssertEqualWithDiff(t, errorText("color red;", css_lexer.Options{}),
		"<stdin>:1:6: error: Unexpected identifier \"red\"\ncolor red;\n      ~~~\n")
	test.AssertEqualWithDiff(t, errorText("url(x", css_lexer.Options{}),
		"<stdin>:1:5: error: Expected \")\" to end URL token\nurl(x\n     ^\n")
	test.AssertEqualWithDiff(t, errorText("a: url(x(", css_lexer.Options{}),
		"<stdin>:1:8: error: Unexpected \"(\" in URL token\na: url(x(\n        ^\n")
	test.AssertEqualWithDiff(t, errorText("a: b;\n/* c", css_lexer.Options{}),
		"<stdin>:2:4: error: Expected \"*/\" to terminate multi-line comment\n/* c\n    ^\n")
	test.AssertEqualWithDiff(t, errorText("a: b;", css_lexer.Options{}), "")
}

func TestErrorMessagesInContainer(t *testing.T) {
	// The fragment starts at column 12 of line 3 of the container
	start := logger.Position{Offset: 40, Line: 3, Column: 12}
	options := css_lexer.Options{
		StartPosition: &start,
		Context:       css_lexer.ScanContext{ContainerLine: 3, HasContainerLine: true},
	}
	test.AssertEqualWithDiff(t, errorText("a: b;\n  color red;", options),
		"<stdin>:4:6: error: Unexpected identifier \"red\"\n  color red;\n        ~~~\n")
	test.AssertEqualWithDiff(t, errorText("a b;", options),
		"<stdin>:3:14: error: Unexpected identifier \"b\"\na b;\n  ^\n")
}

func TestErrorToMsgWithoutLocation(t *testing.T) {
	msg := ErrorToMsg(nil, errors.New("boom"))
	test.AssertEqual(t, msg.Text, "boom")
	test.AssertEqual(t, msg.Location == nil, true)
}
