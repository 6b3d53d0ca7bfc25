package api

import (
	"fmt"

	"fortio.org/safecast"

	"github.com/csslex/csslex/internal/css_driver"
	"github.com/csslex/csslex/internal/css_lexer"
	"github.com/csslex/csslex/internal/logger"
)

func sourcefile(options ParseOptions) string {
	if options.Sourcefile == "" {
		return "<stdin>"
	}
	return options.Sourcefile
}

func validateParseOptions(options ParseOptions) (css_lexer.Options, error) {
	var result css_lexer.Options

	if options.ContainerLine != 0 {
		line, err := safecast.Conv[int32](options.ContainerLine)
		if err != nil || line < 0 {
			return result, fmt.Errorf("Invalid container line %d", options.ContainerLine)
		}
		result.Context = css_lexer.ScanContext{ContainerLine: line, HasContainerLine: true}
	}

	if pos := options.StartPosition; pos != nil {
		if pos.Line < 1 || pos.Column < 0 || pos.Offset < 0 {
			return result, fmt.Errorf("Invalid start position %d:%d", pos.Line, pos.Column)
		}
		start := *pos
		result.StartPosition = &start
	}

	return result, nil
}

func newSource(source string, options ParseOptions) (logger.Source, error) {
	return logger.NewSource(sourcefile(options), source)
}

func scanOneImpl(source string) (Token, error) {
	lexer := css_lexer.NewLexer(logger.Source{PrettyPath: "<stdin>", Contents: source}, css_lexer.Options{})
	token, _, err := lexer.Next()
	return token, err
}

func tokenizeImpl(source string, options ParseOptions) TokenizeResult {
	var result TokenizeResult

	lexerOptions, err := validateParseOptions(options)
	if err != nil {
		result.Errors = []Message{{Text: err.Error()}}
		return result
	}
	src, err := newSource(source, options)
	if err != nil {
		result.Errors = []Message{{Text: err.Error()}}
		return result
	}

	tokens, err := css_lexer.Tokenize(src, lexerOptions)
	result.Tokens = tokens.Tokens
	result.Locations = tokens.Locations
	if err != nil {
		result.Errors = []Message{convertMessage(css_driver.ErrorToMsg(&src, err))}
	}
	return result
}

func errorToMessageImpl(source string, options ParseOptions, err error) Message {
	src := logger.Source{PrettyPath: sourcefile(options), Contents: source}
	return convertMessage(css_driver.ErrorToMsg(&src, err))
}

func convertMessage(msg logger.Msg) Message {
	var location *MsgLocation
	if loc := msg.Location; loc != nil {
		location = &MsgLocation{
			File:     loc.File,
			Line:     loc.Line,
			Column:   loc.Column,
			Length:   loc.Length,
			LineText: loc.LineText,

			LineTextColumn: loc.LineTextColumn,
		}
	}
	return Message{Text: msg.Text, Location: location}
}

func formatMessageImpl(msg Message, options FormatOptions) string {
	internal := logger.Msg{Kind: logger.Error, Text: msg.Text}
	if loc := msg.Location; loc != nil {
		internal.Location = &logger.MsgLocation{
			File:           loc.File,
			Line:           loc.Line,
			Column:         loc.Column,
			Length:         loc.Length,
			LineText:       loc.LineText,
			LineTextColumn: loc.LineTextColumn,
		}
	}
	return internal.String(
		logger.StderrOptions{IncludeSource: true},
		logger.TerminalInfo{UseColorEscapes: options.Color, Width: options.TerminalWidth},
	)
}
