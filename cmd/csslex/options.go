package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"fortio.org/safecast"
	"github.com/spf13/cobra"

	"github.com/csslex/csslex/internal/css_lexer"
	"github.com/csslex/csslex/internal/logger"
)

// Returned once the failure has already been written to the log
var errReported = errors.New("errors were reported")

func logFromFlags(cmd *cobra.Command) (logger.Log, error) {
	flags := cmd.Root().PersistentFlags()
	options := logger.StderrOptions{IncludeSource: true}

	color, err := flags.GetString("color")
	if err != nil {
		return logger.Log{}, err
	}
	switch color {
	case "auto":
		options.Color = logger.ColorIfTerminal
	case "on":
		options.Color = logger.ColorAlways
	case "off":
		options.Color = logger.ColorNever
	default:
		return logger.Log{}, fmt.Errorf("invalid color mode %q (valid: auto, on, off)", color)
	}

	level, err := flags.GetString("log-level")
	if err != nil {
		return logger.Log{}, err
	}
	switch level {
	case "info":
		options.LogLevel = logger.LevelInfo
	case "warning":
		options.LogLevel = logger.LevelWarning
	case "error":
		options.LogLevel = logger.LevelError
	case "silent":
		options.LogLevel = logger.LevelSilent
	default:
		return logger.Log{}, fmt.Errorf("invalid log level %q (valid: info, warning, error, silent)", level)
	}

	if options.ErrorLimit, err = flags.GetInt("error-limit"); err != nil {
		return logger.Log{}, err
	}

	return logger.NewStderrLog(options), nil
}

func int32Flag(cmd *cobra.Command, name string) (int32, error) {
	value, err := cmd.Root().PersistentFlags().GetInt(name)
	if err != nil {
		return 0, err
	}
	result, err := safecast.Conv[int32](value)
	if err != nil || result < 0 {
		return 0, fmt.Errorf("invalid value %d for --%s", value, name)
	}
	return result, nil
}

func lexerOptionsFromFlags(cmd *cobra.Command) (css_lexer.Options, error) {
	var options css_lexer.Options

	containerLine, err := int32Flag(cmd, "container-line")
	if err != nil {
		return options, err
	}
	if containerLine != 0 {
		options.Context = css_lexer.ScanContext{ContainerLine: containerLine, HasContainerLine: true}
	}

	var start logger.Position
	if start.Line, err = int32Flag(cmd, "start-line"); err != nil {
		return options, err
	}
	if start.Column, err = int32Flag(cmd, "start-column"); err != nil {
		return options, err
	}
	if start.Offset, err = int32Flag(cmd, "start-offset"); err != nil {
		return options, err
	}
	if start.Line < 1 {
		return options, fmt.Errorf("invalid value %d for --start-line", start.Line)
	}
	if start != (logger.Position{Line: 1}) {
		options.StartPosition = &start
	}

	return options, nil
}

// Reads the file named by the only argument, or stdin for "-"
func readSource(cmd *cobra.Command, path string) (logger.Source, error) {
	var contents []byte
	var err error
	if path == "-" {
		contents, err = io.ReadAll(cmd.InOrStdin())
		path = "<stdin>"
	} else {
		contents, err = os.ReadFile(path)
	}
	if err != nil {
		return logger.Source{}, err
	}
	return logger.NewSource(path, string(contents))
}

// A lone quote is what's left of a string that ran into a newline or the end
// of the file
func warnAboutUnterminatedStrings(log logger.Log, source *logger.Source, result css_lexer.TokenizeResult) {
	for i, token := range result.Tokens {
		if token.Kind == css_lexer.TDelim && (token.Text == "\"" || token.Text == "'") {
			log.AddWarning(source, result.Ranges[i], result.Locations[i].Start, "Unterminated string token")
		}
	}
}
