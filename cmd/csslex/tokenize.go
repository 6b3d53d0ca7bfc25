package main

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/csslex/csslex/internal/css_driver"
	"github.com/csslex/csslex/internal/css_lexer"
	"github.com/csslex/csslex/internal/logger"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] <file.css|->",
	Short: "Print the tokens of a CSS file",
	Long:  `Tokenize prints every token of a CSS file together with its location`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, err := cmd.Flags().GetString("format")
	if err != nil {
		return err
	}
	if format != "pretty" && format != "json" {
		return fmt.Errorf("unknown format %q (valid: pretty, json)", format)
	}
	log, err := logFromFlags(cmd)
	if err != nil {
		return err
	}
	options, err := lexerOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	source, err := readSource(cmd, args[0])
	if err != nil {
		return err
	}

	result, lexErr := css_lexer.Tokenize(source, options)
	warnAboutUnterminatedStrings(log, &source, result)

	// Print what was scanned before any error
	if err := printTokens(cmd.OutOrStdout(), format, result); err != nil {
		return err
	}

	if lexErr != nil {
		log.AddMsg(css_driver.ErrorToMsg(&source, lexErr))
	}
	log.Done()
	if log.HasErrors() {
		return errReported
	}
	return nil
}

type jsonToken struct {
	Kind  string          `json:"kind"`
	Text  string          `json:"text,omitempty"`
	Unit  string          `json:"unit,omitempty"`
	Start logger.Position `json:"start"`
	End   logger.Position `json:"end"`
}

func printTokens(w io.Writer, format string, result css_lexer.TokenizeResult) error {
	if format == "json" {
		encoder := json.NewEncoder(w)
		for i, token := range result.Tokens {
			loc := result.Locations[i]
			if err := encoder.Encode(jsonToken{
				Kind:  token.Kind.String(),
				Text:  token.Text,
				Unit:  token.Unit,
				Start: loc.Start,
				End:   loc.End,
			}); err != nil {
				return err
			}
		}
		return nil
	}

	for i, token := range result.Tokens {
		if _, err := fmt.Fprintf(w, "%-12s %s\n", result.Locations[i], token); err != nil {
			return err
		}
	}
	return nil
}
