package main

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/csslex/csslex/internal/css_driver"
	"github.com/csslex/csslex/internal/css_lexer"
	"github.com/csslex/csslex/internal/logger"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] <file.css|->...",
	Short: "Check that CSS files scan and their brackets balance",
	Long:  `Check drives a minimal bracket-matching grammar over the tokens of each CSS file and reports the first error in each one`,
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "number of files to check at once (0 uses GOMAXPROCS)")
}

type checkResult struct {
	source   logger.Source
	count    int
	err      error
	tokens   css_lexer.TokenizeResult
}

func runCheck(cmd *cobra.Command, args []string) error {
	log, err := logFromFlags(cmd)
	if err != nil {
		return err
	}
	options, err := lexerOptionsFromFlags(cmd)
	if err != nil {
		return err
	}
	jobs, err := cmd.Flags().GetInt("jobs")
	if err != nil {
		return err
	}
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Sources are read up front so that stdin is only consumed once
	sources := make([]logger.Source, len(args))
	for i, path := range args {
		if sources[i], err = readSource(cmd, path); err != nil {
			return err
		}
	}

	// Each goroutine writes only to its own slot
	results := make([]checkResult, len(sources))
	g, gctx := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(jobs, len(sources)))
	for i, source := range sources {
		i, source := i, source
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			result := checkResult{source: source}
			result.count, result.err = css_driver.Run(source, options, checkBalance)
			if tokens, lexErr := css_lexer.Tokenize(source, options); lexErr == nil {
				result.tokens = tokens
			}
			results[i] = result
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	// Report in the order the files were given
	for i := range results {
		result := &results[i]
		warnAboutUnterminatedStrings(log, &result.source, result.tokens)
		if result.err != nil {
			log.AddMsg(css_driver.ErrorToMsg(&result.source, result.err))
		} else {
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %d tokens\n", result.source.PrettyPath, result.count)
		}
	}
	log.Done()
	if log.HasErrors() {
		return errReported
	}
	return nil
}
