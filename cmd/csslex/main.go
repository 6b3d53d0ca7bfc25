package main

import (
	"os"

	"github.com/spf13/cobra"
)

const csslexVersion = "0.1.0"

var rootCmd = &cobra.Command{
	Use:           "csslex",
	Short:         "Tokenize and check CSS fragments",
	Long:          `csslex scans CSS source into tokens and reports lexer and parser errors with their locations`,
	Version:       csslexVersion,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.AddCommand(tokenizeCmd)
	rootCmd.AddCommand(checkCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize messages (auto|on|off)")
	rootCmd.PersistentFlags().String("log-level", "info", "minimum message level (info|warning|error|silent)")
	rootCmd.PersistentFlags().Int("error-limit", 10, "maximum error count or 0 to disable")
	rootCmd.PersistentFlags().Int("container-line", 0, "line of the container document where the fragment begins (0 disables location repair)")
	rootCmd.PersistentFlags().Int("start-line", 1, "line at which the fragment begins")
	rootCmd.PersistentFlags().Int("start-column", 0, "column at which the fragment begins")
	rootCmd.PersistentFlags().Int("start-offset", 0, "byte offset at which the fragment begins")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		if err != errReported {
			os.Stderr.WriteString("error: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}
