package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/csslex/csslex/internal/test"
)

// Flag values live on the global commands, so put them back between runs
func resetFlags(cmd *cobra.Command) {
	reset := func(flag *pflag.Flag) {
		flag.Value.Set(flag.DefValue)
		flag.Changed = false
	}
	cmd.Flags().VisitAll(reset)
	cmd.PersistentFlags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

func runCommand(stdin string, args ...string) (string, error) {
	resetFlags(rootCmd)
	var stdout bytes.Buffer
	rootCmd.SetIn(strings.NewReader(stdin))
	rootCmd.SetOut(&stdout)
	rootCmd.SetArgs(append(args, "--log-level=silent"))
	err := rootCmd.Execute()
	return stdout.String(), err
}

func TestTokenizeCommand(t *testing.T) {
	out, err := runCommand("a {}", "tokenize", "--format=pretty", "-")
	test.AssertEqual(t, err, nil)
	test.AssertEqualWithDiff(t, out, ""+
		"1:0-1:1      identifier \"a\"\n"+
		"1:2-1:3      \"{\"\n"+
		"1:3-1:4      \"}\"\n")

	out, err = runCommand("10px", "tokenize", "--format=json", "-")
	test.AssertEqual(t, err, nil)
	test.AssertEqualWithDiff(t, out,
		`{"kind":"dimension","text":"10","unit":"px","start":{"Offset":0,"Line":1,"Column":0},"end":{"Offset":4,"Line":1,"Column":4}}`+"\n")

	_, err = runCommand("a", "tokenize", "--format=xml", "-")
	test.AssertEqual(t, err.Error(), "unknown format \"xml\" (valid: pretty, json)")
}

func TestTokenizeCommandErrors(t *testing.T) {
	// Tokens before the error are still printed
	out, err := runCommand("a url(b", "tokenize", "--format=pretty", "-")
	test.AssertEqual(t, err, errReported)
	test.AssertEqualWithDiff(t, out, "1:0-1:1      identifier \"a\"\n")
}

func TestCheckCommand(t *testing.T) {
	out, err := runCommand("a { b(c) }", "check", "-")
	test.AssertEqual(t, err, nil)
	test.AssertEqual(t, out, "<stdin>: 6 tokens\n")

	out, err = runCommand("a {", "check", "-")
	test.AssertEqual(t, err, errReported)
	test.AssertEqual(t, out, "")
}

func TestStartPositionFlags(t *testing.T) {
	out, err := runCommand("a\n  b", "tokenize", "--format=pretty",
		"--start-line=3", "--start-column=10", "--start-offset=30", "--container-line=3", "-")
	test.AssertEqual(t, err, nil)
	test.AssertEqualWithDiff(t, out, ""+
		"3:10-3:11    identifier \"a\"\n"+
		"4:0-4:1      identifier \"b\"\n")

	_, err = runCommand("a", "tokenize", "--start-line=0", "-")
	test.AssertEqual(t, err.Error(), "invalid value 0 for --start-line")
}
