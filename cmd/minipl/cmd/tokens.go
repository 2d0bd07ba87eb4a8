package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/minipl/foundation/minipl"
)

var tokensCmd = &cobra.Command{
	Use:   "tokens <file>",
	Short: "Print the token stream of a program",
	Args:  cobra.ExactArgs(1),
	RunE:  runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)
}

func runTokens(cmd *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}
	engine, err := minipl.New(minipl.Options{Logger: logger})
	if err != nil {
		return err
	}

	// tokens scanned before a lexical error are still printed
	tokens, err := engine.Tokens(source)
	out := cmd.OutOrStdout()
	for _, tok := range tokens {
		fmt.Fprintln(out, tok.String())
	}
	return err
}
