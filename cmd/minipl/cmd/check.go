package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/minipl/foundation/minipl"
)

var checkCmd = &cobra.Command{
	Use:   "check <file>",
	Short: "Analyze a program without running it",
	Long: `Parses and analyzes a Mini-PL program and prints the symbol table.
Lexical, syntax and semantic errors are reported the same way as by run.`,
	Args: cobra.ExactArgs(1),
	RunE: runCheck,
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

func runCheck(cmd *cobra.Command, args []string) error {
	source, err := readSource(args[0])
	if err != nil {
		return err
	}
	engine, err := minipl.New(minipl.Options{
		Logger:   logger,
		MaxDepth: appConfig.Interpreter.MaxDepth,
	})
	if err != nil {
		return err
	}

	analyzer, err := engine.Check(source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	table := analyzer.Symbols()
	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("Symbols (%d)", table.Len())))
	fmt.Fprintln(out, table.String())
	fmt.Fprintln(out, okStyle.Render("OK"))
	return nil
}
