package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/msto63/minipl/foundation/minipl"
	"github.com/msto63/minipl/foundation/minipl/ast"
)

var astCompact bool

var astCmd = &cobra.Command{
	Use:   "ast <file>",
	Short: "Print the syntax tree of a program",
	Long: `Parses a Mini-PL program and prints its syntax tree as an indented
dump. With --compact the tree is printed back as source text.`,
	Args: cobra.ExactArgs(1),
	RunE: runAST,
}

func init() {
	rootCmd.AddCommand(astCmd)
	astCmd.Flags().BoolVar(&astCompact, "compact", false, "print the tree as source text")
}

func runAST(cmd *cobra.Command, args []string) error {
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

	tree, err := engine.Parse(source)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if astCompact {
		fmt.Fprintln(out, tree.String())
		return nil
	}
	fmt.Fprint(out, ast.Dump(tree))
	fmt.Fprintln(out, mutedStyle.Render(fmt.Sprintf("%d nodes", ast.Count(tree))))
	return nil
}
