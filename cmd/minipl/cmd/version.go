package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/msto63/minipl/pkg/core/version"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version",
	// version works without a readable config file
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "minipl v%s\n", version.Toolchain)
		fmt.Fprintf(out, "  Language:    %s\n", version.Language)
		fmt.Fprintf(out, "  Interpreter: %s\n", version.Interpreter)
		fmt.Fprintf(out, "  Playground:  %s\n", version.Playground)
		fmt.Fprintf(out, "  Git Commit:  %s\n", version.Commit)
		fmt.Fprintf(out, "  Build Date:  %s\n", version.BuildDate)
		fmt.Fprintf(out, "  Go Version:  %s\n", runtime.Version())
		fmt.Fprintf(out, "  OS/Arch:     %s/%s\n", runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
