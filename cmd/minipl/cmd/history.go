package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/msto63/minipl/internal/runstore"
)

var (
	historyLimit  int
	historyStatus string
	pruneDays     int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded runs",
	Long: `Lists runs recorded in the run history, newest first.

Examples:
  minipl history --limit 5
  minipl history --status runtime
  minipl history show <run-id>
  minipl history prune --days 7`,
	Args: cobra.NoArgs,
	RunE: runHistory,
}

var historyShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run including its source",
	Args:  cobra.ExactArgs(1),
	RunE:  runHistoryShow,
}

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove old runs from the history",
	Args:  cobra.NoArgs,
	RunE:  runHistoryPrune,
}

func init() {
	rootCmd.AddCommand(historyCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyPruneCmd)

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "maximum number of runs")
	historyCmd.Flags().StringVar(&historyStatus, "status", "", "only runs with this status (ok, lexical, syntax, semantic, runtime, internal)")
	historyPruneCmd.Flags().IntVar(&pruneDays, "days", 0, "remove runs older than this many days (default: history.retention_days)")
}

func openStore() (runstore.Store, error) {
	return runstore.NewSQLiteStore(runstore.SQLiteConfig{Path: appConfig.History.Path})
}

func runHistory(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.List(cmd.Context(), runstore.Filter{
		Status: historyStatus,
		Limit:  historyLimit,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, mutedStyle.Render("No runs recorded."))
		return nil
	}

	fmt.Fprintln(out, headerStyle.Render(fmt.Sprintf("%-36s  %-19s  %-9s  %10s  %s", "RUN", "STARTED", "STATUS", "DURATION", "SOURCE")))
	for _, run := range runs {
		status := statusStyle(run.Status).Render(fmt.Sprintf("%-9s", run.Status))
		fmt.Fprintf(out, "%-36s  %-19s  %s  %10s  %s\n",
			run.ID,
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			status,
			run.Duration.Round(time.Microsecond),
			run.Source)
		if run.Error != "" {
			fmt.Fprintf(out, "  %s\n", mutedStyle.Render(run.Error))
		}
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	run, err := store.Get(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("run:     "), run.ID)
	fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("source:  "), run.Source)
	fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("started: "), run.StartedAt.Local().Format(time.RFC3339))
	fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("status:  "), statusStyle(run.Status).Render(run.Status))
	fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("duration:"), run.Duration)
	fmt.Fprintf(out, "%s %d bytes\n", mutedStyle.Render("output:  "), run.OutputBytes)
	if run.Error != "" {
		fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("error:   "), run.Error)
	}
	fmt.Fprintf(out, "%s %s\n", mutedStyle.Render("sha256:  "), run.SourceHash)
	return nil
}

func runHistoryPrune(cmd *cobra.Command, args []string) error {
	days := pruneDays
	if days == 0 {
		days = appConfig.History.RetentionDays
	}
	if days <= 0 {
		return fmt.Errorf("nothing to prune: retention is disabled")
	}

	store, err := openStore()
	if err != nil {
		return err
	}
	defer store.Close()

	removed, err := store.Prune(cmd.Context(), time.Duration(days)*24*time.Hour)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Removed %d run%s older than %d day%s.\n",
		removed, plural(removed), days, plural(int64(days)))
	return nil
}

func plural(n int64) string {
	if n == 1 {
		return ""
	}
	return "s"
}
