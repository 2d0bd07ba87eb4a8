package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/minipl/foundation/core/log"
	"github.com/msto63/minipl/foundation/minipl"
	"github.com/msto63/minipl/foundation/minipl/interpreter"
	"github.com/msto63/minipl/internal/runstore"
)

var (
	runStats     bool
	runNoHistory bool
)

var runCmd = &cobra.Command{
	Use:   "run <file>",
	Short: "Run a Mini-PL program",
	Long: `Runs a Mini-PL program. Read statements consume lines from stdin,
print and assert write to stdout. Diagnostics go to stderr and a failed
run exits with status 1.

Use "-" as file to read the program itself from stdin.

Examples:
  minipl run examples/factorial.mpl
  echo 5 | minipl run examples/factorial.mpl
  minipl run --stats loop.mpl`,
	Args: cobra.ExactArgs(1),
	RunE: runProgram,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.Flags().BoolVar(&runStats, "stats", false, "print run statistics to stderr")
	runCmd.Flags().BoolVar(&runNoHistory, "no-history", false, "do not record this run")
}

func runProgram(cmd *cobra.Command, args []string) error {
	path := args[0]
	source, err := readSource(path)
	if err != nil {
		return err
	}

	stdout := cmd.OutOrStdout()
	engine, err := minipl.New(minipl.Options{
		Logger:        logger,
		MaxIterations: appConfig.Interpreter.MaxIterations,
		MaxDepth:      appConfig.Interpreter.MaxDepth,
	})
	if err != nil {
		return err
	}

	var input interpreter.LineReader = interpreter.NewLineReader(cmd.InOrStdin())
	if path == "-" {
		// stdin already holds the program
		input = interpreter.NewLinesReader()
	}
	if appConfig.Interpreter.EchoInput {
		input = &echoReader{reader: input, echo: stdout}
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	result, runErr := engine.RunWith(ctx, source, input, stdout)

	if appConfig.History.Enabled && !runNoHistory {
		recordRun(sourceName(path), source, result, runErr)
	}
	if runStats {
		printStats(cmd.ErrOrStderr(), result)
	}
	return runErr
}

// recordRun stores the run in the history. History problems never fail
// the run itself; they are logged.
func recordRun(name, source string, result *minipl.Result, runErr error) {
	store, err := openStore()
	if err != nil {
		logger.WarnWithErr("Run history unavailable", err)
		return
	}
	defer store.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := store.Record(ctx, runstore.NewRun(name, source, result, runErr)); err != nil {
		logger.WarnWithErr("Failed to record run", err, mdwlog.Fields{"run_id": result.RunID})
		return
	}

	if days := appConfig.History.RetentionDays; days > 0 {
		pruned, err := store.Prune(ctx, time.Duration(days)*24*time.Hour)
		if err != nil {
			logger.WarnWithErr("Failed to prune run history", err)
		} else if pruned > 0 {
			logger.Debug("Pruned run history", mdwlog.Fields{"removed": pruned})
		}
	}
}

func sourceName(path string) string {
	if path == "-" {
		return "stdin"
	}
	if abs, err := filepath.Abs(path); err == nil {
		return abs
	}
	return path
}

func printStats(w io.Writer, result *minipl.Result) {
	fmt.Fprintln(w)
	fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("run:     "), result.RunID)
	fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("status:  "), statusStyle(result.Status).Render(result.Status))
	fmt.Fprintf(w, "%s %s\n", mutedStyle.Render("duration:"), result.Duration.Round(time.Microsecond))
	fmt.Fprintf(w, "%s %d bytes\n", mutedStyle.Render("output:  "), result.OutputBytes)
}

// echoReader writes every line it reads to the program output, so that a
// transcript of a piped run shows the input next to the prompts
type echoReader struct {
	reader interpreter.LineReader
	echo   io.Writer
}

func (r *echoReader) ReadLine(ctx context.Context) (string, error) {
	line, err := r.reader.ReadLine(ctx)
	if err != nil {
		return line, err
	}
	fmt.Fprintln(r.echo, line)
	return line, nil
}
