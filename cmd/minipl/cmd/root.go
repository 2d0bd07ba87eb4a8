package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	mdwlog "github.com/msto63/minipl/foundation/core/log"
	"github.com/msto63/minipl/pkg/core/config"
	"github.com/msto63/minipl/pkg/core/logging"
)

var (
	cfgFile   string
	verbose   bool
	logLevel  string
	logFormat string

	appConfig *config.Config
	logger    *mdwlog.Logger
	logCloser io.Closer
)

var rootCmd = &cobra.Command{
	Use:   "minipl",
	Short: "Mini-PL interpreter toolchain",
	Long: `minipl runs programs written in Mini-PL, a small statically typed
language with int, string and bool variables, for loops, read, print
and assert.

Commands:
  run      - execute a program
  check    - analyze a program and print its symbol table
  tokens   - print the token stream
  ast      - print the syntax tree
  history  - list recorded runs
  serve    - start the WebSocket playground`,
	SilenceErrors:     true,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
}

// Execute runs the root command. Errors are printed to stderr before they
// are returned.
func Execute() error {
	err := runRoot(context.Background())
	if err != nil {
		printError(err)
	}
	return err
}

// runRoot executes the command tree and closes the log output afterwards.
// cobra skips post-run hooks when a command fails, so closing happens here.
func runRoot(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	if closeErr := closeLog(); err == nil {
		err = closeErr
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default: $MINIPL_CONFIG or ./configs/minipl.toml)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output (debug logging)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (trace, debug, info, warn, error, off)")
	rootCmd.PersistentFlags().StringVar(&logFormat, "log-format", "", "log format (text, json, console, logfmt)")
}

// setup loads the configuration and builds the logger shared by all commands
func setup(cmd *cobra.Command, args []string) error {
	var err error
	if cfgFile != "" {
		appConfig, err = config.Load(cfgFile)
	} else {
		appConfig, err = config.LoadFromEnv()
	}
	if err != nil {
		return err
	}

	logCfg := logging.LoggerConfig{
		Name:   appConfig.General.Name,
		Level:  appConfig.General.LogLevel,
		Format: appConfig.General.LogFormat,
		Output: appConfig.General.LogOutput,
	}
	if logLevel != "" {
		logCfg.Level = logLevel
	}
	if logFormat != "" {
		logCfg.Format = logFormat
	}
	if verbose {
		logCfg.Level = "debug"
	}

	logger, logCloser, err = logging.NewLogger(logCfg)
	if err != nil {
		return err
	}
	mdwlog.SetDefault(logger)

	logger.Debug("Configuration loaded", mdwlog.Fields{"path": appConfig.Path()})
	return nil
}

func closeLog() error {
	if logCloser == nil {
		return nil
	}
	err := logCloser.Close()
	logCloser = nil
	return err
}

func readSource(path string) (string, error) {
	if path == "-" {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return "", fmt.Errorf("read program from stdin: %w", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read program: %w", err)
	}
	return string(data), nil
}
