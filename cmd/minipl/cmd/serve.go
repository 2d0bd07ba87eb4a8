package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/msto63/minipl/internal/playground"
	"github.com/msto63/minipl/internal/runstore"
)

var serveAddress string

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the WebSocket playground",
	Long: `Starts the playground server. It serves a small editor page on /,
the WebSocket endpoint on /ws and a health report on /healthz.

Examples:
  minipl serve
  minipl serve --address 0.0.0.0:8470`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddress, "address", "", "listen address (default: playground.host:playground.port)")
}

func runServe(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pg := appConfig.Playground
	cfg := playground.DefaultConfig()
	cfg.Address = appConfig.PlaygroundAddress()
	if serveAddress != "" {
		cfg.Address = serveAddress
	}
	cfg.ReadTimeout = pg.ReadTimeout.Duration
	cfg.Handler.Logger = logger
	cfg.Handler.MaxSourceBytes = pg.MaxSourceBytes
	cfg.Handler.MaxIterations = pg.MaxIterations
	cfg.Handler.RunTimeout = pg.RunTimeout.Duration
	cfg.Handler.WriteTimeout = pg.WriteTimeout.Duration
	cfg.Handler.CacheSize = pg.CacheSize

	if appConfig.History.Enabled {
		store, err := runstore.NewSQLiteStore(runstore.SQLiteConfig{Path: appConfig.History.Path})
		if err != nil {
			logger.WarnWithErr("Run history unavailable, playground runs are not recorded", err)
		} else {
			defer store.Close()
			cfg.Handler.Store = store
		}
	}

	server, err := playground.New(cfg)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%s listening on http://%s\n",
		headerStyle.Render("minipl playground"), cfg.Address)

	return server.ListenAndServe(ctx)
}
