package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/riskibarqy/agenda-fc/internal/app"
	"github.com/riskibarqy/agenda-fc/internal/config"
	"github.com/riskibarqy/agenda-fc/internal/platform/logging"
)

var (
	container *app.Container
	logger    *logging.Logger
)

var rootCmd = &cobra.Command{
	Use:           "agendafc",
	Short:         "Refresh and inspect the agenda-fc data files",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}

		opts := cfg.LoggingOptions()
		opts.Output = os.Stderr
		logger = logging.New(opts).With("run_id", uuid.NewString(), "command", cmd.CommandPath())
		logging.SetDefault(logger)

		container, err = app.NewContainer(cfg, logger)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Close()
	},
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "agendafc: %v\n", err)
		stop()
		os.Exit(1)
	}
}
