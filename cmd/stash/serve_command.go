package main

import (
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"stash/internal/capabilities"
	"stash/internal/logging"
	"stash/internal/server"
)

func newServeCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the Stash API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}

			logger, err := logging.NewFromConfig(cfg)
			if err != nil {
				return fmt.Errorf("init logging: %w", err)
			}

			// One process per data dir; a second serve would race on the
			// database file.
			lock := flock.New(cfg.LockPath())
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return errors.New("another stash instance is already running")
			}
			defer func() {
				if err := lock.Unlock(); err != nil {
					logger.Warn("failed to release lock", logging.Error(err))
				}
			}()

			container, err := capabilities.Build(cfg, logger)
			if err != nil {
				return fmt.Errorf("resolve capabilities: %w", err)
			}
			defer container.Close()

			srv, err := server.New(container, logger)
			if err != nil {
				return fmt.Errorf("build server: %w", err)
			}

			runCtx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			if err := srv.Start(runCtx); err != nil {
				return err
			}
			defer srv.Stop()

			fmt.Fprintf(cmd.OutOrStdout(), "Stash API listening on %s\n", srv.Addr())
			if !container.SummarizerAvailable() {
				fmt.Fprintln(cmd.OutOrStdout(), "Summaries disabled: set groq.api_key or GROQ_API_KEY to enable them")
			}

			<-runCtx.Done()
			logger.Info("shutting down")
			return nil
		},
	}
}
