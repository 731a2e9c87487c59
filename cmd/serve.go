package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jonesrussell/north-cloud/prospector/internal/api"
	"github.com/jonesrussell/north-cloud/prospector/internal/logger"
)

const shutdownTimeout = 30 * time.Second

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API and job engine",
		Long: `serve applies pending migrations, fails jobs left running by a previous
process, schedules the monthly search key reset and serves the HTTP API
until interrupted.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runServe(cmd.Context())
		},
	}
}

func runServe(ctx context.Context) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}

	// Phase 1: schema and stale state
	if migrateErr := a.migrate(ctx); migrateErr != nil {
		_ = a.close(context.WithoutCancel(ctx))
		return migrateErr
	}
	a.withEngine()
	if _, cleanupErr := a.engine.CleanupStaleJobs(ctx); cleanupErr != nil {
		a.log.Warn("Stale job cleanup failed", logger.Error(cleanupErr))
	}

	// Phase 2: background schedules
	if resetErr := a.scheduleKeyReset(); resetErr != nil {
		_ = a.close(context.WithoutCancel(ctx))
		return resetErr
	}

	// Phase 3: HTTP server
	server := api.NewServer(a.cfg.Server, api.Deps{
		Jobs:      a.jobs,
		Logs:      a.logs,
		Companies: a.companies,
		Contacts:  a.contacts,
		Engine:    a.engine,
		Keys:      a.search,
		Ping:      a.db.PingContext,
		Gatherer:  a.registry,
		Logger:    a.log,
		Version:   versionString(a.cfg),
	}, a.cfg.App.Debug)
	errCh := server.StartAsync()

	// Phase 4: run until interrupted
	var serveErr error
	select {
	case err, ok := <-errCh:
		if ok && err != nil {
			a.log.Error("Server error", logger.Error(err))
			serveErr = err
		}
	case <-ctx.Done():
		a.log.Info("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
	defer cancel()

	var errs []error
	if serveErr != nil {
		errs = append(errs, serveErr)
	} else if shutdownErr := server.Shutdown(shutdownCtx); shutdownErr != nil {
		errs = append(errs, shutdownErr)
	}
	if closeErr := a.close(shutdownCtx); closeErr != nil {
		errs = append(errs, closeErr)
	}
	if len(errs) > 0 {
		return fmt.Errorf("serve: %w", errors.Join(errs...))
	}
	return nil
}
