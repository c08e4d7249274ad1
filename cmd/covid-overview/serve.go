package main

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/liavyona/covid-overview/pkg"
	"github.com/liavyona/covid-overview/pkg/server"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the overview dashboard over HTTP",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		listener, err := net.Listen("tcp", cfg.HTTPAddr)
		if err != nil {
			return fmt.Errorf("error listening on %s: %w", cfg.HTTPAddr, err)
		}
		return run(ctx, cfg.ApiMetadata(), listener)
	},
}

// run serves until ctx is canceled, then shuts down gracefully.
func run(ctx context.Context, source pkg.OverviewSource, listener net.Listener) error {
	registry := prometheus.NewRegistry()
	registry.MustRegister(collectors.NewGoCollector())

	loader := pkg.NewLoader(source, pkg.NewMetrics(registry))
	defer loader.Close()
	// Warm the dashboard so the first GET /overview is served from memory.
	loader.Refresh(ctx)

	handler := server.NewHandler(loader)
	srv := &http.Server{
		Handler:      server.NewRouter(handler, registry),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	serverErrors := make(chan error, 1)
	go func() {
		log.Info().Str("addr", listener.Addr().String()).Msg("Server starting")
		if err := srv.Serve(listener); !errors.Is(err, http.ErrServerClosed) {
			serverErrors <- err
		}
	}()

	select {
	case err := <-serverErrors:
		return fmt.Errorf("error starting server: %w", err)
	case <-ctx.Done():
		log.Info().Msg("Shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info().Msg("Server gracefully stopped")
	return nil
}
