package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/lexsift/lexsift/internal/api"
	"github.com/lexsift/lexsift/internal/cellar"
	"github.com/lexsift/lexsift/internal/config"
	"github.com/lexsift/lexsift/internal/pipeline"
	"github.com/lexsift/lexsift/internal/sparql"
)

func main() {
	log := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize clients.
	cellarClient := cellar.NewClient(
		cellar.WithBaseURL(cfg.CellarBaseURL),
		cellar.WithCacheTTL(cfg.FetchCacheTTL),
	)
	sparqlClient := sparql.NewClient(cfg.SPARQLEndpoint)

	// Initialize pipeline.
	orch := pipeline.NewOrchestrator(cfg, cellarClient, log)
	orch.Start(ctx)

	// Initialize HTTP server.
	srv := api.NewServer(orch, cellarClient, sparqlClient, log, cfg)

	httpServer := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      srv,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown.
	go func() {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
		<-sigCh
		log.Info("shutting down...")

		orch.Stop()

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer shutdownCancel()
		httpServer.Shutdown(shutdownCtx)

		cellarClient.Close()
		sparqlClient.Close()
	}()

	log.Info("starting lexsift", "port", cfg.Port)
	if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", "error", err)
		os.Exit(1)
	}
}
