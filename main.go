// Package main is the entry point for the Invierte Ya terminal client.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"gitlab.com/yelinaung/invierte-cli/internal/api"
	"gitlab.com/yelinaung/invierte-cli/internal/app"
	"gitlab.com/yelinaung/invierte-cli/internal/config"
	"gitlab.com/yelinaung/invierte-cli/internal/logger"
	"gitlab.com/yelinaung/invierte-cli/internal/session"
	"gitlab.com/yelinaung/invierte-cli/internal/telemetry"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "version" {
		fmt.Printf("invierte-cli %s (commit: %s, built: %s)\n", version, commit, date)
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.Load()
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to load config")
	}

	logger.SetLevel(cfg.LogLevel)
	logger.SetFormat(cfg.LogFormat)

	shutdownTelemetry, err := telemetry.Setup(ctx, cfg.OtelExporter, cfg.OtelEndpoint)
	if err != nil {
		logger.Log.Fatal().Err(err).Msg("Failed to set up telemetry")
	}
	defer func() {
		if err := shutdownTelemetry(context.Background()); err != nil {
			logger.Log.Error().Err(err).Msg("Telemetry shutdown failed")
		}
	}()

	tokens := session.NewFileStore(cfg.TokenFile)
	client := api.New(cfg.APIBaseURL, cfg.HTTPTimeout, tokens)
	sessions := session.NewManager(client, tokens)
	client.OnSessionExpired(sessions.Invalidate)

	if status, err := client.Health(ctx); err != nil {
		logger.Log.Warn().Err(err).Msg("Ledger service health check failed")
	} else {
		logger.Log.Debug().Str("status", status).Msg("Ledger service reachable")
	}

	// Re-validate a token left over from a previous run before the first
	// screen decides where to land.
	sessions.Bootstrap(ctx)

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		<-sigChan
		logger.Log.Info().Msg("Shutting down...")
		cancel()
	}()

	terminal := app.New(sessions, client, os.Stdin, os.Stdout, cfg.ChartOutDir)
	terminal.Run(ctx)
}
