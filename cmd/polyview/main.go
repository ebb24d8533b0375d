// PolyView - same-origin relay and UI host for Polymarket listings.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/lucasreis/polyview/internal/api"
	"github.com/lucasreis/polyview/internal/config"
	"github.com/lucasreis/polyview/internal/polymarket"
)

func main() {
	// Setup logging
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	log.Info().Msg("PolyView - Starting relay")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	if cfg.Debug {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}

	// Initialize upstream client
	upstream := polymarket.NewClient(polymarket.Options{
		BaseURL:    cfg.UpstreamURL,
		Timeout:    cfg.UpstreamTimeout,
		RetryCount: cfg.UpstreamRetries,
	})
	log.Info().Str("upstream", cfg.UpstreamURL).Msg("Upstream client initialized")

	// Initialize relay server
	server := api.NewServer(upstream, cfg.HTTPAddr, cfg.StaticDir)

	// Setup signal handling
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		if err := server.Start(); err != nil {
			log.Error().Err(err).Msg("Relay server error")
		}
	}()

	log.Info().
		Str("addr", cfg.HTTPAddr).
		Msg("PolyView running")

	// Wait for shutdown signal
	<-sigChan
	log.Info().Msg("Shutdown signal received")

	if err := server.Shutdown(context.Background()); err != nil {
		log.Error().Err(err).Msg("Shutdown error")
	}

	log.Info().Msg("PolyView stopped")
}
