package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ewilliams-labs/moodmix/internal/adapters/rest"
	"github.com/ewilliams-labs/moodmix/internal/adapters/spotify"
	"github.com/ewilliams-labs/moodmix/internal/config"
	"github.com/ewilliams-labs/moodmix/internal/core/services"
	"github.com/ewilliams-labs/moodmix/internal/logging"
	"github.com/ewilliams-labs/moodmix/internal/supervisor"
)

func main() {
	// 1. Configuration (.env, config.yaml, environment)
	// Crash early if credentials are missing.
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:  cfg.Logging.Level,
		Format: cfg.Logging.Format,
		Caller: cfg.Logging.Caller,
	})

	// 2. Initialize "Driven" Adapters
	spotifyClient, err := spotify.NewClient(context.Background(), spotify.Config{
		ClientID:     cfg.Spotify.ClientID,
		ClientSecret: cfg.Spotify.ClientSecret,
		BaseURL:      cfg.Spotify.APIURL,
		TokenURL:     cfg.Spotify.TokenURL,
		Timeout:      cfg.Spotify.Timeout,
		MaxRetries:   cfg.Spotify.MaxRetries,
		RetryBackoff: time.Duration(cfg.Spotify.RetryBackoffMs) * time.Millisecond,
		Market:       cfg.Spotify.Market,
	})
	if err != nil {
		logging.Fatal().Err(err).Msg("failed to initialize spotify client")
	}

	var provider spotify.Provider = spotifyClient
	if cfg.Breaker.Enabled {
		provider = spotify.NewBreaker(spotifyClient, spotify.BreakerConfig{
			Timeout:      cfg.Breaker.Timeout,
			MinRequests:  cfg.Breaker.MinRequests,
			FailureRatio: cfg.Breaker.FailureRatio,
		})
	}

	// 3. Initialize Core Logic
	svc := services.NewAssembler(services.NewResolver(), provider)

	// 4. Initialize "Driving" Adapter
	handler := rest.NewHandler(svc, provider, rest.Options{
		CORSOrigins: cfg.Server.CORSOrigins,
		StaticDir:   cfg.Server.StaticDir,
	})

	// 5. Start the Server
	addr := cfg.Server.Addr()
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 15 * time.Second,
	}

	logging.Info().
		Str("addr", addr).
		Bool("breaker", cfg.Breaker.Enabled).
		Str("static_dir", cfg.Server.StaticDir).
		Msg("moodmix API is running")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	tree := supervisor.NewTree(supervisor.TreeConfig{ShutdownTimeout: 10 * time.Second})
	tree.Add(supervisor.NewHTTPServerService(srv, 10*time.Second))

	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logging.Error().Err(err).Msg("supervisor stopped")
	}
	logging.Info().Msg("server stopped")
}
