package main

import (
	"context"
	"errors"
	"os"

	"github.com/desertthunder/lyrx/internal/repositories"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/urfave/cli/v3"
)

func main() {
	logger := shared.NewLogger(nil)

	configPath := "config.toml"
	config := shared.DefaultConfig()
	if _, err := os.Stat(configPath); err == nil {
		if loadedConfig, err := shared.LoadConfig(configPath); err == nil {
			config = loadedConfig
		}
	}

	backend := services.NewBackendService(config.Credentials.Backend.BaseURL, nil)

	var api services.LyricsAPI = backend
	var db = openDatabase(config, logger)
	if db != nil {
		defer db.Close()
		api = services.NewCachedAPI(
			backend,
			repositories.NewLyricsRepository(db, logger),
			repositories.NewTranslationRepository(db, logger),
			logger,
		)
	}

	var spotifyService *services.SpotifyService
	if config.Credentials.Spotify.ClientID != "" && config.Credentials.Spotify.ClientSecret != "" {
		if svc, err := services.NewSpotifyService(config.Credentials.Spotify.Map()); err == nil {
			if config.Credentials.Spotify.AccessToken != "" {
				if err := svc.Authenticate(context.Background(), config.Credentials.Spotify.Map()); err != nil {
					logger.Warn("failed to apply saved Spotify token", "error", err)
				}
			}
			spotifyService = svc
		}
	}

	runner := NewRunner(RunnerOpts{
		Config:     config,
		ConfigPath: configPath,
		API:        api,
		Backend:    backend,
		Spotify:    spotifyService,
		DB:         db,
		Logger:     logger,
	})

	app := &cli.Command{
		Name:     "lyrx",
		Usage:    "Synced lyrics, translations & pronunciation for what you're playing",
		Version:  "0.3.0",
		Commands: runner.register(),
	}

	if err := app.Run(context.Background(), os.Args); err != nil {
		err_ := errors.Unwrap(err)
		if errors.Is(err_, shared.ErrNotImplemented) {
			logger.Warn("not implemented")
			os.Exit(0)
		} else {
			logger.Fatalf("application error: %v", err)
		}
	}
}
