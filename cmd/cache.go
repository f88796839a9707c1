package main

import (
	"context"
	"fmt"

	"github.com/desertthunder/lyrx/internal/repositories"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// CacheStats prints translation cache statistics.
func (r *Runner) CacheStats(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	if r.db == nil {
		return fmt.Errorf("%w: cache database not initialized, run 'lyrx setup database' first", shared.ErrServiceUnavailable)
	}

	translations := repositories.NewTranslationRepository(r.db, r.logger)
	count, err := translations.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count cached translations: %w", err)
	}

	if useJSON {
		return r.writeJSON(map[string]any{
			"database":     r.config.Database.Path,
			"translations": count,
		}, pretty)
	}

	r.writePlainHeader("Translation Cache")
	r.writePlain("Database: %s\n", r.config.Database.Path)
	r.writePlain("Cached translations: %d\n", count)

	return nil
}

// CachePurge removes all cached translations and lyrics.
func (r *Runner) CachePurge(ctx context.Context, cmd *cli.Command) error {
	if r.db == nil {
		return fmt.Errorf("%w: cache database not initialized, run 'lyrx setup database' first", shared.ErrServiceUnavailable)
	}

	translations := repositories.NewTranslationRepository(r.db, r.logger)
	purgedTranslations, err := translations.Purge(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge translations: %w", err)
	}

	lyricsRepo := repositories.NewLyricsRepository(r.db, r.logger)
	purgedLyrics, err := lyricsRepo.Purge(ctx)
	if err != nil {
		return fmt.Errorf("failed to purge lyrics: %w", err)
	}

	r.logger.Infof("purged %d translations and %d lyrics entries", purgedTranslations, purgedLyrics)

	r.writePlain("✓ Purged %d cached translations\n", purgedTranslations)
	r.writePlain("✓ Purged %d cached lyrics\n", purgedLyrics)

	return nil
}
