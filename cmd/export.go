package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sync"

	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/desertthunder/lyrx/internal/tasks"
	"github.com/urfave/cli/v3"
)

// exportOpts builds bulk export options from command flags.
func exportOpts(cmd *cli.Command) tasks.BulkExportOpts {
	return tasks.BulkExportOpts{
		Format:     cmd.String("format"),
		OutputDir:  cmd.String("output"),
		NumWorkers: cmd.Int("workers"),
		RateLimit:  cmd.Float64("rate"),
		TargetLang: cmd.String("translate"),
	}
}

// drainProgress prints progress updates until the channel closes.
func (r *Runner) drainProgress(prog <-chan tasks.ProgressUpdate, wg *sync.WaitGroup) {
	defer wg.Done()
	for update := range prog {
		if update.Total > 0 {
			r.writePlain("[%d/%d] %s\n", update.Step, update.Total, update.Message)
		} else {
			r.writePlain("%s\n", update.Message)
		}
	}
}

// ExportBulk exports lyrics for a list of tracks read from a JSON file.
func (r *Runner) ExportBulk(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	trackFile := cmd.String("file")

	if trackFile == "" {
		return fmt.Errorf("%w: --file with a JSON track list is required", shared.ErrMissingArgument)
	}

	data, err := os.ReadFile(trackFile)
	if err != nil {
		return fmt.Errorf("failed to read track list: %w", err)
	}

	var tracks []tasks.TrackRef
	if err := json.Unmarshal(data, &tracks); err != nil {
		return fmt.Errorf("%w: track list must be a JSON array of {track_name, artist_name}: %v", shared.ErrInvalidInput, err)
	}

	r.logger.Infof("exporting lyrics for %d tracks", len(tracks))

	prog := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go r.drainProgress(prog, &wg)

	result, err := r.engine.BulkExport(ctx, prog, tracks, exportOpts(cmd))
	close(prog)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	r.writePlainln("✓ Export complete")
	r.writePlain("  Exported: %d/%d tracks\n", result.SuccessfulExports, result.TotalTracks)
	if result.FailedExports > 0 {
		r.writePlain("  Failed: %d\n", result.FailedExports)
	}
	r.writePlain("  Output: %s\n", result.OutputDirectory)
	if result.ManifestPath != "" {
		r.writePlain("  Manifest: %s\n", result.ManifestPath)
	}

	return nil
}

// ExportCurrent exports lyrics for the currently playing track.
func (r *Runner) ExportCurrent(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	userID, err := r.userID()
	if err != nil {
		return err
	}

	prog := make(chan tasks.ProgressUpdate, 16)
	var wg sync.WaitGroup
	wg.Add(1)
	go r.drainProgress(prog, &wg)

	result, err := r.engine.ExportCurrent(ctx, prog, userID, exportOpts(cmd))
	close(prog)
	wg.Wait()

	if err != nil {
		return fmt.Errorf("export failed: %w", err)
	}

	if useJSON {
		return r.writeJSON(result, pretty)
	}

	if result.Success {
		r.writePlain("✓ Exported %s - %s\n", result.Track.ArtistName, result.Track.TrackName)
		r.writePlain("  File: %s\n", result.File)
	} else {
		r.writePlain("✗ Export failed: %s\n", result.Error)
	}

	return nil
}
