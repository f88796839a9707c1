package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/lyrx/internal/lyrics"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// resolveTrack returns the track/artist pair a command targets, falling back
// to the currently playing track when no arguments are given.
func (r *Runner) resolveTrack(ctx context.Context, cmd *cli.Command) (string, string, error) {
	track := cmd.StringArg("track")
	artist := cmd.StringArg("artist")

	if track != "" && artist != "" {
		return track, artist, nil
	}
	if track != "" || artist != "" {
		return "", "", fmt.Errorf("%w: both track and artist are required", shared.ErrMissingArgument)
	}

	state, err := r.currentlyPlaying(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotPlaying) {
			return "", "", fmt.Errorf("%w: pass a track and artist or start playback", shared.ErrNotPlaying)
		}
		return "", "", err
	}

	return state.TrackName, state.ArtistName, nil
}

// LyricsShow fetches and prints lyrics for a track, or for the currently playing one.
func (r *Runner) LyricsShow(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	showTimestamps := cmd.Bool("timestamps")

	track, artist, err := r.resolveTrack(ctx, cmd)
	if err != nil {
		return err
	}

	r.logger.Infof("fetching lyrics for %s - %s", artist, track)

	resp, err := r.api.Lyrics(ctx, track, artist)
	if err != nil {
		if errors.Is(err, shared.ErrNoLyrics) {
			return r.writePlain("No lyrics available for %s - %s\n", artist, track)
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(resp, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s", artist, track))

	doc := lyrics.NewDocument(resp.Lyrics, resp.Lines, resp.Synced)
	if showTimestamps && doc.Synced {
		for _, line := range doc.Lines {
			if line.TimestampMs != nil {
				r.writePlain("%s  %s\n", shared.FormatTimestamp(*line.TimestampMs), line.Text)
			} else {
				r.writePlain("      %s\n", line.Text)
			}
		}
		return nil
	}

	r.writePlain("%s\n", doc.Text())
	if doc.Synced {
		r.writePlain("\n(time-synced, %d lines)\n", len(doc.Lines))
	}

	return nil
}

// Analyze summarizes lyrics for a track via the backend's analysis endpoint.
func (r *Runner) Analyze(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	track, artist, err := r.resolveTrack(ctx, cmd)
	if err != nil {
		return err
	}

	resp, err := r.api.Lyrics(ctx, track, artist)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	r.logger.Infof("analyzing lyrics for %s - %s", artist, track)

	analysis, err := r.backend.Analyze(ctx, resp.Lyrics)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(analysis, pretty)
	}

	r.writePlainHeader(fmt.Sprintf("%s - %s", artist, track))
	r.writePlain("%s\n", analysis.Summary)
	if len(analysis.Insights) > 0 {
		r.writePlainln("Insights:")
		for _, insight := range analysis.Insights {
			r.writePlain("  • %s\n", insight)
		}
	}

	return nil
}
