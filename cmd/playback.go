package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// spotifyDirect reports whether playback commands can skip the backend and
// talk to the Spotify API with the saved token.
func (r *Runner) spotifyDirect() bool {
	return r.spotify != nil && r.config.Credentials.Spotify.AccessToken != ""
}

// currentlyPlaying resolves the playback snapshot, direct from Spotify when
// authorized and through the backend otherwise.
func (r *Runner) currentlyPlaying(ctx context.Context) (*models.PlaybackState, error) {
	if r.spotifyDirect() {
		return r.spotify.CurrentlyPlaying(ctx)
	}

	userID, err := r.userID()
	if err != nil {
		return nil, err
	}
	return r.api.CurrentlyPlaying(ctx, userID)
}

// PlaybackStatus prints the currently playing track and position.
func (r *Runner) PlaybackStatus(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")

	state, err := r.currentlyPlaying(ctx)
	if err != nil {
		if errors.Is(err, shared.ErrNotPlaying) {
			return r.writePlain("Nothing is playing.\n")
		}
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(state, pretty)
	}

	indicator := "▌▌"
	if state.IsPlaying {
		indicator = "▶"
	}

	r.writePlain("%s %s - %s\n", indicator, state.ArtistName, state.TrackName)
	if state.AlbumName != "" {
		r.writePlain("   Album: %s\n", state.AlbumName)
	}
	r.writePlain("   %s / %s\n", shared.FormatTimestamp(state.ProgressMs), shared.FormatTimestamp(state.DurationMs))

	return nil
}

// PlaybackPlay resumes playback.
func (r *Runner) PlaybackPlay(ctx context.Context, cmd *cli.Command) error {
	if r.spotifyDirect() {
		if err := r.spotify.Play(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
		}
		return r.writePlain("▶ Playback resumed\n")
	}

	userID, err := r.userID()
	if err != nil {
		return err
	}

	if err := r.api.Play(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}

	return r.writePlain("▶ Playback resumed\n")
}

// PlaybackPause pauses playback.
func (r *Runner) PlaybackPause(ctx context.Context, cmd *cli.Command) error {
	if r.spotifyDirect() {
		if err := r.spotify.Pause(ctx); err != nil {
			return fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
		}
		return r.writePlain("▌▌ Playback paused\n")
	}

	userID, err := r.userID()
	if err != nil {
		return err
	}

	if err := r.api.Pause(ctx, userID); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}

	return r.writePlain("▌▌ Playback paused\n")
}
