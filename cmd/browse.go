package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// TopArtists lists top artists for a genre with their top tracks.
func (r *Runner) TopArtists(ctx context.Context, cmd *cli.Command) error {
	useJSON := cmd.Bool("json")
	pretty := cmd.Bool("pretty")
	limit := cmd.Int("limit")

	genre := cmd.StringArg("genre")
	if genre == "" {
		return fmt.Errorf("%w: a genre or search query is required", shared.ErrMissingArgument)
	}

	r.logger.Infof("fetching top artists for %q", genre)

	artists, err := r.backend.TopArtists(ctx, genre, limit)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}

	if useJSON {
		return r.writeJSON(artists, pretty)
	}

	r.writePlain("Found %d artists for %q:\n\n", len(artists), genre)
	for i, artist := range artists {
		r.writePlain("%d. %s\n", i+1, artist.Name)
		if artist.Popularity > 0 {
			r.writePlain("   Popularity: %d\n", artist.Popularity)
		}
		if len(artist.TopTracks) > 0 {
			r.writePlain("   Top tracks: %s\n", strings.Join(artist.TopTracks, ", "))
		}
		r.writePlain("\n")
	}

	return nil
}
