package main

import (
	"context"
	"fmt"
	"time"

	"github.com/desertthunder/lyrx/internal/audio"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/urfave/cli/v3"
)

// Speak synthesizes pronunciation audio for text and plays it through a local player.
func (r *Runner) Speak(ctx context.Context, cmd *cli.Command) error {
	text := cmd.StringArg("text")
	if text == "" {
		return fmt.Errorf("%w: text to speak is required", shared.ErrMissingArgument)
	}

	lang := cmd.String("lang")
	if lang == "" {
		lang = r.config.Translation.TargetLang
	}
	if lang == "" {
		return fmt.Errorf("%w: pass --lang or set translation.target_lang in config.toml", shared.ErrMissingArgument)
	}

	player := audio.NewPlayer(r.config.Player.Binary, r.logger)
	speech := audio.NewManager(r.api, player, r.config.Player.Speed, r.logger)
	defer speech.Teardown()

	r.logger.Infof("speaking %q in %s", text, lang)

	if err := speech.Speak(ctx, text, lang); err != nil {
		return fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}

	// Block until the clip finishes so teardown doesn't cut it off.
	for speech.IsPlaying() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-time.After(100 * time.Millisecond):
		}
	}

	return r.writePlain("✓ Played %q (%s)\n", text, lang)
}
