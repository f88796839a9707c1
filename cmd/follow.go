package main

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/desertthunder/lyrx/internal/audio"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/overlay"
	"github.com/desertthunder/lyrx/internal/session"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/desertthunder/lyrx/internal/ui"
	"github.com/urfave/cli/v3"
)

// Follow launches the interactive lyrics display for the currently playing track.
func (r *Runner) Follow(ctx context.Context, cmd *cli.Command) error {
	userID, err := r.userID()
	if err != nil {
		return err
	}

	// Redirect logs to file to avoid interfering with TUI rendering
	fileLogger, err := shared.NewFileLogger("./tmp/lyrx-follow.log")
	if err != nil {
		return fmt.Errorf("failed to create file logger: %w", err)
	}
	r.SetLogger(fileLogger)

	interval := time.Duration(r.config.Poller.IntervalSeconds) * time.Second
	if interval <= 0 {
		interval = 2 * time.Second
	}

	source := session.SourceFunc(func(ctx context.Context) (*models.PlaybackState, error) {
		return r.api.CurrentlyPlaying(ctx, userID)
	})
	orch := session.NewOrchestrator(r.api, fileLogger)
	sess := session.New(orch, source, interval, fileLogger)

	sourceLang := r.config.Translation.SourceLang
	overlayMgr := overlay.NewManager(r.api, sourceLang, fileLogger)
	words := overlay.NewWords(r.api, sourceLang, fileLogger)
	if lang := r.config.Translation.TargetLang; lang != "" {
		overlayMgr.SetLanguage(lang)
	}

	player := audio.NewPlayer(r.config.Player.Binary, fileLogger)
	speech := audio.NewManager(r.api, player, r.config.Player.Speed, fileLogger)
	sess.Manage(speech)

	model := ui.NewModel(ctx, ui.Opts{
		Session: sess,
		Overlay: overlayMgr,
		Words:   words,
		Speech:  speech,
		API:     r.api,
		UserID:  userID,
		Logger:  fileLogger,
	})
	p := tea.NewProgram(model, tea.WithAltScreen())

	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running lyrics display: %w", err)
	}

	return nil
}
