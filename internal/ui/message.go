package ui

import (
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/overlay"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/session"
)

// tickMsg carries one playback poll outcome into the update loop.
type tickMsg session.Tick

// lyricsFetchedMsg delivers a lyrics fetch result with the track key it was
// issued for, so superseded fetches resolve as no-ops.
type lyricsFetchedMsg struct {
	key  string
	resp *services.LyricsResponse
	err  error
}

// translatedMsg delivers a whole-document translation for a generation.
type translatedMsg struct {
	gen  uint64
	resp *services.TranslationResponse
	err  error
}

// overlayTranslatedMsg delivers a line-paired translation for a generation.
type overlayTranslatedMsg struct {
	gen  uint64
	resp *services.OverlayResponse
	err  error
}

// languagesFetchedMsg delivers the supported translation targets.
type languagesFetchedMsg struct {
	languages []models.Language
	err       error
}

// wordTranslatedMsg delivers a resolved word popup entry.
type wordTranslatedMsg struct {
	ref   overlay.WordRef
	entry models.WordTranslationEntry
}

// speakDoneMsg reports the outcome of a pronunciation request.
type speakDoneMsg struct {
	err error
}

// playbackToggledMsg reports the outcome of a play/pause request.
type playbackToggledMsg struct {
	err error
}
