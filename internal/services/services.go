// package services defines interface LyricsAPI for interacting with HTTP APIs
//
// Lyrics/translation backend, Spotify (direct)
package services

import (
	"context"

	"github.com/desertthunder/lyrx/internal/models"
)

// LyricsResponse is the lyrics fetch payload from the backend.
type LyricsResponse struct {
	Lyrics     string              `json:"lyrics"`
	TrackName  string              `json:"track_name"`
	ArtistName string              `json:"artist_name"`
	Synced     bool                `json:"synced"`
	Lines      []models.LyricsLine `json:"lines,omitempty"`
}

// TranslationRequest is the payload for both full and overlay translation.
// Lines is included when the source document is time-coded so the backend can
// echo timestamps back on overlay lines.
type TranslationRequest struct {
	Lyrics     string              `json:"lyrics"`
	TargetLang string              `json:"target_lang"`
	SourceLang string              `json:"source_lang,omitempty"`
	Lines      []models.LyricsLine `json:"lines,omitempty"`
}

// TranslationResponse is the whole-document translation result.
type TranslationResponse struct {
	TranslatedLyrics string              `json:"translated_lyrics"`
	OriginalLyrics   string              `json:"original_lyrics,omitempty"`
	TargetLanguage   string              `json:"target_language,omitempty"`
	DetectedLanguage string              `json:"detected_language,omitempty"`
	TranslatedLines  []models.LyricsLine `json:"translated_lines,omitempty"`
}

// OverlayResponse is the line-paired translation result.
type OverlayResponse struct {
	Lines            []models.OverlayLine `json:"lines"`
	TargetLanguage   string               `json:"target_language,omitempty"`
	DetectedLanguage string               `json:"detected_language,omitempty"`
}

// WordResponse is the single-word translation result.
type WordResponse struct {
	OriginalWord     string `json:"original_word"`
	TranslatedWord   string `json:"translated_word"`
	TargetLanguage   string `json:"target_language,omitempty"`
	DetectedLanguage string `json:"detected_language,omitempty"`
}

// AnalysisResponse is the lyrics analysis result.
type AnalysisResponse struct {
	Summary  string   `json:"summary"`
	Insights []string `json:"insights"`
}

// LyricsAPI defines the collaborator surface the display session consumes:
// playback polling, lyrics, the three translation shapes, language discovery,
// pronunciation synthesis, and playback control.
type LyricsAPI interface {
	// CurrentlyPlaying polls the playback snapshot for a user.
	// Returns shared.ErrNotPlaying when no track is active.
	CurrentlyPlaying(ctx context.Context, userID string) (*models.PlaybackState, error)

	// Lyrics fetches lyrics for a track. Returns shared.ErrNoLyrics when the
	// track has none, distinct from transport failures.
	Lyrics(ctx context.Context, trackName, artistName string) (*LyricsResponse, error)

	// Translate performs a whole-document translation.
	Translate(ctx context.Context, req TranslationRequest) (*TranslationResponse, error)

	// TranslateLines performs a line-paired overlay translation.
	TranslateLines(ctx context.Context, req TranslationRequest) (*OverlayResponse, error)

	// TranslateWord translates a single word.
	TranslateWord(ctx context.Context, word, targetLang, sourceLang string) (*WordResponse, error)

	// Languages lists supported translation targets.
	Languages(ctx context.Context) ([]models.Language, error)

	// Synthesize requests pronunciation audio for text and returns the raw payload.
	Synthesize(ctx context.Context, text, language string, speed float64) ([]byte, error)

	// Play resumes playback for a user.
	Play(ctx context.Context, userID string) error

	// Pause pauses playback for a user.
	Pause(ctx context.Context, userID string) error

	// Name returns the name of the service (e.g. "Backend", "Spotify")
	Name() string
}
