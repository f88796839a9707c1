// Lyrics backend implementation of [LyricsAPI]
//
// Endpoint shapes follow the FastAPI backend this client fronts.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/shared"
)

// BackendService implements [LyricsAPI] against the lyrics/translation backend.
type BackendService struct {
	api *APIService
}

// NewBackendService creates a backend client for the given base URL.
func NewBackendService(baseURL string, client *http.Client) *BackendService {
	return &BackendService{api: NewAPIService(baseURL, client)}
}

func (b *BackendService) Name() string {
	return "Backend"
}

// CurrentlyPlaying polls the playback snapshot for a user.
func (b *BackendService) CurrentlyPlaying(ctx context.Context, userID string) (*models.PlaybackState, error) {
	resp, err := b.api.Get(ctx, "/currently-playing/"+url.PathEscape(userID))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if resp.StatusCode == http.StatusUnauthorized {
		return nil, fmt.Errorf("%w: %s", shared.ErrNotAuthenticated, resp.Detail())
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.Detail())
	}

	var state models.PlaybackState
	if err := json.Unmarshal(resp.Body, &state); err != nil {
		return nil, fmt.Errorf("failed to decode playback state: %w", err)
	}

	// The backend answers 200 with an informational body when nothing plays.
	if state.TrackName == "" {
		return nil, shared.ErrNotPlaying
	}

	return &state, nil
}

// Lyrics fetches lyrics for a track.
func (b *BackendService) Lyrics(ctx context.Context, trackName, artistName string) (*LyricsResponse, error) {
	path := fmt.Sprintf("/lyrics/%s/%s", url.PathEscape(trackName), url.PathEscape(artistName))
	resp, err := b.api.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if resp.StatusCode == http.StatusNotFound {
		return nil, fmt.Errorf("%w: %s", shared.ErrNoLyrics, resp.Detail())
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.Detail())
	}

	var lyrics LyricsResponse
	if err := json.Unmarshal(resp.Body, &lyrics); err != nil {
		return nil, fmt.Errorf("failed to decode lyrics: %w", err)
	}

	return &lyrics, nil
}

// Translate performs a whole-document translation.
func (b *BackendService) Translate(ctx context.Context, req TranslationRequest) (*TranslationResponse, error) {
	resp, err := b.api.PostJSON(ctx, "/translate", req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTranslationFailed, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s", shared.ErrTranslationFailed, resp.Detail())
	}

	var result TranslationResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode translation: %w", err)
	}

	return &result, nil
}

// TranslateLines performs a line-paired overlay translation.
func (b *BackendService) TranslateLines(ctx context.Context, req TranslationRequest) (*OverlayResponse, error) {
	resp, err := b.api.PostJSON(ctx, "/translate-lines", req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTranslationFailed, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s", shared.ErrTranslationFailed, resp.Detail())
	}

	var result OverlayResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode overlay translation: %w", err)
	}

	return &result, nil
}

// TranslateWord translates a single word.
func (b *BackendService) TranslateWord(ctx context.Context, word, targetLang, sourceLang string) (*WordResponse, error) {
	payload := struct {
		Word       string `json:"word"`
		TargetLang string `json:"target_lang"`
		SourceLang string `json:"source_lang,omitempty"`
	}{word, targetLang, sourceLang}

	resp, err := b.api.PostJSON(ctx, "/translate-word", payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrTranslationFailed, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s", shared.ErrTranslationFailed, resp.Detail())
	}

	var result WordResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode word translation: %w", err)
	}

	return &result, nil
}

// Languages lists supported translation targets.
func (b *BackendService) Languages(ctx context.Context) ([]models.Language, error) {
	resp, err := b.api.Get(ctx, "/languages")
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.Detail())
	}

	var result struct {
		Languages []models.Language `json:"languages"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode languages: %w", err)
	}

	return result.Languages, nil
}

// Synthesize requests pronunciation audio and returns the binary payload.
func (b *BackendService) Synthesize(ctx context.Context, text, language string, speed float64) ([]byte, error) {
	if speed <= 0 {
		speed = 1.0
	}
	payload := struct {
		Text     string  `json:"text"`
		Language string  `json:"language"`
		Speed    float64 `json:"speed"`
	}{text, language, speed}

	resp, err := b.api.PostJSON(ctx, "/speak", payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.Detail())
	}
	if len(resp.Body) == 0 {
		return nil, fmt.Errorf("%w: empty audio payload", shared.ErrAPIRequest)
	}

	return resp.Body, nil
}

// Play resumes playback for a user.
func (b *BackendService) Play(ctx context.Context, userID string) error {
	return b.control(ctx, "/play/"+url.PathEscape(userID))
}

// Pause pauses playback for a user.
func (b *BackendService) Pause(ctx context.Context, userID string) error {
	return b.control(ctx, "/pause/"+url.PathEscape(userID))
}

func (b *BackendService) control(ctx context.Context, path string) error {
	resp, err := b.api.Post(ctx, path, nil)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.Detail())
	}
	return nil
}

// TopArtists fetches top artists for a genre/search query with their top tracks.
func (b *BackendService) TopArtists(ctx context.Context, genre string, limit int) ([]models.Artist, error) {
	if limit <= 0 {
		limit = 10
	}
	path := fmt.Sprintf("/top-artists/%s?limit=%d", url.PathEscape(genre), limit)
	resp, err := b.api.Get(ctx, path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.Detail())
	}

	var result struct {
		Artists []models.Artist `json:"artists"`
	}
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode artists: %w", err)
	}

	return result.Artists, nil
}

// Analyze summarizes lyrics and extracts language-specific insights.
func (b *BackendService) Analyze(ctx context.Context, lyricsText string) (*AnalysisResponse, error) {
	payload := struct {
		Lyrics string `json:"lyrics"`
	}{lyricsText}

	resp, err := b.api.PostJSON(ctx, "/analyze-lyrics", payload)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if !resp.OK() {
		return nil, fmt.Errorf("%w: %s", shared.ErrAPIRequest, resp.Detail())
	}

	var result AnalysisResponse
	if err := json.Unmarshal(resp.Body, &result); err != nil {
		return nil, fmt.Errorf("failed to decode analysis: %w", err)
	}

	return &result, nil
}
