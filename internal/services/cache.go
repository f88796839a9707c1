package services

import (
	"context"
	"encoding/json"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/repositories"
	"github.com/desertthunder/lyrx/internal/shared"
)

// CachedAPI decorates a LyricsAPI with the local SQLite caches. Lyrics and
// translations are served from the database when present; misses fall
// through to the inner service and are stored on the way back. Cache write
// failures are logged and never surfaced, the network result still flows.
type CachedAPI struct {
	inner        LyricsAPI
	lyrics       *repositories.LyricsRepository
	translations *repositories.TranslationRepository
	logger       *log.Logger
}

// NewCachedAPI wraps inner with the cache repositories.
func NewCachedAPI(inner LyricsAPI, lyrics *repositories.LyricsRepository, translations *repositories.TranslationRepository, logger *log.Logger) *CachedAPI {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &CachedAPI{inner: inner, lyrics: lyrics, translations: translations, logger: logger}
}

// Name identifies the service in logs.
func (c *CachedAPI) Name() string { return c.inner.Name() + " (cached)" }

// CurrentlyPlaying is never cached, playback state is live.
func (c *CachedAPI) CurrentlyPlaying(ctx context.Context, userID string) (*models.PlaybackState, error) {
	return c.inner.CurrentlyPlaying(ctx, userID)
}

// Lyrics serves from the lyrics cache when the track has been seen before.
func (c *CachedAPI) Lyrics(ctx context.Context, trackName, artistName string) (*LyricsResponse, error) {
	key := shared.TrackKey(trackName, artistName)

	cached, err := c.lyrics.Get(ctx, key)
	if err != nil {
		c.logger.Warn("lyrics cache read failed", "key", key, "error", err)
	}
	if cached != nil {
		c.logger.Debug("lyrics cache hit", "key", key)
		return &LyricsResponse{
			Lyrics:     cached.Lyrics,
			TrackName:  trackName,
			ArtistName: artistName,
			Synced:     cached.Synced,
			Lines:      cached.Lines,
		}, nil
	}

	resp, err := c.inner.Lyrics(ctx, trackName, artistName)
	if err != nil {
		return nil, err
	}

	if err := c.lyrics.Put(ctx, &repositories.CachedLyrics{
		TrackKey: key,
		Lyrics:   resp.Lyrics,
		Synced:   resp.Synced,
		Lines:    resp.Lines,
	}); err != nil {
		c.logger.Warn("lyrics cache write failed", "key", key, "error", err)
	}
	return resp, nil
}

// Translate serves whole-document translations from the cache.
func (c *CachedAPI) Translate(ctx context.Context, req TranslationRequest) (*TranslationResponse, error) {
	cached, err := c.translations.Get(ctx, req.Lyrics, req.TargetLang, repositories.KindFull)
	if err != nil {
		c.logger.Warn("translation cache read failed", "error", err)
	}
	if cached != nil {
		c.logger.Debug("translation cache hit", "target", req.TargetLang)
		resp := &TranslationResponse{
			TranslatedLyrics: cached.TranslatedText,
			OriginalLyrics:   req.Lyrics,
			TargetLanguage:   req.TargetLang,
			DetectedLanguage: cached.DetectedLang,
		}
		return resp, nil
	}

	resp, err := c.inner.Translate(ctx, req)
	if err != nil {
		return nil, err
	}

	c.store(ctx, &repositories.Translation{
		SourceText:     req.Lyrics,
		TranslatedText: resp.TranslatedLyrics,
		TargetLang:     req.TargetLang,
		DetectedLang:   resp.DetectedLanguage,
		Kind:           repositories.KindFull,
	})
	return resp, nil
}

// TranslateLines serves line-paired translations from the cache, with the
// line set JSON-encoded in the cached text.
func (c *CachedAPI) TranslateLines(ctx context.Context, req TranslationRequest) (*OverlayResponse, error) {
	cached, err := c.translations.Get(ctx, req.Lyrics, req.TargetLang, repositories.KindLine)
	if err != nil {
		c.logger.Warn("translation cache read failed", "error", err)
	}
	if cached != nil {
		var lines []models.OverlayLine
		jsonErr := json.Unmarshal([]byte(cached.TranslatedText), &lines)
		if jsonErr == nil {
			c.logger.Debug("overlay cache hit", "target", req.TargetLang)
			return &OverlayResponse{
				Lines:            lines,
				TargetLanguage:   req.TargetLang,
				DetectedLanguage: cached.DetectedLang,
			}, nil
		}
		c.logger.Warn("discarding corrupt cached overlay", "error", jsonErr)
	}

	resp, err := c.inner.TranslateLines(ctx, req)
	if err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(resp.Lines); err == nil {
		c.store(ctx, &repositories.Translation{
			SourceText:     req.Lyrics,
			TranslatedText: string(encoded),
			TargetLang:     req.TargetLang,
			DetectedLang:   resp.DetectedLanguage,
			Kind:           repositories.KindLine,
		})
	}
	return resp, nil
}

// TranslateWord serves single-word translations from the cache.
func (c *CachedAPI) TranslateWord(ctx context.Context, word, targetLang, sourceLang string) (*WordResponse, error) {
	cached, err := c.translations.Get(ctx, word, targetLang, repositories.KindWord)
	if err != nil {
		c.logger.Warn("translation cache read failed", "error", err)
	}
	if cached != nil {
		return &WordResponse{
			OriginalWord:     word,
			TranslatedWord:   cached.TranslatedText,
			TargetLanguage:   targetLang,
			DetectedLanguage: cached.DetectedLang,
		}, nil
	}

	resp, err := c.inner.TranslateWord(ctx, word, targetLang, sourceLang)
	if err != nil {
		return nil, err
	}

	c.store(ctx, &repositories.Translation{
		SourceText:     word,
		TranslatedText: resp.TranslatedWord,
		TargetLang:     targetLang,
		DetectedLang:   resp.DetectedLanguage,
		Kind:           repositories.KindWord,
	})
	return resp, nil
}

// Languages delegates to the inner service.
func (c *CachedAPI) Languages(ctx context.Context) ([]models.Language, error) {
	return c.inner.Languages(ctx)
}

// Synthesize delegates to the inner service; clip bytes are cached on disk
// by the audio manager, not here.
func (c *CachedAPI) Synthesize(ctx context.Context, text, language string, speed float64) ([]byte, error) {
	return c.inner.Synthesize(ctx, text, language, speed)
}

// Play delegates to the inner service.
func (c *CachedAPI) Play(ctx context.Context, userID string) error {
	return c.inner.Play(ctx, userID)
}

// Pause delegates to the inner service.
func (c *CachedAPI) Pause(ctx context.Context, userID string) error {
	return c.inner.Pause(ctx, userID)
}

func (c *CachedAPI) store(ctx context.Context, t *repositories.Translation) {
	if err := c.translations.Put(ctx, t); err != nil {
		c.logger.Warn("translation cache write failed", "error", err)
	}
}
