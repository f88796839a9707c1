// package repositories wraps the SQLite cache tables.
//
// Translations and fetched lyrics are cached locally so re-listening to a
// track, or re-selecting a language, works without repeating network calls.
package repositories

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/shared"
)

// TranslationKind partitions the cache by request shape.
type TranslationKind string

const (
	KindFull TranslationKind = "full"
	KindLine TranslationKind = "line"
	KindWord TranslationKind = "word"
)

// Translation is one cached translation row.
type Translation struct {
	ID             int64
	SourceText     string
	TranslatedText string
	TargetLang     string
	DetectedLang   string
	Kind           TranslationKind
}

// TranslationRepository reads and writes the translations table.
type TranslationRepository struct {
	db     *sql.DB
	logger *log.Logger
}

// NewTranslationRepository creates a repository backed by db.
func NewTranslationRepository(db *sql.DB, logger *log.Logger) *TranslationRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &TranslationRepository{db: db, logger: logger}
}

// Get returns the cached translation for (sourceText, targetLang, kind), or
// nil on a miss.
func (r *TranslationRepository) Get(ctx context.Context, sourceText, targetLang string, kind TranslationKind) (*Translation, error) {
	query := `SELECT id, source_text, translated_text, target_lang, COALESCE(detected_lang, ''), kind
		FROM translations WHERE source_text = ? AND target_lang = ? AND kind = ?`

	var t Translation
	err := r.db.QueryRowContext(ctx, query, sourceText, targetLang, string(kind)).
		Scan(&t.ID, &t.SourceText, &t.TranslatedText, &t.TargetLang, &t.DetectedLang, &t.Kind)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query translation cache: %w", err)
	}
	return &t, nil
}

// Put inserts or refreshes a cached translation.
func (r *TranslationRepository) Put(ctx context.Context, t *Translation) error {
	query := `INSERT INTO translations (source_text, translated_text, target_lang, detected_lang, kind)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (source_text, target_lang, kind)
		DO UPDATE SET translated_text = excluded.translated_text, detected_lang = excluded.detected_lang`

	if _, err := r.db.ExecContext(ctx, query, t.SourceText, t.TranslatedText, t.TargetLang, t.DetectedLang, string(t.Kind)); err != nil {
		return fmt.Errorf("failed to cache translation: %w", err)
	}
	return nil
}

// Count returns the number of cached translations.
func (r *TranslationRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM translations`).Scan(&n); err != nil {
		return 0, fmt.Errorf("failed to count translations: %w", err)
	}
	return n, nil
}

// Purge deletes all cached translations and returns how many were removed.
func (r *TranslationRepository) Purge(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM translations`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge translations: %w", err)
	}
	n, _ := res.RowsAffected()
	r.logger.Debug("purged translation cache", "rows", n)
	return n, nil
}

// CachedLyrics is one cached lyrics document keyed by track.
type CachedLyrics struct {
	TrackKey string
	Lyrics   string
	Synced   bool
	Lines    []models.LyricsLine
}

// LyricsRepository reads and writes the lyrics_cache table.
type LyricsRepository struct {
	db     *sql.DB
	logger *log.Logger
}

// NewLyricsRepository creates a repository backed by db.
func NewLyricsRepository(db *sql.DB, logger *log.Logger) *LyricsRepository {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &LyricsRepository{db: db, logger: logger}
}

// Get returns the cached lyrics for trackKey, or nil on a miss.
func (r *LyricsRepository) Get(ctx context.Context, trackKey string) (*CachedLyrics, error) {
	query := `SELECT track_key, lyrics, synced, COALESCE(lines_json, '') FROM lyrics_cache WHERE track_key = ?`

	var (
		cached    CachedLyrics
		synced    int
		linesJSON string
	)
	err := r.db.QueryRowContext(ctx, query, trackKey).Scan(&cached.TrackKey, &cached.Lyrics, &synced, &linesJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query lyrics cache: %w", err)
	}

	cached.Synced = synced != 0
	if linesJSON != "" {
		if err := json.Unmarshal([]byte(linesJSON), &cached.Lines); err != nil {
			return nil, fmt.Errorf("corrupt cached lyrics for %s: %w", trackKey, err)
		}
	}
	return &cached, nil
}

// Put inserts or refreshes a cached lyrics document.
func (r *LyricsRepository) Put(ctx context.Context, cached *CachedLyrics) error {
	var linesJSON []byte
	if len(cached.Lines) > 0 {
		var err error
		linesJSON, err = json.Marshal(cached.Lines)
		if err != nil {
			return fmt.Errorf("failed to encode lyric lines: %w", err)
		}
	}

	synced := 0
	if cached.Synced {
		synced = 1
	}

	query := `INSERT INTO lyrics_cache (track_key, lyrics, synced, lines_json)
		VALUES (?, ?, ?, ?)
		ON CONFLICT (track_key)
		DO UPDATE SET lyrics = excluded.lyrics, synced = excluded.synced, lines_json = excluded.lines_json`

	if _, err := r.db.ExecContext(ctx, query, cached.TrackKey, cached.Lyrics, synced, string(linesJSON)); err != nil {
		return fmt.Errorf("failed to cache lyrics: %w", err)
	}
	return nil
}

// Purge deletes all cached lyrics and returns how many were removed.
func (r *LyricsRepository) Purge(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx, `DELETE FROM lyrics_cache`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge lyrics cache: %w", err)
	}
	n, _ := res.RowsAffected()
	r.logger.Debug("purged lyrics cache", "rows", n)
	return n, nil
}
