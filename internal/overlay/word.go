package overlay

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/shared"
)

// WordTranslator is the single-word collaborator surface.
type WordTranslator interface {
	TranslateWord(ctx context.Context, word, targetLang, sourceLang string) (*services.WordResponse, error)
}

// WordRef identifies one rendered word instance. Two occurrences of the same
// word on different lines (or positions) memoize independently.
type WordRef struct {
	Line int
	Word int
}

// Words manages on-demand single-word translations keyed by rendered
// instance. Lookups are memoized for the lifetime of the set; the set is
// reset when the document or target language changes.
type Words struct {
	translator WordTranslator
	sourceLang string
	logger     *log.Logger
	entries    map[WordRef]models.WordTranslationEntry
}

// NewWords creates an empty word translation set.
func NewWords(translator WordTranslator, sourceLang string, logger *log.Logger) *Words {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Words{
		translator: translator,
		sourceLang: sourceLang,
		logger:     logger,
		entries:    make(map[WordRef]models.WordTranslationEntry),
	}
}

// Lookup returns the memoized entry for a word instance, if present.
func (w *Words) Lookup(ref WordRef) (models.WordTranslationEntry, bool) {
	entry, ok := w.entries[ref]
	return entry, ok
}

// Translate fetches a single-word translation. It never returns an error: a
// failed fetch falls back to the original word so the popup always has
// something to show. It holds no state and is safe to call from a command
// goroutine; feed the result back through Memoize on the owner.
func (w *Words) Translate(ctx context.Context, word, targetLang string) models.WordTranslationEntry {
	cleaned := CleanWord(word)
	entry := models.WordTranslationEntry{Word: cleaned, Translation: cleaned}
	if cleaned == "" || targetLang == "" {
		return entry
	}

	resp, err := w.translator.TranslateWord(ctx, cleaned, targetLang, w.sourceLang)
	if err != nil {
		w.logger.Warn("word translation failed", "word", cleaned, "error", err)
		return entry
	}

	entry.Translation = resp.TranslatedWord
	entry.DetectedLang = resp.DetectedLanguage
	return entry
}

// Memoize stores a resolved entry for its word instance.
func (w *Words) Memoize(ref WordRef, entry models.WordTranslationEntry) {
	w.entries[ref] = entry
}

// Resolve is the synchronous path: memoized lookup, else fetch and memoize.
// A native (empty) target language is a no-op and returns false.
func (w *Words) Resolve(ctx context.Context, ref WordRef, word, targetLang string) (models.WordTranslationEntry, bool) {
	if entry, ok := w.entries[ref]; ok {
		return entry, true
	}
	if targetLang == "" {
		return models.WordTranslationEntry{}, false
	}
	entry := w.Translate(ctx, word, targetLang)
	w.entries[ref] = entry
	return entry, true
}

// Reset drops all memoized entries. Call when the document or target
// language changes.
func (w *Words) Reset() {
	w.entries = make(map[WordRef]models.WordTranslationEntry)
}

// CleanWord strips surrounding punctuation from a rendered word before
// translation, keeping interior apostrophes and hyphens.
func CleanWord(word string) string {
	return strings.TrimFunc(word, func(r rune) bool {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return false
		case r > 127: // keep non-ASCII letters
			return false
		default:
			return true
		}
	})
}

// Popup is a word translation popup anchored near its word.
type Popup struct {
	Ref   WordRef
	Entry models.WordTranslationEntry
	X, Y  int
	W, H  int
}

// PlacePopup positions a popup of size (w, h) near the anchor point,
// clamping it inside the (boundsW, boundsH) container so it never renders
// off-screen. The popup prefers to sit just below the anchor and flips above
// when there is no room.
func PlacePopup(anchorX, anchorY, w, h, boundsW, boundsH int) (int, int) {
	x := anchorX
	if x+w > boundsW {
		x = boundsW - w
	}
	if x < 0 {
		x = 0
	}

	y := anchorY + 1
	if y+h > boundsH {
		y = anchorY - h
	}
	if y < 0 {
		y = 0
	}
	return x, y
}
