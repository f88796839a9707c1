package overlay

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/services"
)

type fakeTranslator struct {
	fullCalls    int
	overlayCalls int
	wordCalls    int
	fullResp     *services.TranslationResponse
	overlayResp  *services.OverlayResponse
	wordResp     *services.WordResponse
	err          error
}

func (f *fakeTranslator) Translate(_ context.Context, req services.TranslationRequest) (*services.TranslationResponse, error) {
	f.fullCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.fullResp, nil
}

func (f *fakeTranslator) TranslateLines(_ context.Context, req services.TranslationRequest) (*services.OverlayResponse, error) {
	f.overlayCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.overlayResp, nil
}

func (f *fakeTranslator) TranslateWord(_ context.Context, word, targetLang, sourceLang string) (*services.WordResponse, error) {
	f.wordCalls++
	if f.err != nil {
		return nil, f.err
	}
	return f.wordResp, nil
}

func syncedDoc() *models.LyricsDocument {
	return &models.LyricsDocument{
		Synced: true,
		Lines: []models.LyricsLine{
			{Text: "first line", TimestampMs: models.Ms(0)},
			{Text: "second line", TimestampMs: models.Ms(10000)},
		},
	}
}

func TestManager(t *testing.T) {
	t.Run("starts with no translation", func(t *testing.T) {
		m := NewManager(&fakeTranslator{}, "", nil)
		if m.Status() != StatusNone {
			t.Errorf("expected StatusNone, got %v", m.Status())
		}
		if m.Mode() != ModeFull {
			t.Errorf("expected ModeFull, got %v", m.Mode())
		}
	})

	t.Run("native language clears without a request", func(t *testing.T) {
		fake := &fakeTranslator{}
		m := NewManager(fake, "", nil)
		m.SetDocument(syncedDoc())

		if req := m.SetLanguage(""); req != nil {
			t.Fatal("expected no request for the native language")
		}
		if fake.fullCalls != 0 || fake.overlayCalls != 0 {
			t.Error("native selection must not hit the network")
		}
		if m.Status() != StatusNone {
			t.Errorf("expected StatusNone, got %v", m.Status())
		}
	})

	t.Run("language selection triggers a full translation", func(t *testing.T) {
		fake := &fakeTranslator{fullResp: &services.TranslationResponse{
			TranslatedLyrics: "primera linea\nsegunda linea",
			TranslatedLines: []models.LyricsLine{
				{Text: "primera linea", TimestampMs: models.Ms(0)},
				{Text: "segunda linea", TimestampMs: models.Ms(10000)},
			},
		}}
		m := NewManager(fake, "", nil)
		m.SetDocument(syncedDoc())

		req := m.SetLanguage("es")
		if req == nil {
			t.Fatal("expected a request")
		}
		if req.Mode != ModeFull {
			t.Errorf("expected ModeFull request, got %v", req.Mode)
		}
		if m.Status() != StatusLoading {
			t.Errorf("expected StatusLoading, got %v", m.Status())
		}

		m.Run(context.Background(), req)
		if m.Status() != StatusReady {
			t.Fatalf("expected StatusReady, got %v (%s)", m.Status(), m.ErrorMessage())
		}
		doc := m.FullDocument()
		if doc == nil || len(doc.Lines) != 2 {
			t.Fatalf("expected 2 translated lines, got %+v", doc)
		}
		if !doc.Synced {
			t.Error("translated document should keep timestamps")
		}
	})

	t.Run("stale generation is discarded", func(t *testing.T) {
		fake := &fakeTranslator{fullResp: &services.TranslationResponse{TranslatedLyrics: "old"}}
		m := NewManager(fake, "", nil)
		m.SetDocument(syncedDoc())

		first := m.SetLanguage("es")
		second := m.SetLanguage("fr")
		if first == nil || second == nil {
			t.Fatal("expected two requests")
		}
		if first.Generation == second.Generation {
			t.Fatal("generations must differ")
		}

		m.ResolveFull(first.Generation, &services.TranslationResponse{TranslatedLyrics: "stale"}, nil)
		if m.Status() != StatusLoading {
			t.Errorf("stale response must not change status, got %v", m.Status())
		}
		if m.FullDocument() != nil {
			t.Error("stale response must not land")
		}

		m.ResolveFull(second.Generation, &services.TranslationResponse{TranslatedLyrics: "fresh"}, nil)
		if m.Status() != StatusReady {
			t.Errorf("expected StatusReady, got %v", m.Status())
		}
		if got := m.FullDocument().Text(); got != "fresh" {
			t.Errorf("expected fresh translation, got %q", got)
		}
	})

	t.Run("selecting native supersedes an in-flight request", func(t *testing.T) {
		m := NewManager(&fakeTranslator{}, "", nil)
		m.SetDocument(syncedDoc())

		req := m.SetLanguage("es")
		m.SetLanguage("")
		m.ResolveFull(req.Generation, &services.TranslationResponse{TranslatedLyrics: "late"}, nil)

		if m.Status() != StatusNone {
			t.Errorf("expected StatusNone, got %v", m.Status())
		}
		if m.FullDocument() != nil {
			t.Error("late response must not land after clearing")
		}
	})

	t.Run("toggle switches modes and discards the other result", func(t *testing.T) {
		fake := &fakeTranslator{
			fullResp: &services.TranslationResponse{TranslatedLyrics: "bloque"},
			overlayResp: &services.OverlayResponse{Lines: []models.OverlayLine{
				{Original: "first line", Translated: "primera linea", TimestampMs: models.Ms(0)},
				{Original: "second line", Translated: "segunda linea", TimestampMs: models.Ms(10000)},
			}},
		}
		m := NewManager(fake, "", nil)
		m.SetDocument(syncedDoc())
		m.Run(context.Background(), m.SetLanguage("es"))
		if m.FullDocument() == nil {
			t.Fatal("expected a full translation first")
		}

		req := m.ToggleOverlay()
		if req == nil || req.Mode != ModeOverlay {
			t.Fatalf("expected an overlay request, got %+v", req)
		}
		if m.FullDocument() != nil {
			t.Error("toggling must discard the full result")
		}

		m.Run(context.Background(), req)
		if len(m.OverlayLines()) != 2 {
			t.Fatalf("expected 2 overlay lines, got %d", len(m.OverlayLines()))
		}
		if !m.OverlaySynced() {
			t.Error("overlay with timestamps should report synced")
		}
	})

	t.Run("overlay active line uses the overlay line count", func(t *testing.T) {
		fake := &fakeTranslator{overlayResp: &services.OverlayResponse{Lines: []models.OverlayLine{
			{Original: "a", Translated: "x", TimestampMs: models.Ms(0)},
			{Original: "b", Translated: "y", TimestampMs: models.Ms(10000)},
			{Original: "c", Translated: "z", TimestampMs: models.Ms(20000)},
		}}}
		m := NewManager(fake, "", nil)
		m.SetDocument(syncedDoc())
		m.SetMode(ModeOverlay)
		m.Run(context.Background(), m.SetLanguage("es"))

		if got := m.ActiveOverlayLine(15000, 30000); got != 1 {
			t.Errorf("expected overlay line 1, got %d", got)
		}
	})

	t.Run("errors are retained per mode without touching the document", func(t *testing.T) {
		fake := &fakeTranslator{err: errors.New("translator down")}
		m := NewManager(fake, "", nil)
		m.SetDocument(syncedDoc())
		m.Run(context.Background(), m.SetLanguage("es"))

		if m.Status() != StatusError {
			t.Fatalf("expected StatusError, got %v", m.Status())
		}
		if m.ErrorMessage() == "" {
			t.Error("expected a retained error message")
		}

		// A successful overlay toggle clears the full-mode error.
		fake.err = nil
		fake.overlayResp = &services.OverlayResponse{Lines: []models.OverlayLine{{Original: "a", Translated: "x"}}}
		m.Run(context.Background(), m.ToggleOverlay())
		if m.Status() != StatusReady {
			t.Errorf("expected StatusReady after toggle, got %v", m.Status())
		}
		if m.ErrorMessage() != "" {
			t.Errorf("expected error cleared, got %q", m.ErrorMessage())
		}
	})

	t.Run("document swap re-triggers with the selected language", func(t *testing.T) {
		fake := &fakeTranslator{fullResp: &services.TranslationResponse{TranslatedLyrics: "nuevo"}}
		m := NewManager(fake, "", nil)
		m.SetDocument(syncedDoc())
		m.Run(context.Background(), m.SetLanguage("es"))

		req := m.SetDocument(&models.LyricsDocument{Lines: []models.LyricsLine{{Text: "other song"}}})
		if req == nil {
			t.Fatal("expected a re-trigger on document swap")
		}
		if m.FullDocument() != nil {
			t.Error("stale translation must be cleared on document swap")
		}
	})

	t.Run("empty document never triggers", func(t *testing.T) {
		fake := &fakeTranslator{}
		m := NewManager(fake, "", nil)
		if req := m.SetLanguage("es"); req != nil {
			t.Error("expected no request without a document")
		}
		if req := m.SetDocument(&models.LyricsDocument{}); req != nil {
			t.Error("expected no request for an empty document")
		}
		if fake.fullCalls != 0 {
			t.Error("expected no network calls")
		}
	})
}
