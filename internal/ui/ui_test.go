package ui

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/overlay"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/session"
	"github.com/desertthunder/lyrx/internal/shared"
	tu "github.com/desertthunder/lyrx/internal/testing"
)

func newTestModel(t *testing.T) (*Model, *tu.MockAPI) {
	t.Helper()
	api := &tu.MockAPI{}
	orch := session.NewOrchestrator(api, nil)
	sess := session.New(orch, session.SourceFunc(func(ctx context.Context) (*models.PlaybackState, error) {
		return nil, nil
	}), time.Second, nil)

	m := NewModel(context.Background(), Opts{
		Session: sess,
		Overlay: overlay.NewManager(api, "", nil),
		Words:   overlay.NewWords(api, "", nil),
		API:     api,
		UserID:  "user",
	})
	m.ready = true
	m.viewport = viewport.New(80, 10)
	return m, api
}

func loadTrack(t *testing.T, m *Model) {
	t.Helper()
	state := &models.PlaybackState{
		TrackName:  "Song",
		ArtistName: "Artist",
		IsPlaying:  true,
		ProgressMs: 15000,
		DurationMs: 30000,
	}
	req := m.orch.Observe(state)
	if req == nil {
		t.Fatal("expected a fetch request for a new track")
	}
	m.orch.Resolve(req.Key, &services.LyricsResponse{
		Lyrics: "first words here\nsecond words here\nthird words here",
		Synced: true,
		Lines: []models.LyricsLine{
			{Text: "first words here", TimestampMs: models.Ms(0)},
			{Text: "second words here", TimestampMs: models.Ms(10000)},
			{Text: "third words here", TimestampMs: models.Ms(20000)},
		},
	}, nil)
}

func TestModel(t *testing.T) {
	t.Run("active line follows playback position", func(t *testing.T) {
		m, _ := newTestModel(t)
		loadTrack(t, m)

		if got := m.activeIndex(); got != 1 {
			t.Errorf("expected active line 1, got %d", got)
		}
	})

	t.Run("content heights are one row per line", func(t *testing.T) {
		m, _ := newTestModel(t)
		loadTrack(t, m)

		content, heights := m.buildContent()
		if len(heights) != 3 {
			t.Fatalf("expected 3 heights, got %d", len(heights))
		}
		for i, h := range heights {
			if h != 1 {
				t.Errorf("line %d: expected height 1, got %d", i, h)
			}
		}
		if !strings.Contains(content, "second words here") {
			t.Errorf("missing line in content: %q", content)
		}
	})

	t.Run("overlay mode renders two rows per line", func(t *testing.T) {
		m, _ := newTestModel(t)
		loadTrack(t, m)

		m.overlay.SetDocument(m.orch.Document())
		m.overlay.SetLanguage("es")
		req := m.overlay.SetMode(overlay.ModeOverlay)
		if req == nil {
			t.Fatal("expected an overlay request")
		}
		m.overlay.ResolveOverlay(req.Generation, &services.OverlayResponse{Lines: []models.OverlayLine{
			{Original: "first words here", Translated: "primeras palabras", TimestampMs: models.Ms(0)},
			{Original: "second words here", Translated: "segundas palabras", TimestampMs: models.Ms(10000)},
		}}, nil)

		_, heights := m.buildContent()
		if len(heights) != 2 {
			t.Fatalf("expected 2 heights, got %d", len(heights))
		}
		for i, h := range heights {
			if h != 2 {
				t.Errorf("line %d: expected height 2, got %d", i, h)
			}
		}
		if got := m.activeIndex(); got != 1 {
			t.Errorf("expected active overlay line 1, got %d", got)
		}
	})

	t.Run("word navigation clamps to the active line", func(t *testing.T) {
		m, _ := newTestModel(t)
		loadTrack(t, m)
		m.wordMode = true

		words := m.activeWords()
		if len(words) != 3 {
			t.Fatalf("expected 3 words, got %v", words)
		}
		if m.wordColumn() != 0 {
			t.Errorf("expected column 0 for first word, got %d", m.wordColumn())
		}
		m.wordIdx = 1
		// "second " is seven runes
		if got := m.wordColumn(); got != 7 {
			t.Errorf("expected column 7, got %d", got)
		}
	})

	t.Run("teardown is idempotent through quit handling", func(t *testing.T) {
		m, _ := newTestModel(t)
		m.sess.Teardown()
		m.sess.Teardown()
	})

	t.Run("transient poll failure keeps the document", func(t *testing.T) {
		m, _ := newTestModel(t)
		loadTrack(t, m)

		m.handleTick(session.Tick{Err: errors.New("connection refused")})

		if m.orch.State() != session.StateReady {
			t.Errorf("expected ready after a failed poll, got %v", m.orch.State())
		}
		if m.orch.Document() == nil {
			t.Error("a failed poll must not clear the lyrics document")
		}
	})

	t.Run("playback stop resets to idle", func(t *testing.T) {
		m, _ := newTestModel(t)
		loadTrack(t, m)

		m.handleTick(session.Tick{Err: shared.ErrNotPlaying})

		if m.orch.State() != session.StateIdle {
			t.Errorf("expected idle after playback stopped, got %v", m.orch.State())
		}
		if m.orch.Document() != nil {
			t.Error("expected the document cleared when playback stops")
		}
	})

	t.Run("pronunciation reads the translation in the target language", func(t *testing.T) {
		m, _ := newTestModel(t)
		loadTrack(t, m)
		m.overlay.SetLanguage("es")

		entry := models.WordTranslationEntry{
			Word:         "words",
			Translation:  "palabras",
			TargetLang:   "es",
			DetectedLang: "en",
		}
		m.popup = &wordPopup{word: "words", entry: &entry}

		text, lang, ok := m.popupSpeech()
		if !ok {
			t.Fatal("expected speakable popup content")
		}
		if text != "palabras" {
			t.Errorf("expected the translated word, got %q", text)
		}
		if lang != "es" {
			t.Errorf("expected the target language, got %q", lang)
		}
	})

	t.Run("pronunciation falls back to the original word", func(t *testing.T) {
		m, _ := newTestModel(t)
		loadTrack(t, m)
		m.popup = &wordPopup{word: "words"}

		text, lang, ok := m.popupSpeech()
		if !ok {
			t.Fatal("expected speakable popup content")
		}
		if text != "words" || lang != "" {
			t.Errorf("expected original word without a target, got %q (%q)", text, lang)
		}

		m.popup = nil
		if _, _, ok := m.popupSpeech(); ok {
			t.Error("expected nothing to speak without a popup")
		}
	})

	t.Run("dismissal listener registers once per session", func(t *testing.T) {
		m, _ := newTestModel(t)
		loadTrack(t, m)
		m.Init()

		sub := m.popupSub
		if sub == nil {
			t.Fatal("expected a dismissal subscription after init")
		}

		m.wordMode = true
		m.openPopup()
		m.dismissPopup()
		m.openPopup()
		if m.popup == nil {
			t.Fatal("expected an open popup")
		}
		if m.popupSub != sub {
			t.Error("expected the dismissal listener to be reused across popups")
		}

		m.sess.Teardown()
		if m.popup != nil {
			t.Error("teardown must dismiss the popup")
		}
	})
}

func TestSpliceBox(t *testing.T) {
	base := "aaaaaaaaaa\nbbbbbbbbbb\ncccccccccc"
	box := []string{"[XX]", "[YY]"}

	t.Run("overwrites rows at the anchor", func(t *testing.T) {
		out := strings.Split(spliceBox(base, box, 2, 1), "\n")
		if out[1] != "bb[XX]" {
			t.Errorf("unexpected row: %q", out[1])
		}
		if out[2] != "cc[YY]" {
			t.Errorf("unexpected row: %q", out[2])
		}
		if out[0] != "aaaaaaaaaa" {
			t.Errorf("row above anchor must be untouched: %q", out[0])
		}
	})

	t.Run("pads short rows to the anchor column", func(t *testing.T) {
		out := strings.Split(spliceBox("x\ny", []string{"[Z]"}, 4, 0), "\n")
		if out[0] != "x   [Z]" {
			t.Errorf("unexpected row: %q", out[0])
		}
	})

	t.Run("ignores rows outside the pane", func(t *testing.T) {
		if got := spliceBox("only", []string{"[Z]"}, 0, 5); got != "only" {
			t.Errorf("unexpected output: %q", got)
		}
	})
}
