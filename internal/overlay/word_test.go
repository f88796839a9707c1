package overlay

import (
	"context"
	"errors"
	"testing"

	"github.com/desertthunder/lyrx/internal/services"
)

func TestWords(t *testing.T) {
	t.Run("memoizes per word instance", func(t *testing.T) {
		fake := &fakeTranslator{wordResp: &services.WordResponse{TranslatedWord: "hola", DetectedLanguage: "en"}}
		words := NewWords(fake, "", nil)
		ref := WordRef{Line: 2, Word: 0}

		entry, ok := words.Resolve(context.Background(), ref, "hello", "es")
		if !ok || entry.Translation != "hola" {
			t.Fatalf("expected hola, got %+v", entry)
		}
		words.Resolve(context.Background(), ref, "hello", "es")
		if fake.wordCalls != 1 {
			t.Errorf("expected 1 fetch, got %d", fake.wordCalls)
		}

		// Same word on another line is a separate instance.
		words.Resolve(context.Background(), WordRef{Line: 5, Word: 0}, "hello", "es")
		if fake.wordCalls != 2 {
			t.Errorf("expected 2 fetches, got %d", fake.wordCalls)
		}
	})

	t.Run("native language is a no-op", func(t *testing.T) {
		fake := &fakeTranslator{}
		words := NewWords(fake, "", nil)

		_, ok := words.Resolve(context.Background(), WordRef{}, "hello", "")
		if ok {
			t.Error("expected no entry for the native language")
		}
		if fake.wordCalls != 0 {
			t.Error("native selection must not hit the network")
		}
	})

	t.Run("failure falls back to the original word", func(t *testing.T) {
		fake := &fakeTranslator{err: errors.New("down")}
		words := NewWords(fake, "", nil)

		entry := words.Translate(context.Background(), "hello,", "es")
		if entry.Translation != "hello" {
			t.Errorf("expected fallback to original word, got %q", entry.Translation)
		}
	})

	t.Run("reset drops memoized entries", func(t *testing.T) {
		fake := &fakeTranslator{wordResp: &services.WordResponse{TranslatedWord: "hola"}}
		words := NewWords(fake, "", nil)
		ref := WordRef{Line: 0, Word: 1}

		words.Resolve(context.Background(), ref, "hello", "es")
		words.Reset()
		if _, ok := words.Lookup(ref); ok {
			t.Error("expected entry dropped after reset")
		}
	})
}

func TestCleanWord(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"hello,", "hello"},
		{"(world)", "world"},
		{"don't", "don't"},
		{"¿qué?", "¿qué"},
		{"...", ""},
	}
	for _, tc := range cases {
		if got := CleanWord(tc.in); got != tc.want {
			t.Errorf("CleanWord(%q) = %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestPlacePopup(t *testing.T) {
	t.Run("sits below the anchor when there is room", func(t *testing.T) {
		x, y := PlacePopup(10, 5, 20, 4, 80, 24)
		if x != 10 || y != 6 {
			t.Errorf("got (%d, %d), want (10, 6)", x, y)
		}
	})

	t.Run("clamps to the right edge", func(t *testing.T) {
		x, _ := PlacePopup(70, 5, 20, 4, 80, 24)
		if x != 60 {
			t.Errorf("got x=%d, want 60", x)
		}
	})

	t.Run("flips above when the bottom is tight", func(t *testing.T) {
		_, y := PlacePopup(10, 22, 20, 4, 80, 24)
		if y != 18 {
			t.Errorf("got y=%d, want 18", y)
		}
	})

	t.Run("never goes negative", func(t *testing.T) {
		x, y := PlacePopup(0, 0, 100, 30, 80, 24)
		if x != 0 || y != 0 {
			t.Errorf("got (%d, %d), want (0, 0)", x, y)
		}
	})
}
