// package testing contains shared testing utilities
package testing

import (
	"context"
	"errors"
	"io"
	"net/http"
	"os"
	"testing"

	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/services"
)

// MockAPI is a configurable test double for [services.LyricsAPI]. Zero-value
// methods return empty successes; set the function fields to override.
type MockAPI struct {
	CurrentlyPlayingFunc func(ctx context.Context, userID string) (*models.PlaybackState, error)
	LyricsFunc           func(ctx context.Context, trackName, artistName string) (*services.LyricsResponse, error)
	TranslateFunc        func(ctx context.Context, req services.TranslationRequest) (*services.TranslationResponse, error)
	TranslateLinesFunc   func(ctx context.Context, req services.TranslationRequest) (*services.OverlayResponse, error)
	TranslateWordFunc    func(ctx context.Context, word, targetLang, sourceLang string) (*services.WordResponse, error)
	LanguagesFunc        func(ctx context.Context) ([]models.Language, error)
	SynthesizeFunc       func(ctx context.Context, text, language string, speed float64) ([]byte, error)

	LyricsCalls    int
	TranslateCalls int
}

func (m *MockAPI) Name() string { return "mock" }

func (m *MockAPI) CurrentlyPlaying(ctx context.Context, userID string) (*models.PlaybackState, error) {
	if m.CurrentlyPlayingFunc != nil {
		return m.CurrentlyPlayingFunc(ctx, userID)
	}
	return &models.PlaybackState{}, nil
}

func (m *MockAPI) Lyrics(ctx context.Context, trackName, artistName string) (*services.LyricsResponse, error) {
	m.LyricsCalls++
	if m.LyricsFunc != nil {
		return m.LyricsFunc(ctx, trackName, artistName)
	}
	return &services.LyricsResponse{TrackName: trackName, ArtistName: artistName}, nil
}

func (m *MockAPI) Translate(ctx context.Context, req services.TranslationRequest) (*services.TranslationResponse, error) {
	m.TranslateCalls++
	if m.TranslateFunc != nil {
		return m.TranslateFunc(ctx, req)
	}
	return &services.TranslationResponse{}, nil
}

func (m *MockAPI) TranslateLines(ctx context.Context, req services.TranslationRequest) (*services.OverlayResponse, error) {
	if m.TranslateLinesFunc != nil {
		return m.TranslateLinesFunc(ctx, req)
	}
	return &services.OverlayResponse{}, nil
}

func (m *MockAPI) TranslateWord(ctx context.Context, word, targetLang, sourceLang string) (*services.WordResponse, error) {
	if m.TranslateWordFunc != nil {
		return m.TranslateWordFunc(ctx, word, targetLang, sourceLang)
	}
	return &services.WordResponse{OriginalWord: word, TranslatedWord: word}, nil
}

func (m *MockAPI) Languages(ctx context.Context) ([]models.Language, error) {
	if m.LanguagesFunc != nil {
		return m.LanguagesFunc(ctx)
	}
	return []models.Language{}, nil
}

func (m *MockAPI) Synthesize(ctx context.Context, text, language string, speed float64) ([]byte, error) {
	if m.SynthesizeFunc != nil {
		return m.SynthesizeFunc(ctx, text, language, speed)
	}
	return []byte{}, nil
}

func (m *MockAPI) Play(ctx context.Context, userID string) error  { return nil }
func (m *MockAPI) Pause(ctx context.Context, userID string) error { return nil }

// FWriter always returns an error on Write
type FWriter struct{}

func (f *FWriter) Write(p []byte) (n int, err error) {
	return 0, errors.New("write failed")
}

// LimitedWriter fails after a certain number of writes
type LimitedWriter struct {
	maxWrites int
	written   int
	target    io.Writer
}

func (l *LimitedWriter) Write(p []byte) (n int, err error) {
	if l.written >= l.maxWrites {
		return 0, errors.New("write limit exceeded")
	}
	l.written++
	return l.target.Write(p)
}

func NewLimitedWriter(maxWrites, written int, target io.Writer) LimitedWriter {
	return LimitedWriter{maxWrites: maxWrites, written: written, target: target}
}

// MockRoundTripper allows custom HTTP responses for testing
type MockRoundTripper struct {
	response *http.Response
	err      error
}

func NewMockRoundTripper(r *http.Response, e error) *MockRoundTripper {
	return &MockRoundTripper{response: r, err: e}
}

func (m *MockRoundTripper) RoundTrip(*http.Request) (*http.Response, error) {
	return m.response, m.err
}

// FCloser simulates a failure when reading response body
type FCloser struct{}

func (f *FCloser) Read(p []byte) (n int, err error) {
	return 0, errors.New("read failed")
}

func (f *FCloser) Close() error {
	return nil
}

func MustGetwd(t *testing.T) string {
	t.Helper()
	wd, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get working directory: %v", err)
	}
	return wd
}

func MustChdir(t *testing.T, dir string) {
	t.Helper()
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("Failed to change directory to %s: %v", dir, err)
	}
}

func AssertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("File does not exist: %s", path)
	}
}

func AssertDirExists(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		t.Errorf("Directory does not exist: %s", path)
		return
	}
	if !info.IsDir() {
		t.Errorf("Path is not a directory: %s", path)
	}
}

func MustReadFile(t *testing.T, path string) string {
	t.Helper()
	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file %s: %v", path, err)
	}
	return string(content)
}
