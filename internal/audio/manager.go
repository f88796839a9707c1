package audio

import (
	"context"
	"fmt"
	"os"
	"sync"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/shared"
)

// Synthesizer is the text-to-speech collaborator surface.
type Synthesizer interface {
	Synthesize(ctx context.Context, text, language string, speed float64) ([]byte, error)
}

// cacheKey joins text and language with a separator neither can contain.
func cacheKey(text, lang string) string {
	return text + "\x00" + lang
}

// Manager caches synthesized clips on disk and owns a single playing slot.
// Starting a clip stops whatever is playing; a request that arrives while a
// synthesis fetch is still in flight is dropped.
type Manager struct {
	synth  Synthesizer
	player *Player
	speed  float64
	logger *log.Logger

	mu       sync.Mutex
	cache    map[string]string // (text, lang) -> clip file path
	playing  *Playback
	fetching bool
}

// NewManager creates a pronunciation manager.
func NewManager(synth Synthesizer, player *Player, speed float64, logger *log.Logger) *Manager {
	if speed <= 0 {
		speed = 1.0
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{
		synth:  synth,
		player: player,
		speed:  speed,
		logger: logger,
		cache:  make(map[string]string),
	}
}

// Speak plays the pronunciation for text, fetching and caching the clip on
// first use. Repeated requests for the same (text, language) pair reuse the
// cached clip without another synthesis call.
func (m *Manager) Speak(ctx context.Context, text, lang string) error {
	if text == "" {
		return fmt.Errorf("%w: empty text", shared.ErrPlaybackFailed)
	}

	m.mu.Lock()
	if m.fetching {
		m.mu.Unlock()
		m.logger.Debug("pronunciation request dropped, fetch in flight", "text", text)
		return nil
	}
	path, cached := m.cache[cacheKey(text, lang)]
	m.fetching = !cached
	m.mu.Unlock()

	if !cached {
		var err error
		path, err = m.fetch(ctx, text, lang)

		m.mu.Lock()
		m.fetching = false
		if err != nil {
			m.mu.Unlock()
			return err
		}
		m.cache[cacheKey(text, lang)] = path
		m.mu.Unlock()
	}

	return m.play(ctx, path)
}

// fetch synthesizes the clip and writes it to a temp file.
func (m *Manager) fetch(ctx context.Context, text, lang string) (string, error) {
	data, err := m.synth.Synthesize(ctx, text, lang, m.speed)
	if err != nil {
		return "", err
	}

	f, err := os.CreateTemp("", "lyrx-tts-*.mp3")
	if err != nil {
		return "", fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		os.Remove(f.Name())
		return "", fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}
	if err := f.Close(); err != nil {
		os.Remove(f.Name())
		return "", fmt.Errorf("%w: %v", shared.ErrPlaybackFailed, err)
	}
	return f.Name(), nil
}

// play stops the current clip, releases the slot, then starts the new one.
func (m *Manager) play(ctx context.Context, path string) error {
	m.mu.Lock()
	if m.playing != nil {
		m.playing.Stop()
		m.playing = nil
	}
	m.mu.Unlock()

	pb, err := m.player.Play(ctx, path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	m.playing = pb
	m.mu.Unlock()

	go func() {
		<-pb.Done()
		m.mu.Lock()
		if m.playing == pb {
			m.playing = nil
		}
		m.mu.Unlock()
		if err := pb.Err(); err != nil {
			m.logger.Debug("playback ended", "error", err)
		}
	}()
	return nil
}

// Stop halts the current clip, if any.
func (m *Manager) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.playing != nil {
		m.playing.Stop()
		m.playing = nil
	}
}

// IsPlaying reports whether a clip currently holds the playing slot.
func (m *Manager) IsPlaying() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playing != nil
}

// Teardown stops playback and removes every cached clip file. The manager
// is reusable afterwards with an empty cache.
func (m *Manager) Teardown() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.playing != nil {
		m.playing.Stop()
		m.playing = nil
	}
	for key, path := range m.cache {
		if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
			m.logger.Warn("failed to remove cached clip", "path", path, "error", err)
		}
		delete(m.cache, key)
	}
}
