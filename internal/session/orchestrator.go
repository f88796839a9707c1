package session

import (
	"context"
	"errors"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/lyrics"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/shared"
)

// State enumerates the orchestrator's lifecycle states.
type State int

const (
	StateIdle State = iota // No playback observed yet, or playback stopped
	StateLoading
	StateReady
	StateError
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateLoading:
		return "loading"
	case StateReady:
		return "ready"
	case StateError:
		return "error"
	default:
		return "unknown"
	}
}

// LyricsFetcher is the narrow collaborator surface the orchestrator needs.
type LyricsFetcher interface {
	Lyrics(ctx context.Context, trackName, artistName string) (*services.LyricsResponse, error)
}

// FetchRequest identifies a lyrics fetch issued for one track transition.
// The Key must be echoed back to [Orchestrator.Resolve] so responses for
// superseded tracks are discarded.
type FetchRequest struct {
	Key        string
	TrackName  string
	ArtistName string
}

// Orchestrator detects track transitions from playback ticks and triggers a
// lyrics fetch exactly once per transition.
//
// All methods must be called from the single goroutine that owns the display
// session (the TUI update loop or a CLI command body); fetches themselves may
// run elsewhere as long as Resolve is called back on the owner.
type Orchestrator struct {
	fetcher  LyricsFetcher
	logger   *log.Logger
	state    State
	lastKey  string
	playback *models.PlaybackState
	doc      *models.LyricsDocument
	errMsg   string
	noLyrics bool
}

// NewOrchestrator creates an orchestrator in the Idle state.
func NewOrchestrator(fetcher LyricsFetcher, logger *log.Logger) *Orchestrator {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Orchestrator{fetcher: fetcher, logger: logger}
}

// Observe ingests a playback tick. It returns a non-nil FetchRequest when the
// composite track key differs from the last key a fetch was issued for;
// repeated identical ticks are idempotent.
func (o *Orchestrator) Observe(state *models.PlaybackState) *FetchRequest {
	if state == nil {
		o.HandleUnavailable()
		return nil
	}

	o.playback = state

	key := shared.TrackKey(state.TrackName, state.ArtistName)
	if key == o.lastKey {
		return nil
	}

	o.logger.Info("track changed", "track", state.TrackName, "artist", state.ArtistName)

	o.lastKey = key
	o.state = StateLoading
	o.doc = nil
	o.errMsg = ""
	o.noLyrics = false

	return &FetchRequest{Key: key, TrackName: state.TrackName, ArtistName: state.ArtistName}
}

// Resolve applies the outcome of a lyrics fetch. Responses whose key no
// longer matches the current track are discarded silently.
func (o *Orchestrator) Resolve(key string, resp *services.LyricsResponse, err error) {
	if key != o.lastKey {
		o.logger.Debug("discarding stale lyrics response", "key", key)
		return
	}

	switch {
	case errors.Is(err, shared.ErrNoLyrics):
		o.state = StateReady
		o.doc = nil
		o.noLyrics = true
		o.errMsg = ""
	case err != nil:
		o.state = StateError
		o.doc = nil
		o.errMsg = err.Error()
	default:
		o.state = StateReady
		o.doc = lyrics.NewDocument(resp.Lyrics, resp.Lines, resp.Synced)
		o.errMsg = ""
		o.noLyrics = false
	}
}

// Fetch performs the lyrics fetch for a request synchronously and resolves it.
// Convenience for single-goroutine callers; the TUI issues the fetch from a
// command goroutine and calls Resolve on message receipt instead.
func (o *Orchestrator) Fetch(ctx context.Context, req *FetchRequest) {
	resp, err := o.fetcher.Lyrics(ctx, req.TrackName, req.ArtistName)
	o.Resolve(req.Key, resp, err)
}

// HandleUnavailable resets to Idle when playback stops or the user logs out,
// clearing the document so translation state can be rebuilt for the next track.
func (o *Orchestrator) HandleUnavailable() {
	o.state = StateIdle
	o.lastKey = ""
	o.playback = nil
	o.doc = nil
	o.errMsg = ""
	o.noLyrics = false
}

// State returns the current lifecycle state.
func (o *Orchestrator) State() State { return o.state }

// Document returns the current lyrics document, nil unless Ready with lyrics.
func (o *Orchestrator) Document() *models.LyricsDocument { return o.doc }

// Playback returns the most recent playback snapshot.
func (o *Orchestrator) Playback() *models.PlaybackState { return o.playback }

// ErrorMessage returns the retained fetch error message, empty outside StateError.
func (o *Orchestrator) ErrorMessage() string { return o.errMsg }

// NoLyrics reports whether the current track has no lyrics available,
// distinct from a fetch failure.
func (o *Orchestrator) NoLyrics() bool { return o.noLyrics }

// ActiveLine resolves the active line index for the current document and
// playback snapshot. Returns -1 when either is missing.
func (o *Orchestrator) ActiveLine() int {
	if o.playback == nil {
		return -1
	}
	return lyrics.ResolveActiveLine(o.doc, o.playback.ProgressMs, o.playback.DurationMs)
}
