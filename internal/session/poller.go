package session

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/shared"
)

// DefaultPollInterval is the fixed playback poll cadence.
const DefaultPollInterval = 2 * time.Second

// PlaybackSource produces playback snapshots, typically the backend's
// currently-playing endpoint bound to a user id.
type PlaybackSource interface {
	Poll(ctx context.Context) (*models.PlaybackState, error)
}

// SourceFunc adapts a function to the PlaybackSource interface.
type SourceFunc func(ctx context.Context) (*models.PlaybackState, error)

func (f SourceFunc) Poll(ctx context.Context) (*models.PlaybackState, error) {
	return f(ctx)
}

// Tick is one poll outcome. State is nil when Err is set or nothing plays.
type Tick struct {
	State *models.PlaybackState
	Err   error
}

// Poller runs the fixed-interval playback poll. It terminates when its
// context is cancelled; a failing poll never stops it.
type Poller struct {
	source   PlaybackSource
	interval time.Duration
	logger   *log.Logger
}

// NewPoller creates a poller. A non-positive interval falls back to
// [DefaultPollInterval].
func NewPoller(source PlaybackSource, interval time.Duration, logger *log.Logger) *Poller {
	if interval <= 0 {
		interval = DefaultPollInterval
	}
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Poller{source: source, interval: interval, logger: logger}
}

// Run polls until ctx is cancelled, delivering each outcome to ticks.
// Delivery is most-recent-wins: if the consumer lags, the stale pending tick
// is dropped so the sync engine always sees the newest snapshot. The channel
// is closed on return.
func (p *Poller) Run(ctx context.Context, ticks chan Tick) {
	defer close(ticks)

	ticker := time.NewTicker(p.interval)
	defer ticker.Stop()

	p.deliver(ctx, ticks)

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			p.deliver(ctx, ticks)
		}
	}
}

func (p *Poller) deliver(ctx context.Context, ticks chan Tick) {
	state, err := p.source.Poll(ctx)
	if err != nil && ctx.Err() != nil {
		return
	}
	if err != nil {
		p.logger.Debug("playback poll failed", "err", err)
	}

	// Drop the undelivered previous tick, if any, then send.
	select {
	case <-ticks:
	default:
	}
	select {
	case ticks <- Tick{State: state, Err: err}:
	case <-ctx.Done():
	}
}
