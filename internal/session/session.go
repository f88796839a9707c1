package session

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/shared"
)

// Subscription is a disposable registration, such as the outside-click
// dismissal listener. Dispose is idempotent.
type Subscription struct {
	dispose func()
	once    sync.Once
}

// NewSubscription wraps a dispose function.
func NewSubscription(dispose func()) *Subscription {
	return &Subscription{dispose: dispose}
}

// Dispose runs the teardown exactly once.
func (s *Subscription) Dispose() {
	s.once.Do(func() {
		if s.dispose != nil {
			s.dispose()
		}
	})
}

// Teardowner is any component with session-scoped resources to release.
type Teardowner interface {
	Teardown()
}

// Session owns the lifetime of one lyrics display session: the playback
// poller, the track-change orchestrator, and every subscription or resource
// registered against it. Teardown is deterministic; no timers or listeners
// survive it.
type Session struct {
	ID string

	orch   *Orchestrator
	poller *Poller
	ticks  chan Tick
	logger *log.Logger

	cancel        context.CancelFunc
	subscriptions []*Subscription
	resources     []Teardowner
	done          chan struct{}
}

// New creates a display session.
func New(orch *Orchestrator, source PlaybackSource, interval time.Duration, logger *log.Logger) *Session {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Session{
		ID:     shared.GenerateID(),
		orch:   orch,
		poller: NewPoller(source, interval, logger),
		logger: logger,
		done:   make(chan struct{}),
	}
}

// Orchestrator returns the session's track-change orchestrator.
func (s *Session) Orchestrator() *Orchestrator { return s.orch }

// Start launches the poller and returns the tick channel. The channel is
// buffered with capacity one so delivery is most-recent-wins.
func (s *Session) Start(ctx context.Context) <-chan Tick {
	ctx, s.cancel = context.WithCancel(ctx)
	s.ticks = make(chan Tick, 1)

	go func() {
		defer close(s.done)
		s.poller.Run(ctx, s.ticks)
	}()

	s.logger.Info("display session started", "session", s.ID)
	return s.ticks
}

// Subscribe registers a subscription released at teardown, returning it so
// callers can also dispose early (e.g. dismissal on outside click).
func (s *Session) Subscribe(dispose func()) *Subscription {
	sub := NewSubscription(dispose)
	s.subscriptions = append(s.subscriptions, sub)
	return sub
}

// Manage registers a resource owner whose Teardown runs at session end.
func (s *Session) Manage(t Teardowner) {
	s.resources = append(s.resources, t)
}

// Teardown stops the poller, disposes every subscription, releases every
// managed resource, and resets the orchestrator. Safe to call more than once.
func (s *Session) Teardown() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
		<-s.done
	}

	for _, sub := range s.subscriptions {
		sub.Dispose()
	}
	s.subscriptions = nil

	for _, r := range s.resources {
		r.Teardown()
	}
	s.resources = nil

	s.orch.HandleUnavailable()
	s.logger.Info("display session torn down", "session", s.ID)
}
