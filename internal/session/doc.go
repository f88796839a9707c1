// Package session owns the playback-driven lifecycle of a lyrics display
// session.
//
// # Components
//
//   - [Poller] : fixed-interval playback poll (2 s by default) with
//     most-recent-wins delivery and context-based teardown
//   - [Orchestrator] : state machine (Idle → Loading → Ready | Error) that
//     detects track transitions via the composite "track-artist" key and
//     issues a lyrics fetch exactly once per transition
//   - [Session] : uuid-identified owner of the poller, subscriptions (such as
//     the popup dismissal listener) and teardown-scoped resources (the
//     pronunciation audio cache)
//
// # Ordering
//
// Ticks are totally ordered by poll completion; a lagging consumer only ever
// sees the newest snapshot. Lyrics responses for superseded tracks are
// discarded by the key check in [Orchestrator.Resolve], never applied.
//
// The orchestrator never stops the poller: fetch failures park it in the
// Error state with a retained message and the next track transition is the
// retry path.
package session
