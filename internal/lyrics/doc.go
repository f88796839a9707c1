// Package lyrics implements the synchronization engine mapping playback
// position to the active lyric line.
//
// # Documents
//
// [NewDocument] normalizes raw lyrics payloads (plain text or time-coded
// lines) and [ParseLRC] parses LRC-format content into timestamped lines.
// [OverlayDocument] derives a document from overlay translation results,
// with synced-ness recomputed from the returned timestamps.
//
// # Active line resolution
//
// [ResolveActiveLine] is a pure function re-derived on every playback tick:
//   - Synced documents: reverse scan for the last line whose timestamp is at
//     or before the playback position; positions before the first timestamp
//     resolve to line 0.
//   - Unsynced documents: a percentage estimate with a 5% intro/outro trim on
//     each end, floored onto the line count.
//
// # Scrolling
//
// [CenterOffset] computes the viewport offset that centers a line, and
// [Coordinator] emits that offset exactly once per active-index change so the
// TUI can animate to it.
package lyrics
