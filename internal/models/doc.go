// Package models defines the domain entities shared across the lyrics engine.
//
// The types fall into two categories:
//
// 1. Playback and lyrics state:
//   - [PlaybackState] : per-tick snapshot from the playback poller
//   - [LyricsLine] / [LyricsDocument] : normalized lyrics, plain or time-coded
//
// 2. Translation results:
//   - [OverlayLine] : line-paired original/translated pairs for overlay mode
//   - [WordTranslationEntry] : memoized per-word translations
//   - [Language] : supported translation targets
//
// LyricsDocument and the OverlayLine set are owned by the synchronization
// engine and overlay manager respectively, and are swapped atomically on
// update; nothing mutates a document in place after publication.
package models
