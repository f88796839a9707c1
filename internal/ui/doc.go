// Package ui implements the interactive lyrics view using bubbletea's Elm architecture.
//
// The [Model] owns the display session: playback ticks, lyric fetches,
// translations, and word popups all resolve as messages on the update loop,
// so the orchestrator and overlay manager are never touched from two
// goroutines. Two views exist:
//  1. [LyricsView] : Scrolling synced lyrics with translation modes, word
//     mode, and pronunciation
//  2. [LanguageView] : Target language picker backed by charmbracelet/bubbles/list
//
// The lyric pane is a bubbles viewport; centering on the active line is
// driven by [lyrics.Coordinator] so a steady playback position never causes
// scroll jitter.
//
// Keyboard navigation uses vim-style bindings (j/k, h/l in word mode, esc, q)
// with contextual help displayed via charmbracelet/bubbles/help.
package ui
