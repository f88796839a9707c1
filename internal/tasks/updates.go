package tasks

import "fmt"

// ProgressUpdate represents a progress event during a long-running operation.
//
// Used to send real-time updates to the CLI or UI layer for display.
type ProgressUpdate struct {
	Phase   Phase  // Operation phase
	Step    int    // Current step number within phase
	Total   int    // Total steps in this phase
	Message string // Human-readable message for display
	Data    any    // Optional phase-specific data for advanced UIs
}

// Operation phase enumeration
type Phase int

const (
	FetchPlayback Phase = iota
	FetchLyrics
	TranslateLyrics
	WriteExport
)

func (p Phase) String() string {
	switch p {
	case FetchPlayback:
		return "fetch_playback"
	case FetchLyrics:
		return "fetch_lyrics"
	case TranslateLyrics:
		return "translate_lyrics"
	case WriteExport:
		return "write_export"
	default:
		return ""
	}
}

func fetchLyricsUpdate(step, total int, ref TrackRef) ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchLyrics,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] %s - %s", step, total, ref.ArtistName, ref.TrackName),
	}
}

func exportCompletedUpdate(step, total int, ref TrackRef, file string) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✓ %s - %s", step, total, ref.ArtistName, ref.TrackName),
		Data:    file,
	}
}

func exportFailedUpdate(step, total int, ref TrackRef, err error) ProgressUpdate {
	return ProgressUpdate{
		Phase:   WriteExport,
		Step:    step,
		Total:   total,
		Message: fmt.Sprintf("[%d/%d] ✗ %s - %s: %v", step, total, ref.ArtistName, ref.TrackName, err),
	}
}

func fetchPlaybackUpdate() ProgressUpdate {
	return ProgressUpdate{
		Phase:   FetchPlayback,
		Step:    1,
		Total:   1,
		Message: "Fetching current playback...",
	}
}
