package lyrics

import (
	"math"

	"github.com/desertthunder/lyrx/internal/models"
)

// Fraction of the track assumed to be intro/outro when estimating the active
// line of an unsynced document.
const trimFraction = 0.05

// ResolveActiveLine maps a playback position onto the index of the active
// lyric line. Returns -1 when the document has no lines, or when the document
// is unsynced and durationMs is zero.
//
// The function is pure; callers re-derive the index on every playback tick.
func ResolveActiveLine(doc *models.LyricsDocument, progressMs, durationMs int) int {
	if doc == nil || len(doc.Lines) == 0 {
		return -1
	}

	if doc.Synced {
		// Scan back to front and take the last satisfying line, which
		// tolerates out-of-order timestamps upstream.
		for i := len(doc.Lines) - 1; i >= 0; i-- {
			ts := doc.Lines[i].TimestampMs
			if ts != nil && *ts <= progressMs {
				return i
			}
		}
		return 0
	}

	if durationMs <= 0 {
		return -1
	}

	p := clamp(float64(progressMs)/float64(durationMs), 0, 1)
	adjusted := clamp((p-trimFraction)/(1-2*trimFraction), 0, 1)

	index := int(math.Floor(adjusted * float64(len(doc.Lines))))
	if index >= len(doc.Lines) {
		index = len(doc.Lines) - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

// NearActive reports whether the line at index is within one position of the
// active line. Used for presentation emphasis only.
func NearActive(index, active int) bool {
	if active < 0 {
		return false
	}
	diff := index - active
	return diff >= -1 && diff <= 1
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
