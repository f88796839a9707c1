package lyrics

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/desertthunder/lyrx/internal/models"
)

// lrcLine matches "[mm:ss.xx]text" and "[mm:ss.xxx]text" timestamps.
var lrcLine = regexp.MustCompile(`^\[(\d{2}):(\d{2})\.(\d{2,3})\](.*)$`)

// NewDocument normalizes a raw lyrics payload into a [models.LyricsDocument].
//
// When the source is time-coded the provided lines are used as-is; otherwise
// the plain text is split into non-empty lines with nil timestamps.
func NewDocument(text string, lines []models.LyricsLine, synced bool) *models.LyricsDocument {
	if synced && len(lines) > 0 {
		return &models.LyricsDocument{Synced: true, Lines: lines}
	}

	var plain []models.LyricsLine
	for _, raw := range strings.Split(text, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}
		plain = append(plain, models.LyricsLine{Text: raw})
	}

	return &models.LyricsDocument{Synced: false, Lines: plain}
}

// ParseLRC parses LRC format content into timestamped lines.
// Lines without a timestamp tag or with empty text are skipped.
// Returns nil when no timestamped lines are found.
func ParseLRC(content string) *models.LyricsDocument {
	var lines []models.LyricsLine

	for _, raw := range strings.Split(content, "\n") {
		raw = strings.TrimSpace(raw)
		if raw == "" {
			continue
		}

		match := lrcLine.FindStringSubmatch(raw)
		if match == nil {
			continue
		}

		minutes, _ := strconv.Atoi(match[1])
		seconds, _ := strconv.Atoi(match[2])
		fraction, _ := strconv.Atoi(match[3])

		// Two digits are centiseconds, three are milliseconds.
		ms := (minutes*60 + seconds) * 1000
		if len(match[3]) == 2 {
			ms += fraction * 10
		} else {
			ms += fraction
		}

		text := strings.TrimSpace(match[4])
		if text == "" {
			continue
		}

		lines = append(lines, models.LyricsLine{Text: text, TimestampMs: models.Ms(ms)})
	}

	if len(lines) == 0 {
		return nil
	}

	return &models.LyricsDocument{Synced: true, Lines: lines}
}

// OverlayDocument derives a displayable document from overlay translation
// results. Synced-ness is derived from whether any returned line carries a
// timestamp, independent of the original document's sync state.
func OverlayDocument(overlay []models.OverlayLine) *models.LyricsDocument {
	synced := false
	lines := make([]models.LyricsLine, len(overlay))

	for i, ol := range overlay {
		lines[i] = models.LyricsLine{Text: ol.Original, TimestampMs: ol.TimestampMs}
		if ol.TimestampMs != nil {
			synced = true
		}
	}

	return &models.LyricsDocument{Synced: synced, Lines: lines}
}
