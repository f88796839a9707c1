// package formatter renders lyrics documents for export (plain text, LRC, Markdown, JSON)
package formatter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/shared"
)

// Export formats.
const (
	FormatText     = "txt"
	FormatLRC      = "lrc"
	FormatMarkdown = "markdown"
	FormatJSON     = "json"
)

// TrackMeta carries the identifying fields written into export headers.
type TrackMeta struct {
	TrackName  string `json:"track_name"`
	ArtistName string `json:"artist_name"`
	AlbumName  string `json:"album_name,omitempty"`
}

// lrcTimestamp renders a millisecond offset as [mm:ss.cc].
func lrcTimestamp(ms int) string {
	if ms < 0 {
		ms = 0
	}
	minutes := ms / 60000
	seconds := (ms % 60000) / 1000
	centis := (ms % 1000) / 10
	return fmt.Sprintf("[%02d:%02d.%02d]", minutes, seconds, centis)
}

// ExportToText renders the document as plain text, one lyric line per line.
func ExportToText(meta TrackMeta, doc *models.LyricsDocument) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("%s - %s\n", meta.ArtistName, meta.TrackName))
	if meta.AlbumName != "" {
		buf.WriteString(fmt.Sprintf("Album: %s\n", meta.AlbumName))
	}
	buf.WriteString("\n")

	for _, line := range doc.Lines {
		buf.WriteString(line.Text)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// ExportToLRC renders the document in LRC format. Unsynced documents cannot
// carry timestamps and are rejected.
func ExportToLRC(meta TrackMeta, doc *models.LyricsDocument) ([]byte, error) {
	if !doc.Synced {
		return nil, fmt.Errorf("%w: document has no timestamps", shared.ErrInvalidInput)
	}

	var buf bytes.Buffer
	buf.WriteString(fmt.Sprintf("[ti:%s]\n", meta.TrackName))
	buf.WriteString(fmt.Sprintf("[ar:%s]\n", meta.ArtistName))
	if meta.AlbumName != "" {
		buf.WriteString(fmt.Sprintf("[al:%s]\n", meta.AlbumName))
	}
	buf.WriteString("\n")

	for _, line := range doc.Lines {
		if line.TimestampMs == nil {
			continue
		}
		buf.WriteString(lrcTimestamp(*line.TimestampMs))
		buf.WriteString(line.Text)
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

// ExportToMarkdown renders the document as a Markdown section, with
// timestamps when the document is synced.
func ExportToMarkdown(meta TrackMeta, doc *models.LyricsDocument) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", meta.TrackName))
	buf.WriteString(fmt.Sprintf("**Artist**: %s\n", meta.ArtistName))
	if meta.AlbumName != "" {
		buf.WriteString(fmt.Sprintf("**Album**: %s\n", meta.AlbumName))
	}
	buf.WriteString("\n## Lyrics\n\n")

	for _, line := range doc.Lines {
		if doc.Synced && line.TimestampMs != nil {
			buf.WriteString(fmt.Sprintf("`%s` %s\n", shared.FormatTimestamp(*line.TimestampMs), line.Text))
		} else {
			buf.WriteString(line.Text + "\n")
		}
	}
	return buf.Bytes(), nil
}

// ExportToJSON renders the document with its metadata as indented JSON.
func ExportToJSON(meta TrackMeta, doc *models.LyricsDocument) ([]byte, error) {
	payload := struct {
		TrackMeta
		Synced bool                `json:"synced"`
		Lines  []models.LyricsLine `json:"lines"`
	}{TrackMeta: meta, Synced: doc.Synced, Lines: doc.Lines}

	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode lyrics: %w", err)
	}
	return data, nil
}

// ExportDocument dispatches on format. LRC falls back to plain text for
// unsynced documents so bulk exports never fail on a missing timestamp.
func ExportDocument(meta TrackMeta, doc *models.LyricsDocument, format string) ([]byte, error) {
	switch format {
	case FormatLRC:
		if !doc.Synced {
			return ExportToText(meta, doc)
		}
		return ExportToLRC(meta, doc)
	case FormatMarkdown:
		return ExportToMarkdown(meta, doc)
	case FormatJSON:
		return ExportToJSON(meta, doc)
	case FormatText, "":
		return ExportToText(meta, doc)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidInput, format)
	}
}

// ExportExtension maps a format to its file extension.
func ExportExtension(format string) string {
	switch format {
	case FormatLRC:
		return "lrc"
	case FormatMarkdown:
		return "md"
	case FormatJSON:
		return "json"
	default:
		return "txt"
	}
}

// ExportOverlay renders paired original/translated lines. Markdown produces
// a two-column table; every other format interleaves the pair.
func ExportOverlay(meta TrackMeta, lines []models.OverlayLine, format string) ([]byte, error) {
	var buf bytes.Buffer

	switch format {
	case FormatMarkdown:
		buf.WriteString(fmt.Sprintf("# %s\n\n", meta.TrackName))
		buf.WriteString(fmt.Sprintf("**Artist**: %s\n\n", meta.ArtistName))
		buf.WriteString("| Original | Translation |\n|---|---|\n")
		for _, line := range lines {
			buf.WriteString(fmt.Sprintf("| %s | %s |\n",
				strings.ReplaceAll(line.Original, "|", "\\|"),
				strings.ReplaceAll(line.Translated, "|", "\\|")))
		}
	case FormatJSON:
		payload := struct {
			TrackMeta
			Lines []models.OverlayLine `json:"lines"`
		}{TrackMeta: meta, Lines: lines}
		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("failed to encode overlay: %w", err)
		}
		return data, nil
	case FormatText, FormatLRC, "":
		buf.WriteString(fmt.Sprintf("%s - %s\n\n", meta.ArtistName, meta.TrackName))
		for _, line := range lines {
			buf.WriteString(line.Original + "\n")
			if line.Translated != "" {
				buf.WriteString("  " + line.Translated + "\n")
			}
		}
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidInput, format)
	}
	return buf.Bytes(), nil
}

// WriteExport writes rendered bytes to path, creating the file.
func WriteExport(data []byte, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create export file: %w", err)
	}
	defer f.Close()

	if _, err := f.Write(data); err != nil {
		return fmt.Errorf("failed to write export file: %w", err)
	}
	return nil
}

// WriteManifest writes an export summary as indented JSON.
func WriteManifest(manifest any, w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// SplitSegments wraps text into display segments no wider than maxWidth
// runes, breaking on spaces where possible.
func SplitSegments(text string, maxWidth int) []string {
	if maxWidth <= 0 || len([]rune(text)) <= maxWidth {
		return []string{text}
	}

	var segments []string
	words := strings.Fields(text)
	if len(words) == 0 {
		return []string{text}
	}

	current := words[0]
	for _, word := range words[1:] {
		if len([]rune(current))+1+len([]rune(word)) > maxWidth {
			segments = append(segments, current)
			current = word
			continue
		}
		current += " " + word
	}
	return append(segments, current)
}
