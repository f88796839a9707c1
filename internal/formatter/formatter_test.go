package formatter

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/shared"
)

var testMeta = TrackMeta{TrackName: "Song", ArtistName: "Artist", AlbumName: "Album"}

func testDoc() *models.LyricsDocument {
	return &models.LyricsDocument{
		Synced: true,
		Lines: []models.LyricsLine{
			{Text: "first line", TimestampMs: models.Ms(0)},
			{Text: "second line", TimestampMs: models.Ms(75500)},
		},
	}
}

func TestExportToText(t *testing.T) {
	out, err := ExportToText(testMeta, testDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)
	if !strings.HasPrefix(text, "Artist - Song\n") {
		t.Errorf("missing header: %q", text)
	}
	if !strings.Contains(text, "first line\nsecond line\n") {
		t.Errorf("missing lines: %q", text)
	}
}

func TestExportToLRC(t *testing.T) {
	t.Run("renders tags and timestamps", func(t *testing.T) {
		out, err := ExportToLRC(testMeta, testDoc())
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := string(out)
		for _, want := range []string{"[ti:Song]", "[ar:Artist]", "[al:Album]", "[00:00.00]first line", "[01:15.50]second line"} {
			if !strings.Contains(text, want) {
				t.Errorf("missing %q in %q", want, text)
			}
		}
	})

	t.Run("rejects unsynced documents", func(t *testing.T) {
		doc := &models.LyricsDocument{Lines: []models.LyricsLine{{Text: "plain"}}}
		if _, err := ExportToLRC(testMeta, doc); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestExportToMarkdown(t *testing.T) {
	out, err := ExportToMarkdown(testMeta, testDoc())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	text := string(out)
	if !strings.Contains(text, "# Song") || !strings.Contains(text, "**Artist**: Artist") {
		t.Errorf("missing header: %q", text)
	}
	if !strings.Contains(text, "`1:15` second line") {
		t.Errorf("missing timestamped line: %q", text)
	}
}

func TestExportDocument(t *testing.T) {
	t.Run("lrc falls back to text for unsynced lyrics", func(t *testing.T) {
		doc := &models.LyricsDocument{Lines: []models.LyricsLine{{Text: "plain"}}}
		out, err := ExportDocument(testMeta, doc, FormatLRC)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if strings.Contains(string(out), "[ti:") {
			t.Errorf("expected plain text fallback, got %q", out)
		}
	})

	t.Run("empty format defaults to text", func(t *testing.T) {
		if _, err := ExportDocument(testMeta, testDoc(), ""); err != nil {
			t.Errorf("unexpected error: %v", err)
		}
	})

	t.Run("unknown format errors", func(t *testing.T) {
		if _, err := ExportDocument(testMeta, testDoc(), "yaml"); !errors.Is(err, shared.ErrInvalidInput) {
			t.Errorf("expected ErrInvalidInput, got %v", err)
		}
	})
}

func TestExportOverlay(t *testing.T) {
	lines := []models.OverlayLine{
		{Original: "first line", Translated: "primera linea"},
		{Original: "second | line", Translated: "segunda linea"},
	}

	t.Run("markdown renders a table with escaped pipes", func(t *testing.T) {
		out, err := ExportOverlay(testMeta, lines, FormatMarkdown)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		text := string(out)
		if !strings.Contains(text, "| Original | Translation |") {
			t.Errorf("missing table header: %q", text)
		}
		if !strings.Contains(text, "second \\| line") {
			t.Errorf("pipe not escaped: %q", text)
		}
	})

	t.Run("text interleaves pairs", func(t *testing.T) {
		out, err := ExportOverlay(testMeta, lines, FormatText)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !strings.Contains(string(out), "first line\n  primera linea\n") {
			t.Errorf("pairs not interleaved: %q", out)
		}
	})
}

func TestWriteManifest(t *testing.T) {
	var buf bytes.Buffer
	manifest := map[string]int{"total": 3}
	if err := WriteManifest(manifest, &buf); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(buf.String(), `"total": 3`) {
		t.Errorf("unexpected manifest: %q", buf.String())
	}
}

func TestSplitSegments(t *testing.T) {
	cases := []struct {
		name     string
		text     string
		maxWidth int
		want     []string
	}{
		{"short text stays whole", "hello world", 40, []string{"hello world"}},
		{"wraps on spaces", "one two three four", 9, []string{"one two", "three", "four"}},
		{"zero width disables wrapping", "anything at all", 0, []string{"anything at all"}},
		{"empty text", "", 10, []string{""}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := SplitSegments(tc.text, tc.maxWidth)
			if len(got) != len(tc.want) {
				t.Fatalf("got %v, want %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("segment %d: got %q, want %q", i, got[i], tc.want[i])
				}
			}
		})
	}
}
