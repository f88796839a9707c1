package lyrics

import (
	"testing"

	"github.com/desertthunder/lyrx/internal/models"
)

func syncedDoc(timestamps ...int) *models.LyricsDocument {
	lines := make([]models.LyricsLine, len(timestamps))
	for i, ts := range timestamps {
		lines[i] = models.LyricsLine{Text: "line", TimestampMs: models.Ms(ts)}
	}
	return &models.LyricsDocument{Synced: true, Lines: lines}
}

func unsyncedDoc(count int) *models.LyricsDocument {
	lines := make([]models.LyricsLine, count)
	for i := range lines {
		lines[i] = models.LyricsLine{Text: "line"}
	}
	return &models.LyricsDocument{Synced: false, Lines: lines}
}

func TestResolveActiveLine(t *testing.T) {
	t.Run("synced", func(t *testing.T) {
		doc := syncedDoc(0, 10000, 20000)

		cases := []struct {
			name     string
			progress int
			want     int
		}{
			{"between timestamps", 15000, 1},
			{"exactly on a timestamp", 10000, 1},
			{"before first timestamp", -1, 0},
			{"past last timestamp", 25000, 2},
			{"at zero", 0, 0},
		}

		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				if got := ResolveActiveLine(doc, tc.progress, 30000); got != tc.want {
					t.Errorf("progress %d: expected index %d, got %d", tc.progress, tc.want, got)
				}
			})
		}

		t.Run("tolerates out-of-order timestamps", func(t *testing.T) {
			doc := syncedDoc(0, 20000, 10000)
			// Reverse scan takes the last satisfying line.
			if got := ResolveActiveLine(doc, 15000, 30000); got != 2 {
				t.Errorf("expected index 2, got %d", got)
			}
		})

		t.Run("skips lines without timestamps", func(t *testing.T) {
			doc := &models.LyricsDocument{Synced: true, Lines: []models.LyricsLine{
				{Text: "a", TimestampMs: models.Ms(0)},
				{Text: "b"},
				{Text: "c", TimestampMs: models.Ms(20000)},
			}}
			if got := ResolveActiveLine(doc, 15000, 30000); got != 0 {
				t.Errorf("expected index 0, got %d", got)
			}
		})
	})

	t.Run("unsynced", func(t *testing.T) {
		t.Run("estimates position proportionally", func(t *testing.T) {
			doc := unsyncedDoc(20)
			if got := ResolveActiveLine(doc, 45000, 200000); got != 3 {
				t.Errorf("expected index 3, got %d", got)
			}
		})

		t.Run("clamps during the intro", func(t *testing.T) {
			doc := unsyncedDoc(20)
			if got := ResolveActiveLine(doc, 5000, 200000); got != 0 {
				t.Errorf("expected index 0, got %d", got)
			}
		})

		t.Run("clamps during the outro", func(t *testing.T) {
			doc := unsyncedDoc(20)
			if got := ResolveActiveLine(doc, 199000, 200000); got != 19 {
				t.Errorf("expected final index, got %d", got)
			}
		})

		t.Run("progress past duration clamps to final line", func(t *testing.T) {
			doc := unsyncedDoc(10)
			if got := ResolveActiveLine(doc, 300000, 200000); got != 9 {
				t.Errorf("expected final index, got %d", got)
			}
		})

		t.Run("zero duration is unresolved", func(t *testing.T) {
			doc := unsyncedDoc(10)
			if got := ResolveActiveLine(doc, 5000, 0); got != -1 {
				t.Errorf("expected -1, got %d", got)
			}
		})
	})

	t.Run("empty document is unresolved", func(t *testing.T) {
		if got := ResolveActiveLine(nil, 1000, 2000); got != -1 {
			t.Errorf("expected -1 for nil doc, got %d", got)
		}
		if got := ResolveActiveLine(&models.LyricsDocument{}, 1000, 2000); got != -1 {
			t.Errorf("expected -1 for empty doc, got %d", got)
		}
	})
}

func TestNearActive(t *testing.T) {
	cases := []struct {
		name          string
		index, active int
		want          bool
	}{
		{"same line", 5, 5, true},
		{"one above", 4, 5, true},
		{"one below", 6, 5, true},
		{"two away", 7, 5, false},
		{"unresolved active", 0, -1, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NearActive(tc.index, tc.active); got != tc.want {
				t.Errorf("NearActive(%d, %d) = %v, expected %v", tc.index, tc.active, got, tc.want)
			}
		})
	}
}

func TestNewDocument(t *testing.T) {
	t.Run("keeps provided lines when synced", func(t *testing.T) {
		lines := []models.LyricsLine{{Text: "hello", TimestampMs: models.Ms(100)}}
		doc := NewDocument("ignored", lines, true)

		if !doc.Synced {
			t.Error("expected synced document")
		}
		if len(doc.Lines) != 1 || doc.Lines[0].Text != "hello" {
			t.Errorf("expected provided lines, got %+v", doc.Lines)
		}
	})

	t.Run("splits plain text when unsynced", func(t *testing.T) {
		doc := NewDocument("first\n\n  second  \nthird\n", nil, false)

		if doc.Synced {
			t.Error("expected unsynced document")
		}
		if len(doc.Lines) != 3 {
			t.Fatalf("expected 3 lines, got %d", len(doc.Lines))
		}
		if doc.Lines[1].Text != "second" {
			t.Errorf("expected trimmed line, got %q", doc.Lines[1].Text)
		}
		if doc.Lines[0].TimestampMs != nil {
			t.Error("expected nil timestamps on plain lines")
		}
	})

	t.Run("synced flag without lines falls back to text", func(t *testing.T) {
		doc := NewDocument("only text", nil, true)

		if doc.Synced {
			t.Error("expected fallback to unsynced")
		}
		if len(doc.Lines) != 1 {
			t.Errorf("expected 1 line, got %d", len(doc.Lines))
		}
	})
}

func TestParseLRC(t *testing.T) {
	t.Run("parses timestamped lines", func(t *testing.T) {
		content := "[ti:Some Song]\n[00:12.50]first line\n[01:15.003]second line\n\nno tag here\n"
		doc := ParseLRC(content)

		if doc == nil {
			t.Fatal("expected a document")
		}
		if !doc.Synced {
			t.Error("expected synced document")
		}
		if len(doc.Lines) != 2 {
			t.Fatalf("expected 2 lines, got %d", len(doc.Lines))
		}
		if got := *doc.Lines[0].TimestampMs; got != 12500 {
			t.Errorf("expected 12500ms for centisecond tag, got %d", got)
		}
		if got := *doc.Lines[1].TimestampMs; got != 75003 {
			t.Errorf("expected 75003ms for millisecond tag, got %d", got)
		}
	})

	t.Run("skips empty text after the tag", func(t *testing.T) {
		doc := ParseLRC("[00:10.00]\n[00:20.00]kept\n")
		if doc == nil || len(doc.Lines) != 1 {
			t.Fatalf("expected 1 line, got %+v", doc)
		}
	})

	t.Run("returns nil without timestamped lines", func(t *testing.T) {
		if doc := ParseLRC("plain\nlyrics\n"); doc != nil {
			t.Errorf("expected nil, got %+v", doc)
		}
	})
}

func TestOverlayDocument(t *testing.T) {
	t.Run("derives sync from timestamps", func(t *testing.T) {
		doc := OverlayDocument([]models.OverlayLine{
			{Original: "hola", Translated: "hello", TimestampMs: models.Ms(0)},
			{Original: "mundo", Translated: "world", TimestampMs: models.Ms(5000)},
		})

		if !doc.Synced {
			t.Error("expected synced overlay document")
		}
		if doc.Lines[1].Text != "mundo" {
			t.Errorf("expected original text, got %q", doc.Lines[1].Text)
		}
	})

	t.Run("unsynced when no line has a timestamp", func(t *testing.T) {
		doc := OverlayDocument([]models.OverlayLine{{Original: "hola", Translated: "hello"}})
		if doc.Synced {
			t.Error("expected unsynced overlay document")
		}
	})
}

func TestCenterOffset(t *testing.T) {
	uniform := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	cases := []struct {
		name       string
		heights    []int
		active     int
		viewHeight int
		want       int
	}{
		{"centers a middle line", uniform, 5, 4, 3},
		{"clamps at the top", uniform, 0, 4, 0},
		{"clamps at the bottom", uniform, 9, 4, 6},
		{"double-height lines", []int{2, 2, 2, 2, 2}, 2, 4, 3},
		{"unresolved active", uniform, -1, 4, -1},
		{"active out of range", uniform, 10, 4, -1},
		{"zero view height", uniform, 5, 0, -1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := CenterOffset(tc.heights, tc.active, tc.viewHeight); got != tc.want {
				t.Errorf("expected offset %d, got %d", tc.want, got)
			}
		})
	}
}

func TestCoordinator(t *testing.T) {
	heights := []int{1, 1, 1, 1, 1, 1, 1, 1, 1, 1}

	t.Run("fires on first resolution", func(t *testing.T) {
		c := NewCoordinator()
		offset, changed := c.Update(heights, 5, 4)
		if !changed {
			t.Fatal("expected first resolution to fire")
		}
		if offset != 3 {
			t.Errorf("expected offset 3, got %d", offset)
		}
	})

	t.Run("fires once per index", func(t *testing.T) {
		c := NewCoordinator()
		c.Update(heights, 5, 4)

		if _, changed := c.Update(heights, 5, 4); changed {
			t.Error("expected repeat index to be a no-op")
		}
		if _, changed := c.Update(heights, 6, 4); !changed {
			t.Error("expected index change to fire")
		}
	})

	t.Run("ignores unresolved index", func(t *testing.T) {
		c := NewCoordinator()
		if _, changed := c.Update(heights, -1, 4); changed {
			t.Error("expected unresolved index to be a no-op")
		}
	})

	t.Run("reset re-fires for the same index", func(t *testing.T) {
		c := NewCoordinator()
		c.Update(heights, 5, 4)
		c.Reset()

		if _, changed := c.Update(heights, 5, 4); !changed {
			t.Error("expected post-reset resolution to fire")
		}
	})
}
