package ui

import (
	"fmt"
	"strings"

	"github.com/desertthunder/lyrx/internal/lyrics"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/overlay"
	"github.com/desertthunder/lyrx/internal/session"
	"github.com/desertthunder/lyrx/internal/shared"
	"github.com/muesli/reflow/ansi"
	"github.com/muesli/reflow/truncate"
)

// View renders the UI based on the current view state.
func (m *Model) View() string {
	if m.view == LanguageView && m.langList.Items() != nil {
		return m.langList.View()
	}

	header := m.renderHeader()
	body := m.renderBody()
	footer := m.renderFooter()
	return fmt.Sprintf("%s\n%s\n%s", header, body, footer)
}

func (m *Model) renderHeader() string {
	pb := m.orch.Playback()
	if pb == nil {
		return styles.title.Render("lyrx") + styles.dim.Render("  waiting for playback...")
	}

	status := "▌▌"
	if pb.IsPlaying {
		status = "▶"
	}
	title := styles.title.Render(fmt.Sprintf("%s %s - %s", status, pb.ArtistName, pb.TrackName))
	clock := styles.dim.Render(fmt.Sprintf("%s / %s",
		shared.FormatTimestamp(pb.ProgressMs), shared.FormatTimestamp(pb.DurationMs)))

	mode := ""
	if m.overlay.Language() != "" {
		mode = styles.translated.Render(fmt.Sprintf("  [%s, %s]", m.overlay.Language(), m.overlay.Mode()))
	}
	return fmt.Sprintf("%s  %s%s", title, clock, mode)
}

func (m *Model) renderBody() string {
	if !m.ready {
		return styles.dim.Render("loading...")
	}

	switch m.orch.State() {
	case session.StateIdle:
		return styles.dim.Render("Nothing is playing. Start something on Spotify.")
	case session.StateLoading:
		return styles.dim.Render("Fetching lyrics...")
	case session.StateError:
		return styles.err.Render("Error: " + m.orch.ErrorMessage())
	}

	if m.orch.NoLyrics() || m.displayDocument().Empty() {
		return styles.dim.Render("No lyrics available for this track.")
	}

	view := m.viewport.View()
	if m.popup != nil {
		view = m.overlayPopup(view)
	}
	return view
}

func (m *Model) renderFooter() string {
	var parts []string
	if m.overlay.Status() == overlay.StatusLoading {
		parts = append(parts, styles.warn.Render("translating..."))
	}
	if m.overlay.ErrorMessage() != "" {
		parts = append(parts, styles.err.Render(m.overlay.ErrorMessage()))
	}
	if m.wordMode {
		parts = append(parts, styles.translated.Render("word mode"))
	}
	parts = append(parts, m.help.ShortHelpView(m.keys.ShortHelp()))
	return strings.Join(parts, "  ")
}

// displayDocument returns what the main pane shows: the translated document
// in full mode once it lands, otherwise the original.
func (m *Model) displayDocument() *models.LyricsDocument {
	if m.overlay.Mode() == overlay.ModeFull && m.overlay.Status() == overlay.StatusReady {
		if doc := m.overlay.FullDocument(); doc != nil {
			return doc
		}
	}
	return m.orch.Document()
}

// activeIndex resolves the highlighted line against whichever line set is on
// screen; the overlay line count can differ from the original document's.
func (m *Model) activeIndex() int {
	pb := m.orch.Playback()
	if pb == nil {
		return -1
	}
	if m.overlayVisible() {
		return m.overlay.ActiveOverlayLine(pb.ProgressMs, pb.DurationMs)
	}
	doc := m.displayDocument()
	if doc.Empty() {
		return -1
	}
	return lyrics.ResolveActiveLine(doc, pb.ProgressMs, pb.DurationMs)
}

func (m *Model) overlayVisible() bool {
	return m.overlay.Mode() == overlay.ModeOverlay &&
		m.overlay.Status() == overlay.StatusReady &&
		len(m.overlay.OverlayLines()) > 0
}

// activeWords returns the words of the highlighted line for word mode.
func (m *Model) activeWords() []string {
	active := m.activeIndex()
	if active < 0 {
		return nil
	}
	if m.overlayVisible() {
		lines := m.overlay.OverlayLines()
		return strings.Fields(lines[active].Original)
	}
	doc := m.displayDocument()
	if active >= len(doc.Lines) {
		return nil
	}
	return strings.Fields(doc.Lines[active].Text)
}

// refreshViewport rebuilds the lyric pane and recenters when the active
// line changed since the last refresh.
func (m *Model) refreshViewport() {
	if !m.ready {
		return
	}
	content, heights := m.buildContent()
	m.viewport.SetContent(content)
	if offset, changed := m.scroll.Update(heights, m.activeIndex(), m.viewport.Height); changed {
		m.viewport.SetYOffset(offset)
	}
}

// buildContent renders every lyric line and reports per-line heights for the
// scroll coordinator.
func (m *Model) buildContent() (string, []int) {
	active := m.activeIndex()

	if m.overlayVisible() {
		lines := m.overlay.OverlayLines()
		rows := make([]string, 0, len(lines)*2)
		heights := make([]int, len(lines))
		for i, line := range lines {
			rows = append(rows, m.renderLine(line.Original, i, active))
			rows = append(rows, styles.translated.Render("  "+line.Translated))
			heights[i] = 2
		}
		return strings.Join(rows, "\n"), heights
	}

	doc := m.displayDocument()
	if doc.Empty() {
		return "", nil
	}
	rows := make([]string, len(doc.Lines))
	heights := make([]int, len(doc.Lines))
	for i, line := range doc.Lines {
		rows[i] = m.renderLine(line.Text, i, active)
		heights[i] = 1
	}
	return strings.Join(rows, "\n"), heights
}

func (m *Model) renderLine(text string, index, active int) string {
	if index == active && m.wordMode {
		return m.renderWordLine(text)
	}
	switch {
	case index == active:
		return styles.active.Render(text)
	case lyrics.NearActive(index, active):
		return text
	default:
		return styles.dim.Render(text)
	}
}

// renderWordLine highlights the selected word on the active line.
func (m *Model) renderWordLine(text string) string {
	words := strings.Fields(text)
	rendered := make([]string, len(words))
	for i, word := range words {
		if i == m.wordIdx {
			rendered[i] = styles.selected.Render(word)
		} else {
			rendered[i] = styles.active.Render(word)
		}
	}
	return strings.Join(rendered, " ")
}

// overlayPopup splices the word popup over the viewport output, clamped so
// it never renders outside the pane.
func (m *Model) overlayPopup(view string) string {
	body := m.popup.word + " → "
	switch {
	case m.popup.pending:
		body += "..."
	case m.popup.entry != nil:
		body += m.popup.entry.Translation
	default:
		body += m.popup.word
	}
	box := styles.popup.Render(body)

	boxLines := strings.Split(box, "\n")
	boxWidth := 0
	for _, l := range boxLines {
		if w := ansi.PrintableRuneWidth(l); w > boxWidth {
			boxWidth = w
		}
	}

	anchorX := m.wordColumn()
	anchorY := m.anchorRow()
	x, y := overlay.PlacePopup(anchorX, anchorY, boxWidth, len(boxLines), m.viewport.Width, m.viewport.Height)
	return spliceBox(view, boxLines, x, y)
}

// wordColumn returns the rune column where the selected word starts.
func (m *Model) wordColumn() int {
	words := m.activeWords()
	col := 0
	for i := 0; i < m.wordIdx && i < len(words); i++ {
		col += len([]rune(words[i])) + 1
	}
	return col
}

// anchorRow returns the visible row of the active line within the viewport.
func (m *Model) anchorRow() int {
	_, heights := m.buildContent()
	active := m.activeIndex()
	row := 0
	for i := 0; i < active && i < len(heights); i++ {
		row += heights[i]
	}
	row -= m.viewport.YOffset
	if row < 0 {
		row = 0
	}
	return row
}

// spliceBox overwrites rows of base with box lines starting at (x, y).
func spliceBox(base string, boxLines []string, x, y int) string {
	rows := strings.Split(base, "\n")
	for i, boxLine := range boxLines {
		row := y + i
		if row < 0 || row >= len(rows) {
			continue
		}
		prefix := truncate.String(rows[row], uint(x))
		padding := x - ansi.PrintableRuneWidth(prefix)
		if padding < 0 {
			padding = 0
		}
		rows[row] = prefix + strings.Repeat(" ", padding) + boxLine
	}
	return strings.Join(rows, "\n")
}
