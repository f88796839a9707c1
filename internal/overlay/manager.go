package overlay

import (
	"context"

	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/lyrics"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/shared"
)

// Mode selects how a translation is displayed.
type Mode int

const (
	ModeFull    Mode = iota // Single translated block for the whole document
	ModeOverlay             // Line-paired original/translated list
)

func (m Mode) String() string {
	if m == ModeOverlay {
		return "overlay"
	}
	return "full"
}

// Status enumerates the translation lifecycle.
type Status int

const (
	StatusNone Status = iota // No translation selected
	StatusLoading
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusLoading:
		return "loading"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "none"
	}
}

// Translator is the collaborator surface the manager needs.
type Translator interface {
	Translate(ctx context.Context, req services.TranslationRequest) (*services.TranslationResponse, error)
	TranslateLines(ctx context.Context, req services.TranslationRequest) (*services.OverlayResponse, error)
}

// Request describes one outstanding translation request. Generation must be
// echoed back to the matching Resolve call; responses from superseded
// generations are discarded.
type Request struct {
	Generation uint64
	Mode       Mode
	Payload    services.TranslationRequest
}

// Manager owns the two mutually exclusive translation states (full-document
// vs line-overlay) and their async lifecycles. At most one mode holds data at
// a time; toggling discards the other mode's in-flight and cached results.
//
// Methods are owned by the session goroutine; fetches run elsewhere and feed
// ResolveFull/ResolveOverlay back on the owner.
type Manager struct {
	translator Translator
	logger     *log.Logger

	mode       Mode
	status     Status
	lang       string // "" is the native/no-translation sentinel
	sourceLang string
	doc        *models.LyricsDocument
	generation uint64

	fullDoc       *models.LyricsDocument
	overlayLines  []models.OverlayLine
	overlaySynced bool
	errMsg        string
}

// NewManager creates a manager in the no-translation state.
func NewManager(translator Translator, sourceLang string, logger *log.Logger) *Manager {
	if logger == nil {
		logger = shared.NewLogger(nil)
	}
	return &Manager{translator: translator, sourceLang: sourceLang, logger: logger}
}

// SetLanguage selects the target language. The empty code is the native
// sentinel and clears all translation state without a network call.
func (m *Manager) SetLanguage(lang string) *Request {
	if lang == m.lang {
		return nil
	}
	m.lang = lang
	if lang == "" {
		m.clearResults()
		m.status = StatusNone
		// Supersede any in-flight request as well.
		m.generation++
		return nil
	}
	return m.trigger()
}

// SetDocument swaps the lyrics document, re-triggering translation when a
// target language is selected.
func (m *Manager) SetDocument(doc *models.LyricsDocument) *Request {
	m.doc = doc
	m.clearResults()
	if m.lang == "" {
		m.generation++
		return nil
	}
	return m.trigger()
}

// SetMode switches display modes, discarding the other mode's results.
// Switching re-triggers a request when a target language is selected.
func (m *Manager) SetMode(mode Mode) *Request {
	if mode == m.mode {
		return nil
	}
	m.mode = mode
	m.clearResults()
	if m.lang == "" {
		m.generation++
		return nil
	}
	return m.trigger()
}

// ToggleOverlay flips between full and overlay display.
func (m *Manager) ToggleOverlay() *Request {
	if m.mode == ModeOverlay {
		return m.SetMode(ModeFull)
	}
	return m.SetMode(ModeOverlay)
}

// trigger issues exactly one outstanding request for the current mode,
// superseding any in-flight one via the generation counter.
func (m *Manager) trigger() *Request {
	if m.doc.Empty() {
		m.status = StatusNone
		m.generation++
		return nil
	}

	m.generation++
	m.status = StatusLoading
	m.errMsg = ""

	payload := services.TranslationRequest{
		Lyrics:     m.doc.Text(),
		TargetLang: m.lang,
		SourceLang: m.sourceLang,
	}
	if m.doc.Synced {
		payload.Lines = m.doc.Lines
	}

	return &Request{Generation: m.generation, Mode: m.mode, Payload: payload}
}

// Run performs the fetch for a request and resolves it. Convenience for
// synchronous callers; the TUI runs Fetch* in a command goroutine instead.
func (m *Manager) Run(ctx context.Context, req *Request) {
	if req == nil {
		return
	}
	if req.Mode == ModeOverlay {
		resp, err := m.translator.TranslateLines(ctx, req.Payload)
		m.ResolveOverlay(req.Generation, resp, err)
		return
	}
	resp, err := m.translator.Translate(ctx, req.Payload)
	m.ResolveFull(req.Generation, resp, err)
}

// ResolveFull applies a whole-document translation response. Stale
// generations and mode mismatches are discarded silently.
func (m *Manager) ResolveFull(gen uint64, resp *services.TranslationResponse, err error) {
	if gen != m.generation || m.mode != ModeFull {
		m.logger.Debug("discarding stale translation", "generation", gen, "current", m.generation)
		return
	}

	if err != nil {
		m.status = StatusError
		m.errMsg = err.Error()
		return
	}

	hasTimestamps := false
	for _, line := range resp.TranslatedLines {
		if line.TimestampMs != nil {
			hasTimestamps = true
			break
		}
	}

	m.fullDoc = lyrics.NewDocument(resp.TranslatedLyrics, resp.TranslatedLines, hasTimestamps)
	m.status = StatusReady
	m.errMsg = ""
}

// ResolveOverlay applies a line-paired translation response. Stale
// generations and mode mismatches are discarded silently.
func (m *Manager) ResolveOverlay(gen uint64, resp *services.OverlayResponse, err error) {
	if gen != m.generation || m.mode != ModeOverlay {
		m.logger.Debug("discarding stale overlay translation", "generation", gen, "current", m.generation)
		return
	}

	if err != nil {
		m.status = StatusError
		m.errMsg = err.Error()
		return
	}

	m.overlayLines = resp.Lines
	m.overlaySynced = false
	for _, line := range resp.Lines {
		if line.TimestampMs != nil {
			m.overlaySynced = true
			break
		}
	}
	m.status = StatusReady
	m.errMsg = ""
}

// ActiveOverlayLine resolves the active line against the overlay line set,
// whose count and synced-ness are independent of the original document.
func (m *Manager) ActiveOverlayLine(progressMs, durationMs int) int {
	if len(m.overlayLines) == 0 {
		return -1
	}
	return lyrics.ResolveActiveLine(lyrics.OverlayDocument(m.overlayLines), progressMs, durationMs)
}

func (m *Manager) clearResults() {
	m.fullDoc = nil
	m.overlayLines = nil
	m.overlaySynced = false
	m.errMsg = ""
	m.status = StatusNone
}

// Mode returns the current display mode.
func (m *Manager) Mode() Mode { return m.mode }

// Status returns the translation lifecycle status.
func (m *Manager) Status() Status { return m.status }

// Language returns the selected target language, "" when native.
func (m *Manager) Language() string { return m.lang }

// Generation returns the current generation counter, for tests and logging.
func (m *Manager) Generation() uint64 { return m.generation }

// ErrorMessage returns the retained error for the active mode, scoped to the
// translation controls; it never affects the underlying lyrics document.
func (m *Manager) ErrorMessage() string { return m.errMsg }

// FullDocument returns the display-ready translated document in full mode.
func (m *Manager) FullDocument() *models.LyricsDocument { return m.fullDoc }

// OverlayLines returns the line-paired translation in overlay mode.
func (m *Manager) OverlayLines() []models.OverlayLine { return m.overlayLines }

// OverlaySynced reports whether any overlay line carries a timestamp.
func (m *Manager) OverlaySynced() bool { return m.overlaySynced }
