package ui

import (
	"context"
	"errors"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/desertthunder/lyrx/internal/audio"
	"github.com/desertthunder/lyrx/internal/lyrics"
	"github.com/desertthunder/lyrx/internal/models"
	"github.com/desertthunder/lyrx/internal/overlay"
	"github.com/desertthunder/lyrx/internal/services"
	"github.com/desertthunder/lyrx/internal/session"
	"github.com/desertthunder/lyrx/internal/shared"
)

// ViewState represents the current view in the TUI.
type ViewState int

const (
	LyricsView ViewState = iota
	LanguageView
)

// langItem wraps [models.Language] to implement list.Item. The zero code is
// the native entry that clears translation.
type langItem struct {
	lang models.Language
}

func (i langItem) FilterValue() string { return i.lang.Name }
func (i langItem) Title() string       { return i.lang.Name }
func (i langItem) Description() string {
	if i.lang.Code == "" {
		return "show original lyrics"
	}
	return i.lang.Code
}

// wordPopup is the single visible word translation popup.
type wordPopup struct {
	ref     overlay.WordRef
	word    string
	entry   *models.WordTranslationEntry
	pending bool
}

// Model represents the TUI application state. It owns the display session
// and resolves every async result on the update loop, so orchestrator and
// overlay state stay single-goroutine.
type Model struct {
	ctx    context.Context
	logger *log.Logger

	sess    *session.Session
	ticks   <-chan session.Tick
	orch    *session.Orchestrator
	overlay *overlay.Manager
	words   *overlay.Words
	speech  *audio.Manager
	api     services.LyricsAPI
	userID  string

	view     ViewState
	width    int
	height   int
	ready    bool
	viewport viewport.Model
	scroll   *lyrics.Coordinator
	langList list.Model

	wordMode bool
	wordIdx  int
	popup    *wordPopup
	popupSub *session.Subscription

	keys keyMap
	help help.Model
	err  error
}

// Opts carries the collaborators a Model needs.
type Opts struct {
	Session *session.Session
	Overlay *overlay.Manager
	Words   *overlay.Words
	Speech  *audio.Manager
	API     services.LyricsAPI
	UserID  string
	Logger  *log.Logger
}

// NewModel creates a TUI model with the provided dependencies.
func NewModel(ctx context.Context, opts Opts) *Model {
	if opts.Logger == nil {
		opts.Logger = shared.NewLogger(nil)
	}
	return &Model{
		ctx:     ctx,
		logger:  opts.Logger,
		sess:    opts.Session,
		orch:    opts.Session.Orchestrator(),
		overlay: opts.Overlay,
		words:   opts.Words,
		speech:  opts.Speech,
		api:     opts.API,
		userID:  opts.UserID,
		scroll:  lyrics.NewCoordinator(),
		keys:    newKeyMap(),
		help:    help.New(),
	}
}

// Init starts the display session and loads the language picker. The popup
// dismissal listener registers once here and is released at teardown.
func (m *Model) Init() tea.Cmd {
	m.ticks = m.sess.Start(m.ctx)
	m.popupSub = m.sess.Subscribe(func() { m.popup = nil })
	return tea.Batch(m.waitForTick(), m.fetchLanguages())
}

// Update handles incoming messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		vpHeight := msg.Height - 6
		if vpHeight < 1 {
			vpHeight = 1
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width
			m.viewport.Height = vpHeight
		}
		if m.langList.Items() != nil {
			m.langList.SetSize(msg.Width-4, msg.Height-4)
		}
		m.refreshViewport()
		return m, nil

	case tea.KeyMsg:
		if m.view == LanguageView {
			return m.handleLanguageKeys(msg)
		}
		return m.handleLyricsKeys(msg)

	case tickMsg:
		return m.handleTick(session.Tick(msg))

	case lyricsFetchedMsg:
		m.orch.Resolve(msg.key, msg.resp, msg.err)
		m.words.Reset()
		m.dismissPopup()
		m.wordIdx = 0
		m.scroll.Reset()
		req := m.overlay.SetDocument(m.orch.Document())
		m.refreshViewport()
		return m, m.runTranslation(req)

	case translatedMsg:
		m.overlay.ResolveFull(msg.gen, msg.resp, msg.err)
		m.scroll.Reset()
		m.refreshViewport()
		return m, nil

	case overlayTranslatedMsg:
		m.overlay.ResolveOverlay(msg.gen, msg.resp, msg.err)
		m.scroll.Reset()
		m.refreshViewport()
		return m, nil

	case languagesFetchedMsg:
		if msg.err != nil {
			m.logger.Warn("failed to load languages", "error", msg.err)
			return m, nil
		}
		items := make([]list.Item, 0, len(msg.languages)+1)
		items = append(items, langItem{lang: models.Language{Name: "Original"}})
		for _, lang := range msg.languages {
			items = append(items, langItem{lang: lang})
		}
		m.langList = list.New(items, list.NewDefaultDelegate(), 0, 0)
		m.langList.Title = "Translate to"
		m.langList.SetSize(m.width-4, m.height-4)
		return m, nil

	case wordTranslatedMsg:
		m.words.Memoize(msg.ref, msg.entry)
		if m.popup != nil && m.popup.ref == msg.ref {
			entry := msg.entry
			m.popup.entry = &entry
			m.popup.pending = false
		}
		m.refreshViewport()
		return m, nil

	case speakDoneMsg:
		if msg.err != nil {
			m.logger.Warn("pronunciation failed", "error", msg.err)
		}
		return m, nil

	case playbackToggledMsg:
		if msg.err != nil {
			m.logger.Warn("playback toggle failed", "error", msg.err)
		}
		return m, nil
	}

	if m.view == LanguageView && m.langList.Items() != nil {
		var cmd tea.Cmd
		m.langList, cmd = m.langList.Update(msg)
		return m, cmd
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleTick(tick session.Tick) (tea.Model, tea.Cmd) {
	cmds := []tea.Cmd{m.waitForTick()}

	// A transient poll failure keeps the current document. Only a clean
	// snapshot or a genuine stop (ErrNotPlaying) moves the orchestrator.
	if tick.Err != nil && !errors.Is(tick.Err, shared.ErrNotPlaying) {
		m.logger.Debug("poll failed", "error", tick.Err)
		return m, tea.Batch(cmds...)
	}
	req := m.orch.Observe(tick.State)
	if req != nil {
		cmds = append(cmds, m.fetchLyrics(req))
	}
	m.refreshViewport()
	return m, tea.Batch(cmds...)
}

func (m *Model) handleLyricsKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Any key except pronunciation dismisses the popup.
	if m.popup != nil && msg.String() != "p" {
		m.dismissPopup()
		m.refreshViewport()
	}

	switch msg.String() {
	case "q", "ctrl+c":
		m.sess.Teardown()
		return m, tea.Quit
	case "L":
		if m.langList.Items() != nil {
			m.view = LanguageView
		}
		return m, nil
	case "t":
		req := m.overlay.ToggleOverlay()
		m.scroll.Reset()
		m.refreshViewport()
		return m, m.runTranslation(req)
	case "w":
		m.wordMode = !m.wordMode
		m.wordIdx = 0
		m.refreshViewport()
		return m, nil
	case "esc":
		if m.wordMode {
			m.wordMode = false
			m.refreshViewport()
		}
		return m, nil
	case " ":
		return m, m.togglePlayback()
	}

	if m.wordMode {
		switch msg.String() {
		case "left", "h":
			if m.wordIdx > 0 {
				m.wordIdx--
			}
			m.refreshViewport()
			return m, nil
		case "right", "l":
			if m.wordIdx < len(m.activeWords())-1 {
				m.wordIdx++
			}
			m.refreshViewport()
			return m, nil
		case "enter":
			return m, m.openPopup()
		case "p":
			return m, m.speakPopup()
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

func (m *Model) handleLanguageKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.sess.Teardown()
		return m, tea.Quit
	case "esc":
		m.view = LyricsView
		return m, nil
	case "enter":
		selected := m.langList.SelectedItem()
		m.view = LyricsView
		if item, ok := selected.(langItem); ok {
			req := m.overlay.SetLanguage(item.lang.Code)
			m.words.Reset()
			m.dismissPopup()
			m.scroll.Reset()
			m.refreshViewport()
			return m, m.runTranslation(req)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.langList, cmd = m.langList.Update(msg)
	return m, cmd
}

// openPopup shows the translation popup for the selected word, memoized per
// word instance.
func (m *Model) openPopup() tea.Cmd {
	words := m.activeWords()
	if len(words) == 0 || m.wordIdx >= len(words) {
		return nil
	}

	ref := overlay.WordRef{Line: m.activeIndex(), Word: m.wordIdx}
	word := overlay.CleanWord(words[m.wordIdx])
	m.popup = &wordPopup{ref: ref, word: word}

	if entry, ok := m.words.Lookup(ref); ok {
		m.popup.entry = &entry
		m.refreshViewport()
		return nil
	}
	if m.overlay.Language() == "" {
		entry := models.WordTranslationEntry{Word: word, Translation: word}
		m.popup.entry = &entry
		m.refreshViewport()
		return nil
	}

	m.popup.pending = true
	m.refreshViewport()
	target := m.overlay.Language()
	return func() tea.Msg {
		entry := m.words.Translate(m.ctx, word, target)
		return wordTranslatedMsg{ref: ref, entry: entry}
	}
}

func (m *Model) dismissPopup() {
	m.popup = nil
}

// popupSpeech picks what the pronunciation key reads aloud: the translated
// word in the target language, falling back to the original word when no
// translation exists.
func (m *Model) popupSpeech() (text, lang string, ok bool) {
	if m.popup == nil {
		return "", "", false
	}
	text = m.popup.word
	if m.popup.entry != nil && m.popup.entry.Translation != "" {
		text = m.popup.entry.Translation
	}
	if text == "" {
		return "", "", false
	}
	return text, m.overlay.Language(), true
}

func (m *Model) speakPopup() tea.Cmd {
	text, lang, ok := m.popupSpeech()
	if !ok {
		return nil
	}
	return func() tea.Msg {
		return speakDoneMsg{err: m.speech.Speak(m.ctx, text, lang)}
	}
}

func (m *Model) togglePlayback() tea.Cmd {
	state := m.orch.Playback()
	if state == nil {
		return nil
	}
	playing := state.IsPlaying
	return func() tea.Msg {
		if playing {
			return playbackToggledMsg{err: m.api.Pause(m.ctx, m.userID)}
		}
		return playbackToggledMsg{err: m.api.Play(m.ctx, m.userID)}
	}
}

func (m *Model) waitForTick() tea.Cmd {
	return func() tea.Msg {
		tick, ok := <-m.ticks
		if !ok {
			return nil
		}
		return tickMsg(tick)
	}
}

func (m *Model) fetchLyrics(req *session.FetchRequest) tea.Cmd {
	return func() tea.Msg {
		resp, err := m.api.Lyrics(m.ctx, req.TrackName, req.ArtistName)
		return lyricsFetchedMsg{key: req.Key, resp: resp, err: err}
	}
}

// runTranslation executes an overlay manager request off the update loop
// and feeds the generation-tagged result back in.
func (m *Model) runTranslation(req *overlay.Request) tea.Cmd {
	if req == nil {
		return nil
	}
	return func() tea.Msg {
		if req.Mode == overlay.ModeOverlay {
			resp, err := m.api.TranslateLines(m.ctx, req.Payload)
			return overlayTranslatedMsg{gen: req.Generation, resp: resp, err: err}
		}
		resp, err := m.api.Translate(m.ctx, req.Payload)
		return translatedMsg{gen: req.Generation, resp: resp, err: err}
	}
}

func (m *Model) fetchLanguages() tea.Cmd {
	return func() tea.Msg {
		languages, err := m.api.Languages(m.ctx)
		return languagesFetchedMsg{languages: languages, err: err}
	}
}
