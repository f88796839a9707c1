package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines the [key.Binding] mapping for the TUI.
type keyMap struct {
	up        key.Binding
	down      key.Binding
	left      key.Binding
	right     key.Binding
	enter     key.Binding
	back      key.Binding
	language  key.Binding
	overlay   key.Binding
	wordMode  key.Binding
	speak     key.Binding
	playPause key.Binding
	quit      key.Binding
}

func newKeyMap() keyMap {
	return keyMap{
		up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "prev word")),
		right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "next word")),
		enter:     key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "translate word")),
		back:      key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back")),
		language:  key.NewBinding(key.WithKeys("L"), key.WithHelp("L", "language")),
		overlay:   key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "toggle overlay")),
		wordMode:  key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "word mode")),
		speak:     key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "pronounce")),
		playPause: key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "play/pause")),
		quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.language, k.overlay, k.wordMode, k.quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.up, k.down, k.left, k.right},
		{k.language, k.overlay, k.wordMode},
		{k.enter, k.speak, k.playPause},
		{k.back, k.quit},
	}
}
