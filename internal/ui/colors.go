package ui

import (
	"github.com/charmbracelet/lipgloss"
)

var styles = NewPalette("#1DB954", "#FFFFFF", "#626262", "#FF5555", "#FFA500", "#7D56F4")

// struct Palette is a simple stylesheet built with named [lipgloss.Style] fields
type Palette struct {
	title      lipgloss.Style
	active     lipgloss.Style
	dim        lipgloss.Style
	err        lipgloss.Style
	warn       lipgloss.Style
	translated lipgloss.Style
	selected   lipgloss.Style
	popup      lipgloss.Style
	help       lipgloss.Style
}

func NewPalette(accent, active, dim, err, warn, alt string) *Palette {
	return &Palette{
		title:      NewBold(accent),
		active:     NewBold(active),
		dim:        NewStyle(dim),
		err:        NewBold(err),
		warn:       NewStyle(warn),
		translated: NewEm(alt),
		selected:   lipgloss.NewStyle().Reverse(true).Bold(true),
		popup: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color(accent)).
			Padding(0, 1),
		help: NewEm(dim),
	}
}

func NewStyle(fg string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(fg))
}

func NewBold(fg string) lipgloss.Style {
	return NewStyle(fg).Bold(true)
}

func NewEm(fg string) lipgloss.Style {
	return NewStyle(fg).Italic(true)
}
