package ui

import "github.com/charmbracelet/lipgloss"

type palette struct {
	fg, muted, accent, activeBg, activeFg, disabled, warn lipgloss.Color
}

var (
	lightPalette = palette{
		fg:       lipgloss.Color("#2E3440"),
		muted:    lipgloss.Color("#4C566A"),
		accent:   lipgloss.Color("#5E81AC"),
		activeBg: lipgloss.Color("#D8DEE9"),
		activeFg: lipgloss.Color("#2E3440"),
		disabled: lipgloss.Color("#A0A8B7"),
		warn:     lipgloss.Color("#BF616A"),
	}
	darkPalette = palette{
		fg:       lipgloss.Color("#D8DEE9"),
		muted:    lipgloss.Color("#81A1C1"),
		accent:   lipgloss.Color("#88C0D0"),
		activeBg: lipgloss.Color("#434C5E"),
		activeFg: lipgloss.Color("#ECEFF4"),
		disabled: lipgloss.Color("#4C566A"),
		warn:     lipgloss.Color("#BF616A"),
	}
)

type styles struct {
	frame     lipgloss.Style
	title     lipgloss.Style
	close     lipgloss.Style
	section   lipgloss.Style
	separator lipgloss.Style
	row       lipgloss.Style
	rowActive lipgloss.Style
	rowCursor lipgloss.Style
	launcher  lipgloss.Style
	disabled  lipgloss.Style
	status    lipgloss.Style
	value     lipgloss.Style
}

func newStyles(dark bool) styles {
	p := paletteFor(dark)

	return styles{
		frame: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(p.muted).
			Padding(0, framePadX),
		title:     lipgloss.NewStyle().Bold(true).Foreground(p.fg),
		close:     lipgloss.NewStyle().Foreground(p.muted),
		section:   lipgloss.NewStyle().Bold(true).Foreground(p.muted),
		separator: lipgloss.NewStyle().Foreground(p.disabled),
		row:       lipgloss.NewStyle().Foreground(p.fg),
		rowActive: lipgloss.NewStyle().Bold(true).Foreground(p.activeFg).Background(p.activeBg),
		rowCursor: lipgloss.NewStyle().Foreground(p.accent),
		launcher:  lipgloss.NewStyle().Foreground(p.fg),
		disabled:  lipgloss.NewStyle().Foreground(p.disabled).Strikethrough(true),
		status:    lipgloss.NewStyle().Foreground(p.warn),
		value:     lipgloss.NewStyle().Foreground(p.muted),
	}
}

func (p palette) sliderColor() string {
	return string(p.accent)
}

func paletteFor(dark bool) palette {
	if dark {
		return darkPalette
	}
	return lightPalette
}
