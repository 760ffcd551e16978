package main

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/wordwrap"
)

var keyword = lipgloss.NewStyle().
	Foreground(lipgloss.AdaptiveColor{Light: "#8b2def", Dark: "#ad58fc"}).
	Render

// paragraph formats help text: wrapped and lightly indented.
func paragraph(s string) string {
	return lipgloss.NewStyle().
		Padding(0, 0, 0, 2).
		Render(wordwrap.String(s, 78))
}
