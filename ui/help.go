package ui

import (
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/glamour/styles"
	te "github.com/muesli/termenv"
)

const helpMarkdown = `# Thermal Lab

An accessible simulation demo. Every control change is announced
through the alert queue and shown in the live region and history pane.

## Controls

| Key | Action |
| --- | ------ |
| tab / shift+tab | move focus between controls |
| ← / → | adjust the focused slider |
| shift+← / shift+→ | adjust in larger steps |
| home / end | jump to minimum / maximum |
| digits, enter | type and commit a keypad value |
| esc | revert keypad entry, close overlays |
| enter / space | press the focused button |

## Alerts

| Key | Action |
| --- | ------ |
| m | mute or unmute announcements |
| / | filter the history pane |
| y | copy the history to the clipboard |
| e | export the history as a gzip file |
| ? | toggle this help |
| q | quit |
`

// renderHelp renders the help overlay with glamour. Style "auto" picks
// light or dark from the terminal background, like the pager does.
func renderHelp(width int, style string) (string, error) {
	if style == "" || style == styles.AutoStyle {
		if te.HasDarkBackground() {
			style = styles.DarkStyle
		} else {
			style = styles.LightStyle
		}
	}

	r, err := glamour.NewTermRenderer(
		glamour.WithStylePath(style),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		return "", err
	}
	return r.Render(helpMarkdown)
}
