package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderCentered centers the provided content within the given width/height box.
func renderCentered(width, height int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Height(height).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}

// renderMuted renders text in muted color (utility wrapper).
func renderMuted(text string) string {
	return lipgloss.NewStyle().Foreground(MutedColor).Render(text)
}

// renderHelp renders help/instructional text consistently.
func renderHelp(text string) string {
	return HelpStyle.Render(text)
}

func renderSeparator(width int) string {
	if width < 1 {
		width = 1
	}
	return SeparatorStyle.Render(strings.Repeat("─", width))
}

func renderCheckbox(label string, checked bool) string {
	box := "[ ]"
	if checked {
		box = "[x]"
	}
	return label + " " + box
}

// emphasize renders title with every word equal to filter (ignoring case)
// emphasized. Words are separated by single spaces.
func emphasize(filter, title string, base lipgloss.Style) string {
	words := strings.Split(title, " ")
	for i, w := range words {
		if filter != "" && strings.EqualFold(w, filter) {
			words[i] = base.Inherit(EmphasisStyle).Render(w)
		} else {
			words[i] = base.Render(w)
		}
	}
	return strings.Join(words, base.Render(" "))
}
