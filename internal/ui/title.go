package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// titleColor matches the bright yellow used for highlighted values.
const titleColor = lipgloss.Color("11")

// Title renders text inside a double-line box, one box line per text line.
func Title(text string) string {
	style := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		Padding(0, 1)
	if IsColorEnabled() {
		style = style.Foreground(titleColor).BorderForeground(titleColor)
	}
	return style.Render(text)
}

// Heading renders a section heading, underlined when colors are enabled.
func Heading(text string) string {
	if !IsColorEnabled() {
		return text + "\n" + strings.Repeat("─", lipgloss.Width(text))
	}
	return lipgloss.NewStyle().
		Foreground(titleColor).
		Underline(true).
		Render(text)
}
