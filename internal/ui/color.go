// Package ui provides terminal styling utilities for scriptutils.
package ui

import (
	"strconv"

	"github.com/fatih/color"
)

// Color function types for styled output.
var (
	// Success is used for passed tasks (green).
	Success = color.New(color.FgGreen).SprintFunc()
	// Error is used for errors and failures (bright red).
	Error = color.New(color.FgHiRed).SprintFunc()
	// Warning is used for task lines and warnings (yellow).
	Warning = color.New(color.FgYellow).SprintFunc()
	// Info is used for informational messages (cyan).
	Info = color.New(color.FgCyan).SprintFunc()
	// Highlight is used for quoted values such as paths (bright yellow).
	Highlight = color.New(color.FgHiYellow).SprintFunc()
	// Bold is used for emphasis (bold white).
	Bold = color.New(color.Bold).SprintFunc()
	// Dim is used for secondary information (faint).
	Dim = color.New(color.Faint).SprintFunc()
	// Skipped is used for skipped tasks (faint green).
	Skipped = color.New(color.FgGreen, color.Faint).SprintFunc()
	// Alert is used for alerts that need attention (magenta).
	Alert = color.New(color.FgHiMagenta).SprintFunc()
	// Added is used for diff lines present only in the second file.
	Added = color.New(color.FgGreen).SprintFunc()
	// Removed is used for diff lines present only in the first file.
	Removed = color.New(color.FgRed).SprintFunc()
)

// Status symbols.
const (
	SymbolTask    = "∙"
	SymbolSuccess = "✓"
	SymbolError   = "✕"
	SymbolWarning = "⚠"
	SymbolSkipped = "✓"
	SymbolAlert   = "🔥"
)

// StatusSuccess returns a green checkmark with optional message.
func StatusSuccess(msg string) string {
	if msg == "" {
		return Success(SymbolSuccess)
	}
	return Success(SymbolSuccess + " " + msg)
}

// StatusError returns a red X with optional message.
func StatusError(msg string) string {
	if msg == "" {
		return Error(SymbolError)
	}
	return Error(SymbolError + " " + msg)
}

// StatusWarning returns a yellow warning with optional message.
func StatusWarning(msg string) string {
	if msg == "" {
		return Warning(SymbolWarning)
	}
	return Warning(SymbolWarning + " " + msg)
}

// StatusSkipped returns a dimmed checkmark with optional message.
func StatusSkipped(msg string) string {
	if msg == "" {
		return Skipped(SymbolSkipped)
	}
	return Skipped(SymbolSkipped + " " + msg)
}

// StatusTask returns a task bullet followed by msg.
func StatusTask(msg string) string {
	return Dim(SymbolTask) + " " + Warning(msg)
}

// Quote renders a value the way task lines display paths and patterns.
func Quote(s string) string {
	return Highlight(strconv.Quote(s))
}

// DisableColors disables all color output.
// This is useful for piping output or for users who prefer no colors.
func DisableColors() {
	color.NoColor = true
}

// EnableColors enables color output.
func EnableColors() {
	color.NoColor = false
}

// IsColorEnabled returns whether colors are currently enabled.
func IsColorEnabled() bool {
	return !color.NoColor
}
