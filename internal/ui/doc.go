// Package ui holds the colour themes shared by the CLI and the TUI. Themes
// are ANSI escape codes for the line-oriented CLI and lipgloss colours for
// the dashboard; both honour NO_COLOR and --no-color.
package ui
