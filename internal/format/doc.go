// Package format renders durations, digit counts and progress for the CLI
// and the TUI.
package format
