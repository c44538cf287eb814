package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
)

// FooterModel renders the key help and the run status.
type FooterModel struct {
	keys   []key.Binding
	paused bool
	done   bool
	failed bool
	width  int
}

// NewFooterModel creates a footer listing keys.
func NewFooterModel(keys []key.Binding) FooterModel {
	return FooterModel{keys: keys}
}

// SetPaused sets the paused state.
func (f *FooterModel) SetPaused(p bool) { f.paused = p }

// SetDone sets the completed state.
func (f *FooterModel) SetDone(d bool) { f.done = d }

// SetError marks the run as failed.
func (f *FooterModel) SetError(e bool) { f.failed = e }

// SetWidth updates the available width.
func (f *FooterModel) SetWidth(w int) { f.width = w }

// View renders the footer.
func (f FooterModel) View() string {
	parts := make([]string, 0, len(f.keys))
	for _, k := range f.keys {
		h := k.Help()
		parts = append(parts, footerKeyStyle.Render(h.Key)+" "+footerDescStyle.Render(h.Desc))
	}

	var status string
	switch {
	case f.failed:
		status = statusErrorStyle.Render("FAILED")
	case f.done:
		status = statusDoneStyle.Render("DONE")
	case f.paused:
		status = statusPausedStyle.Render("PAUSED")
	default:
		status = statusRunningStyle.Render("RUNNING")
	}
	return " " + strings.Join(parts, "  ") + "   " + status
}
