package tui

import (
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/agbru/eulercalc/internal/orchestration"
)

// programRef is a shared reference to the tea.Program. bubbletea copies the
// model on every Update, so sweep goroutines reach the program through this
// pointer.
type programRef struct {
	mu      sync.RWMutex
	program *tea.Program
}

// SetProgram sets the program reference.
func (r *programRef) SetProgram(p *tea.Program) {
	r.mu.Lock()
	r.program = p
	r.mu.Unlock()
}

// Send forwards msg to the program. It is a no-op before SetProgram.
func (r *programRef) Send(msg tea.Msg) {
	r.mu.RLock()
	p := r.program
	r.mu.RUnlock()
	if p != nil {
		p.Send(msg)
	}
}

// TUISweepObserver implements orchestration.SweepObserver by sending
// SweepProgressMsg to the dashboard.
type TUISweepObserver struct {
	ref        *programRef
	generation uint64
}

var _ orchestration.SweepObserver = (*TUISweepObserver)(nil)

// OnSweepProgress implements orchestration.SweepObserver.
func (o *TUISweepObserver) OnSweepProgress(p orchestration.SweepProgress) {
	o.ref.Send(SweepProgressMsg{Progress: p, Generation: o.generation})
}
