package tui

import (
	"time"

	"github.com/agbru/eulercalc/internal/orchestration"
)

// SweepProgressMsg reports a completed block of precisions.
type SweepProgressMsg struct {
	Progress   orchestration.SweepProgress
	Generation uint64
}

// SweepDoneMsg carries the final report of a sweep.
type SweepDoneMsg struct {
	Report     orchestration.SweepReport
	Err        error
	Generation uint64
}

// ContextCancelledMsg is sent when the run's context ends.
type ContextCancelledMsg struct {
	Err        error
	Generation uint64
}

// TickMsg drives periodic sampling.
type TickMsg time.Time

// MemStatsMsg carries a runtime memory sample.
type MemStatsMsg struct {
	Alloc        uint64
	HeapSys      uint64
	NumGC        uint32
	PauseTotalNs uint64
	NumGoroutine int
}

// SysStatsMsg carries a system-wide CPU and memory sample.
type SysStatsMsg struct {
	CPUPercent float64
	MemPercent float64
}
