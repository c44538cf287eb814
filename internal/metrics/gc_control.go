package metrics

import (
	"math"
	"runtime"
	"runtime/debug"

	"github.com/rs/zerolog"
)

// GCMode controls the garbage collector during a calculation.
type GCMode string

const (
	GCModeAuto       GCMode = "auto"
	GCModeAggressive GCMode = "aggressive"
	GCModeDisabled   GCMode = "disabled"
)

// GCModes lists the accepted mode names.
var GCModes = []string{string(GCModeAuto), string(GCModeAggressive), string(GCModeDisabled)}

// GCAutoThreshold is the precision from which the auto mode suspends the
// collector. Below it the digit buffers are small enough for the default
// pacing.
const GCAutoThreshold = 1_000_000

// GCController suspends the garbage collector for the length of a large
// calculation and restores it afterwards. A soft memory limit of three times
// the starting footprint stays in force meanwhile.
type GCController struct {
	mode              GCMode
	originalGCPercent int
	active            bool
	logger            zerolog.Logger
	start             MemorySnapshot
	end               MemorySnapshot
}

// NewGCController creates a controller for mode and the requested number
// of decimal places. Unknown modes behave like "disabled".
func NewGCController(mode string, places int) *GCController {
	gc := &GCController{mode: GCMode(mode), logger: zerolog.Nop()}
	switch gc.mode {
	case GCModeAggressive:
		gc.active = true
	case GCModeAuto:
		gc.active = places >= GCAutoThreshold
	}
	return gc
}

// SetLogger configures the logger for GC control events.
func (gc *GCController) SetLogger(l zerolog.Logger) {
	gc.logger = l
}

// Active reports whether Begin will suspend the collector.
func (gc *GCController) Active() bool { return gc.active }

// Begin suspends the collector if the controller is active.
func (gc *GCController) Begin() {
	if !gc.active {
		return
	}
	gc.start = Snapshot()
	gc.originalGCPercent = debug.SetGCPercent(-1)
	if limit := int64(gc.start.Sys) * 3; limit > 0 {
		debug.SetMemoryLimit(limit)
	}
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.start.HeapAlloc).
		Msg("gc disabled")
}

// End restores the collector settings and runs a collection.
func (gc *GCController) End() {
	if !gc.active {
		return
	}
	gc.end = Snapshot()
	debug.SetGCPercent(gc.originalGCPercent)
	debug.SetMemoryLimit(math.MaxInt64)
	runtime.GC()
	gc.logger.Debug().
		Str("mode", string(gc.mode)).
		Uint64("heap_alloc_bytes", gc.end.HeapAlloc).
		Uint64("total_alloc_bytes", gc.end.TotalAlloc-gc.start.TotalAlloc).
		Uint32("gc_cycles", gc.end.NumGC-gc.start.NumGC).
		Msg("gc re-enabled")
}

// Stats returns the allocation and collection deltas between Begin and End.
// They are zero when the controller was inactive.
func (gc *GCController) Stats() MemoryUsage {
	return MemoryUsage{
		Allocated:    gc.end.TotalAlloc - gc.start.TotalAlloc,
		PeakHeap:     gc.end.HeapAlloc,
		GCCycles:     gc.end.NumGC - gc.start.NumGC,
		PauseTotalNs: gc.end.PauseTotalNs - gc.start.PauseTotalNs,
	}
}
