// Package metrics reads runtime memory statistics around a calculation.
package metrics

import "runtime"

// MemorySnapshot holds a point-in-time memory reading.
type MemorySnapshot struct {
	HeapAlloc    uint64 // bytes in use by application
	Sys          uint64 // total bytes obtained from OS
	TotalAlloc   uint64 // cumulative bytes allocated
	NumGC        uint32 // number of completed GC cycles
	PauseTotalNs uint64 // cumulative GC pause time
}

// MemoryUsage is the difference between two snapshots, as reported by
// --details.
type MemoryUsage struct {
	Allocated    uint64
	PeakHeap     uint64
	GCCycles     uint32
	PauseTotalNs uint64
}

// MemoryCollector reads runtime memory statistics.
type MemoryCollector struct {
	start MemorySnapshot
}

// NewMemoryCollector creates a collector whose baseline is the current state.
func NewMemoryCollector() *MemoryCollector {
	mc := &MemoryCollector{}
	mc.start = Snapshot()
	return mc
}

// Snapshot reads current memory statistics.
func (mc *MemoryCollector) Snapshot() MemorySnapshot { return Snapshot() }

// Snapshot reads current memory statistics.
func Snapshot() MemorySnapshot {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)
	return MemorySnapshot{
		HeapAlloc:    m.HeapAlloc,
		Sys:          m.Sys,
		TotalAlloc:   m.TotalAlloc,
		NumGC:        m.NumGC,
		PauseTotalNs: m.PauseTotalNs,
	}
}

// Usage returns what was allocated since the collector was created. PeakHeap
// is the current heap size, a lower bound of the true peak.
func (mc *MemoryCollector) Usage() MemoryUsage {
	now := mc.Snapshot()
	return MemoryUsage{
		Allocated:    now.TotalAlloc - mc.start.TotalAlloc,
		PeakHeap:     max(now.HeapAlloc, mc.start.HeapAlloc),
		GCCycles:     now.NumGC - mc.start.NumGC,
		PauseTotalNs: now.PauseTotalNs - mc.start.PauseTotalNs,
	}
}
