package metrics

import (
	"testing"

	"github.com/agbru/eulercalc/internal/euler"
)

func TestMemoryCollector_Snapshot(t *testing.T) {
	t.Parallel()

	mc := NewMemoryCollector()
	snap := mc.Snapshot()

	if snap.HeapAlloc == 0 {
		t.Error("HeapAlloc should be > 0")
	}
	if snap.Sys == 0 {
		t.Error("Sys should be > 0")
	}
}

var sink string

func TestMemoryCollector_Usage(t *testing.T) {
	mc := NewMemoryCollector()

	x, err := euler.New(2000)
	if err != nil {
		t.Fatal(err)
	}
	sink = x.String()

	usage := mc.Usage()
	// Two 2000-digit buffers at least.
	if usage.Allocated < 4000 {
		t.Errorf("Allocated = %d, want at least 4000 bytes", usage.Allocated)
	}
	if usage.PeakHeap == 0 {
		t.Error("PeakHeap should be > 0")
	}
}
