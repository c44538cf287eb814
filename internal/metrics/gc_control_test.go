package metrics

import (
	"bytes"
	"runtime/debug"
	"strings"
	"testing"

	"github.com/rs/zerolog"

	"github.com/agbru/eulercalc/internal/euler"
)

func TestNewGCController_Active(t *testing.T) {
	t.Parallel()

	tests := []struct {
		mode   string
		places int
		want   bool
	}{
		{"auto", GCAutoThreshold - 1, false},
		{"auto", GCAutoThreshold, true},
		{"aggressive", 10, true},
		{"disabled", 10 * GCAutoThreshold, false},
		{"bogus", 10 * GCAutoThreshold, false},
	}
	for _, tt := range tests {
		if got := NewGCController(tt.mode, tt.places).Active(); got != tt.want {
			t.Errorf("NewGCController(%q, %d).Active() = %v, want %v", tt.mode, tt.places, got, tt.want)
		}
	}
}

func TestGCController_RestoresSettings(t *testing.T) {
	orig := debug.SetGCPercent(77)
	defer debug.SetGCPercent(orig)

	var logs bytes.Buffer
	gc := NewGCController("aggressive", 1)
	gc.SetLogger(zerolog.New(&logs).Level(zerolog.DebugLevel))

	gc.Begin()
	if got := debug.SetGCPercent(-1); got != -1 {
		t.Errorf("GC percent during calculation = %d, want -1", got)
	}
	x, err := euler.New(1000)
	if err != nil {
		t.Fatal(err)
	}
	sink = x.String()
	gc.End()

	if got := debug.SetGCPercent(77); got != 77 {
		t.Errorf("GC percent after End = %d, want 77", got)
	}
	if gc.Stats().Allocated == 0 {
		t.Error("Stats().Allocated should be > 0")
	}
	for _, want := range []string{"gc disabled", "gc re-enabled"} {
		if !strings.Contains(logs.String(), want) {
			t.Errorf("log missing %q: %s", want, logs.String())
		}
	}
}

func TestGCController_InactiveIsNoop(t *testing.T) {
	orig := debug.SetGCPercent(55)
	defer debug.SetGCPercent(orig)

	gc := NewGCController("disabled", GCAutoThreshold)
	gc.Begin()
	gc.End()
	if got := debug.SetGCPercent(55); got != 55 {
		t.Errorf("GC percent = %d, want 55", got)
	}
	if gc.Stats() != (MemoryUsage{}) {
		t.Errorf("Stats() = %+v, want zero", gc.Stats())
	}
}
