package format

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"
)

func TestFormatExecutionDuration(t *testing.T) {
	t.Parallel()
	tests := []struct {
		d    time.Duration
		want string
	}{
		{500 * time.Microsecond, "500µs"},
		{42 * time.Millisecond, "42ms"},
		{1500 * time.Millisecond, "1.5s"},
		{2 * time.Minute, "2m0s"},
	}
	for _, tt := range tests {
		if got := FormatExecutionDuration(tt.d); got != tt.want {
			t.Errorf("FormatExecutionDuration(%v) = %q, want %q", tt.d, got, tt.want)
		}
	}
}

func TestFormatCount(t *testing.T) {
	t.Parallel()
	tests := map[int]string{
		0:        "0",
		7:        "7",
		999:      "999",
		1000:     "1,000",
		100000:   "100,000",
		1000000:  "1,000,000",
		12345678: "12,345,678",
		-4200:    "-4,200",
	}
	for n, want := range tests {
		if got := FormatCount(n); got != want {
			t.Errorf("FormatCount(%d) = %q, want %q", n, got, want)
		}
	}
}

func TestDigitsPerSecond(t *testing.T) {
	t.Parallel()
	if got := DigitsPerSecond(1000, 2*time.Second); got != 500 {
		t.Errorf("DigitsPerSecond = %f, want 500", got)
	}
	if got := DigitsPerSecond(1000, 0); got != 0 {
		t.Errorf("DigitsPerSecond with zero duration = %f, want 0", got)
	}
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name  string
		input uint64
		want  string
	}{
		{"zero", 0, "0 B"},
		{"bytes", 512, "512 B"},
		{"just_below_KB", 1023, "1023 B"},
		{"exact_1KB", 1024, "1.0 KB"},
		{"kilobytes", 1024 * 5, "5.0 KB"},
		{"megabytes", 1024 * 1024 * 50, "50.0 MB"},
		{"gigabytes", 1024 * 1024 * 1024 * 2, "2.0 GB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := FormatBytes(tt.input); got != tt.want {
				t.Errorf("FormatBytes(%d) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestProgressState(t *testing.T) {
	t.Parallel()
	ps := NewProgressState(2)
	ps.Update(0, 0.5)
	ps.Update(1, 1.0)
	ps.Update(5, 1.0) // ignored
	if got := ps.CalculateAverage(); got != 0.75 {
		t.Errorf("CalculateAverage() = %f, want 0.75", got)
	}
	if got := NewProgressState(0).CalculateAverage(); got != 0 {
		t.Errorf("empty average = %f, want 0", got)
	}
}

func TestUpdateWithETA(t *testing.T) {
	t.Parallel()
	p := NewProgressWithETA(2)

	progress, eta := p.UpdateWithETA(0, 0.25)
	if progress != 0.125 {
		t.Errorf("progress = %f, want 0.125", progress)
	}
	if eta != 0 {
		t.Errorf("ETA right after start = %v, want 0", eta)
	}

	// Pretend the run started a while ago.
	p.startTime = time.Now().Add(-2 * time.Second)
	p.lastUpdate = time.Now().Add(-time.Second)
	progress, eta = p.UpdateWithETA(1, 0.75)
	if progress != 0.5 {
		t.Errorf("progress = %f, want 0.5", progress)
	}
	if eta <= 0 || eta > maxETA {
		t.Errorf("ETA = %v, want a positive estimate", eta)
	}
	if got := p.GetETA(); got <= 0 {
		t.Errorf("GetETA() = %v, want a positive estimate", got)
	}

	p.UpdateWithETA(0, 1)
	p.UpdateWithETA(1, 1)
	if got := p.GetETA(); got != 0 {
		t.Errorf("GetETA() after completion = %v, want 0", got)
	}
}

func TestFormatETA(t *testing.T) {
	t.Parallel()
	tests := []struct {
		eta  time.Duration
		want string
	}{
		{0, "calculating..."},
		{-time.Second, "calculating..."},
		{500 * time.Millisecond, "< 1s"},
		{42 * time.Second, "42s"},
		{2 * time.Minute, "2m"},
		{150 * time.Second, "2m30s"},
		{time.Hour, "1h"},
		{75 * time.Minute, "1h15m"},
	}
	for _, tt := range tests {
		if got := FormatETA(tt.eta); got != tt.want {
			t.Errorf("FormatETA(%v) = %q, want %q", tt.eta, got, tt.want)
		}
	}
}

func TestProgressBar(t *testing.T) {
	t.Parallel()
	tests := []struct {
		progress float64
		filled   int
	}{
		{0, 0},
		{0.5, 5},
		{1, 10},
		{1.7, 10},
		{-0.2, 0},
	}
	for _, tt := range tests {
		bar := ProgressBar(tt.progress, 10)
		if n := utf8.RuneCountInString(bar); n != 10 {
			t.Errorf("ProgressBar(%f) has %d cells, want 10", tt.progress, n)
		}
		if got := strings.Count(bar, "█"); got != tt.filled {
			t.Errorf("ProgressBar(%f) filled %d cells, want %d", tt.progress, got, tt.filled)
		}
	}
}

func TestFormatProgressBarWithETA(t *testing.T) {
	t.Parallel()
	got := FormatProgressBarWithETA(0.45, 150*time.Second, 8)
	if !strings.HasPrefix(got, " 45.00% [") || !strings.HasSuffix(got, "] ETA: 2m30s") {
		t.Errorf("unexpected rendering %q", got)
	}
}
