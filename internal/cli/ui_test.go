package cli

import (
	"bytes"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/eulercalc/internal/euler"
)

const e120 = "2.718281828459045235360287471352662497757247093699959574966967627724076630353547594571382178525166427427466391932003059921"

type MockSpinner struct {
	mu      sync.Mutex
	started bool
	stopped bool
	suffix  string
}

func (m *MockSpinner) Start() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.started = true
}

func (m *MockSpinner) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.stopped = true
}

func (m *MockSpinner) UpdateSuffix(suffix string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.suffix = suffix
}

func TestDisplayResult(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		result      string
		places      int
		round       bool
		verbose     bool
		details     bool
		contains    []string
		notContains []string
	}{
		{
			name:     "Short",
			result:   "2.7182818285",
			places:   10,
			round:    true,
			contains: []string{"e (10 places, rounded) = 2.7182818285"},
		},
		{
			name:        "Truncated display",
			result:      e120,
			places:      120,
			contains:    []string{"e (120 places, truncated) = 2.7182818284590452353602874...", "27427466391932003059921", "Tip: use"},
			notContains: []string{"7135266249775724709369995"},
		},
		{
			name:     "Verbose",
			result:   e120,
			places:   120,
			verbose:  true,
			contains: []string{e120},
		},
		{
			name:     "Details",
			result:   "2.7182818284",
			places:   10,
			details:  true,
			contains: []string{"Detailed result analysis", "Calculation time", "Decimal places", "Guard digits          : 2"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			DisplayResult(tt.result, tt.places, tt.round, time.Millisecond, tt.verbose, tt.details, &buf)
			output := buf.String()
			for _, s := range tt.contains {
				if !strings.Contains(output, s) {
					t.Errorf("output should contain %q, got:\n%s", s, output)
				}
			}
			for _, s := range tt.notContains {
				if strings.Contains(output, s) {
					t.Errorf("output should not contain %q, got:\n%s", s, output)
				}
			}
		})
	}
}

func TestRealSpinner(t *testing.T) {
	t.Parallel()
	rs := &realSpinner{spinner.New(spinner.CharSets[11], 100*time.Millisecond, spinner.WithWriter(io.Discard))}
	rs.Start()
	rs.UpdateSuffix(" test")
	rs.Stop()
}

// Not parallel: swaps newSpinner.
func TestDisplayProgress(t *testing.T) {
	originalNewSpinner := newSpinner
	defer func() { newSpinner = originalNewSpinner }()

	mockS := &MockSpinner{}
	newSpinner = func(options ...spinner.Option) Spinner {
		return mockS
	}

	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan euler.ProgressUpdate)
	var out bytes.Buffer

	go func() {
		progressChan <- euler.ProgressUpdate{CalculatorIndex: 0, Value: 0.5}
		time.Sleep(2 * ProgressRefreshRate)
		close(progressChan)
	}()

	DisplayProgress(&wg, progressChan, 2, &out)
	wg.Wait()

	if !mockS.started || !mockS.stopped {
		t.Errorf("spinner started=%v stopped=%v", mockS.started, mockS.stopped)
	}
	if !strings.Contains(mockS.suffix, "Avg progress:  25.00%") {
		t.Errorf("suffix = %q", mockS.suffix)
	}
	if !strings.Contains(out.String(), "Avg progress: 100.00%") {
		t.Errorf("final line missing: %q", out.String())
	}
}

func TestDisplayProgress_ZeroCalculators(t *testing.T) {
	t.Parallel()
	var wg sync.WaitGroup
	wg.Add(1)
	progressChan := make(chan euler.ProgressUpdate, 1)
	progressChan <- euler.ProgressUpdate{}
	close(progressChan)

	DisplayProgress(&wg, progressChan, 0, io.Discard)
	wg.Wait()
}
