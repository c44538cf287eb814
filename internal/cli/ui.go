package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/eulercalc/internal/euler"
	"github.com/agbru/eulercalc/internal/format"
	"github.com/agbru/eulercalc/internal/orchestration"
	"github.com/agbru/eulercalc/internal/ui"
)

const (
	// TruncationLimit is the number of decimal places above which a result is
	// shown by its edges only, unless --verbose is set.
	TruncationLimit = 100
	// DisplayEdges is the number of digits shown at each end of a truncated
	// expansion.
	DisplayEdges = 25
	// ProgressRefreshRate is the refresh period of the progress line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth is the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the terminal spinner so DisplayProgress can be tested.
type Spinner interface {
	Start()
	Stop()
	UpdateSuffix(suffix string)
}

type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start()                     { rs.s.Start() }
func (rs *realSpinner) Stop()                      { rs.s.Stop() }
func (rs *realSpinner) UpdateSuffix(suffix string) { rs.s.Suffix = suffix }

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress renders a spinner with the average progress and ETA of
// numCalculators concurrent calculations until progressChan is closed, then
// prints a final 100% line. It calls wg.Done on return.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan euler.ProgressUpdate, numCalculators int, out io.Writer) {
	defer wg.Done()
	aggregator := orchestration.NewProgressAggregator(numCalculators)
	if aggregator == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	label := "Progress"
	if aggregator.IsMultiCalculator() {
		label = "Avg progress"
	}

	s := newSpinner(spinner.WithWriter(out))
	s.Start()
	stopped := false
	defer func() {
		if !stopped {
			s.Stop()
		}
	}()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				stopped = true
				fmt.Fprintf(out, "%s: %6.2f%% [%s] ETA: %s\n", label, 100.0, format.ProgressBar(1, ProgressBarWidth), "< 1s")
				return
			}
			aggregator.Update(update)
		case <-ticker.C:
			avg := aggregator.CalculateAverage()
			s.UpdateSuffix(fmt.Sprintf(" %s: %6.2f%% [%s] ETA: %s",
				label, avg*100, format.ProgressBar(avg, ProgressBarWidth), format.FormatETA(aggregator.GetETA())))
		}
	}
}

// DisplayResult prints an expansion of e. Long expansions are reduced to
// their first and last DisplayEdges digits unless verbose is set. With
// details, timing and throughput are added.
func DisplayResult(result string, places int, round bool, duration time.Duration, verbose, details bool, out io.Writer) {
	mode := "truncated"
	if round {
		mode = "rounded"
	}

	if details {
		fmt.Fprintf(out, "\n%s--- Detailed result analysis ---%s\n", ui.ColorBold(), ui.ColorReset())
		durationStr := format.FormatExecutionDuration(duration)
		if duration == 0 {
			durationStr = "< 1µs"
		}
		fmt.Fprintf(out, "Calculation time      : %s%s%s\n", ui.ColorGreen(), durationStr, ui.ColorReset())
		fmt.Fprintf(out, "Decimal places        : %s%s%s (%s)\n", ui.ColorCyan(), format.FormatCount(places), ui.ColorReset(), mode)
		if rate := format.DigitsPerSecond(places, duration); rate > 0 {
			fmt.Fprintf(out, "Throughput            : %s%.0f%s digits/s\n", ui.ColorCyan(), rate, ui.ColorReset())
		}
		fmt.Fprintf(out, "Guard digits          : %s%d%s\n", ui.ColorCyan(), euler.GuardDigits(places), ui.ColorReset())
	}

	fmt.Fprintf(out, "\n%s--- Calculated value ---%s\n", ui.ColorBold(), ui.ColorReset())
	switch {
	case verbose:
		fmt.Fprintf(out, "e (%s%s places, %s%s) =\n%s%s%s\n",
			ui.ColorMagenta(), format.FormatCount(places), mode, ui.ColorReset(), ui.ColorGreen(), result, ui.ColorReset())
	case places > TruncationLimit:
		fmt.Fprintf(out, "e (%s%s places, %s%s) = %s%s...%s%s\n",
			ui.ColorMagenta(), format.FormatCount(places), mode, ui.ColorReset(),
			ui.ColorGreen(), result[:DisplayEdges+2], result[len(result)-DisplayEdges:], ui.ColorReset())
		fmt.Fprintf(out, "(Tip: use the %s-v%s or %s--verbose%s option to display every digit)\n",
			ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
	default:
		fmt.Fprintf(out, "e (%s%d places, %s%s) = %s%s%s\n",
			ui.ColorMagenta(), places, mode, ui.ColorReset(), ui.ColorGreen(), result, ui.ColorReset())
	}
}
