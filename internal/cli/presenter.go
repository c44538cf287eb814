package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/eulercalc/internal/errors"
	"github.com/agbru/eulercalc/internal/euler"
	"github.com/agbru/eulercalc/internal/format"
	"github.com/agbru/eulercalc/internal/metrics"
	"github.com/agbru/eulercalc/internal/orchestration"
	"github.com/agbru/eulercalc/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with a
// spinner and a progress bar.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress calls the package-level DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan euler.ProgressUpdate, numCalculators int, out io.Writer) {
	DisplayProgress(wg, progressChan, numCalculators, out)
}

// CLIResultPresenter implements orchestration.ResultPresenter with
// colourised terminal output.
type CLIResultPresenter struct{}

var _ orchestration.ResultPresenter = CLIResultPresenter{}

// PresentComparisonTable prints one row per algorithm. Padding is computed
// by hand because the cells carry ANSI codes.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.CalculationResult, out io.Writer) {
	fmt.Fprintf(out, "\n--- Comparison Summary ---\n")

	maxNameLen := len("Algorithm")
	maxDurationLen := len("Duration")
	for _, res := range results {
		maxNameLen = max(maxNameLen, len(res.Name))
		maxDurationLen = max(maxDurationLen, len(displayDuration(res.Duration)))
	}

	fmt.Fprintf(out, "%sAlgorithm%s%s   %sDuration%s%s   %sStatus%s\n",
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxNameLen-len("Algorithm")),
		ui.ColorUnderline(), ui.ColorReset(), padRight("", maxDurationLen-len("Duration")),
		ui.ColorUnderline(), ui.ColorReset())

	for _, res := range results {
		var status string
		if res.Err != nil {
			status = fmt.Sprintf("%s❌ Failure (%v)%s", ui.ColorRed(), res.Err, ui.ColorReset())
		} else {
			status = fmt.Sprintf("%s✅ Success%s", ui.ColorGreen(), ui.ColorReset())
		}
		duration := displayDuration(res.Duration)
		fmt.Fprintf(out, "%s%s%s%s   %s%s%s%s   %s\n",
			ui.ColorCyan(), res.Name, ui.ColorReset(), padRight("", maxNameLen-len(res.Name)),
			ui.ColorYellow(), duration, ui.ColorReset(), padRight("", maxDurationLen-len(duration)),
			status)
	}
}

// PresentResult calls DisplayResult.
func (CLIResultPresenter) PresentResult(result orchestration.CalculationResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result.Result, opts.Places, opts.Round, result.Duration, opts.Verbose, opts.Details, out)
}

// HandleError reports err with the CLI colours and returns its exit code.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleCalculationError(err, duration, out, CLIColorProvider{})
}

func displayDuration(d time.Duration) string {
	if d == 0 {
		return "< 1µs"
	}
	return format.FormatExecutionDuration(d)
}

func padRight(s string, length int) string {
	if length <= 0 {
		return s
	}
	return s + strings.Repeat(" ", length)
}

// DisplayVerification prints the outcome of a reference check and returns
// the matching exit code.
func DisplayVerification(v orchestration.Verification, source string, out io.Writer) int {
	fmt.Fprintf(out, "\n%s--- Verification against %s ---%s\n", ui.ColorBold(), source, ui.ColorReset())
	if v.Correct {
		fmt.Fprintf(out, "%s✓ All %s decimal places are correct.%s\n",
			ui.ColorGreen(), format.FormatCount(v.Places), ui.ColorReset())
		return apperrors.ExitSuccess
	}
	fmt.Fprintf(out, "%s✗ Only %s of %s decimal places are correct.%s\n",
		ui.ColorRed(), format.FormatCount(v.CorrectDigits), format.FormatCount(v.Places), ui.ColorReset())
	fmt.Fprintf(out, "First wrong digit at decimal place %s%d%s.\n", ui.ColorYellow(), v.CorrectDigits+1, ui.ColorReset())
	return apperrors.ExitErrorMismatch
}

// DisplaySweepProgress prints one line per completed block of a sweep.
func DisplaySweepProgress(p orchestration.SweepProgress, out io.Writer) {
	fmt.Fprintf(out, "  %sOK%s up to %s%s%s places (%s/%s, %s)\n",
		ui.ColorGreen(), ui.ColorReset(),
		ui.ColorCyan(), format.FormatCount(p.Precision), ui.ColorReset(),
		format.FormatCount(p.Checked), format.FormatCount(p.Total),
		format.FormatExecutionDuration(p.Elapsed))
}

// DisplaySweepReport prints the summary of a sweep and returns the exit code.
func DisplaySweepReport(r orchestration.SweepReport, out io.Writer) int {
	fmt.Fprintf(out, "\n%s--- Sweep Summary ---%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "Checked   : %s%s%s of %s precisions\n",
		ui.ColorCyan(), format.FormatCount(r.Checked), ui.ColorReset(), format.FormatCount(r.Total))
	fmt.Fprintf(out, "Duration  : %s%s%s\n", ui.ColorYellow(), format.FormatExecutionDuration(r.Duration), ui.ColorReset())
	if r.FirstFailure != 0 {
		fmt.Fprintf(out, "%sWrong expansion at %d places%s: first wrong digit at decimal place %d.\n",
			ui.ColorRed(), r.FirstFailure, ui.ColorReset(), r.Failure.CorrectDigits+1)
	} else if !r.Passed() {
		fmt.Fprintf(out, "%sSweep incomplete.%s\n", ui.ColorYellow(), ui.ColorReset())
	} else {
		fmt.Fprintf(out, "%s✓ Every precision matches the reference.%s\n", ui.ColorGreen(), ui.ColorReset())
	}
	return orchestration.SweepExitCode(r, nil)
}

// DisplayMemoryStats shows memory statistics after a calculation.
func DisplayMemoryStats(usage metrics.MemoryUsage, out io.Writer) {
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Peak heap:       %s\n", format.FormatBytes(usage.PeakHeap))
	fmt.Fprintf(out, "  Total allocated: %s\n", format.FormatBytes(usage.Allocated))
	fmt.Fprintf(out, "  GC cycles:       %d\n", usage.GCCycles)
	fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(usage.PauseTotalNs)/1e6)
}
