package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/agbru/eulercalc/internal/config"
	"github.com/agbru/eulercalc/internal/euler"
	"github.com/agbru/eulercalc/internal/format"
	"github.com/agbru/eulercalc/internal/sysmon"
	"github.com/agbru/eulercalc/internal/ui"
)

// PrintExecutionConfig displays the target precision, timeout and
// environment.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	mode := "truncated"
	if cfg.Round {
		mode = "rounded"
	}
	fmt.Fprintf(out, "--- Execution Configuration ---\n")
	if cfg.SweepMode() {
		fmt.Fprintf(out, "Sweeping %se%s from 1 to %s%s%s decimal places with a timeout of %s%s%s.\n",
			ui.ColorMagenta(), ui.ColorReset(), ui.ColorMagenta(), format.FormatCount(cfg.SweepTo), ui.ColorReset(),
			ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	} else {
		fmt.Fprintf(out, "Calculating %se%s to %s%s%s decimal places (%s) with a timeout of %s%s%s.\n",
			ui.ColorMagenta(), ui.ColorReset(), ui.ColorMagenta(), format.FormatCount(cfg.Digits), ui.ColorReset(),
			mode, ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	}
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(), ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if cfg.Details {
		fmt.Fprintf(out, "CPU: %s%s%s.\n", ui.ColorCyan(), sysmon.Describe(), ui.ColorReset())
	}
}

// PrintExecutionMode displays whether one algorithm runs or several are
// compared.
func PrintExecutionMode(calculators []euler.Calculator, out io.Writer) {
	var modeDesc string
	switch {
	case len(calculators) > 1:
		modeDesc = "Parallel comparison of all algorithms"
	case len(calculators) == 1:
		modeDesc = fmt.Sprintf("Single calculation with the %s%s%s algorithm",
			ui.ColorGreen(), calculators[0].Name(), ui.ColorReset())
	default:
		modeDesc = "No algorithm selected"
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
