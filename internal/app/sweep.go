package app

import (
	"context"
	"fmt"
	"io"

	"github.com/agbru/eulercalc/internal/cli"
	apperrors "github.com/agbru/eulercalc/internal/errors"
	"github.com/agbru/eulercalc/internal/orchestration"
	"github.com/agbru/eulercalc/internal/tui"
	"github.com/agbru/eulercalc/internal/ui"
)

// runSweep checks every precision from 1 to --sweep-to against the
// reference, in the dashboard when --tui is set.
func (a *Application) runSweep(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	calc, err := a.Factory.Get(a.Config.Algo)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	opts := orchestration.SweepOptions{
		From:    1,
		To:      a.Config.SweepTo,
		Step:    a.Config.SweepStep,
		Workers: a.Config.SweepWorkers,
	}

	if err := a.Oracle.Warm(opts.To + 2); err != nil {
		return apperrors.HandleCalculationError(err, 0, out, cli.CLIColorProvider{})
	}

	if a.Config.TUI {
		return tui.Run(ctx, calc, a.Oracle, opts, Version)
	}

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		fmt.Fprintf(out, "Sweeping with %s%s%s against %s.\n\n",
			ui.ColorGreen(), calc.Name(), ui.ColorReset(), a.Oracle.Source().Name())
	}

	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
	}
	observer := orchestration.SweepObserverFunc(func(p orchestration.SweepProgress) {
		cli.DisplaySweepProgress(p, progressOut)
	})

	report, err := orchestration.Sweep(ctx, calc, a.Oracle, opts, observer)
	if err != nil {
		return apperrors.HandleCalculationError(err, report.Duration, out, cli.CLIColorProvider{})
	}
	if a.Config.Quiet {
		return orchestration.SweepExitCode(report, nil)
	}
	return cli.DisplaySweepReport(report, out)
}
