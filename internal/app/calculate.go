package app

import (
	"context"
	"fmt"
	"io"

	"github.com/rs/zerolog/log"

	"github.com/agbru/eulercalc/internal/cli"
	apperrors "github.com/agbru/eulercalc/internal/errors"
	"github.com/agbru/eulercalc/internal/metrics"
	"github.com/agbru/eulercalc/internal/orchestration"
	"github.com/agbru/eulercalc/internal/ui"
)

// runCalculate computes e once with the selected calculators.
func (a *Application) runCalculate(ctx context.Context, out io.Writer) int {
	ctx, cancel := SetupLifecycle(ctx, a.Config.Timeout)
	defer cancel.Cleanup()

	calculatorsToRun := orchestration.GetCalculatorsToRun(a.Config.Algo, a.Factory)

	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(calculatorsToRun, out)
	}

	var progressReporter orchestration.ProgressReporter
	progressOut := out
	if a.Config.Quiet {
		progressOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
	} else {
		progressReporter = cli.CLIProgressReporter{}
	}

	gc := metrics.NewGCController(a.Config.GCMode, a.Config.Digits)
	gc.SetLogger(log.Logger)
	collector := metrics.NewMemoryCollector()
	gc.Begin()
	results := orchestration.ExecuteCalculations(ctx, calculatorsToRun, a.Config.Digits,
		a.Config.ToCalculationOptions(), progressReporter, progressOut)
	gc.End()

	outputCfg := cli.OutputConfig{
		OutputFile: a.Config.OutputFile,
		Quiet:      a.Config.Quiet,
		Verbose:    a.Config.Verbose,
		Details:    a.Config.Details,
		Round:      a.Config.Round,
	}
	exitCode := a.analyzeResultsWithOutput(results, outputCfg, out)
	if exitCode == apperrors.ExitSuccess && a.Config.Details && !a.Config.Quiet {
		cli.DisplayMemoryStats(collector.Usage(), out)
	}
	return exitCode
}

func (a *Application) analyzeResultsWithOutput(results []orchestration.CalculationResult, outputCfg cli.OutputConfig, out io.Writer) int {
	bestResult := findBestResult(results)

	if outputCfg.Quiet && bestResult != nil {
		if code := a.verifyIfRequested(bestResult.Result, io.Discard); code != apperrors.ExitSuccess {
			return code
		}
		cli.DisplayQuietResult(out, bestResult.Result)
		if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
			return apperrors.ExitErrorGeneric
		}
		return apperrors.ExitSuccess
	}

	presOpts := orchestration.PresentationOptions{
		Places:  a.Config.Digits,
		Round:   a.Config.Round,
		Verbose: a.Config.Verbose,
		Details: a.Config.Details,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, cli.CLIResultPresenter{}, out)
	if bestResult == nil || exitCode != apperrors.ExitSuccess {
		return exitCode
	}

	if code := a.verifyIfRequested(bestResult.Result, out); code != apperrors.ExitSuccess {
		return code
	}
	if err := a.saveResultIfNeeded(bestResult, outputCfg); err != nil {
		return apperrors.ExitErrorGeneric
	}
	if outputCfg.OutputFile != "" {
		fmt.Fprintf(out, "\n%s✓ Result saved to: %s%s%s\n",
			ui.ColorGreen(), ui.ColorCyan(), outputCfg.OutputFile, ui.ColorReset())
	}
	return exitCode
}

// verifyIfRequested checks result against the reference when --verify is set.
func (a *Application) verifyIfRequested(result string, out io.Writer) int {
	if !a.Config.Verify {
		return apperrors.ExitSuccess
	}
	v, err := orchestration.VerifyResult(a.Oracle, result)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	return cli.DisplayVerification(v, a.Oracle.Source().Name(), out)
}

func findBestResult(results []orchestration.CalculationResult) *orchestration.CalculationResult {
	var bestResult *orchestration.CalculationResult
	for i := range results {
		if results[i].Err == nil {
			if bestResult == nil || results[i].Duration < bestResult.Duration {
				bestResult = &results[i]
			}
		}
	}
	return bestResult
}

func (a *Application) saveResultIfNeeded(res *orchestration.CalculationResult, cfg cli.OutputConfig) error {
	if cfg.OutputFile == "" {
		return nil
	}
	if err := cli.WriteResultToFile(res.Result, a.Config.Digits, res.Duration, res.Name, cfg); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error saving result: %v\n", err)
		return err
	}
	return nil
}
