// Package app wires configuration, calculators, the reference oracle and the
// presentation layers into the eulercalc command.
package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/agbru/eulercalc/internal/cli"
	"github.com/agbru/eulercalc/internal/config"
	apperrors "github.com/agbru/eulercalc/internal/errors"
	"github.com/agbru/eulercalc/internal/euler"
	"github.com/agbru/eulercalc/internal/logging"
	"github.com/agbru/eulercalc/internal/reference"
	"github.com/agbru/eulercalc/internal/service"
	"github.com/agbru/eulercalc/internal/ui"
)

// Application represents the eulercalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   euler.CalculatorFactory
	Oracle    *reference.Oracle
	ErrWriter io.Writer
	// Input feeds the interactive session; nil means os.Stdin.
	Input io.Reader
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom CalculatorFactory for the application.
func WithFactory(f euler.CalculatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithOracle sets the reference oracle, overriding --reference.
func WithOracle(o *reference.Oracle) AppOption {
	return func(a *Application) { a.Oracle = o }
}

// WithInput sets the reader of the interactive session.
func WithInput(r io.Reader) AppOption {
	return func(a *Application) { a.Input = r }
}

// New creates an Application by parsing command-line arguments. args[0] is
// the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = euler.GlobalFactory()
	}

	programName := "eulercalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}
	app.Config = cfg
	if app.Oracle == nil {
		app.Oracle = reference.NewOracle(reference.SourceFor(cfg.ReferencePath))
	}
	return app, nil
}

// Run executes the configured mode and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level := logging.ParseLevel(a.Config.LogLevel)
	zerolog.SetGlobalLevel(level)
	log.Logger = logging.NewLevelLogger(a.ErrWriter, "eulercalc", a.Config.LogLevel).Zerolog()
	ui.InitTheme(a.Config.NoColor)

	log.Debug().
		Str("algo", a.Config.Algo).
		Int("places", a.Config.Digits).
		Str("reference", a.Oracle.Source().Name()).
		Msg("starting")

	switch {
	case a.Config.Interactive:
		return a.runREPL(ctx, out)
	case a.Config.SweepMode():
		return a.runSweep(ctx, out)
	}
	return a.runCalculate(ctx, out)
}

// runREPL starts the interactive session. Each command carries its own
// timeout, so the session itself is only bounded by signals.
func (a *Application) runREPL(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := SetupSignals(ctx)
	defer stopSignals()

	svc, err := service.NewCalculatorService(a.Factory, euler.MaxDecimalPlaces, service.DefaultCacheSize)
	if err != nil {
		return apperrors.HandleCalculationError(err, 0, a.ErrWriter, cli.CLIColorProvider{})
	}
	repl := cli.NewREPL(svc, a.Factory.List(), a.Oracle, cli.REPLConfig{
		DefaultAlgo: a.Config.Algo,
		Timeout:     a.Config.Timeout,
		Round:       a.Config.Round,
		Verbose:     a.Config.Verbose,
	})
	if a.Input != nil {
		repl.SetInput(a.Input)
	}
	repl.SetOutput(out)
	repl.Start(ctx)
	return apperrors.ExitSuccess
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
