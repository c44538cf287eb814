// Package config defines the eulercalc configuration, parses it from
// command-line flags and EULERCALC_ environment variables, and validates it.
package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"slices"
	"strings"
	"time"

	apperrors "github.com/agbru/eulercalc/internal/errors"
	"github.com/agbru/eulercalc/internal/euler"
	"github.com/agbru/eulercalc/internal/metrics"
)

// EnvPrefix is the prefix of every environment variable read by eulercalc.
const EnvPrefix = "EULERCALC_"

// Default configuration values.
const (
	// DefaultDigits is the default number of decimal places.
	DefaultDigits = 100
	// DefaultTimeout is the default limit for a whole run.
	DefaultTimeout = 5 * time.Minute
	// DefaultAlgo is the default algorithm selection.
	DefaultAlgo = "series"
	// DefaultSweepStep is the precision increment of a sweep.
	DefaultSweepStep = 100
	// DefaultLogLevel is the default zerolog level.
	DefaultLogLevel = "warn"
	// DefaultGCMode is the default garbage collector policy.
	DefaultGCMode = "auto"
)

// AppConfig holds the parsed configuration.
type AppConfig struct {
	// Digits is the number of decimal places to compute.
	Digits int
	// Algo is "all" or the name of a registered calculator.
	Algo string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Round renders the result rounded half-up instead of truncated.
	Round bool
	// Verify checks the result against the reference expansion.
	Verify bool
	// ReferencePath is a control file holding the reference expansion. Empty
	// selects the embedded copy.
	ReferencePath string

	// SweepTo, when positive, switches to sweep mode: every precision from
	// 1 to SweepTo is computed and checked until one is wrong.
	SweepTo int
	// SweepStep is the precision increment between two progress reports.
	SweepStep int
	// SweepWorkers is the number of concurrent sweep computations. Zero
	// means one per CPU.
	SweepWorkers int

	// Verbose displays the full expansion instead of its edges.
	Verbose bool
	// Details adds timing, memory and CPU information to the report.
	Details bool
	// Quiet prints only the result, for scripting.
	Quiet bool
	// OutputFile, when set, receives the result.
	OutputFile string
	// NoColor disables colours. NO_COLOR is honoured too.
	NoColor bool
	// TUI runs sweeps in the interactive dashboard.
	TUI bool
	// Interactive starts the REPL.
	Interactive bool
	// LogLevel is the zerolog level name.
	LogLevel string
	// GCMode is the garbage collector policy during a calculation: "auto"
	// suspends it for large precisions, "aggressive" always, "disabled"
	// never.
	GCMode string
}

// ToCalculationOptions converts the configuration into calculator options.
func (c AppConfig) ToCalculationOptions() euler.Options {
	return euler.Options{Round: c.Round}
}

// SweepMode reports whether a sweep was requested.
func (c AppConfig) SweepMode() bool { return c.SweepTo > 0 }

// Validate checks the semantic consistency of the configuration against the
// registered algorithm names.
func (c AppConfig) Validate(availableAlgos []string) error {
	if c.Digits <= 0 {
		return apperrors.NewConfigError("number of decimal places must be strictly positive: %d", c.Digits)
	}
	if c.Digits > euler.MaxDecimalPlaces {
		return apperrors.NewConfigError("number of decimal places cannot exceed %d: %d", euler.MaxDecimalPlaces, c.Digits)
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout value must be strictly positive")
	}
	if c.SweepTo < 0 {
		return apperrors.NewConfigError("sweep upper bound cannot be negative: %d", c.SweepTo)
	}
	if c.SweepTo > euler.MaxDecimalPlaces {
		return apperrors.NewConfigError("sweep upper bound cannot exceed %d: %d", euler.MaxDecimalPlaces, c.SweepTo)
	}
	if c.SweepStep <= 0 {
		return apperrors.NewConfigError("sweep step must be strictly positive: %d", c.SweepStep)
	}
	if c.SweepWorkers < 0 {
		return apperrors.NewConfigError("sweep workers cannot be negative: %d", c.SweepWorkers)
	}
	if c.Quiet && c.Interactive {
		return apperrors.NewConfigError("--quiet cannot be combined with --interactive")
	}
	if c.Round && (c.Verify || c.SweepMode()) {
		return apperrors.NewConfigError("--round cannot be combined with --verify or --sweep-to: the reference expansion is truncated")
	}
	if c.SweepMode() && c.Algo == "all" {
		return apperrors.NewConfigError("a sweep needs a single algorithm, not 'all'")
	}
	if !slices.Contains(metrics.GCModes, c.GCMode) {
		return apperrors.NewConfigError("unrecognized GC mode: '%s'. Valid modes are: [%s]", c.GCMode, strings.Join(metrics.GCModes, ", "))
	}
	if c.Algo != "all" && !slices.Contains(availableAlgos, c.Algo) {
		return apperrors.NewConfigError("unrecognized algorithm: '%s'. Valid algorithms are: 'all' or [%s]", c.Algo, strings.Join(availableAlgos, ", "))
	}
	return nil
}

// ParseConfig parses args (typically os.Args[1:]) into an AppConfig, applies
// environment overrides for the flags not set on the command line, and
// validates the result. Usage and errors are written to errorWriter.
func ParseConfig(programName string, args []string, errorWriter io.Writer, availableAlgos []string) (AppConfig, error) {
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errorWriter)
	algoHelp := fmt.Sprintf("Algorithm to use: 'all' or one of [%s].", strings.Join(availableAlgos, ", "))

	config := AppConfig{}
	fs.IntVar(&config.Digits, "digits", DefaultDigits, "Number of decimal places of e to compute.")
	fs.IntVar(&config.Digits, "d", DefaultDigits, "Number of decimal places (shorthand).")
	fs.StringVar(&config.Algo, "algo", DefaultAlgo, algoHelp)
	fs.DurationVar(&config.Timeout, "timeout", DefaultTimeout, "Maximum execution time.")
	fs.BoolVar(&config.Round, "round", false, "Round the last digit half-up instead of truncating.")
	fs.BoolVar(&config.Verify, "verify", false, "Check the result against the reference expansion.")
	fs.StringVar(&config.ReferencePath, "reference", "", "Control file with the reference expansion (default: embedded, 1,000,000 places).")
	fs.IntVar(&config.SweepTo, "sweep-to", 0, "Check every precision from 1 to this value and stop at the first wrong one.")
	fs.IntVar(&config.SweepStep, "sweep-step", DefaultSweepStep, "Precision increment between two sweep progress reports.")
	fs.IntVar(&config.SweepWorkers, "sweep-workers", 0, "Concurrent sweep computations (0: one per CPU).")
	fs.BoolVar(&config.Verbose, "verbose", false, "Display the full expansion (can be very long).")
	fs.BoolVar(&config.Verbose, "v", false, "Display the full expansion (shorthand).")
	fs.BoolVar(&config.Details, "details", false, "Display timing, memory and CPU details.")
	fs.BoolVar(&config.Quiet, "quiet", false, "Quiet mode - print only the result.")
	fs.BoolVar(&config.Quiet, "q", false, "Quiet mode (shorthand).")
	fs.StringVar(&config.OutputFile, "output", "", "Write the result to this file.")
	fs.StringVar(&config.OutputFile, "o", "", "Output file path (shorthand).")
	fs.BoolVar(&config.NoColor, "no-color", false, "Disable colored output (also respects NO_COLOR env var).")
	fs.BoolVar(&config.TUI, "tui", false, "Run sweeps in the interactive dashboard.")
	fs.BoolVar(&config.Interactive, "interactive", false, "Start in interactive REPL mode.")
	fs.StringVar(&config.LogLevel, "log-level", DefaultLogLevel, "Log level: debug, info, warn, error, disabled.")
	fs.StringVar(&config.GCMode, "gc-mode", DefaultGCMode, "Garbage collector policy: auto, aggressive, disabled.")

	setCustomUsage(fs)

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&config, fs)

	config.Algo = strings.ToLower(config.Algo)
	config.GCMode = strings.ToLower(config.GCMode)
	if err := config.Validate(availableAlgos); err != nil {
		fmt.Fprintln(errorWriter, "Configuration error:", err)
		fs.Usage()
		return AppConfig{}, errors.Join(errors.New("invalid configuration"), err)
	}
	return config, nil
}
