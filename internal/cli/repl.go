package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/eulercalc/internal/format"
	"github.com/agbru/eulercalc/internal/orchestration"
	"github.com/agbru/eulercalc/internal/service"
	"github.com/agbru/eulercalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultAlgo is the algorithm used until changed with "algo".
	DefaultAlgo string
	// Timeout bounds each calculation.
	Timeout time.Duration
	// Round starts the session in rounding mode.
	Round bool
	// Verbose prints every digit.
	Verbose bool
}

// REPL is an interactive session computing e at successive precisions.
type REPL struct {
	config      REPLConfig
	service     service.Service
	algos       []string
	verifier    orchestration.Verifier
	currentAlgo string
	round       bool
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a session over svc. algos lists the accepted algorithm
// names; verifier backs the "verify" command.
func NewREPL(svc service.Service, algos []string, verifier orchestration.Verifier, config REPLConfig) *REPL {
	currentAlgo := config.DefaultAlgo
	if (currentAlgo == "" || currentAlgo == "all") && len(algos) > 0 {
		currentAlgo = algos[0]
	}
	return &REPL{
		config:      config,
		service:     svc,
		algos:       algos,
		verifier:    verifier,
		currentAlgo: currentAlgo,
		round:       config.Round,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader.
func (r *REPL) SetInput(in io.Reader) { r.in = in }

// SetOutput sets a custom output writer.
func (r *REPL) SetOutput(out io.Writer) { r.out = out }

// Start reads and runs commands until "exit", EOF or ctx is done.
func (r *REPL) Start(ctx context.Context) {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)
	for ctx.Err() == nil {
		fmt.Fprint(r.out, ui.ColorGreen()+"e> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && input != "") {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			return
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}
		if !r.processCommand(ctx, input) {
			return
		}
	}
}

func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s        %se Calculator - Interactive Mode%s                    %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %scalc <n>%s        - Compute e to n decimal places\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sverify <n>%s      - Compute e to n places and check it against the reference\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %salgo <name>%s     - Change algorithm (%s)\n", ui.ColorYellow(), ui.ColorReset(), strings.Join(r.algos, ", "))
	fmt.Fprintf(r.out, "  %sround on|off%s    - Round the last digit or truncate\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s          - Display current settings\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s            - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s     - Exit interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// processCommand runs one command. It returns false when the session ends.
func (r *REPL) processCommand(ctx context.Context, input string) bool {
	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "calc", "c":
		if places, ok := r.parsePlaces("calc", args); ok {
			r.calculate(ctx, places)
		}
	case "verify", "v":
		if places, ok := r.parsePlaces("verify", args); ok {
			r.verify(ctx, places)
		}
	case "algo", "a":
		r.cmdAlgo(args)
	case "round":
		r.cmdRound(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		if places, err := strconv.Atoi(cmd); err == nil {
			r.calculate(ctx, places)
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}
	return true
}

func (r *REPL) parsePlaces(cmd string, args []string) (int, bool) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: %s <n>%s\n", ui.ColorRed(), cmd, ui.ColorReset())
		return 0, false
	}
	places, err := strconv.Atoi(args[0])
	if err != nil || places <= 0 {
		fmt.Fprintf(r.out, "%sInvalid number of decimal places: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
		return 0, false
	}
	return places, true
}

func (r *REPL) compute(ctx context.Context, places int, round bool) (string, time.Duration, bool) {
	ctx, cancel := context.WithTimeout(ctx, r.config.Timeout)
	defer cancel()

	start := time.Now()
	result, err := r.service.Calculate(ctx, r.currentAlgo, places, round)
	duration := time.Since(start)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return "", duration, false
	}
	return result, duration, true
}

func (r *REPL) calculate(ctx context.Context, places int) {
	result, duration, ok := r.compute(ctx, places, r.round)
	if !ok {
		return
	}
	fmt.Fprintf(r.out, "  Time: %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	if !r.config.Verbose && places > TruncationLimit {
		fmt.Fprintf(r.out, "  e = %s%s...%s%s (truncated)\n",
			ui.ColorGreen(), result[:DisplayEdges+2], result[len(result)-DisplayEdges:], ui.ColorReset())
	} else {
		fmt.Fprintf(r.out, "  e = %s%s%s\n", ui.ColorGreen(), result, ui.ColorReset())
	}
}

// verify always checks the truncated expansion, the form of the reference.
func (r *REPL) verify(ctx context.Context, places int) {
	if r.verifier == nil {
		fmt.Fprintf(r.out, "%sNo reference available.%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}
	result, _, ok := r.compute(ctx, places, false)
	if !ok {
		return
	}
	v, err := orchestration.VerifyResult(r.verifier, result)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}
	if v.Correct {
		fmt.Fprintf(r.out, "  %s✓ %d places correct%s\n", ui.ColorGreen(), v.Places, ui.ColorReset())
		return
	}
	fmt.Fprintf(r.out, "  %s✗ first wrong digit at decimal place %d%s\n", ui.ColorRed(), v.CorrectDigits+1, ui.ColorReset())
}

func (r *REPL) cmdAlgo(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: algo <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.algos, ", "))
		return
	}
	name := strings.ToLower(args[0])
	for _, a := range r.algos {
		if a == name {
			r.currentAlgo = name
			fmt.Fprintf(r.out, "Algorithm changed to: %s%s%s\n", ui.ColorGreen(), name, ui.ColorReset())
			return
		}
	}
	fmt.Fprintf(r.out, "%sUnknown algorithm: %s%s\n", ui.ColorRed(), name, ui.ColorReset())
	fmt.Fprintf(r.out, "Available algorithms: %s\n", strings.Join(r.algos, ", "))
}

func (r *REPL) cmdRound(args []string) {
	if len(args) == 1 {
		switch strings.ToLower(args[0]) {
		case "on":
			r.round = true
		case "off":
			r.round = false
		default:
			fmt.Fprintf(r.out, "%sUsage: round on|off%s\n", ui.ColorRed(), ui.ColorReset())
			return
		}
	} else {
		r.round = !r.round
	}
	fmt.Fprintf(r.out, "Rounding: %s%s%s\n", ui.ColorGreen(), onOff(r.round), ui.ColorReset())
}

func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent configuration:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Algorithm:  %s%s%s\n", ui.ColorCyan(), r.currentAlgo, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:    %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	fmt.Fprintf(r.out, "  Rounding:   %s%s%s\n", ui.ColorCyan(), onOff(r.round), ui.ColorReset())
	fmt.Fprintln(r.out)
}

func onOff(b bool) string {
	if b {
		return "on"
	}
	return "off"
}
