// Package tui implements the interactive dashboard shown while sweeping a
// range of precisions against the reference expansion.
package tui

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	apperrors "github.com/agbru/eulercalc/internal/errors"
	"github.com/agbru/eulercalc/internal/euler"
	"github.com/agbru/eulercalc/internal/format"
	"github.com/agbru/eulercalc/internal/orchestration"
	"github.com/agbru/eulercalc/internal/sysmon"
)

// Layout constants for the dashboard.
const (
	headerHeight       = 1
	footerHeight       = 1
	progressHeight     = 5
	metricsHeight      = 5
	minLogHeight       = 3
	progressBarWidth   = 40
	tickInterval       = 500 * time.Millisecond
	maxLogEntries      = 500
	logTimestampLayout = "15:04:05"
)

type logKind int

const (
	logInfo logKind = iota
	logSuccess
	logError
)

type logEntry struct {
	at   time.Time
	kind logKind
	text string
}

// sweepState holds the state of the sweep currently displayed.
type sweepState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	generation uint64
	progress   orchestration.SweepProgress
	report     *orchestration.SweepReport
	done       bool
	exitCode   int
}

// Model is the root bubbletea model of the sweep dashboard.
type Model struct {
	header  HeaderModel
	metrics MetricsModel
	footer  FooterModel
	keymap  KeyMap

	sweepState

	logs      []logEntry
	logOffset int // lines scrolled up from the tail

	parentCtx context.Context
	calc      euler.Calculator
	verifier  orchestration.Verifier
	opts      orchestration.SweepOptions
	ref       *programRef
	paused    bool

	width  int
	height int
}

// NewModel creates a dashboard that sweeps opts with calc.
func NewModel(parentCtx context.Context, calc euler.Calculator, verifier orchestration.Verifier, opts orchestration.SweepOptions, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)
	keymap := DefaultKeyMap()
	m := Model{
		header:  NewHeaderModel(version),
		metrics: NewMetricsModel(),
		footer:  NewFooterModel(keymap.ShortHelp()),
		keymap:  keymap,
		sweepState: sweepState{
			ctx:      ctx,
			cancel:   cancel,
			exitCode: apperrors.ExitSuccess,
		},
		parentCtx: parentCtx,
		calc:      calc,
		verifier:  verifier,
		opts:      opts,
		ref:       &programRef{},
	}
	m.addStartLog()
	return m
}

// Init starts the sweep and the samplers.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startSweepCmd(m.ref, m.ctx, m.calc, m.verifier, m.opts, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case SweepProgressMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.progress = msg.Progress
		m.addLog(logSuccess, fmt.Sprintf("OK up to %s places (%s/%s)",
			format.FormatCount(msg.Progress.Precision),
			format.FormatCount(msg.Progress.Checked),
			format.FormatCount(msg.Progress.Total)))
		return m, nil

	case SweepDoneMsg:
		if msg.Generation != m.generation {
			return m, nil
		}
		m.finish(msg.Report, msg.Err)
		return m, nil

	case TickMsg:
		if m.paused {
			return m, tickCmd()
		}
		return m, tea.Batch(tickCmd(), sampleMemStatsCmd(), sampleSysStatsCmd())

	case MemStatsMsg:
		m.metrics.UpdateMemStats(msg)
		return m, nil

	case SysStatsMsg:
		m.metrics.UpdateSysStats(msg)
		return m, nil

	case ContextCancelledMsg:
		// A finished sweep stays on screen until the user quits.
		if msg.Generation != m.generation || m.done {
			return m, nil
		}
		m.exitCode = orchestration.SweepExitCode(orchestration.SweepReport{}, msg.Err)
		m.done = true
		m.header.SetDone()
		m.footer.SetDone(true)
		return m, tea.Quit
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if !m.done {
			m.exitCode = apperrors.ExitErrorCanceled
		}
		m.cancel()
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		m.footer.SetPaused(m.paused)
		return m, nil

	case key.Matches(msg, m.keymap.Reset):
		m.cancel()
		m.generation++
		m.ctx, m.cancel = context.WithCancel(m.parentCtx)
		m.progress = orchestration.SweepProgress{}
		m.report = nil
		m.done = false
		m.exitCode = apperrors.ExitSuccess
		m.paused = false
		m.logs = nil
		m.logOffset = 0
		m.header.Reset()
		m.metrics = NewMetricsModel()
		m.footer.SetDone(false)
		m.footer.SetError(false)
		m.footer.SetPaused(false)
		m.layoutPanels()
		m.addStartLog()
		return m, tea.Batch(
			startSweepCmd(m.ref, m.ctx, m.calc, m.verifier, m.opts, m.generation),
			watchContextCmd(m.ctx, m.generation),
		)

	case key.Matches(msg, m.keymap.Up):
		if m.logOffset < len(m.logs)-1 {
			m.logOffset++
		}
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		if m.logOffset > 0 {
			m.logOffset--
		}
		return m, nil
	}
	return m, nil
}

// finish records the outcome of the current sweep.
func (m *Model) finish(r orchestration.SweepReport, err error) {
	m.done = true
	m.report = &r
	m.exitCode = orchestration.SweepExitCode(r, err)
	m.header.SetDone()
	m.footer.SetDone(true)

	switch {
	case err != nil && errors.Is(err, context.Canceled):
		m.addLog(logError, "Sweep canceled")
	case err != nil:
		m.footer.SetError(true)
		m.addLog(logError, "Sweep aborted: "+err.Error())
	case r.FirstFailure != 0:
		m.footer.SetError(true)
		m.addLog(logError, fmt.Sprintf("Wrong expansion at %d places: first wrong digit at decimal place %d",
			r.FirstFailure, r.Failure.CorrectDigits+1))
	default:
		m.addLog(logSuccess, fmt.Sprintf("All %s precisions match the reference (%s)",
			format.FormatCount(r.Total), format.FormatExecutionDuration(r.Duration)))
	}
}

func (m *Model) addStartLog() {
	m.addLog(logInfo, fmt.Sprintf("Sweeping %s..%s places with %s",
		format.FormatCount(m.opts.From), format.FormatCount(m.opts.To), m.calc.Name()))
}

func (m *Model) addLog(kind logKind, text string) {
	m.logs = append(m.logs, logEntry{at: time.Now(), kind: kind, text: text})
	over := len(m.logs) - maxLogEntries
	if over > 0 {
		m.logs = m.logs[over:]
	}
	// Keep a scrolled view on the same entries while lines arrive.
	if m.logOffset > 0 && over <= 0 {
		m.logOffset++
	}
	m.logOffset = min(m.logOffset, max(0, len(m.logs)-1))
}

// ExitCode returns the process exit code for the current state.
func (m Model) ExitCode() int { return m.exitCode }

// View renders the dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}
	return lipgloss.JoinVertical(lipgloss.Left,
		m.header.View(),
		m.progressView(),
		m.metrics.View(),
		m.logView(),
		m.footer.View(),
	)
}

func (m Model) progressView() string {
	total := m.opts.To - m.opts.From + 1
	fraction := float64(m.progress.Checked) / float64(max(1, total))
	bar := barFilledStyle.Render(strings.Repeat("█", int(fraction*progressBarWidth))) +
		barEmptyStyle.Render(strings.Repeat("░", progressBarWidth-int(fraction*progressBarWidth)))

	rate := 0.0
	if m.progress.Elapsed > 0 {
		rate = float64(m.progress.Checked) / m.progress.Elapsed.Seconds()
	}
	eta := "-"
	if rate > 0 && !m.done {
		eta = format.FormatETA(time.Duration(float64(total-m.progress.Checked) / rate * float64(time.Second)))
	}

	lines := []string{
		fmt.Sprintf("  %s %s", metricLabelStyle.Render("Algorithm:"), metricValueStyle.Render(m.calc.Name())),
		fmt.Sprintf("  %s %6.2f%%  %s/%s",
			bar, fraction*100, format.FormatCount(m.progress.Checked), format.FormatCount(total)),
		fmt.Sprintf("  %s %s  %s %.1f/s  %s %s",
			metricLabelStyle.Render("Verified up to:"), metricValueStyle.Render(format.FormatCount(m.progress.Precision)),
			metricLabelStyle.Render("Rate:"), rate,
			metricLabelStyle.Render("ETA:"), eta),
	}
	return panelStyle.Width(max(0, m.width-2)).Render(strings.Join(lines, "\n"))
}

func (m Model) logHeight() int {
	return max(minLogHeight, m.height-headerHeight-footerHeight-progressHeight-metricsHeight-2)
}

func (m Model) logView() string {
	h := m.logHeight()
	end := max(0, min(len(m.logs), len(m.logs)-m.logOffset))
	start := max(0, end-h)

	lines := make([]string, 0, h)
	for _, e := range m.logs[start:end] {
		text := e.text
		switch e.kind {
		case logSuccess:
			text = logSuccessStyle.Render(text)
		case logError:
			text = logErrorStyle.Render(text)
		}
		lines = append(lines, " "+logTimeStyle.Render(e.at.Format(logTimestampLayout))+" "+text)
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return panelStyle.Width(max(0, m.width-2)).Render(strings.Join(lines, "\n"))
}

func (m *Model) layoutPanels() {
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.metrics.SetSize(m.width, metricsHeight)
}

// Run shows the dashboard while sweeping opts with calc, and returns the
// process exit code once the user quits.
func Run(ctx context.Context, calc euler.Calculator, verifier orchestration.Verifier, opts orchestration.SweepOptions, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, calc, verifier, opts, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}
	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startSweepCmd runs the sweep and reports its outcome as a SweepDoneMsg.
func startSweepCmd(ref *programRef, ctx context.Context, calc euler.Calculator, verifier orchestration.Verifier, opts orchestration.SweepOptions, gen uint64) tea.Cmd {
	return func() tea.Msg {
		observer := &TUISweepObserver{ref: ref, generation: gen}
		report, err := orchestration.Sweep(ctx, calc, verifier, opts, observer)
		return SweepDoneMsg{Report: report, Err: err, Generation: gen}
	}
}

// watchContextCmd waits for ctx to end and reports it.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(tickInterval, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		var ms runtime.MemStats
		runtime.ReadMemStats(&ms)
		return MemStatsMsg{
			Alloc:        ms.Alloc,
			HeapSys:      ms.HeapSys,
			NumGC:        ms.NumGC,
			PauseTotalNs: ms.PauseTotalNs,
			NumGoroutine: runtime.NumGoroutine(),
		}
	}
}

func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{CPUPercent: s.CPUPercent, MemPercent: s.MemPercent}
	}
}
