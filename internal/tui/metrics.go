package tui

import (
	"fmt"
	"strings"

	"github.com/agbru/eulercalc/internal/format"
)

// sparklineSamples is the number of CPU and memory samples kept.
const sparklineSamples = 40

// MetricsModel displays runtime memory statistics and system load.
type MetricsModel struct {
	alloc        uint64
	heapSys      uint64
	numGC        uint32
	pauseTotalNs uint64
	numGoroutine int
	cpu          *RingBuffer
	mem          *RingBuffer
	width        int
	height       int
}

// NewMetricsModel creates an empty metrics panel.
func NewMetricsModel() MetricsModel {
	return MetricsModel{
		cpu: NewRingBuffer(sparklineSamples),
		mem: NewRingBuffer(sparklineSamples),
	}
}

// SetSize updates dimensions.
func (m *MetricsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMemStats stores a runtime memory sample.
func (m *MetricsModel) UpdateMemStats(msg MemStatsMsg) {
	m.alloc = msg.Alloc
	m.heapSys = msg.HeapSys
	m.numGC = msg.NumGC
	m.pauseTotalNs = msg.PauseTotalNs
	m.numGoroutine = msg.NumGoroutine
}

// UpdateSysStats appends a system load sample to the sparklines.
func (m *MetricsModel) UpdateSysStats(msg SysStatsMsg) {
	m.cpu.Push(msg.CPUPercent)
	m.mem.Push(msg.MemPercent)
}

// View renders the metrics panel.
func (m MetricsModel) View() string {
	var rows strings.Builder
	pipe := metricLabelStyle.Render(" | ")
	fmt.Fprintf(&rows, "  %s %s%s%s %s%s%s %s",
		metricLabelStyle.Render("Heap:"),
		metricValueStyle.Render(format.FormatBytes(m.alloc)+" / "+format.FormatBytes(m.heapSys)),
		pipe,
		metricLabelStyle.Render("GC:"),
		metricValueStyle.Render(fmt.Sprintf("%d (%.1fms)", m.numGC, float64(m.pauseTotalNs)/1e6)),
		pipe,
		metricLabelStyle.Render("Goroutines:"),
		metricValueStyle.Render(fmt.Sprintf("%d", m.numGoroutine)))

	fmt.Fprintf(&rows, "\n  %s %s %s",
		metricLabelStyle.Render("CPU"),
		cpuSparklineStyle.Render(RenderSparkline(m.cpu.Slice(), 100)),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.cpu.Last())))
	fmt.Fprintf(&rows, "\n  %s %s %s",
		metricLabelStyle.Render("MEM"),
		memSparklineStyle.Render(RenderSparkline(m.mem.Slice(), 100)),
		metricValueStyle.Render(fmt.Sprintf("%5.1f%%", m.mem.Last())))

	return panelStyle.
		Width(max(0, m.width-2)).
		Render(rows.String())
}
