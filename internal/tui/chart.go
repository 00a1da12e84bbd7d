package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/mbenard/tricalc/internal/format"
)

// sparklineLabelWidth is the space reserved left of the CPU/MEM sparklines
// for their label and latest reading.
const sparklineLabelWidth = 17

// minSparklineHeight is the panel height below which the CPU/MEM
// sparklines are dropped to keep the progress bar visible.
const minSparklineHeight = 10

// ChartModel renders the progress panel: an overall progress bar with ETA,
// a braille plot of progress over time, and CPU/MEM sparklines.
type ChartModel struct {
	progressHistory *RingBuffer
	cpuHistory      *RingBuffer
	memHistory      *RingBuffer
	averageProgress float64
	eta             time.Duration
	haveData        bool
	done            bool
	finalDuration   time.Duration
	width           int
	height          int
}

// NewChartModel creates an empty progress chart.
func NewChartModel() ChartModel {
	return ChartModel{
		progressHistory: NewRingBuffer(120),
		cpuHistory:      NewRingBuffer(60),
		memHistory:      NewRingBuffer(60),
	}
}

// SetSize updates the panel's outer dimensions and resizes the sample
// buffers so the sparklines exactly fill the available width.
func (m *ChartModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	sparkWidth := w - sparklineLabelWidth
	if sparkWidth > 0 {
		m.cpuHistory.Resize(sparkWidth)
		m.memHistory.Resize(sparkWidth)
		// Braille packs two samples per character column.
		m.progressHistory.Resize(sparkWidth * 2)
	}
}

// AddDataPoint records one aggregated progress update.
func (m *ChartModel) AddDataPoint(value, average float64, eta time.Duration) {
	m.averageProgress = average
	m.eta = eta
	m.progressHistory.Push(average * 100)
	m.haveData = true
}

// UpdateSysStats records one CPU/memory sample pair.
func (m *ChartModel) UpdateSysStats(cpuPercent, memPercent float64) {
	m.cpuHistory.Push(cpuPercent)
	m.memHistory.Push(memPercent)
}

// SetDone pins the bar at 100% and shows the final duration in place of
// the ETA.
func (m *ChartModel) SetDone(total time.Duration) {
	m.done = true
	m.finalDuration = total
	m.averageProgress = 1.0
	m.progressHistory.Push(100)
}

// Reset clears all samples for a fresh run.
func (m *ChartModel) Reset() {
	m.progressHistory.Reset()
	m.cpuHistory.Reset()
	m.memHistory.Reset()
	m.averageProgress = 0
	m.eta = 0
	m.haveData = false
	m.done = false
	m.finalDuration = 0
}

// View renders the panel.
func (m ChartModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Progress Chart"))
	b.WriteString("\n")

	if bar := m.renderProgressBar(); bar != "" {
		b.WriteString(bar)
		b.WriteString("\n")
	}

	if m.done {
		b.WriteString(metricValueStyle.Render(
			fmt.Sprintf("Completed in %s", format.FormatExecutionDuration(m.finalDuration))))
	} else {
		b.WriteString(metricLabelStyle.Render("ETA: "))
		b.WriteString(metricValueStyle.Render(m.etaText()))
	}
	b.WriteString("\n")

	if rows := m.brailleRows(); rows > 0 && m.progressHistory.Len() > 1 {
		for _, line := range RenderBrailleChart(m.progressHistory.Slice(), m.width-4, rows) {
			b.WriteString(chartBarStyle.Render(line))
			b.WriteString("\n")
		}
	}

	if m.height >= minSparklineHeight {
		b.WriteString(m.renderSysLine("CPU", m.cpuHistory, cpuSparklineStyle))
		b.WriteString("\n")
		b.WriteString(m.renderSysLine("MEM", m.memHistory, memSparklineStyle))
	}

	return panelStyle.Width(m.width - 2).Height(m.height - 2).Render(strings.TrimRight(b.String(), "\n"))
}

// renderProgressBar draws the overall bar, or nothing when the panel is
// too narrow to hold one.
func (m ChartModel) renderProgressBar() string {
	barWidth := m.width - 12
	if barWidth < 5 {
		return ""
	}
	filled := int(m.averageProgress * float64(barWidth))
	if filled < 0 {
		filled = 0
	}
	if filled > barWidth {
		filled = barWidth
	}
	return chartBarStyle.Render(strings.Repeat("█", filled)) +
		chartEmptyStyle.Render(strings.Repeat("░", barWidth-filled)) +
		fmt.Sprintf(" %5.1f%%", m.averageProgress*100)
}

func (m ChartModel) etaText() string {
	if !m.haveData || m.eta <= 0 {
		return "estimating..."
	}
	return format.FormatETA(m.eta)
}

// brailleRows is how many text rows remain for the history plot after the
// title, bar, ETA line and any sparklines.
func (m ChartModel) brailleRows() int {
	used := 2 + 3
	if m.height >= minSparklineHeight {
		used += 2
	}
	rows := m.height - used
	if rows < 0 {
		rows = 0
	}
	return rows
}

func (m ChartModel) renderSysLine(label string, history *RingBuffer, style lipgloss.Style) string {
	var b strings.Builder
	b.WriteString(metricLabelStyle.Render(fmt.Sprintf("%-4s", label)))
	b.WriteString(metricValueStyle.Render(fmt.Sprintf("%5.1f%% ", history.Last())))
	b.WriteString(style.Render(RenderSparkline(history.Slice())))
	return b.String()
}
