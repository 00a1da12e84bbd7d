package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mbenard/tricalc/internal/metrics"
	"github.com/mbenard/tricalc/internal/triangle"
)

// StatsModel renders the system panel: heap and GC figures, system load,
// and a sparkline of the best accumulated value per triangle row.
type StatsModel struct {
	mem       MemStatsMsg
	sys       SysStatsMsg
	haveMem   bool
	haveSys   bool
	rows      int
	cells     int
	rowMaxima []float64
	width     int
	height    int
}

// NewStatsModel creates the stats panel for the given triangle.
func NewStatsModel(tri *triangle.Triangle) StatsModel {
	stats := triangle.ComputeStats(tri)
	return StatsModel{
		rows:      stats.Height,
		cells:     stats.Cells,
		rowMaxima: rowAccumulatorMaxima(tri),
	}
}

// SetSize updates the panel's outer dimensions.
func (m *StatsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// UpdateMem records a runtime memory sample.
func (m *StatsModel) UpdateMem(msg MemStatsMsg) {
	m.mem = msg
	m.haveMem = true
}

// UpdateSys records a system load sample.
func (m *StatsModel) UpdateSys(msg SysStatsMsg) {
	m.sys = msg
	m.haveSys = true
}

// View renders the panel.
func (m StatsModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("System"))
	b.WriteString("\n")

	line := func(label, value string) {
		b.WriteString(metricLabelStyle.Render(fmt.Sprintf("%-11s", label)))
		b.WriteString(metricValueStyle.Render(value))
		b.WriteString("\n")
	}

	if m.haveMem {
		line("Heap", fmt.Sprintf("%s / %s",
			metrics.FormatBytes(m.mem.HeapAlloc), metrics.FormatBytes(m.mem.HeapSys)))
		line("GC", fmt.Sprintf("%d cycles, %s paused",
			m.mem.NumGC, formatPause(m.mem.PauseTotalNs)))
		line("Goroutines", fmt.Sprintf("%d", m.mem.Goroutines))
	} else {
		line("Heap", "sampling...")
	}

	if m.haveSys {
		line("CPU", fmt.Sprintf("%.1f%%", m.sys.CPUPercent))
		line("Memory", fmt.Sprintf("%.1f%% (%s)",
			m.sys.MemPercent, metrics.FormatBytes(m.sys.MemUsed)))
	}

	line("Cells", fmt.Sprintf("%d in %d rows", m.cells, m.rows))

	if len(m.rowMaxima) > 0 {
		sparkWidth := m.width - 4 - 11
		if sparkWidth > 0 {
			spark := RenderSparkline(ScaleTo100(Downsample(m.rowMaxima, sparkWidth)))
			b.WriteString(metricLabelStyle.Render(fmt.Sprintf("%-11s", "Row max")))
			b.WriteString(chartBarStyle.Render(spark))
			b.WriteString("\n")
		}
	}

	return panelStyle.Width(m.width - 2).Height(m.height - 2).Render(strings.TrimRight(b.String(), "\n"))
}

func formatPause(ns uint64) string {
	return time.Duration(ns).Round(10 * time.Microsecond).String()
}

// rowAccumulatorMaxima walks the triangle top-down and records, for each
// row, the largest accumulated path value that can reach it. The series
// grows monotonically for positive cells and feeds the Row max sparkline.
func rowAccumulatorMaxima(tri *triangle.Triangle) []float64 {
	height := tri.Height()
	if height == 0 {
		return nil
	}

	acc := []int64{tri.At(0, 0)}
	maxima := make([]float64, height)
	maxima[0] = float64(acc[0])

	for i := 1; i < height; i++ {
		next := make([]int64, i+1)
		for j := 0; j <= i; j++ {
			best := int64(0)
			switch {
			case j == 0:
				best = acc[0]
			case j == i:
				best = acc[j-1]
			default:
				best = acc[j-1]
				if acc[j] > best {
					best = acc[j]
				}
			}
			next[j] = best + tri.At(i, j)
		}
		acc = next
		rowBest := acc[0]
		for _, v := range acc[1:] {
			if v > rowBest {
				rowBest = v
			}
		}
		maxima[i] = float64(rowBest)
	}
	return maxima
}
