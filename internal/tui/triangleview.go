package tui

import (
	"fmt"
	"strings"

	"github.com/mbenard/tricalc/internal/triangle"
)

// TriangleModel renders the loaded triangle as a centered pyramid with the
// maximum path highlighted. Large triangles scroll vertically.
type TriangleModel struct {
	tri       *triangle.Triangle
	trace     triangle.Trace
	haveTrace bool
	showPath  bool
	offset    int
	width     int
	height    int
	cellWidth int
}

// NewTriangleModel creates the triangle panel for the given triangle.
func NewTriangleModel(tri *triangle.Triangle) TriangleModel {
	m := TriangleModel{tri: tri, showPath: true}
	if trace, err := triangle.MaxPathTrace(tri); err == nil {
		m.trace = trace
		m.haveTrace = true
	}
	stats := triangle.ComputeStats(tri)
	m.cellWidth = len(fmt.Sprintf("%d", stats.MaxVal))
	if w := len(fmt.Sprintf("%d", stats.MinVal)); w > m.cellWidth {
		m.cellWidth = w
	}
	return m
}

// SetSize updates the panel's outer dimensions.
func (m *TriangleModel) SetSize(w, h int) {
	m.width = w
	m.height = h
	m.clampOffset()
}

// TogglePath flips the path highlight on or off.
func (m *TriangleModel) TogglePath() {
	m.showPath = !m.showPath
}

// PathVisible reports whether the highlight is currently shown.
func (m TriangleModel) PathVisible() bool { return m.showPath }

// ScrollUp moves the viewport one row toward the apex.
func (m *TriangleModel) ScrollUp() {
	m.offset--
	m.clampOffset()
}

// ScrollDown moves the viewport one row toward the base.
func (m *TriangleModel) ScrollDown() {
	m.offset++
	m.clampOffset()
}

// PageUp moves the viewport one page toward the apex.
func (m *TriangleModel) PageUp() {
	m.offset -= m.visibleRows()
	m.clampOffset()
}

// PageDown moves the viewport one page toward the base.
func (m *TriangleModel) PageDown() {
	m.offset += m.visibleRows()
	m.clampOffset()
}

// GotoTop jumps to the apex.
func (m *TriangleModel) GotoTop() {
	m.offset = 0
}

// GotoBottom jumps to the base.
func (m *TriangleModel) GotoBottom() {
	m.offset = m.maxOffset()
}

// Offset returns the index of the first visible row.
func (m TriangleModel) Offset() int { return m.offset }

// visibleRows is the number of triangle rows that fit in the panel body.
// The frame costs two lines, the title one and the status line one.
func (m TriangleModel) visibleRows() int {
	v := m.height - 4
	if v < 1 {
		v = 1
	}
	return v
}

func (m TriangleModel) maxOffset() int {
	maxOff := m.tri.Height() - m.visibleRows()
	if maxOff < 0 {
		maxOff = 0
	}
	return maxOff
}

func (m *TriangleModel) clampOffset() {
	if m.offset > m.maxOffset() {
		m.offset = m.maxOffset()
	}
	if m.offset < 0 {
		m.offset = 0
	}
}

// View renders the panel.
func (m TriangleModel) View() string {
	var b strings.Builder

	pathState := "on"
	if !m.showPath {
		pathState = "off"
	}
	b.WriteString(panelTitleStyle.Render("Triangle"))
	b.WriteString(rowIndexStyle.Render(fmt.Sprintf("  path %s", pathState)))
	b.WriteString("\n")

	height := m.tri.Height()
	if height == 0 {
		b.WriteString(rowIndexStyle.Render("(empty)"))
		return panelStyle.Width(m.width - 2).Height(m.height - 2).Render(b.String())
	}
	indexWidth := len(fmt.Sprintf("%d", height))
	usable := m.width - 4 - indexWidth - 1
	if usable < m.cellWidth {
		usable = m.cellWidth
	}

	first := m.offset
	last := first + m.visibleRows()
	if last > height {
		last = height
	}

	for i := first; i < last; i++ {
		b.WriteString(m.renderRow(i, indexWidth, usable))
		b.WriteString("\n")
	}

	b.WriteString(m.statusLine(first, last, height))

	return panelStyle.Width(m.width - 2).Height(m.height - 2).Render(b.String())
}

// renderRow draws one triangle row: a dim index, pyramid indentation, and
// the cells with the path cell highlighted.
func (m TriangleModel) renderRow(i, indexWidth, usable int) string {
	var row strings.Builder
	row.WriteString(rowIndexStyle.Render(fmt.Sprintf("%*d ", indexWidth, i)))

	rowLen := i + 1
	indent := (m.tri.Width() - rowLen) * (m.cellWidth + 1) / 2
	plainLen := indent

	// Indentation past the panel edge means the row is wider than the
	// viewport, so the pyramid degrades to left-aligned rows.
	if indent > usable {
		indent = 0
		plainLen = 0
	}
	row.WriteString(spaces(indent))

	for j := 0; j < rowLen; j++ {
		cell := fmt.Sprintf("%*d", m.cellWidth, m.tri.At(i, j))
		need := len(cell)
		if j > 0 {
			need++
		}
		if plainLen+need > usable {
			row.WriteString(rowIndexStyle.Render("…"))
			break
		}
		if j > 0 {
			row.WriteString(" ")
		}
		if m.showPath && m.haveTrace && m.trace.Positions[i] == j {
			row.WriteString(pathCellStyle.Render(cell))
		} else {
			row.WriteString(cellStyle.Render(cell))
		}
		plainLen += need
	}
	return row.String()
}

func (m TriangleModel) statusLine(first, last, height int) string {
	status := fmt.Sprintf("rows %d-%d of %d", first, last-1, height)
	if m.haveTrace && m.showPath {
		status += fmt.Sprintf("  path sum %d", m.trace.Sum)
	}
	return rowIndexStyle.Render(status)
}
