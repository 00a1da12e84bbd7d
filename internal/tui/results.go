package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/mbenard/tricalc/internal/format"
	"github.com/mbenard/tricalc/internal/orchestration"
)

// ResultsModel renders the per-rule evaluation outcomes.
type ResultsModel struct {
	results []orchestration.EvaluationResult
	err     error
	errDur  time.Duration
	rule    string
	width   int
	height  int
}

// NewResultsModel creates an empty results panel labeled with the active
// rule selection.
func NewResultsModel(rule string) ResultsModel {
	return ResultsModel{rule: rule}
}

// SetSize updates the panel's outer dimensions.
func (m *ResultsModel) SetSize(w, h int) {
	m.width = w
	m.height = h
}

// SetRule updates the active rule label.
func (m *ResultsModel) SetRule(rule string) {
	m.rule = rule
}

// SetResults stores a completed batch. Replaces any previous batch.
func (m *ResultsModel) SetResults(results []orchestration.EvaluationResult) {
	m.results = results
}

// SetError stores a batch-level failure.
func (m *ResultsModel) SetError(err error, d time.Duration) {
	m.err = err
	m.errDur = d
}

// Reset clears outcomes for a fresh run.
func (m *ResultsModel) Reset() {
	m.results = nil
	m.err = nil
	m.errDur = 0
}

// HasResults reports whether a batch has been stored.
func (m ResultsModel) HasResults() bool { return len(m.results) > 0 }

// View renders the panel.
func (m ResultsModel) View() string {
	var b strings.Builder
	b.WriteString(panelTitleStyle.Render("Results"))
	b.WriteString(metricLabelStyle.Render(fmt.Sprintf("  rule %s", m.rule)))
	b.WriteString("\n")

	switch {
	case m.err != nil:
		b.WriteString(resultErrorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		b.WriteString("\n")
		b.WriteString(metricLabelStyle.Render(
			fmt.Sprintf("after %s", format.FormatExecutionDuration(m.errDur))))
	case len(m.results) == 0:
		b.WriteString(metricLabelStyle.Render("evaluating..."))
	default:
		for i, r := range m.results {
			if i > 0 {
				b.WriteString("\n")
			}
			b.WriteString(m.renderResult(r))
		}
	}

	return panelStyle.Width(m.width - 2).Height(m.height - 2).Render(b.String())
}

func (m ResultsModel) renderResult(r orchestration.EvaluationResult) string {
	name := metricLabelStyle.Render(fmt.Sprintf("%-26s", r.Name))
	dur := metricLabelStyle.Render(fmt.Sprintf("%9s", format.FormatExecutionDuration(r.Duration)))
	if r.Err != nil {
		return name + dur + "  " + resultErrorStyle.Render(fmt.Sprintf("failed: %v", r.Err))
	}
	return name + dur + "  " + resultValueStyle.Render(fmt.Sprintf("%d", r.Value))
}
