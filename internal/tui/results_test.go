package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mbenard/tricalc/internal/orchestration"
)

func TestResultsModel_Empty(t *testing.T) {
	m := NewResultsModel("all")
	m.SetSize(50, 6)

	view := m.View()
	if !strings.Contains(view, "Results") {
		t.Error("view missing the panel title")
	}
	if !strings.Contains(view, "rule all") {
		t.Error("view missing the active rule label")
	}
	if !strings.Contains(view, "evaluating...") {
		t.Error("view should show a placeholder before results arrive")
	}
	if m.HasResults() {
		t.Error("HasResults should be false before a batch is stored")
	}
}

func TestResultsModel_SetResults(t *testing.T) {
	m := NewResultsModel("all")
	m.SetSize(60, 6)

	m.SetResults([]orchestration.EvaluationResult{
		{Key: "max", Name: "Maximum path", Value: 23, Duration: 120 * time.Millisecond},
		{Key: "oddeven", Name: "Odd-even constrained path", Value: 10, Duration: 95 * time.Millisecond},
	})

	if !m.HasResults() {
		t.Fatal("HasResults should be true after a batch is stored")
	}

	view := m.View()
	for _, want := range []string{"Maximum path", "23", "Odd-even constrained path", "10"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "evaluating...") {
		t.Error("placeholder should disappear once results arrive")
	}
}

func TestResultsModel_FailedRule(t *testing.T) {
	m := NewResultsModel("all")
	m.SetSize(60, 6)

	m.SetResults([]orchestration.EvaluationResult{
		{Key: "max", Name: "Maximum path", Value: 23, Duration: time.Millisecond},
		{Key: "oddeven", Name: "Odd-even constrained path", Err: errors.New("boom"), Duration: time.Millisecond},
	})

	view := m.View()
	if !strings.Contains(view, "failed: boom") {
		t.Error("view should mark the failed rule")
	}
	if !strings.Contains(view, "23") {
		t.Error("view should still show the successful rule's value")
	}
}

func TestResultsModel_SetError(t *testing.T) {
	m := NewResultsModel("max")
	m.SetSize(60, 6)

	m.SetError(errors.New("deadline blown"), 2*time.Second)

	view := m.View()
	if !strings.Contains(view, "Error: deadline blown") {
		t.Error("view missing the batch error")
	}
	if !strings.Contains(view, "after") {
		t.Error("view missing the failure duration")
	}
}

func TestResultsModel_ErrorWinsOverResults(t *testing.T) {
	m := NewResultsModel("all")
	m.SetSize(60, 6)

	m.SetResults([]orchestration.EvaluationResult{
		{Key: "max", Name: "Maximum path", Value: 23},
	})
	m.SetError(errors.New("canceled"), time.Second)

	view := m.View()
	if !strings.Contains(view, "Error: canceled") {
		t.Error("batch error should take over the panel")
	}
}

func TestResultsModel_Reset(t *testing.T) {
	m := NewResultsModel("all")
	m.SetSize(60, 6)
	m.SetResults([]orchestration.EvaluationResult{{Key: "max", Name: "Maximum path", Value: 23}})
	m.SetError(errors.New("boom"), time.Second)

	m.Reset()

	if m.HasResults() {
		t.Error("Reset should clear stored results")
	}
	view := m.View()
	if !strings.Contains(view, "evaluating...") {
		t.Error("view should return to the placeholder after Reset")
	}
}

func TestResultsModel_SetRule(t *testing.T) {
	m := NewResultsModel("all")
	m.SetSize(60, 6)

	m.SetRule("oddeven")

	if !strings.Contains(m.View(), "rule oddeven") {
		t.Error("view should show the updated rule label")
	}
}
