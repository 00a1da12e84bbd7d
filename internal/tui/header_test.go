package tui

import (
	"strings"
	"testing"
)

func TestHeaderModel_View(t *testing.T) {
	h := NewHeaderModel("1.2.3", "p067_triangle.txt", 100)
	h.SetWidth(80)

	view := h.View()
	for _, want := range []string{"Triangle Path Dashboard", "1.2.3", "p067_triangle.txt (100 rows)", "Elapsed:"} {
		if !strings.Contains(view, want) {
			t.Errorf("header missing %q", want)
		}
	}
}

func TestHeaderModel_DevVersionHidden(t *testing.T) {
	h := NewHeaderModel("dev", "tri.txt", 4)
	h.SetWidth(80)

	if strings.Contains(h.View(), "dev") {
		t.Error("the dev placeholder version should not be shown")
	}
}

func TestHeaderModel_SetDoneFreezesElapsed(t *testing.T) {
	h := NewHeaderModel("dev", "tri.txt", 4)
	h.SetDone()

	if h.endTime.IsZero() {
		t.Fatal("SetDone should record the end time")
	}

	first := h.View()
	second := h.View()
	if first != second {
		t.Error("elapsed display should freeze once done")
	}
}

func TestHeaderModel_ResetClearsDone(t *testing.T) {
	h := NewHeaderModel("dev", "tri.txt", 4)
	h.SetDone()
	h.Reset()

	if !h.endTime.IsZero() {
		t.Error("Reset should clear the frozen end time")
	}
}

func TestSpaces(t *testing.T) {
	if got := spaces(3); got != "   " {
		t.Errorf("spaces(3) = %q", got)
	}
	if got := spaces(0); got != "" {
		t.Errorf("spaces(0) = %q", got)
	}
	if got := spaces(-2); got != "" {
		t.Errorf("spaces(-2) = %q", got)
	}
}
