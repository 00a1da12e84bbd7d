package cli

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/mbenard/tricalc/internal/config"
	"github.com/mbenard/tricalc/internal/triangle"
)

func TestDisplayRunConfig(t *testing.T) {
	usePlainTheme(t)

	cfg := config.AppConfig{
		InputPath: "p067_triangle.txt",
		Rule:      "all",
		Timeout:   30 * time.Second,
		MaxRows:   1000,
	}

	var buf bytes.Buffer
	DisplayRunConfig(cfg, &buf)

	output := buf.String()
	for _, want := range []string{
		"--- Run Configuration ---",
		"Evaluating p067_triangle.txt with rule all and a timeout of 30s.",
		"logical processors",
		"Row limit: 1000.",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("run config missing %q\n%s", want, output)
		}
	}
}

func TestDisplayRunConfig_NoRowLimit(t *testing.T) {
	usePlainTheme(t)

	var buf bytes.Buffer
	DisplayRunConfig(config.AppConfig{InputPath: "t.txt", Rule: "max", Timeout: time.Second}, &buf)

	if strings.Contains(buf.String(), "Row limit") {
		t.Errorf("row limit line should be absent when unlimited\n%s", buf.String())
	}
}

func TestDisplayRunMode(t *testing.T) {
	usePlainTheme(t)
	factory := triangle.NewDefaultFactory()

	t.Run("single rule", func(t *testing.T) {
		maxEval, err := factory.Get("max")
		if err != nil {
			t.Fatalf("Get(max): %v", err)
		}

		var buf bytes.Buffer
		DisplayRunMode([]triangle.Evaluator{maxEval}, &buf)

		output := buf.String()
		if !strings.Contains(output, "Single evaluation with the Maximum path rule") {
			t.Errorf("missing single mode line\n%s", output)
		}
		if !strings.Contains(output, "--- Starting Evaluation ---") {
			t.Errorf("missing start marker\n%s", output)
		}
	})

	t.Run("all rules", func(t *testing.T) {
		all := make([]triangle.Evaluator, 0, 2)
		for _, key := range factory.List() {
			e, err := factory.Get(key)
			if err != nil {
				t.Fatalf("Get(%s): %v", key, err)
			}
			all = append(all, e)
		}

		var buf bytes.Buffer
		DisplayRunMode(all, &buf)

		if !strings.Contains(buf.String(), "Parallel evaluation of all rules") {
			t.Errorf("missing parallel mode line\n%s", buf.String())
		}
	})
}
