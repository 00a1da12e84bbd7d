package cli

import (
	"bytes"
	"strings"
	"testing"
)

var completionTestRules = []string{"max", "oddeven"}

func TestGenerateCompletion_Bash(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "bash", completionTestRules); err != nil {
		t.Fatalf("GenerateCompletion: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"_tricalc_completions",
		"complete -F _tricalc_completions tricalc",
		`rules="max oddeven all"`,
		"--rule",
		"compgen -f",
		"bash zsh fish powershell",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("bash script missing %q", want)
		}
	}
}

func TestGenerateCompletion_Zsh(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "zsh", completionTestRules); err != nil {
		t.Fatalf("GenerateCompletion: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"#compdef tricalc",
		"rules=(max oddeven all)",
		"'(-r --rule)'{-r,--rule}",
		"_files",
		"($rules)",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("zsh script missing %q", want)
		}
	}
}

func TestGenerateCompletion_Fish(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "fish", completionTestRules); err != nil {
		t.Fatalf("GenerateCompletion: %v", err)
	}

	output := buf.String()
	for _, want := range []string{
		"complete -c tricalc -f",
		"-l rule",
		"-xa 'max oddeven all'",
		"-rF",
		"# Modes",
	} {
		if !strings.Contains(output, want) {
			t.Errorf("fish script missing %q", want)
		}
	}
}

func TestGenerateCompletion_PowerShell(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"powershell", "ps"} {
		var buf bytes.Buffer
		if err := GenerateCompletion(&buf, shell, completionTestRules); err != nil {
			t.Fatalf("GenerateCompletion(%s): %v", shell, err)
		}

		output := buf.String()
		for _, want := range []string{
			"Register-ArgumentCompleter -CommandName 'tricalc'",
			"$tricalcRules = @('max', 'oddeven', 'all')",
			"'--timeout'",
		} {
			if !strings.Contains(output, want) {
				t.Errorf("%s script missing %q", shell, want)
			}
		}
	}
}

func TestGenerateCompletion_CoversAllFlags(t *testing.T) {
	t.Parallel()

	for _, shell := range []string{"bash", "zsh", "powershell"} {
		var buf bytes.Buffer
		if err := GenerateCompletion(&buf, shell, completionTestRules); err != nil {
			t.Fatalf("GenerateCompletion(%s): %v", shell, err)
		}
		output := buf.String()
		for _, f := range flagRegistry {
			if !strings.Contains(output, "--"+f.Long) {
				t.Errorf("%s script missing flag --%s", shell, f.Long)
			}
		}
	}

	var buf bytes.Buffer
	if err := GenerateCompletion(&buf, "fish", completionTestRules); err != nil {
		t.Fatalf("GenerateCompletion(fish): %v", err)
	}
	output := buf.String()
	for _, f := range flagRegistry {
		if !strings.Contains(output, "-l "+f.Long) {
			t.Errorf("fish script missing flag -l %s", f.Long)
		}
	}
}

func TestGenerateCompletion_UnsupportedShell(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	err := GenerateCompletion(&buf, "tcsh", completionTestRules)
	if err == nil {
		t.Fatal("expected an error for an unsupported shell")
	}
	if !strings.Contains(err.Error(), "unsupported shell") {
		t.Errorf("error = %q, want mention of unsupported shell", err)
	}
	if buf.Len() != 0 {
		t.Errorf("nothing should be written for an unsupported shell, got %d bytes", buf.Len())
	}
}
