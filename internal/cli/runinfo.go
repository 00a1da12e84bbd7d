package cli

import (
	"fmt"
	"io"
	"runtime"

	"github.com/mbenard/tricalc/internal/config"
	"github.com/mbenard/tricalc/internal/triangle"
	"github.com/mbenard/tricalc/internal/ui"
)

// DisplayRunConfig shows the active run configuration: input path, rule
// selection, timeout, and environment details.
func DisplayRunConfig(cfg config.AppConfig, out io.Writer) {
	fmt.Fprintf(out, "--- Run Configuration ---\n")
	fmt.Fprintf(out, "Evaluating %s%s%s with rule %s%s%s and a timeout of %s%s%s.\n",
		ui.ColorCyan(), cfg.InputPath, ui.ColorReset(),
		ui.ColorGreen(), cfg.Rule, ui.ColorReset(),
		ui.ColorYellow(), cfg.Timeout, ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorCyan(), runtime.NumCPU(), ui.ColorReset(),
		ui.ColorCyan(), runtime.Version(), ui.ColorReset())
	if cfg.MaxRows > 0 {
		fmt.Fprintf(out, "Row limit: %s%d%s.\n", ui.ColorCyan(), cfg.MaxRows, ui.ColorReset())
	}
}

// DisplayRunMode shows whether one rule or all rules will be evaluated.
func DisplayRunMode(evaluators []triangle.Evaluator, out io.Writer) {
	var modeDesc string
	if len(evaluators) > 1 {
		modeDesc = "Parallel evaluation of all rules"
	} else {
		modeDesc = fmt.Sprintf("Single evaluation with the %s%s%s rule",
			ui.ColorGreen(), evaluators[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Evaluation ---\n")
}
