// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     They handle presentation logic and colorization.
//     Examples: [DisplayResults], [DisplayQuietResults], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     They are pure functions suitable for composition.
//     Examples: [FormatResultLine], [FormatQuietResult], [FormatLoadedLine].
//
//   - Write* functions write data to files on the filesystem.
//     They handle file creation, directory setup, and error handling.
//     Examples: [WriteResultsToFile].

package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/mbenard/tricalc/internal/metrics"
	"github.com/mbenard/tricalc/internal/orchestration"
	"github.com/mbenard/tricalc/internal/triangle"
	"github.com/mbenard/tricalc/internal/ui"
)

// OutputConfig holds configuration for result output.
type OutputConfig struct {
	// OutputFile is the path to save the results (empty for no file output).
	OutputFile string
	// Quiet mode reduces output to bare values.
	Quiet bool
}

// FormatLoadedLine returns the sentence announcing a successful load.
func FormatLoadedLine(rows int) string {
	return fmt.Sprintf("Loaded triangle with %d rows.", rows)
}

// FormatResultLine returns the sentence announcing one rule's result.
// The result lines are deliberately plain text so scripted consumers see
// the same bytes regardless of the active theme.
func FormatResultLine(res orchestration.EvaluationResult) string {
	switch res.Key {
	case "max":
		return fmt.Sprintf("The maximum path value is %d.", res.Value)
	case "oddeven":
		return fmt.Sprintf("If you may only move left onto an odd number or right onto an even number, the maximum path value is %d.", res.Value)
	default:
		return fmt.Sprintf("%s: %d", res.Name, res.Value)
	}
}

// DisplayResults prints one sentence per successful evaluation, in the
// order the results were produced.
func DisplayResults(out io.Writer, results []orchestration.EvaluationResult) {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		fmt.Fprintln(out, FormatResultLine(res))
	}
}

// FormatQuietResult formats a single result for quiet mode output.
// Returns the bare value suitable for scripting.
func FormatQuietResult(res orchestration.EvaluationResult) string {
	return strconv.FormatInt(res.Value, 10)
}

// DisplayQuietResults outputs one bare value per successful evaluation.
func DisplayQuietResults(out io.Writer, results []orchestration.EvaluationResult) {
	for _, res := range results {
		if res.Err != nil {
			continue
		}
		fmt.Fprintln(out, FormatQuietResult(res))
	}
}

// WriteResultsToFile writes evaluation results to a file in a simple
// "key = value" format with a commented header.
//
// Parameters:
//   - results: The evaluation results, in production order.
//   - inputPath: The triangle file the results were computed from.
//   - rows: The height of the evaluated triangle.
//   - config: Output configuration; nothing is written when OutputFile is empty.
func WriteResultsToFile(results []orchestration.EvaluationResult, inputPath string, rows int, config OutputConfig) error {
	if config.OutputFile == "" {
		return nil
	}

	dir := filepath.Dir(config.OutputFile)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(config.OutputFile)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer file.Close()

	fmt.Fprintf(file, "# Triangle path evaluation\n")
	fmt.Fprintf(file, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(file, "# Input: %s\n", inputPath)
	fmt.Fprintf(file, "# Rows: %d\n", rows)
	fmt.Fprintf(file, "\n")

	for _, res := range results {
		if res.Err != nil {
			fmt.Fprintf(file, "# %s failed: %v\n", res.Key, res.Err)
			continue
		}
		fmt.Fprintf(file, "%s = %d\n", res.Key, res.Value)
	}

	return nil
}

// DisplaySavedMessage confirms that results were written to a file.
func DisplaySavedMessage(out io.Writer, path string) {
	fmt.Fprintf(out, "\n%s✓ Results saved to: %s%s%s\n",
		ui.ColorGreen(), ui.ColorCyan(), path, ui.ColorReset())
}

// DisplayTriangleDetails prints the extended analysis block: dimensions,
// aggregate statistics, path counts, and the maximizing path itself.
func DisplayTriangleDetails(t *triangle.Triangle, out io.Writer) {
	if t == nil || t.Height() == 0 {
		return
	}
	stats := triangle.ComputeStats(t)

	fmt.Fprintf(out, "\n%sTriangle details:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(out, "  Rows:        %s%d%s\n", ui.ColorCyan(), stats.Height, ui.ColorReset())
	fmt.Fprintf(out, "  Base width:  %s%d%s\n", ui.ColorCyan(), stats.Width, ui.ColorReset())
	fmt.Fprintf(out, "  Cells:       %s%d%s\n", ui.ColorCyan(), stats.Cells, ui.ColorReset())
	fmt.Fprintf(out, "  Cell sum:    %s%d%s\n", ui.ColorCyan(), stats.Sum, ui.ColorReset())
	fmt.Fprintf(out, "  Value range: %s[%d, %d]%s\n", ui.ColorCyan(), stats.MinVal, stats.MaxVal, ui.ColorReset())

	if count, err := triangle.PathCount(t); err == nil {
		fmt.Fprintf(out, "  Paths:       %s%s%s distinct routes\n", ui.ColorCyan(), count.String(), ui.ColorReset())
	}
	if minSum, err := triangle.MinPath(t); err == nil {
		fmt.Fprintf(out, "  Min path:    %s%d%s\n", ui.ColorCyan(), minSum, ui.ColorReset())
	}

	trace, err := triangle.MaxPathTrace(t)
	if err != nil {
		return
	}
	fmt.Fprintf(out, "  Max path:    %s%d%s via positions %v\n",
		ui.ColorGreen(), trace.Sum, ui.ColorReset(), trace.Positions)
	fmt.Fprintf(out, "               values %v\n", trace.Values)
}

// DisplayMemoryStats shows memory growth between two snapshots taken
// around the evaluation, plus the process peak RSS where available.
func DisplayMemoryStats(before, after metrics.MemorySnapshot, out io.Writer) {
	d := after.Delta(before)
	fmt.Fprintf(out, "\nMemory Stats:\n")
	fmt.Fprintf(out, "  Heap in use:     %s\n", metrics.FormatBytes(after.HeapAlloc))
	fmt.Fprintf(out, "  Allocated (run): %s\n", metrics.FormatBytes(d.AllocBytes))
	fmt.Fprintf(out, "  GC cycles:       %d\n", d.GCCycles)
	if d.PauseNs > 0 {
		fmt.Fprintf(out, "  GC pause total:  %.2fms\n", float64(d.PauseNs)/1e6)
	} else {
		fmt.Fprintf(out, "  GC pause total:  0ms\n")
	}
	if rss, ok := metrics.MaxRSSBytes(); ok {
		fmt.Fprintf(out, "  Peak RSS:        %s\n", metrics.FormatBytes(rss))
	}
}
