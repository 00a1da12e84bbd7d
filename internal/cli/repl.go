// Package cli provides the command-line presentation surfaces: result
// display, progress rendering, shell completion, and the interactive
// REPL for exploring triangles.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/mbenard/tricalc/internal/format"
	"github.com/mbenard/tricalc/internal/orchestration"
	"github.com/mbenard/tricalc/internal/progress"
	"github.com/mbenard/tricalc/internal/triangle"
	"github.com/mbenard/tricalc/internal/ui"
)

// REPLConfig holds configuration for the REPL session.
type REPLConfig struct {
	// DefaultRule is the rule preselected for evaluations.
	DefaultRule string
	// Timeout is the maximum duration for each evaluation.
	Timeout time.Duration
	// MaxRows bounds accepted triangle height (0 = unlimited).
	MaxRows int
}

// REPL represents an interactive triangle exploration session.
type REPL struct {
	config      REPLConfig
	factory     triangle.EvaluatorFactory
	currentRule string
	tri         *triangle.Triangle
	triPath     string
	in          io.Reader
	out         io.Writer
}

// NewREPL creates a new REPL instance using the given evaluator factory.
func NewREPL(factory triangle.EvaluatorFactory, config REPLConfig) *REPL {
	currentRule := config.DefaultRule
	if currentRule == "" || currentRule == "all" {
		if keys := factory.List(); len(keys) > 0 {
			currentRule = keys[0]
		}
	}

	return &REPL{
		config:      config,
		factory:     factory,
		currentRule: currentRule,
		in:          os.Stdin,
		out:         os.Stdout,
	}
}

// SetInput sets a custom input reader (useful for testing).
func (r *REPL) SetInput(in io.Reader) {
	r.in = in
}

// SetOutput sets a custom output writer (useful for testing).
func (r *REPL) SetOutput(out io.Writer) {
	r.out = out
}

// Start begins the interactive session. It reads user input and
// processes commands until the user exits or EOF is reached.
func (r *REPL) Start() {
	r.printBanner()
	r.printHelp()
	fmt.Fprintln(r.out)

	reader := bufio.NewReader(r.in)

	for {
		fmt.Fprint(r.out, ui.ColorGreen()+"tri> "+ui.ColorReset())

		input, err := reader.ReadString('\n')
		if err != nil {
			if errors.Is(err, io.EOF) {
				fmt.Fprintln(r.out, "\nGoodbye!")
				return
			}
			fmt.Fprintf(r.out, "%sRead error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		input = strings.TrimSpace(input)
		if input == "" {
			continue
		}

		if !r.processCommand(input) {
			return
		}
	}
}

// printBanner displays the REPL welcome banner.
func (r *REPL) printBanner() {
	fmt.Fprintf(r.out, "\n%s╔══════════════════════════════════════════════════════════╗%s\n", ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s║%s     %sTriangle Path Explorer - Interactive Mode%s            %s║%s\n",
		ui.ColorCyan(), ui.ColorReset(), ui.ColorBold(), ui.ColorReset(), ui.ColorCyan(), ui.ColorReset())
	fmt.Fprintf(r.out, "%s╚══════════════════════════════════════════════════════════╝%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// printHelp displays available commands.
func (r *REPL) printHelp() {
	fmt.Fprintf(r.out, "%sAvailable commands:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sload <file>%s   - Load a triangle from a whitespace-separated file\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srules%s         - List available path rules\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %srule <name>%s   - Change the active rule (%s)\n", ui.ColorYellow(), ui.ColorReset(), r.getRuleList())
	fmt.Fprintf(r.out, "  %srun [name]%s    - Evaluate the loaded triangle\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sall%s           - Evaluate every rule and compare timings\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstats%s         - Show triangle statistics\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %spath%s          - Show the maximum path trace\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sshow [n]%s      - Print the triangle (first n rows)\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sstatus%s        - Display current session state\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %shelp%s          - Display this help\n", ui.ColorYellow(), ui.ColorReset())
	fmt.Fprintf(r.out, "  %sexit%s / %squit%s   - Leave interactive mode\n", ui.ColorYellow(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
}

// getRuleList returns a comma-separated list of available rule keys.
func (r *REPL) getRuleList() string {
	return strings.Join(r.factory.List(), ", ")
}

// processCommand parses and executes a user command.
// Returns false if the REPL should exit.
func (r *REPL) processCommand(input string) bool {
	parts := strings.Fields(input)
	if len(parts) == 0 {
		return true
	}

	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "load", "l":
		r.cmdLoad(args)
	case "rules", "ls":
		r.cmdRules()
	case "rule", "r":
		r.cmdRule(args)
	case "run":
		r.cmdRun(args)
	case "all", "compare", "cmp":
		r.cmdAll()
	case "stats":
		r.cmdStats()
	case "path", "p":
		r.cmdPath()
	case "show":
		r.cmdShow(args)
	case "status", "st":
		r.cmdStatus()
	case "help", "h", "?":
		r.printHelp()
	case "exit", "quit", "q":
		fmt.Fprintf(r.out, "%sGoodbye!%s\n", ui.ColorGreen(), ui.ColorReset())
		return false
	default:
		// A bare token naming a readable file loads it
		if _, err := os.Stat(parts[0]); err == nil {
			r.cmdLoad(parts[:1])
		} else {
			fmt.Fprintf(r.out, "%sUnknown command: %s%s\n", ui.ColorRed(), cmd, ui.ColorReset())
			fmt.Fprintf(r.out, "Type %shelp%s to see available commands.\n", ui.ColorYellow(), ui.ColorReset())
		}
	}

	return true
}

// cmdLoad handles the "load" command.
func (r *REPL) cmdLoad(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: load <file>%s\n", ui.ColorRed(), ui.ColorReset())
		return
	}

	path := args[0]
	f, err := os.Open(path)
	if err != nil {
		fmt.Fprintf(r.out, "%sCannot open %s: %v%s\n", ui.ColorRed(), path, err, ui.ColorReset())
		return
	}
	defer f.Close()

	tri, err := triangle.ParseLimit(f, r.config.MaxRows)
	if err != nil {
		fmt.Fprintf(r.out, "%sParse error: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	r.tri = tri
	r.triPath = path
	fmt.Fprintln(r.out, FormatLoadedLine(tri.Height()))
}

// requireTriangle reports whether a triangle is loaded, printing a hint
// otherwise.
func (r *REPL) requireTriangle() bool {
	if r.tri == nil {
		fmt.Fprintf(r.out, "%sNo triangle loaded.%s Use: %sload <file>%s\n",
			ui.ColorRed(), ui.ColorReset(), ui.ColorYellow(), ui.ColorReset())
		return false
	}
	return true
}

// cmdRun handles the "run" command. An optional argument selects the
// rule for this run without changing the active one.
func (r *REPL) cmdRun(args []string) {
	if !r.requireTriangle() {
		return
	}

	key := r.currentRule
	if len(args) > 0 {
		key = strings.ToLower(args[0])
	}
	evaluator, err := r.factory.Get(key)
	if err != nil {
		fmt.Fprintf(r.out, "%s%v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)
	defer cancel()

	fmt.Fprintf(r.out, "Evaluating %s%d%s rows with %s%s%s...\n",
		ui.ColorCyan(), r.tri.Height(), ui.ColorReset(),
		ui.ColorGreen(), evaluator.Name(), ui.ColorReset())

	progressChan := make(chan progress.ProgressUpdate, 10)

	var wg sync.WaitGroup
	wg.Add(1)
	go DisplayProgress(&wg, progressChan, 1, r.out)

	start := time.Now()
	value, err := evaluator.Evaluate(ctx, progressChan, 0, r.tri)
	duration := time.Since(start)
	close(progressChan)
	wg.Wait()

	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	fmt.Fprintf(r.out, "\n%sResult:%s\n", ui.ColorBold(), ui.ColorReset())
	fmt.Fprintf(r.out, "  Time: %s%s%s\n", ui.ColorGreen(), format.FormatExecutionDuration(duration), ui.ColorReset())
	fmt.Fprintf(r.out, "  %s\n\n", FormatResultLine(orchestration.EvaluationResult{
		Key:   evaluator.Key(),
		Name:  evaluator.Name(),
		Value: value,
	}))
}

// cmdAll evaluates every registered rule and shows timings side by side.
func (r *REPL) cmdAll() {
	if !r.requireTriangle() {
		return
	}

	fmt.Fprintf(r.out, "\n%sAll rules for %s:%s\n", ui.ColorBold(), r.triPath, ui.ColorReset())
	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n", ui.ColorCyan(), ui.ColorReset())

	for _, key := range r.factory.List() {
		evaluator, err := r.factory.Get(key)
		if err != nil {
			continue
		}

		ctx, cancel := context.WithTimeout(context.Background(), r.config.Timeout)

		progressChan := make(chan progress.ProgressUpdate, 10)
		go func() {
			for range progressChan {
			}
		}()

		start := time.Now()
		value, err := evaluator.Evaluate(ctx, progressChan, 0, r.tri)
		duration := time.Since(start)
		close(progressChan)
		cancel()

		if err != nil {
			fmt.Fprintf(r.out, "  %s%-28s%s: %sError - %v%s\n",
				ui.ColorYellow(), evaluator.Name(), ui.ColorReset(),
				ui.ColorRed(), err, ui.ColorReset())
			continue
		}

		fmt.Fprintf(r.out, "  %s%-28s%s: %s%12s%s  value %s%d%s\n",
			ui.ColorYellow(), evaluator.Name(), ui.ColorReset(),
			ui.ColorCyan(), format.FormatExecutionDuration(duration), ui.ColorReset(),
			ui.ColorGreen(), value, ui.ColorReset())
	}

	fmt.Fprintf(r.out, "%s─────────────────────────────────────────────%s\n\n", ui.ColorCyan(), ui.ColorReset())
}

// cmdRules handles the "rules" command.
func (r *REPL) cmdRules() {
	fmt.Fprintf(r.out, "\n%sAvailable rules:%s\n", ui.ColorBold(), ui.ColorReset())
	for _, key := range r.factory.List() {
		evaluator, err := r.factory.Get(key)
		if err != nil {
			continue
		}
		marker := "  "
		if key == r.currentRule {
			marker = ui.ColorGreen() + "► " + ui.ColorReset()
		}
		fmt.Fprintf(r.out, "%s%s%-10s%s - %s\n", marker, ui.ColorYellow(), key, ui.ColorReset(), evaluator.Name())
	}
	fmt.Fprintln(r.out)
}

// cmdRule handles the "rule" command.
func (r *REPL) cmdRule(args []string) {
	if len(args) == 0 {
		fmt.Fprintf(r.out, "%sUsage: rule <name>%s\n", ui.ColorRed(), ui.ColorReset())
		fmt.Fprintf(r.out, "Available rules: %s\n", r.getRuleList())
		return
	}

	key := strings.ToLower(args[0])
	evaluator, err := r.factory.Get(key)
	if err != nil {
		fmt.Fprintf(r.out, "%sUnknown rule: %s%s\n", ui.ColorRed(), key, ui.ColorReset())
		fmt.Fprintf(r.out, "Available rules: %s\n", r.getRuleList())
		return
	}

	r.currentRule = key
	fmt.Fprintf(r.out, "Rule changed to: %s%s%s\n", ui.ColorGreen(), evaluator.Name(), ui.ColorReset())
}

// cmdStats shows the statistics block for the loaded triangle.
func (r *REPL) cmdStats() {
	if !r.requireTriangle() {
		return
	}
	DisplayTriangleDetails(r.tri, r.out)
	fmt.Fprintln(r.out)
}

// cmdPath shows the maximizing path through the loaded triangle.
func (r *REPL) cmdPath() {
	if !r.requireTriangle() {
		return
	}

	trace, err := triangle.MaxPathTrace(r.tri)
	if err != nil {
		fmt.Fprintf(r.out, "%sError: %v%s\n", ui.ColorRed(), err, ui.ColorReset())
		return
	}

	values := make([]string, len(trace.Values))
	for i, v := range trace.Values {
		values[i] = strconv.FormatInt(v, 10)
	}
	fmt.Fprintf(r.out, "\n%sMaximum path (sum %d):%s\n", ui.ColorBold(), trace.Sum, ui.ColorReset())
	fmt.Fprintf(r.out, "  Values:    %s%s%s\n", ui.ColorGreen(), strings.Join(values, " → "), ui.ColorReset())
	fmt.Fprintf(r.out, "  Positions: %s%v%s\n\n", ui.ColorCyan(), trace.Positions, ui.ColorReset())
}

// cmdShow prints the triangle rows, optionally limited to the first n.
func (r *REPL) cmdShow(args []string) {
	if !r.requireTriangle() {
		return
	}

	limit := r.tri.Height()
	if len(args) > 0 {
		n, err := strconv.Atoi(args[0])
		if err != nil || n < 1 {
			fmt.Fprintf(r.out, "%sInvalid row count: %s%s\n", ui.ColorRed(), args[0], ui.ColorReset())
			return
		}
		if n < limit {
			limit = n
		}
	}

	fmt.Fprintln(r.out)
	for i := 0; i < limit; i++ {
		row := r.tri.Row(i)
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = strconv.FormatInt(v, 10)
		}
		fmt.Fprintf(r.out, "  %s\n", strings.Join(cells, " "))
	}
	if limit < r.tri.Height() {
		fmt.Fprintf(r.out, "  %s... (%d more rows)%s\n", ui.ColorDim(), r.tri.Height()-limit, ui.ColorReset())
	}
	fmt.Fprintln(r.out)
}

// cmdStatus displays current session state.
func (r *REPL) cmdStatus() {
	fmt.Fprintf(r.out, "\n%sCurrent session:%s\n", ui.ColorBold(), ui.ColorReset())
	loaded := "(none)"
	if r.tri != nil {
		loaded = fmt.Sprintf("%s (%d rows)", r.triPath, r.tri.Height())
	}
	fmt.Fprintf(r.out, "  Triangle:  %s%s%s\n", ui.ColorCyan(), loaded, ui.ColorReset())
	fmt.Fprintf(r.out, "  Rule:      %s%s%s\n", ui.ColorCyan(), r.currentRule, ui.ColorReset())
	fmt.Fprintf(r.out, "  Timeout:   %s%s%s\n", ui.ColorCyan(), r.config.Timeout, ui.ColorReset())
	rowLimit := "unlimited"
	if r.config.MaxRows > 0 {
		rowLimit = strconv.Itoa(r.config.MaxRows)
	}
	fmt.Fprintf(r.out, "  Row limit: %s%s%s\n", ui.ColorCyan(), rowLimit, ui.ColorReset())
	fmt.Fprintln(r.out)
}
