package config

import (
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	apperrors "github.com/mbenard/tricalc/internal/errors"
)

// EnvPrefix is the prefix for all environment variable overrides.
const EnvPrefix = "TRICALC_"

// Defaults applied before flag and environment processing.
const (
	// DefaultInputPath is the triangle file read when --file is not given.
	DefaultInputPath = "p067_triangle.txt"
	// DefaultRule runs every registered rule.
	DefaultRule = "all"
	// DefaultTimeout bounds a whole run.
	DefaultTimeout = 30 * time.Second
	// DefaultMaxRows bounds the parsed triangle height. Zero disables the
	// bound.
	DefaultMaxRows = 1000
)

// completionShells lists the shells --completion can generate scripts for.
var completionShells = []string{"bash", "zsh", "fish", "powershell"}

// AppConfig holds the fully resolved application configuration.
// Resolution priority: CLI flags > environment variables > defaults.
type AppConfig struct {
	// InputPath is the triangle file to read.
	InputPath string
	// Rule selects which path rule(s) to evaluate ("all" or a rule key).
	Rule string
	// Timeout bounds the whole run.
	Timeout time.Duration
	// Verbose enables the run configuration banner and timing table.
	Verbose bool
	// Details enables the supplemental analysis block.
	Details bool
	// Quiet reduces output to the bare path values.
	Quiet bool
	// MaxRows bounds the parsed triangle height (0 = unlimited).
	MaxRows int
	// OutputFile, when set, receives a copy of the results.
	OutputFile string
	// MetricsOut, when set, receives the run's metrics in text format.
	MetricsOut string
	// NoColor disables ANSI styling.
	NoColor bool
	// TUI launches the interactive terminal dashboard.
	TUI bool
	// Interactive launches the REPL.
	Interactive bool
	// Completion names a shell to emit a completion script for.
	Completion string
	// ShowVersion prints version information and exits.
	ShowVersion bool
}

// ParseConfig parses command-line arguments into an AppConfig, applying
// environment variable overrides for any flags not explicitly set, then
// validating the result.
//
// Parameters:
//   - programName: The program name used in usage output.
//   - args: The command-line arguments, without the program name.
//   - errWriter: The writer for usage and flag error output.
//   - availableRules: The registered rule keys accepted by --rule.
//
// Returns:
//   - AppConfig: The resolved configuration.
//   - error: flag.ErrHelp when help was requested, or a ConfigError for
//     invalid values.
func ParseConfig(programName string, args []string, errWriter io.Writer, availableRules []string) (AppConfig, error) {
	cfg := AppConfig{}
	fs := flag.NewFlagSet(programName, flag.ContinueOnError)
	fs.SetOutput(errWriter)

	fs.StringVar(&cfg.InputPath, "file", DefaultInputPath, "triangle input file")
	fs.StringVar(&cfg.InputPath, "f", DefaultInputPath, "triangle input file (shorthand)")
	ruleUsage := fmt.Sprintf("path rule to evaluate: all, %s", strings.Join(availableRules, ", "))
	fs.StringVar(&cfg.Rule, "rule", DefaultRule, ruleUsage)
	fs.StringVar(&cfg.Rule, "r", DefaultRule, ruleUsage+" (shorthand)")
	fs.DurationVar(&cfg.Timeout, "timeout", DefaultTimeout, "maximum total run duration")
	fs.DurationVar(&cfg.Timeout, "t", DefaultTimeout, "maximum total run duration (shorthand)")
	fs.BoolVar(&cfg.Verbose, "verbose", false, "show the run configuration and timing table")
	fs.BoolVar(&cfg.Verbose, "v", false, "show the run configuration and timing table (shorthand)")
	fs.BoolVar(&cfg.Details, "details", false, "show supplemental triangle analysis")
	fs.BoolVar(&cfg.Details, "d", false, "show supplemental triangle analysis (shorthand)")
	fs.BoolVar(&cfg.Quiet, "quiet", false, "print only the computed values")
	fs.BoolVar(&cfg.Quiet, "q", false, "print only the computed values (shorthand)")
	fs.IntVar(&cfg.MaxRows, "max-rows", DefaultMaxRows, "maximum triangle height accepted (0 = unlimited)")
	fs.StringVar(&cfg.OutputFile, "output", "", "write results to this file as well")
	fs.StringVar(&cfg.OutputFile, "o", "", "write results to this file as well (shorthand)")
	fs.StringVar(&cfg.MetricsOut, "metrics-out", "", "write run metrics to this file in text format")
	fs.BoolVar(&cfg.NoColor, "no-color", false, "disable colored output")
	fs.BoolVar(&cfg.TUI, "tui", false, "launch the interactive terminal dashboard")
	fs.BoolVar(&cfg.Interactive, "interactive", false, "launch the interactive shell")
	fs.BoolVar(&cfg.Interactive, "i", false, "launch the interactive shell (shorthand)")
	fs.StringVar(&cfg.Completion, "completion", "", fmt.Sprintf("emit a completion script for a shell (%s)", strings.Join(completionShells, ", ")))
	fs.BoolVar(&cfg.ShowVersion, "version", false, "print version information and exit")
	fs.BoolVar(&cfg.ShowVersion, "V", false, "print version information and exit (shorthand)")

	fs.Usage = func() {
		fmt.Fprintf(errWriter, "Usage: %s [options]\n\n", programName)
		fmt.Fprintf(errWriter, "Reads a number triangle and computes its best top-to-bottom path values.\n\n")
		fmt.Fprintf(errWriter, "Options:\n")
		fs.PrintDefaults()
		fmt.Fprintf(errWriter, "\nEnvironment variables with the %s prefix override defaults for flags\nnot set on the command line (e.g. %sFILE, %sRULE, %sTIMEOUT).\n", EnvPrefix, EnvPrefix, EnvPrefix, EnvPrefix)
	}

	if err := fs.Parse(args); err != nil {
		return AppConfig{}, err
	}

	applyEnvOverrides(&cfg, fs)

	if err := cfg.Validate(availableRules); err != nil {
		return AppConfig{}, err
	}
	return cfg, nil
}

// Validate checks the resolved configuration for contradictions and
// unsupported values.
func (c AppConfig) Validate(availableRules []string) error {
	if c.Rule != "all" && !containsString(availableRules, c.Rule) {
		return apperrors.NewConfigError("unknown rule %q (available: all, %s)", c.Rule, strings.Join(availableRules, ", "))
	}
	if c.Timeout <= 0 {
		return apperrors.NewConfigError("timeout must be positive, got %s", c.Timeout)
	}
	if c.MaxRows < 0 {
		return apperrors.NewConfigError("max-rows must be zero or positive, got %d", c.MaxRows)
	}
	if c.Quiet && c.Verbose {
		return apperrors.NewConfigError("quiet and verbose are mutually exclusive")
	}
	if c.TUI && c.Interactive {
		return apperrors.NewConfigError("tui and interactive are mutually exclusive")
	}
	if c.Completion != "" && !containsString(completionShells, c.Completion) {
		return apperrors.NewConfigError("unsupported completion shell %q (supported: %s)", c.Completion, strings.Join(completionShells, ", "))
	}
	return nil
}

func containsString(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
