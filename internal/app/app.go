// Package app wires the configuration, evaluation, and presentation
// layers into the runnable application. It owns mode dispatch (solve,
// REPL, TUI, completion) and the process exit code.
package app

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"

	"github.com/mbenard/tricalc/internal/cli"
	"github.com/mbenard/tricalc/internal/config"
	apperrors "github.com/mbenard/tricalc/internal/errors"
	"github.com/mbenard/tricalc/internal/logging"
	"github.com/mbenard/tricalc/internal/triangle"
	"github.com/mbenard/tricalc/internal/tui"
	"github.com/mbenard/tricalc/internal/ui"
)

// Application represents the tricalc application instance.
type Application struct {
	Config    config.AppConfig
	Factory   triangle.EvaluatorFactory
	ErrWriter io.Writer
	In        io.Reader
	Log       logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom EvaluatorFactory for the application.
func WithFactory(f triangle.EvaluatorFactory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithInput sets the reader used by interactive mode.
func WithInput(in io.Reader) AppOption {
	return func(a *Application) { a.In = in }
}

// WithLogger sets a custom Logger for the application.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Log = l }
}

// New creates a new Application instance by parsing command-line arguments.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter, In: os.Stdin}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = triangle.NewDefaultFactory()
	}
	if app.Log == nil {
		app.Log = logging.NewDefaultLogger()
	}

	availableRules := app.Factory.List()

	programName := "tricalc"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, availableRules)
	if err != nil {
		// The flag package reports its own parse errors; validation
		// errors would otherwise be silent.
		var cfgErr apperrors.ConfigError
		if errors.As(err, &cfgErr) {
			fmt.Fprintf(errWriter, "Error: %v\n", err)
		}
		return nil, err
	}

	app.Config = cfg
	return app, nil
}

// Run executes the application based on the configured mode.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	if a.Config.Completion != "" {
		return a.runCompletion(out)
	}
	if a.Config.ShowVersion {
		PrintVersion(out)
		return apperrors.ExitSuccess
	}

	if config.EnvBool("DEBUG", false) {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
	ui.InitTheme(a.Config.NoColor)

	if a.Config.Interactive {
		return a.runInteractive(out)
	}
	if a.Config.TUI {
		return a.runTUI(ctx, out)
	}

	return a.runSolve(ctx, out)
}

// runCompletion generates shell completion scripts.
func (a *Application) runCompletion(out io.Writer) int {
	availableRules := a.Factory.List()
	if err := cli.GenerateCompletion(out, a.Config.Completion, availableRules); err != nil {
		fmt.Fprintf(a.ErrWriter, "Error generating completion: %v\n", err)
		return apperrors.ExitErrorConfig
	}
	return apperrors.ExitSuccess
}

// runInteractive starts the REPL for exploring triangles by hand.
func (a *Application) runInteractive(out io.Writer) int {
	repl := cli.NewREPL(a.Factory, cli.REPLConfig{
		DefaultRule: a.Config.Rule,
		Timeout:     a.Config.Timeout,
		MaxRows:     a.Config.MaxRows,
	})
	repl.SetInput(a.In)
	repl.SetOutput(out)
	repl.Start()
	return apperrors.ExitSuccess
}

// runTUI launches the interactive dashboard. When the output is not a
// terminal (a pipe or file) it falls back to the plain solve mode so the
// run still produces usable output.
func (a *Application) runTUI(ctx context.Context, out io.Writer) int {
	if !writerIsTerminal(out) {
		a.Log.Debug("output is not a terminal, falling back to plain mode")
		return a.runSolve(ctx, out)
	}

	tri, _, err := a.loadTriangle()
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitCodeFor(err)
	}

	ctx, cancel := a.withLifecycle(ctx)
	defer cancel()

	return tui.Run(ctx, a.Factory, tri, a.Config, Version)
}

// writerIsTerminal reports whether the writer is an interactive terminal.
func writerIsTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
