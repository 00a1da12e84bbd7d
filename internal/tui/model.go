package tui

import (
	"context"
	"io"
	"runtime"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mbenard/tricalc/internal/config"
	apperrors "github.com/mbenard/tricalc/internal/errors"
	"github.com/mbenard/tricalc/internal/metrics"
	"github.com/mbenard/tricalc/internal/orchestration"
	"github.com/mbenard/tricalc/internal/sysmon"
	"github.com/mbenard/tricalc/internal/triangle"
	"github.com/mbenard/tricalc/internal/ui"
)

// ExecutionState holds the execution-related fields of a TUI session.
type ExecutionState struct {
	ctx        context.Context
	cancel     context.CancelFunc
	factory    triangle.EvaluatorFactory
	evaluators []triangle.Evaluator
	ruleKeys   []string
	ruleIdx    int
	generation uint64
	done       bool
	exitCode   int
}

// activeRule is the rule selection driving the current run, "all" or a
// single rule key.
func (s ExecutionState) activeRule() string {
	if len(s.ruleKeys) == 0 {
		return "all"
	}
	return s.ruleKeys[s.ruleIdx]
}

// Layout constants for the TUI dashboard.
const (
	headerHeight              = 1
	minBodyHeight             = 4
	TrianglePanelWidthPercent = 55
	StatsPanelHeight          = 9
	ResultsPanelHeight        = 6
)

// LayoutManager holds terminal dimensions and provides layout calculations.
type LayoutManager struct {
	width   int
	height  int
	footerH int
}

// bodyHeight returns the available height for the main body panels.
func (l LayoutManager) bodyHeight() int {
	h := l.height - headerHeight - l.footerH
	if h < minBodyHeight {
		h = minBodyHeight
	}
	return h
}

// triangleWidth returns the width allocated to the triangle panel.
func (l LayoutManager) triangleWidth() int {
	return l.width * TrianglePanelWidthPercent / 100
}

// rightWidth returns the width of the right column (stats, results, chart).
func (l LayoutManager) rightWidth() int {
	return l.width - l.triangleWidth()
}

// statsHeight returns the height allocated to the stats panel.
func (l LayoutManager) statsHeight() int {
	body := l.bodyHeight()
	h := StatsPanelHeight
	if h > body/2 {
		h = body / 2
	}
	return h
}

// resultsHeight returns the height allocated to the results panel.
func (l LayoutManager) resultsHeight() int {
	body := l.bodyHeight() - l.statsHeight()
	h := ResultsPanelHeight
	if h > body/2 {
		h = body / 2
	}
	return h
}

// chartHeight returns the height allocated to the chart panel.
func (l LayoutManager) chartHeight() int {
	return l.bodyHeight() - l.statsHeight() - l.resultsHeight()
}

// Model is the root bubbletea model for the TUI dashboard.
type Model struct {
	header   HeaderModel
	triangle TriangleModel
	stats    StatsModel
	chart    ChartModel
	results  ResultsModel
	footer   FooterModel

	keymap KeyMap

	ExecutionState
	LayoutManager

	parentCtx context.Context
	config    config.AppConfig
	tri       *triangle.Triangle
	ref       *programRef
	paused    bool
}

// NewModel creates a new TUI model for the given triangle.
func NewModel(parentCtx context.Context, factory triangle.EvaluatorFactory, tri *triangle.Triangle, cfg config.AppConfig, version string) Model {
	ctx, cancel := context.WithCancel(parentCtx)

	ruleKeys := append([]string{"all"}, factory.List()...)
	ruleIdx := 0
	for i, k := range ruleKeys {
		if k == cfg.Rule {
			ruleIdx = i
			break
		}
	}

	return Model{
		header:   NewHeaderModel(version, cfg.InputPath, tri.Height()),
		triangle: NewTriangleModel(tri),
		stats:    NewStatsModel(tri),
		chart:    NewChartModel(),
		results:  NewResultsModel(ruleKeys[ruleIdx]),
		footer:   NewFooterModel(DefaultKeyMap()),
		keymap:   DefaultKeyMap(),
		ExecutionState: ExecutionState{
			ctx:        ctx,
			cancel:     cancel,
			factory:    factory,
			evaluators: orchestration.GetEvaluatorsToRun(ruleKeys[ruleIdx], factory),
			ruleKeys:   ruleKeys,
			ruleIdx:    ruleIdx,
			exitCode:   apperrors.ExitSuccess,
		},
		LayoutManager: LayoutManager{footerH: 1},
		parentCtx:     parentCtx,
		config:        cfg,
		tri:           tri,
		ref:           &programRef{},
	}
}

// Init returns the initial commands.
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		tickCmd(),
		startEvaluationCmd(m.ref, m.ctx, m.evaluators, m.tri, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// Update handles all incoming messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.layoutPanels()
		return m, nil

	case ProgressMsg:
		if !m.paused {
			m.chart.AddDataPoint(msg.Value, msg.AverageProgress, msg.ETA)
		}
		return m, nil

	case ProgressDoneMsg:
		return m, nil

	case ResultsMsg:
		m.results.SetResults(msg.Results)
		return m, nil

	case ErrorMsg:
		m.results.SetError(msg.Err, msg.Duration)
		m.done = true
		m.header.SetDone()
		m.footer.SetState(stateError)
		return m, nil

	case TickMsg:
		if m.done {
			return m, nil
		}
		if !m.paused {
			return m, tea.Batch(sampleMemStatsCmd(), sampleSysStatsCmd(), tickCmd())
		}
		return m, tickCmd()

	case MemStatsMsg:
		m.stats.UpdateMem(msg)
		return m, nil

	case SysStatsMsg:
		m.stats.UpdateSys(msg)
		m.chart.UpdateSysStats(msg.CPUPercent, msg.MemPercent)
		return m, nil

	case EvaluationCompleteMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from previous run
		}
		m.done = true
		m.exitCode = msg.ExitCode
		m.header.SetDone()
		m.chart.SetDone(time.Since(m.header.startTime))
		if msg.ExitCode == apperrors.ExitSuccess {
			m.footer.SetState(stateDone)
		} else {
			m.footer.SetState(stateError)
		}
		return m, nil

	case ContextCancelledMsg:
		if msg.Generation != m.generation {
			return m, nil // stale message from previous run
		}
		m.done = true
		m.header.SetDone()
		m.footer.SetState(stateDone)
		return m, tea.Quit
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keymap.Quit):
		if m.cancel != nil {
			m.cancel()
		}
		return m, tea.Quit

	case key.Matches(msg, m.keymap.Help):
		m.footer.ToggleHelp()
		m.layoutPanels()
		return m, nil

	case key.Matches(msg, m.keymap.Pause):
		m.paused = !m.paused
		if m.paused {
			m.footer.SetState(statePaused)
		} else if m.done {
			m.footer.SetState(stateDone)
		} else {
			m.footer.SetState(stateRunning)
		}
		return m, nil

	case key.Matches(msg, m.keymap.TogglePath):
		m.triangle.TogglePath()
		return m, nil

	case key.Matches(msg, m.keymap.CycleTheme):
		m.cycleTheme()
		return m, nil

	case key.Matches(msg, m.keymap.CycleRule):
		m.ruleIdx = (m.ruleIdx + 1) % len(m.ruleKeys)
		m.results.SetRule(m.activeRule())
		return m.restart()

	case key.Matches(msg, m.keymap.Rerun):
		return m.restart()

	case key.Matches(msg, m.keymap.Up):
		m.triangle.ScrollUp()
		return m, nil

	case key.Matches(msg, m.keymap.Down):
		m.triangle.ScrollDown()
		return m, nil

	case key.Matches(msg, m.keymap.PageUp):
		m.triangle.PageUp()
		return m, nil

	case key.Matches(msg, m.keymap.PageDown):
		m.triangle.PageDown()
		return m, nil

	case key.Matches(msg, m.keymap.Home):
		m.triangle.GotoTop()
		return m, nil

	case key.Matches(msg, m.keymap.End):
		m.triangle.GotoBottom()
		return m, nil
	}

	return m, nil
}

// restart cancels the current run and starts a fresh one for the active
// rule selection.
func (m Model) restart() (tea.Model, tea.Cmd) {
	if m.cancel != nil {
		m.cancel()
	}

	m.generation++
	ctx, cancel := context.WithCancel(m.parentCtx)
	m.ctx = ctx
	m.cancel = cancel
	m.evaluators = orchestration.GetEvaluatorsToRun(m.activeRule(), m.factory)

	m.header.Reset()
	m.chart.Reset()
	m.results.Reset()
	m.footer.SetState(stateRunning)
	m.done = false
	m.paused = false
	m.exitCode = apperrors.ExitSuccess

	return m, tea.Batch(
		tickCmd(),
		startEvaluationCmd(m.ref, m.ctx, m.evaluators, m.tri, m.generation),
		watchContextCmd(m.ctx, m.generation),
	)
}

// cycleTheme rotates through the color themes and rebuilds the styles.
func (m *Model) cycleTheme() {
	switch ui.GetCurrentTheme().Name {
	case "default":
		ui.SetTheme("light")
	case "light":
		ui.SetTheme("none")
	default:
		ui.SetTheme("default")
	}
	initTUIStyles()
}

// View renders the entire dashboard.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing..."
	}

	header := m.header.View()
	footer := m.footer.View()

	stats := m.stats.View()
	results := m.results.View()
	chart := m.chart.View()

	// Right column: stats, results, then the chart
	rightCol := lipgloss.JoinVertical(lipgloss.Left, stats, results, chart)

	tri := m.triangle.View()

	// Main body: triangle on the left, right column beside it
	body := lipgloss.JoinHorizontal(lipgloss.Top, tri, rightCol)

	// Full layout: header + body + footer
	return lipgloss.JoinVertical(lipgloss.Left, header, body, footer)
}

func (m *Model) layoutPanels() {
	m.footerH = m.footer.Height()
	m.header.SetWidth(m.width)
	m.footer.SetWidth(m.width)
	m.triangle.SetSize(m.triangleWidth(), m.bodyHeight())
	m.stats.SetSize(m.rightWidth(), m.statsHeight())
	m.results.SetSize(m.rightWidth(), m.resultsHeight())
	m.chart.SetSize(m.rightWidth(), m.chartHeight())
}

// Run is the public entry point for the TUI mode.
// It creates the bubbletea program, runs it, and returns the exit code.
func Run(ctx context.Context, factory triangle.EvaluatorFactory, tri *triangle.Triangle, cfg config.AppConfig, version string) int {
	// Rebuild styles from the current ui theme (set by app.Run via InitTheme).
	initTUIStyles()

	model := NewModel(ctx, factory, tri, cfg, version)
	defer model.cancel()

	p := tea.NewProgram(model, tea.WithAltScreen())
	// Inject the program reference before running so bridge goroutines can Send.
	model.ref.SetProgram(p)

	finalModel, err := p.Run()
	if err != nil {
		return apperrors.ExitErrorGeneric
	}

	if m, ok := finalModel.(Model); ok {
		m.cancel()
		return m.exitCode
	}
	return apperrors.ExitSuccess
}

// startEvaluationCmd returns a tea.Cmd that launches the orchestration.
func startEvaluationCmd(ref *programRef, ctx context.Context, evaluators []triangle.Evaluator, tri *triangle.Triangle, gen uint64) tea.Cmd {
	return func() tea.Msg {
		progressReporter := &TUIProgressReporter{ref: ref}
		presenter := &TUIResultPresenter{ref: ref}

		results := orchestration.ExecuteEvaluations(ctx, evaluators, tri, progressReporter, io.Discard)
		presOpts := orchestration.PresentationOptions{Verbose: true}
		exitCode := orchestration.AnalyzeResults(results, presOpts, presenter, presenter, io.Discard)

		return EvaluationCompleteMsg{ExitCode: exitCode, Generation: gen}
	}
}

// tickCmd returns a command that sends a TickMsg after 500ms.
func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

// sampleMemStatsCmd reads runtime memory stats and returns a MemStatsMsg.
func sampleMemStatsCmd() tea.Cmd {
	return func() tea.Msg {
		snap := metrics.NewMemoryCollector().Snapshot()
		return MemStatsMsg{
			HeapAlloc:    snap.HeapAlloc,
			HeapSys:      snap.HeapSys,
			NumGC:        snap.NumGC,
			PauseTotalNs: snap.PauseTotalNs,
			Goroutines:   runtime.NumGoroutine(),
		}
	}
}

// sampleSysStatsCmd reads system-wide CPU and memory stats and returns a
// SysStatsMsg.
func sampleSysStatsCmd() tea.Cmd {
	return func() tea.Msg {
		s := sysmon.Sample()
		return SysStatsMsg{
			CPUPercent: s.CPUPercent,
			MemPercent: s.MemPercent,
			MemUsed:    s.MemUsed,
			Goroutines: s.Goroutines,
		}
	}
}

// watchContextCmd waits for context cancellation and sends a message.
func watchContextCmd(ctx context.Context, gen uint64) tea.Cmd {
	return func() tea.Msg {
		<-ctx.Done()
		return ContextCancelledMsg{Err: ctx.Err(), Generation: gen}
	}
}
