//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/mbenard/tricalc/internal/format"
	"github.com/mbenard/tricalc/internal/progress"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress bar.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 40
)

// Spinner abstracts the behavior of a terminal spinner so DisplayProgress
// does not depend on a specific implementation. It defines the essential
// controls: starting, stopping, and updating the status message.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner wraps spinner.Spinner to satisfy the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() {
	rs.s.Start()
}

func (rs *realSpinner) Stop() {
	rs.s.Stop()
}

func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Suffix = suffix
}

var newSpinner = func(options ...spinner.Option) Spinner {
	// Same interval as ProgressRefreshRate to keep redraws in sync.
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress consumes updates from progressChan and renders a spinner
// with an aggregated progress bar and ETA until the channel closes. It
// must run in its own goroutine; wg is released on return. With zero
// evaluators it only drains the channel.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, numEvaluators int, out io.Writer) {
	defer wg.Done()

	if numEvaluators <= 0 {
		for range progressChan {
		}
		return
	}

	state := format.NewProgressWithETA(numEvaluators)
	sp := newSpinner(spinner.WithWriter(out))
	sp.Start()
	defer sp.Stop()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()

	var average float64
	var eta time.Duration
	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				return
			}
			average, eta = state.UpdateWithETA(update.EvaluatorIndex, update.Value)
		case <-ticker.C:
			sp.UpdateSuffix(fmt.Sprintf(" %s", format.FormatProgressBarWithETA(average, eta, ProgressBarWidth)))
		}
	}
}
