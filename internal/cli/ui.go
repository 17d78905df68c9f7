//go:generate mockgen -source=ui.go -destination=mocks/mock_ui.go -package=mocks

package cli

import (
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"

	"github.com/agbru/quadbench/internal/format"
	"github.com/agbru/quadbench/internal/orchestration"
	"github.com/agbru/quadbench/internal/progress"
	"github.com/agbru/quadbench/internal/ui"
)

const (
	// ProgressRefreshRate defines the refresh frequency of the progress line.
	ProgressRefreshRate = 200 * time.Millisecond
	// ProgressBarWidth defines the width in characters of the progress bar.
	ProgressBarWidth = 30
)

// Spinner abstracts the terminal spinner so that DisplayProgress can be
// tested without a terminal.
type Spinner interface {
	// Start begins the spinner animation.
	Start()
	// Stop halts the spinner animation.
	Stop()
	// UpdateSuffix sets the text that is displayed after the spinner.
	UpdateSuffix(suffix string)
}

// realSpinner adapts spinner.Spinner to the Spinner interface.
type realSpinner struct {
	s *spinner.Spinner
}

func (rs *realSpinner) Start() { rs.s.Start() }

func (rs *realSpinner) Stop() { rs.s.Stop() }

// UpdateSuffix sets the suffix under the spinner's lock, since the animation
// goroutine reads it concurrently.
func (rs *realSpinner) UpdateSuffix(suffix string) {
	rs.s.Lock()
	rs.s.Suffix = suffix
	rs.s.Unlock()
}

var newSpinner = func(options ...spinner.Option) Spinner {
	s := spinner.New(spinner.CharSets[11], ProgressRefreshRate, options...)
	return &realSpinner{s}
}

// DisplayProgress shows a spinner followed by a progress bar, the completed
// share of the sweep, the ETA and the last finished run. It returns once
// progressChan is closed, after printing a completion line.
//
// Parameters:
//   - wg: Signalled when the display has stopped.
//   - progressChan: Updates emitted after each run.
//   - totalRuns: The number of runs in the sweep.
//   - out: The writer for the progress line.
func DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, totalRuns int, out io.Writer) {
	defer wg.Done()
	agg := orchestration.NewProgressAggregator(totalRuns)
	if agg == nil {
		orchestration.DrainChannel(progressChan)
		return
	}

	s := newSpinner(spinner.WithWriter(out))
	label := "starting"
	s.UpdateSuffix(progressSuffix(0, 0, label))
	s.Start()

	ticker := time.NewTicker(ProgressRefreshRate)
	defer ticker.Stop()
	started := time.Now()

	for {
		select {
		case update, ok := <-progressChan:
			if !ok {
				s.Stop()
				fmt.Fprintf(out, "%sSweep finished:%s %d run(s) in %s\n",
					ui.ColorGreen(), ui.ColorReset(), totalRuns, format.FormatExecutionDuration(time.Since(started)))
				return
			}
			ap := agg.Update(update)
			label = fmt.Sprintf("%s n=%s", ap.Strategy, format.FormatCount(ap.N))
			s.UpdateSuffix(progressSuffix(ap.Fraction, ap.ETA, label))
		case <-ticker.C:
			s.UpdateSuffix(progressSuffix(agg.Fraction(), agg.GetETA(), label))
		}
	}
}

func progressSuffix(fraction float64, eta time.Duration, label string) string {
	return fmt.Sprintf(" %s  %s%s%s", format.FormatProgressBarWithETA(fraction, eta, ProgressBarWidth), ui.ColorGrey(), label, ui.ColorReset())
}
