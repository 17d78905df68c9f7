package format

import (
	"fmt"
	"strings"
	"time"
)

// maxETA caps estimates produced from very early, noisy measurements.
const maxETA = 24 * time.Hour

// ProgressWithETA tracks how many runs of a sweep have completed and
// extrapolates the remaining time from the mean time per run so far.
// It is not safe for concurrent use; the progress display owns it.
type ProgressWithETA struct {
	total     int
	done      int
	startTime time.Time
	now       func() time.Time
}

// NewProgressWithETA starts tracking a sweep of total runs.
func NewProgressWithETA(total int) *ProgressWithETA {
	return &ProgressWithETA{total: total, startTime: time.Now(), now: time.Now}
}

// Update records that done runs have completed and returns the completed
// fraction along with the estimated remaining time. Out-of-range values are
// clamped.
func (p *ProgressWithETA) Update(done int) (float64, time.Duration) {
	p.done = min(max(done, 0), p.total)
	return p.Fraction(), p.GetETA()
}

// Fraction returns the completed share of the sweep in [0, 1].
func (p *ProgressWithETA) Fraction() float64 {
	if p.total <= 0 {
		return 0
	}
	return float64(p.done) / float64(p.total)
}

// GetETA returns the estimated remaining time, or zero when no run has
// finished yet or the sweep is complete.
func (p *ProgressWithETA) GetETA() time.Duration {
	if p.done <= 0 || p.done >= p.total {
		return 0
	}
	perRun := p.now().Sub(p.startTime) / time.Duration(p.done)
	eta := perRun * time.Duration(p.total-p.done)
	if eta > maxETA || eta < 0 {
		return maxETA
	}
	return eta
}

// ProgressBar renders a fixed-width bar for a fraction in [0, 1].
func ProgressBar(progress float64, length int) string {
	progress = min(max(progress, 0), 1)
	filled := int(progress * float64(length))
	return strings.Repeat("█", filled) + strings.Repeat("░", length-filled)
}

// FormatProgressBarWithETA combines the bar, the percentage and the ETA.
func FormatProgressBarWithETA(progress float64, eta time.Duration, width int) string {
	return fmt.Sprintf("[%s] %5.1f%% ETA: %s", ProgressBar(progress, width), min(max(progress, 0), 1)*100, FormatETA(eta))
}
