package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"
	"time"

	apperrors "github.com/agbru/quadbench/internal/errors"
	"github.com/agbru/quadbench/internal/format"
	"github.com/agbru/quadbench/internal/functions"
	"github.com/agbru/quadbench/internal/orchestration"
	"github.com/agbru/quadbench/internal/progress"
	"github.com/agbru/quadbench/internal/ui"
)

// CLIProgressReporter implements orchestration.ProgressReporter with the
// spinner display.
type CLIProgressReporter struct{}

var _ orchestration.ProgressReporter = CLIProgressReporter{}

// DisplayProgress delegates to DisplayProgress.
func (CLIProgressReporter) DisplayProgress(wg *sync.WaitGroup, progressChan <-chan progress.ProgressUpdate, totalRuns int, out io.Writer) {
	DisplayProgress(wg, progressChan, totalRuns, out)
}

// CLIColorProvider implements apperrors.ColorProvider with the active theme.
type CLIColorProvider struct{}

func (CLIColorProvider) Red() string    { return ui.ColorRed() }
func (CLIColorProvider) Yellow() string { return ui.ColorYellow() }
func (CLIColorProvider) Reset() string  { return ui.ColorReset() }

// CLIResultPresenter implements orchestration.ResultPresenter for terminal
// output.
type CLIResultPresenter struct{}

var (
	_ orchestration.ResultPresenter = CLIResultPresenter{}
	_ orchestration.ErrorHandler    = CLIResultPresenter{}
)

// PresentComparisonTable prints one row per run. Cells are padded before
// they are colored so that escape codes do not disturb the alignment.
func (CLIResultPresenter) PresentComparisonTable(results []orchestration.RunResult, opts orchestration.PresentationOptions, out io.Writer) {
	styles := ui.CurrentStyles()
	fmt.Fprintf(out, "\n%s\n", styles.Heading.Render("Comparison Summary"))

	headers := []string{"n", "Reducer", "Threads", "Value", "Mean", "StdDev", "CPU", "Status"}
	rows := make([][]string, len(results))
	for i, res := range results {
		rows[i] = comparisonRow(res)
	}

	widths := make([]int, len(headers))
	for c, h := range headers {
		widths[c] = len(h)
	}
	for _, row := range rows {
		for c, cell := range row {
			widths[c] = max(widths[c], len([]rune(cell)))
		}
	}

	var b strings.Builder
	for c, h := range headers {
		b.WriteString(ui.ColorBold() + padRight(h, widths[c]) + ui.ColorReset())
		if c < len(headers)-1 {
			b.WriteString("  ")
		}
	}
	fmt.Fprintln(out, b.String())

	for i, row := range rows {
		b.Reset()
		for c, cell := range row {
			b.WriteString(cellColor(c, results[i]) + padRight(cell, widths[c]) + ui.ColorReset())
			if c < len(row)-1 {
				b.WriteString("  ")
			}
		}
		fmt.Fprintln(out, strings.TrimRight(b.String(), " "))
	}

	if opts.Verbose {
		for _, res := range results {
			if res.Err != nil {
				fmt.Fprintf(out, "  %s%s n=%d: %v%s\n", ui.ColorRed(), res.Strategy, res.N, res.Err, ui.ColorReset())
			}
		}
	}
}

func comparisonRow(res orchestration.RunResult) []string {
	value, mean, stddev, cpu := "-", "-", "-", "-"
	if res.Err == nil {
		value = strconv.FormatFloat(res.Value, 'f', 12, 64)
		mean = format.FormatExecutionDuration(res.Mean)
		if len(res.Durations) > 1 {
			stddev = format.FormatExecutionDuration(res.StdDev)
		}
		if res.Utilization > 0 {
			cpu = fmt.Sprintf("%.2fx", res.Utilization)
		}
	}
	status := res.Verdict.String()
	if res.Verdict == orchestration.VerdictAgree || res.Verdict == orchestration.VerdictMismatch {
		status = fmt.Sprintf("%s (Δ=%.1e)", status, res.Deviation)
	}
	return []string{
		format.FormatCount(res.N),
		res.Strategy,
		strconv.Itoa(res.Threads),
		value,
		mean,
		stddev,
		cpu,
		status,
	}
}

func cellColor(col int, res orchestration.RunResult) string {
	switch col {
	case 1:
		return ui.ColorBlue()
	case 3:
		return ui.ColorMagenta()
	case 4:
		return ui.ColorYellow()
	case 7:
		switch res.Verdict {
		case orchestration.VerdictMismatch, orchestration.VerdictFailed:
			return ui.ColorRed()
		case orchestration.VerdictAgree, orchestration.VerdictReference:
			return ui.ColorGreen()
		}
	}
	return ""
}

// padRight pads s with spaces to width runes.
func padRight(s string, width int) string {
	if n := width - len([]rune(s)); n > 0 {
		return s + strings.Repeat(" ", n)
	}
	return s
}

// PresentResult displays the reference run of the largest n.
func (CLIResultPresenter) PresentResult(result orchestration.RunResult, opts orchestration.PresentationOptions, out io.Writer) {
	DisplayResult(result, opts, out)
}

// HandleError reports err with the themed colors.
func (CLIResultPresenter) HandleError(err error, duration time.Duration, out io.Writer) int {
	return apperrors.HandleReductionError(err, duration, out, CLIColorProvider{})
}

// DisplayResult prints the integral estimate of one run. With opts.Details it
// adds the error against the closed form, the CPU usage and the heap growth;
// with opts.Verbose it lists the work done by every worker.
func DisplayResult(res orchestration.RunResult, opts orchestration.PresentationOptions, out io.Writer) {
	expr := opts.Function
	integrand, err := functions.Get(opts.Function)
	if err == nil {
		expr = integrand.Expression
	}

	fmt.Fprintf(out, "\n%s\n", ui.CurrentStyles().Heading.Render("Result"))
	fmt.Fprintf(out, "Integral of %s%s%s over [%g, %g] with n=%s (%s%s%s):\n",
		ui.ColorMagenta(), expr, ui.ColorReset(), opts.A, opts.B, format.FormatCount(res.N),
		ui.ColorBlue(), res.Strategy, ui.ColorReset())
	fmt.Fprintf(out, "  %s%.15g%s\n", ui.ColorBold(), res.Value, ui.ColorReset())

	if opts.Details {
		if err == nil {
			if exact, ok := integrand.Exact(opts.A, opts.B); ok {
				fmt.Fprintf(out, "  Exact value:    %.15g\n", exact)
				fmt.Fprintf(out, "  Absolute error: %.3e\n", res.Value-exact)
			}
		}
		fmt.Fprintf(out, "  Mean duration:  %s\n", format.FormatExecutionDuration(res.Mean))
		if res.CPU.Total() > 0 {
			fmt.Fprintf(out, "  CPU time:       %s user, %s system (%.2f cores)\n",
				format.FormatExecutionDuration(res.CPU.User), format.FormatExecutionDuration(res.CPU.System), res.Utilization)
		}
		fmt.Fprintf(out, "  Heap delta:     %s\n", format.FormatBytes(res.HeapDelta))
		fmt.Fprintf(out, "  Allocated:      %s\n", format.FormatBytes(int64(res.Allocated)))
	}

	if opts.Verbose && len(res.Workers) > 0 {
		fmt.Fprintf(out, "  Workers:\n")
		for i, w := range res.Workers {
			fmt.Fprintf(out, "    #%-3d %12s samples  partial=%.6g\n", i, format.FormatCount(w.Items), w.Sum)
		}
	}
}

// QuietResultPresenter prints one tab-separated line per successful run and
// nothing else, for use in scripts.
type QuietResultPresenter struct {
	// Out receives the result lines.
	Out io.Writer
	// ErrOut receives error reports.
	ErrOut io.Writer
}

var (
	_ orchestration.ResultPresenter = QuietResultPresenter{}
	_ orchestration.ErrorHandler    = QuietResultPresenter{}
)

// PresentComparisonTable prints the quiet lines to p.Out.
func (p QuietResultPresenter) PresentComparisonTable(results []orchestration.RunResult, _ orchestration.PresentationOptions, _ io.Writer) {
	for _, res := range results {
		if res.Err == nil {
			DisplayQuietResult(p.Out, res)
		}
	}
}

// PresentResult is a no-op in quiet mode.
func (QuietResultPresenter) PresentResult(orchestration.RunResult, orchestration.PresentationOptions, io.Writer) {}

// HandleError reports err to p.ErrOut without colors.
func (p QuietResultPresenter) HandleError(err error, duration time.Duration, _ io.Writer) int {
	return apperrors.HandleReductionError(err, duration, p.ErrOut, noColors{})
}

type noColors struct{}

func (noColors) Red() string    { return "" }
func (noColors) Yellow() string { return "" }
func (noColors) Reset() string  { return "" }
