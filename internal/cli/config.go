package cli

import (
	"fmt"
	"io"
	"runtime"
	"strings"

	"github.com/agbru/quadbench/internal/config"
	"github.com/agbru/quadbench/internal/format"
	"github.com/agbru/quadbench/internal/functions"
	"github.com/agbru/quadbench/internal/integral"
	"github.com/agbru/quadbench/internal/ui"
)

// PrintExecutionConfig displays the integrand, the sweep and the worker
// layout before the runs start.
//
// Parameters:
//   - cfg: The application configuration.
//   - out: The writer for standard output.
func PrintExecutionConfig(cfg config.AppConfig, out io.Writer) {
	expr := cfg.Function
	if in, err := functions.Get(cfg.Function); err == nil {
		expr = in.Expression
	}
	sizes := make([]string, len(cfg.Sizes))
	for i, n := range cfg.Sizes {
		sizes[i] = format.FormatCount(n)
	}

	fmt.Fprintf(out, "%s\n", ui.CurrentStyles().Heading.Render("Execution Configuration"))
	fmt.Fprintf(out, "Integrating %s%s%s over [%g, %g] for n = %s%s%s.\n",
		ui.ColorMagenta(), expr, ui.ColorReset(), cfg.A, cfg.B,
		ui.ColorYellow(), strings.Join(sizes, ", "), ui.ColorReset())
	fmt.Fprintf(out, "Environment: %s%d%s logical processors, Go %s%s%s.\n",
		ui.ColorBlue(), runtime.NumCPU(), ui.ColorReset(), ui.ColorBlue(), runtime.Version(), ui.ColorReset())
	fmt.Fprintf(out, "Workers: %s%d%s threads, %s%s%s queue", ui.ColorBlue(), cfg.Threads, ui.ColorReset(), ui.ColorBlue(), cfg.Queue, ui.ColorReset())
	if cfg.QueueCapacity > 0 {
		fmt.Fprintf(out, " (capacity %d)", cfg.QueueCapacity)
	}
	fmt.Fprintf(out, ", %d repeat(s) per run, tolerance %g*n.\n", cfg.Repeat, cfg.Tolerance)
}

// PrintExecutionMode displays whether one reducer runs or several are
// compared.
//
// Parameters:
//   - reducers: The reducers that will be executed.
//   - out: The writer for standard output.
func PrintExecutionMode(reducers []integral.Reducer, out io.Writer) {
	var modeDesc string
	if len(reducers) > 1 {
		names := make([]string, len(reducers))
		for i, r := range reducers {
			names[i] = r.Name()
		}
		modeDesc = fmt.Sprintf("Comparison of %s%s%s", ui.ColorGreen(), strings.Join(names, ", "), ui.ColorReset())
	} else {
		modeDesc = fmt.Sprintf("Single reducer %s%s%s", ui.ColorGreen(), reducers[0].Name(), ui.ColorReset())
	}
	fmt.Fprintf(out, "Execution mode: %s.\n", modeDesc)
	fmt.Fprintf(out, "\n--- Starting Execution ---\n")
}
