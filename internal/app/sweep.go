package app

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	"github.com/agbru/quadbench/internal/cli"
	apperrors "github.com/agbru/quadbench/internal/errors"
	"github.com/agbru/quadbench/internal/functions"
	"github.com/agbru/quadbench/internal/metrics"
	"github.com/agbru/quadbench/internal/orchestration"
	"github.com/agbru/quadbench/internal/ui"
)

// runSweep orchestrates a full sweep: every selected reducer at every n,
// followed by the comparison and the optional report and metrics outputs.
func (a *Application) runSweep(ctx context.Context, out io.Writer) int {
	ctx, stopSignals := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stopSignals()

	reducers := orchestration.GetReducersToRun(a.Config.Algo, a.Factory)
	if len(reducers) == 0 {
		fmt.Fprintf(a.ErrWriter, "Error: unknown reducer %q\n", a.Config.Algo)
		return apperrors.ExitErrorConfig
	}
	integrand, err := functions.Get(a.Config.Function)
	if err != nil {
		fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
		return apperrors.ExitErrorConfig
	}

	// Skip verbose output in quiet mode
	if !a.Config.Quiet {
		cli.PrintExecutionConfig(a.Config, out)
		cli.PrintExecutionMode(reducers, out)
	}

	var progressReporter orchestration.ProgressReporter
	var presenter orchestration.ResultPresenter
	var handler orchestration.ErrorHandler
	statusOut := out
	if a.Config.Quiet {
		statusOut = io.Discard
		progressReporter = orchestration.NullProgressReporter{}
		quiet := cli.QuietResultPresenter{Out: out, ErrOut: a.ErrWriter}
		presenter, handler = quiet, quiet
	} else {
		progressReporter = cli.CLIProgressReporter{}
		presenter, handler = cli.CLIResultPresenter{}, cli.CLIResultPresenter{}
	}

	rec := metrics.NewRecorder()
	if a.Config.MetricsAddr != "" {
		ms, err := startMetricsServer(a.Config.MetricsAddr, rec, a.Logger)
		if err != nil {
			fmt.Fprintf(a.ErrWriter, "Error: %v\n", err)
			return apperrors.ExitErrorConfig
		}
		defer ms.Stop()
		if !a.Config.Quiet {
			fmt.Fprintf(out, "Metrics available at http://%s/metrics\n", ms.Addr())
		}
	}

	start := time.Now()
	obs := orchestration.Observers{Logger: a.Logger, Recorder: rec}
	results, sweepErr := orchestration.ExecuteReductions(ctx, reducers, integrand.F, a.Config, obs, progressReporter, statusOut)
	if sweepErr != nil && len(results) == 0 {
		return handler.HandleError(sweepErr, time.Since(start), statusOut)
	}

	presOpts := orchestration.PresentationOptions{
		Function:  a.Config.Function,
		A:         a.Config.A,
		B:         a.Config.B,
		Tolerance: a.Config.Tolerance,
		Verbose:   a.Config.Verbose,
		Details:   a.Config.Details,
	}
	exitCode := orchestration.AnalyzeComparisonResults(results, presOpts, presenter, handler, statusOut)

	if code := a.writeOutputs(results, presOpts, rec, statusOut); exitCode == apperrors.ExitSuccess {
		exitCode = code
	}

	if sweepErr != nil {
		return handler.HandleError(sweepErr, time.Since(start), statusOut)
	}
	return exitCode
}

// writeOutputs saves the report and the metrics textfile when requested.
// Failures are reported on ErrWriter and turn into a generic exit code.
func (a *Application) writeOutputs(results []orchestration.RunResult, opts orchestration.PresentationOptions, rec *metrics.Recorder, out io.Writer) int {
	code := apperrors.ExitSuccess
	if path := a.Config.OutputFile; path != "" {
		if err := cli.WriteReportToFile(path, results, opts); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving report: %v\n", err)
			code = apperrors.ExitErrorGeneric
		} else {
			fmt.Fprintf(out, "\n%sReport saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorBlue(), path, ui.ColorReset())
		}
	}
	if path := a.Config.MetricsFile; path != "" {
		if err := rec.WriteTextfile(path); err != nil {
			fmt.Fprintf(a.ErrWriter, "Error saving metrics: %v\n", err)
			code = apperrors.ExitErrorGeneric
		} else {
			fmt.Fprintf(out, "%sMetrics saved to: %s%s%s\n", ui.ColorGreen(), ui.ColorBlue(), path, ui.ColorReset())
		}
	}
	return code
}
