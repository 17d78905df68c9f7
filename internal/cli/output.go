// # Naming Conventions
//
// Functions in this package follow consistent naming patterns based on their behavior:
//
//   - Display* functions write formatted output to an [io.Writer].
//     Examples: [DisplayResult], [DisplayQuietResult], [DisplayProgress].
//
//   - Format* functions return a formatted string without performing I/O.
//     Examples: [FormatQuietResult], [FormatReportLine].
//
//   - Write* functions write data to files on the filesystem.
//     Examples: [WriteReportToFile].

package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/agbru/quadbench/internal/orchestration"
)

// reportColumns is the header of the tab-separated report.
var reportColumns = []string{
	"n", "strategy", "threads", "value", "mean_ns", "stddev_ns", "repeats",
	"cpu_cores", "heap_delta_bytes", "allocated_bytes", "verdict", "deviation", "error",
}

// FormatReportLine renders one run as a tab-separated line without the
// trailing newline.
func FormatReportLine(res orchestration.RunResult) string {
	errText := ""
	if res.Err != nil {
		errText = strings.ReplaceAll(res.Err.Error(), "\t", " ")
		errText = strings.ReplaceAll(errText, "\n", "; ")
	}
	fields := []string{
		strconv.Itoa(res.N),
		res.Strategy,
		strconv.Itoa(res.Threads),
		strconv.FormatFloat(res.Value, 'g', -1, 64),
		strconv.FormatInt(res.Mean.Nanoseconds(), 10),
		strconv.FormatInt(res.StdDev.Nanoseconds(), 10),
		strconv.Itoa(len(res.Durations)),
		strconv.FormatFloat(res.Utilization, 'f', 3, 64),
		strconv.FormatInt(res.HeapDelta, 10),
		strconv.FormatUint(res.Allocated, 10),
		res.Verdict.String(),
		strconv.FormatFloat(res.Deviation, 'g', 3, 64),
		errText,
	}
	return strings.Join(fields, "\t")
}

// WriteReport writes the report header and one line per run to w.
func WriteReport(w io.Writer, results []orchestration.RunResult, opts orchestration.PresentationOptions) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "# quadbench report\n")
	fmt.Fprintf(bw, "# Generated: %s\n", time.Now().Format(time.RFC3339))
	fmt.Fprintf(bw, "# Function: %s over [%g, %g]\n", opts.Function, opts.A, opts.B)
	fmt.Fprintf(bw, "# Tolerance: %g*n\n", opts.Tolerance)
	fmt.Fprintln(bw, strings.Join(reportColumns, "\t"))
	for _, res := range results {
		fmt.Fprintln(bw, FormatReportLine(res))
	}
	return bw.Flush()
}

// WriteReportToFile writes the report to path, creating parent directories
// as needed. An empty path is a no-op.
//
// Parameters:
//   - path: The destination file.
//   - results: The analyzed runs.
//   - opts: The presentation options, echoed in the header.
//
// Returns:
//   - error: An error if the file cannot be written.
func WriteReportToFile(path string, results []orchestration.RunResult, opts orchestration.PresentationOptions) (err error) {
	if path == "" {
		return nil
	}

	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() {
		if cerr := file.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("failed to close output file: %w", cerr)
		}
	}()

	if err := WriteReport(file, results, opts); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// FormatQuietResult formats a run for quiet mode: n, reducer, value and mean
// duration in nanoseconds, tab-separated.
func FormatQuietResult(res orchestration.RunResult) string {
	return fmt.Sprintf("%d\t%s\t%s\t%d", res.N, res.Strategy, strconv.FormatFloat(res.Value, 'g', -1, 64), res.Mean.Nanoseconds())
}

// DisplayQuietResult writes FormatQuietResult(res) followed by a newline.
func DisplayQuietResult(out io.Writer, res orchestration.RunResult) {
	fmt.Fprintln(out, FormatQuietResult(res))
}
