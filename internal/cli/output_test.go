package cli

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/agbru/quadbench/internal/orchestration"
)

func sampleResults() []orchestration.RunResult {
	return []orchestration.RunResult{
		{Strategy: "sequential", N: 1000, Threads: 1, Value: 1.9999983550656624, Mean: 2 * time.Millisecond, Durations: []time.Duration{2 * time.Millisecond}, Verdict: orchestration.VerdictReference},
		{Strategy: "queue", N: 1000, Threads: 4, Value: 1.999998355065663, Mean: 3 * time.Millisecond, Durations: []time.Duration{3 * time.Millisecond}, Verdict: orchestration.VerdictAgree, Deviation: 6e-16, Utilization: 3.5},
		{Strategy: "partitioned", N: 1000, Threads: 4, Err: errors.New("partitioned: worker 2 failed:\tboom"), Verdict: orchestration.VerdictFailed},
	}
}

func TestWriteReportToFile(t *testing.T) {
	t.Parallel()
	tmpDir := t.TempDir()
	opts := orchestration.PresentationOptions{Function: "sin", A: 0, B: 3.14, Tolerance: 1e-9}

	testCases := []struct {
		name       string
		outputFile string
		checkFunc  func(t *testing.T, filePath string)
	}{
		{
			name:       "Write report",
			outputFile: filepath.Join(tmpDir, "report.tsv"),
			checkFunc: func(t *testing.T, filePath string) {
				content, err := os.ReadFile(filePath)
				if err != nil {
					t.Fatalf("Failed to read output file: %v", err)
				}
				lines := strings.Split(strings.TrimSpace(string(content)), "\n")
				if !strings.HasPrefix(lines[0], "# quadbench report") {
					t.Errorf("unexpected first line %q", lines[0])
				}
				var data []string
				for _, l := range lines {
					if !strings.HasPrefix(l, "#") {
						data = append(data, l)
					}
				}
				if len(data) != 4 {
					t.Fatalf("expected header + 3 rows, got %d lines", len(data))
				}
				if !strings.HasPrefix(data[0], "n\tstrategy\tthreads") {
					t.Errorf("unexpected column header %q", data[0])
				}
				for _, row := range data {
					if got := strings.Count(row, "\t"); got != len(reportColumns)-1 {
						t.Errorf("row %q has %d tabs, want %d", row, got, len(reportColumns)-1)
					}
				}
			},
		},
		{
			name:       "Empty output file (no write)",
			outputFile: "",
		},
		{
			name:       "Create nested directory",
			outputFile: filepath.Join(tmpDir, "nested", "dir", "report.tsv"),
			checkFunc: func(t *testing.T, filePath string) {
				if _, err := os.Stat(filePath); err != nil {
					t.Errorf("File should exist in nested directory: %v", err)
				}
			},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if err := WriteReportToFile(tc.outputFile, sampleResults(), opts); err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if tc.checkFunc != nil {
				tc.checkFunc(t, tc.outputFile)
			}
		})
	}
}

func TestWriteReportToFile_Unwritable(t *testing.T) {
	t.Parallel()
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	if err := os.WriteFile(blocker, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	// A regular file cannot be used as a parent directory.
	if err := WriteReportToFile(filepath.Join(blocker, "report.tsv"), sampleResults(), orchestration.PresentationOptions{}); err == nil {
		t.Error("expected an error")
	}
}

func TestFormatReportLine(t *testing.T) {
	t.Parallel()
	res := sampleResults()
	line := FormatReportLine(res[1])
	fields := strings.Split(line, "\t")
	if len(fields) != len(reportColumns) {
		t.Fatalf("got %d fields, want %d", len(fields), len(reportColumns))
	}
	column := func(name string) string {
		t.Helper()
		i := slices.Index(reportColumns, name)
		if i < 0 {
			t.Fatalf("no report column %q", name)
		}
		return fields[i]
	}
	for name, want := range map[string]string{
		"n":               "1000",
		"strategy":        "queue",
		"threads":         "4",
		"mean_ns":         "3000000",
		"repeats":         "1",
		"cpu_cores":       "3.500",
		"allocated_bytes": "0",
		"verdict":         "ok",
		"deviation":       "6e-16",
		"error":           "",
	} {
		if got := column(name); got != want {
			t.Errorf("%s = %q, want %q", name, got, want)
		}
	}
	if fields[10] != "ok" {
		t.Errorf("verdict column moved: fields[10] = %q", fields[10])
	}

	failed := FormatReportLine(res[2])
	if strings.Count(failed, "\t") != len(reportColumns)-1 {
		t.Errorf("tabs in the error text must be escaped: %q", failed)
	}
}

func TestFormatQuietResult(t *testing.T) {
	t.Parallel()
	got := FormatQuietResult(orchestration.RunResult{Strategy: "queue", N: 10, Value: 0.5, Mean: time.Microsecond})
	if got != "10\tqueue\t0.5\t1000" {
		t.Errorf("FormatQuietResult() = %q", got)
	}
}

func TestDisplayQuietResult(t *testing.T) {
	t.Parallel()
	var buf bytes.Buffer
	DisplayQuietResult(&buf, orchestration.RunResult{Strategy: "sequential", N: 1, Value: 2})
	if buf.String() != "1\tsequential\t2\t0\n" {
		t.Errorf("DisplayQuietResult() wrote %q", buf.String())
	}
}
