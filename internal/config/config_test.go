package config

import (
	"bytes"
	"errors"
	"flag"
	"math"
	"slices"
	"testing"

	apperrors "github.com/agbru/quadbench/internal/errors"
	"github.com/agbru/quadbench/internal/taskbag"
)

var testAlgos = []string{"partitioned", "queue", "sequential"}

func TestParseConfigDefaults(t *testing.T) {
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("quadbench", nil, &errBuf, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v (stderr: %s)", err, errBuf.String())
	}

	want := []int{100, 1_000, 10_000, 100_000, 1_000_000}
	if !slices.Equal(cfg.Sizes, want) {
		t.Errorf("Sizes = %v, want %v", cfg.Sizes, want)
	}
	if cfg.A != 0 || cfg.B != math.Pi {
		t.Errorf("interval = [%v, %v], want [0, pi]", cfg.A, cfg.B)
	}
	if cfg.Function != DefaultFunction || cfg.Algo != DefaultAlgo {
		t.Errorf("Function/Algo = %q/%q", cfg.Function, cfg.Algo)
	}
	if cfg.Queue != string(taskbag.KindMutex) {
		t.Errorf("Queue = %q, want mutex", cfg.Queue)
	}
	if cfg.Repeat != DefaultRepeat || cfg.Tolerance != DefaultTolerance {
		t.Errorf("Repeat/Tolerance = %d/%g", cfg.Repeat, cfg.Tolerance)
	}
}

func TestParseConfigFlags(t *testing.T) {
	var errBuf bytes.Buffer
	args := []string{"-n", "10, 1_000", "-threads", "4", "-algo", "queue", "-queue", "channel", "-func", "square", "-a", "1", "-b", "2", "-q", "-o", "out.tsv"}
	cfg, err := ParseConfig("quadbench", args, &errBuf, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if !slices.Equal(cfg.Sizes, []int{10, 1000}) {
		t.Errorf("Sizes = %v", cfg.Sizes)
	}
	if cfg.Threads != 4 || cfg.Algo != "queue" || cfg.Queue != "channel" || cfg.Function != "square" {
		t.Errorf("unexpected config %+v", cfg)
	}
	if cfg.A != 1 || cfg.B != 2 || !cfg.Quiet || cfg.OutputFile != "out.tsv" {
		t.Errorf("unexpected config %+v", cfg)
	}
}

func TestParseConfigQueueCapacityImpliesStream(t *testing.T) {
	var errBuf bytes.Buffer
	cfg, err := ParseConfig("quadbench", []string{"-queue-capacity", "64"}, &errBuf, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Queue != string(taskbag.KindStream) {
		t.Errorf("Queue = %q, want stream", cfg.Queue)
	}

	cfg, err = ParseConfig("quadbench", []string{"-queue-capacity", "64", "-queue", "channel"}, &errBuf, testAlgos)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Queue != string(taskbag.KindChannel) {
		t.Errorf("explicit -queue should win, got %q", cfg.Queue)
	}
}

func TestParseConfigErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"zero n", []string{"-n", "0"}},
		{"non-integer n", []string{"-n", "abc"}},
		{"negative threads", []string{"-threads", "-1"}},
		{"zero repeat", []string{"-repeat", "0"}},
		{"negative capacity", []string{"-queue-capacity", "-3"}},
		{"zero tolerance", []string{"-tolerance", "0"}},
		{"unknown function", []string{"-func", "cosh"}},
		{"unknown algo", []string{"-algo", "simd"}},
		{"unknown queue", []string{"-queue", "ring"}},
		{"inverted sweep", []string{"-sweep", "5:2"}},
		{"sweep too large", []string{"-sweep", "2:12"}},
		{"malformed sweep", []string{"-sweep", "a:b"}},
		{"infinite bound", []string{"-b", "+Inf"}},
		{"unknown flag", []string{"-bogus"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errBuf bytes.Buffer
			if _, err := ParseConfig("quadbench", tt.args, &errBuf, testAlgos); err == nil {
				t.Errorf("ParseConfig(%v) expected error", tt.args)
			}
		})
	}
}

func TestParseConfigErrorClasses(t *testing.T) {
	var errBuf bytes.Buffer
	_, err := ParseConfig("quadbench", []string{"-algo", "simd"}, &errBuf, testAlgos)
	var cfgErr apperrors.ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("expected ConfigError, got %T", err)
	}

	_, err = ParseConfig("quadbench", []string{"-sweep", "x"}, &errBuf, testAlgos)
	var valErr apperrors.ValidationError
	if !errors.As(err, &valErr) || valErr.Field != "sweep" {
		t.Errorf("expected sweep ValidationError, got %v", err)
	}

	_, err = ParseConfig("quadbench", []string{"-h"}, &errBuf, testAlgos)
	if !errors.Is(err, flag.ErrHelp) {
		t.Errorf("expected flag.ErrHelp, got %v", err)
	}
}

func TestParseSweep(t *testing.T) {
	t.Parallel()
	tests := []struct {
		in   string
		want []int
	}{
		{"0:2", []int{1, 10, 100}},
		{"3", []int{1000}},
		{" 4 : 4 ", []int{10000}},
	}
	for _, tt := range tests {
		got, err := parseSweep(tt.in)
		if err != nil {
			t.Errorf("parseSweep(%q) error = %v", tt.in, err)
			continue
		}
		if !slices.Equal(got, tt.want) {
			t.Errorf("parseSweep(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestApplyAdaptiveDefaults(t *testing.T) {
	t.Parallel()
	cfg := ApplyAdaptiveDefaults(AppConfig{})
	if cfg.Threads < 1 {
		t.Errorf("Threads = %d, want >= 1", cfg.Threads)
	}
	cfg = ApplyAdaptiveDefaults(AppConfig{Threads: 7})
	if cfg.Threads != 7 {
		t.Errorf("user value overwritten: %d", cfg.Threads)
	}
}
