package config

import (
	"flag"
	"os"
	"strconv"
	"strings"
)

// getEnvString returns QUADBENCH_<key>, or defaultVal when it is unset or
// empty.
func getEnvString(key, defaultVal string) string {
	if val := os.Getenv(EnvPrefix + key); val != "" {
		return val
	}
	return defaultVal
}

// isFlagSet reports whether name was given on the command line.
func isFlagSet(fs *flag.FlagSet, name string) bool {
	found := false
	fs.Visit(func(f *flag.Flag) {
		if f.Name == name {
			found = true
		}
	})
	return found
}

// isFlagSetAny reports whether any spelling of an aliased flag was given.
func isFlagSetAny(fs *flag.FlagSet, names ...string) bool {
	for _, name := range names {
		if isFlagSet(fs, name) {
			return true
		}
	}
	return false
}

// envOverride binds QUADBENCH_<envKey> to the flag spellings it shadows.
type envOverride struct {
	envKey string
	flags  []string
	apply  func(*AppConfig, string)
}

// Setters for the override table. Values that do not parse leave the field
// untouched so that validation sees the flag default.

func intSetter(field func(*AppConfig) *int) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.Atoi(v); err == nil {
			*field(c) = parsed
		}
	}
}

func floatSetter(field func(*AppConfig) *float64) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil {
			*field(c) = parsed
		}
	}
}

func stringSetter(field func(*AppConfig) *string) func(*AppConfig, string) {
	return func(c *AppConfig, v string) { *field(c) = v }
}

func boolSetter(field func(*AppConfig) *bool) func(*AppConfig, string) {
	return func(c *AppConfig, v string) {
		p := field(c)
		*p = parseBoolEnv(v, *p)
	}
}

var envOverrides = []envOverride{
	{"N", []string{"n"}, stringSetter(func(c *AppConfig) *string { return &c.NList })},
	{"SWEEP", []string{"sweep"}, stringSetter(func(c *AppConfig) *string { return &c.Sweep })},
	{"A", []string{"a"}, floatSetter(func(c *AppConfig) *float64 { return &c.A })},
	{"B", []string{"b"}, floatSetter(func(c *AppConfig) *float64 { return &c.B })},
	{"FUNC", []string{"func"}, stringSetter(func(c *AppConfig) *string { return &c.Function })},
	{"ALGO", []string{"algo"}, stringSetter(func(c *AppConfig) *string { return &c.Algo })},
	{"THREADS", []string{"threads"}, intSetter(func(c *AppConfig) *int { return &c.Threads })},
	{"QUEUE", []string{"queue"}, stringSetter(func(c *AppConfig) *string { return &c.Queue })},
	{"QUEUE_CAPACITY", []string{"queue-capacity"}, intSetter(func(c *AppConfig) *int { return &c.QueueCapacity })},
	{"REPEAT", []string{"repeat"}, intSetter(func(c *AppConfig) *int { return &c.Repeat })},
	{"TOLERANCE", []string{"tolerance"}, floatSetter(func(c *AppConfig) *float64 { return &c.Tolerance })},
	{"OUTPUT", []string{"output", "o"}, stringSetter(func(c *AppConfig) *string { return &c.OutputFile })},
	{"METRICS_FILE", []string{"metrics-file"}, stringSetter(func(c *AppConfig) *string { return &c.MetricsFile })},
	{"METRICS_ADDR", []string{"metrics-addr"}, stringSetter(func(c *AppConfig) *string { return &c.MetricsAddr })},
	{"LOG_LEVEL", []string{"log-level"}, stringSetter(func(c *AppConfig) *string { return &c.LogLevel })},
	{"VERBOSE", []string{"v", "verbose"}, boolSetter(func(c *AppConfig) *bool { return &c.Verbose })},
	{"DETAILS", []string{"d", "details"}, boolSetter(func(c *AppConfig) *bool { return &c.Details })},
	{"QUIET", []string{"q", "quiet"}, boolSetter(func(c *AppConfig) *bool { return &c.Quiet })},
	{"NO_COLOR", []string{"no-color"}, boolSetter(func(c *AppConfig) *bool { return &c.NoColor })},
}

// parseBoolEnv accepts true/1/yes and false/0/no, case-insensitively.
// Anything else yields defaultVal.
func parseBoolEnv(val string, defaultVal bool) bool {
	switch strings.ToLower(strings.TrimSpace(val)) {
	case "true", "1", "yes":
		return true
	case "false", "0", "no":
		return false
	}
	return defaultVal
}

// applyEnvOverrides copies QUADBENCH_* values into config for every flag the
// command line left alone, so that flags win over the environment and the
// environment wins over defaults.
func applyEnvOverrides(config *AppConfig, fs *flag.FlagSet) {
	for _, o := range envOverrides {
		if isFlagSetAny(fs, o.flags...) {
			continue
		}
		if val := os.Getenv(EnvPrefix + o.envKey); val != "" {
			o.apply(config, val)
		}
	}
}
