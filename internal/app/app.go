package app

import (
	"context"
	"errors"
	"flag"
	"io"

	"github.com/rs/zerolog"

	"github.com/agbru/quadbench/internal/config"
	"github.com/agbru/quadbench/internal/integral"
	"github.com/agbru/quadbench/internal/logging"
	"github.com/agbru/quadbench/internal/ui"
)

// Application represents the quadbench application instance.
type Application struct {
	Config    config.AppConfig
	Factory   integral.Factory
	ErrWriter io.Writer
	// Logger receives structured run logs. When nil, Run builds a zerolog
	// logger on ErrWriter at the configured level.
	Logger logging.Logger
}

// AppOption configures an Application during construction.
type AppOption func(*Application)

// WithFactory sets a custom reducer Factory for the application.
func WithFactory(f integral.Factory) AppOption {
	return func(a *Application) { a.Factory = f }
}

// WithLogger sets the logger used for run logs.
func WithLogger(l logging.Logger) AppOption {
	return func(a *Application) { a.Logger = l }
}

// New creates a new Application instance by parsing command-line arguments.
// args[0] is the program name.
func New(args []string, errWriter io.Writer, opts ...AppOption) (*Application, error) {
	app := &Application{ErrWriter: errWriter}
	for _, opt := range opts {
		opt(app)
	}
	if app.Factory == nil {
		app.Factory = integral.NewDefaultFactory()
	}

	programName := "quadbench"
	var cmdArgs []string
	if len(args) > 0 {
		programName = args[0]
		cmdArgs = args[1:]
	}

	cfg, err := config.ParseConfig(programName, cmdArgs, errWriter, app.Factory.List())
	if err != nil {
		return nil, err
	}

	app.Config = config.ApplyAdaptiveDefaults(cfg)
	return app, nil
}

// Run executes the sweep and returns the process exit code.
func (a *Application) Run(ctx context.Context, out io.Writer) int {
	level := logging.ParseLevel(a.Config.LogLevel)
	zerolog.SetGlobalLevel(level)
	if a.Logger == nil {
		a.Logger = logging.NewLogger(a.ErrWriter, "quadbench").WithLevel(level)
	}
	ui.InitTheme(a.Config.NoColor)

	return a.runSweep(ctx, out)
}

// IsHelpError checks if the error is a help flag error (--help was used).
func IsHelpError(err error) bool {
	return errors.Is(err, flag.ErrHelp)
}
