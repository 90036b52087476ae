// Package cli provides the command-line interface of the build configurator.
// It resolves a target from the YAML build configuration and configures it with cmake.
package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/urfave/cli/v2"

	"github.com/lwiot/lwiot-build/internal/cmake"
	"github.com/lwiot/lwiot-build/internal/config"
)

// Version is reported by -v/--version.
const Version = "0.0.1"

// Request is the parsed command line. It is built once and passed by value.
type Request struct {
	Target    string
	Config    string
	Defines   []string
	BuildType string
	Text      bool
	Strict    bool
	Tool      string
}

// Env carries the collaborators used by Run.
type Env struct {
	Runner  cmake.CommandRunner
	Stdout  io.Writer
	Logger  *slog.Logger
	BaseDir string
}

// appDeps overrides collaborators in tests.
type appDeps struct {
	runner  cmake.CommandRunner
	baseDir string
}

// NewApp creates and configures the main CLI application.
func NewApp() *cli.App {
	return newApp(appDeps{})
}

func newApp(deps appDeps) *cli.App {
	return &cli.App{
		Name:    "lwiot-build",
		Usage:   "lwIoT build configurator",
		Version: Version,
		// Definitions may legitimately contain commas (e.g. list-valued cache entries).
		DisableSliceFlagSeparator: true,
		Flags: []cli.Flag{
			&cli.StringSliceFlag{
				Name:    "define",
				Aliases: []string{"D"},
				Usage:   "extra cmake definition `DEF`, repeatable (e.g. -D HAVE_NETWORKING=1)",
			},
			&cli.StringFlag{
				Name:    "buildtype",
				Aliases: []string{"b"},
				Value:   cmake.DefaultBuildType,
				Usage:   "build `TYPE` (Debug, Release, RelWithDebInfo, MinSizeRel)",
			},
			&cli.StringFlag{
				Name:     "target",
				Aliases:  []string{"t"},
				Usage:    "build `TARGET` from the configuration file",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "config",
				Aliases:  []string{"c"},
				Usage:    "build configuration file `PATH`",
				Required: true,
				EnvVars:  []string{"LWIOT_BUILD_CONFIG"},
			},
			&cli.BoolFlag{
				Name:    "text",
				Aliases: []string{"T"},
				Usage:   "output the cmake command to the terminal instead of running it",
			},
			&cli.BoolFlag{
				Name:  "strict",
				Usage: "fail when the configuration or target cannot be resolved",
			},
			&cli.StringFlag{
				Name:    "cmake",
				Value:   cmake.DefaultTool,
				Usage:   "cmake executable",
				EnvVars: []string{"LWIOT_BUILD_CMAKE"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "warn",
				Usage:   "log level (debug, info, warn, error)",
				EnvVars: []string{"LWIOT_BUILD_LOG_LEVEL"},
			},
			&cli.StringFlag{
				Name:    "log-format",
				Value:   "text",
				Usage:   "log format (text, json)",
				EnvVars: []string{"LWIOT_BUILD_LOG_FORMAT"},
			},
		},
		Action: func(c *cli.Context) error {
			return configureAction(c, deps)
		},
	}
}

// newRequest copies the parsed flags into a Request.
func newRequest(c *cli.Context) Request {
	defines := append([]string(nil), c.StringSlice("define")...)
	return Request{
		Target:    c.String("target"),
		Config:    c.String("config"),
		Defines:   defines,
		BuildType: c.String("buildtype"),
		Text:      c.Bool("text"),
		Strict:    c.Bool("strict"),
		Tool:      c.String("cmake"),
	}
}

func configureAction(c *cli.Context, deps appDeps) error {
	log, err := newLogger(c)
	if err != nil {
		return err
	}

	runner := deps.runner
	if runner == nil {
		runner = cmake.NewExecRunner(c.App.Writer, c.App.ErrWriter)
	}

	return Run(c.Context, newRequest(c), Env{
		Runner:  runner,
		Stdout:  c.App.Writer,
		Logger:  log,
		BaseDir: deps.baseDir,
	})
}

// Run resolves the request's target, builds the cmake arguments and dispatches them.
// A resolution failure prints a diagnostic and, unless the request is strict, dispatches
// an empty argument list: neither extra definitions nor the build type are applied to an
// unresolved target.
func Run(ctx context.Context, req Request, env Env) error {
	log := env.Logger
	if log == nil {
		log = slog.Default()
	}

	if err := cmake.ValidateTarget(req.Target); err != nil {
		return err
	}

	d := cmake.NewDispatcher(env.Runner, env.Stdout, log, req.Tool, env.BaseDir)

	var args cmake.Arguments
	defs, constraint, err := resolve(req, log)
	if err != nil {
		fmt.Fprintln(env.Stdout, diagnostic(req, err))
		if req.Strict {
			return fmt.Errorf("failed to resolve target %s: %w", req.Target, err)
		}
		constraint = ""
	} else {
		buildType, known := cmake.NormalizeBuildType(req.BuildType)
		if !known {
			log.Warn("unknown build type, passing through", "buildtype", buildType)
		}
		args = cmake.BuildArguments(defs, req.Defines, buildType)
	}

	if req.Text {
		return d.DryRun(req.Target, args)
	}
	if err := d.Configure(ctx, req.Target, constraint, args); err != nil {
		log.Error("cmake configuration failed", "target", req.Target, "error", err)
		return err
	}
	return nil
}

// resolve returns the target's definitions and its cmake version constraint.
func resolve(req Request, log *slog.Logger) ([]string, string, error) {
	cfg, err := config.LoadConfig(req.Config)
	if err != nil {
		log.Warn("failed to load config", "config", req.Config, "error", err)
		return nil, "", err
	}

	defs, err := cfg.Resolve(req.Target)
	if err != nil {
		log.Warn("failed to resolve target",
			"target", req.Target,
			"available_targets", cfg.TargetNames(),
			"error", err)
		return nil, "", err
	}

	target, _ := cfg.Lookup(req.Target)
	log.Debug("resolved target",
		"target", req.Target,
		"defs", len(defs),
		"cmake_version", target.CMakeVersion)
	return defs, target.CMakeVersion, nil
}

// diagnostic renders the user-facing message for a resolution failure.
func diagnostic(req Request, err error) string {
	var notFound *config.TargetNotFoundError
	switch {
	case errors.As(err, &notFound):
		return fmt.Sprintf("Unable to parse build configuration. Definition not found: %s", notFound.Key)
	case errors.Is(err, config.ErrConfigUnreadable):
		return fmt.Sprintf("Unable to open configuration file %s", req.Config)
	default:
		return fmt.Sprintf("Unable to parse build configuration: %v", err)
	}
}
