package cmake

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/lwiot/lwiot-build/internal/version"
)

// DefaultTool is the cmake executable looked up on PATH.
const DefaultTool = "cmake"

// BuildRoot is the directory, relative to the source tree, holding per-target build trees.
const BuildRoot = "build"

// Sentinel errors
var (
	ErrBuildDirNotDirectory = errors.New("build path exists and is not a directory")
	ErrInvalidTargetName    = errors.New("invalid target name")
)

// ValidateTarget rejects target names that would not map onto a single directory
// below build/: empty names, "." and "..", and names containing path separators.
func ValidateTarget(target string) error {
	if target == "" || target == "." || target == ".." || strings.ContainsAny(target, `/\`) {
		return fmt.Errorf("%w: %q", ErrInvalidTargetName, target)
	}
	return nil
}

// Dispatcher hands resolved arguments to one of two sinks: standard output (dry run)
// or the cmake executable running inside build/<target>.
type Dispatcher struct {
	runner  CommandRunner
	stdout  io.Writer
	logger  *slog.Logger
	tool    string
	baseDir string
}

// NewDispatcher creates a dispatcher. baseDir is the source tree root; empty means the
// current working directory. An empty tool selects DefaultTool.
func NewDispatcher(runner CommandRunner, stdout io.Writer, logger *slog.Logger, tool, baseDir string) *Dispatcher {
	if tool == "" {
		tool = DefaultTool
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Dispatcher{
		runner:  runner,
		stdout:  stdout,
		logger:  logger,
		tool:    tool,
		baseDir: baseDir,
	}
}

// RelativeBuildDir returns build/<target>.
func RelativeBuildDir(target string) string {
	return filepath.Join(BuildRoot, target)
}

// BuildDir returns the build directory of target under the dispatcher's base directory.
func (d *Dispatcher) BuildDir(target string) string {
	return filepath.Join(d.baseDir, RelativeBuildDir(target))
}

// DryRun prints the build directory and the cmake command without side effects.
func (d *Dispatcher) DryRun(target string, args Arguments) error {
	if err := ValidateTarget(target); err != nil {
		return err
	}
	_, err := fmt.Fprintf(d.stdout,
		"Relative build directory: %s\nCMake configuration command:\n%s %s\n",
		RelativeBuildDir(target), d.tool, args.String())
	return err
}

// Configure ensures build/<target> exists and runs cmake inside it.
// When constraint is set the cmake version is checked first.
func (d *Dispatcher) Configure(ctx context.Context, target, constraint string, args Arguments) error {
	if err := ValidateTarget(target); err != nil {
		return err
	}
	if constraint != "" {
		if err := d.checkToolVersion(ctx, constraint); err != nil {
			return err
		}
	}

	dir := d.BuildDir(target)
	if err := EnsureDir(dir); err != nil {
		return err
	}

	d.logger.Info("running cmake",
		"tool", d.tool,
		"dir", dir,
		"args", args.String())

	if err := d.runner.Run(ctx, dir, d.tool, args.Tokens()...); err != nil {
		return fmt.Errorf("%s failed in %s: %w", d.tool, dir, err)
	}
	return nil
}

func (d *Dispatcher) checkToolVersion(ctx context.Context, constraint string) error {
	out, err := d.runner.Output(ctx, d.tool, "--version")
	if err != nil {
		return fmt.Errorf("failed to query %s version: %w", d.tool, err)
	}
	v, err := version.CheckToolVersion(constraint, string(out))
	if err != nil {
		return fmt.Errorf("%s: %w", d.tool, err)
	}
	d.logger.Debug("cmake version accepted", "version", v.String(), "constraint", constraint)
	return nil
}

// EnsureDir creates dir and its parents if absent. An existing non-directory is an error.
func EnsureDir(dir string) error {
	stat, err := os.Stat(dir)
	if err == nil {
		if !stat.IsDir() {
			return fmt.Errorf("%w: %s", ErrBuildDirNotDirectory, dir)
		}
		return nil
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create build directory %s: %w", dir, err)
	}
	return nil
}
