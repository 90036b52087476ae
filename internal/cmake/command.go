package cmake

import (
	"context"
	"io"
	"os/exec"
)

// CommandRunner executes external commands.
// This interface enables testing without actual command execution.
type CommandRunner interface {
	// Run executes name in dir, streaming its output.
	Run(ctx context.Context, dir, name string, args ...string) error
	// Output executes name and returns combined stdout/stderr output.
	Output(ctx context.Context, name string, args ...string) ([]byte, error)
}

// ExecRunner executes actual system commands.
type ExecRunner struct {
	stdout io.Writer
	stderr io.Writer
}

// NewExecRunner creates a command runner that streams command output to the given writers.
func NewExecRunner(stdout, stderr io.Writer) *ExecRunner {
	return &ExecRunner{stdout: stdout, stderr: stderr}
}

// Run executes a command with its working directory set to dir.
func (r *ExecRunner) Run(ctx context.Context, dir, name string, args ...string) error {
	cmd := exec.CommandContext(ctx, name, args...)
	cmd.Dir = dir
	cmd.Stdout = r.stdout
	cmd.Stderr = r.stderr
	return cmd.Run()
}

// Output executes a command and returns combined stdout/stderr output.
func (r *ExecRunner) Output(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	return cmd.CombinedOutput()
}

// Call records a single MockCommandRunner invocation.
type Call struct {
	Dir  string
	Name string
	Args []string
}

// MockCommandRunner is a test double for CommandRunner.
type MockCommandRunner struct {
	VersionOutput []byte
	OutputErr     error
	RunErr        error
	Calls         []Call // Track calls for assertions
}

// Run records the call and returns the configured error.
func (m *MockCommandRunner) Run(_ context.Context, dir, name string, args ...string) error {
	m.Calls = append(m.Calls, Call{Dir: dir, Name: name, Args: args})
	return m.RunErr
}

// Output records the call and returns the configured output and error.
func (m *MockCommandRunner) Output(_ context.Context, name string, args ...string) ([]byte, error) {
	m.Calls = append(m.Calls, Call{Name: name, Args: args})
	return m.VersionOutput, m.OutputErr
}
