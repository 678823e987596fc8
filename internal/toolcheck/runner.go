// Package toolcheck reports whether the external tools a Forge project
// depends on are installed, and which version.
package toolcheck

import (
	"bytes"
	"context"
	"os/exec"
)

// CmdResult holds the result of a command execution.
type CmdResult struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// CommandRunner finds and runs external commands.
type CommandRunner interface {
	// LookPath resolves name on PATH.
	LookPath(name string) (string, error)

	// Run executes a command. A non-zero exit is reported in ExitCode, not as
	// an error; errors are for failures to run at all.
	Run(ctx context.Context, name string, args []string) (CmdResult, error)
}

// RealRunner runs commands with os/exec.
type RealRunner struct{}

// NewRealRunner creates a new RealRunner.
func NewRealRunner() *RealRunner {
	return &RealRunner{}
}

// LookPath resolves name on PATH.
func (r *RealRunner) LookPath(name string) (string, error) {
	return exec.LookPath(name)
}

// Run executes the command and captures stdout/stderr.
func (r *RealRunner) Run(ctx context.Context, name string, args []string) (CmdResult, error) {
	cmd := exec.CommandContext(ctx, name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	result := CmdResult{
		Stdout: stdout.String(),
		Stderr: stderr.String(),
	}
	if err != nil {
		if exitErr, ok := err.(*exec.ExitError); ok {
			result.ExitCode = exitErr.ExitCode()
			return result, nil
		}
		return result, err
	}
	return result, nil
}

// FakeRunner serves LookPath and Run from tables, for tests.
type FakeRunner struct {
	paths   map[string]string
	results map[string]CmdResult
	errs    map[string]error
}

// NewFakeRunner creates a FakeRunner on which no tool is installed.
func NewFakeRunner() *FakeRunner {
	return &FakeRunner{
		paths:   make(map[string]string),
		results: make(map[string]CmdResult),
		errs:    make(map[string]error),
	}
}

// Install makes name resolvable and its commands print stdout.
func (f *FakeRunner) Install(name, stdout string) {
	f.paths[name] = "/usr/bin/" + name
	f.results[name] = CmdResult{Stdout: stdout}
}

// SetResult overrides the result of running name.
func (f *FakeRunner) SetResult(name string, result CmdResult) {
	f.results[name] = result
}

// SetRunError makes running name fail.
func (f *FakeRunner) SetRunError(name string, err error) {
	f.errs[name] = err
}

// LookPath returns the installed path or exec.ErrNotFound.
func (f *FakeRunner) LookPath(name string) (string, error) {
	path, ok := f.paths[name]
	if !ok {
		return "", &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return path, nil
}

// Run returns the configured result for name.
func (f *FakeRunner) Run(ctx context.Context, name string, args []string) (CmdResult, error) {
	if err := f.errs[name]; err != nil {
		return CmdResult{}, err
	}
	if _, ok := f.paths[name]; !ok {
		return CmdResult{}, &exec.Error{Name: name, Err: exec.ErrNotFound}
	}
	return f.results[name], nil
}
