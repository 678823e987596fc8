// Package engine provides the core business logic for forge-sdd operations.
//
// The engine package acts as the orchestration layer between CLI commands and
// lower-level operations. It resolves the toolkit tree, runs the merge-copy
// rules against the project and drives a progress.Tracker through each phase.
//
// Key components:
//   - Engine: Main orchestrator that coordinates all operations
//   - Init: Provisions the toolkit into a project
//   - Check: Reports which external tools are installed
package engine

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/4-youtest/forge-sdd-toolkit/internal/clock"
	"github.com/4-youtest/forge-sdd-toolkit/internal/config"
	"github.com/4-youtest/forge-sdd-toolkit/internal/fsops"
	"github.com/4-youtest/forge-sdd-toolkit/internal/gitx"
	"github.com/4-youtest/forge-sdd-toolkit/internal/hash"
	"github.com/4-youtest/forge-sdd-toolkit/internal/logging"
	"github.com/4-youtest/forge-sdd-toolkit/internal/progress"
	"github.com/4-youtest/forge-sdd-toolkit/internal/project"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolcheck"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolkit"
)

// ResourceLocator resolves the toolkit root. *toolkit.Locator implements it.
type ResourceLocator interface {
	Locate() toolkit.Location
}

// Engine orchestrates all forge-sdd operations.
// It is the main API surface called by the CLI.
type Engine struct {
	fs      fsops.FS
	hasher  hash.Hasher
	gitRepo gitx.GitRepo
	runner  toolcheck.CommandRunner
	locator ResourceLocator
	clock   clock.Clock
	cfg     config.Config
	logger  *slog.Logger
}

// New creates a new Engine with the given dependencies.
// A nil logger discards output.
func New(
	fs fsops.FS,
	hasher hash.Hasher,
	gitRepo gitx.GitRepo,
	runner toolcheck.CommandRunner,
	locator ResourceLocator,
	clk clock.Clock,
	cfg config.Config,
	logger *slog.Logger,
) *Engine {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Engine{
		fs:      fs,
		hasher:  hasher,
		gitRepo: gitRepo,
		runner:  runner,
		locator: locator,
		clock:   clk,
		cfg:     cfg,
		logger:  logger,
	}
}

// Inspect describes the project directory. A manifest that cannot be parsed
// is logged and otherwise treated as present.
func (e *Engine) Inspect(dir string) (project.Info, error) {
	info, err := e.fs.Stat(dir)
	if err != nil {
		return project.Info{}, fmt.Errorf("%w: %v", ErrProjectDir, err)
	}
	if !info.IsDir() {
		return project.Info{}, fmt.Errorf("%w: %s is not a directory", ErrProjectDir, dir)
	}

	proj, err := project.Detect(e.fs, dir)
	if err != nil {
		if !proj.IsForge {
			return proj, fmt.Errorf("failed to inspect project: %w", err)
		}
		e.logger.Warn("manifest could not be parsed", "path", dir, "error", err)
	}
	return proj, nil
}

// GitAvailable reports whether git can be used for repository setup.
func (e *Engine) GitAvailable() bool {
	return e.gitRepo.Available()
}

// run executes one tracked phase. The context is checked before the phase
// starts; a failure marks both the phase and the final step as errors.
func run(ctx context.Context, tracker *progress.Tracker, key string, fn func() (string, error)) error {
	if err := ctx.Err(); err != nil {
		tracker.Error(key, "canceled")
		tracker.Error(stepFinal, err.Error())
		return err
	}

	tracker.Start(key, "")
	detail, err := fn()
	if err != nil {
		tracker.Error(key, "failed")
		tracker.Error(stepFinal, err.Error())
		return err
	}
	tracker.Complete(key, detail)
	return nil
}
