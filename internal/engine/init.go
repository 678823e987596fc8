package engine

import (
	"context"
	"errors"
	"fmt"

	"github.com/4-youtest/forge-sdd-toolkit/internal/clock"
	"github.com/4-youtest/forge-sdd-toolkit/internal/progress"
	"github.com/4-youtest/forge-sdd-toolkit/internal/project"
	"github.com/4-youtest/forge-sdd-toolkit/internal/provision"
	"github.com/4-youtest/forge-sdd-toolkit/internal/scaffold"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolkit"
)

// Init provisions the toolkit into req.ProjectDir.
//
// Algorithm steps:
// 1. Inspect the project; refuse a non-Forge directory unless forced
// 2. Register every phase on the tracker as pending
// 3. Locate the toolkit and apply the default copy rules
// 4. Create the specs directory and usage guide
// 5. Make the bash scripts executable
// 6. Detect or initialize the git repository
// 7. Report legacy leftovers
//
// The first failing phase stops the run. Files already written stay in place
// and the returned result describes them.
func (e *Engine) Init(ctx context.Context, req *InitRequest, tracker *progress.Tracker) (*InitResult, error) {
	proj, err := e.Inspect(req.ProjectDir)
	if err != nil {
		return nil, err
	}
	if !proj.IsForge && !req.Force {
		return nil, fmt.Errorf("%w: no %s in %s", ErrNotForgeProject, project.ManifestFile, req.ProjectDir)
	}

	result := &InitResult{Project: proj}
	start := e.clock.Now()

	for _, step := range initSteps {
		tracker.Add(step.Key, step.Label)
	}

	err = run(ctx, tracker, stepToolkit, func() (string, error) {
		return e.copyToolkit(req.ProjectDir, result)
	})
	if err != nil {
		return result, err
	}

	err = run(ctx, tracker, stepSpecs, func() (string, error) {
		if _, err := scaffold.CreateSpecsDir(e.fs, req.ProjectDir); err != nil {
			return "", err
		}
		return scaffold.SpecsDir + "/ created", nil
	})
	if err != nil {
		return result, err
	}

	err = run(ctx, tracker, stepReadme, func() (string, error) {
		if _, err := scaffold.WriteGuide(e.fs, req.ProjectDir); err != nil {
			return "", err
		}
		return scaffold.GuideFile, nil
	})
	if err != nil {
		return result, err
	}

	err = run(ctx, tracker, stepScripts, func() (string, error) {
		n, err := scaffold.MakeScriptsExecutable(e.fs, req.ProjectDir)
		if err != nil {
			return "", err
		}
		result.ScriptsExecutable = n
		if n == 0 {
			return "no bash scripts found", nil
		}
		return plural(n, "bash script", "bash scripts") + " executable", nil
	})
	if err != nil {
		return result, err
	}

	if err := ctx.Err(); err != nil {
		tracker.Error(stepFinal, err.Error())
		return result, err
	}
	e.setupGit(req, tracker, result)

	result.Legacy = project.FindLegacy(e.fs, req.ProjectDir)
	result.Elapsed = clock.Since(e.clock, start)
	tracker.Complete(stepFinal, fmt.Sprintf("toolkit ready in %s", result.Elapsed))
	return result, nil
}

// copyToolkit locates the toolkit tree and applies the default rules.
func (e *Engine) copyToolkit(projectDir string, result *InitResult) (string, error) {
	loc := e.locator.Locate()
	result.Toolkit = loc
	e.logger.Debug("toolkit located", "root", loc.Root, "reason", string(loc.Reason), "found", loc.Found)

	rules := provision.DefaultRules()
	applier := provision.NewApplier(e.fs, e.hasher, e.logger)
	stats, err := applier.Apply(rules, loc.Root, projectDir)
	result.Stats = stats
	if err != nil {
		return "", err
	}

	detail := fmt.Sprintf("%s in %s", plural(stats.FilesCopied, "file", "files"), plural(stats.DirsTouched, "directory", "directories"))
	if stats.Unchanged > 0 {
		detail += fmt.Sprintf(", %d unchanged", stats.Unchanged)
	}
	if len(stats.Skipped) > 0 {
		detail += fmt.Sprintf(", %d skipped", len(stats.Skipped))
	}

	// A fallback root with none of the expected subtrees installed nothing.
	// The run goes on and the caller decides how to report it.
	if !loc.Found && len(stats.Skipped) == len(rules) {
		result.ToolkitErr = loc.Err()
		e.logger.Warn("toolkit not found, nothing copied", "root", loc.Root, "error", result.ToolkitErr)
		detail = "toolkit not found, " + detail
	}
	return detail, nil
}

// setupGit detects or initializes the repository. Failures are recorded on
// the tracker and the result but do not stop the run.
func (e *Engine) setupGit(req *InitRequest, tracker *progress.Tracker, result *InitResult) {
	if req.NoGit {
		tracker.Skip(stepGit, "--no-git flag")
		return
	}

	tracker.Start(stepGit, "")
	if root, err := e.gitRepo.Discover(req.ProjectDir); err == nil {
		detail := "existing repo detected"
		if root != req.ProjectDir {
			detail = "existing repo at " + root
		}
		tracker.Complete(stepGit, detail)
		return
	}

	if !e.gitRepo.Available() {
		tracker.Skip(stepGit, "git not available")
		return
	}

	if err := e.gitRepo.Init(req.ProjectDir, e.cfg.Git.CommitMessage); err != nil {
		e.logger.Warn("git init failed", "path", req.ProjectDir, "error", err)
		result.GitErr = err
		tracker.Error(stepGit, "init failed")
		return
	}
	tracker.Complete(stepGit, "initialized")
}

// IsCopyFailure reports whether err came from the merge-copy phase.
func IsCopyFailure(err error) bool {
	return errors.Is(err, provision.ErrCopyFailure)
}

// IsResourceNotFound reports whether err means the toolkit tree was missing.
func IsResourceNotFound(err error) bool {
	return errors.Is(err, toolkit.ErrResourceNotFound)
}

func plural(n int, singular, pluralForm string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, singular)
	}
	return fmt.Sprintf("%d %s", n, pluralForm)
}
