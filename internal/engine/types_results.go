package engine

import (
	"time"

	"github.com/4-youtest/forge-sdd-toolkit/internal/progress"
	"github.com/4-youtest/forge-sdd-toolkit/internal/project"
	"github.com/4-youtest/forge-sdd-toolkit/internal/provision"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolcheck"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolkit"
)

// InitResult represents the result of provisioning. It is returned on failure
// too, holding whatever completed.
type InitResult struct {
	// Project is the inspected target
	Project project.Info

	// Toolkit is where the template tree was found
	Toolkit toolkit.Location

	// ToolkitErr is set when the toolkit could not be found and nothing was
	// copied. It does not fail the operation.
	ToolkitErr error

	// Stats covers the copy rules that ran
	Stats provision.Stats

	// ScriptsExecutable counts scripts given the executable bit
	ScriptsExecutable int

	// GitErr is set when repository initialization failed. It does not fail
	// the operation.
	GitErr error

	// Legacy lists leftovers of older toolkit layouts
	Legacy []project.Legacy

	// Elapsed is the wall time of the run
	Elapsed time.Duration
}

// CheckResult represents the outcome of a tool check.
type CheckResult struct {
	// Results holds one entry per tool, in check order
	Results []toolcheck.Result

	// Hints are install instructions for missing tools
	Hints []string
}

// AllFound reports whether every checked tool is installed.
func (r *CheckResult) AllFound() bool {
	return len(r.Hints) == 0
}

// Step keys and labels for Init, in display order.
const (
	stepToolkit = "toolkit"
	stepSpecs   = "specs"
	stepReadme  = "readme"
	stepScripts = "scripts"
	stepGit     = "git"
	stepFinal   = "final"
)

var initSteps = []progress.Step{
	{Key: stepToolkit, Label: "Copy toolkit structure"},
	{Key: stepSpecs, Label: "Create specs directory"},
	{Key: stepReadme, Label: "Create usage guide"},
	{Key: stepScripts, Label: "Make scripts executable"},
	{Key: stepGit, Label: "Initialize git repository"},
	{Key: stepFinal, Label: "Finalize"},
}
