package engine

import (
	"context"

	"github.com/4-youtest/forge-sdd-toolkit/internal/progress"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolcheck"
)

// Check looks up the default tools plus any configured ones and records
// each on the tracker.
func (e *Engine) Check(ctx context.Context, req *CheckRequest, tracker *progress.Tracker) (*CheckResult, error) {
	var tools []toolcheck.Tool
	if !req.SkipDefaults {
		tools = append(tools, toolcheck.DefaultTools()...)
	}
	seen := make(map[string]bool, len(tools))
	for _, tool := range tools {
		seen[tool.Name] = true
	}
	for _, tool := range toolcheck.FromConfig(e.cfg.Tools) {
		if seen[tool.Name] {
			e.logger.Debug("configured tool duplicates a default, ignoring", "tool", tool.Name)
			continue
		}
		seen[tool.Name] = true
		tools = append(tools, tool)
	}

	for _, tool := range tools {
		tracker.Add(tool.Name, tool.Label)
	}

	checker := toolcheck.NewChecker(e.runner, e.logger)
	result := &CheckResult{}
	for _, tool := range tools {
		if err := ctx.Err(); err != nil {
			return result, err
		}

		tracker.Start(tool.Name, "")
		r := checker.Check(ctx, tool)
		result.Results = append(result.Results, r)

		switch {
		case !r.Found:
			tracker.Error(tool.Name, "not found")
		case r.Version != "":
			tracker.Complete(tool.Name, r.Version)
		default:
			tracker.Complete(tool.Name, "available")
		}
	}

	result.Hints = toolcheck.Missing(result.Results)
	return result, nil
}
