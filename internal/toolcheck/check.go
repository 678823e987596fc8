package toolcheck

import (
	"context"
	"log/slog"
	"strings"

	"github.com/4-youtest/forge-sdd-toolkit/internal/config"
	"github.com/4-youtest/forge-sdd-toolkit/internal/logging"
)

// Tool describes one external command to check for.
type Tool struct {
	Name        string
	Label       string
	VersionArgs []string
	InstallHint string
}

const nodeHint = "Install Node.js (includes npm): https://nodejs.org/"

// DefaultTools returns the tools a Forge workflow needs.
func DefaultTools() []Tool {
	return []Tool{
		{Name: "git", Label: "Git version control", VersionArgs: []string{"--version"}, InstallHint: "Install git: https://git-scm.com/downloads"},
		{Name: "node", Label: "Node.js", VersionArgs: []string{"--version"}, InstallHint: nodeHint},
		{Name: "npm", Label: "npm package manager", VersionArgs: []string{"--version"}, InstallHint: nodeHint},
		{Name: "forge", Label: "Forge CLI", VersionArgs: []string{"--version"}, InstallHint: "Install Forge CLI: npm install -g @forge/cli"},
	}
}

// FromConfig converts configured tools, filling in a label and version flag.
func FromConfig(tools []config.ToolConfig) []Tool {
	out := make([]Tool, 0, len(tools))
	for _, tc := range tools {
		tool := Tool{
			Name:        tc.Name,
			Label:       tc.Label,
			VersionArgs: tc.VersionArgs,
			InstallHint: tc.InstallHint,
		}
		if tool.Label == "" {
			tool.Label = tool.Name
		}
		if len(tool.VersionArgs) == 0 {
			tool.VersionArgs = []string{"--version"}
		}
		out = append(out, tool)
	}
	return out
}

// Result is the outcome of checking one tool.
type Result struct {
	Tool  Tool
	Found bool
	Path  string

	// Version is the first line of the version output, empty when the
	// version command failed.
	Version string
}

// Checker looks tools up through a CommandRunner.
type Checker struct {
	runner CommandRunner
	logger *slog.Logger
}

// NewChecker creates a Checker. A nil logger discards output.
func NewChecker(runner CommandRunner, logger *slog.Logger) *Checker {
	if logger == nil {
		logger = logging.NewNop()
	}
	return &Checker{runner: runner, logger: logger}
}

// Check looks up a single tool and asks it for its version.
func (c *Checker) Check(ctx context.Context, tool Tool) Result {
	result := Result{Tool: tool}

	path, err := c.runner.LookPath(tool.Name)
	if err != nil {
		c.logger.Debug("tool not found", "tool", tool.Name, "error", err)
		return result
	}
	result.Found = true
	result.Path = path

	if len(tool.VersionArgs) == 0 {
		return result
	}
	out, err := c.runner.Run(ctx, tool.Name, tool.VersionArgs)
	if err != nil || out.ExitCode != 0 {
		c.logger.Debug("version check failed", "tool", tool.Name, "exit_code", out.ExitCode, "error", err)
		return result
	}
	result.Version = firstLine(out.Stdout)
	return result
}

// Missing returns the install hints for tools that were not found, without
// duplicates and in check order.
func Missing(results []Result) []string {
	seen := make(map[string]bool)
	var hints []string
	for _, r := range results {
		if r.Found {
			continue
		}
		hint := r.Tool.InstallHint
		if hint == "" {
			hint = "Install " + r.Tool.Name
		}
		if seen[hint] {
			continue
		}
		seen[hint] = true
		hints = append(hints, hint)
	}
	return hints
}

// firstLine returns the first non-empty line of s, trimmed.
func firstLine(s string) string {
	for _, line := range strings.Split(s, "\n") {
		if line = strings.TrimSpace(line); line != "" {
			return line
		}
	}
	return ""
}
