package toolcheck

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/4-youtest/forge-sdd-toolkit/internal/config"
)

func TestChecker_Check(t *testing.T) {
	runner := NewFakeRunner()
	runner.Install("node", "v20.11.1\n")
	runner.Install("forge", "\n10.2.0\nextra line\n")
	runner.Install("npm", "")
	runner.SetResult("npm", CmdResult{ExitCode: 1, Stderr: "broken"})
	runner.Install("git", "")
	runner.SetRunError("git", errors.New("permission denied"))

	checker := NewChecker(runner, nil)
	tools := map[string]Tool{}
	for _, tool := range DefaultTools() {
		tools[tool.Name] = tool
	}

	tests := []struct {
		name        string
		tool        string
		wantFound   bool
		wantVersion string
	}{
		{"version from stdout", "node", true, "v20.11.1"},
		{"first non-empty line", "forge", true, "10.2.0"},
		{"non-zero exit keeps found", "npm", true, ""},
		{"run error keeps found", "git", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := checker.Check(context.Background(), tools[tt.tool])
			assert.Equal(t, tt.wantFound, got.Found)
			assert.Equal(t, tt.wantVersion, got.Version)
			assert.Equal(t, "/usr/bin/"+tt.tool, got.Path)
		})
	}
}

func TestChecker_NotFound(t *testing.T) {
	checker := NewChecker(NewFakeRunner(), nil)
	got := checker.Check(context.Background(), Tool{Name: "forge", VersionArgs: []string{"--version"}})
	assert.False(t, got.Found)
	assert.Empty(t, got.Path)
	assert.Empty(t, got.Version)
}

func TestMissing_DeduplicatesHints(t *testing.T) {
	tools := DefaultTools()
	results := []Result{
		{Tool: tools[0], Found: true},
		{Tool: tools[1]},
		{Tool: tools[2]},
		{Tool: tools[3]},
		{Tool: Tool{Name: "jq"}},
	}

	assert.Equal(t, []string{
		nodeHint,
		"Install Forge CLI: npm install -g @forge/cli",
		"Install jq",
	}, Missing(results))
}

func TestMissing_NoneMissing(t *testing.T) {
	assert.Empty(t, Missing([]Result{{Tool: Tool{Name: "git"}, Found: true}}))
}

func TestFromConfig_Defaults(t *testing.T) {
	tools := FromConfig([]config.ToolConfig{
		{Name: "jq"},
		{Name: "docker", Label: "Docker", VersionArgs: []string{"version", "--format", "{{.Client.Version}}"}, InstallHint: "Install Docker"},
	})

	assert.Equal(t, []Tool{
		{Name: "jq", Label: "jq", VersionArgs: []string{"--version"}},
		{Name: "docker", Label: "Docker", VersionArgs: []string{"version", "--format", "{{.Client.Version}}"}, InstallHint: "Install Docker"},
	}, tools)
}
