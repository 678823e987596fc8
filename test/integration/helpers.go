package integration

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/4-youtest/forge-sdd-toolkit/internal/clock"
	"github.com/4-youtest/forge-sdd-toolkit/internal/config"
	"github.com/4-youtest/forge-sdd-toolkit/internal/engine"
	"github.com/4-youtest/forge-sdd-toolkit/internal/fsops"
	"github.com/4-youtest/forge-sdd-toolkit/internal/gitx"
	"github.com/4-youtest/forge-sdd-toolkit/internal/hash"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolcheck"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolkit"
)

// toolkitFiles is the template tree installed by the tests, relative to the
// toolkit root.
var toolkitFiles = map[string]string{
	".github/copilot-instructions.md":            "# Copilot instructions\n",
	"prompts/forge-ideate.prompt.md":             "ideate\n",
	"prompts/forge-plan.prompt.md":               "plan\n",
	"prompts/forge-implement.prompt.md":          "implement\n",
	"prompts/forge-test.prompt.md":               "test\n",
	"scripts/bash/common.sh":                     "#!/usr/bin/env bash\n",
	"scripts/bash/create-new-feature.sh":         "#!/usr/bin/env bash\n",
	"scripts/bash/create-implementation-plan.sh": "#!/usr/bin/env bash\n",
	"templates/feature-spec-template.md":         "# Feature\n",
	"templates/implementation-plan-template.md":  "# Plan\n",
}

const manifest = `app:
  id: ari:cloud:ecosystem::app/0f2d
  runtime:
    name: nodejs22.x
modules:
  jira:issuePanel:
    - key: metrics-panel
`

func writeFiles(t *testing.T, root string, files map[string]string) {
	t.Helper()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			t.Fatal(err)
		}
		if err := os.WriteFile(path, []byte(content), 0644); err != nil {
			t.Fatal(err)
		}
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read %s: %v", path, err)
	}
	return string(data)
}

// newForgeProject creates a project directory holding a Forge manifest.
func newForgeProject(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFiles(t, dir, map[string]string{"manifest.yml": manifest})
	return dir
}

// setupTestEngine builds an engine over the real filesystem. The toolkit is
// discovered from programDir the same way the binary does it.
func setupTestEngine(t *testing.T, programDir string, gitRepo gitx.GitRepo) *engine.Engine {
	t.Helper()
	locator := toolkit.NewLocator(toolkit.WithProgramDir(programDir))
	return engine.New(
		fsops.NewRealFS(),
		hash.NewSHA256Hasher(),
		gitRepo,
		toolcheck.NewFakeRunner(),
		locator,
		&clock.RealClock{},
		config.Default(),
		nil,
	)
}
