package engine

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/4-youtest/forge-sdd-toolkit/internal/clock"
	"github.com/4-youtest/forge-sdd-toolkit/internal/config"
	"github.com/4-youtest/forge-sdd-toolkit/internal/fsops"
	"github.com/4-youtest/forge-sdd-toolkit/internal/gitx"
	"github.com/4-youtest/forge-sdd-toolkit/internal/hash"
	"github.com/4-youtest/forge-sdd-toolkit/internal/progress"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolcheck"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolkit"
)

// fixedLocator returns a predetermined location.
type fixedLocator struct {
	loc toolkit.Location
}

func (l fixedLocator) Locate() toolkit.Location {
	return l.loc
}

func foundAt(root string) fixedLocator {
	return fixedLocator{loc: toolkit.Location{Root: root, Found: true, Reason: toolkit.ReasonConfigured, Searched: []string{root}}}
}

// testEnv bundles an engine with the fakes behind it.
type testEnv struct {
	eng     *Engine
	git     *gitx.FakeGitRepo
	runner  *toolcheck.FakeRunner
	clock   *clock.FakeClock
	toolkit string
	project string
}

func newTestEnv(t *testing.T, fs fsops.FS) *testEnv {
	t.Helper()

	env := &testEnv{
		git:     gitx.NewFakeGitRepo(),
		runner:  toolcheck.NewFakeRunner(),
		clock:   clock.NewFakeClock(time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)),
		toolkit: t.TempDir(),
		project: t.TempDir(),
	}
	env.clock.Tick(1500 * time.Millisecond)
	env.eng = New(fs, hash.NewSHA256Hasher(), env.git, env.runner, foundAt(env.toolkit), env.clock, config.Default(), nil)
	return env
}

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

func writeToolkit(t *testing.T, root string) {
	t.Helper()
	writeFiles(t, root, map[string]string{
		".github/copilot-instructions.md":            "rules",
		"prompts/forge-ideate.prompt.md":             "ideate",
		"prompts/forge-plan.prompt.md":               "plan",
		"scripts/bash/create-new-feature.sh":         "#!/bin/bash\n",
		"scripts/bash/create-implementation-plan.sh": "#!/bin/bash\n",
		"templates/plan-template.md":                 "# Plan",
	})
}

func writeManifest(t *testing.T, root string) {
	t.Helper()
	writeFiles(t, root, map[string]string{
		"manifest.yml": "app:\n  id: ari:cloud:ecosystem::app/test\n  runtime:\n    name: nodejs20.x\n",
	})
}

// assertStep checks the status and detail of a tracker step.
func assertStep(t *testing.T, tracker *progress.Tracker, key string, status progress.Status, detail string) {
	t.Helper()
	step, ok := tracker.Step(key)
	if !ok {
		t.Fatalf("step %q missing", key)
	}
	if step.Status != status {
		t.Errorf("step %q status = %s, want %s", key, step.Status, status)
	}
	if step.Detail != detail {
		t.Errorf("step %q detail = %q, want %q", key, step.Detail, detail)
	}
}
