// Package scaffold writes the project files forge-sdd generates rather than
// copies from the toolkit tree.
package scaffold

import (
	_ "embed"
	"fmt"
	"os"
	"path/filepath"
)

// Paths relative to the project root.
const (
	ToolkitDir = "forge-sdd"
	GuideFile  = "README-FORGE-SDD.md"
)

var (
	SpecsDir   = filepath.Join(ToolkitDir, "specs")
	ScriptsDir = filepath.Join(ToolkitDir, "scripts", "bash")
)

//go:embed guide.md
var guide []byte

// FS is the subset of fsops.FS scaffolding needs.
type FS interface {
	MkdirAll(path string, perm os.FileMode) error
	AtomicWrite(path string, data []byte, perm os.FileMode) error
	Exists(path string) (bool, error)
	Glob(dir, pattern string) ([]string, error)
	Chmod(path string, perm os.FileMode) error
}

// CreateSpecsDir creates forge-sdd/specs with a .gitkeep so git tracks it.
// An existing .gitkeep is left alone.
func CreateSpecsDir(fsys FS, root string) (string, error) {
	dir := filepath.Join(root, SpecsDir)
	if err := fsys.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	keep := filepath.Join(dir, ".gitkeep")
	exists, err := fsys.Exists(keep)
	if err != nil {
		return "", fmt.Errorf("failed to check %s: %w", keep, err)
	}
	if !exists {
		if err := fsys.AtomicWrite(keep, nil, 0644); err != nil {
			return "", fmt.Errorf("failed to create %s: %w", keep, err)
		}
	}
	return dir, nil
}

// WriteGuide writes the usage guide, replacing any previous version.
func WriteGuide(fsys FS, root string) (string, error) {
	path := filepath.Join(root, GuideFile)
	if err := fsys.AtomicWrite(path, guide, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

// Guide returns the usage guide markdown.
func Guide() string {
	return string(guide)
}

// MakeScriptsExecutable sets mode 0755 on forge-sdd/scripts/bash/*.sh and
// returns how many scripts it touched. A missing directory is not an error.
func MakeScriptsExecutable(fsys FS, root string) (int, error) {
	dir := filepath.Join(root, ScriptsDir)
	exists, err := fsys.Exists(dir)
	if err != nil {
		return 0, fmt.Errorf("failed to check %s: %w", dir, err)
	}
	if !exists {
		return 0, nil
	}

	scripts, err := fsys.Glob(dir, "*.sh")
	if err != nil {
		return 0, err
	}
	for _, rel := range scripts {
		path := filepath.Join(dir, rel)
		if err := fsys.Chmod(path, 0755); err != nil {
			return 0, fmt.Errorf("failed to chmod %s: %w", path, err)
		}
	}
	return len(scripts), nil
}
