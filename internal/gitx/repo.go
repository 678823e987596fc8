package gitx

import (
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
)

// GitRepo provides an abstraction for git repository operations.
type GitRepo interface {
	// Available reports whether the git binary can be found on PATH.
	Available() bool

	// Discover finds the git repository root starting from cwd.
	Discover(cwd string) (root string, err error)

	// Init creates a repository in dir and commits everything in it.
	Init(dir, message string) error
}

// RealGitRepo implements GitRepo using actual git commands.
type RealGitRepo struct{}

// NewRealGitRepo creates a new RealGitRepo.
func NewRealGitRepo() *RealGitRepo {
	return &RealGitRepo{}
}

// Available reports whether git is on PATH.
func (g *RealGitRepo) Available() bool {
	_, err := exec.LookPath("git")
	return err == nil
}

// Discover finds the git repository root by walking up from cwd looking for .git directory.
func (g *RealGitRepo) Discover(cwd string) (string, error) {
	absPath, err := filepath.Abs(cwd)
	if err != nil {
		return "", fmt.Errorf("failed to get absolute path: %w", err)
	}

	current := absPath
	for {
		gitDir := filepath.Join(current, ".git")
		if info, err := os.Stat(gitDir); err == nil {
			// .git can be a directory or a file (for worktrees/submodules)
			if info.IsDir() || info.Mode().IsRegular() {
				return current, nil
			}
		}

		parent := filepath.Dir(current)
		if parent == current {
			// Reached root directory
			return "", fmt.Errorf("not in a git repository")
		}
		current = parent
	}
}

// Init runs git init, stages everything and creates the first commit.
func (g *RealGitRepo) Init(dir, message string) error {
	steps := [][]string{
		{"init"},
		{"add", "."},
		{"commit", "-m", message},
	}
	for _, args := range steps {
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		if output, err := cmd.CombinedOutput(); err != nil {
			return fmt.Errorf("git %s failed: %w: %s", args[0], err, strings.TrimSpace(string(output)))
		}
	}
	return nil
}

// FakeGitRepo implements GitRepo with predetermined values for testing.
type FakeGitRepo struct {
	available bool
	root      string
	initErr   error

	// Inits records the directories and messages passed to Init.
	Inits []FakeInit
}

// FakeInit is one recorded Init call.
type FakeInit struct {
	Dir     string
	Message string
}

// NewFakeGitRepo creates a FakeGitRepo with git available and no repository.
func NewFakeGitRepo() *FakeGitRepo {
	return &FakeGitRepo{available: true}
}

// SetAvailable controls the result of Available.
func (g *FakeGitRepo) SetAvailable(available bool) {
	g.available = available
}

// SetRoot makes Discover succeed with root. An empty root makes it fail.
func (g *FakeGitRepo) SetRoot(root string) {
	g.root = root
}

// SetInitError sets an error to be returned by Init.
func (g *FakeGitRepo) SetInitError(err error) {
	g.initErr = err
}

// Available returns the configured availability.
func (g *FakeGitRepo) Available() bool {
	return g.available
}

// Discover returns the predetermined root.
func (g *FakeGitRepo) Discover(cwd string) (string, error) {
	if g.root == "" {
		return "", fmt.Errorf("not in a git repository")
	}
	return g.root, nil
}

// Init records the call. On success the directory becomes the discovered root.
func (g *FakeGitRepo) Init(dir, message string) error {
	g.Inits = append(g.Inits, FakeInit{Dir: dir, Message: message})
	if g.initErr != nil {
		return g.initErr
	}
	g.root = dir
	return nil
}
