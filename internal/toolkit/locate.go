// Package toolkit finds the template tree that forge-sdd provisions from.
//
// The tree ships next to the binary in one of a few layouts (a source
// checkout, an installed data directory, or a bare marker directory). The
// Locator probes those layouts in a fixed order and never fails: when nothing
// matches it returns the program directory as a best guess and records every
// path it looked at.
package toolkit

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/4-youtest/forge-sdd-toolkit/internal/logging"
)

const (
	// MarkerDir identifies a toolkit tree.
	MarkerDir = ".github"

	// PromptDir holds the prompt sources next to MarkerDir.
	PromptDir = "prompts"

	// DataDir is where package installs place the toolkit files.
	DataDir = "forge_sdd_toolkit_data"

	// MaxAncestors bounds the upward search from the program directory.
	MaxAncestors = 5
)

// ErrResourceNotFound reports that no candidate had the expected layout.
var ErrResourceNotFound = errors.New("toolkit resources not found")

// Reason tells which probe produced a Location.
type Reason string

const (
	ReasonConfigured      Reason = "configured"
	ReasonSource          Reason = "source"
	ReasonDataDir         Reason = "data-dir"
	ReasonMarker          Reason = "marker"
	ReasonAncestor        Reason = "ancestor"
	ReasonAncestorDataDir Reason = "ancestor-data-dir"
	ReasonFallback        Reason = "fallback"
)

// Location is the result of a search.
type Location struct {
	Root     string
	Found    bool
	Reason   Reason
	Searched []string
}

// Err returns nil for a confirmed root, or ErrResourceNotFound listing the
// searched paths for the fallback.
func (l Location) Err() error {
	if l.Found {
		return nil
	}
	return fmt.Errorf("%w; searched: %s", ErrResourceNotFound, strings.Join(l.Searched, ", "))
}

// Locator resolves the toolkit root.
type Locator struct {
	programDir string
	override   string
	logger     *slog.Logger
}

// Option configures a Locator.
type Option func(*Locator)

// WithProgramDir sets the directory searches start from.
func WithProgramDir(dir string) Option {
	return func(l *Locator) {
		l.programDir = dir
	}
}

// WithOverride pins the toolkit root, skipping discovery.
func WithOverride(root string) Option {
	return func(l *Locator) {
		l.override = root
	}
}

// WithLogger sets the logger used for the not-found diagnostic.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Locator) {
		l.logger = logger
	}
}

// NewLocator creates a Locator starting from the running program's directory.
func NewLocator(opts ...Option) *Locator {
	l := &Locator{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(l)
	}
	if l.programDir == "" {
		l.programDir = ProgramDir()
	}
	return l
}

// ProgramDir returns the directory of the running executable with symlinks
// resolved, or the working directory if that cannot be determined.
func ProgramDir() string {
	exe, err := os.Executable()
	if err == nil {
		if resolved, err := filepath.EvalSymlinks(exe); err == nil {
			exe = resolved
		}
		return filepath.Dir(exe)
	}
	if cwd, err := os.Getwd(); err == nil {
		return cwd
	}
	return "."
}

// Locate searches for the toolkit root. Order:
//  1. the program directory with both MarkerDir and PromptDir
//  2. DataDir inside the program directory
//  3. the program directory with MarkerDir alone
//  4. up to MaxAncestors parents, re-testing 1 and 2 at each
//
// If nothing matches, the program directory is returned with Found unset.
func (l *Locator) Locate() Location {
	if l.override != "" {
		return Location{Root: l.override, Found: true, Reason: ReasonConfigured, Searched: []string{l.override}}
	}

	dir := l.programDir
	searched := []string{dir}

	if isToolkitSource(dir) {
		return Location{Root: dir, Found: true, Reason: ReasonSource, Searched: searched}
	}

	data := filepath.Join(dir, DataDir)
	searched = append(searched, data)
	if isDir(data) {
		return Location{Root: data, Found: true, Reason: ReasonDataDir, Searched: searched}
	}

	if isDir(filepath.Join(dir, MarkerDir)) {
		return Location{Root: dir, Found: true, Reason: ReasonMarker, Searched: searched}
	}

	current := dir
	for level := 1; level <= MaxAncestors; level++ {
		parent := filepath.Dir(current)
		if parent == current {
			break
		}
		current = parent

		searched = append(searched, current)
		if isToolkitSource(current) {
			return Location{Root: current, Found: true, Reason: ReasonAncestor, Searched: searched}
		}
		data := filepath.Join(current, DataDir)
		searched = append(searched, data)
		if isDir(data) {
			return Location{Root: data, Found: true, Reason: ReasonAncestorDataDir, Searched: searched}
		}
	}

	l.logger.Warn("could not find toolkit resources", "fallback", dir, "searched", searched)
	return Location{Root: dir, Found: false, Reason: ReasonFallback, Searched: searched}
}

func isToolkitSource(dir string) bool {
	return isDir(filepath.Join(dir, MarkerDir)) && isDir(filepath.Join(dir, PromptDir))
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
