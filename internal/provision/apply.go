// Package provision reconciles the toolkit template tree into a project.
//
// Each CopyRule maps one toolkit subtree onto one project subtree under a
// merge policy. The Applier runs a validated rule set in order, stops at the
// first filesystem error and reports it as a *CopyFailure. Content the
// project owns (a rule's Protected subtree, or files an additive merge does
// not name) survives every run.
package provision

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/4-youtest/forge-sdd-toolkit/internal/fsops"
	"github.com/4-youtest/forge-sdd-toolkit/internal/hash"
	"github.com/4-youtest/forge-sdd-toolkit/internal/logging"
)

// Stats summarizes an Apply run. The counts are informational.
type Stats struct {
	// FilesCopied counts files present in replaced subtrees plus files
	// written by additive merges.
	FilesCopied int

	// DirsTouched counts top-level destination subtrees that were replaced.
	DirsTouched int

	// Unchanged counts additive-merge files whose content already matched.
	Unchanged int

	// Skipped lists rules whose source subtree does not exist.
	Skipped []string
}

// Applier applies copy rules through an fsops.FS.
type Applier struct {
	fs         fsops.FS
	hasher     hash.Hasher
	logger     *slog.Logger
	scratchDir string
}

// Option configures an Applier.
type Option func(*Applier)

// WithScratchDir sets the parent directory for staging protected content.
// The default is the system temp directory.
func WithScratchDir(dir string) Option {
	return func(a *Applier) {
		a.scratchDir = dir
	}
}

// NewApplier creates an Applier. A nil logger discards output.
func NewApplier(fs fsops.FS, hasher hash.Hasher, logger *slog.Logger, opts ...Option) *Applier {
	if logger == nil {
		logger = logging.NewNop()
	}
	a := &Applier{fs: fs, hasher: hasher, logger: logger}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Apply reconciles sourceRoot into destRoot according to rules.
//
// The rule set is validated first; an invalid set returns ErrInvalidRules
// without touching the filesystem. Otherwise rules run in Plan order and the
// first failure aborts the rest. The returned Stats always cover the rules
// that completed, including on failure.
func (a *Applier) Apply(rules []CopyRule, sourceRoot, destRoot string) (Stats, error) {
	var stats Stats

	ordered, err := Plan(a.fs, rules)
	if err != nil {
		return stats, err
	}

	for _, rule := range ordered {
		src := filepath.Join(sourceRoot, rule.Source)
		dst := filepath.Join(destRoot, rule.Dest)

		ok, err := a.isDir(src)
		if err != nil {
			return stats, failure(rule, "stat", src, err)
		}
		if !ok {
			a.logger.Debug("source subtree missing, skipping rule", "rule", rule.Name, "source", src)
			stats.Skipped = append(stats.Skipped, rule.Name)
			continue
		}

		a.logger.Debug("applying rule", "rule", rule.Name, "policy", string(rule.Policy), "dest", dst)

		switch rule.Policy {
		case FullReplace:
			err = a.fullReplace(rule, src, dst, &stats)
		case AdditiveFileMerge:
			err = a.additiveMerge(rule, src, dst, &stats)
		case ReplaceIfExists:
			err = a.replaceIfExists(rule, src, dst, &stats)
		}
		if err != nil {
			return stats, err
		}
	}

	return stats, nil
}

// fullReplace replaces dst with src. When the protected subtree holds
// content it is staged in scratch space and put back afterwards.
func (a *Applier) fullReplace(rule CopyRule, src, dst string, stats *Stats) error {
	exists, err := a.fs.Exists(dst)
	if err != nil {
		return failure(rule, "stat", dst, err)
	}

	if exists && rule.Protected != "" {
		protected := filepath.Join(dst, rule.Protected)
		hasContent, err := a.hasContent(protected)
		if err != nil {
			return failure(rule, "stat", protected, err)
		}
		if hasContent {
			if err := a.replacePreserving(rule, src, dst, protected); err != nil {
				return err
			}
			return a.count(rule, dst, stats)
		}
	}

	if exists {
		if err := a.fs.RemoveAll(dst); err != nil {
			return failure(rule, "remove", dst, err)
		}
	}
	if err := a.fs.CopyTree(src, dst, rule.skipFunc()); err != nil {
		return failure(rule, "copy", dst, err)
	}
	return a.count(rule, dst, stats)
}

// replacePreserving performs the protected full replace. The scratch
// directory is removed before returning on every path.
func (a *Applier) replacePreserving(rule CopyRule, src, dst, protected string) error {
	scratch, err := a.fs.MkdirTemp(a.scratchDir, "forge-sdd-stage-*")
	if err != nil {
		return failure(rule, "stage", protected, err)
	}
	defer func() {
		if err := a.fs.RemoveAll(scratch); err != nil {
			a.logger.Warn("failed to remove scratch directory", "path", scratch, "error", err)
		}
	}()

	staged := filepath.Join(scratch, filepath.Base(protected))
	if err := a.fs.Copy(protected, staged); err != nil {
		return failure(rule, "stage", protected, err)
	}
	a.logger.Debug("staged protected subtree", "rule", rule.Name, "path", protected)

	if err := a.fs.RemoveAll(dst); err != nil {
		return failure(rule, "remove", dst, err)
	}
	if err := a.fs.CopyTree(src, dst, rule.skipFunc()); err != nil {
		// Put the protected content back before the scratch dir goes away.
		if rerr := a.move(staged, protected); rerr != nil {
			a.logger.Warn("failed to restore protected subtree", "path", protected, "error", rerr)
		}
		return failure(rule, "copy", dst, err)
	}

	// The source may define its own version of the protected path.
	recreated, err := a.fs.Exists(protected)
	if err != nil {
		return failure(rule, "stat", protected, err)
	}
	if recreated {
		if err := a.fs.RemoveAll(protected); err != nil {
			return failure(rule, "remove", protected, err)
		}
	}
	if err := a.move(staged, protected); err != nil {
		return failure(rule, "restore", protected, err)
	}
	return nil
}

// additiveMerge copies matching files into dst without deleting anything.
func (a *Applier) additiveMerge(rule CopyRule, src, dst string, stats *Stats) error {
	if err := a.fs.MkdirAll(dst, 0755); err != nil {
		return failure(rule, "mkdir", dst, err)
	}

	matches, err := a.fs.Glob(src, rule.pattern())
	if err != nil {
		return failure(rule, "merge", src, err)
	}

	skip := rule.skipFunc()
	for _, rel := range matches {
		if excluded(rel, skip) {
			continue
		}
		from := filepath.Join(src, rel)
		to := filepath.Join(dst, rel)

		same, err := hash.SameContent(a.hasher, from, to)
		if err != nil {
			return failure(rule, "merge", to, err)
		}
		if err := a.fs.Copy(from, to); err != nil {
			return failure(rule, "merge", to, err)
		}
		stats.FilesCopied++
		if same {
			stats.Unchanged++
		}
	}
	return nil
}

// replaceIfExists removes dst if present and copies src in its place.
func (a *Applier) replaceIfExists(rule CopyRule, src, dst string, stats *Stats) error {
	exists, err := a.fs.Exists(dst)
	if err != nil {
		return failure(rule, "stat", dst, err)
	}
	if exists {
		if err := a.fs.RemoveAll(dst); err != nil {
			return failure(rule, "remove", dst, err)
		}
	}
	if err := a.fs.CopyTree(src, dst, rule.skipFunc()); err != nil {
		return failure(rule, "copy", dst, err)
	}
	return a.count(rule, dst, stats)
}

func (a *Applier) count(rule CopyRule, dst string, stats *Stats) error {
	n, err := a.fs.CountFiles(dst)
	if err != nil {
		return failure(rule, "count", dst, err)
	}
	stats.DirsTouched++
	stats.FilesCopied += n
	return nil
}

// move renames from to to, falling back to a copy when rename is not
// possible (for example across devices).
func (a *Applier) move(from, to string) error {
	if err := a.fs.MkdirAll(filepath.Dir(to), 0755); err != nil {
		return err
	}
	err := a.fs.Rename(from, to)
	if err == nil {
		return nil
	}
	a.logger.Debug("rename failed, copying instead", "from", from, "to", to, "error", err)
	if err := a.fs.Copy(from, to); err != nil {
		return fmt.Errorf("failed to move %s: %w", from, err)
	}
	return nil
}

func (a *Applier) isDir(path string) (bool, error) {
	info, err := a.fs.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return info.IsDir(), nil
}

// hasContent reports whether path is a file or a non-empty directory.
func (a *Applier) hasContent(path string) (bool, error) {
	info, err := a.fs.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if !info.IsDir() {
		return true, nil
	}
	entries, err := a.fs.ReadDir(path)
	if err != nil {
		return false, err
	}
	return len(entries) > 0, nil
}

// excluded applies skip to every component of a relative match.
func excluded(rel string, skip fsops.SkipFunc) bool {
	parts := strings.Split(rel, string(filepath.Separator))
	for i, part := range parts {
		if skip(part, i < len(parts)-1) {
			return true
		}
	}
	return false
}
