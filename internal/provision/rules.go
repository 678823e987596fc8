package provision

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/4-youtest/forge-sdd-toolkit/internal/fsops"
)

// Policy selects how a rule reconciles its source subtree into the destination.
type Policy string

const (
	// FullReplace deletes the destination subtree and copies the source in its
	// place, keeping the rule's Protected subtree as it was.
	FullReplace Policy = "full-replace"

	// AdditiveFileMerge copies files matching Pattern into the destination,
	// overwriting same-named files and leaving everything else alone.
	AdditiveFileMerge Policy = "additive-file-merge"

	// ReplaceIfExists deletes the destination subtree if present and copies
	// the source. Nothing is protected.
	ReplaceIfExists Policy = "replace-if-exists"
)

// DefaultExcludes are build artifacts and OS metadata never provisioned.
var DefaultExcludes = []string{"__pycache__", "*.pyc", ".DS_Store", "Thumbs.db"}

// CopyRule maps one source subtree onto one destination subtree.
type CopyRule struct {
	Name string

	// Source is relative to the toolkit root.
	Source string

	// Dest is relative to the project root.
	Dest string

	Policy Policy

	// Protected is relative to Dest. FullReplace only.
	Protected string

	// Pattern selects files for AdditiveFileMerge. Defaults to "*".
	Pattern string

	// Exclude adds name patterns to DefaultExcludes.
	Exclude []string
}

// DefaultRules returns the toolkit layout: the shared .github tree with its
// project-owned prompts, toolkit prompt files merged into it, and the
// auxiliary trees consolidated under forge-sdd/.
func DefaultRules() []CopyRule {
	return []CopyRule{
		{
			Name:      "github",
			Source:    ".github",
			Dest:      ".github",
			Policy:    FullReplace,
			Protected: "prompts",
		},
		{
			Name:    "prompts",
			Source:  "prompts",
			Dest:    filepath.Join(".github", "prompts"),
			Policy:  AdditiveFileMerge,
			Pattern: "*.prompt.md",
		},
		{
			Name:   "scripts",
			Source: "scripts",
			Dest:   filepath.Join("forge-sdd", "scripts"),
			Policy: ReplaceIfExists,
		},
		{
			Name:   "templates",
			Source: "templates",
			Dest:   filepath.Join("forge-sdd", "templates"),
			Policy: ReplaceIfExists,
		},
	}
}

func (r CopyRule) pattern() string {
	if r.Pattern == "" {
		return "*"
	}
	return r.Pattern
}

// skipFunc returns the exclusion filter for this rule.
func (r CopyRule) skipFunc() fsops.SkipFunc {
	patterns := make([]string, 0, len(DefaultExcludes)+len(r.Exclude))
	patterns = append(patterns, DefaultExcludes...)
	patterns = append(patterns, r.Exclude...)
	return func(name string, _ bool) bool {
		for _, p := range patterns {
			if ok, _ := doublestar.Match(p, name); ok {
				return true
			}
		}
		return false
	}
}

// validate checks a single rule in isolation.
func (r CopyRule) validate(fs fsops.FS) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("rule for %q has no name", r.Source)
	}
	if err := fs.ValidateRelPath(r.Source); err != nil {
		return fmt.Errorf("rule %q source: %w", r.Name, err)
	}
	if err := fs.ValidateRelPath(r.Dest); err != nil {
		return fmt.Errorf("rule %q dest: %w", r.Name, err)
	}

	switch r.Policy {
	case FullReplace:
		if r.Protected != "" {
			if err := fs.ValidateRelPath(r.Protected); err != nil {
				return fmt.Errorf("rule %q protected: %w", r.Name, err)
			}
		}
	case AdditiveFileMerge, ReplaceIfExists:
		if r.Protected != "" {
			return fmt.Errorf("rule %q: protected subtree requires %s", r.Name, FullReplace)
		}
	default:
		return fmt.Errorf("rule %q: unknown policy %q", r.Name, r.Policy)
	}

	if r.Pattern != "" {
		if r.Policy != AdditiveFileMerge {
			return fmt.Errorf("rule %q: pattern requires %s", r.Name, AdditiveFileMerge)
		}
		if !doublestar.ValidatePattern(r.Pattern) {
			return fmt.Errorf("rule %q: invalid pattern %q", r.Name, r.Pattern)
		}
	}
	for _, p := range r.Exclude {
		if !doublestar.ValidatePattern(p) {
			return fmt.Errorf("rule %q: invalid exclude pattern %q", r.Name, p)
		}
	}
	return nil
}

// Plan validates rules and returns them in execution order. Every rule keeps
// its relative order, except additive merges nested inside a full-replace
// destination, which move after all other rules so the replace cannot wipe
// what they merged.
func Plan(fs fsops.FS, rules []CopyRule) ([]CopyRule, error) {
	names := make(map[string]bool, len(rules))
	for _, r := range rules {
		if err := r.validate(fs); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidRules, err)
		}
		if names[r.Name] {
			return nil, fmt.Errorf("%w: duplicate rule name %q", ErrInvalidRules, r.Name)
		}
		names[r.Name] = true
	}

	nested := make([]bool, len(rules))
	for i, a := range rules {
		for j, b := range rules {
			if i >= j {
				continue
			}
			da, db := filepath.Clean(a.Dest), filepath.Clean(b.Dest)
			switch {
			case da == db:
				return nil, fmt.Errorf("%w: rules %q and %q share destination %s", ErrInvalidRules, a.Name, b.Name, da)
			case isWithin(da, db) && a.Policy == FullReplace && b.Policy == AdditiveFileMerge:
				nested[j] = true
			case isWithin(db, da) && b.Policy == FullReplace && a.Policy == AdditiveFileMerge:
				nested[i] = true
			case isWithin(da, db) || isWithin(db, da):
				return nil, fmt.Errorf("%w: rules %q and %q have overlapping destinations", ErrInvalidRules, a.Name, b.Name)
			}
		}
	}

	ordered := make([]CopyRule, 0, len(rules))
	for i, r := range rules {
		if !nested[i] {
			ordered = append(ordered, r)
		}
	}
	for i, r := range rules {
		if nested[i] {
			ordered = append(ordered, r)
		}
	}
	return ordered, nil
}

// isWithin reports whether child is strictly below parent.
func isWithin(parent, child string) bool {
	rel, err := filepath.Rel(parent, child)
	if err != nil {
		return false
	}
	return rel != "." && rel != ".." && !strings.HasPrefix(rel, ".."+string(filepath.Separator))
}
