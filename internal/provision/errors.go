package provision

import (
	"errors"
	"fmt"
)

var (
	// ErrCopyFailure matches any *CopyFailure via errors.Is.
	ErrCopyFailure = errors.New("copy failure")

	// ErrInvalidRules indicates a rule set was rejected before any change.
	ErrInvalidRules = errors.New("invalid copy rules")
)

// CopyFailure is returned when a filesystem operation fails while a rule is
// being applied. Rules that ran before the failing one are not rolled back.
type CopyFailure struct {
	// Rule is the name of the rule being applied.
	Rule string

	// Op is the step that failed: stat, stage, remove, copy, restore,
	// mkdir, merge or count.
	Op string

	// Path is the path the failed step operated on.
	Path string

	Err error
}

func (e *CopyFailure) Error() string {
	return fmt.Sprintf("rule %q: %s %s: %v", e.Rule, e.Op, e.Path, e.Err)
}

func (e *CopyFailure) Unwrap() error {
	return e.Err
}

// Is makes errors.Is(err, ErrCopyFailure) true for every CopyFailure.
func (e *CopyFailure) Is(target error) bool {
	return target == ErrCopyFailure
}

func failure(rule CopyRule, op, path string, err error) error {
	return &CopyFailure{Rule: rule.Name, Op: op, Path: path, Err: err}
}
