package engine

import (
	"errors"

	"github.com/4-youtest/forge-sdd-toolkit/internal/provision"
)

var (
	// ErrNotForgeProject indicates the target has no manifest.yml and
	// initialization was not forced.
	ErrNotForgeProject = errors.New("not a Forge project")

	// ErrProjectDir indicates the target directory is missing or not a directory.
	ErrProjectDir = errors.New("invalid project directory")

	// ErrInvalidRules indicates the copy rule set was rejected before any
	// change was made.
	ErrInvalidRules = provision.ErrInvalidRules
)
