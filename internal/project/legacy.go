package project

import (
	"path/filepath"

	"github.com/4-youtest/forge-sdd-toolkit/internal/fsops"
)

// Legacy is a directory left in the project root by an older toolkit layout.
type Legacy struct {
	// Path is relative to the project root.
	Path string

	// Replacement is where the content lives now.
	Replacement string
}

// legacyLayout pairs each old location with its current one. A guarded
// entry only counts once its replacement exists.
var legacyLayout = []struct {
	old, current string
	guarded      bool
}{
	{"prompts", filepath.Join(".github", "prompts"), true},
	{"scripts", filepath.Join("forge-sdd", "scripts"), true},
	{"templates", filepath.Join("forge-sdd", "templates"), true},
	{"forge-specs", filepath.Join("forge-sdd", "specs"), false},
}

// FindLegacy lists leftover directories from older layouts under root.
// Paths that cannot be checked are left out.
func FindLegacy(fs fsops.FS, root string) []Legacy {
	var found []Legacy
	for _, l := range legacyLayout {
		if ok, _ := fs.Exists(filepath.Join(root, l.old)); !ok {
			continue
		}
		if l.guarded {
			if ok, _ := fs.Exists(filepath.Join(root, l.current)); !ok {
				continue
			}
		}
		found = append(found, Legacy{Path: l.old, Replacement: l.current})
	}
	return found
}
