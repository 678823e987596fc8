// Package project inspects the directory forge-sdd provisions into.
package project

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"

	"gopkg.in/yaml.v3"

	"github.com/4-youtest/forge-sdd-toolkit/internal/fsops"
)

// ManifestFile marks the root of an Atlassian Forge app.
const ManifestFile = "manifest.yml"

// ErrInvalidManifest reports a manifest.yml that exists but cannot be parsed.
var ErrInvalidManifest = errors.New("invalid manifest")

// Manifest is the subset of manifest.yml forge-sdd reports on.
type Manifest struct {
	App struct {
		ID      string `yaml:"id"`
		Runtime struct {
			Name string `yaml:"name"`
		} `yaml:"runtime"`
	} `yaml:"app"`
	Modules map[string]yaml.Node `yaml:"modules"`
}

// Info describes a project directory.
type Info struct {
	Root string
	Name string

	// IsForge is true when manifest.yml exists, parseable or not.
	IsForge bool

	AppID   string
	Runtime string

	// ModuleTypes lists the module keys declared in the manifest, sorted.
	ModuleTypes []string
}

// Detect inspects root. A missing manifest is not an error. A manifest that
// fails to parse yields IsForge=true together with an error wrapping
// ErrInvalidManifest.
func Detect(fs fsops.FS, root string) (Info, error) {
	info := Info{Root: root, Name: filepath.Base(root)}

	path := filepath.Join(root, ManifestFile)
	exists, err := fs.Exists(path)
	if err != nil {
		return info, fmt.Errorf("failed to check %s: %w", path, err)
	}
	if !exists {
		return info, nil
	}
	info.IsForge = true

	data, err := fs.ReadFile(path)
	if err != nil {
		return info, fmt.Errorf("failed to read %s: %w", path, err)
	}

	var manifest Manifest
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return info, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, path, err)
	}

	info.AppID = manifest.App.ID
	info.Runtime = manifest.App.Runtime.Name
	for key := range manifest.Modules {
		info.ModuleTypes = append(info.ModuleTypes, key)
	}
	sort.Strings(info.ModuleTypes)
	return info, nil
}
