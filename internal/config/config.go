// Package config manages forge-sdd configuration and filesystem paths.
//
// Configuration lives in an optional YAML file under the forge-sdd home
// directory (default ~/.forge-sdd/config.yaml). Every setting can be
// overridden with an environment variable; a missing file simply yields the
// defaults.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	EnvHome        = "FORGE_SDD_HOME"
	EnvToolkitRoot = "FORGE_SDD_TOOLKIT_ROOT"
	EnvLogLevel    = "FORGE_SDD_LOG_LEVEL"

	// DefaultCommitMessage is used for the commit created on git init.
	DefaultCommitMessage = "feat: Initialize Forge SDD Toolkit"
)

// Paths contains the filesystem paths used by forge-sdd itself.
type Paths struct {
	// Root is the base directory for forge-sdd user data (default: ~/.forge-sdd)
	Root string

	// Config is the path to the config file
	Config string
}

// DefaultPaths returns the default paths for forge-sdd.
// FORGE_SDD_HOME overrides the root directory.
func DefaultPaths() (*Paths, error) {
	root := os.Getenv(EnvHome)
	if root == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get user home directory: %w", err)
		}
		root = filepath.Join(home, ".forge-sdd")
	}

	return &Paths{
		Root:   root,
		Config: filepath.Join(root, "config.yaml"),
	}, nil
}

// Config is the user configuration.
type Config struct {
	// ToolkitRoot pins the template tree and skips resource discovery.
	ToolkitRoot string `yaml:"toolkit_root"`

	// LogLevel is one of debug, info, warn, error.
	LogLevel string `yaml:"log_level"`

	Git GitConfig `yaml:"git"`

	// Tools are checked by `forge-sdd check` in addition to the built-in ones.
	Tools []ToolConfig `yaml:"tools"`
}

// GitConfig controls repository initialization during init.
type GitConfig struct {
	CommitMessage string `yaml:"commit_message"`
}

// ToolConfig describes an extra command-line tool to check for.
type ToolConfig struct {
	Name        string   `yaml:"name"`
	Label       string   `yaml:"label"`
	VersionArgs []string `yaml:"version_args"`
	InstallHint string   `yaml:"install_hint"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		LogLevel: "warn",
		Git: GitConfig{
			CommitMessage: DefaultCommitMessage,
		},
	}
}

// Load reads the config file at path on top of the defaults and applies
// environment overrides. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("config parse failed (%s): %w", path, err)
		}
	case os.IsNotExist(err):
	default:
		return Config{}, fmt.Errorf("config load failed (%s): %w", path, err)
	}

	applyEnvOverrides(&cfg)
	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("invalid config (%s): %w", path, err)
	}
	return cfg, nil
}

// LoadDefault resolves the default paths and loads the config file there.
func LoadDefault() (Config, *Paths, error) {
	paths, err := DefaultPaths()
	if err != nil {
		return Config{}, nil, err
	}
	cfg, err := Load(paths.Config)
	if err != nil {
		return Config{}, nil, err
	}
	return cfg, paths, nil
}

func applyEnvOverrides(cfg *Config) {
	if v := strings.TrimSpace(os.Getenv(EnvToolkitRoot)); v != "" {
		cfg.ToolkitRoot = v
	}
	if v := strings.TrimSpace(os.Getenv(EnvLogLevel)); v != "" {
		cfg.LogLevel = v
	}
	if strings.TrimSpace(cfg.Git.CommitMessage) == "" {
		cfg.Git.CommitMessage = DefaultCommitMessage
	}
}

// Validate checks the config for values that cannot be used.
func (c Config) Validate() error {
	switch strings.ToLower(strings.TrimSpace(c.LogLevel)) {
	case "debug", "info", "warn", "warning", "error":
	default:
		return fmt.Errorf("unknown log_level %q", c.LogLevel)
	}
	for i, tool := range c.Tools {
		if strings.TrimSpace(tool.Name) == "" {
			return fmt.Errorf("tools[%d]: name is required", i)
		}
	}
	return nil
}
