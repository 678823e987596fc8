package cli

import (
	"fmt"
	"log/slog"

	"github.com/4-youtest/forge-sdd-toolkit/internal/clock"
	"github.com/4-youtest/forge-sdd-toolkit/internal/config"
	"github.com/4-youtest/forge-sdd-toolkit/internal/engine"
	"github.com/4-youtest/forge-sdd-toolkit/internal/fsops"
	"github.com/4-youtest/forge-sdd-toolkit/internal/gitx"
	"github.com/4-youtest/forge-sdd-toolkit/internal/hash"
	"github.com/4-youtest/forge-sdd-toolkit/internal/logging"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolcheck"
	"github.com/4-youtest/forge-sdd-toolkit/internal/toolkit"
)

// newEngine creates a new engine with real implementations of all dependencies.
func newEngine() (*engine.Engine, error) {
	cfg, paths, err := config.LoadDefault()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	if debugLogs {
		level = slog.LevelDebug
	}
	logger := logging.New(level)
	logger.Debug("config loaded", "path", paths.Config, "toolkit_root", cfg.ToolkitRoot)

	locator := toolkit.NewLocator(
		toolkit.WithOverride(cfg.ToolkitRoot),
		toolkit.WithLogger(logger),
	)

	return engine.New(
		fsops.NewRealFS(),
		hash.NewSHA256Hasher(),
		gitx.NewRealGitRepo(),
		toolcheck.NewRealRunner(),
		locator,
		&clock.RealClock{},
		cfg,
		logger,
	), nil
}
