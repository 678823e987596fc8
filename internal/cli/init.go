package cli

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/4-youtest/forge-sdd-toolkit/internal/config"
	"github.com/4-youtest/forge-sdd-toolkit/internal/engine"
	"github.com/4-youtest/forge-sdd-toolkit/internal/progress"
	"github.com/4-youtest/forge-sdd-toolkit/internal/project"
	"github.com/4-youtest/forge-sdd-toolkit/internal/scaffold"
)

var (
	initHere  bool
	initNoGit bool
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init [directory]",
	Short: "Set up the SDD toolkit in a Forge app",
	Long: `Set up the Specification-Driven Development toolkit in a Forge app.

Copies the Copilot instructions and prompts into .github/, the bash scripts and
templates into forge-sdd/, creates forge-sdd/specs/ and README-FORGE-SDD.md, and
initializes a git repository when the project is not already in one.

Prompt files you added to .github/prompts/ are kept. The directory must contain
manifest.yml unless --force is given.`,
	Example: `  forge-sdd init --here
  forge-sdd init ./my-forge-app --no-git`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initHere, "here", false,
		"Initialize in the current directory")
	initCmd.Flags().BoolVar(&initNoGit, "no-git", false,
		"Skip git repository initialization")
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false,
		"Initialize even if manifest.yml is missing")
}

func runInit(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	projectDir, err := resolveProjectDir(args, initHere)
	if err != nil {
		return err
	}

	eng, err := newEngine()
	if err != nil {
		return err
	}

	printBanner(out)

	proj, err := eng.Inspect(projectDir)
	if err != nil {
		return err
	}
	if !proj.IsForge && !initForce {
		printNotForgeProject(out, projectDir)
		return fmt.Errorf("%w: no %s in %s", engine.ErrNotForgeProject, project.ManifestFile, projectDir)
	}

	printSetupInfo(out, proj)
	if !initNoGit && !eng.GitAvailable() {
		printWarning(out, "Git not found - will skip repository initialization")
	}
	_, _ = fmt.Fprintln(out)

	tracker := progress.New("Initialize Forge SDD Toolkit")
	live := progress.NewLive(out)
	live.Follow(tracker)

	result, err := eng.Init(cmd.Context(), &engine.InitRequest{
		ProjectDir: projectDir,
		Force:      initForce,
		NoGit:      initNoGit,
	}, tracker)
	_ = live.Close()
	_, _ = tracker.Render().WriteTo(out)
	_, _ = fmt.Fprintln(out)

	if err != nil {
		printInitFailure(out, err)
		return err
	}

	printSuccess(out, "Forge SDD Toolkit is ready")
	if engine.IsResourceNotFound(result.ToolkitErr) {
		printWarning(out, "Toolkit files could not be found next to the forge-sdd binary; nothing was copied")
		printDim(out, fmt.Sprintf("  Set %s or toolkit_root in the config file to the toolkit directory.", config.EnvToolkitRoot))
	}
	if result.GitErr != nil {
		printWarning(out, fmt.Sprintf("Git repository was not initialized: %v", result.GitErr))
	}
	printLegacy(out, result.Legacy)
	printNextSteps(out)
	return nil
}

// resolveProjectDir returns the absolute target directory. With no argument
// the current directory is used.
func resolveProjectDir(args []string, here bool) (string, error) {
	if here && len(args) > 0 {
		return "", errors.New("--here cannot be combined with a directory argument")
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", dir, err)
	}
	return abs, nil
}

func printNotForgeProject(w io.Writer, dir string) {
	PrintError(w, fmt.Sprintf("%s is not a Forge project (no %s found)", dir, project.ManifestFile))
	_, _ = fmt.Fprintln(w)
	printInfo(w, "Create a Forge app first:")
	printDim(w, "  forge create -t <template-name> <app-name>")
	_, _ = fmt.Fprintln(w)
	printInfo(w, "Or run again with --force to set up the toolkit anyway.")
	_, _ = fmt.Fprintln(w)
}

func printSetupInfo(w io.Writer, proj project.Info) {
	printSection(w, "Project")
	printLabelValue(w, "Name", proj.Name)
	printLabelValue(w, "Path", proj.Root)
	if !proj.IsForge {
		printLabelValueWithColor(w, "Manifest", "missing (--force)", warningColor)
		return
	}
	if proj.AppID != "" {
		printLabelValue(w, "App ID", proj.AppID)
	}
	if proj.Runtime != "" {
		printLabelValue(w, "Runtime", proj.Runtime)
	}
	if len(proj.ModuleTypes) > 0 {
		printLabelValue(w, "Modules", fmt.Sprint(proj.ModuleTypes))
	}
}

func printInitFailure(w io.Writer, err error) {
	switch {
	case engine.IsCopyFailure(err):
		PrintError(w, "Copying the toolkit failed; files copied before the error were left in place")
	case errors.Is(err, engine.ErrInvalidRules):
		PrintError(w, "The copy rules are invalid; nothing was changed")
	default:
		PrintError(w, "Initialization failed")
	}
}

func printLegacy(w io.Writer, legacy []project.Legacy) {
	if len(legacy) == 0 {
		return
	}
	printSection(w, "Legacy Layout")
	for _, l := range legacy {
		printWarning(w, fmt.Sprintf("%s/ is from an older layout; its content now lives in %s/", l.Path, l.Replacement))
	}
	printDim(w, "Move any custom files and remove the old directories.")
}

func printNextSteps(w io.Writer) {
	printSection(w, "Next Steps")
	var items []string
	for _, c := range scaffold.SlashCommands() {
		items = append(items, fmt.Sprintf("%s - %s", c.Command, c.Description))
	}
	items = append(items, "Read the guide: "+scaffold.GuideFile)
	printNumberedList(w, items, 1)
}
