package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/4-youtest/forge-sdd-toolkit/internal/engine"
	"github.com/4-youtest/forge-sdd-toolkit/internal/progress"
)

var checkOnlyConfigured bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the required tools are installed",
	Long: `Check that git, Node.js, npm and the Forge CLI are installed.

Extra tools listed under "tools" in the config file are checked as well.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func init() {
	checkCmd.Flags().BoolVar(&checkOnlyConfigured, "only-configured", false,
		"Check only the tools listed in the config file")
}

func runCheck(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	eng, err := newEngine()
	if err != nil {
		return err
	}

	tracker := progress.New("Check Available Tools")
	live := progress.NewLive(out)
	live.Follow(tracker)

	result, err := eng.Check(cmd.Context(), &engine.CheckRequest{SkipDefaults: checkOnlyConfigured}, tracker)
	_ = live.Close()
	_, _ = tracker.Render().WriteTo(out)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintln(out)
	if result.AllFound() {
		printSuccess(out, "All tools are installed")
		return nil
	}

	printWarning(out, "Some tools are missing")
	printSection(out, "Install")
	printList(out, result.Hints, 1, hintColor)
	return nil
}
