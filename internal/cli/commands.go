package cli

import (
	"fmt"
	"log/slog"

	"github.com/charmbracelet/glamour"
	"github.com/spf13/cobra"

	"github.com/4-youtest/forge-sdd-toolkit/internal/scaffold"
)

var (
	commandsGuide bool
	commandsRaw   bool
)

var commandsCmd = &cobra.Command{
	Use:   "commands",
	Short: "Show the Copilot slash commands",
	Long: `Show the slash commands installed into .github/prompts/ by init.

With --guide the full usage guide (README-FORGE-SDD.md) is shown instead.`,
	Args: cobra.NoArgs,
	RunE: runCommands,
}

func init() {
	commandsCmd.Flags().BoolVar(&commandsGuide, "guide", false,
		"Show the full usage guide")
	commandsCmd.Flags().BoolVar(&commandsRaw, "raw", false,
		"Print markdown without terminal styling")
}

func runCommands(cmd *cobra.Command, args []string) error {
	markdown := scaffold.CommandsMarkdown()
	if commandsGuide {
		markdown = scaffold.Guide()
	}

	text := markdown
	if !commandsRaw {
		text = renderMarkdown(markdown)
	}
	_, err := fmt.Fprint(cmd.OutOrStdout(), text)
	return err
}

// renderMarkdown styles markdown for the terminal. The input is returned
// unchanged when rendering fails.
func renderMarkdown(markdown string) string {
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		slog.Debug("markdown renderer unavailable", "error", err)
		return markdown
	}
	out, err := r.Render(markdown)
	if err != nil {
		slog.Debug("markdown render failed", "error", err)
		return markdown
	}
	return out
}
