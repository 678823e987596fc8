package scaffold

import (
	"fmt"
	"strings"
)

// SlashCommand documents one Copilot prompt installed into .github/prompts.
type SlashCommand struct {
	Command     string
	Description string
	Example     string
	Output      string
}

// SlashCommands returns the prompts shipped by the toolkit, in workflow
// order.
func SlashCommands() []SlashCommand {
	return []SlashCommand{
		{
			Command:     "/forge-ideate",
			Description: "Create feature specification",
			Example:     "/forge-ideate create a panel that shows issue metrics",
			Output:      "forge-sdd/specs/###-feature-name/feature-spec.md",
		},
		{
			Command:     "/forge-plan",
			Description: "Create technical implementation plan",
			Example:     "/forge-plan",
			Output:      "forge-sdd/specs/###-feature-name/implementation-plan.md",
		},
		{
			Command:     "/forge-implement",
			Description: "Implement code following the plan",
			Example:     "/forge-implement",
			Output:      "Code in src/",
		},
		{
			Command:     "/forge-test",
			Description: "Test and validate implementation",
			Example:     "/forge-test",
			Output:      "forge-sdd/specs/###-feature-name/test-results.md",
		},
	}
}

// CommandsMarkdown renders the slash command reference as markdown.
func CommandsMarkdown() string {
	var b strings.Builder
	b.WriteString("# Available Slash Commands\n\n")
	for _, cmd := range SlashCommands() {
		fmt.Fprintf(&b, "## `%s`\n\n%s\n\n", cmd.Command, cmd.Description)
		fmt.Fprintf(&b, "**Example**\n\n```\n%s\n```\n\n", cmd.Example)
		fmt.Fprintf(&b, "**Output:** `%s`\n\n", cmd.Output)
	}
	return b.String()
}
