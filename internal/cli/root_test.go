package cli

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

// executeCommand runs rootCmd with args and returns everything written to
// stdout and stderr. The config home points at an empty directory.
func executeCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	return executeCommandWithHome(t, t.TempDir(), args...)
}

// executeCommandWithHome is executeCommand with a given config home. Flag
// values left over from earlier runs are reset first.
func executeCommandWithHome(t *testing.T, home string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("FORGE_SDD_HOME", home)
	resetFlags(rootCmd)

	noColor := color.NoColor
	color.NoColor = true

	var buf bytes.Buffer
	rootCmd.SetOut(&buf)
	rootCmd.SetErr(&buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		color.NoColor = noColor
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		rootCmd.SetArgs(nil)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

func resetFlags(cmd *cobra.Command) {
	reset := func(fs *pflag.FlagSet) {
		fs.VisitAll(func(f *pflag.Flag) {
			_ = f.Value.Set(f.DefValue)
			f.Changed = false
		})
	}
	reset(cmd.Flags())
	reset(cmd.PersistentFlags())
	for _, sub := range cmd.Commands() {
		resetFlags(sub)
	}
}

func TestRootCommand_Help(t *testing.T) {
	output, err := executeCommand(t, "--help")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	for _, want := range []string{"forge-sdd", "Project Setup:", "Reference:", "CLI & Tooling:", tagline} {
		if !strings.Contains(output, want) {
			t.Errorf("expected help to contain %q", want)
		}
	}
}

func TestRootCommand_NoArgs(t *testing.T) {
	output, err := executeCommand(t)
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	if !strings.Contains(output, tagline) {
		t.Error("expected banner tagline")
	}
	if !strings.Contains(output, "Run 'forge-sdd --help' for usage information") {
		t.Errorf("expected usage hint, got %q", output)
	}
}

func TestRootCommand_VersionFlag(t *testing.T) {
	SetVersion("1.2.3")
	t.Cleanup(func() { SetVersion("dev") })

	output, err := executeCommand(t, "--version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if strings.TrimSpace(output) != "1.2.3" {
		t.Errorf("expected version output %q, got %q", "1.2.3", output)
	}
}

func TestVersionCommand(t *testing.T) {
	SetVersion("1.0.0")
	t.Cleanup(func() { SetVersion("dev") })

	output, err := executeCommand(t, "version")
	if err != nil {
		t.Fatalf("Execute() error = %v", err)
	}
	if !strings.Contains(output, "Forge SDD Toolkit version 1.0.0") {
		t.Errorf("unexpected version output %q", output)
	}
	if !strings.Contains(output, "Specification-Driven Development for Atlassian Forge") {
		t.Errorf("missing description line in %q", output)
	}
}

func TestRootCommand_InvalidCommand(t *testing.T) {
	_, err := executeCommand(t, "invalid-command")
	if err == nil {
		t.Error("expected error for invalid command")
	}
}

func TestSetVersion(t *testing.T) {
	t.Cleanup(func() { SetVersion("dev") })

	tests := []struct {
		name    string
		version string
		want    string
	}{
		{"normal version", "1.2.3", "1.2.3"},
		{"empty version keeps previous", "", "1.2.3"},
		{"dev version", "dev", "dev"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			SetVersion(tt.version)
			if rootCmd.Version != tt.want {
				t.Errorf("SetVersion(%q) = %q, want %q", tt.version, rootCmd.Version, tt.want)
			}
		})
	}
}

func TestRootCommand_Subcommands(t *testing.T) {
	subcommands := []string{"init", "check", "commands", "version", "completion"}

	for _, name := range subcommands {
		t.Run(name, func(t *testing.T) {
			subCmd, _, err := rootCmd.Find([]string{name})
			if err != nil {
				t.Fatalf("Find(%q) error = %v", name, err)
			}
			if subCmd.Name() != name {
				t.Errorf("Find(%q) returned %q", name, subCmd.Name())
			}
		})
	}
}

func TestCompletionCommand(t *testing.T) {
	for _, shell := range []string{"bash", "zsh", "fish", "powershell"} {
		t.Run(shell, func(t *testing.T) {
			output, err := executeCommand(t, "completion", shell)
			if err != nil {
				t.Fatalf("completion %s error = %v", shell, err)
			}
			if !strings.Contains(output, "forge-sdd") {
				t.Errorf("completion %s output does not mention forge-sdd", shell)
			}
		})
	}
}
