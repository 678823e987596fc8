package progress

import (
	"bytes"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setColor(t *testing.T, enabled bool) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = !enabled
	t.Cleanup(func() {
		color.NoColor = prev
	})
}

func TestRender_PlainText(t *testing.T) {
	setColor(t, false)

	tr := New("Initialize Forge SDD Toolkit")
	tr.Add("toolkit", "Copy toolkit structure")
	tr.Add("specs", "Create specs directory")
	tr.Add("git", "Initialize git repository")
	tr.Add("final", "Finalize")
	tr.Complete("toolkit", "12 files in 3 directories")
	tr.Start("specs", "")
	tr.Skip("git", "--no-git flag")
	tr.Error("final", "  permission denied  ")

	want := strings.Join([]string{
		"Initialize Forge SDD Toolkit",
		"├── ● Copy toolkit structure (12 files in 3 directories)",
		"├── ○ Create specs directory",
		"├── ○ Initialize git repository (--no-git flag)",
		"└── ● Finalize (permission denied)",
		"",
	}, "\n")
	assert.Equal(t, want, tr.Render().String())
}

func TestRender_PendingWithDetail(t *testing.T) {
	setColor(t, false)

	line := Line{Status: StatusPending, Label: "Create usage guide", Detail: "waiting"}
	assert.Equal(t, "○ Create usage guide (waiting)", line.String())
}

func TestRender_IsPure(t *testing.T) {
	tr := New("t")
	tr.Add("a", "A")
	calls := 0
	tr.AttachRefresh(func() error {
		calls++
		return nil
	})

	first := tr.Render()
	second := tr.Render()

	assert.Equal(t, first, second)
	assert.Zero(t, calls)
}

func TestRender_StylingDependsOnStatusOnly(t *testing.T) {
	setColor(t, true)

	tests := []struct {
		status Status
		prefix string
	}{
		{StatusDone, "\x1b[32m●"},
		{StatusPending, "\x1b[32;2m○"},
		{StatusRunning, "\x1b[36m○"},
		{StatusError, "\x1b[31m●"},
		{StatusSkipped, "\x1b[33m○"},
	}
	for _, tt := range tests {
		t.Run(string(tt.status), func(t *testing.T) {
			a := Line{Status: tt.status, Label: "Copy", Detail: "x"}.String()
			b := Line{Status: tt.status, Label: "Copy", Detail: "x"}.String()
			assert.Equal(t, a, b)
			assert.True(t, strings.HasPrefix(a, tt.prefix), "line %q", a)
		})
	}
}

func TestRender_PendingDimsLabelAndDetailTogether(t *testing.T) {
	setColor(t, true)

	pending := Line{Status: StatusPending, Label: "Finalize", Detail: "later"}.String()
	assert.Contains(t, pending, "\x1b[90mFinalize (later)")

	done := Line{Status: StatusDone, Label: "Finalize", Detail: "later"}.String()
	assert.Contains(t, done, "\x1b[37mFinalize")
	assert.Contains(t, done, "\x1b[90m(later)")
}

func TestTree_WriteTo(t *testing.T) {
	setColor(t, false)

	tree := Tree{Title: "Check Available Tools", Lines: []Line{
		{Status: StatusDone, Label: "Git", Detail: "git version 2.43.0"},
	}}
	var buf bytes.Buffer
	n, err := tree.WriteTo(&buf)
	require.NoError(t, err)
	assert.Equal(t, int64(buf.Len()), n)
	assert.Equal(t, "Check Available Tools\n└── ● Git (git version 2.43.0)\n", buf.String())
	assert.Equal(t, 2, tree.Height())
}

func TestTree_Empty(t *testing.T) {
	setColor(t, false)
	assert.Equal(t, "Empty\n", New("Empty").Render().String())
}
