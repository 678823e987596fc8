package project

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/4-youtest/forge-sdd-toolkit/internal/fsops"
)

const issuePanelManifest = `modules:
  jira:issuePanel:
    - key: change-history
      resource: main
      title: Change history
  function:
    - key: resolver
      handler: index.handler
resources:
  - key: main
    path: static/panel/build
app:
  runtime:
    name: nodejs20.x
  id: ari:cloud:ecosystem::app/0c5b1a2e-7d7e-4d1a-9a57-6e2c1c0f6f11
`

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		manifest *string
		want     Info
		wantErr  error
	}{
		{
			name: "no manifest",
			want: Info{Name: "app"},
		},
		{
			name:     "forge app",
			manifest: ptr(issuePanelManifest),
			want: Info{
				Name:        "app",
				IsForge:     true,
				AppID:       "ari:cloud:ecosystem::app/0c5b1a2e-7d7e-4d1a-9a57-6e2c1c0f6f11",
				Runtime:     "nodejs20.x",
				ModuleTypes: []string{"function", "jira:issuePanel"},
			},
		},
		{
			name:     "empty manifest",
			manifest: ptr(""),
			want:     Info{Name: "app", IsForge: true},
		},
		{
			name:     "malformed manifest",
			manifest: ptr("app: [unclosed\n"),
			want:     Info{Name: "app", IsForge: true},
			wantErr:  ErrInvalidManifest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := filepath.Join(t.TempDir(), "app")
			require.NoError(t, os.Mkdir(root, 0755))
			if tt.manifest != nil {
				require.NoError(t, os.WriteFile(filepath.Join(root, ManifestFile), []byte(*tt.manifest), 0644))
			}

			got, err := Detect(fsops.NewRealFS(), root)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.True(t, errors.Is(err, tt.wantErr))
			} else {
				require.NoError(t, err)
			}

			tt.want.Root = root
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindLegacy(t *testing.T) {
	tests := []struct {
		name string
		dirs []string
		want []Legacy
	}{
		{
			name: "clean project",
			dirs: []string{".github/prompts", "forge-sdd/scripts", "forge-sdd/templates"},
		},
		{
			name: "old dirs without replacements are project content",
			dirs: []string{"prompts", "scripts", "templates"},
		},
		{
			name: "leftovers next to new layout",
			dirs: []string{"prompts", "scripts", ".github/prompts", "forge-sdd/scripts"},
			want: []Legacy{
				{Path: "prompts", Replacement: filepath.Join(".github", "prompts")},
				{Path: "scripts", Replacement: filepath.Join("forge-sdd", "scripts")},
			},
		},
		{
			name: "forge-specs always reported",
			dirs: []string{"forge-specs"},
			want: []Legacy{
				{Path: "forge-specs", Replacement: filepath.Join("forge-sdd", "specs")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			for _, d := range tt.dirs {
				require.NoError(t, os.MkdirAll(filepath.Join(root, filepath.FromSlash(d)), 0755))
			}
			assert.Equal(t, tt.want, FindLegacy(fsops.NewRealFS(), root))
		})
	}
}

func ptr(s string) *string {
	return &s
}
