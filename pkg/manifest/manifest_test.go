// Test Type: Unit Test
// Description: Tests for the manifest package - boat.toml location and parsing

package manifest_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/towboat/pkg/errors"
	"github.com/arthur-debert/towboat/pkg/manifest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		tomlContent string
		wantError   bool
		wantCode    errors.ErrorCode
		validate    func(t *testing.T, m *manifest.Manifest)
	}{
		{
			name: "full_manifest",
			tomlContent: `
target_dir = "~/.config"
build_tags = ["linux", "macos"]

[targets]
".bashrc" = { target = ".bashrc", tags = ["linux", "macos"] }
"scripts" = { tags = ["linux"] }

[default]
include_all = true
default_tag = "default"
`,
			validate: func(t *testing.T, m *manifest.Manifest) {
				assert.Equal(t, "~/.config", m.TargetDir)
				assert.Equal(t, []string{"linux", "macos"}, m.BuildTags)
				require.Len(t, m.Targets, 2)
				assert.Equal(t, []string{"linux", "macos"}, m.Targets[".bashrc"].Tags)
				assert.Empty(t, m.Targets["scripts"].Target)
				assert.True(t, m.Default.IncludeAll)
				assert.Equal(t, "default", m.Default.DefaultTag)
			},
		},
		{
			name:        "empty_manifest_gets_defaults",
			tomlContent: ``,
			validate: func(t *testing.T, m *manifest.Manifest) {
				assert.Empty(t, m.TargetDir)
				assert.Empty(t, m.Targets)
				assert.False(t, m.Default.IncludeAll)
				assert.Equal(t, "default", m.Default.DefaultTag)
			},
		},
		{
			name: "default_tag_fills_in",
			tomlContent: `
[default]
include_all = true
`,
			validate: func(t *testing.T, m *manifest.Manifest) {
				assert.True(t, m.Default.IncludeAll)
				assert.Equal(t, "default", m.Default.DefaultTag)
			},
		},
		{
			name:        "malformed_toml",
			tomlContent: `[targets`,
			wantError:   true,
			wantCode:    errors.ErrManifestParse,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tempDir := t.TempDir()
			manifestPath := filepath.Join(tempDir, "boat.toml")
			require.NoError(t, os.WriteFile(manifestPath, []byte(tt.tomlContent), 0644))

			m, err := manifest.Parse(manifestPath)
			if tt.wantError {
				require.Error(t, err)
				assert.True(t, errors.IsErrorCode(err, tt.wantCode))
				return
			}
			require.NoError(t, err)
			tt.validate(t, m)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := manifest.Parse(filepath.Join(t.TempDir(), "boat.toml"))
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestNotFound))
}

func TestFind(t *testing.T) {
	t.Run("manifest_in_dir", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.WriteFile(filepath.Join(dir, "boat.toml"), []byte(""), 0644))

		found, ok := manifest.Find(dir)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(dir, "boat.toml"), found)
	})

	t.Run("manifest_in_ancestor", func(t *testing.T) {
		root := t.TempDir()
		nested := filepath.Join(root, "a", "b", "c")
		require.NoError(t, os.MkdirAll(nested, 0755))
		require.NoError(t, os.WriteFile(filepath.Join(root, "boat.toml"), []byte(""), 0644))

		found, ok := manifest.Find(nested)
		require.True(t, ok)
		assert.Equal(t, filepath.Join(root, "boat.toml"), found)
	})

	t.Run("no_manifest_anywhere", func(t *testing.T) {
		// Assumes no boat.toml in the temp dir's ancestor chain
		_, ok := manifest.Find(t.TempDir())
		assert.False(t, ok)
	})

	t.Run("directory_named_boat_toml_is_ignored", func(t *testing.T) {
		dir := t.TempDir()
		require.NoError(t, os.MkdirAll(filepath.Join(dir, "boat.toml"), 0755))

		_, ok := manifest.Find(dir)
		assert.False(t, ok)
	})
}
