// Test Type: Unit Test
// Description: Tests for the paths package - XDG dirs and home expansion

package paths

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataDirOverride(t *testing.T) {
	t.Setenv(EnvTowboatDataDir, "/tmp/towboat-data")
	assert.Equal(t, "/tmp/towboat-data", DataDir())
	assert.Equal(t, filepath.Join("/tmp/towboat-data", CacheFileName), CacheFilePath())
}

func TestDataDirDefault(t *testing.T) {
	t.Setenv(EnvTowboatDataDir, "")
	assert.Equal(t, TowboatDirName, filepath.Base(DataDir()))
}

func TestStateDirOverride(t *testing.T) {
	t.Setenv(EnvTowboatStateDir, "/tmp/towboat-state")
	assert.Equal(t, filepath.Join("/tmp/towboat-state", LogFileName), LogFilePath())
}

func TestExpandHome(t *testing.T) {
	home, err := GetHomeDirectory()
	require.NoError(t, err)

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"bare tilde", "~", home},
		{"tilde slash", "~/dotfiles", filepath.Join(home, "dotfiles")},
		{"absolute untouched", "/etc/fish", "/etc/fish"},
		{"relative untouched", "dotfiles", "dotfiles"},
		{"tilde user untouched", "~other/x", "~other/x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ExpandHome(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
