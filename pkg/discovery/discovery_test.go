// Test Type: Unit Test
// Description: Tests for the discovery package - package tree walking

package discovery_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/arthur-debert/towboat/pkg/discovery"
	"github.com/arthur-debert/towboat/pkg/errors"
	"github.com/arthur-debert/towboat/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func targetRels(items []types.DiscoveredItem) []string {
	rels := make([]string, 0, len(items))
	for _, it := range items {
		rels = append(rels, it.TargetRel)
	}
	return rels
}

func TestDiscoverRequiresManifest(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "bash")
	require.NoError(t, os.MkdirAll(pkg, 0755))
	writeFile(t, filepath.Join(pkg, ".bashrc"), "content")

	_, err := discovery.Discover(pkg, "linux")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrManifestNotFound))
}

func TestDiscoverExplicitRules(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "bash")
	writeFile(t, filepath.Join(pkg, "boat.toml"), `
[targets]
".bashrc" = { target = ".bashrc", tags = ["linux"] }
".vimrc" = { target = ".vimrc", tags = ["macos"] }

[default]
include_all = false
`)
	writeFile(t, filepath.Join(pkg, ".bashrc"), "linux bash content")
	writeFile(t, filepath.Join(pkg, ".vimrc"), "macos vim content")
	writeFile(t, filepath.Join(pkg, "README.md"), "readme content")

	items, err := discovery.Discover(pkg, "linux")
	require.NoError(t, err)

	require.Len(t, items, 1)
	assert.Equal(t, filepath.Join(pkg, ".bashrc"), items[0].Source)
	assert.Equal(t, ".bashrc", items[0].TargetRel)
}

func TestDiscoverManifestNeverACandidate(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "pkg")
	writeFile(t, filepath.Join(pkg, "boat.toml"), `
[default]
include_all = true
default_tag = "default"
`)
	writeFile(t, filepath.Join(pkg, "file.txt"), "hello")

	items, err := discovery.Discover(pkg, "default")
	require.NoError(t, err)

	assert.Equal(t, []string{"file.txt"}, targetRels(items))
}

func TestDiscoverContentSniff(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "git")
	writeFile(t, filepath.Join(pkg, "boat.toml"), `
[default]
include_all = false
`)
	writeFile(t, filepath.Join(pkg, ".gitconfig"), "# {linux-\nlinux git config\n# -linux}\n")
	writeFile(t, filepath.Join(pkg, "plain.txt"), "no markers here\n")

	items, err := discovery.Discover(pkg, "linux")
	require.NoError(t, err)

	assert.Equal(t, []string{".gitconfig"}, targetRels(items))
}

func TestDiscoverDirectoryRule(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "tools")
	writeFile(t, filepath.Join(pkg, "boat.toml"), `
[targets]
"scripts" = { tags = ["linux"] }

[default]
include_all = false
`)
	writeFile(t, filepath.Join(pkg, "scripts", "deploy.sh"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(pkg, "scripts", "clean.sh"), "#!/bin/sh\n")
	writeFile(t, filepath.Join(pkg, "other", "note.txt"), "skip me\n")

	items, err := discovery.Discover(pkg, "linux")
	require.NoError(t, err)

	assert.ElementsMatch(t,
		[]string{filepath.Join("scripts", "deploy.sh"), filepath.Join("scripts", "clean.sh")},
		targetRels(items))
}

func TestDiscoverNestedPackage(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "dotfiles")
	writeFile(t, filepath.Join(pkg, "boat.toml"), `
[default]
include_all = true
default_tag = "default"
`)
	writeFile(t, filepath.Join(pkg, "top.txt"), "top\n")

	// Nested package with its own manifest and different rules
	writeFile(t, filepath.Join(pkg, "vim", "boat.toml"), `
[targets]
"vimrc" = { target = ".vimrc", tags = ["default"] }

[default]
include_all = false
`)
	writeFile(t, filepath.Join(pkg, "vim", "vimrc"), "set number\n")
	writeFile(t, filepath.Join(pkg, "vim", "notes.md"), "excluded by nested manifest\n")

	items, err := discovery.Discover(pkg, "default")
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"top.txt", ".vimrc"}, targetRels(items))
}

func TestDiscoverBrokenSymlinkSkipped(t *testing.T) {
	pkg := filepath.Join(t.TempDir(), "pkg")
	writeFile(t, filepath.Join(pkg, "boat.toml"), `
[default]
include_all = true
default_tag = "default"
`)
	writeFile(t, filepath.Join(pkg, "good.txt"), "fine\n")
	require.NoError(t, os.Symlink(filepath.Join(pkg, "gone.txt"), filepath.Join(pkg, "dangling")))

	items, err := discovery.Discover(pkg, "default")
	require.NoError(t, err)

	assert.Equal(t, []string{"good.txt"}, targetRels(items))
}

func TestDiscoverManifestFoundUpward(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "boat.toml"), `
[default]
include_all = true
default_tag = "default"
`)
	pkg := filepath.Join(root, "bash")
	writeFile(t, filepath.Join(pkg, ".bashrc"), "content\n")

	items, err := discovery.Discover(pkg, "default")
	require.NoError(t, err)

	assert.Equal(t, []string{".bashrc"}, targetRels(items))
}
