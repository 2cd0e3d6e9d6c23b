// Test Type: Unit Test
// Description: Tests for the hashutil package - content checksums

package hashutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChecksum(t *testing.T) {
	// sha256 of the empty string
	assert.Equal(t,
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		Checksum(nil))

	sum := Checksum([]byte("hello\n"))
	assert.Len(t, sum, 64)
	assert.NotEqual(t, sum, Checksum([]byte("hello")))
}

func TestFileChecksum(t *testing.T) {
	path := filepath.Join(t.TempDir(), "f")
	require.NoError(t, os.WriteFile(path, []byte("content"), 0o644))

	sum, err := FileChecksum(path)
	require.NoError(t, err)
	assert.Equal(t, Checksum([]byte("content")), sum)
}

func TestFileChecksumMissingFile(t *testing.T) {
	_, err := FileChecksum(filepath.Join(t.TempDir(), "absent"))
	assert.Error(t, err)
}
