// Test Type: Unit Test
// Description: Tests for the errors package - structured error codes

package errors

import (
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	err := New(ErrManifestNotFound, "no manifest")
	assert.Equal(t, "[MANIFEST_NOT_FOUND] no manifest", err.Error())
	assert.Equal(t, ErrManifestNotFound, GetErrorCode(err))
}

func TestWrapPreservesCause(t *testing.T) {
	cause := stderrors.New("permission denied")
	err := Wrap(cause, ErrFileAccess, "failed to read file")

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "permission denied")
	assert.Equal(t, ErrFileAccess, GetErrorCode(err))
}

func TestWithDetail(t *testing.T) {
	err := New(ErrTargetExists, "target exists").
		WithDetail("target", "/home/u/.vimrc").
		WithDetail("hint", "use --force")

	details := GetErrorDetails(err)
	require.NotNil(t, details)
	assert.Equal(t, "/home/u/.vimrc", details["target"])
	assert.Equal(t, "use --force", details["hint"])
}

func TestIsErrorCode(t *testing.T) {
	err := Newf(ErrCacheLoad, "bad cache at %s", "/tmp/cache.toml")
	assert.True(t, IsErrorCode(err, ErrCacheLoad))
	assert.False(t, IsErrorCode(err, ErrCacheSave))
	assert.False(t, IsErrorCode(stderrors.New("plain"), ErrCacheLoad))
}

func TestIsMatchesByCode(t *testing.T) {
	sentinel := New(ErrSourceMissing, "source missing")
	wrapped := Wrap(New(ErrSourceMissing, "other message"), ErrFileAccess, "outer")

	assert.True(t, stderrors.Is(wrapped, sentinel))
}

func TestGetErrorCodeOnForeignError(t *testing.T) {
	assert.Equal(t, ErrUnknown, GetErrorCode(stderrors.New("plain")))
	assert.Equal(t, ErrUnknown, GetErrorCode(nil))
}
