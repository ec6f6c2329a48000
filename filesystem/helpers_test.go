package filesystem

import (
	"errors"
	"testing"

	"github.com/brettbedarf/fmemu/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestFS(t *testing.T) *FileSystem {
	t.Helper()
	return NewFS(config.NewDefaultConfig())
}

// mustLookup returns the node at p or fails the test
func mustLookup(t *testing.T, fs *FileSystem, p string) *Node {
	t.Helper()
	n, ok := fs.Lookup(p)
	require.True(t, ok, "expected %s to exist", p)
	return n
}

func assertMissing(t *testing.T, fs *FileSystem, p string) {
	t.Helper()
	_, ok := fs.Lookup(p)
	assert.False(t, ok, "expected %s to be gone", p)
}

// requireFSError checks err is a *Error for op wrapping target
func requireFSError(t *testing.T, err error, op string, target error) {
	t.Helper()
	require.Error(t, err)
	var fsErr *Error
	require.True(t, errors.As(err, &fsErr), "expected *Error, got %T", err)
	assert.Equal(t, op, fsErr.Op)
	assert.ErrorIs(t, err, target)
}

// setup runs a series of engine calls that must all succeed
func setup(t *testing.T, fns ...error) {
	t.Helper()
	for i, err := range fns {
		require.NoError(t, err, "setup step %d", i)
	}
}
