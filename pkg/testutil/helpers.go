package testutil

import (
	"io/fs"
	"os"
	"testing"

	"github.com/arthur-debert/homebuild/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// AssertSymlink fails the test unless path is a symlink pointing at target
func AssertSymlink(t *testing.T, fsys types.FS, path, target string) {
	t.Helper()

	info, err := fsys.Lstat(path)
	require.NoError(t, err, "expected symlink at %s", path)
	require.NotZero(t, info.Mode()&os.ModeSymlink, "%s is not a symlink", path)

	got, err := fsys.Readlink(path)
	require.NoError(t, err)
	assert.Equal(t, target, got, "symlink %s points elsewhere", path)
}

// AssertNotExists fails the test if anything, including a dangling link, exists at path
func AssertNotExists(t *testing.T, fsys types.FS, path string) {
	t.Helper()

	_, err := fsys.Lstat(path)
	assert.ErrorIs(t, err, fs.ErrNotExist, "expected nothing at %s", path)
}

// Entity builds a ConfigEntity for tests
func Entity(name string, links []types.FileLink, scripts []types.Script, imports ...*types.ConfigEntity) *types.ConfigEntity {
	return &types.ConfigEntity{
		Name:      name,
		FileLinks: links,
		Scripts:   scripts,
		Imports:   imports,
	}
}
