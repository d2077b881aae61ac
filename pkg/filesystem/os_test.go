package filesystem

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewOS(t *testing.T) {
	fs := NewOS()
	require.NotNil(t, fs)

	tmpDir := t.TempDir()
	testFile := filepath.Join(tmpDir, "test.txt")
	testContent := []byte("hello world")

	require.NoError(t, fs.WriteFile(testFile, testContent, 0644))

	info, err := fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, "test.txt", info.Name())
	assert.Equal(t, int64(len(testContent)), info.Size())

	content, err := fs.ReadFile(testFile)
	require.NoError(t, err)
	assert.Equal(t, testContent, content)

	require.NoError(t, fs.Chmod(testFile, 0755))
	info, err = fs.Stat(testFile)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0755), info.Mode().Perm())

	subDir := filepath.Join(tmpDir, "sub", "dir")
	require.NoError(t, fs.MkdirAll(subDir, 0755))

	require.NoError(t, fs.Remove(testFile))
	_, err = fs.Stat(testFile)
	assert.True(t, os.IsNotExist(err))
}

func TestOSSymlinks(t *testing.T) {
	fs := NewOS()
	tmpDir := t.TempDir()
	link := filepath.Join(tmpDir, "link")

	require.NoError(t, fs.Symlink("/nonexistent/target", link))

	target, err := fs.Readlink(link)
	require.NoError(t, err)
	assert.Equal(t, "/nonexistent/target", target)

	info, err := fs.Lstat(link)
	require.NoError(t, err)
	assert.NotZero(t, info.Mode()&os.ModeSymlink)

	_, err = fs.Stat(link)
	assert.True(t, os.IsNotExist(err), "Stat follows the dangling link")

	require.NoError(t, fs.RemoveAll(tmpDir))
}
