package types

import (
	"io/fs"
)

// FS is the filesystem interface required for homebuild operations
type FS interface {
	// File operations
	Stat(name string) (fs.FileInfo, error)
	ReadFile(name string) ([]byte, error)
	WriteFile(name string, data []byte, perm fs.FileMode) error
	Chmod(name string, mode fs.FileMode) error

	// Directory operations
	MkdirAll(path string, perm fs.FileMode) error

	// Symlink operations
	Symlink(oldname, newname string) error
	Readlink(name string) (string, error)

	// Other operations
	Remove(name string) error
	RemoveAll(path string) error

	// Lstat does not follow symlinks. The symlink applier relies on it to
	// see dangling links at a destination.
	Lstat(name string) (fs.FileInfo, error)
}
