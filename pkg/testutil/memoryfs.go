package testutil

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"
)

// MemoryFS implements types.FS interface with in-memory storage
type MemoryFS struct {
	mu    sync.RWMutex
	files map[string]*fileNode
	umask os.FileMode

	// Error injection
	errorPaths map[string]error

	// Operation log, in call order, for asserting side-effect sequences
	ops []string
}

// fileNode represents a file, directory or symlink in memory
type fileNode struct {
	name     string
	mode     os.FileMode
	modTime  time.Time
	content  []byte
	isDir    bool
	isLink   bool
	linkDest string
	children map[string]*fileNode
}

// NewMemoryFS creates a new in-memory filesystem
func NewMemoryFS() *MemoryFS {
	root := &fileNode{
		name:     "/",
		mode:     0755 | os.ModeDir,
		modTime:  time.Now(),
		isDir:    true,
		children: make(map[string]*fileNode),
	}

	return &MemoryFS{
		files:      map[string]*fileNode{"/": root},
		umask:      0022,
		errorPaths: make(map[string]error),
	}
}

func normalizePath(path string) string {
	if !filepath.IsAbs(path) {
		path = filepath.Join("/", path)
	}
	return filepath.Clean(path)
}

func (m *MemoryFS) record(op, path string) {
	m.ops = append(m.ops, op+" "+path)
}

// lookup returns the node at path without following a final symlink
func (m *MemoryFS) lookup(path string) (*fileNode, error) {
	path = normalizePath(path)

	if err, ok := m.errorPaths[path]; ok {
		return nil, err
	}

	node, exists := m.files[path]
	if !exists {
		return nil, &fs.PathError{Op: "lstat", Path: path, Err: fs.ErrNotExist}
	}
	return node, nil
}

// resolve follows symlinks until a non-link node is reached
func (m *MemoryFS) resolve(path string) (*fileNode, error) {
	path = normalizePath(path)
	for hops := 0; hops < 40; hops++ {
		node, err := m.lookup(path)
		if err != nil {
			return nil, err
		}
		if !node.isLink {
			return node, nil
		}
		target := node.linkDest
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = normalizePath(target)
	}
	return nil, &fs.PathError{Op: "stat", Path: path, Err: errors.New("too many levels of symbolic links")}
}

// parentOf returns the directory node that holds path
func (m *MemoryFS) parentOf(path string) (*fileNode, string, error) {
	path = normalizePath(path)
	dir := filepath.Dir(path)

	parent, err := m.resolve(dir)
	if err != nil {
		return nil, "", err
	}
	if !parent.isDir {
		return nil, "", &fs.PathError{Op: "open", Path: dir, Err: errors.New("not a directory")}
	}
	return parent, filepath.Base(path), nil
}

// Stat returns file info, following symlinks
func (m *MemoryFS) Stat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// Lstat returns file info without following symlinks
func (m *MemoryFS) Lstat(name string) (os.FileInfo, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.lookup(name)
	if err != nil {
		return nil, err
	}
	return &fileInfo{node: node, name: filepath.Base(name)}, nil
}

// ReadFile reads the entire file content
func (m *MemoryFS) ReadFile(name string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.resolve(name)
	if err != nil {
		return nil, err
	}
	if node.isDir {
		return nil, &fs.PathError{Op: "read", Path: name, Err: errors.New("is a directory")}
	}

	content := make([]byte, len(node.content))
	copy(content, node.content)
	return content, nil
}

// WriteFile writes data to a file, creating missing parent directories
func (m *MemoryFS) WriteFile(name string, data []byte, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := normalizePath(name)
	m.record("write", path)

	if err, ok := m.errorPaths[path]; ok {
		return err
	}

	if err := m.mkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	parent, filename, err := m.parentOf(path)
	if err != nil {
		return err
	}

	node := &fileNode{
		name:    filename,
		mode:    perm &^ m.umask,
		modTime: time.Now(),
		content: append([]byte(nil), data...),
	}
	parent.children[filename] = node
	m.files[path] = node
	return nil
}

// Chmod changes the permission bits of the file at name, following symlinks
func (m *MemoryFS) Chmod(name string, mode os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("chmod", normalizePath(name))

	node, err := m.resolve(name)
	if err != nil {
		return err
	}
	node.mode = (node.mode &^ os.ModePerm) | (mode & os.ModePerm)
	return nil
}

// Remove removes a file, symlink or empty directory
func (m *MemoryFS) Remove(name string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path := normalizePath(name)
	m.record("remove", path)

	node, err := m.lookup(path)
	if err != nil {
		return err
	}
	if node.isDir && len(node.children) > 0 {
		return &fs.PathError{Op: "remove", Path: name, Err: errors.New("directory not empty")}
	}

	parent, filename, err := m.parentOf(path)
	if err != nil {
		return err
	}
	delete(parent.children, filename)
	delete(m.files, path)
	return nil
}

// RemoveAll removes a path and everything below it
func (m *MemoryFS) RemoveAll(path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	path = normalizePath(path)
	m.record("removeall", path)

	if err, ok := m.errorPaths[path]; ok {
		return err
	}

	for p := range m.files {
		if p == path || strings.HasPrefix(p, path+"/") {
			delete(m.files, p)
		}
	}
	if parent, ok := m.files[filepath.Dir(path)]; ok && parent.isDir {
		delete(parent.children, filepath.Base(path))
	}
	return nil
}

// MkdirAll creates a directory and all necessary parents
func (m *MemoryFS) MkdirAll(path string, perm os.FileMode) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.record("mkdir", normalizePath(path))
	return m.mkdirAll(path, perm)
}

func (m *MemoryFS) mkdirAll(path string, perm os.FileMode) error {
	path = normalizePath(path)

	if err, ok := m.errorPaths[path]; ok {
		return err
	}
	if node, err := m.resolve(path); err == nil {
		if !node.isDir {
			return &fs.PathError{Op: "mkdir", Path: path, Err: errors.New("file exists")}
		}
		return nil
	}

	current := "/"
	currentNode := m.files["/"]
	for _, part := range strings.Split(path, "/") {
		if part == "" {
			continue
		}
		next := filepath.Join(current, part)

		if child, exists := currentNode.children[part]; exists {
			if !child.isDir {
				return &fs.PathError{Op: "mkdir", Path: next, Err: errors.New("not a directory")}
			}
			currentNode, current = child, next
			continue
		}

		newDir := &fileNode{
			name:     part,
			mode:     (perm &^ m.umask) | os.ModeDir,
			modTime:  time.Now(),
			isDir:    true,
			children: make(map[string]*fileNode),
		}
		currentNode.children[part] = newDir
		m.files[next] = newDir
		currentNode, current = newDir, next
	}
	return nil
}

// Readlink returns the destination of a symbolic link
func (m *MemoryFS) Readlink(name string) (string, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	node, err := m.lookup(name)
	if err != nil {
		return "", err
	}
	if !node.isLink {
		return "", &fs.PathError{Op: "readlink", Path: name, Err: errors.New("not a symbolic link")}
	}
	return node.linkDest, nil
}

// Symlink creates link pointing at target. The target does not need to exist.
func (m *MemoryFS) Symlink(target, link string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	linkPath := normalizePath(link)
	m.record("symlink", linkPath)

	if _, err := m.lookup(linkPath); err == nil {
		return &fs.PathError{Op: "symlink", Path: link, Err: fs.ErrExist}
	} else if !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	parent, filename, err := m.parentOf(linkPath)
	if err != nil {
		return err
	}

	node := &fileNode{
		name:     filename,
		mode:     0777 | os.ModeSymlink,
		modTime:  time.Now(),
		isLink:   true,
		linkDest: target,
	}
	parent.children[filename] = node
	m.files[linkPath] = node
	return nil
}

// WithError configures the filesystem to return an error for a specific path
func (m *MemoryFS) WithError(path string, err error) *MemoryFS {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.errorPaths[normalizePath(path)] = err
	return m
}

// Ops returns the mutating operations performed so far, e.g. "symlink /home/.a"
func (m *MemoryFS) Ops() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return append([]string(nil), m.ops...)
}

// Paths returns every path present in the filesystem, sorted
func (m *MemoryFS) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]string, 0, len(m.files))
	for p := range m.files {
		out = append(out, p)
	}
	sort.Strings(out)
	return out
}

// fileInfo implements os.FileInfo
type fileInfo struct {
	node *fileNode
	name string
}

func (fi *fileInfo) Name() string       { return fi.name }
func (fi *fileInfo) Size() int64        { return int64(len(fi.node.content)) }
func (fi *fileInfo) Mode() os.FileMode  { return fi.node.mode }
func (fi *fileInfo) ModTime() time.Time { return fi.node.modTime }
func (fi *fileInfo) IsDir() bool        { return fi.node.isDir }
func (fi *fileInfo) Sys() interface{}   { return nil }
