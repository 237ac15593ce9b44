// Package fsys is the file system the engine writes through. It is backed by
// go-billy so that production runs use the host file system and tests use an
// in-memory one.
package fsys

import (
	"io/fs"
	"os"
	"path/filepath"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"

	"github.com/teranos/fgen/errors"
)

// Default permissions for generated files and directories.
const (
	DirPerm  os.FileMode = 0755
	FilePerm os.FileMode = 0644
)

// FileSystem is the subset of file operations a generation run performs.
type FileSystem interface {
	Stat(name string) (os.FileInfo, error)
	Lstat(name string) (os.FileInfo, error)
	// Mkdir creates exactly one directory. The parent must exist and name
	// must not.
	Mkdir(name string, perm os.FileMode) error
	// WriteFile creates or truncates name.
	WriteFile(name string, data []byte, perm os.FileMode) error
	// AppendFile appends to name, creating it if needed.
	AppendFile(name string, data []byte, perm os.FileMode) error
	ReadFile(name string) ([]byte, error)
}

// Billy adapts a billy.Filesystem.
type Billy struct {
	fs billy.Filesystem
}

var _ FileSystem = (*Billy)(nil)

// New wraps fs.
func New(fs billy.Filesystem) *Billy {
	return &Billy{fs: fs}
}

// OS returns the host file system. Paths are resolved from the root, so
// callers pass absolute paths.
func OS() *Billy {
	return New(osfs.New("/"))
}

// Memory returns an empty in-memory file system.
func Memory() *Billy {
	return New(memfs.New())
}

// Underlying exposes the wrapped billy.Filesystem.
func (b *Billy) Underlying() billy.Filesystem { return b.fs }

func (b *Billy) Stat(name string) (os.FileInfo, error) {
	return b.fs.Stat(name)
}

func (b *Billy) Lstat(name string) (os.FileInfo, error) {
	return b.fs.Lstat(name)
}

func (b *Billy) Mkdir(name string, perm os.FileMode) error {
	if _, err := b.fs.Lstat(name); err == nil {
		return &os.PathError{Op: "mkdir", Path: name, Err: fs.ErrExist}
	}

	parent := filepath.Dir(name)
	info, err := b.fs.Stat(parent)
	if err != nil {
		return &os.PathError{Op: "mkdir", Path: name, Err: err}
	}
	if !info.IsDir() {
		return &os.PathError{Op: "mkdir", Path: name, Err: errors.Newf("parent %s is not a directory", parent)}
	}

	return b.fs.MkdirAll(name, perm)
}

func (b *Billy) WriteFile(name string, data []byte, perm os.FileMode) error {
	return util.WriteFile(b.fs, name, data, perm)
}

func (b *Billy) AppendFile(name string, data []byte, perm os.FileMode) error {
	f, err := b.fs.OpenFile(name, os.O_WRONLY|os.O_APPEND|os.O_CREATE, perm)
	if err != nil {
		return err
	}
	_, werr := f.Write(data)
	cerr := f.Close()
	if werr != nil {
		return werr
	}
	return cerr
}

func (b *Billy) ReadFile(name string) ([]byte, error) {
	return util.ReadFile(b.fs, name)
}

// IsRegular reports whether name exists and is a regular file.
func IsRegular(fsys FileSystem, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.Mode().IsRegular()
}

// IsDir reports whether name exists and is a directory.
func IsDir(fsys FileSystem, name string) bool {
	info, err := fsys.Stat(name)
	return err == nil && info.IsDir()
}
