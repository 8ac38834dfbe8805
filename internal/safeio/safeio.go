package safeio

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/osfs"
	"github.com/go-git/go-billy/v5/util"
)

// SafeFS provides read-only helpers that resolve paths relative to a fixed root.
type SafeFS struct {
	absRoot string // absolute root with symlinks resolved; "/" for in-memory trees
	fs      billy.Filesystem
}

// NewSafeFS locks all future operations to the given root directory on disk.
// The root path is resolved to an absolute, symlink-free directory.
func NewSafeFS(root string) (*SafeFS, error) {
	if root == "" {
		return nil, errors.New("safeio: empty root")
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}
	abs, err = filepath.EvalSymlinks(abs)
	if err != nil {
		return nil, err
	}
	info, err := os.Stat(abs)
	if err != nil {
		return nil, err
	}
	if !info.IsDir() {
		return nil, errors.New("safeio: root is not a directory")
	}
	return &SafeFS{absRoot: abs, fs: osfs.New(abs)}, nil
}

// FromBilly wraps an existing billy filesystem (memfs in tests).
func FromBilly(fs billy.Filesystem) *SafeFS {
	root := fs.Root()
	if root == "" {
		root = string(filepath.Separator)
	}
	return &SafeFS{absRoot: root, fs: fs}
}

// Root returns the absolute root directory bound to this SafeFS.
func (s *SafeFS) Root() string {
	if s == nil {
		return ""
	}
	return s.absRoot
}

// Open opens a file relative to the root for reading.
func (s *SafeFS) Open(userPath string) (billy.File, error) {
	p, err := s.resolve(userPath)
	if err != nil {
		return nil, err
	}
	info, err := s.fs.Stat(p)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return nil, fmt.Errorf("safeio: %s is a directory", p)
	}
	return s.fs.Open(p)
}

// Lstat returns metadata for an entry under the root without following a
// trailing symlink.
func (s *SafeFS) Lstat(userPath string) (os.FileInfo, error) {
	p, err := s.resolve(userPath)
	if err != nil {
		return nil, err
	}
	return s.fs.Lstat(p)
}

// Walk visits every entry under userPath in lexical order. Symlinked
// directories are reported but not descended.
func (s *SafeFS) Walk(userPath string, fn filepath.WalkFunc) error {
	p, err := s.resolve(userPath)
	if err != nil {
		return err
	}
	return util.Walk(s.fs, p, fn)
}

func (s *SafeFS) resolve(userPath string) (string, error) {
	if s == nil || s.fs == nil {
		return "", errors.New("safeio: filesystem not configured")
	}
	if userPath == "" {
		return "", errors.New("safeio: empty path")
	}
	clean := filepath.Clean(filepath.FromSlash(userPath))
	if filepath.IsAbs(clean) {
		rel, err := filepath.Rel(s.absRoot, clean)
		if err != nil {
			return "", fmt.Errorf("safeio: %s is outside root %s", clean, s.absRoot)
		}
		clean = rel
	}
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) {
		return "", errors.New("safeio: path traversal not allowed")
	}
	return clean, nil
}
