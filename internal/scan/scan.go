package scan

import (
	"errors"
	"iter"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"totallines/internal/domain"
	"totallines/internal/safeio"
)

// FileVisit carries per-entry metadata to the consumer of a scan.
type FileVisit struct {
	// Root-relative path using forward slashes (e.g., "src/game/Game.java").
	Path string
	// True when the entry is a directory.
	IsDir bool
	// True when the entry itself is a symbolic link.
	IsSymlink bool
	// Size in bytes as reported by Lstat.
	Size int64
	// Modification time as reported by Lstat.
	ModTime time.Time
}

// Name returns the base name of the entry.
func (f FileVisit) Name() string {
	return path.Base(f.Path)
}

// Options controls which entries Files yields.
type Options struct {
	// FilesOnly omits directory entries.
	FilesOnly bool
}

var errStopWalk = errors.New("scan: consumer stopped")

// Files walks the tree under fsys and yields every entry below the root,
// depth first in lexical order. The walk is lazy: nothing is read until the
// sequence is ranged over, and breaking out of the range stops the walk.
// The first walk error is yielded once as a traversal failure and ends the
// sequence.
func Files(fsys *safeio.SafeFS, opts Options) iter.Seq2[FileVisit, error] {
	return func(yield func(FileVisit, error) bool) {
		err := fsys.Walk(".", func(p string, info os.FileInfo, err error) error {
			rel := filepath.ToSlash(p)
			if err != nil {
				return domain.TraversalFailure("scan.walk", rel, err)
			}
			if rel == "." {
				return nil
			}
			fv := FileVisit{
				Path:      rel,
				IsDir:     info.IsDir(),
				IsSymlink: info.Mode()&os.ModeSymlink != 0,
				Size:      info.Size(),
				ModTime:   info.ModTime(),
			}
			if opts.FilesOnly && fv.IsDir {
				return nil
			}
			if !yield(fv, nil) {
				return errStopWalk
			}
			return nil
		})
		if err != nil && !errors.Is(err, errStopWalk) {
			if !domain.IsKind(err, domain.KindTraversal) {
				err = domain.TraversalFailure("scan.walk", ".", err)
			}
			yield(FileVisit{}, err)
		}
	}
}

// Matching yields every entry whose name ends with ext, directories
// included: a directory (or a symlink to one) named like a source file is
// still a match, and reading it is the consumer's failure to report. The
// comparison is case-sensitive and ext is used verbatim, so ".java" also
// matches a file named exactly ".java".
func Matching(fsys *safeio.SafeFS, ext string) iter.Seq2[FileVisit, error] {
	return func(yield func(FileVisit, error) bool) {
		for fv, err := range Files(fsys, Options{}) {
			if err != nil {
				yield(FileVisit{}, err)
				return
			}
			if !HasSuffix(fv.Name(), ext) {
				continue
			}
			if !yield(fv, nil) {
				return
			}
		}
	}
}

// HasSuffix reports whether name ends with ext. An empty ext matches nothing.
func HasSuffix(name, ext string) bool {
	if ext == "" {
		return false
	}
	return strings.HasSuffix(name, ext)
}
