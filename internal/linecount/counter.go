package linecount

import (
	"errors"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"

	"totallines/internal/domain"
	"totallines/internal/logging"
	"totallines/internal/safeio"
	"totallines/internal/scan"
)

// DefaultCacheSize is the number of per-file counts a Counter remembers.
const DefaultCacheSize = 1024

type cacheKey struct {
	path    string
	size    int64
	modTime int64
}

// Counter sums the line counts of every file under a root whose name ends
// with a fixed extension.
type Counter struct {
	fs    *safeio.SafeFS
	ext   string
	cache *lru.Cache[cacheKey, int] // nil when disabled
	log   *logrus.Entry
}

// Option configures a Counter.
type Option func(*Counter) error

// WithCacheSize bounds the per-file count cache. Zero disables it.
func WithCacheSize(n int) Option {
	return func(c *Counter) error {
		if n < 0 {
			return fmt.Errorf("linecount: negative cache size %d", n)
		}
		if n == 0 {
			c.cache = nil
			return nil
		}
		cache, err := lru.New[cacheKey, int](n)
		if err != nil {
			return err
		}
		c.cache = cache
		return nil
	}
}

// WithLogger replaces the default component logger.
func WithLogger(l *logrus.Entry) Option {
	return func(c *Counter) error {
		if l != nil {
			c.log = l
		}
		return nil
	}
}

// New returns a Counter for files under fsys ending with ext.
func New(fsys *safeio.SafeFS, ext string, opts ...Option) (*Counter, error) {
	if fsys == nil {
		return nil, errors.New("linecount: filesystem is required")
	}
	if ext == "" {
		return nil, errors.New("linecount: extension is required")
	}
	c := &Counter{
		fs:  fsys,
		ext: ext,
		log: logging.For("linecount"),
	}
	if err := WithCacheSize(DefaultCacheSize)(c); err != nil {
		return nil, err
	}
	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}
	return c, nil
}

// Extension returns the suffix this Counter matches.
func (c *Counter) Extension() string { return c.ext }

// Total walks the tree once and returns the sum of the line counts of every
// matching file. The first failure aborts the walk; no partial total is
// returned.
func (c *Counter) Total() (int, error) {
	total := 0
	files := 0
	for fv, err := range scan.Matching(c.fs, c.ext) {
		if err != nil {
			return 0, err
		}
		n, err := c.countVisit(fv)
		if err != nil {
			return 0, err
		}
		total += n
		files++
	}
	c.log.WithFields(logrus.Fields{
		"root":  c.fs.Root(),
		"ext":   c.ext,
		"files": files,
		"lines": total,
	}).Debug("count complete")
	return total, nil
}

// CountFile counts the lines of one file, bypassing the cache. The handle is
// closed on every path out of the call.
func (c *Counter) CountFile(path string) (n int, err error) {
	f, err := c.fs.Open(path)
	if err != nil {
		return 0, domain.IOFailure("linecount.open", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			n, err = 0, domain.IOFailure("linecount.close", path, cerr)
		}
	}()

	n, err = CountLines(f)
	if err != nil {
		return 0, domain.IOFailure("linecount.read", path, err)
	}
	return n, nil
}

func (c *Counter) countVisit(fv scan.FileVisit) (int, error) {
	// Lstat metadata of a symlink says nothing about its target.
	cacheable := c.cache != nil && !fv.IsSymlink
	key := cacheKey{path: fv.Path, size: fv.Size, modTime: fv.ModTime.UnixNano()}
	if cacheable {
		if n, ok := c.cache.Get(key); ok {
			c.log.WithFields(logrus.Fields{"path": fv.Path, "lines": n}).Trace("cached")
			return n, nil
		}
	}

	n, err := c.CountFile(fv.Path)
	if err != nil {
		return 0, err
	}
	if cacheable {
		c.cache.Add(key, n)
	}
	c.log.WithFields(logrus.Fields{"path": fv.Path, "lines": n}).Debug("counted")
	return n, nil
}
