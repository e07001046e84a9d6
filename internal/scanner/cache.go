package scanner

import (
	"os"
	"path/filepath"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultCacheSize bounds the number of remembered path results.
const DefaultCacheSize = 4096

type cacheKey struct {
	path    string
	size    int64
	modTime int64
}

// Cache remembers results by file identity (absolute path, size, mtime) so
// a file named more than once in a run is read once. A nil *Cache is a
// valid, always-missing cache. Safe for concurrent use.
type Cache struct {
	entries *lru.Cache[cacheKey, Result]
}

// NewCache creates a result cache holding up to size entries.
func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = DefaultCacheSize
	}
	c, err := lru.New[cacheKey, Result](size)
	if err != nil {
		return nil, err
	}
	return &Cache{entries: c}, nil
}

func keyFor(path string) (cacheKey, bool) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return cacheKey{}, false
	}
	info, err := os.Stat(abs)
	if err != nil || !info.Mode().IsRegular() {
		return cacheKey{}, false
	}
	return cacheKey{path: abs, size: info.Size(), modTime: info.ModTime().UnixNano()}, true
}

// Lookup returns a previously stored result for the file at path.
func (c *Cache) Lookup(path string) (Result, bool) {
	if c == nil {
		return Result{}, false
	}
	key, ok := keyFor(path)
	if !ok {
		return Result{}, false
	}
	res, ok := c.entries.Get(key)
	if ok {
		res.Cached = true
	}
	return res, ok
}

// Store records res for the file at path. Unstattable paths are not cached.
func (c *Cache) Store(path string, res Result) {
	if c == nil {
		return
	}
	if key, ok := keyFor(path); ok {
		c.entries.Add(key, res)
	}
}

// Len returns the number of cached results.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return c.entries.Len()
}
