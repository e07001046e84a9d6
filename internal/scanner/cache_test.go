package scanner

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/maxvaer/classver/internal/classfile"
)

func TestCacheInvalidatesOnChange(t *testing.T) {
	cache, err := NewCache(4)
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, "A.class", classBytes(52))
	v := classfile.Version{Major: 52}
	cache.Store(path, Result{Path: path, Version: &v})

	if _, ok := cache.Lookup(path); !ok {
		t.Fatal("expected cache hit")
	}

	// Rewrite with a different size and a later mtime.
	if err := os.WriteFile(path, append(classBytes(61), 0, 0, 0), 0644); err != nil {
		t.Fatal(err)
	}
	later := time.Now().Add(time.Hour)
	if err := os.Chtimes(path, later, later); err != nil {
		t.Fatal(err)
	}
	if _, ok := cache.Lookup(path); ok {
		t.Error("modified file should miss the cache")
	}
}

func TestCacheSkipsMissingPaths(t *testing.T) {
	cache, err := NewCache(4)
	if err != nil {
		t.Fatal(err)
	}
	missing := filepath.Join(t.TempDir(), "missing.class")
	cache.Store(missing, Result{Path: missing})
	if cache.Len() != 0 {
		t.Errorf("missing path should not be cached, len=%d", cache.Len())
	}
}

func TestNilCache(t *testing.T) {
	var cache *Cache
	cache.Store("x", Result{})
	if _, ok := cache.Lookup("x"); ok {
		t.Error("nil cache should always miss")
	}
	if cache.Len() != 0 {
		t.Error("nil cache should be empty")
	}
}
