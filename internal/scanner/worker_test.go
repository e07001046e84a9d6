package scanner

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/maxvaer/classver/internal/classfile"
)

func TestAggregatePreservesInputOrder(t *testing.T) {
	var paths []string
	for i := 0; i < 40; i++ {
		major := uint16(45 + i%20)
		if i%3 == 0 {
			paths = append(paths, writeJar(t, fmt.Sprintf("lib%d.jar", i), []entry{
				{"A.class", classBytes(major)},
				{"B.class", classBytes(45)},
			}))
		} else {
			paths = append(paths, writeFile(t, fmt.Sprintf("C%d.class", i), classBytes(major)))
		}
	}

	out := Aggregate(context.Background(), paths, WorkerConfig{Threads: 8})
	if len(out.Results) != len(paths) {
		t.Fatalf("expected %d results, got %d", len(paths), len(out.Results))
	}
	for i, r := range out.Results {
		if r.Path != paths[i] || r.Index != i {
			t.Fatalf("result %d out of order: %s", i, r.Path)
		}
		if want := uint16(45 + i%20); r.Version == nil || r.Version.Major != want {
			t.Errorf("result %d: got %v, want major %d", i, r.Version, want)
		}
	}
	if out.Max == nil || out.Max.Major != 64 {
		t.Errorf("expected overall max 64, got %v", out.Max)
	}
}

func TestAggregateOverallMax(t *testing.T) {
	jar := writeJar(t, "app.jar", []entry{
		{"A.class", classBytes(50)},
		{"B.class", classBytes(55)},
		{"C.class", classBytes(52)},
	})
	cls := writeFile(t, "X.class", classBytes(61))
	missing := filepath.Join(t.TempDir(), "missing.jar")

	out := Aggregate(context.Background(), []string{jar, missing, cls}, WorkerConfig{Threads: 2})
	if out.Results[0].Version.Major != 55 {
		t.Errorf("jar: expected 55, got %v", out.Results[0].Version)
	}
	if !errors.Is(out.Results[1].Err, classfile.ErrUnreadablePath) {
		t.Errorf("missing: expected ErrUnreadablePath, got %v", out.Results[1].Err)
	}
	if out.Max.Major != 61 {
		t.Errorf("expected overall max 61, got %s", out.Max)
	}
	if len(out.Failed()) != 1 {
		t.Errorf("expected 1 failed path, got %d", len(out.Failed()))
	}
}

func TestAggregateAllFailed(t *testing.T) {
	dir := t.TempDir()
	out := Aggregate(context.Background(), []string{
		filepath.Join(dir, "a.class"),
		filepath.Join(dir, "b.jar"),
	}, WorkerConfig{Threads: 2})
	if out.Max != nil {
		t.Errorf("expected no overall max, got %s", out.Max)
	}
	if len(out.Failed()) != 2 {
		t.Errorf("expected 2 failures, got %d", len(out.Failed()))
	}
}

func TestAggregateOnResultCalledPerPath(t *testing.T) {
	paths := []string{
		writeFile(t, "A.class", classBytes(50)),
		writeFile(t, "B.class", classBytes(51)),
		writeFile(t, "C.class", classBytes(52)),
	}
	seen := make(map[string]bool)
	Aggregate(context.Background(), paths, WorkerConfig{
		Threads:  3,
		OnResult: func(r *Result) { seen[r.Path] = true },
	})
	for _, p := range paths {
		if !seen[p] {
			t.Errorf("OnResult not called for %s", p)
		}
	}
}

func TestAggregateCancelledBeforeStart(t *testing.T) {
	paths := []string{
		writeFile(t, "A.class", classBytes(50)),
		writeFile(t, "B.class", classBytes(51)),
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := Aggregate(ctx, paths, WorkerConfig{Threads: 1})
	if len(out.Results) != 2 {
		t.Fatalf("every path must be reported, got %d", len(out.Results))
	}
	for i, r := range out.Results {
		if r.Path != paths[i] {
			t.Errorf("result %d: got path %s", i, r.Path)
		}
		if !errors.Is(r.Err, context.Canceled) {
			t.Errorf("result %d: expected context.Canceled, got %v", i, r.Err)
		}
	}
	if out.Max != nil {
		t.Errorf("expected no max, got %s", out.Max)
	}
}

func TestAggregateUsesCacheForDuplicates(t *testing.T) {
	cache, err := NewCache(16)
	if err != nil {
		t.Fatal(err)
	}
	path := writeFile(t, "A.class", classBytes(52))

	// Single thread so the second occurrence runs after the first is stored.
	out := Aggregate(context.Background(), []string{path, path}, WorkerConfig{Threads: 1, Cache: cache})
	if out.Results[0].Cached {
		t.Error("first occurrence should be scanned")
	}
	if !out.Results[1].Cached {
		t.Error("second occurrence should come from the cache")
	}
	if out.Results[1].Version.Major != 52 || out.Results[1].Index != 1 {
		t.Errorf("cached result not re-tagged: %+v", out.Results[1])
	}
}
