package scanner

import (
	"context"
	"sync"

	"github.com/maxvaer/classver/internal/classfile"
	"github.com/maxvaer/classver/internal/filter"
)

// WorkerConfig holds options for the worker pool.
type WorkerConfig struct {
	Threads int
	Filters *filter.Chain
	Cache   *Cache // nil = rescan duplicate paths

	// OnResult is called for every finished path, from a single goroutine,
	// in completion order.
	OnResult func(*Result)
}

// WorkItem is one top-level path to scan.
type WorkItem struct {
	Index int
	Path  string
}

// RunWorkerPool fans out paths across workers and returns a channel of
// results. The channel is closed when all items have been processed. Once
// ctx is cancelled no new paths are started.
func RunWorkerPool(ctx context.Context, items []WorkItem, cfg WorkerConfig) <-chan Result {
	threads := cfg.Threads
	if threads < 1 {
		threads = 1
	}
	itemsCh := make(chan WorkItem, threads*2)
	resultsCh := make(chan Result, threads*2)

	var wg sync.WaitGroup

	// Producer: feed items into channel.
	go func() {
		defer close(itemsCh)
		for _, item := range items {
			select {
			case itemsCh <- item:
			case <-ctx.Done():
				return
			}
		}
	}()

	// Workers: consume items, produce results.
	for i := 0; i < threads; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for item := range itemsCh {
				if ctx.Err() != nil {
					return
				}
				res, ok := cfg.Cache.Lookup(item.Path)
				if !ok {
					res = ScanPath(ctx, item.Path, cfg.Filters)
					if ctx.Err() == nil {
						cfg.Cache.Store(item.Path, res)
					}
				}
				res.Index = item.Index
				res.Path = item.Path
				resultsCh <- res
			}
		}()
	}

	// Closer: when all workers finish, close the results channel.
	go func() {
		wg.Wait()
		close(resultsCh)
	}()

	return resultsCh
}

// Aggregate scans all paths and merges the results in input order,
// independent of completion order. Paths never started because ctx was
// cancelled carry ctx's error.
func Aggregate(ctx context.Context, paths []string, cfg WorkerConfig) *Outcome {
	items := make([]WorkItem, len(paths))
	for i, p := range paths {
		items[i] = WorkItem{Index: i, Path: p}
	}

	slots := make([]*Result, len(paths))
	for res := range RunWorkerPool(ctx, items, cfg) {
		r := res
		slots[r.Index] = &r
		if cfg.OnResult != nil {
			cfg.OnResult(&r)
		}
	}

	out := &Outcome{Results: make([]Result, len(paths))}
	for i, r := range slots {
		if r == nil {
			r = &Result{Index: i, Path: paths[i], Err: context.Cause(ctx)}
			if r.Err == nil {
				r.Err = context.Canceled
			}
		}
		out.Results[i] = *r
		if r.OK() {
			out.Max = classfile.Max(out.Max, r.Version)
		}
	}
	return out
}
