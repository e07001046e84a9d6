package runner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/maxvaer/classver/internal/classfile"
	"github.com/maxvaer/classver/internal/config"
	"github.com/maxvaer/classver/internal/disposition"
	"github.com/maxvaer/classver/internal/filter"
	"github.com/maxvaer/classver/internal/logx"
	"github.com/maxvaer/classver/internal/output"
	"github.com/maxvaer/classver/internal/scanner"
)

// Run executes the full pipeline: resolve inputs, scan every path, write
// the report and resolve the disposition. The returned error is non-nil
// only for configuration or output failures; scan failures are part of
// the disposition. Run owns option validation: it calls opts.Resolve, so
// callers pass options as parsed.
func Run(ctx context.Context, opts *config.Options, log *logx.Logger) (disposition.Disposition, error) {
	if err := opts.Resolve(); err != nil {
		return disposition.Disposition{}, err
	}

	// 1. Resolve inputs.
	paths, err := resolvePaths(opts)
	if err != nil {
		return disposition.Disposition{}, err
	}

	// 2. Build entry filter chain.
	chain, err := buildFilters(opts)
	if err != nil {
		return disposition.Disposition{}, err
	}

	// 3. Create output writer.
	out, err := createWriter(opts)
	if err != nil {
		return disposition.Disposition{}, fmt.Errorf("creating output writer: %w", err)
	}
	defer out.Close()

	if err := out.WriteHeader(); err != nil {
		return disposition.Disposition{}, err
	}

	if opts.Max != nil {
		log.Infof("Checking %d path(s) against max %s", len(paths), opts.Max.Describe())
	} else {
		log.Infof("Checking %d path(s)", len(paths))
	}

	log.Tracef("%d entry filter(s), %d thread(s)", chain.Len(), opts.Threads)

	// 4. Scan.
	cache, err := scanner.NewCache(scanner.DefaultCacheSize)
	if err != nil {
		return disposition.Disposition{}, fmt.Errorf("creating result cache: %w", err)
	}

	progress := output.NewProgress(len(paths), opts.Quiet)
	log.Around(progress.ClearLine, progress.Redraw)
	progress.Start()
	startTime := time.Now()

	outcome := scanner.Aggregate(ctx, paths, scanner.WorkerConfig{
		Threads:  opts.Threads,
		Filters:  chain,
		Cache:    cache,
		OnResult: func(r *scanner.Result) { logResult(log, progress, r) },
	})

	progress.Stop()

	// 5. Verdict.
	disp := disposition.Resolve(outcome, opts.Max, opts.Strict)
	reportDisposition(log, disp)

	// 6. Report in input order.
	for i := range outcome.Results {
		if err := out.WriteResult(&outcome.Results[i]); err != nil {
			return disp, err
		}
	}

	stats := buildStats(len(paths), outcome, disp, opts.Max)
	stats.Duration = time.Since(startTime)
	if err := out.WriteFooter(stats); err != nil {
		return disp, err
	}

	if err := ctx.Err(); err != nil {
		return disp, err
	}
	return disp, nil
}

// buildStats summarizes a run for the footer. ErrorCount follows the
// disposition, so entry issues count as errors under --strict.
func buildStats(total int, outcome *scanner.Outcome, disp disposition.Disposition, ceiling *classfile.Version) output.Stats {
	stats := output.Stats{
		TotalPaths:  total,
		ErrorCount:  len(disp.Failed),
		IssueCount:  outcome.IssueCount(),
		Max:         outcome.Max,
		Ceiling:     ceiling,
		Disposition: disp.String(),
		ExitCode:    disp.ExitCode(),
	}
	for _, r := range outcome.Results {
		if r.Cached {
			stats.CachedCount++
		}
	}
	return stats
}

func buildFilters(opts *config.Options) (*filter.Chain, error) {
	chain := filter.NewChain()
	if !opts.IncludeVersioned {
		chain.Add(filter.NewVersionedFilter())
	}
	if opts.SkipModuleInfo {
		chain.Add(filter.NewModuleInfoFilter())
	}
	if len(opts.Exclude) > 0 {
		gf, err := filter.NewGlobFilter(opts.Exclude)
		if err != nil {
			return nil, &config.UsageError{Err: err}
		}
		chain.Add(gf)
	}
	return chain, nil
}

func createWriter(opts *config.Options) (output.Writer, error) {
	var w output.Writer
	var err error
	switch opts.OutputFormat {
	case "json":
		w, err = output.NewJSONWriter(opts.OutputFile, opts.Max)
	case "csv":
		w, err = output.NewCSVWriter(opts.OutputFile, opts.Max)
	default:
		noColor := !output.ColorEnabled(opts.OutputFile, opts.NoColor)
		w, err = output.NewTextWriter(opts.OutputFile, noColor, opts.Quiet, opts.Max)
	}
	if err != nil {
		return nil, err
	}
	if opts.SortBy != "" {
		w = output.NewSortedWriter(w, opts.SortBy)
	}
	return w, nil
}

// logResult runs on the collector goroutine as each path finishes.
func logResult(log *logx.Logger, progress *output.Progress, r *scanner.Result) {
	progress.Increment(r.Classes)

	switch {
	case r.Err != nil && errors.Is(r.Err, context.Canceled):
		log.Debugf("%s: cancelled", r.Path)
	case r.Err != nil:
		progress.IncrementErrors()
		log.Warnf("%s: %s", r.Path, classfile.Reason(r.Err))
	case r.Entries > 0:
		log.Debugf("%s: %d classes of %d entries (%d skipped), max %s",
			r.Path, r.Classes, r.Entries, r.Skipped, r.Version.Describe())
	default:
		log.Debugf("%s: %s", r.Path, r.Version.Describe())
	}
	if r.Cached {
		log.Tracef("%s: result reused from an identical earlier input", r.Path)
	}

	if len(r.Issues) == 0 || r.Err != nil {
		return
	}
	if log.Level() >= logx.LevelDebug {
		for _, is := range r.Issues {
			log.Warnf("  %s: %s", is.Entry, classfile.Reason(is.Err))
		}
		return
	}
	log.Warnf("%s: %d entr%s could not be decoded (use -v for details)",
		r.Path, len(r.Issues), plural(len(r.Issues), "y", "ies"))
}

func reportDisposition(log *logx.Logger, d disposition.Disposition) {
	for _, r := range d.Offending {
		log.Warnf("%s requires %s, which is higher than the given maximum of %s",
			r.Path, r.Version.Describe(), d.Max.Describe())
	}
	if d.Success() {
		log.Successf("All inputs passed")
	}
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}
