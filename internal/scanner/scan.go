package scanner

import (
	"context"
	"fmt"

	"github.com/maxvaer/classver/internal/archive"
	"github.com/maxvaer/classver/internal/classfile"
	"github.com/maxvaer/classver/internal/filter"
)

// ScanPath decodes every classfile source of path and keeps the highest
// version. Entry failures are collected as issues; the path only fails if
// it cannot be opened or yields no decodable classfile at all.
func ScanPath(ctx context.Context, path string, chain *filter.Chain) Result {
	res := Result{Path: path}
	var stats archive.Stats

	for src, err := range archive.Expand(path, chain, &stats) {
		if err != nil {
			res.Err = err
			break
		}
		if ctx.Err() != nil {
			res.Err = ctx.Err()
			break
		}

		v, err := src.Decode()
		if err != nil {
			if src.Kind == archive.KindClassfile {
				res.Err = err
				break
			}
			res.Issues = append(res.Issues, Issue{Entry: src.Entry, Err: err})
			continue
		}
		res.Classes++
		res.Version = classfile.Max(res.Version, &v)
	}

	res.Entries = stats.Entries
	res.Skipped = stats.SkippedTotal()

	if res.Err == nil && res.Classes == 0 {
		if len(res.Issues) > 0 {
			res.Err = res.Issues[0].Err
		} else {
			res.Err = &classfile.Error{
				Path: path,
				Kind: classfile.ErrNotAClassfile,
				Err:  fmt.Errorf("no classfiles in archive (%d entries, %d skipped)", res.Entries, res.Skipped),
			}
		}
	}
	if res.Err != nil {
		res.Version = nil
	}
	return res
}
