package archive

import (
	"archive/zip"
	"bytes"
	"errors"
	"iter"
	"os"
	"path/filepath"
	"strings"

	"github.com/maxvaer/classver/internal/classfile"
	"github.com/maxvaer/classver/internal/filter"
)

var (
	zipLocalHeader = []byte("PK\x03\x04")
	zipEmptyEOCD   = []byte("PK\x05\x06")
)

// archiveExts are extensions that must carry a zip signature.
var archiveExts = map[string]bool{
	".jar": true,
	".war": true,
	".ear": true,
	".zip": true,
}

const classExt = ".class"

// Stats counts entries an expansion passed over. It is complete once the
// sequence has been fully drained.
type Stats struct {
	Entries int            // archive members seen
	Skipped map[string]int // class entries skipped, by filter name
}

func (s *Stats) skip(reason string) {
	if s.Skipped == nil {
		s.Skipped = make(map[string]int)
	}
	s.Skipped[reason]++
}

// SkippedTotal returns the number of class entries skipped by filters.
func (s *Stats) SkippedTotal() int {
	n := 0
	for _, c := range s.Skipped {
		n += c
	}
	return n
}

// IsArchiveName reports whether path has a Java archive extension.
func IsArchiveName(path string) bool {
	return archiveExts[strings.ToLower(filepath.Ext(path))]
}

// IsArchiveHeader reports whether header starts with a zip signature.
func IsArchiveHeader(header []byte) bool {
	return bytes.HasPrefix(header, zipLocalHeader) || bytes.HasPrefix(header, zipEmptyEOCD)
}

// Expand classifies path and returns the classfile sources it holds. A
// zip-signed file yields one source per ".class" member not rejected by
// chain; anything else yields the path itself as a single classfile.
//
// The file is opened when iteration starts and closed when it ends, whether
// the sequence was drained, broken out of, or failed. A path-level failure
// (ErrUnreadablePath, ErrCorruptArchive) is yielded once as the final
// element. stats may be nil.
func Expand(path string, chain *filter.Chain, stats *Stats) iter.Seq2[Source, error] {
	if stats == nil {
		stats = &Stats{}
	}
	return func(yield func(Source, error) bool) {
		f, err := os.Open(path)
		if err != nil {
			yield(Source{}, pathError(path, classfile.ErrUnreadablePath, err))
			return
		}
		defer f.Close()

		info, err := f.Stat()
		if err != nil {
			yield(Source{}, pathError(path, classfile.ErrUnreadablePath, err))
			return
		}
		if info.IsDir() {
			yield(Source{}, pathError(path, classfile.ErrUnreadablePath, errors.New("is a directory")))
			return
		}

		header, err := classfile.ReadHeader(f)
		if err != nil {
			yield(Source{}, pathError(path, classfile.ErrUnreadablePath, err))
			return
		}

		if !IsArchiveHeader(header) {
			if IsArchiveName(path) {
				yield(Source{}, pathError(path, classfile.ErrCorruptArchive, errors.New("missing zip signature")))
				return
			}
			yield(Source{Kind: KindClassfile, Path: path, header: header}, nil)
			return
		}

		zr, err := zip.NewReader(f, info.Size())
		if err != nil {
			yield(Source{}, pathError(path, classfile.ErrCorruptArchive, err))
			return
		}

		for _, zf := range zr.File {
			stats.Entries++
			name := zf.Name
			if zf.FileInfo().IsDir() || !strings.HasSuffix(name, classExt) {
				continue
			}
			if skip, reason := chain.Apply(name); skip {
				stats.skip(reason)
				continue
			}
			if !yield(Source{Kind: KindArchiveEntry, Path: path, Entry: name, file: zf}, nil) {
				return
			}
		}
	}
}

func pathError(path string, kind, err error) error {
	return &classfile.Error{Path: path, Kind: kind, Err: err}
}
