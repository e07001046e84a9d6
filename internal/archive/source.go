// Package archive classifies input paths and expands Java archives into the
// classfile sources they contain.
package archive

import (
	"archive/zip"
	"fmt"

	"github.com/maxvaer/classver/internal/classfile"
)

// Kind tags the variant of a Source.
type Kind int

const (
	// KindClassfile is a standalone classfile on disk.
	KindClassfile Kind = iota
	// KindArchiveEntry is a classfile stored inside an archive.
	KindArchiveEntry
)

func (k Kind) String() string {
	switch k {
	case KindClassfile:
		return "classfile"
	case KindArchiveEntry:
		return "archive-entry"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Source is one classfile to decode. It is only valid while the sequence
// that produced it is being iterated.
type Source struct {
	Kind  Kind
	Path  string
	Entry string // archive member name; empty for KindClassfile

	header []byte    // pre-read bytes for KindClassfile
	file   *zip.File // member for KindArchiveEntry
}

// Name identifies the source in messages: "lib.jar!com/x/A.class".
func (s Source) Name() string {
	if s.Kind == KindArchiveEntry {
		return s.Path + "!" + s.Entry
	}
	return s.Path
}

// Header returns up to classfile.HeaderSize leading bytes of the source.
func (s Source) Header() ([]byte, error) {
	if s.Kind == KindClassfile {
		return s.header, nil
	}
	rc, err := s.file.Open()
	if err != nil {
		return nil, err
	}
	defer rc.Close()
	return classfile.ReadHeader(rc)
}

// Decode reads the source header and decodes its version. Failures are
// returned as *classfile.Error naming the source.
func (s Source) Decode() (classfile.Version, error) {
	header, err := s.Header()
	if err != nil {
		kind := classfile.ErrTruncatedInput
		if s.Kind == KindArchiveEntry {
			kind = classfile.ErrCorruptArchive
		}
		return classfile.Version{}, &classfile.Error{Path: s.Path, Entry: s.Entry, Kind: kind, Err: err}
	}
	v, err := classfile.Decode(header)
	if err != nil {
		return classfile.Version{}, &classfile.Error{Path: s.Path, Entry: s.Entry, Kind: classfile.Kind(err), Err: err}
	}
	return v, nil
}
