// Package classfile decodes the version header of Java classfiles and maps
// classfile versions to Java release labels.
package classfile

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Magic is the fixed four-byte classfile signature.
const Magic uint32 = 0xCAFEBABE

// HeaderSize is the number of leading bytes needed to decode a version.
const HeaderSize = 8

// previewMinor marks a classfile compiled with --enable-preview.
const previewMinor = 0xFFFF

// Version is a classfile (major, minor) version pair.
type Version struct {
	Major uint16 `json:"major"`
	Minor uint16 `json:"minor"`
}

// Compare returns -1, 0 or +1. Major decides; minor breaks ties.
func (v Version) Compare(o Version) int {
	switch {
	case v.Major < o.Major:
		return -1
	case v.Major > o.Major:
		return 1
	case v.Minor < o.Minor:
		return -1
	case v.Minor > o.Minor:
		return 1
	}
	return 0
}

// Less reports whether v requires an older runtime than o.
func (v Version) Less(o Version) bool { return v.Compare(o) < 0 }

// IsPreview reports whether v uses preview language features.
func (v Version) IsPreview() bool {
	return v.Major >= 56 && v.Minor == previewMinor
}

func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// Label returns the release label for v, e.g. "Java 8".
func (v Version) Label() string {
	l := Label(v.Major)
	if v.IsPreview() {
		l += " preview"
	}
	return l
}

// Describe renders v as "52.0 (Java 8)".
func (v Version) Describe() string {
	return fmt.Sprintf("%s (%s)", v, v.Label())
}

// Max returns the greater of a and b. A nil operand is ignored.
func Max(a, b *Version) *Version {
	if a == nil {
		return b
	}
	if b == nil || !a.Less(*b) {
		return a
	}
	return b
}

// Decode parses the first HeaderSize bytes of a classfile.
func Decode(header []byte) (Version, error) {
	if len(header) < 4 || binary.BigEndian.Uint32(header) != Magic {
		return Version{}, ErrNotAClassfile
	}
	if len(header) < HeaderSize {
		return Version{}, fmt.Errorf("%w: got %d of %d bytes", ErrTruncatedInput, len(header), HeaderSize)
	}
	return Version{
		Minor: binary.BigEndian.Uint16(header[4:6]),
		Major: binary.BigEndian.Uint16(header[6:8]),
	}, nil
}

// ReadHeader reads up to HeaderSize bytes from r. A short read is not an
// error; Decode reports it.
func ReadHeader(r io.Reader) ([]byte, error) {
	buf := make([]byte, HeaderSize)
	n, err := io.ReadFull(r, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// DecodeReader reads and decodes a classfile header from r.
func DecodeReader(r io.Reader) (Version, error) {
	header, err := ReadHeader(r)
	if err != nil {
		return Version{}, err
	}
	return Decode(header)
}

// Encode builds the header Decode accepts for v.
func Encode(v Version) []byte {
	buf := make([]byte, HeaderSize)
	binary.BigEndian.PutUint32(buf, Magic)
	binary.BigEndian.PutUint16(buf[4:6], v.Minor)
	binary.BigEndian.PutUint16(buf[6:8], v.Major)
	return buf
}
