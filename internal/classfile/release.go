package classfile

import (
	"fmt"
	"strconv"
	"strings"
)

const (
	// firstMajor is the oldest classfile major (JDK 1.0.2 / 1.1).
	firstMajor = 45
	// releaseOffset maps majors from Java 5 onward: release = major - 44.
	releaseOffset = 44
	// LatestKnownMajor is the newest major with a known release (Java 27).
	LatestKnownMajor = 71
)

var legacyLabels = map[uint16]string{
	45: "Java 1.1",
	46: "Java 1.2",
	47: "Java 1.3",
	48: "Java 1.4",
}

// Label maps a classfile major to its Java release label. Majors above
// LatestKnownMajor yield a "newer than" label instead of failing.
func Label(major uint16) string {
	switch {
	case major < firstMajor:
		return "unknown"
	case major > LatestKnownMajor:
		return fmt.Sprintf("newer than Java %d", LatestKnownMajor-releaseOffset)
	}
	if l, ok := legacyLabels[major]; ok {
		return l
	}
	return fmt.Sprintf("Java %d", major-releaseOffset)
}

// ForRelease returns the version a Java release compiles to by default:
// 8 -> 52.0, 17 -> 61.0. Releases 2..4 are the legacy 1.N line.
func ForRelease(release int) (Version, error) {
	switch {
	case release >= 5 && release+releaseOffset <= 0xFFFF:
		return Version{Major: uint16(release + releaseOffset)}, nil
	case release >= 1 && release <= 4:
		return Version{Major: uint16(firstMajor + release - 1)}, nil
	}
	return Version{}, fmt.Errorf("%w: unknown Java release %d", ErrInvalidVersion, release)
}

// ParseVersion resolves a user-supplied version. Accepted forms:
//
//	"Java 17", "java17", "jdk-17", "17", "1.8"  release labels
//	"52", "52.0", "61.65535"                    classfile major[.minor]
//
// A leading number >= 45 is read as a classfile major.
func ParseVersion(s string) (Version, error) {
	raw := s
	s = strings.ToLower(strings.TrimSpace(s))
	for _, prefix := range []string{"java", "jdk", "jre"} {
		if strings.HasPrefix(s, prefix) {
			s = strings.TrimLeft(strings.TrimPrefix(s, prefix), " -_")
			break
		}
	}
	if s == "" {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}

	head, tail, dotted := strings.Cut(s, ".")
	first, err := strconv.ParseUint(head, 10, 16)
	if err != nil {
		return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
	}

	switch {
	case first >= firstMajor:
		v := Version{Major: uint16(first)}
		if dotted {
			minor, err := strconv.ParseUint(tail, 10, 16)
			if err != nil {
				return Version{}, fmt.Errorf("%w: bad minor in %q", ErrInvalidVersion, raw)
			}
			v.Minor = uint16(minor)
		}
		return v, nil
	case first == 1 && dotted:
		// 1.8, 1.8.0_322
		n, _, _ := strings.Cut(tail, ".")
		n, _, _ = strings.Cut(n, "_")
		release, err := strconv.Atoi(n)
		if err != nil {
			return Version{}, fmt.Errorf("%w: %q", ErrInvalidVersion, raw)
		}
		return ForRelease(release)
	default:
		// 17, 17.0.1
		return ForRelease(int(first))
	}
}
