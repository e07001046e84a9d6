package runner

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/maxvaer/classver/internal/config"
)

// dirPattern selects scannable files below a directory argument.
const dirPattern = "**/*.{class,jar,war,ear,zip}"

// resolvePaths builds the list of top-level paths from positional
// arguments and --paths-file. Globs and directories expand in place,
// sorted; a glob or directory matching nothing, or a malformed pattern, is
// kept as given so it is reported rather than silently dropped. An existing
// file is never treated as a pattern.
func resolvePaths(opts *config.Options) ([]string, error) {
	args := append([]string(nil), opts.Paths...)

	if opts.PathsFile != "" {
		listed, err := readPathsFile(opts.PathsFile)
		if err != nil {
			return nil, config.Usagef("%v", err)
		}
		args = append(args, listed...)
	}

	var paths []string
	for _, arg := range args {
		expanded, err := expandArg(arg)
		if err != nil {
			return nil, config.Usagef("expanding %q: %v", arg, err)
		}
		paths = append(paths, expanded...)
	}

	if len(paths) == 0 {
		return nil, config.Usagef("no input paths given")
	}
	return paths, nil
}

func expandArg(arg string) ([]string, error) {
	// An existing file is taken literally even if its name looks like a glob.
	if info, err := os.Stat(arg); err == nil && info.Mode().IsRegular() {
		return []string{arg}, nil
	}

	pattern := ""
	switch {
	case hasGlobMeta(arg):
		pattern = arg
	case isDir(arg):
		pattern = filepath.Join(arg, dirPattern)
	default:
		return []string{arg}, nil
	}

	matches, err := doublestar.FilepathGlob(pattern)
	if errors.Is(err, doublestar.ErrBadPattern) {
		return []string{arg}, nil
	}
	if err != nil {
		return nil, err
	}
	files := matches[:0]
	for _, m := range matches {
		if !isDir(m) {
			files = append(files, m)
		}
	}
	if len(files) == 0 {
		return []string{arg}, nil
	}
	sort.Strings(files)
	return files, nil
}

func hasGlobMeta(s string) bool {
	return strings.ContainsAny(s, "*?[{")
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

func readPathsFile(name string) ([]string, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("opening paths file: %w", err)
	}
	defer f.Close()

	var paths []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line != "" && !strings.HasPrefix(line, "#") {
			paths = append(paths, line)
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("reading paths file: %w", err)
	}
	return paths, nil
}
