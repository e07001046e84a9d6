package config

import (
	"errors"
	"fmt"
	"os"
	"runtime"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"github.com/maxvaer/classver/internal/classfile"
)

// Environment variables consulted for defaults. Flags take precedence.
const (
	EnvMax     = "CLASSVER_MAX"
	EnvThreads = "CLASSVER_THREADS"
	EnvFormat  = "CLASSVER_FORMAT"
	EnvNoColor = "NO_COLOR"
)

// Options holds all configuration for a classver run.
type Options struct {
	// Inputs
	Paths     []string
	PathsFile string // one path per line; empty = none

	// Ceiling
	MaxVersion string             // raw --max value
	Max        *classfile.Version // resolved from MaxVersion; nil = report only

	// Entry filters
	Exclude          []string
	IncludeVersioned bool
	SkipModuleInfo   bool

	// Policy
	Strict bool

	// Performance
	Threads int

	// Output
	OutputFile   string
	OutputFormat string // "text", "json", "csv"
	SortBy       string // "", "path", "version"
	Quiet        bool
	NoColor      bool
	Verbose      int
}

// Defaults returns options with built-in defaults, overlaid with values
// from the environment and an optional .env file in the working directory.
func Defaults() Options {
	LoadEnv()
	opts := Options{
		Threads:      runtime.NumCPU(),
		OutputFormat: "text",
		MaxVersion:   strings.TrimSpace(os.Getenv(EnvMax)),
	}
	if n, err := strconv.Atoi(strings.TrimSpace(os.Getenv(EnvThreads))); err == nil && n > 0 {
		opts.Threads = n
	}
	if f := strings.TrimSpace(os.Getenv(EnvFormat)); f != "" {
		opts.OutputFormat = strings.ToLower(f)
	}
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		opts.NoColor = true
	}
	return opts
}

// LoadEnv reads .env into the process environment without overriding
// variables that are already set. A missing file is not an error.
func LoadEnv() {
	_ = godotenv.Load()
}

// Resolve validates the options and derives computed fields. Errors are
// usage errors. runner.Run calls it; the CLI layer does not.
func (o *Options) Resolve() error {
	if o.MaxVersion != "" {
		v, err := classfile.ParseVersion(o.MaxVersion)
		if err != nil {
			return &UsageError{Err: fmt.Errorf("--max: %w", err)}
		}
		o.Max = &v
	}
	switch o.OutputFormat {
	case "text", "json", "csv":
	default:
		return Usagef("--format must be one of: text, json, csv")
	}
	switch o.SortBy {
	case "", "path", "version":
	default:
		return Usagef("--sort must be one of: path, version")
	}
	if o.Threads < 1 {
		return Usagef("--threads must be at least 1")
	}
	return nil
}

// UsageError marks a configuration problem detected before scanning.
type UsageError struct {
	Err error
}

func (e *UsageError) Error() string { return e.Err.Error() }

func (e *UsageError) Unwrap() error { return e.Err }

// Usagef builds a UsageError from a format string.
func Usagef(format string, args ...any) error {
	return &UsageError{Err: fmt.Errorf(format, args...)}
}

// IsUsage reports whether err is (or wraps) a UsageError.
func IsUsage(err error) bool {
	var ue *UsageError
	return errors.As(err, &ue)
}
