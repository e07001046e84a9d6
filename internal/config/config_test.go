package config

import (
	"errors"
	"testing"

	"github.com/maxvaer/classver/internal/classfile"
)

func TestResolveMax(t *testing.T) {
	opts := Options{MaxVersion: "Java 17", OutputFormat: "text", Threads: 1}
	if err := opts.Resolve(); err != nil {
		t.Fatal(err)
	}
	if opts.Max == nil || opts.Max.Major != 61 {
		t.Errorf("expected max 61, got %v", opts.Max)
	}
}

func TestResolveInvalidMaxIsUsageError(t *testing.T) {
	opts := Options{MaxVersion: "banana", OutputFormat: "text", Threads: 1}
	err := opts.Resolve()
	if !IsUsage(err) {
		t.Fatalf("expected usage error, got %v", err)
	}
	if !errors.Is(err, classfile.ErrInvalidVersion) {
		t.Errorf("expected ErrInvalidVersion, got %v", err)
	}
}

func TestResolveValidation(t *testing.T) {
	tests := []Options{
		{OutputFormat: "xml", Threads: 1},
		{OutputFormat: "text", SortBy: "size", Threads: 1},
		{OutputFormat: "text", Threads: 0},
	}
	for _, opts := range tests {
		if err := opts.Resolve(); !IsUsage(err) {
			t.Errorf("%+v: expected usage error, got %v", opts, err)
		}
	}
}

func TestDefaultsFromEnv(t *testing.T) {
	t.Setenv(EnvMax, "11")
	t.Setenv(EnvThreads, "3")
	t.Setenv(EnvFormat, "JSON")
	t.Setenv(EnvNoColor, "")

	opts := Defaults()
	if opts.MaxVersion != "11" || opts.Threads != 3 || opts.OutputFormat != "json" || !opts.NoColor {
		t.Errorf("unexpected defaults %+v", opts)
	}
}

func TestDefaultsIgnoreBadThreads(t *testing.T) {
	t.Setenv(EnvThreads, "lots")
	if opts := Defaults(); opts.Threads < 1 {
		t.Errorf("expected a positive default thread count, got %d", opts.Threads)
	}
}
