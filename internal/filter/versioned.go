package filter

import (
	"path"
	"strings"
)

const versionsPrefix = "META-INF/versions/"

// VersionedFilter skips classes under META-INF/versions/ of multi-release
// jars. Those are only loaded by runtimes at least as new as their version
// directory, so they do not raise the jar's baseline requirement.
type VersionedFilter struct{}

// NewVersionedFilter returns a multi-release entry filter.
func NewVersionedFilter() *VersionedFilter {
	return &VersionedFilter{}
}

func (f *VersionedFilter) Name() string { return "versioned" }

func (f *VersionedFilter) ShouldSkip(entry string) bool {
	return strings.HasPrefix(entry, versionsPrefix)
}

// ModuleInfoFilter skips module descriptors, which are compiled for Java 9+
// even in libraries that otherwise target older runtimes.
type ModuleInfoFilter struct{}

// NewModuleInfoFilter returns a module descriptor filter.
func NewModuleInfoFilter() *ModuleInfoFilter {
	return &ModuleInfoFilter{}
}

func (f *ModuleInfoFilter) Name() string { return "module-info" }

func (f *ModuleInfoFilter) ShouldSkip(entry string) bool {
	return path.Base(entry) == "module-info.class"
}
