// Package version holds the build version, set via -ldflags.
package version

// Version is overridden at build time:
//
//	go build -ldflags "-X github.com/maxvaer/classver/pkg/version.Version=1.2.0"
var Version = "dev"
