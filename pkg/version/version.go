// Package version exposes the carbonsense build version.
package version

// version is overridden at build time via:
//
//	go build -ldflags "-X github.com/agrata/carbonsense/pkg/version.version=v1.2.3"
//
//nolint:gochecknoglobals // Set once by the linker, read-only afterwards.
var version = "0.1.0-dev"

// GetVersion returns the current build version string.
func GetVersion() string {
	return version
}
