// Package version exposes the recbatch build version.
package version

// version is set at build time via -ldflags "-X github.com/rshade/recbatch/pkg/version.version=v1.2.3".
var version = "0.1.0-dev" //nolint:gochecknoglobals // Overridden by the linker at release time.

// GetVersion returns the current recbatch version string.
func GetVersion() string {
	return version
}
