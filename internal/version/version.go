// Package version exposes the build-time version stamp.
package version

// version is overridden at build time via -ldflags.
var version = "dev"

// Value returns the version the binary was built as.
func Value() string {
	return version
}
