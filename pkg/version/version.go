// Package version provides version information for the snowgate application.
package version

// Version is the current version of snowgate.
// It can be overridden at build time using ldflags.
var Version = "1.0.0"

// GetVersion returns the current version of snowgate.
func GetVersion() string {
	return Version
}
