// Package version holds build information, set with -ldflags at release time.
package version

import "fmt"

var (
	Version  = "0.0.0-dev"
	Revision = "unknown"
)

// String returns the version and revision.
func String() string {
	return fmt.Sprintf("%s (%s)", Version, Revision)
}
