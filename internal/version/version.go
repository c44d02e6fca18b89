package version

import "fmt"

// Set at build time with -ldflags "-X".
var (
	Version   = "dev"
	BuildDate = "unknown"
	Commit    = "unknown"
)

func GetVersion() string {
	return fmt.Sprintf("pistache %s (commit: %s, built: %s)", Version, Commit, BuildDate)
}

func GetShortVersion() string {
	return Version
}

// ServerToken renders product/version for the Server response header.
// An empty version leaves the bare product name.
func ServerToken(product string) string {
	if Version == "" {
		return product
	}
	return product + "/" + Version
}
