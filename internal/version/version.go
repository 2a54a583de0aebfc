package version

import (
	"strings"

	"golang.org/x/mod/semver"
)

// Version is set at build time with:
// -ldflags "-X github.com/xcoinlabs/xcoin/internal/version.Version=vX.Y.Z"
var Version = "dev"

func Current() string {
	v := strings.TrimSpace(Version)
	if v == "" {
		return "dev"
	}
	return v
}

// IsRelease reports whether the binary was built from a release tag
// (a semver version without prerelease suffix).
func IsRelease() bool {
	v := Current()
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}
