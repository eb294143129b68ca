package buildinfo

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Name is the binary and project name.
const Name = "sailup"

// Set at build time with -ldflags "-X github.com/nightconcept/sailup/internal/buildinfo.Version=..."
var (
	Version = "0.0.1"
	Commit  = "none"
	Date    = "unknown"
)

// Description is the one-line summary shown in help output.
func Description() string {
	return fmt.Sprintf("%s version %s", Name, Version)
}

// String reports version, commit and build date.
func String() string {
	return fmt.Sprintf("%s %s (commit=%s, date=%s)", Name, Version, Commit, Date)
}

// ParseVersion parses a vX.Y.Z or X.Y.Z string.
func ParseVersion(v string) (*semver.Version, error) {
	sv, err := semver.NewVersion(strings.TrimPrefix(v, "v"))
	if err != nil {
		return nil, fmt.Errorf("parsing version %q: %w", v, err)
	}
	return sv, nil
}
