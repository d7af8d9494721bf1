// Package version gates operator configs against the config format this
// binary understands.
package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"

	"github.com/solbo-lab/solbo/pkg/errors"
)

// ConfigVersion is the config format version this binary writes and expects.
const ConfigVersion = "1.0.0"

// CheckConfigCompatibility reports whether a config written for
// configVersion can be run by this binary.
//
// Compatibility rules:
//   - An empty or "main" version (development builds) skips the check
//   - Major versions must match exactly
//   - The config's minor version must not be newer than the binary's
//   - Patch versions never matter
func CheckConfigCompatibility(configVersion string) error {
	configVersion = strings.TrimPrefix(configVersion, "v")
	if configVersion == "" || configVersion == "main" {
		return nil
	}

	theirs, err := semver.NewVersion(configVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidAppConfig, err, "invalid config version %q", configVersion)
	}

	ours := semver.MustParse(ConfigVersion)

	if theirs.Major() != ours.Major() {
		return errors.Newf(errors.ErrCodeInvalidAppConfig,
			"config version %s is incompatible with this binary (wants major %d, have %d)",
			configVersion, theirs.Major(), ours.Major())
	}

	if theirs.Minor() > ours.Minor() {
		return errors.Newf(errors.ErrCodeInvalidAppConfig,
			"config version %s is newer than this binary understands (%s)",
			configVersion, ConfigVersion)
	}

	return nil
}
