package version

import (
	"strings"

	"github.com/Masterminds/semver/v3"
	"github.com/rxtech-lab/option-regression/pkg/errors"
)

// CheckConfigCompatibility checks if a configuration file version can be read by this build.
// Returns nil if compatible, error with details if not.
//
// Compatibility Rules:
//   - An empty version means the file targets the current format
//   - Major versions must match exactly
//   - The file's minor version must not be newer than ConfigVersion
//   - Patch versions can differ
//
// Examples:
//   - Supported 1.1.0, file 1.1.0 -> OK (exact match)
//   - Supported 1.1.0, file 1.0.3 -> OK (older minor)
//   - Supported 1.1.0, file 1.2.0 -> ERROR (newer minor)
//   - Supported 1.1.0, file 2.0.0 -> ERROR (major differs)
func CheckConfigCompatibility(fileVersion string) error {
	return checkCompatibility(ConfigVersion, fileVersion)
}

func checkCompatibility(supportedVersion, fileVersion string) error {
	fileVersion = strings.TrimPrefix(strings.TrimSpace(fileVersion), "v")
	if fileVersion == "" {
		return nil
	}

	supported, err := semver.NewVersion(strings.TrimPrefix(supportedVersion, "v"))
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid supported config version '%s'", supportedVersion)
	}

	file, err := semver.NewVersion(fileVersion)
	if err != nil {
		return errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid config version '%s'", fileVersion)
	}

	if file.Major() != supported.Major() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"major version mismatch: config is %d.x.x but this build reads %d.x.x",
			file.Major(), supported.Major())
	}

	if file.Minor() > supported.Minor() {
		return errors.Newf(errors.ErrCodeInvalidVersion,
			"config version %s is newer than the supported %s", file.String(), supported.String())
	}

	return nil
}
