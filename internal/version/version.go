package version

// Version is the current version of the regression tool.
// This value is set at build time using ldflags:
// -ldflags "-X github.com/rxtech-lab/option-regression/internal/version.Version=1.2.3"
// The default value "main" indicates a development build.
var Version = "main"

// ConfigVersion is the configuration file format this build reads.
const ConfigVersion = "1.1.0"

// GetVersion returns the current version of the tool.
func GetVersion() string {
	return Version
}
