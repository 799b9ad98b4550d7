package version

import (
	"testing"

	"github.com/rxtech-lab/option-regression/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCompatibility(t *testing.T) {
	tests := []struct {
		name             string
		supportedVersion string
		fileVersion      string
		expectError      bool
		errorContains    string
	}{
		{
			name:             "exact match",
			supportedVersion: "1.1.0",
			fileVersion:      "1.1.0",
			expectError:      false,
		},
		{
			name:             "file patch higher",
			supportedVersion: "1.1.0",
			fileVersion:      "1.1.7",
			expectError:      false,
		},
		{
			name:             "file minor older",
			supportedVersion: "1.1.0",
			fileVersion:      "1.0.3",
			expectError:      false,
		},
		{
			name:             "v prefix",
			supportedVersion: "v1.1.0",
			fileVersion:      "v1.1.0",
			expectError:      false,
		},
		{
			name:             "empty file version",
			supportedVersion: "1.1.0",
			fileVersion:      "",
			expectError:      false,
		},
		{
			name:             "file minor newer",
			supportedVersion: "1.1.0",
			fileVersion:      "1.2.0",
			expectError:      true,
			errorContains:    "newer than the supported",
		},
		{
			name:             "major version differs",
			supportedVersion: "1.1.0",
			fileVersion:      "2.0.0",
			expectError:      true,
			errorContains:    "major version mismatch",
		},
		{
			name:             "invalid file version",
			supportedVersion: "1.1.0",
			fileVersion:      "one",
			expectError:      true,
			errorContains:    "invalid config version",
		},
		{
			name:             "invalid supported version",
			supportedVersion: "main",
			fileVersion:      "1.0.0",
			expectError:      true,
			errorContains:    "invalid supported config version",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := checkCompatibility(tt.supportedVersion, tt.fileVersion)

			if tt.expectError {
				require.Error(t, err)
				assert.True(t, errors.HasCode(err, errors.ErrCodeInvalidVersion))
				if tt.errorContains != "" {
					assert.Contains(t, err.Error(), tt.errorContains)
				}
			} else {
				require.NoError(t, err)
			}
		})
	}
}

func TestCheckConfigCompatibility(t *testing.T) {
	require.NoError(t, CheckConfigCompatibility(ConfigVersion))
	require.Error(t, CheckConfigCompatibility("99.0.0"))
}

func TestGetVersion(t *testing.T) {
	v := GetVersion()
	assert.Equal(t, Version, v)
}
