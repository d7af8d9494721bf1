package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCheckConfigCompatibility(t *testing.T) {
	tests := []struct {
		name          string
		configVersion string
		wantErr       bool
	}{
		{"exact match", ConfigVersion, false},
		{"empty skips check", "", false},
		{"dev build skips check", "main", false},
		{"v prefix accepted", "v1.0.0", false},
		{"older patch", "1.0.5", false},
		{"newer minor", "1.9.0", true},
		{"different major", "2.0.0", true},
		{"garbage", "not-a-version", true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := CheckConfigCompatibility(tc.configVersion)
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
