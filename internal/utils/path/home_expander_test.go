package pathutils_test

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	pathutils "github.com/temirov/gitfleet/internal/utils/path"
)

func TestHomeExpanderExpand(testInstance *testing.T) {
	homeDirectory := filepath.Join("/home", "operator")

	testCases := []struct {
		name     string
		provider pathutils.HomeDirectoryProvider
		input    string
		expected string
	}{
		{
			name:     "expands_tilde_prefix",
			provider: func() (string, error) { return homeDirectory, nil },
			input:    "~/fleet/service",
			expected: filepath.Join(homeDirectory, "fleet", "service"),
		},
		{
			name:     "expands_bare_tilde",
			provider: func() (string, error) { return homeDirectory, nil },
			input:    "~",
			expected: homeDirectory,
		},
		{
			name:     "leaves_absolute_path",
			provider: func() (string, error) { return homeDirectory, nil },
			input:    "/var/repos/service",
			expected: "/var/repos/service",
		},
		{
			name:     "leaves_path_when_lookup_fails",
			provider: func() (string, error) { return "", errors.New("no home") },
			input:    "~/fleet/service",
			expected: "~/fleet/service",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			expander := pathutils.NewHomeExpanderWithProvider(testCase.provider)
			require.Equal(testInstance, testCase.expected, expander.Expand(testCase.input))
		})
	}
}
