package utils_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitfleet/internal/utils"
)

const (
	testConfigurationNameConstant   = "config"
	testConfigurationTypeConstant   = "yaml"
	testEnvironmentPrefixConstant   = "GITFLEETTEST"
	testConfigurationFileDataString = "common:\n  log_level: debug\n  log_format: console\n"
)

type testConfiguration struct {
	Common struct {
		LogLevel  string `mapstructure:"log_level"`
		LogFormat string `mapstructure:"log_format"`
	} `mapstructure:"common"`
	Excludes []string `mapstructure:"excludes"`
}

func TestConfigurationLoaderReadsFileAndDefaults(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(temporaryDirectory, "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte(testConfigurationFileDataString), 0o644))

	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{temporaryDirectory},
	)

	defaults := map[string]any{
		"common.log_level":  "info",
		"common.log_format": "structured",
		"excludes":          []string{},
	}

	var configuration testConfiguration
	loadedMetadata, loadError := loader.LoadConfiguration(configurationFilePath, defaults, &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, configurationFilePath, loadedMetadata.ConfigFileUsed)
	require.Equal(testInstance, "debug", configuration.Common.LogLevel)
	require.Equal(testInstance, "console", configuration.Common.LogFormat)
}

func TestConfigurationLoaderAppliesDefaultsWithoutFile(testInstance *testing.T) {
	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{testInstance.TempDir()},
	)

	defaults := map[string]any{
		"common.log_level":  "info",
		"common.log_format": "structured",
	}

	var configuration testConfiguration
	_, loadError := loader.LoadConfiguration("", defaults, &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, "info", configuration.Common.LogLevel)
	require.Equal(testInstance, "structured", configuration.Common.LogFormat)
}

func TestConfigurationLoaderSplitsEnvironmentListValues(testInstance *testing.T) {
	testInstance.Setenv("GITFLEETTEST_EXCLUDES", "archive,playground")

	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{testInstance.TempDir()},
	)

	defaults := map[string]any{"excludes": []string{}}

	var configuration testConfiguration
	_, loadError := loader.LoadConfiguration("", defaults, &configuration)
	require.NoError(testInstance, loadError)
	require.Equal(testInstance, []string{"archive", "playground"}, configuration.Excludes)
}

func TestConfigurationLoaderRejectsMalformedFile(testInstance *testing.T) {
	temporaryDirectory := testInstance.TempDir()
	configurationFilePath := filepath.Join(temporaryDirectory, "config.yaml")
	require.NoError(testInstance, os.WriteFile(configurationFilePath, []byte("common: [unclosed"), 0o644))

	loader := utils.NewConfigurationLoader(
		testConfigurationNameConstant,
		testConfigurationTypeConstant,
		testEnvironmentPrefixConstant,
		[]string{temporaryDirectory},
	)

	var configuration testConfiguration
	_, loadError := loader.LoadConfiguration(configurationFilePath, nil, &configuration)
	require.Error(testInstance, loadError)
}
