package cli_test

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitfleet/cmd/cli"
)

const (
	testConfigurationFileNameConstant = "config.yaml"
	testConfigurationContentConstant  = "common:\n  log_level: warn\n  log_format: structured\nfleet:\n  manifest: /tmp/fleet.yaml\n  remote: upstream\n"
)

var expectedVerbNames = []string{
	"branch",
	"status",
	"sync",
	"commit",
	"push",
	"checkout",
	"delete",
	"clone",
	"workflows",
}

func newRootCommandOutput(testInstance *testing.T, arguments ...string) (string, error) {
	testInstance.Helper()
	application := cli.NewApplication()
	outputBuffer := &bytes.Buffer{}
	rootCommand := application.RootCommand()
	rootCommand.SetOut(outputBuffer)
	rootCommand.SetErr(outputBuffer)
	rootCommand.SetArgs(arguments)
	executionError := application.Execute()
	return outputBuffer.String(), executionError
}

func TestNewApplicationRegistersFleetVerbs(testInstance *testing.T) {
	application := cli.NewApplication()

	registeredNames := map[string]bool{}
	for _, registeredCommand := range application.RootCommand().Commands() {
		registeredNames[registeredCommand.Name()] = true
	}

	for _, verbName := range expectedVerbNames {
		require.True(testInstance, registeredNames[verbName], verbName)
	}
}

func TestRootCommandWithoutArgumentsPrintsHelp(testInstance *testing.T) {
	helpOutput, executionError := newRootCommandOutput(testInstance)
	require.NoError(testInstance, executionError)
	require.Contains(testInstance, helpOutput, "gitfleet")
	require.Contains(testInstance, helpOutput, "status")
}

func TestConfigurationFileFlagIsHonored(testInstance *testing.T) {
	configurationPath := filepath.Join(testInstance.TempDir(), testConfigurationFileNameConstant)
	require.NoError(testInstance, os.WriteFile(configurationPath, []byte(testConfigurationContentConstant), 0o600))

	_, executionError := newRootCommandOutput(testInstance, "--config", configurationPath)
	require.NoError(testInstance, executionError)
}

func TestInvalidLogLevelFailsInitialization(testInstance *testing.T) {
	_, executionError := newRootCommandOutput(testInstance, "--log-level", "verbose")
	require.Error(testInstance, executionError)
	require.Contains(testInstance, executionError.Error(), "unsupported log level")
}
