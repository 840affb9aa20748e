package utils_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitfleet/internal/utils"
)

func TestLoggerFactoryCreateLogger(testInstance *testing.T) {
	testCases := []struct {
		name        string
		logLevel    utils.LogLevel
		logFormat   utils.LogFormat
		expectError bool
	}{
		{name: "structured_info", logLevel: utils.LogLevelInfo, logFormat: utils.LogFormatStructured},
		{name: "console_debug", logLevel: utils.LogLevelDebug, logFormat: utils.LogFormatConsole},
		{name: "console_warn", logLevel: utils.LogLevelWarn, logFormat: utils.LogFormatConsole},
		{name: "rejects_unknown_level", logLevel: utils.LogLevel("verbose"), logFormat: utils.LogFormatStructured, expectError: true},
		{name: "rejects_unknown_format", logLevel: utils.LogLevelError, logFormat: utils.LogFormat("plain"), expectError: true},
	}

	loggerFactory := utils.NewLoggerFactory()

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			logger, creationError := loggerFactory.CreateLogger(testCase.logLevel, testCase.logFormat)
			if testCase.expectError {
				require.Error(testInstance, creationError)
				require.Nil(testInstance, logger)
				return
			}
			require.NoError(testInstance, creationError)
			require.NotNil(testInstance, logger)
		})
	}
}
