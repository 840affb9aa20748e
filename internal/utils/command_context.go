package utils

import "context"

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	manifestPathContextKeyConstant          = commandContextKey("catalogManifestPath")
)

type commandContextKey string

// CommandContextAccessor manages values stored in command execution contexts.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the configuration file path to the provided context.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return accessor.withValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the configuration file path from the provided context.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	return accessor.value(executionContext, configurationFilePathContextKeyConstant)
}

// WithManifestPath attaches the resolved catalog manifest path to the provided context.
func (accessor CommandContextAccessor) WithManifestPath(parentContext context.Context, manifestPath string) context.Context {
	return accessor.withValue(parentContext, manifestPathContextKeyConstant, manifestPath)
}

// ManifestPath extracts the catalog manifest path from the provided context.
func (accessor CommandContextAccessor) ManifestPath(executionContext context.Context) (string, bool) {
	return accessor.value(executionContext, manifestPathContextKeyConstant)
}

func (accessor CommandContextAccessor) withValue(parentContext context.Context, contextKey commandContextKey, contextValue string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, contextKey, contextValue)
}

func (accessor CommandContextAccessor) value(executionContext context.Context, contextKey commandContextKey) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	storedValue, valueAvailable := executionContext.Value(contextKey).(string)
	if !valueAvailable {
		return "", false
	}
	return storedValue, true
}
