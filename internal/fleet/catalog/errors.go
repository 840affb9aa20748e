package catalog

import "fmt"

const (
	configurationErrorTemplateConstant          = "catalog configuration %s: %s"
	configurationErrorWithCauseTemplateConstant = "catalog configuration %s: %s: %v"
)

// ConfigurationError reports an unusable catalog. It is fatal: commands refuse
// to start any repository work when the catalog cannot be resolved.
type ConfigurationError struct {
	Source string
	Reason string
	Cause  error
}

func (configurationError ConfigurationError) Error() string {
	if configurationError.Cause != nil {
		return fmt.Sprintf(configurationErrorWithCauseTemplateConstant, configurationError.Source, configurationError.Reason, configurationError.Cause)
	}
	return fmt.Sprintf(configurationErrorTemplateConstant, configurationError.Source, configurationError.Reason)
}

func (configurationError ConfigurationError) Unwrap() error {
	return configurationError.Cause
}
