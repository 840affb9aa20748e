package fleet

import "strings"

const (
	configurationManifestKeyConstant      = "manifest"
	configurationExcludesKeyConstant      = "excludes"
	configurationScopeKeyConstant         = "scope"
	configurationRemoteKeyConstant        = "remote"
	configurationDefaultBranchKeyConstant = "default_branch"

	defaultManifestPathConstant  = "fleet.yaml"
	defaultRemoteNameConstant    = "origin"
	defaultDefaultBranchConstant = "main"
)

// CommandConfiguration captures the fleet command configuration section.
type CommandConfiguration struct {
	// ManifestPath locates the fleet manifest file.
	ManifestPath string `mapstructure:"manifest"`
	// Excludes removes repositories by logical name before any verb runs.
	Excludes []string `mapstructure:"excludes"`
	// Scope keeps only repositories whose path starts with the prefix.
	Scope string `mapstructure:"scope"`
	// Remote names the remote used for push operations.
	Remote string `mapstructure:"remote"`
	// DefaultBranch is the branch the fleet is expected to sit on.
	DefaultBranch string `mapstructure:"default_branch"`
}

// DefaultCommandConfiguration returns baseline configuration values for fleet commands.
func DefaultCommandConfiguration() CommandConfiguration {
	return CommandConfiguration{
		ManifestPath:  defaultManifestPathConstant,
		Excludes:      []string{},
		Scope:         "",
		Remote:        defaultRemoteNameConstant,
		DefaultBranch: defaultDefaultBranchConstant,
	}
}

// DefaultConfigurationValues produces Viper defaults for fleet commands.
func DefaultConfigurationValues(rootKey string) map[string]any {
	defaults := DefaultCommandConfiguration()
	return map[string]any{
		rootKey + "." + configurationManifestKeyConstant:      defaults.ManifestPath,
		rootKey + "." + configurationExcludesKeyConstant:      defaults.Excludes,
		rootKey + "." + configurationScopeKeyConstant:         defaults.Scope,
		rootKey + "." + configurationRemoteKeyConstant:        defaults.Remote,
		rootKey + "." + configurationDefaultBranchKeyConstant: defaults.DefaultBranch,
	}
}

// sanitize normalizes fleet configuration values.
func (configuration CommandConfiguration) sanitize() CommandConfiguration {
	sanitized := configuration
	sanitized.ManifestPath = strings.TrimSpace(configuration.ManifestPath)
	if len(sanitized.ManifestPath) == 0 {
		sanitized.ManifestPath = defaultManifestPathConstant
	}
	sanitized.Scope = strings.TrimSpace(configuration.Scope)
	sanitized.Remote = strings.TrimSpace(configuration.Remote)
	if len(sanitized.Remote) == 0 {
		sanitized.Remote = defaultRemoteNameConstant
	}
	sanitized.DefaultBranch = strings.TrimSpace(configuration.DefaultBranch)
	if len(sanitized.DefaultBranch) == 0 {
		sanitized.DefaultBranch = defaultDefaultBranchConstant
	}

	trimmedExcludes := make([]string, 0, len(configuration.Excludes))
	for _, excludedName := range configuration.Excludes {
		trimmedName := strings.TrimSpace(excludedName)
		if len(trimmedName) > 0 {
			trimmedExcludes = append(trimmedExcludes, trimmedName)
		}
	}
	sanitized.Excludes = trimmedExcludes

	return sanitized
}
