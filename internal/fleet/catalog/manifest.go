package catalog

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	manifestPathRequiredReasonConstant       = "manifest path must be provided"
	manifestUnreadableReasonConstant         = "manifest could not be read"
	manifestUnparsableReasonConstant         = "manifest could not be parsed"
	manifestEmptyReasonConstant              = "manifest defines no repositories and no roots"
	manifestEntryPathMissingTemplateConstant = "repository entry %d has no path"
	manifestDuplicatePathTemplateConstant    = "repository path %s listed more than once"
	manifestDuplicateNameTemplateConstant    = "repository name %s listed more than once"
)

// ManifestEntry names one repository and its working tree location.
type ManifestEntry struct {
	Name string `yaml:"name"`
	Path string `yaml:"path"`
}

// Manifest is the on-disk fleet definition. Repositories are explicit entries;
// Roots are directories to discover repositories under when no explicit
// entries are given. A manifest may carry both.
type Manifest struct {
	Repositories []ManifestEntry `yaml:"repositories"`
	Roots        []string        `yaml:"roots"`
}

// LoadManifest reads and validates the fleet manifest at the provided path.
func LoadManifest(manifestPath string) (Manifest, error) {
	trimmedPath := strings.TrimSpace(manifestPath)
	if len(trimmedPath) == 0 {
		return Manifest{}, ConfigurationError{Source: manifestPath, Reason: manifestPathRequiredReasonConstant}
	}

	manifestContent, readError := os.ReadFile(trimmedPath)
	if readError != nil {
		return Manifest{}, ConfigurationError{Source: trimmedPath, Reason: manifestUnreadableReasonConstant, Cause: readError}
	}

	var manifest Manifest
	if unmarshalError := yaml.Unmarshal(manifestContent, &manifest); unmarshalError != nil {
		return Manifest{}, ConfigurationError{Source: trimmedPath, Reason: manifestUnparsableReasonConstant, Cause: unmarshalError}
	}

	if validationError := validateManifest(trimmedPath, manifest); validationError != nil {
		return Manifest{}, validationError
	}
	return manifest, nil
}

func validateManifest(manifestSource string, manifest Manifest) error {
	if len(manifest.Repositories) == 0 && len(manifest.Roots) == 0 {
		return ConfigurationError{Source: manifestSource, Reason: manifestEmptyReasonConstant}
	}

	seenPaths := make(map[string]struct{}, len(manifest.Repositories))
	seenNames := make(map[string]struct{}, len(manifest.Repositories))
	for entryIndex, repositoryEntry := range manifest.Repositories {
		trimmedEntryPath := strings.TrimSpace(repositoryEntry.Path)
		if len(trimmedEntryPath) == 0 {
			return ConfigurationError{Source: manifestSource, Reason: fmt.Sprintf(manifestEntryPathMissingTemplateConstant, entryIndex)}
		}
		if _, pathSeen := seenPaths[trimmedEntryPath]; pathSeen {
			return ConfigurationError{Source: manifestSource, Reason: fmt.Sprintf(manifestDuplicatePathTemplateConstant, trimmedEntryPath)}
		}
		seenPaths[trimmedEntryPath] = struct{}{}

		trimmedEntryName := strings.TrimSpace(repositoryEntry.Name)
		if len(trimmedEntryName) == 0 {
			continue
		}
		if _, nameSeen := seenNames[trimmedEntryName]; nameSeen {
			return ConfigurationError{Source: manifestSource, Reason: fmt.Sprintf(manifestDuplicateNameTemplateConstant, trimmedEntryName)}
		}
		seenNames[trimmedEntryName] = struct{}{}
	}
	return nil
}
