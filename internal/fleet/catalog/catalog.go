package catalog

import (
	"strings"

	"github.com/temirov/gitfleet/internal/fleet/shared"
)

const discoveryFailedReasonConstant = "repository discovery failed"

// RepositoryDiscoverer materializes repository paths beneath root directories.
type RepositoryDiscoverer interface {
	DiscoverRepositories(rootDirectories []string) ([]string, error)
}

// PathExpander normalizes user-facing paths before they reach git.
type PathExpander interface {
	Expand(candidatePath string) string
}

// ListOptions narrows the repositories a command operates on.
type ListOptions struct {
	// ExcludedNames removes repositories by logical name.
	ExcludedNames []string
	// ScopePrefix keeps only repositories whose path starts with the prefix.
	ScopePrefix string
}

// Catalog resolves fleet repositories from a validated manifest. Explicit
// entries come first in manifest order; repositories discovered under the
// manifest roots follow in path order.
type Catalog struct {
	manifest     Manifest
	discoverer   RepositoryDiscoverer
	pathExpander PathExpander
}

// NewCatalog builds a catalog over the provided manifest and collaborators.
func NewCatalog(manifest Manifest, discoverer RepositoryDiscoverer, pathExpander PathExpander) *Catalog {
	if discoverer == nil {
		discoverer = NewFilesystemDiscoverer()
	}
	return &Catalog{manifest: manifest, discoverer: discoverer, pathExpander: pathExpander}
}

// LoadCatalog loads the manifest at the provided path and wires the default
// filesystem discoverer and path expander.
func LoadCatalog(manifestPath string, pathExpander PathExpander) (*Catalog, error) {
	manifest, manifestError := LoadManifest(manifestPath)
	if manifestError != nil {
		return nil, manifestError
	}
	return NewCatalog(manifest, nil, pathExpander), nil
}

// ListRepositories returns the resolved repository set after exclusion and
// scope filtering. The result order is deterministic for a given manifest and
// filesystem state.
func (repositoryCatalog *Catalog) ListRepositories(options ListOptions) (shared.RepositorySet, error) {
	excludedNames := make(map[string]struct{}, len(options.ExcludedNames))
	for _, excludedName := range options.ExcludedNames {
		trimmedName := strings.TrimSpace(excludedName)
		if len(trimmedName) > 0 {
			excludedNames[trimmedName] = struct{}{}
		}
	}
	scopePrefix := repositoryCatalog.expandPath(strings.TrimSpace(options.ScopePrefix))

	resolvedSet := shared.NewRepositorySet()
	appendReference := func(entryName string, entryPath string) error {
		repositoryReference, referenceError := shared.NewRepositoryRef(entryName, repositoryCatalog.expandPath(entryPath))
		if referenceError != nil {
			return referenceError
		}
		if _, isExcluded := excludedNames[repositoryReference.Name]; isExcluded {
			return nil
		}
		if len(scopePrefix) > 0 && !strings.HasPrefix(repositoryReference.Path, scopePrefix) {
			return nil
		}
		resolvedSet = resolvedSet.Append(repositoryReference)
		return nil
	}

	for _, manifestEntry := range repositoryCatalog.manifest.Repositories {
		if appendError := appendReference(manifestEntry.Name, manifestEntry.Path); appendError != nil {
			return shared.RepositorySet{}, appendError
		}
	}

	if len(repositoryCatalog.manifest.Roots) > 0 {
		expandedRoots := make([]string, 0, len(repositoryCatalog.manifest.Roots))
		for _, rootDirectory := range repositoryCatalog.manifest.Roots {
			expandedRoots = append(expandedRoots, repositoryCatalog.expandPath(rootDirectory))
		}

		discoveredPaths, discoveryError := repositoryCatalog.discoverer.DiscoverRepositories(expandedRoots)
		if discoveryError != nil {
			return shared.RepositorySet{}, ConfigurationError{Source: strings.Join(expandedRoots, ","), Reason: discoveryFailedReasonConstant, Cause: discoveryError}
		}
		for _, discoveredPath := range discoveredPaths {
			if appendError := appendReference("", discoveredPath); appendError != nil {
				return shared.RepositorySet{}, appendError
			}
		}
	}

	return resolvedSet, nil
}

func (repositoryCatalog *Catalog) expandPath(candidatePath string) string {
	if repositoryCatalog.pathExpander == nil {
		return candidatePath
	}
	return repositoryCatalog.pathExpander.Expand(candidatePath)
}
