package catalog_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitfleet/internal/fleet/catalog"
	pathutils "github.com/temirov/gitfleet/internal/utils/path"
)

const manifestFileNameConstant = "fleet.yaml"

func writeManifest(testInstance *testing.T, manifestContent string) string {
	testInstance.Helper()
	manifestPath := filepath.Join(testInstance.TempDir(), manifestFileNameConstant)
	require.NoError(testInstance, os.WriteFile(manifestPath, []byte(manifestContent), 0o600))
	return manifestPath
}

func TestLoadManifestValidation(testInstance *testing.T) {
	testCases := []struct {
		name            string
		manifestContent string
		expectedReason  string
	}{
		{
			name:            "empty_manifest_is_rejected",
			manifestContent: "repositories: []\n",
			expectedReason:  "manifest defines no repositories and no roots",
		},
		{
			name:            "entry_without_path_is_rejected",
			manifestContent: "repositories:\n  - name: service\n",
			expectedReason:  "repository entry 0 has no path",
		},
		{
			name:            "duplicate_paths_are_rejected",
			manifestContent: "repositories:\n  - path: /repos/service\n  - path: /repos/service\n",
			expectedReason:  "repository path /repos/service listed more than once",
		},
		{
			name:            "duplicate_names_are_rejected",
			manifestContent: "repositories:\n  - name: service\n    path: /repos/service\n  - name: service\n    path: /repos/other\n",
			expectedReason:  "repository name service listed more than once",
		},
		{
			name:            "malformed_yaml_is_rejected",
			manifestContent: "repositories: [\n",
			expectedReason:  "manifest could not be parsed",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			manifestPath := writeManifest(subtestInstance, testCase.manifestContent)

			_, manifestError := catalog.LoadManifest(manifestPath)
			configurationFailure := catalog.ConfigurationError{}
			require.ErrorAs(subtestInstance, manifestError, &configurationFailure)
			require.Contains(subtestInstance, configurationFailure.Error(), testCase.expectedReason)
		})
	}
}

func TestLoadManifestMissingFile(testInstance *testing.T) {
	_, manifestError := catalog.LoadManifest(filepath.Join(testInstance.TempDir(), manifestFileNameConstant))
	configurationFailure := catalog.ConfigurationError{}
	require.ErrorAs(testInstance, manifestError, &configurationFailure)
	require.Contains(testInstance, configurationFailure.Error(), "manifest could not be read")
}

func TestCatalogListRepositories(testInstance *testing.T) {
	manifest := catalog.Manifest{
		Repositories: []catalog.ManifestEntry{
			{Name: "service", Path: "~/repos/service"},
			{Path: "~/repos/tooling"},
			{Name: "archive", Path: "~/repos/archive"},
		},
	}
	homeExpander := pathutils.NewHomeExpanderWithProvider(func() (string, error) {
		return "/home/builder", nil
	})

	testCases := []struct {
		name          string
		options       catalog.ListOptions
		expectedPaths []string
	}{
		{
			name:          "returns_entries_in_manifest_order",
			expectedPaths: []string{"/home/builder/repos/service", "/home/builder/repos/tooling", "/home/builder/repos/archive"},
		},
		{
			name:          "excludes_repositories_by_name",
			options:       catalog.ListOptions{ExcludedNames: []string{"archive", "tooling"}},
			expectedPaths: []string{"/home/builder/repos/service"},
		},
		{
			name:          "scope_prefix_filters_by_expanded_path",
			options:       catalog.ListOptions{ScopePrefix: "~/repos/se"},
			expectedPaths: []string{"/home/builder/repos/service"},
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			repositoryCatalog := catalog.NewCatalog(manifest, nil, homeExpander)

			repositorySet, listError := repositoryCatalog.ListRepositories(testCase.options)
			require.NoError(subtestInstance, listError)
			require.Equal(subtestInstance, testCase.expectedPaths, repositorySet.Paths())
		})
	}
}

func TestCatalogDiscoversRepositoriesUnderRoots(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	for _, repositoryName := range []string{"zeta", "alpha"} {
		require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, repositoryName, ".git"), 0o755))
	}
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "plain-directory"), 0o755))
	// A working tree nested inside another repository stays hidden.
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "alpha", "vendored", ".git"), 0o755))

	repositoryCatalog := catalog.NewCatalog(catalog.Manifest{Roots: []string{rootDirectory}}, nil, nil)

	repositorySet, listError := repositoryCatalog.ListRepositories(catalog.ListOptions{})
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{
		filepath.Join(rootDirectory, "alpha"),
		filepath.Join(rootDirectory, "zeta"),
	}, repositorySet.Paths())

	references := repositorySet.References()
	require.Equal(testInstance, "alpha", references[0].Name)
	require.Equal(testInstance, "zeta", references[1].Name)
}

func TestCatalogCombinesEntriesAndRoots(testInstance *testing.T) {
	rootDirectory := testInstance.TempDir()
	require.NoError(testInstance, os.MkdirAll(filepath.Join(rootDirectory, "discovered", ".git"), 0o755))

	manifest := catalog.Manifest{
		Repositories: []catalog.ManifestEntry{{Name: "pinned", Path: "/repos/pinned"}},
		Roots:        []string{rootDirectory},
	}
	repositoryCatalog := catalog.NewCatalog(manifest, nil, nil)

	repositorySet, listError := repositoryCatalog.ListRepositories(catalog.ListOptions{})
	require.NoError(testInstance, listError)
	require.Equal(testInstance, []string{"/repos/pinned", filepath.Join(rootDirectory, "discovered")}, repositorySet.Paths())

	excludedSet, exclusionError := repositoryCatalog.ListRepositories(catalog.ListOptions{ExcludedNames: []string{"discovered"}})
	require.NoError(testInstance, exclusionError)
	require.Equal(testInstance, []string{"/repos/pinned"}, excludedSet.Paths())
}
