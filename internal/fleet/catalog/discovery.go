package catalog

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

const gitMetadataDirectoryNameConstant = ".git"

// FilesystemDiscoverer finds git working trees beneath root directories.
type FilesystemDiscoverer struct{}

// NewFilesystemDiscoverer constructs a discoverer backed by filepath.WalkDir.
func NewFilesystemDiscoverer() *FilesystemDiscoverer {
	return &FilesystemDiscoverer{}
}

// DiscoverRepositories walks each root and collects directories holding a .git
// entry. A discovered repository is not descended into, so nested working
// trees inside another repository are not reported. Results are sorted by path.
func (discoverer *FilesystemDiscoverer) DiscoverRepositories(rootDirectories []string) ([]string, error) {
	collectedPaths := make(map[string]struct{})

	for _, rootDirectory := range rootDirectories {
		walkError := filepath.WalkDir(rootDirectory, func(candidatePath string, directoryEntry fs.DirEntry, entryError error) error {
			if entryError != nil || !directoryEntry.IsDir() {
				return nil
			}
			if !containsGitMetadata(candidatePath) {
				return nil
			}
			collectedPaths[candidatePath] = struct{}{}
			return fs.SkipDir
		})
		if walkError != nil {
			return nil, walkError
		}
	}

	repositoryPaths := make([]string, 0, len(collectedPaths))
	for repositoryPath := range collectedPaths {
		repositoryPaths = append(repositoryPaths, repositoryPath)
	}
	sort.Strings(repositoryPaths)
	return repositoryPaths, nil
}

// containsGitMetadata accepts both .git directories and the .git files that
// linked working trees use.
func containsGitMetadata(directoryPath string) bool {
	_, statError := os.Stat(filepath.Join(directoryPath, gitMetadataDirectoryNameConstant))
	return statError == nil
}
