package shared

import (
	"errors"
	"path/filepath"
	"sort"
	"strings"
)

const (
	emptyRepositoryPathMessageConstant = "repository path must not be empty"
)

// ErrEmptyRepositoryPath indicates a repository reference without a usable path.
var ErrEmptyRepositoryPath = errors.New(emptyRepositoryPathMessageConstant)

// RepositoryRef identifies one managed repository. Immutable once the catalog is built.
type RepositoryRef struct {
	// Name is the logical name used for exclusion filtering; defaults to the path base.
	Name string
	// Path locates the repository working tree on disk.
	Path string
}

// NewRepositoryRef validates and normalizes a repository reference.
func NewRepositoryRef(name string, path string) (RepositoryRef, error) {
	trimmedPath := strings.TrimSpace(path)
	if len(trimmedPath) == 0 {
		return RepositoryRef{}, ErrEmptyRepositoryPath
	}

	trimmedName := strings.TrimSpace(name)
	if len(trimmedName) == 0 {
		trimmedName = filepath.Base(trimmedPath)
	}

	return RepositoryRef{Name: trimmedName, Path: trimmedPath}, nil
}

// RepositorySet is an ordered sequence of repository references with unique paths.
type RepositorySet struct {
	references []RepositoryRef
	pathIndex  map[string]struct{}
}

// NewRepositorySet builds a set preserving the first occurrence order of each path.
func NewRepositorySet(references ...RepositoryRef) RepositorySet {
	set := RepositorySet{pathIndex: map[string]struct{}{}}
	for _, reference := range references {
		set.add(reference)
	}
	return set
}

func (set *RepositorySet) add(reference RepositoryRef) {
	if set.pathIndex == nil {
		set.pathIndex = map[string]struct{}{}
	}
	if _, alreadyPresent := set.pathIndex[reference.Path]; alreadyPresent {
		return
	}
	set.pathIndex[reference.Path] = struct{}{}
	set.references = append(set.references, reference)
}

// Append returns a set extended by the provided reference, skipping duplicate paths.
func (set RepositorySet) Append(reference RepositoryRef) RepositorySet {
	extended := NewRepositorySet(set.references...)
	extended.add(reference)
	return extended
}

// References returns the ordered repository references.
func (set RepositorySet) References() []RepositoryRef {
	duplicated := make([]RepositoryRef, len(set.references))
	copy(duplicated, set.references)
	return duplicated
}

// Paths returns the ordered repository paths.
func (set RepositorySet) Paths() []string {
	paths := make([]string, 0, len(set.references))
	for _, reference := range set.references {
		paths = append(paths, reference.Path)
	}
	return paths
}

// Len reports the number of repositories in the set.
func (set RepositorySet) Len() int {
	return len(set.references)
}

// IsEmpty reports whether the set holds no repositories.
func (set RepositorySet) IsEmpty() bool {
	return len(set.references) == 0
}

// Contains reports whether the set holds a repository with the provided path.
func (set RepositorySet) Contains(path string) bool {
	_, present := set.pathIndex[path]
	return present
}

// StatusGroups partitions a repository set into clean and dirty working trees.
type StatusGroups struct {
	Clean RepositorySet
	Dirty RepositorySet
}

// BranchMap groups repositories by their current branch name.
type BranchMap map[string]RepositorySet

// SortedBranchNames returns branch keys in lexical order for deterministic reporting.
func (branches BranchMap) SortedBranchNames() []string {
	names := make([]string, 0, len(branches))
	for branchName := range branches {
		names = append(names, branchName)
	}
	sort.Strings(names)
	return names
}

// OperationOutcome records the per-repository result of one batch operation.
type OperationOutcome struct {
	Repository RepositoryRef
	// Detail optionally carries a small result value such as a commit identifier.
	Detail string
	Err    error
}

// Succeeded reports whether the operation completed without error.
func (outcome OperationOutcome) Succeeded() bool {
	return outcome.Err == nil
}

// OutcomeList aggregates batch outcomes in input order.
type OutcomeList []OperationOutcome

// SucceededCount returns the number of successful outcomes.
func (outcomes OutcomeList) SucceededCount() int {
	succeeded := 0
	for _, outcome := range outcomes {
		if outcome.Succeeded() {
			succeeded++
		}
	}
	return succeeded
}

// FailedCount returns the number of failed outcomes.
func (outcomes OutcomeList) FailedCount() int {
	return len(outcomes) - outcomes.SucceededCount()
}

// Failures returns the failed outcomes preserving input order.
func (outcomes OutcomeList) Failures() OutcomeList {
	var failures OutcomeList
	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			failures = append(failures, outcome)
		}
	}
	return failures
}
