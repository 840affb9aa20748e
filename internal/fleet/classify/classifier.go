package classify

import (
	"context"
	"errors"

	"github.com/temirov/gitfleet/internal/fleet/batch"
	"github.com/temirov/gitfleet/internal/fleet/shared"
	"github.com/temirov/gitfleet/internal/gitrepo"
)

const (
	backendNotConfiguredMessageConstant = "repository backend not configured"

	cleanStatusDetailConstant = "clean"
	dirtyStatusDetailConstant = "dirty"
)

// ErrBackendNotConfigured indicates the classifier was constructed without a backend.
var ErrBackendNotConfigured = errors.New(backendNotConfiguredMessageConstant)

// Classifier inspects repositories concurrently and groups them. A repository
// whose inspection fails joins neither group; its failed outcome is returned
// alongside the partition for the caller to report.
type Classifier struct {
	backend  gitrepo.RepositoryBackend
	executor *batch.Executor
}

// NewClassifier validates the backend and constructs a classifier.
func NewClassifier(backend gitrepo.RepositoryBackend) (*Classifier, error) {
	if backend == nil {
		return nil, ErrBackendNotConfigured
	}
	return &Classifier{backend: backend, executor: batch.NewExecutor()}, nil
}

// ClassifyStatus partitions the set into clean and dirty working trees. Every
// successfully inspected repository lands in exactly one group.
func (classifier *Classifier) ClassifyStatus(executionContext context.Context, repositories shared.RepositorySet) (shared.StatusGroups, shared.OutcomeList) {
	outcomes := classifier.executor.RunBatch(executionContext, repositories, func(operationContext context.Context, repository shared.RepositoryRef) (string, error) {
		worktreeStatus, statusError := classifier.backend.Status(operationContext, repository)
		if statusError != nil {
			return "", statusError
		}
		if worktreeStatus == gitrepo.WorktreeClean {
			return cleanStatusDetailConstant, nil
		}
		return dirtyStatusDetailConstant, nil
	})

	statusGroups := shared.StatusGroups{Clean: shared.NewRepositorySet(), Dirty: shared.NewRepositorySet()}
	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			continue
		}
		if outcome.Detail == cleanStatusDetailConstant {
			statusGroups.Clean = statusGroups.Clean.Append(outcome.Repository)
			continue
		}
		statusGroups.Dirty = statusGroups.Dirty.Append(outcome.Repository)
	}
	return statusGroups, outcomes
}

// ClassifyBranches groups the set by current branch name. Every successfully
// inspected repository appears under exactly one branch key.
func (classifier *Classifier) ClassifyBranches(executionContext context.Context, repositories shared.RepositorySet) (shared.BranchMap, shared.OutcomeList) {
	outcomes := classifier.executor.RunBatch(executionContext, repositories, func(operationContext context.Context, repository shared.RepositoryRef) (string, error) {
		return classifier.backend.CurrentBranch(operationContext, repository)
	})

	branchGroups := shared.BranchMap{}
	for _, outcome := range outcomes {
		if !outcome.Succeeded() {
			continue
		}
		branchGroups[outcome.Detail] = branchGroups[outcome.Detail].Append(outcome.Repository)
	}
	return branchGroups, outcomes
}
