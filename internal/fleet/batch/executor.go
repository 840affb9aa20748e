package batch

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/temirov/gitfleet/internal/fleet/shared"
)

// Operation applies one unit of work to a single repository. The returned
// detail optionally carries a small result value for reporting.
type Operation func(executionContext context.Context, repository shared.RepositoryRef) (string, error)

// Executor dispatches operations across repository sets.
type Executor struct{}

// NewExecutor constructs a batch executor.
func NewExecutor() *Executor {
	return &Executor{}
}

// RunBatch invokes the operation once per repository, concurrently. Outcomes
// are written into index-stable slots so the returned list preserves input
// order regardless of completion order. A failing repository records its error
// in the corresponding outcome; siblings run to completion. Operations are not
// retried and no concurrency cap is applied: the workload is bounded by the
// number of managed repositories.
func (executor *Executor) RunBatch(executionContext context.Context, repositories shared.RepositorySet, operation Operation) shared.OutcomeList {
	references := repositories.References()
	if len(references) == 0 {
		return shared.OutcomeList{}
	}

	outcomes := make(shared.OutcomeList, len(references))

	var taskGroup errgroup.Group
	for referenceIndex, reference := range references {
		taskGroup.Go(func() error {
			detail, operationError := operation(executionContext, reference)
			outcomes[referenceIndex] = shared.OperationOutcome{
				Repository: reference,
				Detail:     detail,
				Err:        operationError,
			}
			return nil
		})
	}

	// Goroutines never return errors; failures live in their outcome slots.
	_ = taskGroup.Wait()

	return outcomes
}
