package fleet

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/temirov/gitfleet/internal/fleet/batch"
	"github.com/temirov/gitfleet/internal/fleet/shared"
)

const (
	deleteCommandUseConstant              = "delete"
	deleteCommandShortDescriptionConstant = "Delete the named branch where it exists"
	deleteCommandLongDescriptionConstant  = "delete removes the named local branch from every repository that has it. Repositories without the branch are skipped."
	deleteFlagBranchNameConstant          = "branch"
	deleteFlagBranchDescriptionConstant   = "Branch to delete."
	deleteSummaryTemplateConstant         = "deleted %s from %d repositories, %d without the branch (%d repositories)\n"
	deleteSkippedDetailConstant           = "branch not present"
	deleteRemovedDetailConstant           = "deleted"
)

// DeleteCommandBuilder assembles the Cobra command for fleet-wide branch deletion.
type DeleteCommandBuilder struct {
	BaseBuilder
}

// Build constructs the delete command.
func (builder *DeleteCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   deleteCommandUseConstant,
		Short: deleteCommandShortDescriptionConstant,
		Long:  deleteCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)
	command.Flags().String(deleteFlagBranchNameConstant, "", deleteFlagBranchDescriptionConstant)
	if markError := command.MarkFlagRequired(deleteFlagBranchNameConstant); markError != nil {
		return nil, markError
	}

	return command, nil
}

func (builder *DeleteCommandBuilder) run(command *cobra.Command, _ []string) error {
	branchName, _ := command.Flags().GetString(deleteFlagBranchNameConstant)

	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	backend, backendError := builder.resolveBackend(logger, configuration)
	if backendError != nil {
		return backendError
	}

	repositories, repositoriesError := builder.resolveRepositories(command, configuration)
	if repositoriesError != nil {
		return repositoriesError
	}

	deletionOutcomes := batch.NewExecutor().RunBatch(command.Context(), repositories, func(operationContext context.Context, repository shared.RepositoryRef) (string, error) {
		branchExists, existenceError := backend.HasBranch(operationContext, repository, branchName)
		if existenceError != nil {
			return "", existenceError
		}
		if !branchExists {
			return deleteSkippedDetailConstant, nil
		}
		if deletionError := backend.DeleteBranch(operationContext, repository, branchName); deletionError != nil {
			return "", deletionError
		}
		return deleteRemovedDetailConstant, nil
	})

	deletedCount := 0
	skippedCount := 0
	for _, deletionOutcome := range deletionOutcomes {
		switch {
		case !deletionOutcome.Succeeded():
		case deletionOutcome.Detail == deleteRemovedDetailConstant:
			deletedCount++
		default:
			skippedCount++
		}
	}

	reporter := builder.resolveReporter(command)
	reporter.Printf(deleteSummaryTemplateConstant, branchName, deletedCount, skippedCount, repositories.Len())

	return reportFailures(reporter, deletionOutcomes)
}
