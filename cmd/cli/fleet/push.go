package fleet

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/gitfleet/internal/fleet/batch"
	"github.com/temirov/gitfleet/internal/fleet/shared"
	"github.com/temirov/gitfleet/internal/gitrepo"
)

const (
	pushCommandUseConstant              = "push"
	pushCommandShortDescriptionConstant = "Push a branch from every targeted repository"
	pushCommandLongDescriptionConstant  = "push publishes the named branch from each repository to the configured remote. Without --branch each repository pushes its current branch."
	pushFlagBranchNameConstant          = "branch"
	pushFlagBranchDescriptionConstant   = "Branch to push; defaults to each repository's current branch."
	pushFlagForceNameConstant           = "force"
	pushFlagForceDescriptionConstant    = "Force-push, overriding non-fast-forward rejections."
	pushSummaryTemplateConstant         = "pushed %d of %d repositories\n"
)

// PushCommandBuilder assembles the Cobra command for fleet-wide pushes.
type PushCommandBuilder struct {
	BaseBuilder
}

// Build constructs the push command.
func (builder *PushCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   pushCommandUseConstant,
		Short: pushCommandShortDescriptionConstant,
		Long:  pushCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)
	command.Flags().String(pushFlagBranchNameConstant, "", pushFlagBranchDescriptionConstant)
	command.Flags().Bool(pushFlagForceNameConstant, false, pushFlagForceDescriptionConstant)

	return command, nil
}

func (builder *PushCommandBuilder) run(command *cobra.Command, _ []string) error {
	requestedBranch, _ := command.Flags().GetString(pushFlagBranchNameConstant)
	requestedBranch = strings.TrimSpace(requestedBranch)
	forcePush, _ := command.Flags().GetBool(pushFlagForceNameConstant)

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

	pushOptions := gitrepo.PushOptions{Remote: configuration.Remote, Force: forcePush}
	pushOutcomes := batch.NewExecutor().RunBatch(command.Context(), repositories, func(operationContext context.Context, repository shared.RepositoryRef) (string, error) {
		branchName := requestedBranch
		if len(branchName) == 0 {
			currentBranch, branchError := backend.CurrentBranch(operationContext, repository)
			if branchError != nil {
				return "", branchError
			}
			branchName = currentBranch
		}

		if pushError := backend.Push(operationContext, repository, branchName, pushOptions); pushError != nil {
			return "", pushError
		}
		return branchName, nil
	})

	reporter := builder.resolveReporter(command)
	reporter.Printf(pushSummaryTemplateConstant, pushOutcomes.SucceededCount(), repositories.Len())

	return reportFailures(reporter, pushOutcomes)
}
