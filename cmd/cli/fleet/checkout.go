package fleet

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/temirov/gitfleet/internal/fleet/batch"
	"github.com/temirov/gitfleet/internal/fleet/shared"
)

const (
	checkoutCommandUseConstant              = "checkout"
	checkoutCommandShortDescriptionConstant = "Switch every repository to the named branch"
	checkoutCommandLongDescriptionConstant  = "checkout switches each repository to the named branch. With --new the branch is created at HEAD first; creating a branch that already exists fails for that repository."
	checkoutFlagBranchNameConstant          = "branch"
	checkoutFlagBranchDescriptionConstant   = "Branch to switch to."
	checkoutFlagNewNameConstant             = "new"
	checkoutFlagNewDescriptionConstant      = "Create the branch before switching."
	checkoutSummaryTemplateConstant         = "switched %d of %d repositories to %s\n"
)

// CheckoutCommandBuilder assembles the Cobra command for fleet-wide checkouts.
type CheckoutCommandBuilder struct {
	BaseBuilder
}

// Build constructs the checkout command.
func (builder *CheckoutCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   checkoutCommandUseConstant,
		Short: checkoutCommandShortDescriptionConstant,
		Long:  checkoutCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)
	command.Flags().String(checkoutFlagBranchNameConstant, "", checkoutFlagBranchDescriptionConstant)
	command.Flags().Bool(checkoutFlagNewNameConstant, false, checkoutFlagNewDescriptionConstant)
	if markError := command.MarkFlagRequired(checkoutFlagBranchNameConstant); markError != nil {
		return nil, markError
	}

	return command, nil
}

func (builder *CheckoutCommandBuilder) run(command *cobra.Command, _ []string) error {
	branchName, _ := command.Flags().GetString(checkoutFlagBranchNameConstant)
	createBranch, _ := command.Flags().GetBool(checkoutFlagNewNameConstant)

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

	checkoutOutcomes := batch.NewExecutor().RunBatch(command.Context(), repositories, func(operationContext context.Context, repository shared.RepositoryRef) (string, error) {
		if createBranch {
			return branchName, backend.CheckoutNewBranch(operationContext, repository, branchName)
		}
		return branchName, backend.CheckoutBranch(operationContext, repository, branchName)
	})

	reporter := builder.resolveReporter(command)
	reporter.Printf(checkoutSummaryTemplateConstant, checkoutOutcomes.SucceededCount(), repositories.Len(), branchName)

	return reportFailures(reporter, checkoutOutcomes)
}
