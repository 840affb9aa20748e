package fleet

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/temirov/gitfleet/internal/fleet/batch"
	"github.com/temirov/gitfleet/internal/fleet/classify"
	"github.com/temirov/gitfleet/internal/fleet/shared"
)

const (
	commitCommandUseConstant              = "commit"
	commitCommandShortDescriptionConstant = "Commit every dirty repository with a shared message"
	commitCommandLongDescriptionConstant  = "commit stages and commits all pending changes in each dirty repository. Clean repositories are left untouched."
	commitFlagMessageNameConstant         = "message"
	commitFlagMessageDescriptionConstant  = "Commit message applied to every repository."
	commitSummaryTemplateConstant         = "committed %d, skipped %d clean (%d repositories)\n"
	commitDetailLineTemplateConstant      = "  %s: %s\n"
)

// CommitCommandBuilder assembles the Cobra command for fleet-wide commits.
type CommitCommandBuilder struct {
	BaseBuilder
}

// Build constructs the commit command.
func (builder *CommitCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commitCommandUseConstant,
		Short: commitCommandShortDescriptionConstant,
		Long:  commitCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)
	command.Flags().String(commitFlagMessageNameConstant, "", commitFlagMessageDescriptionConstant)
	if markError := command.MarkFlagRequired(commitFlagMessageNameConstant); markError != nil {
		return nil, markError
	}

	return command, nil
}

func (builder *CommitCommandBuilder) run(command *cobra.Command, _ []string) error {
	commitMessage, _ := command.Flags().GetString(commitFlagMessageNameConstant)

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

	classifier, classifierError := classify.NewClassifier(backend)
	if classifierError != nil {
		return classifierError
	}

	statusGroups, classificationOutcomes := classifier.ClassifyStatus(command.Context(), repositories)

	commitOutcomes := batch.NewExecutor().RunBatch(command.Context(), statusGroups.Dirty, func(operationContext context.Context, repository shared.RepositoryRef) (string, error) {
		return backend.CommitAll(operationContext, repository, commitMessage)
	})

	reporter := builder.resolveReporter(command)
	reporter.Printf(commitSummaryTemplateConstant, commitOutcomes.SucceededCount(), statusGroups.Clean.Len(), repositories.Len())
	for _, commitOutcome := range commitOutcomes {
		if commitOutcome.Succeeded() {
			reporter.Printf(commitDetailLineTemplateConstant, commitOutcome.Repository.Path, commitOutcome.Detail)
		}
	}

	combinedOutcomes := append(shared.OutcomeList{}, classificationOutcomes.Failures()...)
	combinedOutcomes = append(combinedOutcomes, commitOutcomes...)
	return reportFailures(reporter, combinedOutcomes)
}
