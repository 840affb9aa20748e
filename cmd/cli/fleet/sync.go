package fleet

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/temirov/gitfleet/internal/fleet/batch"
	"github.com/temirov/gitfleet/internal/fleet/classify"
	"github.com/temirov/gitfleet/internal/fleet/shared"
)

const (
	syncCommandUseConstant              = "sync"
	syncCommandShortDescriptionConstant = "Fast-forward every clean repository onto its upstream"
	syncCommandLongDescriptionConstant  = "sync fetches all remotes and fast-forwards each clean repository. Dirty repositories are skipped so local work is never disturbed; diverged repositories fail individually."
	syncSummaryTemplateConstant         = "synced %d, skipped %d dirty (%d repositories)\n"
	syncedDetailConstant                = "synced"
)

// SyncCommandBuilder assembles the Cobra command for fleet synchronization.
type SyncCommandBuilder struct {
	BaseBuilder
}

// Build constructs the sync command.
func (builder *SyncCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   syncCommandUseConstant,
		Short: syncCommandShortDescriptionConstant,
		Long:  syncCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)

	return command, nil
}

func (builder *SyncCommandBuilder) run(command *cobra.Command, _ []string) error {
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

	syncOutcomes := batch.NewExecutor().RunBatch(command.Context(), statusGroups.Clean, func(operationContext context.Context, repository shared.RepositoryRef) (string, error) {
		if syncError := backend.Sync(operationContext, repository); syncError != nil {
			return "", syncError
		}
		return syncedDetailConstant, nil
	})

	reporter := builder.resolveReporter(command)
	reporter.Printf(syncSummaryTemplateConstant, syncOutcomes.SucceededCount(), statusGroups.Dirty.Len(), repositories.Len())

	combinedOutcomes := append(shared.OutcomeList{}, classificationOutcomes.Failures()...)
	combinedOutcomes = append(combinedOutcomes, syncOutcomes...)
	return reportFailures(reporter, combinedOutcomes)
}
