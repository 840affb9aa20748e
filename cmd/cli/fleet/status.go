package fleet

import (
	"github.com/spf13/cobra"

	"github.com/temirov/gitfleet/internal/fleet/classify"
)

const (
	statusCommandUseConstant              = "status"
	statusCommandShortDescriptionConstant = "Count clean and dirty repositories across the fleet"
	statusCommandLongDescriptionConstant  = "status inspects every catalog repository concurrently and reports how many working trees are clean and how many carry uncommitted changes."
	statusSummaryTemplateConstant         = "%d clean, %d dirty (%d repositories)\n"
	statusDirtyLineTemplateConstant       = "  dirty: %s\n"
)

// StatusCommandBuilder assembles the Cobra command for fleet status reporting.
type StatusCommandBuilder struct {
	BaseBuilder
}

// Build constructs the status command.
func (builder *StatusCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   statusCommandUseConstant,
		Short: statusCommandShortDescriptionConstant,
		Long:  statusCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)

	return command, nil
}

func (builder *StatusCommandBuilder) run(command *cobra.Command, _ []string) error {
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

	statusGroups, outcomes := classifier.ClassifyStatus(command.Context(), repositories)

	reporter := builder.resolveReporter(command)
	reporter.Printf(statusSummaryTemplateConstant, statusGroups.Clean.Len(), statusGroups.Dirty.Len(), repositories.Len())
	for _, dirtyPath := range statusGroups.Dirty.Paths() {
		reporter.Printf(statusDirtyLineTemplateConstant, dirtyPath)
	}

	return reportFailures(reporter, outcomes)
}
