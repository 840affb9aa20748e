package fleet

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/temirov/gitfleet/internal/fleet/batch"
	"github.com/temirov/gitfleet/internal/fleet/shared"
	"github.com/temirov/gitfleet/internal/workflows"
)

const (
	workflowsCommandUseConstant              = "workflows"
	workflowsCommandShortDescriptionConstant = "Report the latest CI run for every repository"
	workflowsCommandLongDescriptionConstant  = "workflows queries the GitHub CLI for each repository's most recent workflow run and reports its conclusion."
	workflowsRunLineTemplateConstant         = "  %s: %s\n"
	workflowsSummaryTemplateConstant         = "workflow runs for %d repositories:\n"
)

// WorkflowsCommandBuilder assembles the Cobra command for CI run reporting.
type WorkflowsCommandBuilder struct {
	BaseBuilder

	// GitHubExecutor overrides the gh executor, primarily for tests.
	GitHubExecutor workflows.GitHubCommandExecutor
}

// Build constructs the workflows command.
func (builder *WorkflowsCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   workflowsCommandUseConstant,
		Short: workflowsCommandShortDescriptionConstant,
		Long:  workflowsCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)

	return command, nil
}

func (builder *WorkflowsCommandBuilder) run(command *cobra.Command, _ []string) error {
	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	githubExecutor := builder.GitHubExecutor
	if githubExecutor == nil {
		shellExecutor, executorError := builder.resolveExecutor(logger)
		if executorError != nil {
			return executorError
		}
		githubExecutor = shellExecutor
	}

	workflowClient, clientError := workflows.NewClient(githubExecutor)
	if clientError != nil {
		return clientError
	}

	repositories, repositoriesError := builder.resolveRepositories(command, configuration)
	if repositoriesError != nil {
		return repositoriesError
	}

	runOutcomes := batch.NewExecutor().RunBatch(command.Context(), repositories, func(operationContext context.Context, repository shared.RepositoryRef) (string, error) {
		latestRun, runError := workflowClient.LatestRun(operationContext, repository)
		if runError != nil {
			return "", runError
		}
		return workflows.RunDetail(latestRun), nil
	})

	reporter := builder.resolveReporter(command)
	reporter.Printf(workflowsSummaryTemplateConstant, repositories.Len())
	for _, runOutcome := range runOutcomes {
		if runOutcome.Succeeded() {
			reporter.Printf(workflowsRunLineTemplateConstant, runOutcome.Repository.Path, runOutcome.Detail)
		}
	}

	return reportFailures(reporter, runOutcomes)
}
