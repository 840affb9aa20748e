package fleet

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"github.com/temirov/gitfleet/internal/fleet/batch"
	"github.com/temirov/gitfleet/internal/fleet/classify"
	"github.com/temirov/gitfleet/internal/fleet/shared"
)

const (
	branchCommandUseConstant              = "branch"
	branchCommandShortDescriptionConstant = "Group repositories by their current branch"
	branchCommandLongDescriptionConstant  = "branch reports how many repositories sit on each branch and lists the repositories that drifted off the fleet default branch. With --unpushed it also lists repositories whose HEAD is ahead of the default branch."
	branchFlagUnpushedNameConstant        = "unpushed"
	branchFlagUnpushedDescriptionConstant = "Also list repositories with commits ahead of the default branch."
	branchCountLineTemplateConstant       = "%s: %d\n"
	branchDriftHeadingTemplateConstant    = "not on %s:\n"
	branchDriftLineTemplateConstant       = "  %s\n"
	branchUnpushedHeadingConstant         = "ahead of the default branch:\n"
	branchUnpushedLineTemplateConstant    = "  %s: %s\n"
)

// BranchCommandBuilder assembles the Cobra command for branch reporting.
type BranchCommandBuilder struct {
	BaseBuilder
}

// Build constructs the branch command.
func (builder *BranchCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   branchCommandUseConstant,
		Short: branchCommandShortDescriptionConstant,
		Long:  branchCommandLongDescriptionConstant,
		Args:  cobra.NoArgs,
		RunE:  builder.run,
	}

	registerSelectionFlags(command)
	command.Flags().Bool(branchFlagUnpushedNameConstant, false, branchFlagUnpushedDescriptionConstant)

	return command, nil
}

func (builder *BranchCommandBuilder) run(command *cobra.Command, _ []string) error {
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

	branchGroups, outcomes := classifier.ClassifyBranches(command.Context(), repositories)

	reporter := builder.resolveReporter(command)
	for _, branchName := range branchGroups.SortedBranchNames() {
		reporter.Printf(branchCountLineTemplateConstant, branchName, branchGroups[branchName].Len())
	}

	driftedPaths := make([]string, 0, repositories.Len())
	for _, branchName := range branchGroups.SortedBranchNames() {
		if branchName == configuration.DefaultBranch {
			continue
		}
		driftedPaths = append(driftedPaths, branchGroups[branchName].Paths()...)
	}
	if len(driftedPaths) > 0 {
		reporter.Printf(branchDriftHeadingTemplateConstant, configuration.DefaultBranch)
		for _, driftedPath := range driftedPaths {
			reporter.Printf(branchDriftLineTemplateConstant, driftedPath)
		}
	}

	combinedOutcomes := append(shared.OutcomeList{}, outcomes...)

	if reportUnpushed, _ := command.Flags().GetBool(branchFlagUnpushedNameConstant); reportUnpushed {
		unpushedOutcomes := batch.NewExecutor().RunBatch(command.Context(), repositories, func(operationContext context.Context, repository shared.RepositoryRef) (string, error) {
			isAhead, comparisonError := backend.IsAheadOfDefault(operationContext, repository)
			if comparisonError != nil {
				return "", comparisonError
			}
			if !isAhead {
				return "", nil
			}
			headMessage, messageError := backend.HeadCommitMessage(operationContext, repository)
			if messageError != nil {
				return "", messageError
			}
			return commitSubject(headMessage), nil
		})

		headingPrinted := false
		for _, unpushedOutcome := range unpushedOutcomes {
			if !unpushedOutcome.Succeeded() || len(unpushedOutcome.Detail) == 0 {
				continue
			}
			if !headingPrinted {
				reporter.Printf(branchUnpushedHeadingConstant)
				headingPrinted = true
			}
			reporter.Printf(branchUnpushedLineTemplateConstant, unpushedOutcome.Repository.Path, unpushedOutcome.Detail)
		}
		combinedOutcomes = append(combinedOutcomes, unpushedOutcomes.Failures()...)
	}

	return reportFailures(reporter, combinedOutcomes)
}

// commitSubject returns the first line of a commit message.
func commitSubject(commitMessage string) string {
	subjectLine, _, _ := strings.Cut(strings.TrimSpace(commitMessage), "\n")
	return strings.TrimSpace(subjectLine)
}
