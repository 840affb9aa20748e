package fleet

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/gitfleet/internal/execshell"
	"github.com/temirov/gitfleet/internal/fleet/catalog"
	"github.com/temirov/gitfleet/internal/fleet/shared"
	"github.com/temirov/gitfleet/internal/gitrepo"
	"github.com/temirov/gitfleet/internal/ui"
	"github.com/temirov/gitfleet/internal/utils"
	pathutils "github.com/temirov/gitfleet/internal/utils/path"
)

const (
	flagExcludeNameConstant        = "exclude"
	flagExcludeDescriptionConstant = "Repository name to skip (repeatable)."
	flagScopeNameConstant          = "scope"
	flagScopeDescriptionConstant   = "Only operate on repositories whose path starts with this prefix."

	failureLineTemplateConstant     = "  %s: %v\n"
	failuresHeadingTemplateConstant = "%d of %d repositories failed:\n"
	batchFailureTemplateConstant    = "%d of %d repositories failed"
)

// LoggerProvider supplies a zap logger instance.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies the fleet configuration section.
type ConfigurationProvider func() CommandConfiguration

// RepositoryLister resolves the repository set a verb operates on.
type RepositoryLister interface {
	ListRepositories(options catalog.ListOptions) (shared.RepositorySet, error)
}

// BatchFailureError reports how many repositories failed; the process exits
// non-zero when any command returns it.
type BatchFailureError struct {
	FailedCount int
	TotalCount  int
}

func (failure BatchFailureError) Error() string {
	return fmt.Sprintf(batchFailureTemplateConstant, failure.FailedCount, failure.TotalCount)
}

// BaseBuilder carries the collaborators shared by every fleet verb builder.
// Zero-valued optional fields fall back to production wiring.
type BaseBuilder struct {
	LoggerProvider               LoggerProvider
	ConfigurationProvider        ConfigurationProvider
	HumanReadableLoggingProvider func() bool
	Backend                      gitrepo.RepositoryBackend
	Lister                       RepositoryLister
}

func (builder *BaseBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}

	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}

	return logger
}

func (builder *BaseBuilder) resolveConfiguration() CommandConfiguration {
	if builder.ConfigurationProvider == nil {
		return DefaultCommandConfiguration().sanitize()
	}
	return builder.ConfigurationProvider().sanitize()
}

func (builder *BaseBuilder) humanReadableLogging() bool {
	return builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider()
}

func (builder *BaseBuilder) resolveExecutor(logger *zap.Logger) (*execshell.ShellExecutor, error) {
	shellExecutor, creationError := execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner())
	if creationError != nil {
		return nil, creationError
	}
	if builder.humanReadableLogging() {
		shellExecutor.SetEventObserver(ui.NewConsoleCommandEventLogger(logger))
	}
	return shellExecutor, nil
}

func (builder *BaseBuilder) resolveBackend(logger *zap.Logger, configuration CommandConfiguration) (gitrepo.RepositoryBackend, error) {
	if builder.Backend != nil {
		return builder.Backend, nil
	}

	shellExecutor, executorError := builder.resolveExecutor(logger)
	if executorError != nil {
		return nil, executorError
	}

	transport := gitrepo.DefaultTransportConfiguration()
	transport.Remote = configuration.Remote
	return gitrepo.NewShellBackend(shellExecutor, transport)
}

// resolveRepositories loads the catalog and applies exclusion and scope
// filtering. A manifest path stored on the command context by the root
// command takes precedence over configuration.
func (builder *BaseBuilder) resolveRepositories(command *cobra.Command, configuration CommandConfiguration) (shared.RepositorySet, error) {
	manifestPath := configuration.ManifestPath
	contextAccessor := utils.NewCommandContextAccessor()
	if contextManifestPath, manifestAvailable := contextAccessor.ManifestPath(command.Context()); manifestAvailable && len(strings.TrimSpace(contextManifestPath)) > 0 {
		manifestPath = contextManifestPath
	}

	excludedNames := append([]string{}, configuration.Excludes...)
	if flagExcludes, flagError := command.Flags().GetStringSlice(flagExcludeNameConstant); flagError == nil {
		excludedNames = append(excludedNames, flagExcludes...)
	}

	scopePrefix := configuration.Scope
	if command.Flags().Changed(flagScopeNameConstant) {
		scopePrefix, _ = command.Flags().GetString(flagScopeNameConstant)
	}

	repositoryLister := builder.Lister
	if repositoryLister == nil {
		loadedCatalog, catalogError := catalog.LoadCatalog(manifestPath, pathutils.NewHomeExpander())
		if catalogError != nil {
			return shared.RepositorySet{}, catalogError
		}
		repositoryLister = loadedCatalog
	}

	return repositoryLister.ListRepositories(catalog.ListOptions{
		ExcludedNames: excludedNames,
		ScopePrefix:   scopePrefix,
	})
}

func (builder *BaseBuilder) resolveReporter(command *cobra.Command) shared.Reporter {
	return shared.NewWriterReporter(command.OutOrStdout())
}

func registerSelectionFlags(command *cobra.Command) {
	command.Flags().StringSlice(flagExcludeNameConstant, nil, flagExcludeDescriptionConstant)
	command.Flags().String(flagScopeNameConstant, "", flagScopeDescriptionConstant)
}

// reportFailures prints one line per failed outcome and converts any failure
// into a non-zero process exit through the returned error.
func reportFailures(reporter shared.Reporter, outcomes shared.OutcomeList) error {
	failedCount := outcomes.FailedCount()
	if failedCount == 0 {
		return nil
	}

	reporter.Printf(failuresHeadingTemplateConstant, failedCount, len(outcomes))
	for _, failedOutcome := range outcomes.Failures() {
		reporter.Printf(failureLineTemplateConstant, failedOutcome.Repository.Path, failedOutcome.Err)
	}
	return BatchFailureError{FailedCount: failedCount, TotalCount: len(outcomes)}
}
