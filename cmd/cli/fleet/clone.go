package fleet

import (
	"github.com/spf13/cobra"
)

const (
	cloneCommandUseConstant              = "clone remote-url destination"
	cloneCommandShortDescriptionConstant = "Clone a repository into the fleet"
	cloneCommandLongDescriptionConstant  = "clone materializes the remote repository at the destination path using the fleet's non-interactive transport settings."
	cloneExpectedArgumentCountConstant   = 2
	cloneSummaryTemplateConstant         = "cloned %s into %s\n"
)

// CloneCommandBuilder assembles the Cobra command for cloning a repository.
type CloneCommandBuilder struct {
	BaseBuilder
}

// Build constructs the clone command.
func (builder *CloneCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   cloneCommandUseConstant,
		Short: cloneCommandShortDescriptionConstant,
		Long:  cloneCommandLongDescriptionConstant,
		Args:  cobra.ExactArgs(cloneExpectedArgumentCountConstant),
		RunE:  builder.run,
	}

	return command, nil
}

func (builder *CloneCommandBuilder) run(command *cobra.Command, arguments []string) error {
	remoteURL := arguments[0]
	destinationPath := arguments[1]

	configuration := builder.resolveConfiguration()
	logger := builder.resolveLogger()

	backend, backendError := builder.resolveBackend(logger, configuration)
	if backendError != nil {
		return backendError
	}

	if cloneError := backend.Clone(command.Context(), destinationPath, remoteURL); cloneError != nil {
		return cloneError
	}

	builder.resolveReporter(command).Printf(cloneSummaryTemplateConstant, remoteURL, destinationPath)
	return nil
}
