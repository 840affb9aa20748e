package execshell

import "fmt"

const (
	gitToolNameConstant       = "git"
	githubCLIToolNameConstant = "gh"

	commandFailedErrorTemplateConstant    = "%s exited with code %d%s"
	commandExecutionErrorTemplateConstant = "%s could not be executed: %v"
	standardErrorSuffixTemplateConstant   = ": %s"
)

// CommandName identifies a supported executable.
type CommandName string

// Supported executables.
const (
	CommandGit       CommandName = CommandName(gitToolNameConstant)
	CommandGitHubCLI CommandName = CommandName(githubCLIToolNameConstant)
)

// CommandDetails describes a single tool invocation.
type CommandDetails struct {
	Arguments            []string
	WorkingDirectory     string
	EnvironmentVariables map[string]string
	StandardInput        []byte
}

// ShellCommand combines a CommandName with invocation details.
type ShellCommand struct {
	Name    CommandName
	Details CommandDetails
}

// ExecutionResult captures the observable results of executing a command.
type ExecutionResult struct {
	StandardOutput string
	StandardError  string
	ExitCode       int
}

// CommandFailedError reports a command that completed with a non-zero exit code.
type CommandFailedError struct {
	Command ShellCommand
	Result  ExecutionResult
}

// Error describes the failed command including trailing standard error output.
func (failure CommandFailedError) Error() string {
	standardErrorSuffix := ""
	if len(failure.Result.StandardError) > 0 {
		standardErrorSuffix = fmt.Sprintf(standardErrorSuffixTemplateConstant, failure.Result.StandardError)
	}
	return fmt.Sprintf(commandFailedErrorTemplateConstant, failure.Command.Name, failure.Result.ExitCode, standardErrorSuffix)
}

// CommandExecutionError reports a command that could not be started or run.
type CommandExecutionError struct {
	Command ShellCommand
	Cause   error
}

// Error describes the execution failure.
func (failure CommandExecutionError) Error() string {
	return fmt.Sprintf(commandExecutionErrorTemplateConstant, failure.Command.Name, failure.Cause)
}

// Unwrap exposes the underlying cause for errors.Is and errors.As inspection.
func (failure CommandExecutionError) Unwrap() error {
	return failure.Cause
}

// CommandEventObserver receives lifecycle notifications as the executor runs
// commands. CommandExecutionFailed fires only when no execution result exists.
type CommandEventObserver interface {
	CommandStarted(command ShellCommand)
	CommandCompleted(command ShellCommand, result ExecutionResult)
	CommandExecutionFailed(command ShellCommand, failure error)
}

// discardEventObserver is the observer installed when no consumer registered one.
type discardEventObserver struct{}

func (discardEventObserver) CommandStarted(ShellCommand) {}

func (discardEventObserver) CommandCompleted(ShellCommand, ExecutionResult) {}

func (discardEventObserver) CommandExecutionFailed(ShellCommand, error) {}
