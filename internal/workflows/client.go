package workflows

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/temirov/gitfleet/internal/execshell"
	"github.com/temirov/gitfleet/internal/fleet/shared"
)

const (
	runSubcommandConstant       = "run"
	listSubcommandConstant      = "list"
	limitFlagConstant           = "--limit"
	latestRunLimitValueConstant = "1"
	jsonFlagConstant            = "--json"
	runJSONFieldsConstant       = "status,conclusion,workflowName"

	executorNotConfiguredMessageConstant = "github cli executor not configured"
	runQueryErrorTemplateConstant        = "%s: workflow run query failed: %v"
	runDecodingErrorTemplateConstant     = "%s: workflow run response decoding failed: %v"
	noRunsDetailConstant                 = "no workflow runs"
	runDetailTemplateConstant            = "%s: %s"
	inProgressConclusionFallbackConstant = "in progress"
)

// ErrExecutorNotConfigured indicates the client was constructed without an executor.
var ErrExecutorNotConfigured = errors.New(executorNotConfiguredMessageConstant)

// RunQueryError wraps a failed gh invocation for one repository.
type RunQueryError struct {
	Path  string
	Cause error
}

func (queryError RunQueryError) Error() string {
	return fmt.Sprintf(runQueryErrorTemplateConstant, queryError.Path, queryError.Cause)
}

func (queryError RunQueryError) Unwrap() error {
	return queryError.Cause
}

// RunDecodingError indicates the gh response could not be parsed.
type RunDecodingError struct {
	Path  string
	Cause error
}

func (decodingError RunDecodingError) Error() string {
	return fmt.Sprintf(runDecodingErrorTemplateConstant, decodingError.Path, decodingError.Cause)
}

func (decodingError RunDecodingError) Unwrap() error {
	return decodingError.Cause
}

// WorkflowRun describes the most recent workflow run of one repository.
type WorkflowRun struct {
	WorkflowName string
	Status       string
	Conclusion   string
}

// Summary renders a short human-readable description for fleet reports.
func (workflowRun WorkflowRun) Summary() string {
	conclusion := strings.TrimSpace(workflowRun.Conclusion)
	if len(conclusion) == 0 {
		conclusion = inProgressConclusionFallbackConstant
	}
	if len(strings.TrimSpace(workflowRun.WorkflowName)) == 0 {
		return conclusion
	}
	return fmt.Sprintf(runDetailTemplateConstant, workflowRun.WorkflowName, conclusion)
}

// GitHubCommandExecutor is the minimal interface required from execshell.ShellExecutor.
type GitHubCommandExecutor interface {
	ExecuteGitHubCLI(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// Client resolves workflow run state through gh.
type Client struct {
	executor GitHubCommandExecutor
}

// NewClient constructs a workflow client.
func NewClient(executor GitHubCommandExecutor) (*Client, error) {
	if executor == nil {
		return nil, ErrExecutorNotConfigured
	}
	return &Client{executor: executor}, nil
}

// LatestRun queries the most recent workflow run for the repository. A
// repository with no runs yields a zero WorkflowRun and no error.
func (client *Client) LatestRun(executionContext context.Context, repository shared.RepositoryRef) (WorkflowRun, error) {
	commandDetails := execshell.CommandDetails{
		Arguments: []string{
			runSubcommandConstant,
			listSubcommandConstant,
			limitFlagConstant,
			latestRunLimitValueConstant,
			jsonFlagConstant,
			runJSONFieldsConstant,
		},
		WorkingDirectory: repository.Path,
	}

	executionResult, executionError := client.executor.ExecuteGitHubCLI(executionContext, commandDetails)
	if executionError != nil {
		return WorkflowRun{}, RunQueryError{Path: repository.Path, Cause: executionError}
	}

	var response []struct {
		Status       string `json:"status"`
		Conclusion   string `json:"conclusion"`
		WorkflowName string `json:"workflowName"`
	}
	if decodingError := json.Unmarshal([]byte(executionResult.StandardOutput), &response); decodingError != nil {
		return WorkflowRun{}, RunDecodingError{Path: repository.Path, Cause: decodingError}
	}
	if len(response) == 0 {
		return WorkflowRun{}, nil
	}

	return WorkflowRun{
		WorkflowName: response[0].WorkflowName,
		Status:       response[0].Status,
		Conclusion:   response[0].Conclusion,
	}, nil
}

// RunDetail formats a repository's latest run for outcome reporting.
func RunDetail(workflowRun WorkflowRun) string {
	if len(workflowRun.WorkflowName) == 0 && len(workflowRun.Status) == 0 && len(workflowRun.Conclusion) == 0 {
		return noRunsDetailConstant
	}
	return workflowRun.Summary()
}
