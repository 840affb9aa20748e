package workflows_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/gitfleet/internal/execshell"
	"github.com/temirov/gitfleet/internal/fleet/shared"
	"github.com/temirov/gitfleet/internal/workflows"
)

type scriptedGitHubExecutor struct {
	result           execshell.ExecutionResult
	err              error
	executedCommands []execshell.CommandDetails
}

func (executor *scriptedGitHubExecutor) ExecuteGitHubCLI(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.executedCommands = append(executor.executedCommands, details)
	return executor.result, executor.err
}

func workflowTestRepository(testInstance *testing.T) shared.RepositoryRef {
	testInstance.Helper()
	repositoryReference, referenceError := shared.NewRepositoryRef("service", "/repos/service")
	require.NoError(testInstance, referenceError)
	return repositoryReference
}

func TestNewClientRequiresExecutor(testInstance *testing.T) {
	clientInstance, creationError := workflows.NewClient(nil)
	require.ErrorIs(testInstance, creationError, workflows.ErrExecutorNotConfigured)
	require.Nil(testInstance, clientInstance)
}

func TestClientLatestRun(testInstance *testing.T) {
	testCases := []struct {
		name            string
		executorResult  execshell.ExecutionResult
		executorError   error
		expectedRun     workflows.WorkflowRun
		expectedDetail  string
		expectQueryErr  bool
		expectDecodeErr bool
	}{
		{
			name:           "returns_latest_run_fields",
			executorResult: execshell.ExecutionResult{StandardOutput: `[{"status":"completed","conclusion":"success","workflowName":"ci"}]`},
			expectedRun:    workflows.WorkflowRun{WorkflowName: "ci", Status: "completed", Conclusion: "success"},
			expectedDetail: "ci: success",
		},
		{
			name:           "in_progress_run_has_no_conclusion",
			executorResult: execshell.ExecutionResult{StandardOutput: `[{"status":"in_progress","conclusion":"","workflowName":"release"}]`},
			expectedRun:    workflows.WorkflowRun{WorkflowName: "release", Status: "in_progress"},
			expectedDetail: "release: in progress",
		},
		{
			name:           "repository_without_runs_yields_zero_run",
			executorResult: execshell.ExecutionResult{StandardOutput: `[]`},
			expectedDetail: "no workflow runs",
		},
		{
			name:           "execution_failures_are_wrapped",
			executorError:  errors.New("gh: command not found"),
			expectQueryErr: true,
		},
		{
			name:            "malformed_responses_are_wrapped",
			executorResult:  execshell.ExecutionResult{StandardOutput: `{"status":`},
			expectDecodeErr: true,
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(subtestInstance *testing.T) {
			executor := &scriptedGitHubExecutor{result: testCase.executorResult, err: testCase.executorError}
			clientInstance, creationError := workflows.NewClient(executor)
			require.NoError(subtestInstance, creationError)

			latestRun, runError := clientInstance.LatestRun(context.Background(), workflowTestRepository(subtestInstance))
			switch {
			case testCase.expectQueryErr:
				queryFailure := workflows.RunQueryError{}
				require.ErrorAs(subtestInstance, runError, &queryFailure)
				require.Equal(subtestInstance, "/repos/service", queryFailure.Path)
			case testCase.expectDecodeErr:
				decodeFailure := workflows.RunDecodingError{}
				require.ErrorAs(subtestInstance, runError, &decodeFailure)
			default:
				require.NoError(subtestInstance, runError)
				require.Equal(subtestInstance, testCase.expectedRun, latestRun)
				require.Equal(subtestInstance, testCase.expectedDetail, workflows.RunDetail(latestRun))
				require.Equal(subtestInstance,
					[]string{"run", "list", "--limit", "1", "--json", "status,conclusion,workflowName"},
					executor.executedCommands[0].Arguments)
				require.Equal(subtestInstance, "/repos/service", executor.executedCommands[0].WorkingDirectory)
			}
		})
	}
}
