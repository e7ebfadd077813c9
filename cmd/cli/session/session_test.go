package session_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/require"

	"github.com/temirov/grass/cmd/cli/repos"
	"github.com/temirov/grass/cmd/cli/session"
	"github.com/temirov/grass/internal/execshell"
	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/api"
	"github.com/temirov/grass/internal/grass/fixture"
)

type recordingTmuxExecutor struct {
	recorded []execshell.CommandDetails
	err      error
}

func (executor *recordingTmuxExecutor) ExecuteTmux(_ context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error) {
	executor.recorded = append(executor.recorded, details)
	return execshell.ExecutionResult{}, executor.err
}

func executeSession(testInstance *testing.T, executor *recordingTmuxExecutor, arguments ...string) (string, error) {
	testInstance.Helper()

	builder := session.CommandBuilder{
		Providers: repos.Providers{
			ApiProvider: func(context.Context) (*api.Api, error) {
				return api.NewMock(), nil
			},
		},
		TmuxExecutor: executor,
	}
	command, buildError := builder.Build()
	require.NoError(testInstance, buildError)

	root := &cobra.Command{Use: "grass", SilenceErrors: true, SilenceUsage: true}
	root.AddCommand(command)

	var stdout bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&bytes.Buffer{})
	root.SetArgs(append([]string{"session"}, arguments...))
	executionError := root.ExecuteContext(context.Background())
	return stdout.String(), executionError
}

func TestSessionCommandOpensDetachedSession(testInstance *testing.T) {
	executor := &recordingTmuxExecutor{}

	stdout, executionError := executeSession(testInstance, executor, fixture.AliasAllGood, fixture.RepositoryFirst)
	require.NoError(testInstance, executionError)
	require.Equal(testInstance, "first@all_good\n", stdout)

	require.Len(testInstance, executor.recorded, 1)
	require.Equal(testInstance,
		[]string{"new-session", "-d", "-s", "first@all_good", "-c", "/home/example/repositories/all_good/first"},
		executor.recorded[0].Arguments,
	)
}

func TestSessionCommandFailures(testInstance *testing.T) {
	testCases := []struct {
		name           string
		arguments      []string
		executorError  error
		expectedError  error
		expectedCalls  int
		expectedSubstr string
	}{
		{
			name:          "unknown_repository",
			arguments:     []string{fixture.AliasAllGood, "fourth"},
			expectedError: grass.ErrRepositoryNotFound,
		},
		{
			name:           "unknown_category_suggests",
			arguments:      []string{"al_good", fixture.RepositoryFirst},
			expectedError:  grass.ErrCategoryNotFound,
			expectedSubstr: "did you mean: all_good?",
		},
		{
			name:           "tmux_failure",
			arguments:      []string{fixture.CategoryWithChanges, fixture.RepositoryThird},
			executorError:  errors.New("tmux exited with status 1"),
			expectedCalls:  1,
			expectedSubstr: "open tmux session third@with_changes",
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			executor := &recordingTmuxExecutor{err: testCase.executorError}

			stdout, executionError := executeSession(testInstance, executor, testCase.arguments...)
			require.Error(testInstance, executionError)
			require.Empty(testInstance, stdout)
			require.Len(testInstance, executor.recorded, testCase.expectedCalls)
			if testCase.expectedError != nil {
				require.ErrorIs(testInstance, executionError, testCase.expectedError)
			}
			if testCase.executorError != nil {
				require.ErrorIs(testInstance, executionError, testCase.executorError)
			}
			if len(testCase.expectedSubstr) > 0 {
				require.Contains(testInstance, executionError.Error(), testCase.expectedSubstr)
			}
		})
	}
}
