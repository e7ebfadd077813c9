package execshell

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestCommandMessageFormatterDescribesKnownCommands(t *testing.T) {
	formatter := CommandMessageFormatter{}
	testCases := []struct {
		name     string
		command  ShellCommand
		result   ExecutionResult
		failure  error
		stage    messageStage
		expected string
	}{
		{
			name: "clone start",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments: []string{"clone", "--", "git@example.com:team/grass.git", "/repos/general/grass"},
			}},
			stage:    messageStageStart,
			expected: "Cloning git@example.com:team/grass.git into /repos/general/grass",
		},
		{
			name: "clone failure",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments: []string{"clone", "https://example.com/grass.git", "/repos/general/grass"},
			}},
			result:   ExecutionResult{ExitCode: 128, StandardError: "fatal: repository not found\n"},
			stage:    messageStageFailure,
			expected: "Failed to clone https://example.com/grass.git into /repos/general/grass (exit code 128: fatal: repository not found)",
		},
		{
			name: "status success",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"status", "--porcelain=v1", "-z"},
				WorkingDirectory: "/repos/general/grass",
			}},
			stage:    messageStageSuccess,
			expected: "Collected working tree status for /repos/general/grass",
		},
		{
			name: "ignored status start",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"status", "--porcelain=v1", "--ignored=matching", "-z"},
				WorkingDirectory: "/repos/general/grass",
			}},
			stage:    messageStageStart,
			expected: "Listing ignored files in /repos/general/grass",
		},
		{
			name:     "init without working directory",
			command:  ShellCommand{Name: CommandGit, Details: CommandDetails{Arguments: []string{"init"}}},
			stage:    messageStageStart,
			expected: "Initializing repository in current directory",
		},
		{
			name: "tmux execution failure",
			command: ShellCommand{Name: CommandTmux, Details: CommandDetails{
				Arguments: []string{"new-session", "-d", "-s", "grass@general", "-c", "/repos/general/grass"},
			}},
			failure:  errors.New("executable file not found"),
			stage:    messageStageExecutionFailure,
			expected: "Unable to open tmux session grass@general in /repos/general/grass: executable file not found",
		},
		{
			name: "generic git subcommand",
			command: ShellCommand{Name: CommandGit, Details: CommandDetails{
				Arguments:        []string{"log", "-1"},
				WorkingDirectory: "/repos/general/grass",
			}},
			stage:    messageStageSuccess,
			expected: "Completed git log -1 (in /repos/general/grass)",
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			require.Equal(t, testCase.expected, formatter.buildMessage(testCase.command, testCase.result, testCase.failure, testCase.stage))
		})
	}
}
