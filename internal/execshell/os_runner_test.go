package execshell

import (
	"context"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMergeEnvironmentAppendsSortedOverrides(t *testing.T) {
	merged := mergeEnvironment([]string{"HOME=/home/example"}, map[string]string{
		"GIT_TERMINAL_PROMPT": "0",
		"A_VARIABLE":          "1",
	})
	require.Equal(t, []string{"HOME=/home/example", "A_VARIABLE=1", "GIT_TERMINAL_PROMPT=0"}, merged)
}

func TestOSCommandRunnerReportsExitCode(t *testing.T) {
	if _, lookupError := exec.LookPath(string(CommandGit)); lookupError != nil {
		t.Skip("git executable not available")
	}

	result, runError := NewOSCommandRunner().Run(context.Background(), ShellCommand{
		Name:    CommandGit,
		Details: CommandDetails{Arguments: []string{"no-such-subcommand"}, WorkingDirectory: t.TempDir()},
	})
	require.NoError(t, runError)
	require.NotZero(t, result.ExitCode)
	require.NotEmpty(t, result.StandardError)
}
