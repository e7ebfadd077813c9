// Package session opens tmux sessions rooted at repository directories.
package session

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/grass/cmd/cli/repos"
	"github.com/temirov/grass/internal/execshell"
	"github.com/temirov/grass/internal/repos/dependencies"
	"github.com/temirov/grass/internal/repos/shared"
)

const (
	sessionUseConstant             = "session <category> <repository>"
	sessionShortDescription        = "Open a detached tmux session in a repository"
	sessionLongDescription         = "session starts a detached tmux session named repository@category whose working directory is the repository, and prints the session name."
	tmuxNewSessionArgumentConstant = "new-session"
	tmuxDetachedFlagConstant       = "-d"
	tmuxSessionNameFlagConstant    = "-s"
	tmuxStartDirectoryFlagConstant = "-c"
	sessionOutputTemplateConstant  = "%s\n"
	sessionOpenedMessageConstant   = "opened tmux session"
	logFieldSessionConstant        = "session"
	logFieldDirectoryConstant      = "directory"
	sessionFailureTemplateConstant = "open tmux session %s: %w"
)

// CommandBuilder assembles the session command.
type CommandBuilder struct {
	repos.Providers
	HumanReadableLoggingProvider func() bool
	TmuxExecutor                 shared.TmuxExecutor
}

// Build constructs the session command.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   sessionUseConstant,
		Short: sessionShortDescription,
		Long:  sessionLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE:  builder.run,
	}, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	categoryInput, repository := arguments[0], arguments[1]

	repositoryApi, apiError := repos.ResolveApi(command, builder.ApiProvider)
	if apiError != nil {
		return apiError
	}

	location, verifyError := repositoryApi.VerifyRepositoryExists(categoryInput, repository)
	if verifyError != nil {
		return repos.DecorateCategoryError(repositoryApi, categoryInput, verifyError)
	}
	directory, pathError := repositoryApi.GetRepositoryPath(categoryInput, repository)
	if pathError != nil {
		return pathError
	}

	logger := repos.ResolveLogger(builder.LoggerProvider)
	humanReadableLogging := builder.HumanReadableLoggingProvider != nil && builder.HumanReadableLoggingProvider()
	tmuxExecutor, executorError := dependencies.ResolveTmuxExecutor(builder.TmuxExecutor, logger, humanReadableLogging)
	if executorError != nil {
		return executorError
	}

	sessionName := location.SessionString()
	details := execshell.CommandDetails{
		Arguments: []string{
			tmuxNewSessionArgumentConstant,
			tmuxDetachedFlagConstant,
			tmuxSessionNameFlagConstant, sessionName,
			tmuxStartDirectoryFlagConstant, directory,
		},
	}
	if _, executionError := tmuxExecutor.ExecuteTmux(command.Context(), details); executionError != nil {
		return fmt.Errorf(sessionFailureTemplateConstant, sessionName, executionError)
	}

	logger.Info(sessionOpenedMessageConstant, zap.String(logFieldSessionConstant, sessionName), zap.String(logFieldDirectoryConstant, directory))
	_, writeError := fmt.Fprintf(command.OutOrStdout(), sessionOutputTemplateConstant, sessionName)
	return writeError
}
