package execshell

import (
	"fmt"
	"strings"
)

type messageStage int

const (
	messageStageStart messageStage = iota
	messageStageSuccess
	messageStageFailure
	messageStageExecutionFailure
)

const (
	genericStartTemplateConstant            = "Running %s"
	genericSuccessTemplateConstant          = "Completed %s"
	genericFailureTemplateConstant          = "%s failed with exit code %d%s"
	genericExecutionFailureTemplateConstant = "%s failed: %s"
	commandLabelTemplateConstant            = "%s%s"
	commandWithArgumentsTemplateConstant    = "%s %s"
	workingDirectorySuffixTemplateConstant  = " (in %s)"
	commandArgumentsJoinSeparatorConstant   = " "
	standardErrorSuffixTemplateConstant     = ": %s"
	unknownFailureMessageConstant           = "unknown error"
	emptyStringConstant                     = ""
	defaultWorkingDirectoryLabelConstant    = "current directory"
	fallbackUnknownValueLabelConstant       = "unknown"
	flagPrefixConstant                      = "-"
)

const (
	gitCloneSubcommandNameConstant   = "clone"
	gitStatusSubcommandNameConstant  = "status"
	gitInitSubcommandNameConstant    = "init"
	gitIgnoredFlagPrefixConstant     = "--ignored"
	tmuxNewSessionSubcommandConstant = "new-session"
	tmuxSessionNameFlagConstant      = "-s"
	tmuxStartDirectoryFlagConstant   = "-c"
)

const (
	gitCloneStartTemplateConstant                    = "Cloning %s into %s"
	gitCloneSuccessTemplateConstant                  = "Cloned %s into %s"
	gitCloneFailureTemplateConstant                  = "Failed to clone %s into %s (exit code %d%s)"
	gitCloneExecutionFailureTemplateConstant         = "Unable to clone %s into %s: %s"
	gitStatusStartTemplateConstant                   = "Reviewing working tree status in %s"
	gitStatusSuccessTemplateConstant                 = "Collected working tree status for %s"
	gitStatusFailureTemplateConstant                 = "Failed to review working tree status in %s (exit code %d%s)"
	gitStatusExecutionFailureTemplateConstant        = "Unable to review working tree status in %s: %s"
	gitIgnoredStatusStartTemplateConstant            = "Listing ignored files in %s"
	gitIgnoredStatusSuccessTemplateConstant          = "Listed ignored files in %s"
	gitIgnoredStatusFailureTemplateConstant          = "Failed to list ignored files in %s (exit code %d%s)"
	gitIgnoredStatusExecutionFailureTemplateConstant = "Unable to list ignored files in %s: %s"
	gitInitStartTemplateConstant                     = "Initializing repository in %s"
	gitInitSuccessTemplateConstant                   = "Initialized repository in %s"
	gitInitFailureTemplateConstant                   = "Failed to initialize repository in %s (exit code %d%s)"
	gitInitExecutionFailureTemplateConstant          = "Unable to initialize repository in %s: %s"
	tmuxNewSessionStartTemplateConstant              = "Opening tmux session %s in %s"
	tmuxNewSessionSuccessTemplateConstant            = "Opened tmux session %s in %s"
	tmuxNewSessionFailureTemplateConstant            = "Failed to open tmux session %s in %s (exit code %d%s)"
	tmuxNewSessionExecutionFailureTemplateConstant   = "Unable to open tmux session %s in %s: %s"
)

// stageTemplates holds one template per lifecycle stage for a recognized command. Start and
// success templates receive the subject values; failure templates additionally receive the exit
// code and standard error suffix, execution failure templates the failure description.
type stageTemplates struct {
	start            string
	success          string
	failure          string
	executionFailure string
}

// CommandMessageFormatter builds human-readable messages for command lifecycle events.
type CommandMessageFormatter struct{}

// BuildStartedMessage formats the message describing a command about to run.
func (formatter CommandMessageFormatter) BuildStartedMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageStart)
}

// BuildSuccessMessage formats the message describing a completed command with a zero exit code.
func (formatter CommandMessageFormatter) BuildSuccessMessage(command ShellCommand) string {
	return formatter.buildMessage(command, ExecutionResult{}, nil, messageStageSuccess)
}

// BuildFailureMessage formats the message describing a command that returned a non-zero exit code.
func (formatter CommandMessageFormatter) BuildFailureMessage(command ShellCommand, result ExecutionResult) string {
	return formatter.buildMessage(command, result, nil, messageStageFailure)
}

// BuildExecutionFailureMessage formats the message describing an unexpected execution failure.
func (formatter CommandMessageFormatter) BuildExecutionFailureMessage(command ShellCommand, failure error) string {
	return formatter.buildMessage(command, ExecutionResult{}, failure, messageStageExecutionFailure)
}

func (formatter CommandMessageFormatter) buildMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	switch command.Name {
	case CommandGit:
		return formatter.describeGitMessage(command, result, failure, stage)
	case CommandTmux:
		return formatter.describeTmuxMessage(command, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeGitMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	workingDirectory := formatter.describeWorkingDirectory(command)
	switch strings.TrimSpace(arguments[0]) {
	case gitCloneSubcommandNameConstant:
		positional := formatter.positionalArguments(arguments[1:])
		remote := formatter.ensureValue(formatter.argumentAtIndex(positional, 0))
		destination := formatter.argumentAtIndex(positional, 1)
		if len(destination) == 0 {
			destination = workingDirectory
		}
		return formatter.renderStage(stageTemplates{
			start:            gitCloneStartTemplateConstant,
			success:          gitCloneSuccessTemplateConstant,
			failure:          gitCloneFailureTemplateConstant,
			executionFailure: gitCloneExecutionFailureTemplateConstant,
		}, []any{remote, destination}, result, failure, stage)
	case gitStatusSubcommandNameConstant:
		templates := stageTemplates{
			start:            gitStatusStartTemplateConstant,
			success:          gitStatusSuccessTemplateConstant,
			failure:          gitStatusFailureTemplateConstant,
			executionFailure: gitStatusExecutionFailureTemplateConstant,
		}
		if containsArgumentPrefix(arguments, gitIgnoredFlagPrefixConstant) {
			templates = stageTemplates{
				start:            gitIgnoredStatusStartTemplateConstant,
				success:          gitIgnoredStatusSuccessTemplateConstant,
				failure:          gitIgnoredStatusFailureTemplateConstant,
				executionFailure: gitIgnoredStatusExecutionFailureTemplateConstant,
			}
		}
		return formatter.renderStage(templates, []any{workingDirectory}, result, failure, stage)
	case gitInitSubcommandNameConstant:
		return formatter.renderStage(stageTemplates{
			start:            gitInitStartTemplateConstant,
			success:          gitInitSuccessTemplateConstant,
			failure:          gitInitFailureTemplateConstant,
			executionFailure: gitInitExecutionFailureTemplateConstant,
		}, []any{workingDirectory}, result, failure, stage)
	default:
		return formatter.buildGenericMessage(command, result, failure, stage)
	}
}

func (formatter CommandMessageFormatter) describeTmuxMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	arguments := command.Details.Arguments
	if len(arguments) == 0 || strings.TrimSpace(arguments[0]) != tmuxNewSessionSubcommandConstant {
		return formatter.buildGenericMessage(command, result, failure, stage)
	}

	sessionName := formatter.ensureValue(findFlagValue(arguments, tmuxSessionNameFlagConstant))
	startDirectory := findFlagValue(arguments, tmuxStartDirectoryFlagConstant)
	if len(startDirectory) == 0 {
		startDirectory = formatter.describeWorkingDirectory(command)
	}
	return formatter.renderStage(stageTemplates{
		start:            tmuxNewSessionStartTemplateConstant,
		success:          tmuxNewSessionSuccessTemplateConstant,
		failure:          tmuxNewSessionFailureTemplateConstant,
		executionFailure: tmuxNewSessionExecutionFailureTemplateConstant,
	}, []any{sessionName, startDirectory}, result, failure, stage)
}

func (formatter CommandMessageFormatter) renderStage(templates stageTemplates, subjects []any, result ExecutionResult, failure error, stage messageStage) string {
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(templates.start, subjects...)
	case messageStageSuccess:
		return fmt.Sprintf(templates.success, subjects...)
	case messageStageFailure:
		values := append(append([]any{}, subjects...), result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
		return fmt.Sprintf(templates.failure, values...)
	case messageStageExecutionFailure:
		values := append(append([]any{}, subjects...), formatter.describeFailure(failure))
		return fmt.Sprintf(templates.executionFailure, values...)
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) buildGenericMessage(command ShellCommand, result ExecutionResult, failure error, stage messageStage) string {
	commandLabel := formatter.formatCommandLabel(command)
	switch stage {
	case messageStageStart:
		return fmt.Sprintf(genericStartTemplateConstant, commandLabel)
	case messageStageSuccess:
		return fmt.Sprintf(genericSuccessTemplateConstant, commandLabel)
	case messageStageFailure:
		return fmt.Sprintf(genericFailureTemplateConstant, commandLabel, result.ExitCode, formatter.formatStandardErrorSuffix(result.StandardError))
	case messageStageExecutionFailure:
		return fmt.Sprintf(genericExecutionFailureTemplateConstant, commandLabel, formatter.describeFailure(failure))
	default:
		return emptyStringConstant
	}
}

func (formatter CommandMessageFormatter) formatCommandLabel(command ShellCommand) string {
	commandLabel := string(command.Name)
	if len(command.Details.Arguments) > 0 {
		commandLabel = fmt.Sprintf(commandWithArgumentsTemplateConstant, commandLabel, strings.Join(command.Details.Arguments, commandArgumentsJoinSeparatorConstant))
	}
	return fmt.Sprintf(commandLabelTemplateConstant, commandLabel, formatter.formatWorkingDirectorySuffix(command))
}

func (formatter CommandMessageFormatter) formatWorkingDirectorySuffix(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(workingDirectorySuffixTemplateConstant, trimmedWorkingDirectory)
}

func (formatter CommandMessageFormatter) formatStandardErrorSuffix(standardError string) string {
	trimmedStandardError := strings.TrimSpace(standardError)
	if len(trimmedStandardError) == 0 {
		return emptyStringConstant
	}
	return fmt.Sprintf(standardErrorSuffixTemplateConstant, trimmedStandardError)
}

func (formatter CommandMessageFormatter) describeWorkingDirectory(command ShellCommand) string {
	trimmedWorkingDirectory := strings.TrimSpace(command.Details.WorkingDirectory)
	if len(trimmedWorkingDirectory) == 0 {
		return defaultWorkingDirectoryLabelConstant
	}
	return trimmedWorkingDirectory
}

func (formatter CommandMessageFormatter) describeFailure(failure error) string {
	if failure == nil {
		return unknownFailureMessageConstant
	}
	return failure.Error()
}

func (formatter CommandMessageFormatter) positionalArguments(arguments []string) []string {
	positional := make([]string, 0, len(arguments))
	for _, argument := range arguments {
		trimmedArgument := strings.TrimSpace(argument)
		if len(trimmedArgument) == 0 || strings.HasPrefix(trimmedArgument, flagPrefixConstant) {
			continue
		}
		positional = append(positional, trimmedArgument)
	}
	return positional
}

func (formatter CommandMessageFormatter) argumentAtIndex(arguments []string, index int) string {
	if index < 0 || index >= len(arguments) {
		return emptyStringConstant
	}
	return arguments[index]
}

func (formatter CommandMessageFormatter) ensureValue(value string) string {
	if len(strings.TrimSpace(value)) == 0 {
		return fallbackUnknownValueLabelConstant
	}
	return value
}

func containsArgumentPrefix(arguments []string, prefix string) bool {
	for _, argument := range arguments {
		if strings.HasPrefix(strings.TrimSpace(argument), prefix) {
			return true
		}
	}
	return false
}

func findFlagValue(arguments []string, flag string) string {
	for index := 0; index < len(arguments)-1; index++ {
		if strings.TrimSpace(arguments[index]) == flag {
			return strings.TrimSpace(arguments[index+1])
		}
	}
	return emptyStringConstant
}
