// Package git inspects, clones and cleans repository working trees.
package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/grass/internal/execshell"
	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/repos/shared"
)

const (
	gitCloneSubcommandConstant         = "clone"
	gitStatusSubcommandConstant        = "status"
	gitPorcelainFlagConstant           = "--porcelain=v1"
	gitIgnoredMatchingFlagConstant     = "--ignored=matching"
	gitNullTerminatedFlagConstant      = "-z"
	gitEndOfOptionsConstant            = "--"
	gitTerminalPromptVariableConstant  = "GIT_TERMINAL_PROMPT"
	gitTerminalPromptDisabledConstant  = "0"
	porcelainIgnoredStatusConstant     = "!!"
	porcelainStatusWidthConstant       = 3
	porcelainRenamedStatusConstant     = 'R'
	porcelainCopiedStatusConstant      = 'C'
	cleanContextTemplateConstant       = "when cleaning repository '%s'"
	cloneContextTemplateConstant       = "when cloning '%s' into repository '%s'"
	changesContextTemplateConstant     = "when reading the changes of repository '%s'"
	missingWorkTreeReasonTemplate      = "'%s' is not a git working tree"
	existingWorkTreeReasonTemplate     = "'%s' already holds a git working tree"
	removalFailureReasonTemplate       = "could not remove '%s': %v"
	ignoredEntriesRemovedMessage       = "removed ignored entries"
	logFieldRepositoryConstant         = "repository"
	logFieldRemovedCountConstant       = "removed"
	logFieldFailedCountConstant        = "failed"
	authenticationFailedMarkerConstant = "Authentication failed"
	permissionDeniedMarkerConstant     = "Permission denied"
	usernamePromptMarkerConstant       = "could not read Username"
	terminalPromptsMarkerConstant      = "terminal prompts disabled"
)

var authenticationMarkers = []string{
	authenticationFailedMarkerConstant,
	permissionDeniedMarkerConstant,
	usernamePromptMarkerConstant,
	terminalPromptsMarkerConstant,
}

// Errors returned when constructing a LocalStrategy.
var (
	ErrPathStrategyNotConfigured = errors.New("git path strategy not configured")
	ErrGitExecutorNotConfigured  = errors.New("git executor not configured")
	ErrFileSystemNotConfigured   = errors.New("git filesystem not configured")
)

// LocalStrategy drives the git executable against working trees on disk.
type LocalStrategy struct {
	executionContext context.Context
	pathStrategy     grass.PathStrategy
	executor         shared.GitExecutor
	fileSystem       shared.FileSystem
	logger           *zap.Logger
}

// NewLocalStrategy constructs a LocalStrategy. Every git process runs under executionContext.
func NewLocalStrategy(executionContext context.Context, pathStrategy grass.PathStrategy, executor shared.GitExecutor, fileSystem shared.FileSystem, logger *zap.Logger) (*LocalStrategy, error) {
	if pathStrategy == nil {
		return nil, ErrPathStrategyNotConfigured
	}
	if executor == nil {
		return nil, ErrGitExecutorNotConfigured
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if executionContext == nil {
		executionContext = context.Background()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStrategy{
		executionContext: executionContext,
		pathStrategy:     pathStrategy,
		executor:         executor,
		fileSystem:       fileSystem,
		logger:           logger,
	}, nil
}

// Clean implements grass.GitStrategy. Only entries git reports as ignored are removed; every
// removal is attempted and all failures are reported together.
func (strategy *LocalStrategy) Clean(location grass.RepositoryLocation) error {
	errorContext := fmt.Sprintf(cleanContextTemplateConstant, location)
	repositoryDirectory, resolveError := strategy.workTree(location, errorContext)
	if resolveError != nil {
		return resolveError
	}

	statusOutput, statusError := strategy.executor.ExecuteGit(strategy.executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant, gitIgnoredMatchingFlagConstant, gitNullTerminatedFlagConstant},
		WorkingDirectory: repositoryDirectory,
	})
	if statusError != nil {
		return grass.GitStrategyError{Kind: grass.GitErrorRepository, Context: errorContext, Reason: describeCommandFailure(statusError)}
	}

	var failures []string
	removedCount := 0
	for _, entry := range parsePorcelainEntries(statusOutput.StandardOutput) {
		if entry.status != porcelainIgnoredStatusConstant {
			continue
		}
		ignoredPath := filepath.Join(repositoryDirectory, filepath.FromSlash(strings.TrimSuffix(entry.path, "/")))
		if removeError := strategy.fileSystem.RemoveAll(ignoredPath); removeError != nil {
			failures = append(failures, fmt.Sprintf(removalFailureReasonTemplate, ignoredPath, removeError))
			continue
		}
		removedCount++
	}

	strategy.logger.Debug(
		ignoredEntriesRemovedMessage,
		zap.String(logFieldRepositoryConstant, location.String()),
		zap.Int(logFieldRemovedCountConstant, removedCount),
		zap.Int(logFieldFailedCountConstant, len(failures)),
	)

	if len(failures) > 0 {
		return grass.GitStrategyError{Kind: grass.GitErrorFileSystem, Context: errorContext, Reasons: failures}
	}
	return nil
}

// Clone implements grass.GitStrategy.
func (strategy *LocalStrategy) Clone(location grass.RepositoryLocation, remote string) error {
	errorContext := fmt.Sprintf(cloneContextTemplateConstant, remote, location)
	repositoryDirectory, pathError := strategy.pathStrategy.GetDirectory(location)
	if pathError != nil {
		return grass.GitStrategyError{Kind: grass.GitErrorRepositoryNotFound, Context: errorContext, Reason: pathError.Error()}
	}

	if strategy.hasWorkTree(repositoryDirectory) {
		return grass.GitStrategyError{
			Kind:    grass.GitErrorRepositoryExists,
			Context: errorContext,
			Reason:  fmt.Sprintf(existingWorkTreeReasonTemplate, repositoryDirectory),
		}
	}

	_, cloneError := strategy.executor.ExecuteGit(strategy.executionContext, execshell.CommandDetails{
		Arguments:            []string{gitCloneSubcommandConstant, gitEndOfOptionsConstant, remote, repositoryDirectory},
		EnvironmentVariables: map[string]string{gitTerminalPromptVariableConstant: gitTerminalPromptDisabledConstant},
	})
	if cloneError == nil {
		return nil
	}

	var failedError execshell.CommandFailedError
	if !errors.As(cloneError, &failedError) {
		return grass.GitStrategyError{Kind: grass.GitErrorUnknown, Context: errorContext, Reason: cloneError.Error()}
	}

	standardError := strings.TrimSpace(failedError.Result.StandardError)
	kind := grass.GitErrorRemoteFetch
	for _, marker := range authenticationMarkers {
		if strings.Contains(standardError, marker) {
			kind = grass.GitErrorRemoteAuthentication
			break
		}
	}
	return grass.GitStrategyError{Kind: kind, Context: errorContext, Reason: standardError}
}

// GetChanges implements grass.GitStrategy. The count covers every non-ignored porcelain entry,
// untracked files included.
func (strategy *LocalStrategy) GetChanges(location grass.RepositoryLocation) (grass.RepositoryChangeStatus, error) {
	errorContext := fmt.Sprintf(changesContextTemplateConstant, location)
	repositoryDirectory, pathError := strategy.pathStrategy.GetDirectory(location)
	if pathError != nil {
		return grass.UnknownStatus(), grass.GitStrategyError{Kind: grass.GitErrorRepositoryNotFound, Context: errorContext, Reason: pathError.Error()}
	}

	if !strategy.hasWorkTree(repositoryDirectory) {
		return grass.NoRepository(), nil
	}

	statusOutput, statusError := strategy.executor.ExecuteGit(strategy.executionContext, execshell.CommandDetails{
		Arguments:        []string{gitStatusSubcommandConstant, gitPorcelainFlagConstant, gitNullTerminatedFlagConstant},
		WorkingDirectory: repositoryDirectory,
	})
	if statusError != nil {
		return grass.UnknownStatus(), grass.GitStrategyError{Kind: grass.GitErrorRepository, Context: errorContext, Reason: describeCommandFailure(statusError)}
	}

	changeCount := 0
	for _, entry := range parsePorcelainEntries(statusOutput.StandardOutput) {
		if entry.status != porcelainIgnoredStatusConstant {
			changeCount++
		}
	}
	if changeCount == 0 {
		return grass.UpToDate(), nil
	}
	return grass.UncommittedChanges(changeCount), nil
}

func (strategy *LocalStrategy) workTree(location grass.RepositoryLocation, errorContext string) (string, error) {
	repositoryDirectory, pathError := strategy.pathStrategy.GetDirectory(location)
	if pathError != nil {
		return "", grass.GitStrategyError{Kind: grass.GitErrorRepositoryNotFound, Context: errorContext, Reason: pathError.Error()}
	}
	if !strategy.hasWorkTree(repositoryDirectory) {
		return "", grass.GitStrategyError{
			Kind:    grass.GitErrorRepositoryNotFound,
			Context: errorContext,
			Reason:  fmt.Sprintf(missingWorkTreeReasonTemplate, repositoryDirectory),
		}
	}
	return repositoryDirectory, nil
}

func (strategy *LocalStrategy) hasWorkTree(repositoryDirectory string) bool {
	_, statError := strategy.fileSystem.Lstat(filepath.Join(repositoryDirectory, shared.GitMetadataDirectoryNameConstant))
	return statError == nil
}

type porcelainEntry struct {
	status string
	path   string
}

// parsePorcelainEntries decodes `git status --porcelain=v1 -z` output. Rename and copy records
// carry their source path in the following field, which is consumed and not reported.
func parsePorcelainEntries(output string) []porcelainEntry {
	fields := bytes.Split([]byte(output), []byte{0})
	entries := make([]porcelainEntry, 0, len(fields))
	for index := 0; index < len(fields); index++ {
		field := string(fields[index])
		if len(field) < porcelainStatusWidthConstant {
			continue
		}
		status := field[:2]
		entries = append(entries, porcelainEntry{status: status, path: field[porcelainStatusWidthConstant:]})
		if status[0] == porcelainRenamedStatusConstant || status[0] == porcelainCopiedStatusConstant {
			index++
		}
	}
	return entries
}

func describeCommandFailure(commandError error) string {
	var failedError execshell.CommandFailedError
	if errors.As(commandError, &failedError) {
		if standardError := strings.TrimSpace(failedError.Result.StandardError); len(standardError) > 0 {
			return standardError
		}
	}
	return commandError.Error()
}
