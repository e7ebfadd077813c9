package dependencies

import (
	"go.uber.org/zap"

	"github.com/temirov/grass/internal/execshell"
	"github.com/temirov/grass/internal/repos/filesystem"
	"github.com/temirov/grass/internal/repos/shared"
)

// ResolveFileSystem returns the provided filesystem or an OS-backed default.
func ResolveFileSystem(existing shared.FileSystem) shared.FileSystem {
	if existing != nil {
		return existing
	}
	return filesystem.OSFileSystem{}
}

// ResolveShellExecutor returns the provided executor or constructs one over os/exec.
func ResolveShellExecutor(existing *execshell.ShellExecutor, logger *zap.Logger, humanReadableLogging bool) (*execshell.ShellExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return execshell.NewShellExecutor(logger, execshell.NewOSCommandRunner(), humanReadableLogging)
}

// ResolveGitExecutor returns the provided executor or constructs a shell-backed default.
func ResolveGitExecutor(existing shared.GitExecutor, logger *zap.Logger) (shared.GitExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	shellExecutor, creationError := ResolveShellExecutor(nil, logger, false)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}

// ResolveTmuxExecutor returns the provided executor or constructs a shell-backed default.
func ResolveTmuxExecutor(existing shared.TmuxExecutor, logger *zap.Logger, humanReadableLogging bool) (shared.TmuxExecutor, error) {
	if existing != nil {
		return existing, nil
	}
	shellExecutor, creationError := ResolveShellExecutor(nil, logger, humanReadableLogging)
	if creationError != nil {
		return nil, creationError
	}
	return shellExecutor, nil
}
