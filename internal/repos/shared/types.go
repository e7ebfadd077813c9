package shared

import (
	"context"
	"io/fs"

	"github.com/temirov/grass/internal/execshell"
)

const (
	// GitMetadataDirectoryNameConstant names the directory marking a git working tree.
	GitMetadataDirectoryNameConstant = ".git"
	// RepositoryDirectoryPermissionsConstant is applied to created category and repository directories.
	RepositoryDirectoryPermissionsConstant = fs.FileMode(0o755)
)

// FileSystem exposes the filesystem operations required by the local strategies. Rename never
// replaces an existing destination and reports fs.ErrExist instead.
type FileSystem interface {
	Stat(path string) (fs.FileInfo, error)
	Lstat(path string) (fs.FileInfo, error)
	ReadDir(path string) ([]fs.DirEntry, error)
	Rename(oldPath string, newPath string) error
	Mkdir(path string, permissions fs.FileMode) error
	MkdirAll(path string, permissions fs.FileMode) error
	Remove(path string) error
	RemoveAll(path string) error
	ReadFile(path string) ([]byte, error)
}

// GitExecutor exposes the subset of shell execution used by the git strategy.
type GitExecutor interface {
	ExecuteGit(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}

// TmuxExecutor exposes the subset of shell execution used to open sessions.
type TmuxExecutor interface {
	ExecuteTmux(executionContext context.Context, details execshell.CommandDetails) (execshell.ExecutionResult, error)
}
