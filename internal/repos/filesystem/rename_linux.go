//go:build linux

package filesystem

import (
	"errors"
	"os"

	"golang.org/x/sys/unix"
)

func renameNoReplace(oldPath string, newPath string) error {
	renameError := unix.Renameat2(unix.AT_FDCWD, oldPath, unix.AT_FDCWD, newPath, unix.RENAME_NOREPLACE)
	switch {
	case renameError == nil:
		return nil
	case errors.Is(renameError, unix.ENOSYS), errors.Is(renameError, unix.EINVAL):
		// kernel or filesystem without RENAME_NOREPLACE
		return renameChecked(oldPath, newPath)
	default:
		return &os.LinkError{Op: renameOperationConstant, Old: oldPath, New: newPath, Err: renameError}
	}
}
