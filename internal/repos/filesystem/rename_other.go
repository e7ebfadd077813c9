//go:build !linux

package filesystem

func renameNoReplace(oldPath string, newPath string) error {
	return renameChecked(oldPath, newPath)
}
