// Package pathutils expands and normalizes the directories named in configuration files.
package pathutils

import (
	"os"
	"path/filepath"
	"strings"
	"sync"
)

const homeShortcutConstant = "~"

// HomeDirectoryProvider resolves the current user's home directory.
type HomeDirectoryProvider func() (string, error)

// HomeExpander replaces a leading "~" with the home directory. The directory is looked up once.
type HomeExpander struct {
	provider      HomeDirectoryProvider
	lookupOnce    sync.Once
	homeDirectory string
	lookupFailed  bool
}

// NewHomeExpander constructs a HomeExpander backed by os.UserHomeDir.
func NewHomeExpander() *HomeExpander {
	return NewHomeExpanderWithProvider(nil)
}

// NewHomeExpanderWithProvider constructs a HomeExpander with a custom lookup.
func NewHomeExpanderWithProvider(provider HomeDirectoryProvider) *HomeExpander {
	if provider == nil {
		provider = os.UserHomeDir
	}
	return &HomeExpander{provider: provider}
}

// Expand resolves "~" and "~/..." prefixes. Paths naming another user's home ("~other") and paths
// without a prefix are returned unchanged, as is everything when the home directory is unknown.
func (expander *HomeExpander) Expand(candidatePath string) string {
	if expander == nil || !strings.HasPrefix(candidatePath, homeShortcutConstant) {
		return candidatePath
	}

	remainder := strings.TrimPrefix(candidatePath, homeShortcutConstant)
	if len(remainder) > 0 && remainder[0] != '/' && remainder[0] != os.PathSeparator {
		return candidatePath
	}

	homeDirectory, known := expander.lookup()
	if !known {
		return candidatePath
	}
	return filepath.Join(homeDirectory, strings.TrimLeft(remainder, "/"+string(os.PathSeparator)))
}

func (expander *HomeExpander) lookup() (string, bool) {
	expander.lookupOnce.Do(func() {
		homeDirectory, lookupError := expander.provider()
		expander.homeDirectory = homeDirectory
		expander.lookupFailed = lookupError != nil || len(homeDirectory) == 0
	})
	return expander.homeDirectory, !expander.lookupFailed
}
