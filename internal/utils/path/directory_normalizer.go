package pathutils

import (
	"path/filepath"
	"strings"
)

// DirectoryNormalizer turns configured directory values into clean absolute paths.
type DirectoryNormalizer struct {
	homeExpander *HomeExpander
}

// NewDirectoryNormalizer constructs a DirectoryNormalizer. A nil expander uses the OS home lookup.
func NewDirectoryNormalizer(homeExpander *HomeExpander) *DirectoryNormalizer {
	if homeExpander == nil {
		homeExpander = NewHomeExpander()
	}
	return &DirectoryNormalizer{homeExpander: homeExpander}
}

// Normalize trims whitespace, expands the home shortcut and cleans the result. Relative paths are
// made absolute against the working directory. Blank input stays blank.
func (normalizer *DirectoryNormalizer) Normalize(candidate string) string {
	trimmedCandidate := strings.TrimSpace(candidate)
	if len(trimmedCandidate) == 0 {
		return ""
	}

	expandedPath := normalizer.homeExpander.Expand(trimmedCandidate)
	absolutePath, absoluteError := filepath.Abs(expandedPath)
	if absoluteError != nil {
		return filepath.Clean(expandedPath)
	}
	return absolutePath
}
