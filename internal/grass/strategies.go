package grass

import "iter"

// AliasStrategy resolves short aliases to canonical category names.
type AliasStrategy interface {
	ListAllAliases() ([]Alias, error)
	ListAliasesForCategory(categoryName string) ([]Alias, error)
	// ResolveAlias never fails: input that matches no alias is returned unchanged.
	ResolveAlias(input string) ResolveAliasResult
}

// PathStrategy maps locations to directories without requiring them to exist.
type PathStrategy interface {
	GetContainingDirectory(location RepositoryLocation) (string, error)
	GetDirectory(location RepositoryLocation) (string, error)
}

// DiscoveryStrategy enumerates and mutates the category/repository directory tree.
type DiscoveryStrategy interface {
	CheckRepositoryExists(location RepositoryLocation) (DiscoveryExists, error)
	CheckCategoryExists(categoryName string) (DiscoveryExists, error)
	ListRepositoriesInCategory(categoryName string) (RepositoryResults, error)
	ListCategories() ([]string, error)
	CreateRepository(location RepositoryLocation) error
	MoveRepository(oldLocation RepositoryLocation, newLocation RepositoryLocation) error
}

// GitStrategy performs git operations against one working tree.
type GitStrategy interface {
	Clean(location RepositoryLocation) error
	Clone(location RepositoryLocation, remote string) error
	GetChanges(location RepositoryLocation) (RepositoryChangeStatus, error)
}

// RepositoryResults is a finite, restartable sequence of repositories. Every call to All starts a
// fresh enumeration; per-entry failures are yielded alongside the zero location.
type RepositoryResults struct {
	source func(yield func(RepositoryLocation, error) bool)
}

// NewRepositoryResults wraps an enumeration function. The function is invoked once per iteration.
func NewRepositoryResults(source func(yield func(RepositoryLocation, error) bool)) RepositoryResults {
	return RepositoryResults{source: source}
}

// RepositoryResultsFromSlice builds a sequence over a fixed set of locations.
func RepositoryResultsFromSlice(locations []RepositoryLocation) RepositoryResults {
	duplicatedLocations := append([]RepositoryLocation{}, locations...)
	return NewRepositoryResults(func(yield func(RepositoryLocation, error) bool) {
		for _, location := range duplicatedLocations {
			if !yield(location, nil) {
				return
			}
		}
	})
}

// All returns the sequence for use with range-over-func.
func (results RepositoryResults) All() iter.Seq2[RepositoryLocation, error] {
	return func(yield func(RepositoryLocation, error) bool) {
		if results.source == nil {
			return
		}
		results.source(yield)
	}
}

// Collect materializes one enumeration into successful locations and per-entry failures.
func (results RepositoryResults) Collect() ([]RepositoryLocation, []error) {
	var locations []RepositoryLocation
	var failures []error
	for location, entryError := range results.All() {
		if entryError != nil {
			failures = append(failures, entryError)
			continue
		}
		locations = append(locations, location)
	}
	return locations, failures
}

// Locations materializes one enumeration and drops per-entry failures.
func (results RepositoryResults) Locations() []RepositoryLocation {
	locations, _ := results.Collect()
	return locations
}
