// Package changes aggregates working-tree change status across repositories. Failures are folded
// into the results instead of aborting the aggregation.
package changes

import (
	"slices"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/alias"
)

// GetRepositoryChangeStatus resolves the category and asks git for the status of one repository.
func GetRepositoryChangeStatus(aliasStrategy grass.AliasStrategy, gitStrategy grass.GitStrategy, categoryInput string, repository string) grass.ChangeStatusResult {
	location, locationError := alias.ResolveLocation(aliasStrategy, categoryInput, repository)
	if locationError != nil {
		return grass.ChangeStatusFromError(nil, locationError.Error())
	}
	return changeStatusOf(gitStrategy, location)
}

// ListChangeStatusInCategory reports the status of every repository in a category. Entries that
// failed to enumerate are reported as failed results without a location. A category that cannot be
// enumerated is returned as an error.
func ListChangeStatusInCategory(aliasStrategy grass.AliasStrategy, discoveryStrategy grass.DiscoveryStrategy, gitStrategy grass.GitStrategy, categoryInput string) ([]grass.ChangeStatusResult, error) {
	category := alias.ResolveCategory(aliasStrategy, categoryInput)
	repositories, listError := discoveryStrategy.ListRepositoriesInCategory(string(category))
	if listError != nil {
		return nil, grass.Wrap(listError)
	}
	return collectChangeStatus(gitStrategy, repositories), nil
}

// ListAllChangeStatus reports the status of every repository in every configured category.
// Categories that cannot be enumerated are skipped.
func ListAllChangeStatus(aliasStrategy grass.AliasStrategy, discoveryStrategy grass.DiscoveryStrategy, gitStrategy grass.GitStrategy) []grass.ChangeStatusResult {
	categories, listError := discoveryStrategy.ListCategories()
	if listError != nil {
		return nil
	}

	var results []grass.ChangeStatusResult
	for _, categoryName := range categories {
		categoryResults, categoryError := ListChangeStatusInCategory(aliasStrategy, discoveryStrategy, gitStrategy, categoryName)
		if categoryError != nil {
			continue
		}
		results = append(results, categoryResults...)
	}
	return results
}

// UncommittedOnly drops the UpToDate results. Failures and repositories without a working tree
// are kept.
func UncommittedOnly(results []grass.ChangeStatusResult) []grass.ChangeStatusResult {
	return slices.DeleteFunc(slices.Clone(results), grass.ChangeStatusResult.IsUpToDate)
}

// SortByLocation orders results by category then repository. Unresolved locations sort first.
func SortByLocation(results []grass.ChangeStatusResult) {
	slices.SortStableFunc(results, func(first grass.ChangeStatusResult, second grass.ChangeStatusResult) int {
		switch {
		case first.Location == nil && second.Location == nil:
			return 0
		case first.Location == nil:
			return -1
		case second.Location == nil:
			return 1
		case first.Location.Less(*second.Location):
			return -1
		case second.Location.Less(*first.Location):
			return 1
		default:
			return 0
		}
	})
}

func collectChangeStatus(gitStrategy grass.GitStrategy, repositories grass.RepositoryResults) []grass.ChangeStatusResult {
	var results []grass.ChangeStatusResult
	for location, entryError := range repositories.All() {
		if entryError != nil {
			results = append(results, grass.ChangeStatusFromError(nil, entryError.Error()))
			continue
		}
		results = append(results, changeStatusOf(gitStrategy, location))
	}
	return results
}

func changeStatusOf(gitStrategy grass.GitStrategy, location grass.RepositoryLocation) grass.ChangeStatusResult {
	status, statusError := gitStrategy.GetChanges(location)
	if statusError != nil {
		return grass.ChangeStatusFromError(&location, statusError.Error())
	}
	return grass.ChangeStatusFromStatus(location, status)
}
