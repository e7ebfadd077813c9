// Package fixture describes the deterministic category tree served by the mock strategies.
package fixture

import "path/filepath"

// Fixture categories, repositories, aliases and remotes.
const (
	BaseDirectory           = "/home/example/repositories"
	CategoryAllGood         = "all_good"
	CategoryWithChanges     = "with_changes"
	CategoryWithError       = "with_error"
	RepositoryFirst         = "first"
	RepositorySecond        = "second"
	RepositoryThird         = "third"
	AliasAllGood            = "allg"
	AliasWithChanges        = "change"
	AliasWithError          = "err"
	RemoteGood              = "good_remote"
	RemoteNoAccess          = "no_access"
	RemoteBadResponse       = "bad_response"
	UncommittedChangeCount  = 9
	RepositoryErrorReason   = "invalid repository"
	FileSystemErrorReason   = "insufficient permission"
	RemoteNoAccessReason    = "no access to remote"
	RemoteBadResponseReason = "remote returned an invalid response"
	RemoteUnknownReason     = "remote could not be reached"
)

// RepositoryState selects how the mock git strategy answers for one repository.
type RepositoryState int

// Repository states.
const (
	RepositoryStateClean RepositoryState = iota
	RepositoryStateNoRepository
	RepositoryStateUncommittedChanges
	RepositoryStateRepositoryError
	RepositoryStateFileSystemError
)

// Repository is one fixture repository.
type Repository struct {
	Name  string
	State RepositoryState
}

// Category is one fixture category.
type Category struct {
	Name         string
	Aliases      []string
	Repositories []Repository
}

// Categories returns a fresh copy of the fixture tree in a stable order.
func Categories() []Category {
	return []Category{
		{
			Name:    CategoryAllGood,
			Aliases: []string{AliasAllGood},
			Repositories: []Repository{
				{Name: RepositoryFirst, State: RepositoryStateClean},
				{Name: RepositorySecond, State: RepositoryStateClean},
				{Name: RepositoryThird, State: RepositoryStateClean},
			},
		},
		{
			Name:    CategoryWithChanges,
			Aliases: []string{AliasWithChanges},
			Repositories: []Repository{
				{Name: RepositoryFirst, State: RepositoryStateClean},
				{Name: RepositorySecond, State: RepositoryStateNoRepository},
				{Name: RepositoryThird, State: RepositoryStateUncommittedChanges},
			},
		},
		{
			Name:    CategoryWithError,
			Aliases: []string{AliasWithError},
			Repositories: []Repository{
				{Name: RepositoryFirst, State: RepositoryStateRepositoryError},
				{Name: RepositorySecond, State: RepositoryStateFileSystemError},
			},
		},
	}
}

// LookupCategory finds a fixture category by exact name.
func LookupCategory(categoryName string) (Category, bool) {
	for _, category := range Categories() {
		if category.Name == categoryName {
			return category, true
		}
	}
	return Category{}, false
}

// LookupRepository finds a fixture repository. categoryFound distinguishes a missing category
// from a missing repository.
func LookupRepository(categoryName string, repositoryName string) (repository Repository, categoryFound bool, repositoryFound bool) {
	category, categoryExists := LookupCategory(categoryName)
	if !categoryExists {
		return Repository{}, false, false
	}
	for _, candidate := range category.Repositories {
		if candidate.Name == repositoryName {
			return candidate, true, true
		}
	}
	return Repository{}, true, false
}

// CategoryDirectory returns the fixture path for a category.
func CategoryDirectory(categoryName string) string {
	return filepath.Join(BaseDirectory, categoryName)
}
