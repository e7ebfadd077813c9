// Package api bundles one strategy per capability and exposes the alias-resolving operations the
// command line builds on.
package api

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/alias"
	"github.com/temirov/grass/internal/grass/catalog"
	"github.com/temirov/grass/internal/grass/discovery"
	gitstrategy "github.com/temirov/grass/internal/grass/git"
	pathstrategy "github.com/temirov/grass/internal/grass/path"
	"github.com/temirov/grass/internal/repos/dependencies"
	"github.com/temirov/grass/internal/repos/shared"
)

const (
	remotePathSeparatorConstant      = "/"
	remoteSchemeSeparatorConstant    = ":"
	remoteGitSuffixConstant          = ".git"
	missingRepositoryContextTemplate = "when verifying repository '%s'"
	missingRepositoryReason          = "no directory exists for the repository"
)

// Api holds the strategies used by every operation.
type Api struct {
	Alias     grass.AliasStrategy
	Path      grass.PathStrategy
	Discovery grass.DiscoveryStrategy
	Git       grass.GitStrategy
}

// New bundles the supplied strategies.
func New(aliasStrategy grass.AliasStrategy, pathStrategy grass.PathStrategy, discoveryStrategy grass.DiscoveryStrategy, gitStrategy grass.GitStrategy) *Api {
	return &Api{
		Alias:     aliasStrategy,
		Path:      pathStrategy,
		Discovery: discoveryStrategy,
		Git:       gitStrategy,
	}
}

// NewLocal builds the strategies operating on the local filesystem and the git executable.
// executor may be nil, in which case an os/exec-backed executor is constructed.
func NewLocal(executionContext context.Context, categoryCatalog *catalog.Catalog, executor shared.GitExecutor, logger *zap.Logger) (*Api, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	fileSystem := dependencies.ResolveFileSystem(nil)

	gitExecutor, executorError := dependencies.ResolveGitExecutor(executor, logger)
	if executorError != nil {
		return nil, executorError
	}

	aliasStrategy, aliasError := alias.NewLocalStrategy(categoryCatalog)
	if aliasError != nil {
		return nil, aliasError
	}
	pathStrategy, pathError := pathstrategy.NewLocalStrategy(categoryCatalog)
	if pathError != nil {
		return nil, pathError
	}
	discoveryStrategy, discoveryError := discovery.NewLocalStrategy(categoryCatalog, pathStrategy, fileSystem, logger)
	if discoveryError != nil {
		return nil, discoveryError
	}
	gitStrategy, gitError := gitstrategy.NewLocalStrategy(executionContext, pathStrategy, gitExecutor, fileSystem, logger)
	if gitError != nil {
		return nil, gitError
	}

	return New(aliasStrategy, pathStrategy, discoveryStrategy, gitStrategy), nil
}

// NewMock builds strategies answering from the fixture tree.
func NewMock() *Api {
	return New(alias.NewMockStrategy(), pathstrategy.NewMockStrategy(), discovery.NewMockStrategy(), gitstrategy.NewMockStrategy())
}

// ResolveAlias resolves raw category input.
func (bundle *Api) ResolveAlias(input string) grass.ResolveAliasResult {
	return bundle.Alias.ResolveAlias(input)
}

// ResolveLocation resolves the category of a location.
func (bundle *Api) ResolveLocation(categoryInput string, repository string) (grass.RepositoryLocation, error) {
	return alias.ResolveLocation(bundle.Alias, categoryInput, repository)
}

// CleanRepository removes the ignored files of a repository.
func (bundle *Api) CleanRepository(categoryInput string, repository string) error {
	location, locationError := bundle.ResolveLocation(categoryInput, repository)
	if locationError != nil {
		return locationError
	}
	return grass.Wrap(bundle.Git.Clean(location))
}

// CloneRepository clones remote into the given repository location.
func (bundle *Api) CloneRepository(categoryInput string, repository string, remote string) error {
	location, locationError := bundle.ResolveLocation(categoryInput, repository)
	if locationError != nil {
		return locationError
	}
	return grass.Wrap(bundle.Git.Clone(location, remote))
}

// CloneRepositoryDefault clones remote into the category using the name derived from the remote.
// It returns the location that was cloned into.
func (bundle *Api) CloneRepositoryDefault(categoryInput string, remote string) (grass.RepositoryLocation, error) {
	location, locationError := bundle.ResolveLocation(categoryInput, RepositoryNameFromRemote(remote))
	if locationError != nil {
		return grass.RepositoryLocation{}, locationError
	}
	return location, grass.Wrap(bundle.Git.Clone(location, remote))
}

// RepositoryNameFromRemote derives a repository name from the last path segment of a remote,
// dropping a trailing ".git".
func RepositoryNameFromRemote(remote string) string {
	trimmedRemote := strings.TrimRight(strings.TrimSpace(remote), remotePathSeparatorConstant)
	if separatorIndex := strings.LastIndex(trimmedRemote, remotePathSeparatorConstant); separatorIndex >= 0 {
		trimmedRemote = trimmedRemote[separatorIndex+1:]
	} else if separatorIndex := strings.LastIndex(trimmedRemote, remoteSchemeSeparatorConstant); separatorIndex >= 0 {
		trimmedRemote = trimmedRemote[separatorIndex+1:]
	}
	return strings.TrimSuffix(trimmedRemote, remoteGitSuffixConstant)
}

// GetRepositoryPath returns the directory of a repository. The directory need not exist.
func (bundle *Api) GetRepositoryPath(categoryInput string, repository string) (string, error) {
	location, locationError := bundle.ResolveLocation(categoryInput, repository)
	if locationError != nil {
		return "", locationError
	}
	directory, pathError := bundle.Path.GetDirectory(location)
	if pathError != nil {
		return "", grass.Wrap(pathError)
	}
	return directory, nil
}

// GetCategoryPath returns the directory of a category.
func (bundle *Api) GetCategoryPath(categoryInput string) (string, error) {
	category := alias.ResolveCategory(bundle.Alias, categoryInput)
	directory, pathError := bundle.Path.GetContainingDirectory(grass.RepositoryLocation{Category: category})
	if pathError != nil {
		return "", grass.Wrap(pathError)
	}
	return directory, nil
}

// VerifyRepositoryExists fails with a CategoryNotFound or RepositoryNotFound error unless the
// repository directory is present.
func (bundle *Api) VerifyRepositoryExists(categoryInput string, repository string) (grass.RepositoryLocation, error) {
	location, locationError := bundle.ResolveLocation(categoryInput, repository)
	if locationError != nil {
		return grass.RepositoryLocation{}, locationError
	}

	exists, checkError := bundle.Discovery.CheckRepositoryExists(location)
	if checkError != nil {
		return location, grass.Wrap(checkError)
	}

	switch exists {
	case grass.DiscoveryExistsCategoryNotFound:
		return location, grass.FromDiscoveryError(grass.DiscoveryErrorFromAlias(grass.NewAliasCategoryNotFoundError(string(location.Category))))
	case grass.DiscoveryExistsRepositoryNotFound:
		return location, grass.FromPathError(grass.PathStrategyError{
			Kind:    grass.PathErrorRepositoryNotFound,
			Context: fmt.Sprintf(missingRepositoryContextTemplate, location),
			Reason:  missingRepositoryReason,
		})
	default:
		return location, nil
	}
}

// VerifyCategoryExists resolves categoryInput and fails with a CategoryNotFound error unless the
// category is configured.
func (bundle *Api) VerifyCategoryExists(categoryInput string) (grass.Category, error) {
	category := alias.ResolveCategory(bundle.Alias, categoryInput)
	exists, checkError := bundle.Discovery.CheckCategoryExists(string(category))
	if checkError != nil {
		return category, grass.Wrap(checkError)
	}
	if exists == grass.DiscoveryExistsCategoryNotFound {
		return category, grass.FromDiscoveryError(grass.DiscoveryErrorFromAlias(grass.NewAliasCategoryNotFoundError(string(category))))
	}
	return category, nil
}

// CreateRepository creates an empty repository directory.
func (bundle *Api) CreateRepository(categoryInput string, repository string) error {
	location, locationError := bundle.ResolveLocation(categoryInput, repository)
	if locationError != nil {
		return locationError
	}
	return grass.Wrap(bundle.Discovery.CreateRepository(location))
}

// MoveRepository renames a repository, possibly into another category.
func (bundle *Api) MoveRepository(oldCategoryInput string, oldRepository string, newCategoryInput string, newRepository string) error {
	oldLocation, oldLocationError := bundle.ResolveLocation(oldCategoryInput, oldRepository)
	if oldLocationError != nil {
		return oldLocationError
	}
	newLocation, newLocationError := bundle.ResolveLocation(newCategoryInput, newRepository)
	if newLocationError != nil {
		return newLocationError
	}
	return grass.Wrap(bundle.Discovery.MoveRepository(oldLocation, newLocation))
}

// ListCategories lists the configured categories.
func (bundle *Api) ListCategories() ([]string, error) {
	categories, listError := bundle.Discovery.ListCategories()
	if listError != nil {
		return nil, grass.Wrap(listError)
	}
	return categories, nil
}

// ListRepositoriesInCategoryWithErrors lists a category, keeping per-entry failures.
func (bundle *Api) ListRepositoriesInCategoryWithErrors(categoryInput string) (grass.RepositoryResults, error) {
	category := alias.ResolveCategory(bundle.Alias, categoryInput)
	results, listError := bundle.Discovery.ListRepositoriesInCategory(string(category))
	if listError != nil {
		return grass.RepositoryResults{}, grass.Wrap(listError)
	}
	return results, nil
}

// ListRepositoriesInCategory lists a category sorted by repository name, dropping per-entry
// failures.
func (bundle *Api) ListRepositoriesInCategory(categoryInput string) ([]grass.RepositoryLocation, error) {
	results, listError := bundle.ListRepositoriesInCategoryWithErrors(categoryInput)
	if listError != nil {
		return nil, listError
	}
	locations := results.Locations()
	slices.SortFunc(locations, compareLocations)
	return locations, nil
}

// ListAllRepositories lists every category that can be enumerated. Categories failing to
// enumerate are skipped.
func (bundle *Api) ListAllRepositories() ([]grass.CategoryDescription, error) {
	categories, listError := bundle.ListCategories()
	if listError != nil {
		return nil, listError
	}

	descriptions := make([]grass.CategoryDescription, 0, len(categories))
	for _, categoryName := range categories {
		locations, categoryError := bundle.ListRepositoriesInCategory(categoryName)
		if categoryError != nil {
			continue
		}
		descriptions = append(descriptions, grass.CategoryDescription{Category: grass.Category(categoryName), Repositories: locations})
	}
	return descriptions, nil
}

// ListAliasesForCategory lists the aliases of a category.
func (bundle *Api) ListAliasesForCategory(categoryInput string) ([]grass.Alias, error) {
	category := alias.ResolveCategory(bundle.Alias, categoryInput)
	aliases, listError := bundle.Alias.ListAliasesForCategory(string(category))
	if listError != nil {
		return nil, grass.Wrap(listError)
	}
	return aliases, nil
}

// IsCategoryNotFound reports whether err was caused by an unknown category.
func IsCategoryNotFound(err error) bool {
	return errors.Is(err, grass.ErrCategoryNotFound)
}

func compareLocations(first grass.RepositoryLocation, second grass.RepositoryLocation) int {
	switch {
	case first.Less(second):
		return -1
	case second.Less(first):
		return 1
	default:
		return 0
	}
}
