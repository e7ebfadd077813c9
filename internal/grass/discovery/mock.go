package discovery

import (
	"fmt"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/fixture"
)

// MockStrategy answers from the fixture tree and never touches the filesystem. Mutations are
// validated against the fixture but not recorded.
type MockStrategy struct{}

// NewMockStrategy constructs a MockStrategy.
func NewMockStrategy() *MockStrategy {
	return &MockStrategy{}
}

// CheckRepositoryExists implements grass.DiscoveryStrategy.
func (strategy *MockStrategy) CheckRepositoryExists(location grass.RepositoryLocation) (grass.DiscoveryExists, error) {
	_, categoryFound, repositoryFound := fixture.LookupRepository(string(location.Category), location.Repository)
	switch {
	case !categoryFound:
		return grass.DiscoveryExistsCategoryNotFound, nil
	case !repositoryFound:
		return grass.DiscoveryExistsRepositoryNotFound, nil
	default:
		return grass.DiscoveryExistsExists, nil
	}
}

// CheckCategoryExists implements grass.DiscoveryStrategy.
func (strategy *MockStrategy) CheckCategoryExists(categoryName string) (grass.DiscoveryExists, error) {
	if _, exists := fixture.LookupCategory(categoryName); exists {
		return grass.DiscoveryExistsExists, nil
	}
	return grass.DiscoveryExistsCategoryNotFound, nil
}

// ListRepositoriesInCategory implements grass.DiscoveryStrategy.
func (strategy *MockStrategy) ListRepositoriesInCategory(categoryName string) (grass.RepositoryResults, error) {
	category, exists := fixture.LookupCategory(categoryName)
	if !exists {
		return grass.RepositoryResults{}, grass.DiscoveryErrorFromAlias(grass.NewAliasCategoryNotFoundError(categoryName))
	}

	locations := make([]grass.RepositoryLocation, 0, len(category.Repositories))
	for _, repository := range category.Repositories {
		locations = append(locations, grass.RepositoryLocation{Category: grass.Category(category.Name), Repository: repository.Name})
	}
	return grass.RepositoryResultsFromSlice(locations), nil
}

// ListCategories implements grass.DiscoveryStrategy.
func (strategy *MockStrategy) ListCategories() ([]string, error) {
	categories := fixture.Categories()
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, category.Name)
	}
	return names, nil
}

// CreateRepository implements grass.DiscoveryStrategy.
func (strategy *MockStrategy) CreateRepository(location grass.RepositoryLocation) error {
	errorContext := fmt.Sprintf(createContextTemplateConstant, location)
	_, categoryFound, repositoryFound := fixture.LookupRepository(string(location.Category), location.Repository)
	if !categoryFound {
		return missingFixtureCategory(location.Category)
	}
	if repositoryFound {
		return grass.DiscoveryStrategyError{
			Kind:    grass.DiscoveryErrorRepositoryExists,
			Context: errorContext,
			Reason:  fmt.Sprintf(repositoryPresentReasonTemplateConstant, location),
		}
	}
	return nil
}

// MoveRepository implements grass.DiscoveryStrategy.
func (strategy *MockStrategy) MoveRepository(oldLocation grass.RepositoryLocation, newLocation grass.RepositoryLocation) error {
	errorContext := fmt.Sprintf(moveContextTemplateConstant, oldLocation, newLocation)

	_, oldCategoryFound, oldRepositoryFound := fixture.LookupRepository(string(oldLocation.Category), oldLocation.Repository)
	if !oldCategoryFound {
		return missingFixtureCategory(oldLocation.Category)
	}
	_, newCategoryFound, newRepositoryFound := fixture.LookupRepository(string(newLocation.Category), newLocation.Repository)
	if !newCategoryFound {
		return missingFixtureCategory(newLocation.Category)
	}

	if !oldRepositoryFound {
		return grass.DiscoveryStrategyError{
			Kind:    grass.DiscoveryErrorRepositoryDoesNotExist,
			Context: errorContext,
			Reason:  fmt.Sprintf(repositoryMissingReasonTemplateConstant, oldLocation),
		}
	}
	if newRepositoryFound {
		return grass.DiscoveryStrategyError{
			Kind:    grass.DiscoveryErrorRepositoryExists,
			Context: errorContext,
			Reason:  fmt.Sprintf(repositoryPresentReasonTemplateConstant, newLocation),
		}
	}
	return nil
}

func missingFixtureCategory(category grass.Category) error {
	return grass.DiscoveryErrorFromAlias(grass.NewAliasCategoryNotFoundError(string(category)))
}
