// Package path maps repository locations onto directories.
package path

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/catalog"
	"github.com/temirov/grass/internal/grass/fixture"
)

const (
	categoryLookupContextTemplateConstant = "when resolving the directory of category '%s'"
	categoryNotDefinedReasonConstant      = "category is not defined in the configuration"
)

// ErrCatalogNotConfigured indicates a LocalStrategy was built without a catalog.
var ErrCatalogNotConfigured = errors.New("path catalog not configured")

func unknownCategoryError(category grass.Category) grass.PathStrategyError {
	return grass.PathStrategyError{
		Kind:    grass.PathErrorRepositoryNotFound,
		Context: fmt.Sprintf(categoryLookupContextTemplateConstant, category),
		Reason:  categoryNotDefinedReasonConstant,
	}
}

// LocalStrategy resolves directories below the catalog base directory.
type LocalStrategy struct {
	catalog *catalog.Catalog
}

// NewLocalStrategy constructs a LocalStrategy.
func NewLocalStrategy(categoryCatalog *catalog.Catalog) (*LocalStrategy, error) {
	if categoryCatalog == nil {
		return nil, ErrCatalogNotConfigured
	}
	return &LocalStrategy{catalog: categoryCatalog}, nil
}

// GetContainingDirectory implements grass.PathStrategy.
func (strategy *LocalStrategy) GetContainingDirectory(location grass.RepositoryLocation) (string, error) {
	categoryDirectory, exists := strategy.catalog.CategoryDirectory(string(location.Category))
	if !exists {
		return "", unknownCategoryError(location.Category)
	}
	return categoryDirectory, nil
}

// GetDirectory implements grass.PathStrategy.
func (strategy *LocalStrategy) GetDirectory(location grass.RepositoryLocation) (string, error) {
	return directoryWithin(strategy, location)
}

// MockStrategy resolves directories of the fixture tree.
type MockStrategy struct{}

// NewMockStrategy constructs a MockStrategy.
func NewMockStrategy() *MockStrategy {
	return &MockStrategy{}
}

// GetContainingDirectory implements grass.PathStrategy.
func (strategy *MockStrategy) GetContainingDirectory(location grass.RepositoryLocation) (string, error) {
	if _, exists := fixture.LookupCategory(string(location.Category)); !exists {
		return "", unknownCategoryError(location.Category)
	}
	return fixture.CategoryDirectory(string(location.Category)), nil
}

// GetDirectory implements grass.PathStrategy.
func (strategy *MockStrategy) GetDirectory(location grass.RepositoryLocation) (string, error) {
	return directoryWithin(strategy, location)
}

func directoryWithin(strategy grass.PathStrategy, location grass.RepositoryLocation) (string, error) {
	containingDirectory, lookupError := strategy.GetContainingDirectory(location)
	if lookupError != nil {
		return "", lookupError
	}
	return filepath.Join(containingDirectory, location.Repository), nil
}
