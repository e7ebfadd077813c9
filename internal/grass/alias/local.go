// Package alias resolves category aliases against a loaded catalog or the mock fixture.
package alias

import (
	"errors"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/catalog"
)

// ErrCatalogNotConfigured indicates a LocalStrategy was built without a catalog.
var ErrCatalogNotConfigured = errors.New("alias catalog not configured")

// LocalStrategy resolves aliases registered in a catalog.
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

// ListAllAliases implements grass.AliasStrategy.
func (strategy *LocalStrategy) ListAllAliases() ([]grass.Alias, error) {
	return strategy.catalog.Aliases(), nil
}

// ListAliasesForCategory implements grass.AliasStrategy.
func (strategy *LocalStrategy) ListAliasesForCategory(categoryName string) ([]grass.Alias, error) {
	record, exists := strategy.catalog.Lookup(categoryName)
	if !exists {
		return nil, grass.NewAliasCategoryNotFoundError(categoryName)
	}
	aliases := make([]grass.Alias, 0, len(record.Aliases))
	for _, aliasName := range record.Aliases {
		aliases = append(aliases, grass.Alias{Alias: aliasName, Category: record.Name})
	}
	return aliases, nil
}

// ResolveAlias implements grass.AliasStrategy.
func (strategy *LocalStrategy) ResolveAlias(input string) grass.ResolveAliasResult {
	if resolvedAlias, exists := strategy.catalog.LookupAlias(input); exists {
		return grass.ResolvedAlias(resolvedAlias)
	}
	return grass.NoAlias(input)
}
