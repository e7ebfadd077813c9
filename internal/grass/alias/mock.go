package alias

import (
	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/fixture"
)

// MockStrategy resolves the fixed aliases of the fixture tree.
type MockStrategy struct{}

// NewMockStrategy constructs a MockStrategy.
func NewMockStrategy() *MockStrategy {
	return &MockStrategy{}
}

// ListAllAliases implements grass.AliasStrategy.
func (strategy *MockStrategy) ListAllAliases() ([]grass.Alias, error) {
	var aliases []grass.Alias
	for _, category := range fixture.Categories() {
		for _, aliasName := range category.Aliases {
			aliases = append(aliases, grass.Alias{Alias: aliasName, Category: grass.Category(category.Name)})
		}
	}
	return aliases, nil
}

// ListAliasesForCategory implements grass.AliasStrategy.
func (strategy *MockStrategy) ListAliasesForCategory(categoryName string) ([]grass.Alias, error) {
	category, exists := fixture.LookupCategory(categoryName)
	if !exists {
		return nil, grass.NewAliasCategoryNotFoundError(categoryName)
	}
	aliases := make([]grass.Alias, 0, len(category.Aliases))
	for _, aliasName := range category.Aliases {
		aliases = append(aliases, grass.Alias{Alias: aliasName, Category: grass.Category(category.Name)})
	}
	return aliases, nil
}

// ResolveAlias implements grass.AliasStrategy.
func (strategy *MockStrategy) ResolveAlias(input string) grass.ResolveAliasResult {
	for _, category := range fixture.Categories() {
		for _, aliasName := range category.Aliases {
			if aliasName == input {
				return grass.ResolvedAlias(grass.Alias{Alias: aliasName, Category: grass.Category(category.Name)})
			}
		}
	}
	return grass.NoAlias(input)
}
