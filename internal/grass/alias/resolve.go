package alias

import "github.com/temirov/grass/internal/grass"

// ResolveCategory resolves raw category input to a canonical category.
func ResolveCategory(strategy grass.AliasStrategy, categoryInput string) grass.Category {
	return strategy.ResolveAlias(categoryInput).Category()
}

// ResolveLocation builds a RepositoryLocation whose category has been resolved. The repository
// name passes through untouched.
func ResolveLocation(strategy grass.AliasStrategy, categoryInput string, repository string) (grass.RepositoryLocation, error) {
	return grass.NewRepositoryLocation(ResolveCategory(strategy, categoryInput), repository)
}
