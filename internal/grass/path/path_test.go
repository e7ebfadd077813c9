package path_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/catalog"
	"github.com/temirov/grass/internal/grass/fixture"
	pathstrategy "github.com/temirov/grass/internal/grass/path"
)

const (
	testMissingRepositoryConstant = "not_cloned_yet"
	testMissingCategoryConstant   = "missing"
)

func TestPathStrategiesResolveDirectoriesWithoutRequiringExistence(testInstance *testing.T) {
	baseDirectory := testInstance.TempDir()
	loadedCatalog, catalogError := catalog.New(baseDirectory, []catalog.CategoryDefinition{{Name: fixture.CategoryAllGood}})
	require.NoError(testInstance, catalogError)

	localStrategy, strategyError := pathstrategy.NewLocalStrategy(loadedCatalog)
	require.NoError(testInstance, strategyError)

	testCases := []struct {
		name                        string
		strategy                    grass.PathStrategy
		expectedContainingDirectory string
	}{
		{
			name:                        "local",
			strategy:                    localStrategy,
			expectedContainingDirectory: filepath.Join(baseDirectory, fixture.CategoryAllGood),
		},
		{
			name:                        "mock",
			strategy:                    pathstrategy.NewMockStrategy(),
			expectedContainingDirectory: filepath.Join(fixture.BaseDirectory, fixture.CategoryAllGood),
		},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			location := grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: testMissingRepositoryConstant}

			containingDirectory, containingError := testCase.strategy.GetContainingDirectory(location)
			require.NoError(testInstance, containingError)
			require.Equal(testInstance, testCase.expectedContainingDirectory, containingDirectory)

			repositoryDirectory, directoryError := testCase.strategy.GetDirectory(location)
			require.NoError(testInstance, directoryError)
			require.Equal(testInstance, filepath.Join(testCase.expectedContainingDirectory, testMissingRepositoryConstant), repositoryDirectory)

			missingLocation := grass.RepositoryLocation{Category: testMissingCategoryConstant, Repository: fixture.RepositoryFirst}
			_, missingError := testCase.strategy.GetDirectory(missingLocation)
			require.ErrorIs(testInstance, missingError, grass.ErrRepositoryNotFound)

			var pathError grass.PathStrategyError
			require.ErrorAs(testInstance, missingError, &pathError)
			require.Equal(testInstance, grass.PathErrorRepositoryNotFound, pathError.Kind)
		})
	}
}
