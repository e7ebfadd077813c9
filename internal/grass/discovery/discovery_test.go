package discovery_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/catalog"
	"github.com/temirov/grass/internal/grass/discovery"
	"github.com/temirov/grass/internal/grass/fixture"
	pathstrategy "github.com/temirov/grass/internal/grass/path"
	"github.com/temirov/grass/internal/repos/filesystem"
	"github.com/temirov/grass/internal/repos/shared"
)

const (
	testMissingNameConstant     = "missing"
	testStrayFileNameConstant   = "notes.txt"
	testRenamedNameConstant     = "renamed"
	testRenameFailureConstant   = "rename refused"
	testMarkerFileNameConstant  = "marker"
	testMarkerContentsConstant  = "kept"
	testMovedLogMessageConstant = "moved repository directory"
)

type failingRenameFileSystem struct {
	filesystem.OSFileSystem
}

func (failingRenameFileSystem) Rename(string, string) error {
	return errors.New(testRenameFailureConstant)
}

// racingRenameFileSystem populates the destination right before renaming, as a concurrent writer would.
type racingRenameFileSystem struct {
	filesystem.OSFileSystem
}

func (fileSystem racingRenameFileSystem) Rename(oldPath string, newPath string) error {
	if mkdirError := os.Mkdir(newPath, 0o755); mkdirError != nil {
		return mkdirError
	}
	if writeError := os.WriteFile(filepath.Join(newPath, testMarkerFileNameConstant), []byte(testMarkerContentsConstant), 0o644); writeError != nil {
		return writeError
	}
	return fileSystem.OSFileSystem.Rename(oldPath, newPath)
}

type localFixture struct {
	baseDirectory string
	strategy      *discovery.LocalStrategy
}

func buildLocalFixture(testInstance *testing.T, fileSystem shared.FileSystem, logger *zap.Logger) localFixture {
	testInstance.Helper()

	baseDirectory := testInstance.TempDir()
	definitions := make([]catalog.CategoryDefinition, 0)
	for _, category := range fixture.Categories() {
		definitions = append(definitions, catalog.CategoryDefinition{Name: category.Name, Aliases: category.Aliases})
		for _, repository := range category.Repositories {
			require.NoError(testInstance, os.MkdirAll(filepath.Join(baseDirectory, category.Name, repository.Name), 0o755))
		}
	}
	require.NoError(testInstance, os.WriteFile(filepath.Join(baseDirectory, fixture.CategoryAllGood, testStrayFileNameConstant), []byte(testMarkerContentsConstant), 0o644))

	loadedCatalog, catalogError := catalog.New(baseDirectory, definitions)
	require.NoError(testInstance, catalogError)

	pathStrategy, pathError := pathstrategy.NewLocalStrategy(loadedCatalog)
	require.NoError(testInstance, pathError)

	strategy, strategyError := discovery.NewLocalStrategy(loadedCatalog, pathStrategy, fileSystem, logger)
	require.NoError(testInstance, strategyError)

	return localFixture{baseDirectory: baseDirectory, strategy: strategy}
}

func buildStrategies(testInstance *testing.T) map[string]grass.DiscoveryStrategy {
	testInstance.Helper()
	return map[string]grass.DiscoveryStrategy{
		"local": buildLocalFixture(testInstance, filesystem.OSFileSystem{}, nil).strategy,
		"mock":  discovery.NewMockStrategy(),
	}
}

func TestCheckRepositoryExists(testInstance *testing.T) {
	testCases := []struct {
		name     string
		location grass.RepositoryLocation
		expected grass.DiscoveryExists
	}{
		{
			name:     "existing repository",
			location: grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: fixture.RepositoryFirst},
			expected: grass.DiscoveryExistsExists,
		},
		{
			name:     "missing repository",
			location: grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: testMissingNameConstant},
			expected: grass.DiscoveryExistsRepositoryNotFound,
		},
		{
			name:     "missing category",
			location: grass.RepositoryLocation{Category: testMissingNameConstant, Repository: fixture.RepositoryFirst},
			expected: grass.DiscoveryExistsCategoryNotFound,
		},
	}

	for strategyName, strategy := range buildStrategies(testInstance) {
		for _, testCase := range testCases {
			testInstance.Run(strategyName+"/"+testCase.name, func(testInstance *testing.T) {
				exists, checkError := strategy.CheckRepositoryExists(testCase.location)
				require.NoError(testInstance, checkError)
				require.Equal(testInstance, testCase.expected, exists)
			})
		}
	}
}

func TestCheckCategoryExists(testInstance *testing.T) {
	for strategyName, strategy := range buildStrategies(testInstance) {
		testInstance.Run(strategyName, func(testInstance *testing.T) {
			present, presentError := strategy.CheckCategoryExists(fixture.CategoryWithChanges)
			require.NoError(testInstance, presentError)
			require.Equal(testInstance, grass.DiscoveryExistsExists, present)

			absent, absentError := strategy.CheckCategoryExists(testMissingNameConstant)
			require.NoError(testInstance, absentError)
			require.Equal(testInstance, grass.DiscoveryExistsCategoryNotFound, absent)
		})
	}
}

func TestListRepositoriesInCategoryIsRestartable(testInstance *testing.T) {
	expected := []grass.RepositoryLocation{
		{Category: fixture.CategoryAllGood, Repository: fixture.RepositoryFirst},
		{Category: fixture.CategoryAllGood, Repository: fixture.RepositoryThird},
		{Category: fixture.CategoryAllGood, Repository: fixture.RepositorySecond},
	}

	for strategyName, strategy := range buildStrategies(testInstance) {
		testInstance.Run(strategyName, func(testInstance *testing.T) {
			results, listError := strategy.ListRepositoriesInCategory(fixture.CategoryAllGood)
			require.NoError(testInstance, listError)

			for iteration := 0; iteration < 2; iteration++ {
				locations, failures := results.Collect()
				require.Empty(testInstance, failures)
				require.ElementsMatch(testInstance, expected, locations)
			}
		})
	}
}

func TestListRepositoriesInUnknownCategoryFails(testInstance *testing.T) {
	for strategyName, strategy := range buildStrategies(testInstance) {
		testInstance.Run(strategyName, func(testInstance *testing.T) {
			_, listError := strategy.ListRepositoriesInCategory(testMissingNameConstant)
			require.ErrorIs(testInstance, listError, grass.ErrCategoryNotFound)

			var discoveryError grass.DiscoveryStrategyError
			require.ErrorAs(testInstance, listError, &discoveryError)
			require.Equal(testInstance, grass.DiscoveryErrorCategoryNotFound, discoveryError.Kind)
		})
	}
}

func TestLocalListingFailsForUnreadableCategoryDirectory(testInstance *testing.T) {
	localFixture := buildLocalFixture(testInstance, filesystem.OSFileSystem{}, nil)
	require.NoError(testInstance, os.RemoveAll(filepath.Join(localFixture.baseDirectory, fixture.CategoryWithError)))

	_, listError := localFixture.strategy.ListRepositoriesInCategory(fixture.CategoryWithError)
	require.ErrorIs(testInstance, listError, grass.ErrFilesystem)
}

func TestLocalListingReflectsDirectoryChangesBetweenIterations(testInstance *testing.T) {
	localFixture := buildLocalFixture(testInstance, filesystem.OSFileSystem{}, nil)

	results, listError := localFixture.strategy.ListRepositoriesInCategory(fixture.CategoryWithError)
	require.NoError(testInstance, listError)
	require.Len(testInstance, results.Locations(), 2)

	require.NoError(testInstance, os.Mkdir(filepath.Join(localFixture.baseDirectory, fixture.CategoryWithError, fixture.RepositoryThird), 0o755))
	require.Len(testInstance, results.Locations(), 3)
}

func TestListCategoriesComesFromConfiguration(testInstance *testing.T) {
	for strategyName, strategy := range buildStrategies(testInstance) {
		testInstance.Run(strategyName, func(testInstance *testing.T) {
			categories, listError := strategy.ListCategories()
			require.NoError(testInstance, listError)
			require.ElementsMatch(testInstance, []string{fixture.CategoryAllGood, fixture.CategoryWithChanges, fixture.CategoryWithError}, categories)
		})
	}
}

func TestCreateRepository(testInstance *testing.T) {
	for strategyName, strategy := range buildStrategies(testInstance) {
		testInstance.Run(strategyName, func(testInstance *testing.T) {
			existingError := strategy.CreateRepository(grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: fixture.RepositoryFirst})
			require.ErrorIs(testInstance, existingError, grass.ErrRepositoryExists)

			missingCategoryError := strategy.CreateRepository(grass.RepositoryLocation{Category: testMissingNameConstant, Repository: fixture.RepositoryFirst})
			require.ErrorIs(testInstance, missingCategoryError, grass.ErrCategoryNotFound)

			require.NoError(testInstance, strategy.CreateRepository(grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: testRenamedNameConstant}))
		})
	}
}

func TestLocalCreateRepositoryCreatesMissingCategoryDirectory(testInstance *testing.T) {
	localFixture := buildLocalFixture(testInstance, filesystem.OSFileSystem{}, nil)
	categoryDirectory := filepath.Join(localFixture.baseDirectory, fixture.CategoryWithChanges)
	require.NoError(testInstance, os.RemoveAll(categoryDirectory))

	location := grass.RepositoryLocation{Category: fixture.CategoryWithChanges, Repository: testRenamedNameConstant}
	require.NoError(testInstance, localFixture.strategy.CreateRepository(location))
	require.DirExists(testInstance, filepath.Join(categoryDirectory, testRenamedNameConstant))

	exists, checkError := localFixture.strategy.CheckRepositoryExists(location)
	require.NoError(testInstance, checkError)
	require.Equal(testInstance, grass.DiscoveryExistsExists, exists)
}

func TestMoveRepositoryRejectsMissingSourceAndOccupiedDestination(testInstance *testing.T) {
	for strategyName, strategy := range buildStrategies(testInstance) {
		testInstance.Run(strategyName, func(testInstance *testing.T) {
			missingSource := grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: testMissingNameConstant}
			freeDestination := grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: testRenamedNameConstant}

			missingError := strategy.MoveRepository(missingSource, freeDestination)
			require.ErrorIs(testInstance, missingError, grass.ErrRepositoryDoesNotExist)
			destinationExists, destinationError := strategy.CheckRepositoryExists(freeDestination)
			require.NoError(testInstance, destinationError)
			require.Equal(testInstance, grass.DiscoveryExistsRepositoryNotFound, destinationExists)

			source := grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: fixture.RepositoryFirst}
			occupied := grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: fixture.RepositorySecond}
			occupiedError := strategy.MoveRepository(source, occupied)
			require.ErrorIs(testInstance, occupiedError, grass.ErrRepositoryExists)
			sourceExists, sourceError := strategy.CheckRepositoryExists(source)
			require.NoError(testInstance, sourceError)
			require.Equal(testInstance, grass.DiscoveryExistsExists, sourceExists)
		})
	}
}

func TestLocalMoveRepositoryRenamesAcrossCategories(testInstance *testing.T) {
	observerCore, observedLogs := observer.New(zapcore.DebugLevel)
	localFixture := buildLocalFixture(testInstance, filesystem.OSFileSystem{}, zap.New(observerCore))

	sourceDirectory := filepath.Join(localFixture.baseDirectory, fixture.CategoryAllGood, fixture.RepositoryFirst)
	require.NoError(testInstance, os.WriteFile(filepath.Join(sourceDirectory, testMarkerFileNameConstant), []byte(testMarkerContentsConstant), 0o644))

	moveError := localFixture.strategy.MoveRepository(
		grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: fixture.RepositoryFirst},
		grass.RepositoryLocation{Category: fixture.CategoryWithError, Repository: testRenamedNameConstant},
	)
	require.NoError(testInstance, moveError)

	require.NoDirExists(testInstance, sourceDirectory)
	movedContents, readError := os.ReadFile(filepath.Join(localFixture.baseDirectory, fixture.CategoryWithError, testRenamedNameConstant, testMarkerFileNameConstant))
	require.NoError(testInstance, readError)
	require.Equal(testInstance, testMarkerContentsConstant, string(movedContents))
	require.Equal(testInstance, 1, observedLogs.FilterMessage(testMovedLogMessageConstant).Len())
}

func TestLocalMoveRepositoryReportsRenameFailure(testInstance *testing.T) {
	localFixture := buildLocalFixture(testInstance, failingRenameFileSystem{}, nil)

	moveError := localFixture.strategy.MoveRepository(
		grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: fixture.RepositoryFirst},
		grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: testRenamedNameConstant},
	)
	require.ErrorIs(testInstance, moveError, grass.ErrFilesystem)
	require.ErrorContains(testInstance, moveError, testRenameFailureConstant)

	require.DirExists(testInstance, filepath.Join(localFixture.baseDirectory, fixture.CategoryAllGood, fixture.RepositoryFirst))
	require.NoDirExists(testInstance, filepath.Join(localFixture.baseDirectory, fixture.CategoryAllGood, testRenamedNameConstant))
}

func TestLocalMoveRepositoryWithinCategory(testInstance *testing.T) {
	localFixture := buildLocalFixture(testInstance, filesystem.OSFileSystem{}, nil)

	moveError := localFixture.strategy.MoveRepository(
		grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: fixture.RepositorySecond},
		grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: testRenamedNameConstant},
	)
	require.NoError(testInstance, moveError)

	require.NoDirExists(testInstance, filepath.Join(localFixture.baseDirectory, fixture.CategoryAllGood, fixture.RepositorySecond))
	require.DirExists(testInstance, filepath.Join(localFixture.baseDirectory, fixture.CategoryAllGood, testRenamedNameConstant))
}

func TestLocalMoveRepositoryNeverReplacesLateDestination(testInstance *testing.T) {
	localFixture := buildLocalFixture(testInstance, racingRenameFileSystem{}, nil)
	sourceDirectory := filepath.Join(localFixture.baseDirectory, fixture.CategoryAllGood, fixture.RepositoryFirst)
	destinationDirectory := filepath.Join(localFixture.baseDirectory, fixture.CategoryAllGood, testRenamedNameConstant)

	moveError := localFixture.strategy.MoveRepository(
		grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: fixture.RepositoryFirst},
		grass.RepositoryLocation{Category: fixture.CategoryAllGood, Repository: testRenamedNameConstant},
	)
	require.ErrorIs(testInstance, moveError, grass.ErrRepositoryExists)

	require.DirExists(testInstance, sourceDirectory)
	require.FileExists(testInstance, filepath.Join(destinationDirectory, testMarkerFileNameConstant))
}

func TestNewLocalStrategyValidatesCollaborators(testInstance *testing.T) {
	loadedCatalog, catalogError := catalog.New(testInstance.TempDir(), nil)
	require.NoError(testInstance, catalogError)
	pathStrategy, pathError := pathstrategy.NewLocalStrategy(loadedCatalog)
	require.NoError(testInstance, pathError)

	testCases := []struct {
		name          string
		catalog       *catalog.Catalog
		pathStrategy  grass.PathStrategy
		fileSystem    shared.FileSystem
		expectedError error
	}{
		{name: "catalog", pathStrategy: pathStrategy, fileSystem: filesystem.OSFileSystem{}, expectedError: discovery.ErrCatalogNotConfigured},
		{name: "path", catalog: loadedCatalog, fileSystem: filesystem.OSFileSystem{}, expectedError: discovery.ErrPathStrategyNotConfigured},
		{name: "filesystem", catalog: loadedCatalog, pathStrategy: pathStrategy, expectedError: discovery.ErrFileSystemNotConfigured},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			strategy, creationError := discovery.NewLocalStrategy(testCase.catalog, testCase.pathStrategy, testCase.fileSystem, nil)
			require.ErrorIs(testInstance, creationError, testCase.expectedError)
			require.Nil(testInstance, strategy)
		})
	}
}
