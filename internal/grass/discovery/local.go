// Package discovery enumerates categories and repositories and creates or moves repository
// directories.
package discovery

import (
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/catalog"
	"github.com/temirov/grass/internal/repos/shared"
)

const (
	readCategoryContextTemplateConstant     = "when reading the directory '%s' (expected to be a category directory)"
	entryMetadataContextTemplateConstant    = "when retrieving metadata for entry '%s'"
	entryNameContextTemplateConstant        = "when retrieving the directory name of '%s'"
	invalidEntryNameReasonConstant          = "directory name is not valid UTF-8"
	createContextTemplateConstant           = "when creating repository '%s'"
	moveContextTemplateConstant             = "when moving repository '%s' to '%s'"
	repositoryPresentReasonTemplateConstant = "'%s' is already present"
	repositoryMissingReasonTemplateConstant = "'%s' does not exist"
	categoryDirectoryCreatedMessageConstant = "created missing category directory"
	repositoryCreatedMessageConstant        = "created repository directory"
	repositoryMovedMessageConstant          = "moved repository directory"
	logFieldDirectoryConstant               = "directory"
	logFieldSourceDirectoryConstant         = "source"
	logFieldDestinationDirectoryConstant    = "destination"
)

// Errors returned when constructing a LocalStrategy.
var (
	ErrCatalogNotConfigured      = errors.New("discovery catalog not configured")
	ErrPathStrategyNotConfigured = errors.New("discovery path strategy not configured")
	ErrFileSystemNotConfigured   = errors.New("discovery filesystem not configured")
)

// LocalStrategy discovers repositories on the local filesystem.
type LocalStrategy struct {
	catalog      *catalog.Catalog
	pathStrategy grass.PathStrategy
	fileSystem   shared.FileSystem
	logger       *zap.Logger
}

// NewLocalStrategy constructs a LocalStrategy. A nil logger is replaced with a no-op logger.
func NewLocalStrategy(categoryCatalog *catalog.Catalog, pathStrategy grass.PathStrategy, fileSystem shared.FileSystem, logger *zap.Logger) (*LocalStrategy, error) {
	if categoryCatalog == nil {
		return nil, ErrCatalogNotConfigured
	}
	if pathStrategy == nil {
		return nil, ErrPathStrategyNotConfigured
	}
	if fileSystem == nil {
		return nil, ErrFileSystemNotConfigured
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LocalStrategy{
		catalog:      categoryCatalog,
		pathStrategy: pathStrategy,
		fileSystem:   fileSystem,
		logger:       logger,
	}, nil
}

// CheckRepositoryExists implements grass.DiscoveryStrategy.
func (strategy *LocalStrategy) CheckRepositoryExists(location grass.RepositoryLocation) (grass.DiscoveryExists, error) {
	repositoryDirectory, pathError := strategy.pathStrategy.GetDirectory(location)
	if pathError != nil {
		if errors.Is(pathError, grass.ErrRepositoryNotFound) {
			return grass.DiscoveryExistsCategoryNotFound, nil
		}
		return grass.DiscoveryExistsRepositoryNotFound, convertPathError(pathError)
	}

	if strategy.isDirectory(repositoryDirectory) {
		return grass.DiscoveryExistsExists, nil
	}
	return grass.DiscoveryExistsRepositoryNotFound, nil
}

// CheckCategoryExists implements grass.DiscoveryStrategy.
func (strategy *LocalStrategy) CheckCategoryExists(categoryName string) (grass.DiscoveryExists, error) {
	if _, exists := strategy.catalog.Lookup(categoryName); exists {
		return grass.DiscoveryExistsExists, nil
	}
	return grass.DiscoveryExistsCategoryNotFound, nil
}

// ListRepositoriesInCategory implements grass.DiscoveryStrategy. The category directory is read
// again on every iteration of the returned sequence.
func (strategy *LocalStrategy) ListRepositoriesInCategory(categoryName string) (grass.RepositoryResults, error) {
	record, exists := strategy.catalog.Lookup(categoryName)
	if !exists {
		return grass.RepositoryResults{}, grass.DiscoveryErrorFromAlias(grass.NewAliasCategoryNotFoundError(categoryName))
	}

	categoryDirectory, _ := strategy.catalog.CategoryDirectory(categoryName)
	if _, readError := strategy.fileSystem.ReadDir(categoryDirectory); readError != nil {
		return grass.RepositoryResults{}, grass.DiscoveryStrategyError{
			Kind:    grass.DiscoveryErrorFilesystem,
			Context: fmt.Sprintf(readCategoryContextTemplateConstant, categoryDirectory),
			Reason:  readError.Error(),
		}
	}

	return grass.NewRepositoryResults(func(yield func(grass.RepositoryLocation, error) bool) {
		strategy.enumerateCategory(record.Name, categoryDirectory, yield)
	}), nil
}

func (strategy *LocalStrategy) enumerateCategory(category grass.Category, categoryDirectory string, yield func(grass.RepositoryLocation, error) bool) {
	entries, readError := strategy.fileSystem.ReadDir(categoryDirectory)
	if readError != nil {
		yield(grass.RepositoryLocation{}, grass.DiscoveryStrategyError{
			Kind:    grass.DiscoveryErrorFilesystem,
			Context: fmt.Sprintf(readCategoryContextTemplateConstant, categoryDirectory),
			Reason:  readError.Error(),
		})
		return
	}

	for _, entry := range entries {
		entryPath := filepath.Join(categoryDirectory, entry.Name())
		entryInfo, infoError := entry.Info()
		if infoError != nil {
			if !yield(grass.RepositoryLocation{}, grass.DiscoveryStrategyError{
				Kind:    grass.DiscoveryErrorFilesystem,
				Context: fmt.Sprintf(entryMetadataContextTemplateConstant, entryPath),
				Reason:  infoError.Error(),
			}) {
				return
			}
			continue
		}

		if !entryInfo.IsDir() {
			continue
		}

		if !utf8.ValidString(entry.Name()) {
			if !yield(grass.RepositoryLocation{}, grass.DiscoveryStrategyError{
				Kind:    grass.DiscoveryErrorFilesystem,
				Context: fmt.Sprintf(entryNameContextTemplateConstant, entryPath),
				Reason:  invalidEntryNameReasonConstant,
			}) {
				return
			}
			continue
		}

		if !yield(grass.RepositoryLocation{Category: category, Repository: entry.Name()}, nil) {
			return
		}
	}
}

// ListCategories implements grass.DiscoveryStrategy. Categories come from configuration only.
func (strategy *LocalStrategy) ListCategories() ([]string, error) {
	categories := strategy.catalog.Categories()
	names := make([]string, 0, len(categories))
	for _, category := range categories {
		names = append(names, string(category))
	}
	return names, nil
}

// CreateRepository implements grass.DiscoveryStrategy.
func (strategy *LocalStrategy) CreateRepository(location grass.RepositoryLocation) error {
	containingDirectory, pathError := strategy.pathStrategy.GetContainingDirectory(location)
	if pathError != nil {
		return convertPathError(pathError)
	}
	repositoryDirectory := filepath.Join(containingDirectory, location.Repository)
	errorContext := fmt.Sprintf(createContextTemplateConstant, location)

	if strategy.pathPresent(repositoryDirectory) {
		return grass.DiscoveryStrategyError{
			Kind:    grass.DiscoveryErrorRepositoryExists,
			Context: errorContext,
			Reason:  fmt.Sprintf(repositoryPresentReasonTemplateConstant, repositoryDirectory),
		}
	}

	if ensureError := strategy.ensureCategoryDirectory(containingDirectory, errorContext); ensureError != nil {
		return ensureError
	}

	if mkdirError := strategy.fileSystem.Mkdir(repositoryDirectory, shared.RepositoryDirectoryPermissionsConstant); mkdirError != nil {
		return classifyCreationFailure(mkdirError, errorContext, repositoryDirectory)
	}

	strategy.logger.Debug(repositoryCreatedMessageConstant, zap.String(logFieldDirectoryConstant, repositoryDirectory))
	return nil
}

// MoveRepository implements grass.DiscoveryStrategy. The filesystem rename refuses to replace an
// existing destination, so a destination created after the presence check is reported as
// RepositoryExists and the source stays in place.
func (strategy *LocalStrategy) MoveRepository(oldLocation grass.RepositoryLocation, newLocation grass.RepositoryLocation) error {
	oldDirectory, oldPathError := strategy.pathStrategy.GetDirectory(oldLocation)
	if oldPathError != nil {
		return convertPathError(oldPathError)
	}
	newContainingDirectory, newPathError := strategy.pathStrategy.GetContainingDirectory(newLocation)
	if newPathError != nil {
		return convertPathError(newPathError)
	}
	newDirectory := filepath.Join(newContainingDirectory, newLocation.Repository)
	errorContext := fmt.Sprintf(moveContextTemplateConstant, oldLocation, newLocation)

	if !strategy.isDirectory(oldDirectory) {
		return grass.DiscoveryStrategyError{
			Kind:    grass.DiscoveryErrorRepositoryDoesNotExist,
			Context: errorContext,
			Reason:  fmt.Sprintf(repositoryMissingReasonTemplateConstant, oldDirectory),
		}
	}

	if strategy.pathPresent(newDirectory) {
		return grass.DiscoveryStrategyError{
			Kind:    grass.DiscoveryErrorRepositoryExists,
			Context: errorContext,
			Reason:  fmt.Sprintf(repositoryPresentReasonTemplateConstant, newDirectory),
		}
	}

	if ensureError := strategy.ensureCategoryDirectory(newContainingDirectory, errorContext); ensureError != nil {
		return ensureError
	}

	if renameError := strategy.fileSystem.Rename(oldDirectory, newDirectory); renameError != nil {
		return classifyCreationFailure(renameError, errorContext, newDirectory)
	}

	strategy.logger.Debug(
		repositoryMovedMessageConstant,
		zap.String(logFieldSourceDirectoryConstant, oldDirectory),
		zap.String(logFieldDestinationDirectoryConstant, newDirectory),
	)
	return nil
}

func (strategy *LocalStrategy) ensureCategoryDirectory(categoryDirectory string, errorContext string) error {
	if strategy.isDirectory(categoryDirectory) {
		return nil
	}
	if mkdirError := strategy.fileSystem.MkdirAll(categoryDirectory, shared.RepositoryDirectoryPermissionsConstant); mkdirError != nil {
		return grass.DiscoveryStrategyError{Kind: grass.DiscoveryErrorFilesystem, Context: errorContext, Reason: mkdirError.Error()}
	}
	strategy.logger.Debug(categoryDirectoryCreatedMessageConstant, zap.String(logFieldDirectoryConstant, categoryDirectory))
	return nil
}

func (strategy *LocalStrategy) isDirectory(path string) bool {
	info, statError := strategy.fileSystem.Stat(path)
	return statError == nil && info.IsDir()
}

func (strategy *LocalStrategy) pathPresent(path string) bool {
	_, statError := strategy.fileSystem.Lstat(path)
	return statError == nil
}

func classifyCreationFailure(creationError error, errorContext string, directory string) error {
	if errors.Is(creationError, fs.ErrExist) {
		return grass.DiscoveryStrategyError{
			Kind:    grass.DiscoveryErrorRepositoryExists,
			Context: errorContext,
			Reason:  fmt.Sprintf(repositoryPresentReasonTemplateConstant, directory),
		}
	}
	return grass.DiscoveryStrategyError{Kind: grass.DiscoveryErrorFilesystem, Context: errorContext, Reason: creationError.Error()}
}

func convertPathError(pathError error) error {
	var typedPathError grass.PathStrategyError
	if errors.As(pathError, &typedPathError) {
		return grass.DiscoveryErrorFromPath(typedPathError)
	}
	return grass.DiscoveryStrategyError{Kind: grass.DiscoveryErrorUnknown, Reason: pathError.Error()}
}
