// Package userconfig loads the category catalog from the TOML files of the configuration directory.
package userconfig

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"go.uber.org/zap"

	"github.com/temirov/grass/internal/grass/catalog"
	"github.com/temirov/grass/internal/repos/dependencies"
	"github.com/temirov/grass/internal/repos/shared"
	pathutils "github.com/temirov/grass/internal/utils/path"
)

const (
	// DefaultBaseDirectoryConstant is used until a file sets base_dir.
	DefaultBaseDirectoryConstant = "~/repos"

	configurationFileExtensionConstant = ".toml"
	readDirectoryErrorTemplateConstant = "read configuration directory %s: %w"
	readFileErrorTemplateConstant      = "read configuration file %s: %w"
	formatErrorTemplateConstant        = "%w: %s: %w"
	undecodedKeysMessageConstant       = "ignoring unknown configuration keys"
	loadedFileMessageConstant          = "loaded configuration file"
	logFieldFileConstant               = "file"
	logFieldKeysConstant               = "keys"
)

// ErrImproperlyFormatted marks a configuration file that is not valid TOML or does not match the
// expected layout.
var ErrImproperlyFormatted = errors.New("configuration file is improperly formatted")

// CategoryConfiguration is one [grass.category.<name>] table.
type CategoryConfiguration struct {
	Alias []string `toml:"alias"`
}

// GrassConfiguration is the [grass] table.
type GrassConfiguration struct {
	BaseDirectory string                           `toml:"base_dir"`
	Category      map[string]CategoryConfiguration `toml:"category"`
}

// Configuration is the merged content of every configuration file.
type Configuration struct {
	Grass GrassConfiguration `toml:"grass"`
}

type fileGrassSection struct {
	BaseDirectory *string                          `toml:"base_dir"`
	Category      map[string]CategoryConfiguration `toml:"category"`
}

type fileConfiguration struct {
	Grass *fileGrassSection `toml:"grass"`
}

// Default returns the configuration used when no file is present.
func Default() Configuration {
	return Configuration{Grass: GrassConfiguration{
		BaseDirectory: DefaultBaseDirectoryConstant,
		Category:      map[string]CategoryConfiguration{},
	}}
}

// Loader reads and merges configuration files.
type Loader struct {
	fileSystem shared.FileSystem
	logger     *zap.Logger
}

// NewLoader constructs a Loader. Nil collaborators fall back to the OS filesystem and a no-op logger.
func NewLoader(fileSystem shared.FileSystem, logger *zap.Logger) *Loader {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Loader{fileSystem: dependencies.ResolveFileSystem(fileSystem), logger: logger}
}

// Load merges every regular *.toml file of directory in lexical order on top of Default. A missing
// directory yields Default.
func (loader *Loader) Load(directory string) (Configuration, error) {
	configuration := Default()

	entries, readError := loader.fileSystem.ReadDir(directory)
	if readError != nil {
		if errors.Is(readError, fs.ErrNotExist) {
			return configuration, nil
		}
		return Configuration{}, fmt.Errorf(readDirectoryErrorTemplateConstant, directory, readError)
	}

	fileNames := make([]string, 0, len(entries))
	for _, entry := range entries {
		if entry.Type().IsRegular() && strings.EqualFold(filepath.Ext(entry.Name()), configurationFileExtensionConstant) {
			fileNames = append(fileNames, entry.Name())
		}
	}
	sort.Strings(fileNames)

	for _, fileName := range fileNames {
		filePath := filepath.Join(directory, fileName)
		parsed, parseError := loader.loadFile(filePath)
		if parseError != nil {
			return Configuration{}, parseError
		}
		configuration.merge(parsed)
	}
	return configuration, nil
}

func (loader *Loader) loadFile(filePath string) (fileConfiguration, error) {
	contents, readError := loader.fileSystem.ReadFile(filePath)
	if readError != nil {
		return fileConfiguration{}, fmt.Errorf(readFileErrorTemplateConstant, filePath, readError)
	}

	var parsed fileConfiguration
	metadata, decodeError := toml.Decode(string(contents), &parsed)
	if decodeError != nil {
		return fileConfiguration{}, fmt.Errorf(formatErrorTemplateConstant, ErrImproperlyFormatted, filePath, decodeError)
	}

	if undecoded := metadata.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		loader.logger.Warn(undecodedKeysMessageConstant, zap.String(logFieldFileConstant, filePath), zap.Strings(logFieldKeysConstant, keys))
	}
	loader.logger.Debug(loadedFileMessageConstant, zap.String(logFieldFileConstant, filePath))
	return parsed, nil
}

// merge applies one file: a present base_dir replaces the current one, categories are unioned
// and aliases accumulate without duplicates.
func (configuration *Configuration) merge(next fileConfiguration) {
	if next.Grass == nil {
		return
	}
	if next.Grass.BaseDirectory != nil {
		configuration.Grass.BaseDirectory = *next.Grass.BaseDirectory
	}
	if configuration.Grass.Category == nil {
		configuration.Grass.Category = map[string]CategoryConfiguration{}
	}
	for categoryName, category := range next.Grass.Category {
		merged := configuration.Grass.Category[categoryName]
		for _, aliasName := range category.Alias {
			if !slices.Contains(merged.Alias, aliasName) {
				merged.Alias = append(merged.Alias, aliasName)
			}
		}
		if merged.Alias == nil {
			merged.Alias = []string{}
		}
		configuration.Grass.Category[categoryName] = merged
	}
}

// WithBaseDirectory returns a copy whose base directory is replaced unless override is blank.
func (configuration Configuration) WithBaseDirectory(override string) Configuration {
	if trimmedOverride := strings.TrimSpace(override); len(trimmedOverride) > 0 {
		configuration.Grass.BaseDirectory = trimmedOverride
	}
	return configuration
}

// Catalog builds the category catalog. Categories are added in name order and the base directory
// is normalized through normalizer.
func (configuration Configuration) Catalog(normalizer *pathutils.DirectoryNormalizer) (*catalog.Catalog, error) {
	if normalizer == nil {
		normalizer = pathutils.NewDirectoryNormalizer(nil)
	}

	categoryNames := make([]string, 0, len(configuration.Grass.Category))
	for categoryName := range configuration.Grass.Category {
		categoryNames = append(categoryNames, categoryName)
	}
	sort.Strings(categoryNames)

	definitions := make([]catalog.CategoryDefinition, 0, len(categoryNames))
	for _, categoryName := range categoryNames {
		definitions = append(definitions, catalog.CategoryDefinition{
			Name:    categoryName,
			Aliases: configuration.Grass.Category[categoryName].Alias,
		})
	}
	return catalog.New(normalizer.Normalize(configuration.Grass.BaseDirectory), definitions)
}

// Encode writes the configuration as TOML.
func Encode(writer io.Writer, configuration Configuration) error {
	return toml.NewEncoder(writer).Encode(configuration)
}
