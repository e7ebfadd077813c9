// Package catalog holds the immutable category and alias table loaded for one invocation.
package catalog

import (
	"errors"
	"fmt"
	"path/filepath"
	"sort"
	"strings"

	"github.com/temirov/grass/internal/grass"
)

const (
	emptyCategoryNameMessageConstant  = "category name must not be empty"
	emptyAliasMessageConstant         = "alias for category %s must not be empty"
	conflictingAliasTemplateConstant  = "alias %s is registered for both %s and %s"
	emptyBaseDirectoryMessageConstant = "base directory must not be empty"
)

// Errors returned while building a catalog.
var (
	ErrEmptyCategoryName  = errors.New(emptyCategoryNameMessageConstant)
	ErrEmptyBaseDirectory = errors.New(emptyBaseDirectoryMessageConstant)
	ErrConflictingAlias   = errors.New("conflicting alias")
	ErrEmptyAlias         = errors.New("empty alias")
)

// CategoryKey indexes a category record inside a Catalog.
type CategoryKey int

// CategoryDefinition describes one configured category before it is indexed.
type CategoryDefinition struct {
	Name    string
	Aliases []string
}

// CategoryRecord is the stored form of a category.
type CategoryRecord struct {
	Name    grass.Category
	Aliases []string
}

// Catalog owns every category record. Aliases refer to categories by key only.
type Catalog struct {
	baseDirectory string
	categories    []CategoryRecord
	categoryIndex map[grass.Category]CategoryKey
	aliasIndex    map[string]CategoryKey
}

// New indexes the supplied definitions. Definitions sharing a name are merged; an alias that
// points at two different categories is rejected.
func New(baseDirectory string, definitions []CategoryDefinition) (*Catalog, error) {
	trimmedBaseDirectory := strings.TrimSpace(baseDirectory)
	if len(trimmedBaseDirectory) == 0 {
		return nil, ErrEmptyBaseDirectory
	}

	catalog := &Catalog{
		baseDirectory: filepath.Clean(trimmedBaseDirectory),
		categoryIndex: make(map[grass.Category]CategoryKey),
		aliasIndex:    make(map[string]CategoryKey),
	}

	for _, definition := range definitions {
		categoryName := strings.TrimSpace(definition.Name)
		if len(categoryName) == 0 {
			return nil, ErrEmptyCategoryName
		}

		key := catalog.ensureCategory(grass.Category(categoryName))
		for _, aliasName := range definition.Aliases {
			if registrationError := catalog.registerAlias(key, aliasName); registrationError != nil {
				return nil, registrationError
			}
		}
	}

	if validationError := catalog.validateAliasesAgainstCategories(); validationError != nil {
		return nil, validationError
	}

	return catalog, nil
}

// validateAliasesAgainstCategories keeps resolution idempotent: an alias may not shadow the name
// of a different category.
func (catalog *Catalog) validateAliasesAgainstCategories() error {
	for aliasName, aliasKey := range catalog.aliasIndex {
		categoryKey, shadowsCategory := catalog.categoryIndex[grass.Category(aliasName)]
		if !shadowsCategory || categoryKey == aliasKey {
			continue
		}
		return fmt.Errorf("%w: "+conflictingAliasTemplateConstant, ErrConflictingAlias, aliasName, catalog.categories[categoryKey].Name, catalog.categories[aliasKey].Name)
	}
	return nil
}

func (catalog *Catalog) ensureCategory(category grass.Category) CategoryKey {
	if existingKey, exists := catalog.categoryIndex[category]; exists {
		return existingKey
	}
	key := CategoryKey(len(catalog.categories))
	catalog.categories = append(catalog.categories, CategoryRecord{Name: category})
	catalog.categoryIndex[category] = key
	return key
}

func (catalog *Catalog) registerAlias(key CategoryKey, aliasName string) error {
	trimmedAlias := strings.TrimSpace(aliasName)
	owner := catalog.categories[key].Name
	if len(trimmedAlias) == 0 {
		return fmt.Errorf("%w: "+emptyAliasMessageConstant, ErrEmptyAlias, owner)
	}

	if existingKey, exists := catalog.aliasIndex[trimmedAlias]; exists {
		if existingKey == key {
			return nil
		}
		return fmt.Errorf("%w: "+conflictingAliasTemplateConstant, ErrConflictingAlias, trimmedAlias, catalog.categories[existingKey].Name, owner)
	}

	catalog.aliasIndex[trimmedAlias] = key
	catalog.categories[key].Aliases = append(catalog.categories[key].Aliases, trimmedAlias)
	return nil
}

// BaseDirectory returns the directory holding every category.
func (catalog *Catalog) BaseDirectory() string {
	return catalog.baseDirectory
}

// Categories lists every category name in lexical order.
func (catalog *Catalog) Categories() []grass.Category {
	categories := make([]grass.Category, 0, len(catalog.categories))
	for _, record := range catalog.categories {
		categories = append(categories, record.Name)
	}
	sort.Slice(categories, func(left int, right int) bool {
		return categories[left] < categories[right]
	})
	return categories
}

// Lookup returns the record for an exact category name.
func (catalog *Catalog) Lookup(categoryName string) (CategoryRecord, bool) {
	key, exists := catalog.categoryIndex[grass.Category(categoryName)]
	if !exists {
		return CategoryRecord{}, false
	}
	return catalog.record(key), true
}

// LookupAlias returns the alias entry for an exact alias name.
func (catalog *Catalog) LookupAlias(aliasName string) (grass.Alias, bool) {
	key, exists := catalog.aliasIndex[aliasName]
	if !exists {
		return grass.Alias{}, false
	}
	return grass.Alias{Alias: aliasName, Category: catalog.categories[key].Name}, true
}

// Aliases lists every alias ordered by alias name.
func (catalog *Catalog) Aliases() []grass.Alias {
	aliases := make([]grass.Alias, 0, len(catalog.aliasIndex))
	for aliasName, key := range catalog.aliasIndex {
		aliases = append(aliases, grass.Alias{Alias: aliasName, Category: catalog.categories[key].Name})
	}
	sort.Slice(aliases, func(left int, right int) bool {
		return aliases[left].Alias < aliases[right].Alias
	})
	return aliases
}

// CategoryDirectory joins the base directory with an exact category name.
func (catalog *Catalog) CategoryDirectory(categoryName string) (string, bool) {
	record, exists := catalog.Lookup(categoryName)
	if !exists {
		return "", false
	}
	return filepath.Join(catalog.baseDirectory, string(record.Name)), true
}

func (catalog *Catalog) record(key CategoryKey) CategoryRecord {
	stored := catalog.categories[key]
	return CategoryRecord{Name: stored.Name, Aliases: append([]string{}, stored.Aliases...)}
}
