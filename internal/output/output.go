// Package output renders listings and change reports for the terminal.
package output

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/temirov/grass/internal/grass"
)

// Format selects how results are rendered.
type Format string

// Supported formats.
const (
	FormatFancy  Format = "fancy"
	FormatSimple Format = "simple"
	FormatYAML   Format = "yaml"
)

const (
	fancyTitlePrefixConstant          = "┌ "
	fancySpacerConstant               = "│"
	fancyItemPrefixConstant           = "├─ "
	fancyLastItemPrefixConstant       = "└─ "
	simpleSeparatorConstant           = " "
	fancyBlockSeparatorConstant       = "\n\n"
	lineTerminatorConstant            = "\n"
	categoriesTitleConstant           = "Categories"
	repositoriesTitleTemplateConstant = "Repos for category '%s'"
	changesTitleConstant              = "Uncommitted changes"
	changeItemTemplateConstant        = "%s: %s"
	unsupportedFormatTemplateConstant = "%w: %q (expected fancy, simple or yaml)"
)

// ErrUnsupportedFormat indicates a format name outside the supported set.
var ErrUnsupportedFormat = errors.New("unsupported output format")

// ParseFormat validates a format name. Matching ignores case and surrounding whitespace.
func ParseFormat(value string) (Format, error) {
	switch candidate := Format(strings.ToLower(strings.TrimSpace(value))); candidate {
	case FormatFancy, FormatSimple, FormatYAML:
		return candidate, nil
	default:
		return "", fmt.Errorf(unsupportedFormatTemplateConstant, ErrUnsupportedFormat, value)
	}
}

// Formats lists the supported format names.
func Formats() []string {
	return []string{string(FormatFancy), string(FormatSimple), string(FormatYAML)}
}

type yamlCategory struct {
	Category     string   `yaml:"category"`
	Repositories []string `yaml:"repositories"`
}

type yamlChange struct {
	Category   string `yaml:"category,omitempty"`
	Repository string `yaml:"repository,omitempty"`
	Status     string `yaml:"status"`
	Error      string `yaml:"error,omitempty"`
}

// Renderer writes results in one format.
type Renderer struct {
	writer io.Writer
	format Format
}

// NewRenderer constructs a Renderer. An empty format renders fancy output.
func NewRenderer(writer io.Writer, format Format) *Renderer {
	if len(format) == 0 {
		format = FormatFancy
	}
	return &Renderer{writer: writer, format: format}
}

// Categories renders category names.
func (renderer *Renderer) Categories(categories []string) error {
	switch renderer.format {
	case FormatYAML:
		return renderer.writeYAML(map[string][]string{"categories": nonNil(categories)})
	case FormatSimple:
		return renderer.writeLine(strings.Join(categories, simpleSeparatorConstant))
	default:
		return renderer.writeLine(fancyVerticalList(categoriesTitleConstant, categories))
	}
}

// Repositories renders the repositories of one category.
func (renderer *Renderer) Repositories(category grass.Category, repositories []grass.RepositoryLocation) error {
	return renderer.CategoryDescriptions([]grass.CategoryDescription{{Category: category, Repositories: repositories}})
}

// CategoryDescriptions renders repositories grouped by category.
func (renderer *Renderer) CategoryDescriptions(descriptions []grass.CategoryDescription) error {
	switch renderer.format {
	case FormatYAML:
		documents := make([]yamlCategory, 0, len(descriptions))
		for _, description := range descriptions {
			documents = append(documents, yamlCategory{Category: string(description.Category), Repositories: nonNil(repositoryNames(description.Repositories))})
		}
		return renderer.writeYAML(documents)
	case FormatSimple:
		var labels []string
		for _, description := range descriptions {
			for _, location := range description.Repositories {
				labels = append(labels, location.String())
			}
		}
		return renderer.writeLine(strings.Join(labels, simpleSeparatorConstant))
	default:
		blocks := make([]string, 0, len(descriptions))
		for _, description := range descriptions {
			blocks = append(blocks, fancyVerticalList(fmt.Sprintf(repositoriesTitleTemplateConstant, description.Category), repositoryNames(description.Repositories)))
		}
		return renderer.writeLine(strings.Join(blocks, fancyBlockSeparatorConstant))
	}
}

// Changes renders change status results.
func (renderer *Renderer) Changes(results []grass.ChangeStatusResult) error {
	switch renderer.format {
	case FormatYAML:
		documents := make([]yamlChange, 0, len(results))
		for _, result := range results {
			document := yamlChange{Status: result.Status.String()}
			if result.Location != nil {
				document.Category = string(result.Location.Category)
				document.Repository = result.Location.Repository
			}
			if result.Failed {
				document.Status = ""
				document.Error = result.Error
			}
			documents = append(documents, document)
		}
		return renderer.writeYAML(documents)
	case FormatSimple:
		labels := make([]string, 0, len(results))
		for _, result := range results {
			labels = append(labels, result.LocationLabel())
		}
		return renderer.writeLine(strings.Join(labels, simpleSeparatorConstant))
	default:
		items := make([]string, 0, len(results))
		for _, result := range results {
			items = append(items, fmt.Sprintf(changeItemTemplateConstant, result.LocationLabel(), result.StatusLabel()))
		}
		return renderer.writeLine(fancyVerticalList(changesTitleConstant, items))
	}
}

func (renderer *Renderer) writeLine(text string) error {
	_, writeError := io.WriteString(renderer.writer, text+lineTerminatorConstant)
	return writeError
}

func (renderer *Renderer) writeYAML(document any) error {
	encoder := yaml.NewEncoder(renderer.writer)
	encoder.SetIndent(2)
	if encodeError := encoder.Encode(document); encodeError != nil {
		return encodeError
	}
	return encoder.Close()
}

// fancyVerticalList draws a titled box-drawing list. An empty list draws the title only.
func fancyVerticalList(title string, items []string) string {
	var builder strings.Builder
	builder.WriteString(fancyTitlePrefixConstant + title + lineTerminatorConstant + fancySpacerConstant)
	for index, item := range items {
		prefix := fancyItemPrefixConstant
		if index == len(items)-1 {
			prefix = fancyLastItemPrefixConstant
		}
		builder.WriteString(lineTerminatorConstant + prefix + item)
	}
	return builder.String()
}

func repositoryNames(locations []grass.RepositoryLocation) []string {
	names := make([]string, 0, len(locations))
	for _, location := range locations {
		names = append(names, location.Repository)
	}
	return names
}

func nonNil(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}
