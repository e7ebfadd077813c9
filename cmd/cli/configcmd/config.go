// Package configcmd prints and documents the category configuration.
package configcmd

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/grass/cmd/cli/repos"
	"github.com/temirov/grass/internal/userconfig"
	"github.com/temirov/grass/internal/utils"
)

const (
	groupUseConstant                  = "config"
	groupShortDescription             = "Inspect the category configuration"
	listUseConstant                   = "list"
	listShortDescription              = "Print the merged configuration as TOML"
	explainUseConstant                = "explain <key>"
	explainShortDescription           = "Describe a configuration key"
	baseDirectoryKeyConstant          = "base_dir"
	categoryKeyConstant               = "category.*"
	categoryAliasKeyConstant          = "category.*.alias"
	baseDirectoryExplanation          = "The base directory where repositories are stored"
	categoryExplanation               = "The name of a category"
	categoryAliasExplanation          = "Aliases for the category"
	explanationTemplateConstant       = "%s\n"
	unknownKeyTemplateConstant        = "%w: %q (expected one of %s)"
	keySeparatorConstant              = ", "
	listingConfigurationMessage       = "listing configuration"
	logFieldCatalogDirectoryConstant  = "catalog_directory"
	missingConfigurationProviderError = "configuration provider is not configured"
)

var (
	// ErrUnknownKey is returned by explain for keys outside the documented set.
	ErrUnknownKey = errors.New("unknown configuration key")
	// ErrConfigurationNotConfigured is returned when the command was built without a provider.
	ErrConfigurationNotConfigured = errors.New(missingConfigurationProviderError)
)

var explanations = map[string]string{
	baseDirectoryKeyConstant: baseDirectoryExplanation,
	categoryKeyConstant:      categoryExplanation,
	categoryAliasKeyConstant: categoryAliasExplanation,
}

// Keys lists the keys explain understands.
func Keys() []string {
	return []string{baseDirectoryKeyConstant, categoryKeyConstant, categoryAliasKeyConstant}
}

// ConfigurationProvider yields the merged category configuration.
type ConfigurationProvider func(executionContext context.Context) (userconfig.Configuration, error)

// CommandBuilder assembles the config command group.
type CommandBuilder struct {
	LoggerProvider        repos.LoggerProvider
	ConfigurationProvider ConfigurationProvider
}

// Build constructs the config command with its list and explain subcommands.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   groupUseConstant,
		Short: groupShortDescription,
	}

	command.AddCommand(&cobra.Command{
		Use:   listUseConstant,
		Short: listShortDescription,
		Args:  cobra.NoArgs,
		RunE:  builder.runList,
	})
	command.AddCommand(&cobra.Command{
		Use:       explainUseConstant,
		Short:     explainShortDescription,
		Args:      cobra.ExactArgs(1),
		ValidArgs: Keys(),
		RunE:      builder.runExplain,
	})

	return command, nil
}

func (builder *CommandBuilder) runList(command *cobra.Command, _ []string) error {
	if builder.ConfigurationProvider == nil {
		return ErrConfigurationNotConfigured
	}

	executionContext := command.Context()
	configuration, loadError := builder.ConfigurationProvider(executionContext)
	if loadError != nil {
		return loadError
	}

	catalogDirectory, _ := utils.NewCommandContextAccessor().CatalogDirectory(executionContext)
	repos.ResolveLogger(builder.LoggerProvider).Debug(listingConfigurationMessage, zap.String(logFieldCatalogDirectoryConstant, catalogDirectory))

	return userconfig.Encode(command.OutOrStdout(), configuration)
}

func (builder *CommandBuilder) runExplain(command *cobra.Command, arguments []string) error {
	explanation, known := explanations[strings.TrimSpace(arguments[0])]
	if !known {
		return fmt.Errorf(unknownKeyTemplateConstant, ErrUnknownKey, arguments[0], strings.Join(Keys(), keySeparatorConstant))
	}
	_, writeError := fmt.Fprintf(command.OutOrStdout(), explanationTemplateConstant, explanation)
	return writeError
}
