package repos

import (
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/changes"
	"github.com/temirov/grass/internal/output"
	flagutils "github.com/temirov/grass/internal/utils/flags"
)

const (
	listUseConstant                 = "ls [category]"
	listShortDescription            = "List categories and repositories"
	listLongDescription             = "ls lists the configured categories. Given a category or one of its aliases it lists the repositories of that category, and --all lists the repositories of every category."
	changesUseConstant              = "changes [category]"
	changesShortDescription         = "Report repositories with uncommitted changes"
	changesLongDescription          = "changes inspects the repositories of a category, or of every category with --all, and reports those that are not up to date."
	listedRepositoriesMessage       = "listed repositories"
	reportedChangesMessage          = "reported uncommitted changes"
	categoryWithAllFlagMessage      = "received a category together with --all"
	missingCategoryOrAllFlagMessage = "provide either a category or the --all flag"
)

// ErrConflictingSelection is returned when a category and --all are both given.
var ErrConflictingSelection = errors.New(categoryWithAllFlagMessage)

// ErrMissingSelection is returned by changes when neither a category nor --all is given.
var ErrMissingSelection = errors.New(missingCategoryOrAllFlagMessage)

// ListCommandBuilder assembles the ls command.
type ListCommandBuilder struct {
	Providers
}

// Build constructs the ls command.
func (builder *ListCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   listUseConstant,
		Short: listShortDescription,
		Long:  listLongDescription,
		Args:  cobra.MaximumNArgs(1),
	}
	listingFlags := flagutils.BindListingFlags(command, output.Formats(), string(output.FormatFancy))
	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, listingFlags)
	}
	return command, nil
}

func (builder *ListCommandBuilder) run(command *cobra.Command, arguments []string, listingFlags *flagutils.ListingFlagValues) error {
	if len(arguments) > 0 && listingFlags.All {
		return ErrConflictingSelection
	}

	format, formatError := resolveFormat(listingFlags.Format, builder.FormatProvider)
	if formatError != nil {
		return formatError
	}

	repositoryApi, apiError := ResolveApi(command, builder.ApiProvider)
	if apiError != nil {
		return apiError
	}

	renderer := output.NewRenderer(command.OutOrStdout(), format)
	logger := ResolveLogger(builder.LoggerProvider)

	switch {
	case listingFlags.All:
		descriptions, listError := repositoryApi.ListAllRepositories()
		if listError != nil {
			return listError
		}
		logger.Debug(listedRepositoriesMessage, zap.Int(logFieldCountConstant, len(descriptions)))
		return renderer.CategoryDescriptions(descriptions)
	case len(arguments) == 1:
		categoryInput := arguments[0]
		locations, listError := repositoryApi.ListRepositoriesInCategory(categoryInput)
		if listError != nil {
			return DecorateCategoryError(repositoryApi, categoryInput, listError)
		}
		logger.Debug(listedRepositoriesMessage, zap.String(logFieldCategoryConstant, categoryInput), zap.Int(logFieldCountConstant, len(locations)))
		return renderer.Repositories(repositoryApi.ResolveAlias(categoryInput).Category(), locations)
	default:
		categories, listError := repositoryApi.ListCategories()
		if listError != nil {
			return listError
		}
		return renderer.Categories(categories)
	}
}

// ChangesCommandBuilder assembles the changes command.
type ChangesCommandBuilder struct {
	Providers
}

// Build constructs the changes command.
func (builder *ChangesCommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   changesUseConstant,
		Short: changesShortDescription,
		Long:  changesLongDescription,
		Args:  cobra.MaximumNArgs(1),
	}
	listingFlags := flagutils.BindListingFlags(command, output.Formats(), string(output.FormatFancy))
	command.RunE = func(command *cobra.Command, arguments []string) error {
		return builder.run(command, arguments, listingFlags)
	}
	return command, nil
}

func (builder *ChangesCommandBuilder) run(command *cobra.Command, arguments []string, listingFlags *flagutils.ListingFlagValues) error {
	switch {
	case len(arguments) > 0 && listingFlags.All:
		return ErrConflictingSelection
	case len(arguments) == 0 && !listingFlags.All:
		return ErrMissingSelection
	}

	format, formatError := resolveFormat(listingFlags.Format, builder.FormatProvider)
	if formatError != nil {
		return formatError
	}

	repositoryApi, apiError := ResolveApi(command, builder.ApiProvider)
	if apiError != nil {
		return apiError
	}

	var results []grass.ChangeStatusResult
	if listingFlags.All {
		results = changes.ListAllChangeStatus(repositoryApi.Alias, repositoryApi.Discovery, repositoryApi.Git)
	} else {
		categoryInput := arguments[0]
		if categoryError := requireCategory(repositoryApi, categoryInput); categoryError != nil {
			return categoryError
		}
		categoryResults, listError := changes.ListChangeStatusInCategory(repositoryApi.Alias, repositoryApi.Discovery, repositoryApi.Git, categoryInput)
		if listError != nil {
			return DecorateCategoryError(repositoryApi, categoryInput, listError)
		}
		results = categoryResults
	}

	uncommitted := changes.UncommittedOnly(results)
	changes.SortByLocation(uncommitted)
	ResolveLogger(builder.LoggerProvider).Debug(reportedChangesMessage, zap.Int(logFieldCountConstant, len(uncommitted)))

	return output.NewRenderer(command.OutOrStdout(), format).Changes(uncommitted)
}
