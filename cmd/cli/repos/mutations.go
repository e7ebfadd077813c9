package repos

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/grass/internal/grass"
)

const (
	cloneUseConstant           = "clone <remote> <category> [name]"
	cloneShortDescription      = "Clone a remote into a category"
	cloneLongDescription       = "clone runs git clone into the category directory. Without a name the repository is named after the last segment of the remote, minus a trailing .git."
	createUseConstant          = "create <category> <repository>"
	createShortDescription     = "Create an empty repository directory"
	renameUseConstant          = "rename <category> <old> <new>"
	renameShortDescription     = "Rename a repository within its category"
	cleanUseConstant           = "clean <category> <repository>"
	cleanShortDescription      = "Remove the ignored files of a repository"
	cleanLongDescription       = "clean removes every file git ignores in the repository and leaves tracked and untracked files alone."
	pathUseConstant            = "path <category> [repository]"
	pathShortDescription       = "Print the directory of a category or repository"
	outputLineTemplateConstant = "%s\n"
	clonedRepositoryMessage    = "cloned repository"
	createdRepositoryMessage   = "created repository"
	renamedRepositoryMessage   = "renamed repository"
	cleanedRepositoryMessage   = "cleaned repository"
	logFieldNewNameConstant    = "new_repository"
)

// CloneCommandBuilder assembles the clone command.
type CloneCommandBuilder struct {
	Providers
}

// Build constructs the clone command.
func (builder *CloneCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   cloneUseConstant,
		Short: cloneShortDescription,
		Long:  cloneLongDescription,
		Args:  cobra.RangeArgs(2, 3),
		RunE:  builder.run,
	}, nil
}

func (builder *CloneCommandBuilder) run(command *cobra.Command, arguments []string) error {
	remote, categoryInput := arguments[0], arguments[1]

	repositoryApi, apiError := ResolveApi(command, builder.ApiProvider)
	if apiError != nil {
		return apiError
	}
	if categoryError := requireCategory(repositoryApi, categoryInput); categoryError != nil {
		return categoryError
	}

	var location grass.RepositoryLocation
	if len(arguments) == 3 {
		resolvedLocation, locationError := repositoryApi.ResolveLocation(categoryInput, arguments[2])
		if locationError != nil {
			return DecorateCategoryError(repositoryApi, categoryInput, locationError)
		}
		location = resolvedLocation
		if cloneError := repositoryApi.CloneRepository(categoryInput, arguments[2], remote); cloneError != nil {
			return DecorateCategoryError(repositoryApi, categoryInput, cloneError)
		}
	} else {
		clonedLocation, cloneError := repositoryApi.CloneRepositoryDefault(categoryInput, remote)
		if cloneError != nil {
			return DecorateCategoryError(repositoryApi, categoryInput, cloneError)
		}
		location = clonedLocation
	}

	ResolveLogger(builder.LoggerProvider).Info(
		clonedRepositoryMessage,
		zap.String(logFieldRemoteConstant, remote),
		zap.String(logFieldCategoryConstant, string(location.Category)),
		zap.String(logFieldRepositoryConstant, location.Repository),
	)
	_, writeError := fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, location)
	return writeError
}

// CreateCommandBuilder assembles the create command.
type CreateCommandBuilder struct {
	Providers
}

// Build constructs the create command.
func (builder *CreateCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   createUseConstant,
		Short: createShortDescription,
		Args:  cobra.ExactArgs(2),
		RunE:  builder.run,
	}, nil
}

func (builder *CreateCommandBuilder) run(command *cobra.Command, arguments []string) error {
	categoryInput, repository := arguments[0], arguments[1]

	repositoryApi, apiError := ResolveApi(command, builder.ApiProvider)
	if apiError != nil {
		return apiError
	}
	if categoryError := requireCategory(repositoryApi, categoryInput); categoryError != nil {
		return categoryError
	}
	if createError := repositoryApi.CreateRepository(categoryInput, repository); createError != nil {
		return DecorateCategoryError(repositoryApi, categoryInput, createError)
	}

	ResolveLogger(builder.LoggerProvider).Info(createdRepositoryMessage, zap.String(logFieldCategoryConstant, categoryInput), zap.String(logFieldRepositoryConstant, repository))
	return nil
}

// RenameCommandBuilder assembles the rename command.
type RenameCommandBuilder struct {
	Providers
}

// Build constructs the rename command.
func (builder *RenameCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   renameUseConstant,
		Short: renameShortDescription,
		Args:  cobra.ExactArgs(3),
		RunE:  builder.run,
	}, nil
}

func (builder *RenameCommandBuilder) run(command *cobra.Command, arguments []string) error {
	categoryInput, oldRepository, newRepository := arguments[0], arguments[1], arguments[2]

	repositoryApi, apiError := ResolveApi(command, builder.ApiProvider)
	if apiError != nil {
		return apiError
	}
	if categoryError := requireCategory(repositoryApi, categoryInput); categoryError != nil {
		return categoryError
	}
	if moveError := repositoryApi.MoveRepository(categoryInput, oldRepository, categoryInput, newRepository); moveError != nil {
		return DecorateCategoryError(repositoryApi, categoryInput, moveError)
	}

	ResolveLogger(builder.LoggerProvider).Info(
		renamedRepositoryMessage,
		zap.String(logFieldCategoryConstant, categoryInput),
		zap.String(logFieldRepositoryConstant, oldRepository),
		zap.String(logFieldNewNameConstant, newRepository),
	)
	return nil
}

// CleanCommandBuilder assembles the clean command.
type CleanCommandBuilder struct {
	Providers
}

// Build constructs the clean command.
func (builder *CleanCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   cleanUseConstant,
		Short: cleanShortDescription,
		Long:  cleanLongDescription,
		Args:  cobra.ExactArgs(2),
		RunE:  builder.run,
	}, nil
}

func (builder *CleanCommandBuilder) run(command *cobra.Command, arguments []string) error {
	categoryInput, repository := arguments[0], arguments[1]

	repositoryApi, apiError := ResolveApi(command, builder.ApiProvider)
	if apiError != nil {
		return apiError
	}
	if categoryError := requireCategory(repositoryApi, categoryInput); categoryError != nil {
		return categoryError
	}
	if cleanError := repositoryApi.CleanRepository(categoryInput, repository); cleanError != nil {
		return DecorateCategoryError(repositoryApi, categoryInput, cleanError)
	}

	ResolveLogger(builder.LoggerProvider).Info(cleanedRepositoryMessage, zap.String(logFieldCategoryConstant, categoryInput), zap.String(logFieldRepositoryConstant, repository))
	return nil
}

// PathCommandBuilder assembles the path command.
type PathCommandBuilder struct {
	Providers
}

// Build constructs the path command.
func (builder *PathCommandBuilder) Build() (*cobra.Command, error) {
	return &cobra.Command{
		Use:   pathUseConstant,
		Short: pathShortDescription,
		Args:  cobra.RangeArgs(1, 2),
		RunE:  builder.run,
	}, nil
}

func (builder *PathCommandBuilder) run(command *cobra.Command, arguments []string) error {
	categoryInput := arguments[0]

	repositoryApi, apiError := ResolveApi(command, builder.ApiProvider)
	if apiError != nil {
		return apiError
	}
	if categoryError := requireCategory(repositoryApi, categoryInput); categoryError != nil {
		return categoryError
	}

	var directory string
	var pathError error
	if len(arguments) == 2 {
		directory, pathError = repositoryApi.GetRepositoryPath(categoryInput, arguments[1])
	} else {
		directory, pathError = repositoryApi.GetCategoryPath(categoryInput)
	}
	if pathError != nil {
		return DecorateCategoryError(repositoryApi, categoryInput, pathError)
	}

	_, writeError := fmt.Fprintf(command.OutOrStdout(), outputLineTemplateConstant, directory)
	return writeError
}
