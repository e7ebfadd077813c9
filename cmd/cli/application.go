package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/temirov/grass/cmd/cli/configcmd"
	"github.com/temirov/grass/cmd/cli/repos"
	"github.com/temirov/grass/cmd/cli/session"
	"github.com/temirov/grass/internal/grass/api"
	"github.com/temirov/grass/internal/output"
	"github.com/temirov/grass/internal/repos/dependencies"
	"github.com/temirov/grass/internal/userconfig"
	"github.com/temirov/grass/internal/utils"
	flagutils "github.com/temirov/grass/internal/utils/flags"
	pathutils "github.com/temirov/grass/internal/utils/path"
)

const (
	applicationNameConstant                 = "grass"
	applicationShortDescriptionConstant     = "Manage local git repositories grouped into categories"
	applicationLongDescriptionConstant      = "grass keeps repositories under <base_dir>/<category>/<repository> and lists, clones, cleans and inspects them by category or alias."
	configFileFlagNameConstant              = "config"
	configFileFlagUsageConstant             = "Optional path to an application configuration file (YAML)."
	logLevelFlagNameConstant                = "log-level"
	logLevelFlagUsageConstant               = "Override the configured log level"
	logFormatFlagNameConstant               = "log-format"
	logFormatFlagUsageConstant              = "Override the configured log format"
	commonConfigurationKeyConstant          = "common"
	commonLogLevelConfigKeyConstant         = commonConfigurationKeyConstant + ".log_level"
	environmentPrefixConstant               = "GRASS"
	configurationNameConstant               = "config"
	configurationTypeConstant               = "yaml"
	defaultConfigurationSearchPathConstant  = "."
	userConfigurationDirectoryNameConstant  = "grass"
	configurationInitializedMessageConstant = "configuration initialized"
	configurationLogLevelFieldConstant      = "log_level"
	configurationLogFormatFieldConstant     = "log_format"
	configurationFileFieldConstant          = "config_file"
	catalogDirectoryFieldConstant           = "catalog_directory"
	configurationLoadErrorTemplateConstant  = "unable to load configuration: %w"
	loggerCreationErrorTemplateConstant     = "unable to create logger: %w"
	loggerSyncErrorTemplateConstant         = "unable to flush logger: %w"
	catalogLoadErrorTemplateConstant        = "unable to load categories: %w"
	outputFormatErrorTemplateConstant       = "invalid output.format: %w"
	errorOutputTemplateConstant             = "%v\n"
	missingConfigurationDirectoryMessage    = "no configuration directory: set grass.configuration_directory or GRASS_GRASS_CONFIGURATION_DIRECTORY"
	exitCodeSuccessConstant                 = 0
	exitCodeFailureConstant                 = 1
)

// ApplicationConfiguration describes the persisted configuration for the CLI entrypoint.
type ApplicationConfiguration struct {
	Common ApplicationCommonConfiguration `mapstructure:"common"`
	Grass  ApplicationGrassConfiguration  `mapstructure:"grass"`
	Output ApplicationOutputConfiguration `mapstructure:"output"`
}

// ApplicationCommonConfiguration stores logging configuration shared across commands.
type ApplicationCommonConfiguration struct {
	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`
}

// ApplicationGrassConfiguration locates the category catalog. Empty values select the defaults.
type ApplicationGrassConfiguration struct {
	ConfigurationDirectory string `mapstructure:"configuration_directory"`
	BaseDirectory          string `mapstructure:"base_directory"`
}

// ApplicationOutputConfiguration selects how command results are rendered.
type ApplicationOutputConfiguration struct {
	Format string `mapstructure:"format"`
}

// Application wires the Cobra root command, configuration loader, and structured logger.
type Application struct {
	rootCommand            *cobra.Command
	configurationLoader    *utils.ConfigurationLoader
	loggerFactory          *utils.LoggerFactory
	logger                 *zap.Logger
	configuration          ApplicationConfiguration
	configurationMetadata  utils.LoadedConfiguration
	configurationFilePath  string
	logLevelFlagValue      string
	logFormatFlagValue     string
	commandContextAccessor utils.CommandContextAccessor
	standardOutput         io.Writer
	standardError          io.Writer
	outputFormat           output.Format
	repositoryApi          *api.Api
}

// NewApplication assembles a CLI application writing to the process streams.
func NewApplication() *Application {
	return newApplication(os.Stdout, os.Stderr)
}

func newApplication(standardOutput io.Writer, standardError io.Writer) *Application {
	configurationLoader := utils.NewConfigurationLoader(
		configurationNameConstant,
		configurationTypeConstant,
		environmentPrefixConstant,
		configurationSearchPaths(),
	)
	embeddedConfiguration, _ := EmbeddedDefaultConfiguration()
	configurationLoader.SetEmbeddedConfiguration(embeddedConfiguration)

	application := &Application{
		configurationLoader:    configurationLoader,
		loggerFactory:          utils.NewLoggerFactoryWithWriter(standardError),
		logger:                 zap.NewNop(),
		commandContextAccessor: utils.NewCommandContextAccessor(),
		standardOutput:         standardOutput,
		standardError:          standardError,
	}

	cobraCommand := &cobra.Command{
		Use:           applicationNameConstant,
		Short:         applicationShortDescriptionConstant,
		Long:          applicationLongDescriptionConstant,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(command *cobra.Command, arguments []string) error {
			return application.initializeConfiguration(command)
		},
		RunE: func(command *cobra.Command, arguments []string) error {
			return command.Help()
		},
	}

	cobraCommand.SetContext(context.Background())
	cobraCommand.SetOut(standardOutput)
	cobraCommand.SetErr(standardError)
	cobraCommand.PersistentFlags().StringVar(&application.configurationFilePath, configFileFlagNameConstant, "", configFileFlagUsageConstant)
	cobraCommand.PersistentFlags().Var(
		flagutils.NewChoiceValue(&application.logLevelFlagValue, utils.LogLevels()),
		logLevelFlagNameConstant,
		flagutils.FormatChoiceUsage(string(utils.LogLevelWarn), utils.LogLevels(), logLevelFlagUsageConstant),
	)
	cobraCommand.PersistentFlags().Var(
		flagutils.NewChoiceValue(&application.logFormatFlagValue, utils.LogFormats()),
		logFormatFlagNameConstant,
		flagutils.FormatChoiceUsage(string(application.defaultLogFormat()), utils.LogFormats(), logFormatFlagUsageConstant),
	)

	providers := repos.Providers{
		LoggerProvider: func() *zap.Logger {
			return application.logger
		},
		ApiProvider: application.resolveRepositoryApi,
		FormatProvider: func() output.Format {
			return application.outputFormat
		},
	}

	repositoryCommandSet := repos.CommandSetBuilder{Providers: providers}
	if repositoryCommands, buildError := repositoryCommandSet.Build(); buildError == nil {
		cobraCommand.AddCommand(repositoryCommands...)
	}

	sessionBuilder := session.CommandBuilder{
		Providers:                    providers,
		HumanReadableLoggingProvider: application.humanReadableLoggingEnabled,
	}
	if sessionCommand, buildError := sessionBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(sessionCommand)
	}

	configurationBuilder := configcmd.CommandBuilder{
		LoggerProvider:        providers.LoggerProvider,
		ConfigurationProvider: application.loadUserConfiguration,
	}
	if configurationCommand, buildError := configurationBuilder.Build(); buildError == nil {
		cobraCommand.AddCommand(configurationCommand)
	}

	application.rootCommand = cobraCommand

	return application
}

// Execute runs the configured Cobra command hierarchy and ensures logger flushing.
func (application *Application) Execute() error {
	executionError := application.rootCommand.Execute()
	if syncError := application.flushLogger(); syncError != nil && executionError == nil {
		return fmt.Errorf(loggerSyncErrorTemplateConstant, syncError)
	}
	return executionError
}

// Run executes the command line in arguments, whose first element is the program name, and
// returns the process exit code. Failures are printed to standardError.
func Run(arguments []string, standardInput io.Reader, standardOutput io.Writer, standardError io.Writer) int {
	application := newApplication(standardOutput, standardError)
	commandArguments := []string{}
	if len(arguments) > 1 {
		commandArguments = arguments[1:]
	}
	application.rootCommand.SetArgs(commandArguments)
	application.rootCommand.SetIn(standardInput)

	if executionError := application.Execute(); executionError != nil {
		fmt.Fprintf(standardError, errorOutputTemplateConstant, executionError)
		return exitCodeFailureConstant
	}
	return exitCodeSuccessConstant
}

func configurationSearchPaths() []string {
	searchPaths := []string{defaultConfigurationSearchPathConstant}
	if userConfigurationDirectory, directoryError := os.UserConfigDir(); directoryError == nil {
		searchPaths = append(searchPaths, filepath.Join(userConfigurationDirectory, userConfigurationDirectoryNameConstant))
	}
	return searchPaths
}

func (application *Application) initializeConfiguration(command *cobra.Command) error {
	defaultValues := map[string]any{
		commonLogLevelConfigKeyConstant: string(utils.LogLevelWarn),
	}

	loadedConfiguration, loadError := application.configurationLoader.LoadConfiguration(application.configurationFilePath, defaultValues, &application.configuration)
	if loadError != nil {
		return fmt.Errorf(configurationLoadErrorTemplateConstant, loadError)
	}

	application.configurationMetadata = loadedConfiguration

	if application.persistentFlagChanged(command, logLevelFlagNameConstant) {
		application.configuration.Common.LogLevel = application.logLevelFlagValue
	}

	if application.persistentFlagChanged(command, logFormatFlagNameConstant) {
		application.configuration.Common.LogFormat = application.logFormatFlagValue
	}

	if len(application.configuration.Common.LogFormat) == 0 {
		application.configuration.Common.LogFormat = string(application.defaultLogFormat())
	}

	if len(application.configuration.Grass.ConfigurationDirectory) == 0 {
		application.configuration.Grass.ConfigurationDirectory = defaultCatalogDirectory()
	}

	application.outputFormat = application.defaultOutputFormat()
	if len(application.configuration.Output.Format) > 0 {
		configuredFormat, formatError := output.ParseFormat(application.configuration.Output.Format)
		if formatError != nil {
			return fmt.Errorf(outputFormatErrorTemplateConstant, formatError)
		}
		application.outputFormat = configuredFormat
	}

	logger, loggerCreationError := application.loggerFactory.CreateLogger(
		utils.LogLevel(application.configuration.Common.LogLevel),
		utils.LogFormat(application.configuration.Common.LogFormat),
	)
	if loggerCreationError != nil {
		return fmt.Errorf(loggerCreationErrorTemplateConstant, loggerCreationError)
	}

	application.logger = logger

	application.logger.Info(
		configurationInitializedMessageConstant,
		zap.String(configurationLogLevelFieldConstant, application.configuration.Common.LogLevel),
		zap.String(configurationLogFormatFieldConstant, application.configuration.Common.LogFormat),
		zap.String(configurationFileFieldConstant, application.configurationMetadata.ConfigFileUsed),
		zap.String(catalogDirectoryFieldConstant, application.configuration.Grass.ConfigurationDirectory),
	)

	if command != nil {
		updatedContext := application.commandContextAccessor.WithConfigurationFilePath(
			command.Context(),
			application.configurationMetadata.ConfigFileUsed,
		)
		updatedContext = application.commandContextAccessor.WithCatalogDirectory(
			updatedContext,
			application.configuration.Grass.ConfigurationDirectory,
		)
		command.SetContext(updatedContext)
		if rootCommand := command.Root(); rootCommand != nil {
			rootCommand.SetContext(updatedContext)
		}
	}

	return nil
}

func defaultCatalogDirectory() string {
	userConfigurationDirectory, directoryError := os.UserConfigDir()
	if directoryError != nil {
		return ""
	}
	return filepath.Join(userConfigurationDirectory, userConfigurationDirectoryNameConstant)
}

// loadUserConfiguration reads the category TOML files and applies the base directory override.
func (application *Application) loadUserConfiguration(_ context.Context) (userconfig.Configuration, error) {
	catalogDirectory := application.configuration.Grass.ConfigurationDirectory
	if len(catalogDirectory) == 0 {
		return userconfig.Configuration{}, errors.New(missingConfigurationDirectoryMessage)
	}

	normalizer := pathutils.NewDirectoryNormalizer(nil)
	configuration, loadError := userconfig.NewLoader(nil, application.logger).Load(normalizer.Normalize(catalogDirectory))
	if loadError != nil {
		return userconfig.Configuration{}, fmt.Errorf(catalogLoadErrorTemplateConstant, loadError)
	}
	return configuration.WithBaseDirectory(application.configuration.Grass.BaseDirectory), nil
}

// resolveRepositoryApi builds the local strategy bundle once per invocation.
func (application *Application) resolveRepositoryApi(executionContext context.Context) (*api.Api, error) {
	if application.repositoryApi != nil {
		return application.repositoryApi, nil
	}

	configuration, loadError := application.loadUserConfiguration(executionContext)
	if loadError != nil {
		return nil, loadError
	}

	categoryCatalog, catalogError := configuration.Catalog(pathutils.NewDirectoryNormalizer(nil))
	if catalogError != nil {
		return nil, fmt.Errorf(catalogLoadErrorTemplateConstant, catalogError)
	}

	shellExecutor, executorError := dependencies.ResolveShellExecutor(nil, application.logger, application.humanReadableLoggingEnabled())
	if executorError != nil {
		return nil, executorError
	}

	repositoryApi, apiError := api.NewLocal(executionContext, categoryCatalog, shellExecutor, application.logger)
	if apiError != nil {
		return nil, apiError
	}
	application.repositoryApi = repositoryApi
	return repositoryApi, nil
}

func (application *Application) humanReadableLoggingEnabled() bool {
	logFormatValue := strings.TrimSpace(application.configuration.Common.LogFormat)
	return strings.EqualFold(logFormatValue, string(utils.LogFormatConsole))
}

func (application *Application) defaultLogFormat() utils.LogFormat {
	if file, isFile := application.standardError.(*os.File); isFile {
		return utils.DefaultLogFormat(file)
	}
	return utils.LogFormatStructured
}

// defaultOutputFormat selects fancy output for terminals and simple output for pipes.
func (application *Application) defaultOutputFormat() output.Format {
	if file, isFile := application.standardOutput.(*os.File); isFile && isTerminal(file) {
		return output.FormatFancy
	}
	return output.FormatSimple
}

func isTerminal(file *os.File) bool {
	return isatty.IsTerminal(file.Fd()) || isatty.IsCygwinTerminal(file.Fd())
}

func (application *Application) flushLogger() error {
	if application.logger == nil {
		return nil
	}

	syncError := application.logger.Sync()
	switch {
	case syncError == nil:
		return nil
	case errors.Is(syncError, syscall.ENOTSUP):
		return nil
	case errors.Is(syncError, syscall.EINVAL):
		return nil
	case errors.Is(syncError, syscall.ENOTTY):
		return nil
	default:
		return syncError
	}
}

func (application *Application) persistentFlagChanged(command *cobra.Command, flagName string) bool {
	if command == nil {
		return false
	}

	flagSetsToInspect := []*pflag.FlagSet{
		command.PersistentFlags(),
		command.InheritedFlags(),
	}

	if rootCommand := command.Root(); rootCommand != nil {
		flagSetsToInspect = append(flagSetsToInspect, rootCommand.PersistentFlags())
	}

	for _, flagSet := range flagSetsToInspect {
		if flagSet != nil && flagSet.Changed(flagName) {
			return true
		}
	}

	return false
}
