package utils

import "context"

const (
	configurationFilePathContextKeyConstant = commandContextKey("configurationFilePath")
	catalogDirectoryContextKeyConstant      = commandContextKey("catalogDirectory")
)

type commandContextKey string

// CommandContextAccessor stores where the running command loaded its configuration from.
type CommandContextAccessor struct{}

// NewCommandContextAccessor constructs a CommandContextAccessor instance.
func NewCommandContextAccessor() CommandContextAccessor {
	return CommandContextAccessor{}
}

// WithConfigurationFilePath attaches the application configuration file path.
func (accessor CommandContextAccessor) WithConfigurationFilePath(parentContext context.Context, configurationFilePath string) context.Context {
	return withValue(parentContext, configurationFilePathContextKeyConstant, configurationFilePath)
}

// ConfigurationFilePath extracts the application configuration file path.
func (accessor CommandContextAccessor) ConfigurationFilePath(executionContext context.Context) (string, bool) {
	return stringValue(executionContext, configurationFilePathContextKeyConstant)
}

// WithCatalogDirectory attaches the directory holding the category TOML files.
func (accessor CommandContextAccessor) WithCatalogDirectory(parentContext context.Context, catalogDirectory string) context.Context {
	return withValue(parentContext, catalogDirectoryContextKeyConstant, catalogDirectory)
}

// CatalogDirectory extracts the directory holding the category TOML files.
func (accessor CommandContextAccessor) CatalogDirectory(executionContext context.Context) (string, bool) {
	return stringValue(executionContext, catalogDirectoryContextKeyConstant)
}

func withValue(parentContext context.Context, key commandContextKey, value string) context.Context {
	if parentContext == nil {
		parentContext = context.Background()
	}
	return context.WithValue(parentContext, key, value)
}

func stringValue(executionContext context.Context, key commandContextKey) (string, bool) {
	if executionContext == nil {
		return "", false
	}
	value, available := executionContext.Value(key).(string)
	return value, available
}
