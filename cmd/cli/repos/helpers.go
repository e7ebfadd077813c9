package repos

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/temirov/grass/internal/grass/api"
	"github.com/temirov/grass/internal/output"
)

const (
	missingApiProviderMessageConstant = "repository access is not configured"
	logFieldCategoryConstant          = "category"
	logFieldRepositoryConstant        = "repository"
	logFieldRemoteConstant            = "remote"
	logFieldCountConstant             = "count"
)

// ErrApiNotConfigured is returned by commands built without an ApiProvider.
var ErrApiNotConfigured = errors.New(missingApiProviderMessageConstant)

// LoggerProvider yields a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ApiProvider builds the strategy bundle used by one command invocation.
type ApiProvider func(executionContext context.Context) (*api.Api, error)

// FormatProvider yields the configured output format.
type FormatProvider func() output.Format

// Providers groups the collaborators shared by the repository commands.
type Providers struct {
	LoggerProvider LoggerProvider
	ApiProvider    ApiProvider
	FormatProvider FormatProvider
}

// ResolveLogger returns the provided logger, or a no-op logger when none is available.
func ResolveLogger(provider LoggerProvider) *zap.Logger {
	if provider == nil {
		return zap.NewNop()
	}
	logger := provider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}

// ResolveApi obtains the strategy bundle for command.
func ResolveApi(command *cobra.Command, provider ApiProvider) (*api.Api, error) {
	if provider == nil {
		return nil, ErrApiNotConfigured
	}
	executionContext := context.Background()
	if command != nil && command.Context() != nil {
		executionContext = command.Context()
	}
	return provider(executionContext)
}

// resolveFormat prefers an explicit flag value over the configured format.
func resolveFormat(flagValue string, provider FormatProvider) (output.Format, error) {
	if len(flagValue) > 0 {
		return output.ParseFormat(flagValue)
	}
	if provider != nil {
		if configuredFormat := provider(); len(configuredFormat) > 0 {
			return configuredFormat, nil
		}
	}
	return output.FormatFancy, nil
}

// requireCategory fails with a decorated CategoryNotFound error unless categoryInput names a
// configured category or alias.
func requireCategory(repositoryApi *api.Api, categoryInput string) error {
	if _, verifyError := repositoryApi.VerifyCategoryExists(categoryInput); verifyError != nil {
		return DecorateCategoryError(repositoryApi, categoryInput, verifyError)
	}
	return nil
}
