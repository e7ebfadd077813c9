package git

import (
	"fmt"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/grass/fixture"
)

const (
	mockMissingRepositoryReasonConstant = "repository not found"
	mockMissingCategoryReasonConstant   = "category not found"
)

// MockStrategy answers from the fixture tree.
type MockStrategy struct{}

// NewMockStrategy constructs a MockStrategy.
func NewMockStrategy() *MockStrategy {
	return &MockStrategy{}
}

// Clean implements grass.GitStrategy. Repositories of the healthy fixture categories always clean
// successfully.
func (strategy *MockStrategy) Clean(location grass.RepositoryLocation) error {
	errorContext := fmt.Sprintf(cleanContextTemplateConstant, location)
	repository, categoryFound, repositoryFound := fixture.LookupRepository(string(location.Category), location.Repository)
	if !categoryFound {
		return grass.GitStrategyError{Kind: grass.GitErrorRepositoryNotFound, Context: errorContext, Reason: mockMissingCategoryReasonConstant}
	}
	if location.Category != fixture.CategoryWithError {
		return nil
	}
	if !repositoryFound {
		return grass.GitStrategyError{Kind: grass.GitErrorRepositoryNotFound, Context: errorContext, Reason: mockMissingRepositoryReasonConstant}
	}
	return stateError(repository.State, errorContext)
}

// Clone implements grass.GitStrategy.
func (strategy *MockStrategy) Clone(location grass.RepositoryLocation, remote string) error {
	errorContext := fmt.Sprintf(cloneContextTemplateConstant, remote, location)
	_, categoryFound, repositoryFound := fixture.LookupRepository(string(location.Category), location.Repository)
	if !categoryFound {
		return grass.GitStrategyError{Kind: grass.GitErrorRepositoryNotFound, Context: errorContext, Reason: mockMissingCategoryReasonConstant}
	}
	if repositoryFound {
		return grass.GitStrategyError{
			Kind:    grass.GitErrorRepositoryExists,
			Context: errorContext,
			Reason:  fmt.Sprintf(existingWorkTreeReasonTemplate, location),
		}
	}

	switch remote {
	case fixture.RemoteGood:
		return nil
	case fixture.RemoteNoAccess:
		return grass.GitStrategyError{Kind: grass.GitErrorRemoteAuthentication, Context: errorContext, Reason: fixture.RemoteNoAccessReason}
	case fixture.RemoteBadResponse:
		return grass.GitStrategyError{Kind: grass.GitErrorRemoteFetch, Context: errorContext, Reason: fixture.RemoteBadResponseReason}
	default:
		return grass.GitStrategyError{Kind: grass.GitErrorRemoteFetch, Context: errorContext, Reason: fixture.RemoteUnknownReason}
	}
}

// GetChanges implements grass.GitStrategy.
func (strategy *MockStrategy) GetChanges(location grass.RepositoryLocation) (grass.RepositoryChangeStatus, error) {
	errorContext := fmt.Sprintf(changesContextTemplateConstant, location)
	repository, categoryFound, repositoryFound := fixture.LookupRepository(string(location.Category), location.Repository)
	switch {
	case !categoryFound:
		return grass.UnknownStatus(), grass.GitStrategyError{Kind: grass.GitErrorRepositoryNotFound, Context: errorContext, Reason: mockMissingCategoryReasonConstant}
	case !repositoryFound:
		return grass.UnknownStatus(), grass.GitStrategyError{Kind: grass.GitErrorRepositoryNotFound, Context: errorContext, Reason: mockMissingRepositoryReasonConstant}
	}

	switch repository.State {
	case fixture.RepositoryStateClean:
		return grass.UpToDate(), nil
	case fixture.RepositoryStateNoRepository:
		return grass.NoRepository(), nil
	case fixture.RepositoryStateUncommittedChanges:
		return grass.UncommittedChanges(fixture.UncommittedChangeCount), nil
	default:
		return grass.UnknownStatus(), stateError(repository.State, errorContext)
	}
}

func stateError(state fixture.RepositoryState, errorContext string) error {
	switch state {
	case fixture.RepositoryStateRepositoryError:
		return grass.GitStrategyError{Kind: grass.GitErrorRepository, Context: errorContext, Reason: fixture.RepositoryErrorReason}
	case fixture.RepositoryStateFileSystemError:
		return grass.GitStrategyError{
			Kind:    grass.GitErrorFileSystem,
			Context: errorContext,
			Reason:  fixture.FileSystemErrorReason,
			Reasons: []string{fixture.FileSystemErrorReason},
		}
	default:
		return nil
	}
}
