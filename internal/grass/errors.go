package grass

import (
	"errors"
	"fmt"
	"strings"
)

const (
	strategyErrorTemplateConstant     = "%s: %s"
	strategyErrorReasonsSeparator     = "; "
	categoryNotFoundMessageConstant   = "category not found"
	repositoryNotFoundMessageConstant = "repository not found"
	repositoryExistsMessageConstant   = "repository already exists"
	repositoryMissingMessageConstant  = "repository does not exist"
	fileDoesNotExistMessageConstant   = "file does not exist"
	filesystemFailureMessageConstant  = "filesystem failure"
	repositoryFailureMessageConstant  = "repository failure"
	remoteFetchFailureMessageConstant = "remote fetch failure"
	remoteAuthFailureMessageConstant  = "remote authentication failure"
	unknownFailureMessageConstant     = "unknown failure"
	categoryLookupContextConstant     = "when looking up category '%s'"
	aliasCategoryLookupReasonConstant = "no category registered under that name"
	discoveryFromPathReasonTemplate   = "path lookup failed: %s"
)

// Sentinel kinds shared by every capability error. Each capability error reports errors.Is
// against the sentinel matching its kind.
var (
	ErrCategoryNotFound       = errors.New(categoryNotFoundMessageConstant)
	ErrRepositoryNotFound     = errors.New(repositoryNotFoundMessageConstant)
	ErrRepositoryExists       = errors.New(repositoryExistsMessageConstant)
	ErrRepositoryDoesNotExist = errors.New(repositoryMissingMessageConstant)
	ErrFileDoesNotExist       = errors.New(fileDoesNotExistMessageConstant)
	ErrFilesystem             = errors.New(filesystemFailureMessageConstant)
	ErrRepository             = errors.New(repositoryFailureMessageConstant)
	ErrRemoteFetch            = errors.New(remoteFetchFailureMessageConstant)
	ErrRemoteAuthentication   = errors.New(remoteAuthFailureMessageConstant)
	ErrUnknown                = errors.New(unknownFailureMessageConstant)
)

func formatStrategyError(sentinel error, context string, reason string) string {
	message := sentinel.Error()
	if len(context) > 0 {
		message = fmt.Sprintf(strategyErrorTemplateConstant, message, context)
	}
	if len(reason) > 0 {
		message = fmt.Sprintf(strategyErrorTemplateConstant, message, reason)
	}
	return message
}

// AliasStrategyErrorKind enumerates alias failures.
type AliasStrategyErrorKind int

// Alias failure kinds.
const (
	AliasErrorCategoryNotFound AliasStrategyErrorKind = iota
	AliasErrorUnknown
)

// AliasStrategyError reports a failed alias operation.
type AliasStrategyError struct {
	Kind    AliasStrategyErrorKind
	Context string
	Reason  string
}

// NewAliasCategoryNotFoundError reports that categoryName is not registered.
func NewAliasCategoryNotFoundError(categoryName string) AliasStrategyError {
	return AliasStrategyError{
		Kind:    AliasErrorCategoryNotFound,
		Context: fmt.Sprintf(categoryLookupContextConstant, categoryName),
		Reason:  aliasCategoryLookupReasonConstant,
	}
}

func (aliasError AliasStrategyError) sentinel() error {
	if aliasError.Kind == AliasErrorCategoryNotFound {
		return ErrCategoryNotFound
	}
	return ErrUnknown
}

// Error implements error.
func (aliasError AliasStrategyError) Error() string {
	return formatStrategyError(aliasError.sentinel(), aliasError.Context, aliasError.Reason)
}

// Is matches the sentinel for the error kind.
func (aliasError AliasStrategyError) Is(target error) bool {
	return target == aliasError.sentinel()
}

// PathStrategyErrorKind enumerates path failures.
type PathStrategyErrorKind int

// Path failure kinds.
const (
	PathErrorRepositoryNotFound PathStrategyErrorKind = iota
	PathErrorFileDoesNotExist
	PathErrorUnknown
)

// PathStrategyError reports a failed path mapping.
type PathStrategyError struct {
	Kind    PathStrategyErrorKind
	Context string
	Reason  string
}

func (pathError PathStrategyError) sentinel() error {
	switch pathError.Kind {
	case PathErrorRepositoryNotFound:
		return ErrRepositoryNotFound
	case PathErrorFileDoesNotExist:
		return ErrFileDoesNotExist
	default:
		return ErrUnknown
	}
}

// Error implements error.
func (pathError PathStrategyError) Error() string {
	return formatStrategyError(pathError.sentinel(), pathError.Context, pathError.Reason)
}

// Is matches the sentinel for the error kind.
func (pathError PathStrategyError) Is(target error) bool {
	return target == pathError.sentinel()
}

// DiscoveryStrategyErrorKind enumerates discovery failures.
type DiscoveryStrategyErrorKind int

// Discovery failure kinds.
const (
	DiscoveryErrorCategoryNotFound DiscoveryStrategyErrorKind = iota
	DiscoveryErrorFilesystem
	DiscoveryErrorRepositoryExists
	DiscoveryErrorRepositoryDoesNotExist
	DiscoveryErrorUnknown
)

// DiscoveryStrategyError reports a failed discovery operation.
type DiscoveryStrategyError struct {
	Kind    DiscoveryStrategyErrorKind
	Context string
	Reason  string
}

// DiscoveryErrorFromAlias converts an alias failure raised while discovering. A missing alias
// category stays a missing category.
func DiscoveryErrorFromAlias(aliasError AliasStrategyError) DiscoveryStrategyError {
	kind := DiscoveryErrorUnknown
	if aliasError.Kind == AliasErrorCategoryNotFound {
		kind = DiscoveryErrorCategoryNotFound
	}
	return DiscoveryStrategyError{Kind: kind, Context: aliasError.Context, Reason: aliasError.Reason}
}

// DiscoveryErrorFromPath converts a path failure raised while discovering.
func DiscoveryErrorFromPath(pathError PathStrategyError) DiscoveryStrategyError {
	kind := DiscoveryErrorUnknown
	switch pathError.Kind {
	case PathErrorRepositoryNotFound:
		kind = DiscoveryErrorCategoryNotFound
	case PathErrorFileDoesNotExist:
		kind = DiscoveryErrorFilesystem
	}
	return DiscoveryStrategyError{
		Kind:    kind,
		Context: pathError.Context,
		Reason:  fmt.Sprintf(discoveryFromPathReasonTemplate, pathError.Reason),
	}
}

func (discoveryError DiscoveryStrategyError) sentinel() error {
	switch discoveryError.Kind {
	case DiscoveryErrorCategoryNotFound:
		return ErrCategoryNotFound
	case DiscoveryErrorFilesystem:
		return ErrFilesystem
	case DiscoveryErrorRepositoryExists:
		return ErrRepositoryExists
	case DiscoveryErrorRepositoryDoesNotExist:
		return ErrRepositoryDoesNotExist
	default:
		return ErrUnknown
	}
}

// Error implements error.
func (discoveryError DiscoveryStrategyError) Error() string {
	return formatStrategyError(discoveryError.sentinel(), discoveryError.Context, discoveryError.Reason)
}

// Is matches the sentinel for the error kind.
func (discoveryError DiscoveryStrategyError) Is(target error) bool {
	return target == discoveryError.sentinel()
}

// GitStrategyErrorKind enumerates git failures.
type GitStrategyErrorKind int

// Git failure kinds.
const (
	GitErrorRepositoryNotFound GitStrategyErrorKind = iota
	GitErrorRepository
	GitErrorRepositoryExists
	GitErrorRemoteFetch
	GitErrorRemoteAuthentication
	GitErrorFileSystem
	GitErrorUnknown
)

// GitStrategyError reports a failed git operation. Reasons is populated for GitErrorFileSystem and
// holds one entry per failed filesystem operation.
type GitStrategyError struct {
	Kind    GitStrategyErrorKind
	Context string
	Reason  string
	Reasons []string
}

func (gitError GitStrategyError) sentinel() error {
	switch gitError.Kind {
	case GitErrorRepositoryNotFound:
		return ErrRepositoryNotFound
	case GitErrorRepository:
		return ErrRepository
	case GitErrorRepositoryExists:
		return ErrRepositoryExists
	case GitErrorRemoteFetch:
		return ErrRemoteFetch
	case GitErrorRemoteAuthentication:
		return ErrRemoteAuthentication
	case GitErrorFileSystem:
		return ErrFilesystem
	default:
		return ErrUnknown
	}
}

// Error implements error.
func (gitError GitStrategyError) Error() string {
	reason := gitError.Reason
	if len(gitError.Reasons) > 0 {
		reason = strings.Join(gitError.Reasons, strategyErrorReasonsSeparator)
	}
	return formatStrategyError(gitError.sentinel(), gitError.Context, reason)
}

// Is matches the sentinel for the error kind.
func (gitError GitStrategyError) Is(target error) bool {
	return target == gitError.sentinel()
}

// Error is the top-level error returned by façade operations. It delegates to exactly one
// capability error.
type Error struct {
	cause error
}

// FromAliasError wraps an alias failure.
func FromAliasError(aliasError AliasStrategyError) Error {
	return Error{cause: aliasError}
}

// FromPathError wraps a path failure.
func FromPathError(pathError PathStrategyError) Error {
	return Error{cause: pathError}
}

// FromDiscoveryError wraps a discovery failure.
func FromDiscoveryError(discoveryError DiscoveryStrategyError) Error {
	return Error{cause: discoveryError}
}

// FromGitError wraps a git failure.
func FromGitError(gitError GitStrategyError) Error {
	return Error{cause: gitError}
}

// Error implements error.
func (topLevelError Error) Error() string {
	if topLevelError.cause == nil {
		return ErrUnknown.Error()
	}
	return topLevelError.cause.Error()
}

// Unwrap exposes the capability error.
func (topLevelError Error) Unwrap() error {
	return topLevelError.cause
}

// Wrap lifts any capability error into an Error. Errors that already are Error values, or that
// are not capability errors, are returned unchanged.
func Wrap(err error) error {
	if err == nil {
		return nil
	}
	var topLevelError Error
	if errors.As(err, &topLevelError) {
		return err
	}
	var aliasError AliasStrategyError
	if errors.As(err, &aliasError) {
		return FromAliasError(aliasError)
	}
	var pathError PathStrategyError
	if errors.As(err, &pathError) {
		return FromPathError(pathError)
	}
	var discoveryError DiscoveryStrategyError
	if errors.As(err, &discoveryError) {
		return FromDiscoveryError(discoveryError)
	}
	var gitError GitStrategyError
	if errors.As(err, &gitError) {
		return FromGitError(gitError)
	}
	return err
}
