package grass

import (
	"errors"
	"fmt"
	"strings"
)

const (
	sessionStringTemplateConstant       = "%s@%s"
	locationStringTemplateConstant      = "%s/%s"
	emptyRepositoryNameMessageConstant  = "repository name must not be empty"
	uncommittedChangesTemplateConstant  = "uncommitted changes (%d)"
	upToDateStatusLabelConstant         = "up to date"
	noRepositoryStatusLabelConstant     = "no repository"
	unknownStatusLabelConstant          = "unknown"
	discoveryExistsLabelConstant        = "exists"
	discoveryRepositoryMissingConstant  = "repository not found"
	discoveryCategoryMissingConstant    = "category not found"
	changeStatusErrorTemplateConstant   = "error: %s"
	changeStatusUnresolvedLabelConstant = "<unresolved>"
)

// ErrEmptyRepositoryName indicates a RepositoryLocation was requested without a repository name.
var ErrEmptyRepositoryName = errors.New(emptyRepositoryNameMessageConstant)

// Category is the canonical name of a category. Raw user input stays a plain string until it is
// resolved through an AliasStrategy or read from configuration.
type Category string

// String returns the category name.
func (category Category) String() string {
	return string(category)
}

// RepositoryLocation identifies one repository inside one category.
type RepositoryLocation struct {
	Category   Category
	Repository string
}

// NewRepositoryLocation validates and constructs a RepositoryLocation.
func NewRepositoryLocation(category Category, repository string) (RepositoryLocation, error) {
	trimmedRepository := strings.TrimSpace(repository)
	if len(trimmedRepository) == 0 {
		return RepositoryLocation{}, ErrEmptyRepositoryName
	}
	return RepositoryLocation{Category: category, Repository: trimmedRepository}, nil
}

// SessionString renders the location as "repository@category".
func (location RepositoryLocation) SessionString() string {
	return fmt.Sprintf(sessionStringTemplateConstant, location.Repository, location.Category)
}

// String renders the location as "category/repository".
func (location RepositoryLocation) String() string {
	return fmt.Sprintf(locationStringTemplateConstant, location.Category, location.Repository)
}

// Less orders locations by category, then repository.
func (location RepositoryLocation) Less(other RepositoryLocation) bool {
	if location.Category != other.Category {
		return location.Category < other.Category
	}
	return location.Repository < other.Repository
}

// Alias maps a short name onto exactly one category.
type Alias struct {
	Alias    string
	Category Category
}

// ResolveAliasResultKind distinguishes resolved aliases from passthrough input.
type ResolveAliasResultKind int

// Supported alias resolution outcomes.
const (
	ResolveAliasResultNoAlias ResolveAliasResultKind = iota
	ResolveAliasResultAlias
)

// ResolveAliasResult is the outcome of resolving one input string.
type ResolveAliasResult struct {
	Kind  ResolveAliasResultKind
	Alias Alias
	Input string
}

// ResolvedAlias constructs a result for input that matched an alias.
func ResolvedAlias(alias Alias) ResolveAliasResult {
	return ResolveAliasResult{Kind: ResolveAliasResultAlias, Alias: alias, Input: alias.Alias}
}

// NoAlias constructs a passthrough result for input that did not match any alias.
func NoAlias(input string) ResolveAliasResult {
	return ResolveAliasResult{Kind: ResolveAliasResultNoAlias, Input: input}
}

// Category returns the resolved category, or the unchanged input when no alias matched.
func (result ResolveAliasResult) Category() Category {
	if result.Kind == ResolveAliasResultAlias {
		return result.Alias.Category
	}
	return Category(result.Input)
}

// DiscoveryExists is a three-state existence probe.
type DiscoveryExists int

// Existence probe outcomes.
const (
	DiscoveryExistsExists DiscoveryExists = iota
	DiscoveryExistsRepositoryNotFound
	DiscoveryExistsCategoryNotFound
)

// String describes the probe outcome.
func (exists DiscoveryExists) String() string {
	switch exists {
	case DiscoveryExistsExists:
		return discoveryExistsLabelConstant
	case DiscoveryExistsRepositoryNotFound:
		return discoveryRepositoryMissingConstant
	case DiscoveryExistsCategoryNotFound:
		return discoveryCategoryMissingConstant
	default:
		return unknownStatusLabelConstant
	}
}

// RepositoryChangeStatusKind enumerates working tree states.
type RepositoryChangeStatusKind int

// Working tree states.
const (
	RepositoryChangeStatusUpToDate RepositoryChangeStatusKind = iota
	RepositoryChangeStatusNoRepository
	RepositoryChangeStatusUncommittedChanges
	RepositoryChangeStatusUnknown
)

// RepositoryChangeStatus describes the state of one working tree. UncommittedCount is only
// meaningful for RepositoryChangeStatusUncommittedChanges and only as zero versus non-zero.
type RepositoryChangeStatus struct {
	Kind             RepositoryChangeStatusKind
	UncommittedCount int
}

// UpToDate reports a clean working tree.
func UpToDate() RepositoryChangeStatus {
	return RepositoryChangeStatus{Kind: RepositoryChangeStatusUpToDate}
}

// NoRepository reports a directory without git metadata.
func NoRepository() RepositoryChangeStatus {
	return RepositoryChangeStatus{Kind: RepositoryChangeStatusNoRepository}
}

// UncommittedChanges reports a working tree with count non-ignored changes.
func UncommittedChanges(count int) RepositoryChangeStatus {
	return RepositoryChangeStatus{Kind: RepositoryChangeStatusUncommittedChanges, UncommittedCount: count}
}

// UnknownStatus reports a state that could not be classified.
func UnknownStatus() RepositoryChangeStatus {
	return RepositoryChangeStatus{Kind: RepositoryChangeStatusUnknown}
}

// String describes the status for humans.
func (status RepositoryChangeStatus) String() string {
	switch status.Kind {
	case RepositoryChangeStatusUpToDate:
		return upToDateStatusLabelConstant
	case RepositoryChangeStatusNoRepository:
		return noRepositoryStatusLabelConstant
	case RepositoryChangeStatusUncommittedChanges:
		return fmt.Sprintf(uncommittedChangesTemplateConstant, status.UncommittedCount)
	default:
		return unknownStatusLabelConstant
	}
}

// ChangeStatusResult pairs a status, or the reason it could not be determined, with its location.
// Location is nil when the location itself could not be resolved.
type ChangeStatusResult struct {
	Location *RepositoryLocation
	Status   RepositoryChangeStatus
	Failed   bool
	Error    string
}

// ChangeStatusFromStatus builds a successful result.
func ChangeStatusFromStatus(location RepositoryLocation, status RepositoryChangeStatus) ChangeStatusResult {
	return ChangeStatusResult{Location: &location, Status: status}
}

// ChangeStatusFromError builds a failed result. location may be nil.
func ChangeStatusFromError(location *RepositoryLocation, reason string) ChangeStatusResult {
	return ChangeStatusResult{Location: location, Failed: true, Error: reason}
}

// IsUpToDate reports whether the result is a successful UpToDate status.
func (result ChangeStatusResult) IsUpToDate() bool {
	return !result.Failed && result.Status.Kind == RepositoryChangeStatusUpToDate
}

// LocationLabel renders the location or a placeholder when unresolved.
func (result ChangeStatusResult) LocationLabel() string {
	if result.Location == nil {
		return changeStatusUnresolvedLabelConstant
	}
	return result.Location.String()
}

// StatusLabel renders the status or the captured error reason.
func (result ChangeStatusResult) StatusLabel() string {
	if result.Failed {
		return fmt.Sprintf(changeStatusErrorTemplateConstant, result.Error)
	}
	return result.Status.String()
}

// CategoryDescription groups the repositories found in one category.
type CategoryDescription struct {
	Category     Category
	Repositories []RepositoryLocation
}
