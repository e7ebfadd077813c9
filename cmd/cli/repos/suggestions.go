package repos

import (
	"fmt"
	"slices"
	"strings"

	"github.com/sahilm/fuzzy"

	"github.com/temirov/grass/internal/grass/api"
)

const (
	maximumSuggestionsConstant         = 3
	suggestionSeparatorConstant        = ", "
	categorySuggestionTemplateConstant = "%s\ndid you mean: %s?"
)

// CategoryNotFoundError decorates an unknown-category failure with similarly named categories and
// aliases.
type CategoryNotFoundError struct {
	Input       string
	Suggestions []string
	Err         error
}

// Error implements error.
func (notFoundError CategoryNotFoundError) Error() string {
	if len(notFoundError.Suggestions) == 0 {
		return notFoundError.Err.Error()
	}
	return fmt.Sprintf(categorySuggestionTemplateConstant, notFoundError.Err.Error(), strings.Join(notFoundError.Suggestions, suggestionSeparatorConstant))
}

// Unwrap exposes the underlying failure.
func (notFoundError CategoryNotFoundError) Unwrap() error {
	return notFoundError.Err
}

// DecorateCategoryError attaches suggestions when err reports that categoryInput is unknown.
// Other errors are returned unchanged.
func DecorateCategoryError(repositoryApi *api.Api, categoryInput string, err error) error {
	if err == nil || repositoryApi == nil || !api.IsCategoryNotFound(err) {
		return err
	}
	return CategoryNotFoundError{
		Input:       categoryInput,
		Suggestions: SuggestCategories(repositoryApi, categoryInput),
		Err:         err,
	}
}

// SuggestCategories ranks the known category names and aliases against input. Candidates that
// fuzzily contain input come first, followed by candidates contained in input.
func SuggestCategories(repositoryApi *api.Api, input string) []string {
	trimmedInput := strings.TrimSpace(input)
	if repositoryApi == nil || len(trimmedInput) == 0 {
		return nil
	}

	candidates, candidatesError := repositoryApi.ListCategories()
	if candidatesError != nil {
		candidates = nil
	}
	if aliases, aliasesError := repositoryApi.Alias.ListAllAliases(); aliasesError == nil {
		for _, knownAlias := range aliases {
			candidates = append(candidates, knownAlias.Alias)
		}
	}

	var suggestions []string
	for _, match := range fuzzy.Find(trimmedInput, candidates) {
		suggestions = appendSuggestion(suggestions, match.Str)
	}
	for _, candidate := range candidates {
		if len(fuzzy.Find(candidate, []string{trimmedInput})) > 0 {
			suggestions = appendSuggestion(suggestions, candidate)
		}
	}

	if len(suggestions) > maximumSuggestionsConstant {
		suggestions = suggestions[:maximumSuggestionsConstant]
	}
	return suggestions
}

func appendSuggestion(suggestions []string, candidate string) []string {
	if slices.Contains(suggestions, candidate) {
		return suggestions
	}
	return append(suggestions, candidate)
}
