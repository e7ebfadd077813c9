package flags

import (
	"fmt"
	"slices"
	"strings"
)

const (
	choicePlaceholderPrefix  = "<"
	choicePlaceholderSuffix  = ">"
	choiceSeparatorLiteral   = "|"
	choiceUsageEmptyTemplate = "`%s`"
	choiceUsageFullTemplate  = "`%s` %s"
	choiceParseErrorTemplate = "invalid value %q (expected one of %s)"
	choiceTypeName           = "string"
)

// FormatChoiceUsage renders "`<DEFAULT|other>` description", upper-casing the default choice.
func FormatChoiceUsage(defaultChoice string, choices []string, description string) string {
	placeholder := choicePlaceholderPrefix + strings.Join(highlightDefaultChoice(defaultChoice, choices), choiceSeparatorLiteral) + choicePlaceholderSuffix
	if len(strings.TrimSpace(description)) == 0 {
		return fmt.Sprintf(choiceUsageEmptyTemplate, placeholder)
	}
	return fmt.Sprintf(choiceUsageFullTemplate, placeholder, strings.TrimSpace(description))
}

func highlightDefaultChoice(defaultChoice string, choices []string) []string {
	normalizedDefault := strings.ToLower(strings.TrimSpace(defaultChoice))
	var highlighted []string
	var seen []string
	for _, choice := range normalizeChoices(choices) {
		if slices.Contains(seen, choice) {
			continue
		}
		seen = append(seen, choice)
		if choice == normalizedDefault {
			choice = strings.ToUpper(choice)
		}
		highlighted = append(highlighted, choice)
	}
	return highlighted
}

func normalizeChoices(choices []string) []string {
	normalized := make([]string, 0, len(choices))
	for _, choice := range choices {
		if trimmedChoice := strings.ToLower(strings.TrimSpace(choice)); len(trimmedChoice) > 0 {
			normalized = append(normalized, trimmedChoice)
		}
	}
	return normalized
}

// ChoiceValue is a pflag.Value restricted to a fixed set of lower-case choices. An empty value
// means the flag was not given.
type ChoiceValue struct {
	choices []string
	target  *string
}

// NewChoiceValue binds target to a flag accepting one of choices. target keeps its current value
// until the flag is set.
func NewChoiceValue(target *string, choices []string) *ChoiceValue {
	return &ChoiceValue{choices: normalizeChoices(choices), target: target}
}

// Set implements pflag.Value.
func (value *ChoiceValue) Set(rawValue string) error {
	normalizedValue := strings.ToLower(strings.TrimSpace(rawValue))
	if !slices.Contains(value.choices, normalizedValue) {
		return fmt.Errorf(choiceParseErrorTemplate, rawValue, strings.Join(value.choices, ", "))
	}
	*value.target = normalizedValue
	return nil
}

// String implements pflag.Value.
func (value *ChoiceValue) String() string {
	if value == nil || value.target == nil {
		return ""
	}
	return *value.target
}

// Type implements pflag.Value.
func (value *ChoiceValue) Type() string {
	return choiceTypeName
}
