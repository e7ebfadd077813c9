package output_test

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/grass/internal/grass"
	"github.com/temirov/grass/internal/output"
)

func sampleDescriptions() []grass.CategoryDescription {
	return []grass.CategoryDescription{
		{Category: "general", Repositories: []grass.RepositoryLocation{
			{Category: "general", Repository: "grass"},
			{Category: "general", Repository: "lawn"},
		}},
		{Category: "work", Repositories: []grass.RepositoryLocation{
			{Category: "work", Repository: "api"},
		}},
	}
}

func sampleChanges() []grass.ChangeStatusResult {
	failedLocation := grass.RepositoryLocation{Category: "work", Repository: "broken"}
	return []grass.ChangeStatusResult{
		grass.ChangeStatusFromStatus(grass.RepositoryLocation{Category: "general", Repository: "grass"}, grass.UncommittedChanges(2)),
		grass.ChangeStatusFromError(&failedLocation, "invalid repository"),
	}
}

func TestParseFormat(testInstance *testing.T) {
	testCases := []struct {
		name          string
		input         string
		expected      output.Format
		expectedError bool
	}{
		{name: "fancy", input: "fancy", expected: output.FormatFancy},
		{name: "mixed_case_with_spaces", input: " Simple ", expected: output.FormatSimple},
		{name: "yaml", input: "yaml", expected: output.FormatYAML},
		{name: "unsupported", input: "json", expectedError: true},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			format, parseError := output.ParseFormat(testCase.input)
			if testCase.expectedError {
				require.ErrorIs(testInstance, parseError, output.ErrUnsupportedFormat)
				return
			}
			require.NoError(testInstance, parseError)
			require.Equal(testInstance, testCase.expected, format)
		})
	}
}

func TestCategoriesRendering(testInstance *testing.T) {
	testCases := []struct {
		name     string
		format   output.Format
		expected string
	}{
		{name: "fancy", format: output.FormatFancy, expected: "┌ Categories\n│\n├─ general\n└─ work\n"},
		{name: "default_is_fancy", format: "", expected: "┌ Categories\n│\n├─ general\n└─ work\n"},
		{name: "simple", format: output.FormatSimple, expected: "general work\n"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var buffer bytes.Buffer
			require.NoError(testInstance, output.NewRenderer(&buffer, testCase.format).Categories([]string{"general", "work"}))
			require.Equal(testInstance, testCase.expected, buffer.String())
		})
	}
}

func TestCategoryDescriptionsRendering(testInstance *testing.T) {
	testCases := []struct {
		name     string
		format   output.Format
		expected string
	}{
		{
			name:     "fancy",
			format:   output.FormatFancy,
			expected: "┌ Repos for category 'general'\n│\n├─ grass\n└─ lawn\n\n┌ Repos for category 'work'\n│\n└─ api\n",
		},
		{name: "simple", format: output.FormatSimple, expected: "general/grass general/lawn work/api\n"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var buffer bytes.Buffer
			require.NoError(testInstance, output.NewRenderer(&buffer, testCase.format).CategoryDescriptions(sampleDescriptions()))
			require.Equal(testInstance, testCase.expected, buffer.String())
		})
	}
}

func TestRepositoriesRenderingEmptyCategory(testInstance *testing.T) {
	var buffer bytes.Buffer
	require.NoError(testInstance, output.NewRenderer(&buffer, output.FormatFancy).Repositories("general", nil))
	require.Equal(testInstance, "┌ Repos for category 'general'\n│\n", buffer.String())
}

func TestCategoryDescriptionsYAML(testInstance *testing.T) {
	var buffer bytes.Buffer
	require.NoError(testInstance, output.NewRenderer(&buffer, output.FormatYAML).CategoryDescriptions(sampleDescriptions()))

	var decoded []map[string]interface{}
	require.NoError(testInstance, yaml.Unmarshal(buffer.Bytes(), &decoded))
	require.Equal(testInstance, []map[string]interface{}{
		{"category": "general", "repositories": []interface{}{"grass", "lawn"}},
		{"category": "work", "repositories": []interface{}{"api"}},
	}, decoded)
}

func TestChangesRendering(testInstance *testing.T) {
	testCases := []struct {
		name     string
		format   output.Format
		expected string
	}{
		{
			name:     "fancy",
			format:   output.FormatFancy,
			expected: "┌ Uncommitted changes\n│\n├─ general/grass: uncommitted changes (2)\n└─ work/broken: error: invalid repository\n",
		},
		{name: "simple", format: output.FormatSimple, expected: "general/grass work/broken\n"},
	}

	for _, testCase := range testCases {
		testInstance.Run(testCase.name, func(testInstance *testing.T) {
			var buffer bytes.Buffer
			require.NoError(testInstance, output.NewRenderer(&buffer, testCase.format).Changes(sampleChanges()))
			require.Equal(testInstance, testCase.expected, buffer.String())
		})
	}
}

func TestChangesYAML(testInstance *testing.T) {
	var buffer bytes.Buffer
	require.NoError(testInstance, output.NewRenderer(&buffer, output.FormatYAML).Changes(sampleChanges()))

	var decoded []map[string]string
	require.NoError(testInstance, yaml.Unmarshal(buffer.Bytes(), &decoded))
	require.Equal(testInstance, []map[string]string{
		{"category": "general", "repository": "grass", "status": "uncommitted changes (2)"},
		{"category": "work", "repository": "broken", "status": "", "error": "invalid repository"},
	}, decoded)
}
