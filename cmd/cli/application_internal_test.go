package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/temirov/grass/internal/output"
	"github.com/temirov/grass/internal/utils"
)

func TestEmbeddedDefaultConfigurationParses(t *testing.T) {
	content, configurationType := EmbeddedDefaultConfiguration()
	require.Equal(t, configurationTypeConstant, configurationType)

	var decoded map[string]map[string]string
	require.NoError(t, yaml.Unmarshal(content, &decoded))
	require.Equal(t, string(utils.LogLevelWarn), decoded["common"]["log_level"])
	require.Contains(t, decoded["grass"], "configuration_directory")
	require.Contains(t, decoded["grass"], "base_directory")
	require.Contains(t, decoded["output"], "format")

	content[0] = '#'
	pristine, _ := EmbeddedDefaultConfiguration()
	require.NotEqual(t, content[0], pristine[0])
}

func TestDefaultsForNonTerminalStreams(t *testing.T) {
	application := newApplication(&bytes.Buffer{}, &bytes.Buffer{})

	require.Equal(t, output.FormatSimple, application.defaultOutputFormat())
	require.Equal(t, utils.LogFormatStructured, application.defaultLogFormat())
}

func TestInitializeConfigurationAppliesFlags(t *testing.T) {
	t.Setenv("GRASS_GRASS_CONFIGURATION_DIRECTORY", "/srv/grass")
	t.Setenv("GRASS_OUTPUT_FORMAT", "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	testCases := []struct {
		name              string
		arguments         []string
		expectedLogLevel  string
		expectedLogFormat string
		expectedFormat    output.Format
	}{
		{
			name:              "defaults",
			arguments:         []string{},
			expectedLogLevel:  string(utils.LogLevelWarn),
			expectedLogFormat: string(utils.LogFormatStructured),
			expectedFormat:    output.FormatSimple,
		},
		{
			name:              "flags_override",
			arguments:         []string{"--log-level", "debug", "--log-format", "console"},
			expectedLogLevel:  string(utils.LogLevelDebug),
			expectedLogFormat: string(utils.LogFormatConsole),
			expectedFormat:    output.FormatSimple,
		},
	}

	for _, testCase := range testCases {
		t.Run(testCase.name, func(t *testing.T) {
			application := newApplication(&bytes.Buffer{}, &bytes.Buffer{})
			require.NoError(t, application.rootCommand.ParseFlags(testCase.arguments))
			require.NoError(t, application.initializeConfiguration(application.rootCommand))

			require.Equal(t, testCase.expectedLogLevel, application.configuration.Common.LogLevel)
			require.Equal(t, testCase.expectedLogFormat, application.configuration.Common.LogFormat)
			require.Equal(t, testCase.expectedFormat, application.outputFormat)
			require.Equal(t, "/srv/grass", application.configuration.Grass.ConfigurationDirectory)
			require.Equal(t, testCase.expectedLogFormat == string(utils.LogFormatConsole), application.humanReadableLoggingEnabled())

			catalogDirectory, found := application.commandContextAccessor.CatalogDirectory(application.rootCommand.Context())
			require.True(t, found)
			require.Equal(t, "/srv/grass", catalogDirectory)
		})
	}
}

func TestFlushLoggerWithoutLogger(t *testing.T) {
	application := &Application{}
	require.NoError(t, application.flushLogger())
}
