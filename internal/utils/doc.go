// Package utils holds the application-level plumbing shared by the grass commands.
//
// ConfigurationLoader layers the embedded defaults, an optional YAML file and GRASS_ environment
// variables through Viper. LoggerFactory builds the zap logger writing to stderr, and
// CommandContextAccessor carries the configuration sources through command contexts.
package utils
