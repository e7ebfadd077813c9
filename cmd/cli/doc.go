// Package cli builds the grass command line: the Cobra command tree, the Viper backed
// application configuration, the zap logger and the providers through which commands reach the
// category catalog.
package cli
