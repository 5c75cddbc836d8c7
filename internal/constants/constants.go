// Package constants defines global constants used throughout keyhandler.
// It includes version information, paths, defaults and action names.
package constants

// ProjectName is the name of the CLI tool
const ProjectName = "keyhandler"

// EnvPrefix is the prefix for environment variables read by the CLI.
const EnvPrefix = "KEYHANDLER"

// Environment represents the execution environment used to pick a log handler.
type Environment string

// Environment types for logger configuration
const (
	Production Environment = "production"
	CLI        Environment = "cli"
)

// LogFormatJSON selects the JSON log handler.
const LogFormatJSON = "json"

// LogFormatText selects the human readable log handler.
const LogFormatText = "text"
