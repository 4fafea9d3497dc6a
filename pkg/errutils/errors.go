// Package errutils provides the shared error vocabulary for tilegrab.
// It defines sentinel errors for the configuration, job and download layers and
// small helpers for wrapping errors with context. Packages with their own error
// taxonomy (validate, area, download, downloader) declare those next to the code
// and wrap the sentinels defined here where a cross-package category applies.
package errutils

import (
	"fmt"
)

// Common error types used throughout the application.
var (
	// Config errors are related to the settings file.
	ErrEmptyConfigPath = fmt.Errorf(
		"config file path cannot be empty")

	ErrInvalidConfigPath = fmt.Errorf(
		"invalid config file path")

	ErrConfigParse = fmt.Errorf(
		"failed to parse config")

	// ErrConfigValidation is returned when configuration values fail validation.
	ErrConfigValidation = fmt.Errorf(
		"invalid configuration")

	ErrConfigDirectory = fmt.Errorf(
		"failed to create config directory")

	ErrConfigFileCreate = fmt.Errorf(
		"failed to create config file")

	// ErrConfigFileExists is returned when attempting to create a configuration file that already exists.
	ErrConfigFileExists = fmt.Errorf("configuration file already exists (use --force to overwrite)")

	// ErrConfigFileRename is returned when renaming the temporary config file fails.
	ErrConfigFileRename = fmt.Errorf("failed to rename temporary config file")

	// ErrConfigMarshal is returned when marshaling the config to YAML fails.
	ErrConfigMarshal = fmt.Errorf("failed to marshal config to YAML")

	// ErrHTTPTimeoutNegative is returned when HTTP timeout is set to a negative value.
	ErrHTTPTimeoutNegative = fmt.Errorf("http_timeout cannot be negative")

	// ErrInvalidLogLevel is returned when an invalid log level is specified.
	ErrInvalidLogLevel = fmt.Errorf("invalid log level")

	// ErrInvalidArchiveFormat is returned when an unsupported archive format is requested.
	ErrInvalidArchiveFormat = fmt.Errorf("invalid archive format")

	// ErrUnknownConfigKey is returned when an unknown configuration key is encountered.
	ErrUnknownConfigKey = fmt.Errorf("unknown configuration key")

	// Job errors are related to the tile job file (tile source + area).

	// ErrJobParse is returned when a job file is not valid YAML or JSON.
	ErrJobParse = fmt.Errorf("failed to parse job")

	// ErrJobVersion is returned when a job declares a schema version this build cannot read.
	ErrJobVersion = fmt.Errorf("unsupported job version")

	// ErrInvalidPath is returned when a file or directory path is invalid.
	ErrInvalidPath = fmt.Errorf("invalid path")

	// ErrDownloadFailed is returned when a download operation fails.
	ErrDownloadFailed = fmt.Errorf("download failed")
)

// Wrap wraps an error with additional context.
// If the error is nil, Wrap returns nil.
//
// Example:
//
//	if err := someOperation(); err != nil {
//	    return errutils.Wrap(err, "failed to perform operation")
//	}
func Wrap(err error, msg string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", msg, err)
}

// Wrapf wraps an error with additional formatted context.
// If the error is nil, Wrapf returns nil.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// ErrInvalidLogLevelWithDetails is a helper to create a wrapped error with the invalid level and valid options.
func ErrInvalidLogLevelWithDetails(level string) error {
	return fmt.Errorf("%w: '%s', must be one of: error, warn, info, debug", ErrInvalidLogLevel, level)
}

// ErrInvalidArchiveFormatWithDetails is a helper to create a wrapped error with the invalid format and valid options.
func ErrInvalidArchiveFormatWithDetails(format string) error {
	return fmt.Errorf("%w: '%s', must be one of: zip, tar.gz", ErrInvalidArchiveFormat, format)
}

// ErrJobVersionWithDetails is a helper to create a wrapped error with the declared and supported versions.
func ErrJobVersionWithDetails(declared, supported string) error {
	return fmt.Errorf("%w: %s (supported: %s)", ErrJobVersion, declared, supported)
}
