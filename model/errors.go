package model

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrConfig indicates the project layout does not provide a required value.
	ErrConfig = errors.New("configuration error")

	// ErrInvalidMetadata indicates the collected metadata failed validation.
	ErrInvalidMetadata = errors.New("invalid metadata")
)

// ConfigError provides context for configuration errors.
type ConfigError struct {
	Key    string
	File   string
	Reason string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	reason := e.Reason
	if reason == "" {
		reason = "not defined"
	}
	if e.File != "" {
		return fmt.Sprintf("`%s` %s in `%s`", e.Key, reason, e.File)
	}
	return fmt.Sprintf("`%s` %s", e.Key, reason)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ConfigError) Unwrap() error {
	return ErrConfig
}

// NewConfigError creates a configuration error for a key missing from a file.
func NewConfigError(key, file string) error {
	return &ConfigError{Key: key, File: file}
}
