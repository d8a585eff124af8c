// Package errz provides shared error definitions for the config package and its subpackages.
package errz

import "errors"

// Top-level error categories
var (
	ErrFailedToLoadConfig     = errors.New("failed to load config")
	ErrFailedToValidateConfig = errors.New("failed to validate config")
)

// Validation specific errors
var (
	ErrMissingRequiredField = errors.New("missing required field")
	ErrInvalidValue         = errors.New("invalid value")
	ErrInvalidSiteURL       = errors.New("invalid site URL")
	ErrInvalidAnalyticsID   = errors.New("invalid analytics ID")
	ErrInvalidMetaTag       = errors.New("invalid meta tag")
	ErrInvalidPattern       = errors.New("invalid exclude pattern")
)
