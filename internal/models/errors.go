package models

import (
	"errors"
	"fmt"
)

// ErrorType represents different categories of errors
type ErrorType int

const (
	ErrIO ErrorType = iota
	ErrManifest
	ErrMissingLicense
	ErrBuild
	ErrSigning
	ErrInvalidConfig
)

// String returns the string representation of ErrorType
func (e ErrorType) String() string {
	switch e {
	case ErrIO:
		return "IO"
	case ErrManifest:
		return "Manifest"
	case ErrMissingLicense:
		return "MissingLicense"
	case ErrBuild:
		return "Build"
	case ErrSigning:
		return "Signing"
	case ErrInvalidConfig:
		return "InvalidConfig"
	default:
		return "Unknown"
	}
}

// AurError represents an error raised while producing the AUR artifacts
type AurError struct {
	Type ErrorType
	Path string
	Err  error
}

// Error implements the error interface
func (e *AurError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Path, e.Err)
	}
	return fmt.Sprintf("[%s] %v", e.Type, e.Err)
}

// Unwrap returns the wrapped error
func (e *AurError) Unwrap() error {
	return e.Err
}

// NewError wraps err with the given category
func NewError(t ErrorType, path string, err error) *AurError {
	return &AurError{Type: t, Path: path, Err: err}
}

// IsType reports whether err carries an AurError of category t
func IsType(err error, t ErrorType) bool {
	var aerr *AurError
	if errors.As(err, &aerr) {
		return aerr.Type == t
	}
	return false
}
