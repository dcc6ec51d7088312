package apperr

import "errors"

var (
	// ErrValidationFailed signals that at least one error-severity
	// diagnostic was recorded. Warnings alone never produce it.
	ErrValidationFailed = errors.New("validation failed")
)
