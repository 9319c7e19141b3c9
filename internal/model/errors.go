package model

import "errors"

// ErrValidation marks malformed or inconsistent input bars.
var ErrValidation = errors.New("validation error")

// ErrInvalidParameter marks bad indicator or classifier configuration.
// Insufficient history is never an error: indicators return undefined
// values instead.
var ErrInvalidParameter = errors.New("invalid parameter")
