package sqlexec

import "errors"

// Programmer errors against the Result/Value surface. Callers treat these as
// bugs, not as conditions to recover from.
var (
	ErrNullValue      = errors.New("sqlexec: null value has no conversion")
	ErrColumnNotFound = errors.New("sqlexec: column name not found")
	ErrOutOfRange     = errors.New("sqlexec: row or column index out of range")
)
