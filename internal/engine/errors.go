package engine

import "codeberg.org/mutker/aerotrace/internal/errors"

const (
	// Validation Errors
	ErrInvalidCylinderNumber = errors.ErrorCode("engine_invalid_cylinder_number")
	ErrNonNumericValue       = errors.ErrorCode("engine_non_numeric_value")

	// Access Errors
	ErrIndexOutOfRange = errors.ErrorCode("engine_index_out_of_range")
)
