package ems

import "codeberg.org/mutker/aerotrace/internal/errors"

const (
	// Format Errors
	ErrBadHeader = errors.ErrorCode("ems_bad_header")
	ErrBadRecord = errors.ErrorCode("ems_bad_record")
	ErrBadField  = errors.ErrorCode("ems_bad_field")
	ErrBadFrame  = errors.ErrorCode("ems_bad_frame")
)
