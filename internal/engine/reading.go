// Package engine defines the canonical in-memory representation of
// EMS telemetry. Device-specific decoders construct these values;
// display, logging and analysis layers consume them. The package
// performs no I/O and no unit conversion.
package engine

import (
	"math"

	"codeberg.org/mutker/aerotrace/internal/errors"
)

// CylinderReading is a temperature reading for a specific cylinder
// (EGT or CHT). Invariants are checked once at construction; the
// value is immutable afterwards.
type CylinderReading struct {
	number int
	value  float64
}

// NewCylinderReading creates a reading for a 1-based cylinder number
// with a temperature in degrees Fahrenheit. Zero and negative
// temperatures are valid; NaN and infinities are not numeric
// quantities and are rejected.
func NewCylinderReading(number int, value float64) (CylinderReading, error) {
	errFactory := errors.New()

	if number < 1 {
		return CylinderReading{}, errFactory.WithMessage(ErrInvalidCylinderNumber,
			"Cylinder number must be >= 1").WithData(number)
	}

	if math.IsNaN(value) || math.IsInf(value, 0) {
		return CylinderReading{}, errFactory.WithMessage(ErrNonNumericValue,
			"Temperature value must be numeric").WithData(value)
	}

	return CylinderReading{number: number, value: value}, nil
}

// CylinderReadingFrom creates a reading from a dynamically typed
// telemetry cell, as decoders hold them after parsing loosely typed
// frames. All Go integer and float kinds are accepted; strings, nil
// and every other kind fail with ErrNonNumericValue.
func CylinderReadingFrom(number int, raw any) (CylinderReading, error) {
	var value float64

	switch v := raw.(type) {
	case float64:
		value = v
	case float32:
		value = float64(v)
	case int:
		value = float64(v)
	case int8:
		value = float64(v)
	case int16:
		value = float64(v)
	case int32:
		value = float64(v)
	case int64:
		value = float64(v)
	case uint:
		value = float64(v)
	case uint8:
		value = float64(v)
	case uint16:
		value = float64(v)
	case uint32:
		value = float64(v)
	case uint64:
		value = float64(v)
	default:
		return CylinderReading{}, errors.New().WithMessage(ErrNonNumericValue,
			"Temperature value must be numeric").WithData(raw)
	}

	return NewCylinderReading(number, value)
}

// Number returns the 1-based cylinder number.
func (r CylinderReading) Number() int {
	return r.number
}

// Value returns the temperature in degrees Fahrenheit.
func (r CylinderReading) Value() float64 {
	return r.value
}
