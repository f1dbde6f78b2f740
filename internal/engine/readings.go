package engine

import (
	"iter"

	"codeberg.org/mutker/aerotrace/internal/errors"
)

// CylinderReadings is an ordered collection of cylinder temperature
// readings. Stored order is preserved and meaningful; duplicate
// cylinder numbers are allowed since the collection reflects raw
// sensor data. Aggregate queries recompute from the current contents
// on every call and are never cached.
type CylinderReadings struct {
	readings []CylinderReading
}

// NewCylinderReadings builds a collection from the given readings in
// order. The slice is copied so the caller may reuse it. A nil or
// empty slice yields a valid empty collection.
func NewCylinderReadings(readings []CylinderReading) CylinderReadings {
	if len(readings) == 0 {
		return CylinderReadings{}
	}

	stored := make([]CylinderReading, len(readings))
	copy(stored, readings)

	return CylinderReadings{readings: stored}
}

// Len returns the number of readings in the collection.
func (c CylinderReadings) Len() int {
	return len(c.readings)
}

// All returns an iterator over the readings in stored order. Each
// call yields a fresh traversal.
func (c CylinderReadings) All() iter.Seq[CylinderReading] {
	return func(yield func(CylinderReading) bool) {
		for _, r := range c.readings {
			if !yield(r) {
				return
			}
		}
	}
}

// At returns the reading at the given zero-based position, failing
// with ErrIndexOutOfRange outside [0, Len).
func (c CylinderReadings) At(index int) (CylinderReading, error) {
	if index < 0 || index >= len(c.readings) {
		return CylinderReading{}, errors.New().WithData(ErrIndexOutOfRange, struct {
			Index int
			Len   int
		}{
			Index: index,
			Len:   len(c.readings),
		})
	}

	return c.readings[index], nil
}

// Hottest returns the reading with the highest temperature. When
// several readings share the maximum, the earliest in stored order
// wins. The second return value is false when the collection is
// empty.
func (c CylinderReadings) Hottest() (CylinderReading, bool) {
	if len(c.readings) == 0 {
		return CylinderReading{}, false
	}

	hottest := c.readings[0]
	for _, r := range c.readings[1:] {
		if r.value > hottest.value {
			hottest = r
		}
	}

	return hottest, true
}

// Coolest returns the reading with the lowest temperature, with the
// same first-occurrence tie-break and empty-collection behavior as
// Hottest.
func (c CylinderReadings) Coolest() (CylinderReading, bool) {
	if len(c.readings) == 0 {
		return CylinderReading{}, false
	}

	coolest := c.readings[0]
	for _, r := range c.readings[1:] {
		if r.value < coolest.value {
			coolest = r
		}
	}

	return coolest, true
}

// Difference returns the temperature spread between the hottest and
// coolest readings. It is absent only for an empty collection; a
// single reading yields 0.
func (c CylinderReadings) Difference() (float64, bool) {
	hottest, ok := c.Hottest()
	if !ok {
		return 0, false
	}

	coolest, _ := c.Coolest()

	return hottest.value - coolest.value, true
}
