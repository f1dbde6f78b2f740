package ems

import (
	"bufio"
	"encoding/json"
	"io"
	"strings"

	"codeberg.org/mutker/aerotrace/internal/engine"
	"codeberg.org/mutker/aerotrace/internal/errors"
)

// JSONDecoder reads newline-delimited JSON frames, one object per
// line. Scalar channels use the same names as the CSV format; the
// per-cylinder temperatures arrive as "egt" and "cht" arrays ordered
// by cylinder (1-based position). A null array member means that
// cylinder's probe did not report.
type JSONDecoder struct {
	scanner *bufio.Scanner
}

func NewJSONDecoder(r io.Reader) *JSONDecoder {
	return &JSONDecoder{
		scanner: bufio.NewScanner(r),
	}
}

// Next decodes the next frame. Blank lines are skipped.
func (d *JSONDecoder) Next() (*engine.EngineData, error) {
	errFactory := errors.New()

	var line string
	for {
		if !d.scanner.Scan() {
			if err := d.scanner.Err(); err != nil {
				return nil, errFactory.Wrap(ErrBadFrame, err)
			}
			return nil, io.EOF
		}

		line = strings.TrimSpace(d.scanner.Text())
		if line != "" {
			break
		}
	}

	var frame map[string]any
	if err := json.Unmarshal([]byte(line), &frame); err != nil {
		return nil, errFactory.Wrap(ErrBadFrame, err)
	}

	var opts []engine.Option

	for name, raw := range frame {
		name = strings.ToLower(name)

		scalar, ok := scalarChannels[name]
		if !ok {
			continue
		}
		if raw == nil {
			// Explicit null means the channel was not sampled.
			continue
		}

		value, ok := raw.(float64)
		if !ok {
			return nil, errFactory.WithMessage(ErrBadField,
				"Scalar channel must be a number").WithData(name)
		}
		opts = append(opts, scalar(value))
	}

	egts, err := cylinderArray(frame, channelEGT)
	if err != nil {
		return nil, err
	}
	chts, err := cylinderArray(frame, channelCHT)
	if err != nil {
		return nil, err
	}

	opts = append(opts,
		engine.WithEGTs(egts),
		engine.WithCHTs(chts),
	)

	return engine.NewEngineData(opts...), nil
}

// cylinderArray builds a reading collection from a frame's "egt" or
// "cht" array. Validation errors from the engine package propagate
// unmodified so callers can match on their codes.
func cylinderArray(frame map[string]any, channel string) (engine.CylinderReadings, error) {
	raw, ok := frame[channel]
	if !ok || raw == nil {
		return engine.NewCylinderReadings(nil), nil
	}

	members, ok := raw.([]any)
	if !ok {
		return engine.CylinderReadings{}, errors.New().WithMessage(ErrBadField,
			"Cylinder channel must be an array").WithData(channel)
	}

	var readings []engine.CylinderReading
	for i, member := range members {
		if member == nil {
			continue
		}

		reading, err := engine.CylinderReadingFrom(i+1, member)
		if err != nil {
			return engine.CylinderReadings{}, err
		}
		readings = append(readings, reading)
	}

	return engine.NewCylinderReadings(readings), nil
}
