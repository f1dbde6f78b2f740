package ems

import (
	"encoding/csv"
	"io"
	"strconv"
	"strings"

	"codeberg.org/mutker/aerotrace/internal/engine"
	"codeberg.org/mutker/aerotrace/internal/errors"
)

// csvColumn binds one header column to a snapshot channel. Exactly
// one of scalar and channel is set for bound columns; unknown columns
// leave both unset and are ignored.
type csvColumn struct {
	scalar  func(float64) engine.Option
	channel string
	cyl     int
}

// CSVDecoder reads engine-monitor download logs: a header row naming
// the channels (case-insensitive; cylinder columns are egt1..egtN and
// cht1..chtN) followed by one record per sampled frame. Blank cells
// mean the channel was not reported in that frame.
type CSVDecoder struct {
	reader  *csv.Reader
	columns []csvColumn
}

// NewCSVDecoder consumes the header row and prepares column bindings.
func NewCSVDecoder(r io.Reader) (*CSVDecoder, error) {
	errFactory := errors.New()

	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, errFactory.Wrap(ErrBadHeader, err)
	}

	columns := make([]csvColumn, len(header))
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(name))

		if scalar, ok := scalarChannels[name]; ok {
			columns[i] = csvColumn{scalar: scalar}
			continue
		}

		channel, cyl, ok, err := parseCylinderColumn(name)
		if err != nil {
			return nil, err
		}
		if ok {
			columns[i] = csvColumn{channel: channel, cyl: cyl}
		}
		// Unknown columns (timestamps, vendor extras) are skipped.
	}

	return &CSVDecoder{
		reader:  reader,
		columns: columns,
	}, nil
}

// parseCylinderColumn recognizes egtN/chtN header names. Names that
// merely resemble them ("egtx") are not cylinder columns; a cylinder
// index below 1 is a malformed header.
func parseCylinderColumn(name string) (channel string, cyl int, ok bool, err error) {
	for _, prefix := range []string{channelEGT, channelCHT} {
		rest, found := strings.CutPrefix(name, prefix)
		if !found || rest == "" {
			continue
		}

		n, convErr := strconv.Atoi(rest)
		if convErr != nil {
			return "", 0, false, nil
		}
		if n < 1 {
			return "", 0, false, errors.New().WithMessage(ErrBadHeader,
				"Cylinder column index must be >= 1").WithData(name)
		}

		return prefix, n, true, nil
	}

	return "", 0, false, nil
}

// Next decodes the next log record into a snapshot.
func (d *CSVDecoder) Next() (*engine.EngineData, error) {
	errFactory := errors.New()

	record, err := d.reader.Read()
	if err == io.EOF {
		return nil, io.EOF
	}
	if err != nil {
		return nil, errFactory.Wrap(ErrBadRecord, err)
	}

	var opts []engine.Option
	var egts, chts []engine.CylinderReading

	for i, cell := range record {
		col := d.columns[i]
		cell = strings.TrimSpace(cell)

		if cell == "" || (col.scalar == nil && col.channel == "") {
			continue
		}

		value, err := strconv.ParseFloat(cell, 64)
		if err != nil {
			return nil, errFactory.Wrap(ErrBadField, err).WithData(cell)
		}

		switch {
		case col.scalar != nil:
			opts = append(opts, col.scalar(value))
		case col.channel == channelEGT:
			reading, err := engine.NewCylinderReading(col.cyl, value)
			if err != nil {
				return nil, err
			}
			egts = append(egts, reading)
		case col.channel == channelCHT:
			reading, err := engine.NewCylinderReading(col.cyl, value)
			if err != nil {
				return nil, err
			}
			chts = append(chts, reading)
		}
	}

	opts = append(opts,
		engine.WithEGTs(engine.NewCylinderReadings(egts)),
		engine.WithCHTs(engine.NewCylinderReadings(chts)),
	)

	return engine.NewEngineData(opts...), nil
}
