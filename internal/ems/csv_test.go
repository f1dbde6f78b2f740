package ems_test

import (
	"io"
	"strings"
	"testing"

	"codeberg.org/mutker/aerotrace/internal/ems"
	"codeberg.org/mutker/aerotrace/internal/engine"
	"codeberg.org/mutker/aerotrace/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCSVDecoderFullRecord(t *testing.T) {
	log := strings.Join([]string{
		"TIME,RPM,MAP,OILP,OILT,FUELP,VOLTS,AMPS,GFORCE,EGT1,EGT2,CHT1,CHT2",
		"12:00:01,2450,24.2,55,180,22.5,13.8,-2,1.1,1420,1455,355,362",
	}, "\n")

	dec, err := ems.NewCSVDecoder(strings.NewReader(log))
	require.NoError(t, err)

	data, err := dec.Next()
	require.NoError(t, err)

	rpm, ok := data.RPM()
	require.True(t, ok)
	assert.Equal(t, 2450.0, rpm)

	mp, ok := data.ManifoldPressure()
	require.True(t, ok)
	assert.Equal(t, 24.2, mp)

	gForce, ok := data.GForce()
	require.True(t, ok)
	assert.Equal(t, 1.1, gForce)

	require.Equal(t, 2, data.EGTs().Len())
	hottest, ok := data.EGTs().Hottest()
	require.True(t, ok)
	assert.Equal(t, 2, hottest.Number())
	assert.Equal(t, 1455.0, hottest.Value())

	require.Equal(t, 2, data.CHTs().Len())
	diff, ok := data.CHTs().Difference()
	require.True(t, ok)
	assert.Equal(t, 7.0, diff)

	_, err = dec.Next()
	assert.Equal(t, io.EOF, err)
}

func TestCSVDecoderBlankCellsAbsent(t *testing.T) {
	log := strings.Join([]string{
		"rpm,volts,amps,egt1,egt2",
		"2300,,,1400,",
	}, "\n")

	dec, err := ems.NewCSVDecoder(strings.NewReader(log))
	require.NoError(t, err)

	data, err := dec.Next()
	require.NoError(t, err)

	rpm, ok := data.RPM()
	require.True(t, ok)
	assert.Equal(t, 2300.0, rpm)

	_, ok = data.Volts()
	assert.False(t, ok, "blank cell means the channel is absent")
	_, ok = data.Amps()
	assert.False(t, ok)

	require.Equal(t, 1, data.EGTs().Len())
	first, err := data.EGTs().At(0)
	require.NoError(t, err)
	assert.Equal(t, 1, first.Number())
	assert.Equal(t, 1400.0, first.Value())
}

func TestCSVDecoderUnknownColumnsIgnored(t *testing.T) {
	log := strings.Join([]string{
		"lcl_date,rpm,fuel_flow,egtx",
		"2024-05-01,2200,11.2,9",
	}, "\n")

	dec, err := ems.NewCSVDecoder(strings.NewReader(log))
	require.NoError(t, err)

	data, err := dec.Next()
	require.NoError(t, err)

	rpm, ok := data.RPM()
	require.True(t, ok)
	assert.Equal(t, 2200.0, rpm)
	assert.Equal(t, 0, data.EGTs().Len())
}

func TestCSVDecoderBadNumericCell(t *testing.T) {
	log := strings.Join([]string{
		"rpm,egt1",
		"notanumber,1400",
	}, "\n")

	dec, err := ems.NewCSVDecoder(strings.NewReader(log))
	require.NoError(t, err)

	_, err = dec.Next()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ems.ErrBadField))
}

func TestCSVDecoderBadCylinderColumn(t *testing.T) {
	_, err := ems.NewCSVDecoder(strings.NewReader("rpm,egt0\n"))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ems.ErrBadHeader))
}

func TestCSVDecoderEmptySource(t *testing.T) {
	_, err := ems.NewCSVDecoder(strings.NewReader(""))
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ems.ErrBadHeader))
}

func TestCSVDecoderShortRecord(t *testing.T) {
	log := strings.Join([]string{
		"rpm,volts",
		"2300",
	}, "\n")

	dec, err := ems.NewCSVDecoder(strings.NewReader(log))
	require.NoError(t, err)

	_, err = dec.Next()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, ems.ErrBadRecord))
}

func TestCSVDecoderMultipleFrames(t *testing.T) {
	log := strings.Join([]string{
		"rpm,egt1",
		"2300,1400",
		"2350,1410",
		"2400,1420",
	}, "\n")

	dec, err := ems.NewCSVDecoder(strings.NewReader(log))
	require.NoError(t, err)

	var rpms []float64
	for {
		data, err := dec.Next()
		if err == io.EOF {
			break
		}
		require.NoError(t, err)

		rpm, ok := data.RPM()
		require.True(t, ok)
		rpms = append(rpms, rpm)
	}
	assert.Equal(t, []float64{2300, 2350, 2400}, rpms)
}

var _ ems.Decoder = (*ems.CSVDecoder)(nil)

// Decoders must surface engine validation errors unmodified so the
// caller can decide whether to skip the frame or abort.
func TestCSVDecoderPropagatesEngineErrors(t *testing.T) {
	// A NaN cell parses as a float but is not a numeric quantity for
	// a cylinder reading.
	log := strings.Join([]string{
		"egt1",
		"NaN",
	}, "\n")

	dec, err := ems.NewCSVDecoder(strings.NewReader(log))
	require.NoError(t, err)

	_, err = dec.Next()
	require.Error(t, err)
	assert.True(t, errors.IsCode(err, engine.ErrNonNumericValue))
}
