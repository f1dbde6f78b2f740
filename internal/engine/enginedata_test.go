package engine_test

import (
	"testing"

	"codeberg.org/mutker/aerotrace/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewEngineDataDefaults(t *testing.T) {
	data := engine.NewEngineData()

	channels := []struct {
		name string
		get  func() (float64, bool)
	}{
		{"rpm", data.RPM},
		{"manifold_pressure", data.ManifoldPressure},
		{"oil_pressure", data.OilPressure},
		{"oil_temperature", data.OilTemperature},
		{"fuel_pressure", data.FuelPressure},
		{"volts", data.Volts},
		{"amps", data.Amps},
		{"g_force", data.GForce},
	}

	for _, ch := range channels {
		_, ok := ch.get()
		assert.False(t, ok, "channel %s should default to absent", ch.name)
	}

	assert.Equal(t, 0, data.EGTs().Len())
	assert.Equal(t, 0, data.CHTs().Len())
}

func TestNewEngineDataZeroAndNegative(t *testing.T) {
	// Zero is a legitimate value for every channel and must not be
	// coerced to absent.
	data := engine.NewEngineData(
		engine.WithRPM(0.0),
		engine.WithVolts(0.0),
		engine.WithGForce(-0.5),
	)

	rpm, ok := data.RPM()
	require.True(t, ok)
	assert.Equal(t, 0.0, rpm)

	volts, ok := data.Volts()
	require.True(t, ok)
	assert.Equal(t, 0.0, volts)

	gForce, ok := data.GForce()
	require.True(t, ok)
	assert.Equal(t, -0.5, gForce)

	// Channels not passed remain absent.
	_, ok = data.Amps()
	assert.False(t, ok, "volts and amps are independently optional")
}

func TestNewEngineDataFullSnapshot(t *testing.T) {
	egts := engine.NewCylinderReadings([]engine.CylinderReading{
		mustReading(t, 1, 1420.0),
		mustReading(t, 2, 1455.0),
	})
	chts := engine.NewCylinderReadings([]engine.CylinderReading{
		mustReading(t, 1, 355.0),
		mustReading(t, 2, 362.0),
	})

	data := engine.NewEngineData(
		engine.WithRPM(2450.0),
		engine.WithManifoldPressure(24.2),
		engine.WithOilPressure(55.0),
		engine.WithOilTemperature(180.0),
		engine.WithFuelPressure(22.5),
		engine.WithVolts(13.8),
		engine.WithAmps(-2.0),
		engine.WithGForce(1.1),
		engine.WithEGTs(egts),
		engine.WithCHTs(chts),
	)

	rpm, ok := data.RPM()
	require.True(t, ok)
	assert.Equal(t, 2450.0, rpm)

	mp, ok := data.ManifoldPressure()
	require.True(t, ok)
	assert.Equal(t, 24.2, mp)

	oilP, ok := data.OilPressure()
	require.True(t, ok)
	assert.Equal(t, 55.0, oilP)

	oilT, ok := data.OilTemperature()
	require.True(t, ok)
	assert.Equal(t, 180.0, oilT)

	fuelP, ok := data.FuelPressure()
	require.True(t, ok)
	assert.Equal(t, 22.5, fuelP)

	volts, ok := data.Volts()
	require.True(t, ok)
	assert.Equal(t, 13.8, volts)

	amps, ok := data.Amps()
	require.True(t, ok)
	assert.Equal(t, -2.0, amps)

	gForce, ok := data.GForce()
	require.True(t, ok)
	assert.Equal(t, 1.1, gForce)

	assert.Equal(t, 2, data.EGTs().Len())
	hottest, ok := data.EGTs().Hottest()
	require.True(t, ok)
	assert.Equal(t, 2, hottest.Number())

	assert.Equal(t, 2, data.CHTs().Len())
	diff, ok := data.CHTs().Difference()
	require.True(t, ok)
	assert.Equal(t, 7.0, diff)
}
