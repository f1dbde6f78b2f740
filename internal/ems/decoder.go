// Package ems turns raw device telemetry into canonical engine
// snapshots. Each decoder handles one log/frame format; all of them
// emit engine.EngineData and leave validation to the engine package.
package ems

import "codeberg.org/mutker/aerotrace/internal/engine"

// Decoder reads telemetry frames from a source one at a time.
type Decoder interface {
	// Next decodes the next frame. It returns io.EOF once the
	// source is exhausted.
	Next() (*engine.EngineData, error)
}

// Cylinder channel names shared by the decoders.
const (
	channelEGT = "egt"
	channelCHT = "cht"
)

// scalarChannels maps a channel name from a telemetry source to the
// snapshot option that sets it. Both the short engine-monitor names
// and the long canonical names are accepted.
var scalarChannels = map[string]func(float64) engine.Option{
	"rpm":               engine.WithRPM,
	"map":               engine.WithManifoldPressure,
	"manifold_pressure": engine.WithManifoldPressure,
	"oilp":              engine.WithOilPressure,
	"oil_pressure":      engine.WithOilPressure,
	"oilt":              engine.WithOilTemperature,
	"oil_temperature":   engine.WithOilTemperature,
	"fuelp":             engine.WithFuelPressure,
	"fuel_pressure":     engine.WithFuelPressure,
	"volts":             engine.WithVolts,
	"amps":              engine.WithAmps,
	"gforce":            engine.WithGForce,
	"g_force":           engine.WithGForce,
}
