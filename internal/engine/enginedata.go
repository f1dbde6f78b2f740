package engine

// EngineData is one standardized engine snapshot across all EMS
// types: every scalar channel sampled at a single instant plus the
// per-cylinder EGT and CHT collections. Temperatures are in
// Fahrenheit, pressures in PSI (manifold pressure in InHg),
// electrical values in Volts and Amps, and G-force is a multiplier.
//
// Every scalar channel is independently optional. A channel the
// device did not report is absent rather than zero, because zero is
// a legitimate value for every channel.
type EngineData struct {
	rpm              *float64
	manifoldPressure *float64 // InHg
	oilPressure      *float64 // PSI
	oilTemperature   *float64 // °F
	fuelPressure     *float64 // PSI
	volts            *float64
	amps             *float64
	gForce           *float64

	egts CylinderReadings
	chts CylinderReadings
}

// Option sets one channel on a snapshot under construction.
type Option func(*EngineData)

// WithRPM sets the engine speed channel.
func WithRPM(v float64) Option {
	return func(d *EngineData) { d.rpm = &v }
}

// WithManifoldPressure sets the manifold pressure channel (InHg).
func WithManifoldPressure(v float64) Option {
	return func(d *EngineData) { d.manifoldPressure = &v }
}

// WithOilPressure sets the oil pressure channel (PSI).
func WithOilPressure(v float64) Option {
	return func(d *EngineData) { d.oilPressure = &v }
}

// WithOilTemperature sets the oil temperature channel (°F).
func WithOilTemperature(v float64) Option {
	return func(d *EngineData) { d.oilTemperature = &v }
}

// WithFuelPressure sets the fuel pressure channel (PSI).
func WithFuelPressure(v float64) Option {
	return func(d *EngineData) { d.fuelPressure = &v }
}

// WithVolts sets the bus voltage channel.
func WithVolts(v float64) Option {
	return func(d *EngineData) { d.volts = &v }
}

// WithAmps sets the alternator/battery current channel.
func WithAmps(v float64) Option {
	return func(d *EngineData) { d.amps = &v }
}

// WithGForce sets the G-force channel.
func WithGForce(v float64) Option {
	return func(d *EngineData) { d.gForce = &v }
}

// WithEGTs sets the exhaust gas temperature collection.
func WithEGTs(readings CylinderReadings) Option {
	return func(d *EngineData) { d.egts = readings }
}

// WithCHTs sets the cylinder head temperature collection.
func WithCHTs(readings CylinderReadings) Option {
	return func(d *EngineData) { d.chts = readings }
}

// NewEngineData constructs a snapshot. Channels not set by an option
// are absent; the EGT and CHT collections default to empty. No
// cross-field validation is performed.
func NewEngineData(opts ...Option) *EngineData {
	d := &EngineData{}
	for _, opt := range opts {
		opt(d)
	}

	return d
}

func present(v *float64) (float64, bool) {
	if v == nil {
		return 0, false
	}

	return *v, true
}

// RPM returns the engine speed and whether the channel was sampled.
func (d *EngineData) RPM() (float64, bool) {
	return present(d.rpm)
}

// ManifoldPressure returns the manifold pressure in InHg.
func (d *EngineData) ManifoldPressure() (float64, bool) {
	return present(d.manifoldPressure)
}

// OilPressure returns the oil pressure in PSI.
func (d *EngineData) OilPressure() (float64, bool) {
	return present(d.oilPressure)
}

// OilTemperature returns the oil temperature in °F.
func (d *EngineData) OilTemperature() (float64, bool) {
	return present(d.oilTemperature)
}

// FuelPressure returns the fuel pressure in PSI.
func (d *EngineData) FuelPressure() (float64, bool) {
	return present(d.fuelPressure)
}

// Volts returns the bus voltage.
func (d *EngineData) Volts() (float64, bool) {
	return present(d.volts)
}

// Amps returns the electrical current.
func (d *EngineData) Amps() (float64, bool) {
	return present(d.amps)
}

// GForce returns the G-force multiplier.
func (d *EngineData) GForce() (float64, bool) {
	return present(d.gForce)
}

// EGTs returns the exhaust gas temperature readings.
func (d *EngineData) EGTs() CylinderReadings {
	return d.egts
}

// CHTs returns the cylinder head temperature readings.
func (d *EngineData) CHTs() CylinderReadings {
	return d.chts
}
