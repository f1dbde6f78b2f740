package telemetry

import (
	"database/sql"

	"codeberg.org/mutker/aerotrace/internal/errors"
)

// initSchema initializes the database schema for recorded snapshots.
// Scalar channels are nullable so an absent channel stays absent in
// storage instead of degrading to a sentinel value.
func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
        CREATE TABLE IF NOT EXISTS snapshots (
            id INTEGER PRIMARY KEY AUTOINCREMENT,
            sampled_at INTEGER NOT NULL,
            rpm REAL,
            manifold_pressure REAL,
            oil_pressure REAL,
            oil_temperature REAL,
            fuel_pressure REAL,
            volts REAL,
            amps REAL,
            g_force REAL
        );
        CREATE TABLE IF NOT EXISTS cylinder_readings (
            snapshot_id INTEGER NOT NULL REFERENCES snapshots(id),
            channel TEXT NOT NULL,
            cylinder INTEGER NOT NULL,
            value REAL NOT NULL
        );
        CREATE INDEX IF NOT EXISTS idx_cylinder_readings_snapshot
            ON cylinder_readings(snapshot_id)
    `)
	if err != nil {
		return errors.New().Wrap(ErrSchemaInit, err)
	}

	return nil
}
