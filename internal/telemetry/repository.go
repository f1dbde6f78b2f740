package telemetry

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"time"

	"codeberg.org/mutker/aerotrace/internal/engine"
	"codeberg.org/mutker/aerotrace/internal/errors"
	"codeberg.org/mutker/aerotrace/internal/logger"

	_ "github.com/mattn/go-sqlite3"
)

type sqliteRepository struct {
	db *sql.DB
	mu sync.Mutex
}

func NewRepository(cfg Config) (Repository, error) {
	errFactory := errors.New()

	if cfg.DBPath == "" {
		return nil, errFactory.New(ErrInvalidDBPath)
	}

	logger.Debug().Msgf("Initializing telemetry repository at: %s", cfg.DBPath)

	// Ensure the directory exists
	if err := os.MkdirAll(filepath.Dir(cfg.DBPath), defaultDirPerm); err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	db, err := sql.Open("sqlite3", cfg.DBPath+"?_journal=WAL")
	if err != nil {
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, errFactory.Wrap(ErrStorageInit, err)
	}

	return &sqliteRepository{
		db: db,
	}, nil
}

func (r *sqliteRepository) Store(ctx context.Context, sampledAt time.Time, snapshot *engine.EngineData) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	errFactory := errors.New()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx, `
        INSERT INTO snapshots (
            sampled_at, rpm, manifold_pressure,
            oil_pressure, oil_temperature, fuel_pressure,
            volts, amps, g_force
        ) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `,
		sampledAt.Unix(),
		nullFloat(snapshot.RPM()),
		nullFloat(snapshot.ManifoldPressure()),
		nullFloat(snapshot.OilPressure()),
		nullFloat(snapshot.OilTemperature()),
		nullFloat(snapshot.FuelPressure()),
		nullFloat(snapshot.Volts()),
		nullFloat(snapshot.Amps()),
		nullFloat(snapshot.GForce()),
	)
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	snapshotID, err := res.LastInsertId()
	if err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	if err := storeReadings(ctx, tx, snapshotID, "egt", snapshot.EGTs()); err != nil {
		return err
	}
	if err := storeReadings(ctx, tx, snapshotID, "cht", snapshot.CHTs()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return errFactory.Wrap(ErrStorageAccess, err)
	}

	return nil
}

func storeReadings(ctx context.Context, tx *sql.Tx, snapshotID int64, channel string, readings engine.CylinderReadings) error {
	for reading := range readings.All() {
		_, err := tx.ExecContext(ctx, `
            INSERT INTO cylinder_readings (snapshot_id, channel, cylinder, value)
            VALUES (?, ?, ?, ?)
        `, snapshotID, channel, reading.Number(), reading.Value())
		if err != nil {
			return errors.New().Wrap(ErrStorageAccess, err)
		}
	}

	return nil
}

// nullFloat carries an optional channel into a nullable column.
func nullFloat(value float64, present bool) sql.NullFloat64 {
	return sql.NullFloat64{Float64: value, Valid: present}
}

func (r *sqliteRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.db.Close(); err != nil {
		return errors.New().Wrap(ErrStorageClose, err)
	}
	return nil
}
