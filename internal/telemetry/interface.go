package telemetry

import (
	"context"
	"time"

	"codeberg.org/mutker/aerotrace/internal/engine"
)

// Recorder defines the core domain interface
type Recorder interface {
	Record(ctx context.Context, snapshot *engine.EngineData) error
	Close() error
}

// Repository defines the interface for snapshot storage
type Repository interface {
	Store(ctx context.Context, sampledAt time.Time, snapshot *engine.EngineData) error
	Close() error
}
