package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"
	"time"

	"codeberg.org/mutker/aerotrace/internal/config"
	"codeberg.org/mutker/aerotrace/internal/ems"
	"codeberg.org/mutker/aerotrace/internal/engine"
	"codeberg.org/mutker/aerotrace/internal/errors"
	"codeberg.org/mutker/aerotrace/internal/logger"
	"codeberg.org/mutker/aerotrace/internal/telemetry"
)

var cfg *config.Config

func init() {
	var err error
	cfg, err = config.Load()
	if err != nil {
		fmt.Printf("failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(logLevel(cfg.LogLevel), logger.IsService())
	logger.Debug().Msg("Config loaded")
}

func logLevel(name string) logger.LogLevel {
	switch name {
	case "debug":
		return logger.DebugLevel
	case "info":
		return logger.InfoLevel
	case "warning":
		return logger.WarnLevel
	default:
		return logger.ErrorLevel
	}
}

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go handleSignals(cancel)

	if err := run(ctx); err != nil {
		logger.Error().Err(err).Msg("error in main loop")
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	errFactory := errors.New()

	if cfg.Source == "" {
		return errFactory.WithMessage(errors.ErrMissingConfig, "No telemetry source configured")
	}

	source, err := os.Open(cfg.Source)
	if err != nil {
		return errFactory.Wrap(errors.ErrOpenSource, err)
	}
	defer source.Close()

	decoder, err := newDecoder(source)
	if err != nil {
		return err
	}

	recorder, err := telemetry.NewService(telemetry.Config{
		Enabled: cfg.Telemetry && !cfg.Monitor,
		DBPath:  cfg.TelemetryDB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := recorder.Close(); err != nil {
			logger.Error().Err(err).Msg("failed to close telemetry recorder")
		}
	}()

	if cfg.Monitor {
		logger.Info().Msg("Monitor mode activated. Logging engine snapshots...")
	}

	return replay(ctx, decoder, recorder)
}

func newDecoder(source io.Reader) (ems.Decoder, error) {
	if cfg.Format == "json" {
		return ems.NewJSONDecoder(source), nil
	}

	return ems.NewCSVDecoder(source)
}

func replay(ctx context.Context, decoder ems.Decoder, recorder telemetry.Recorder) error {
	interval := time.Duration(cfg.Interval) * time.Millisecond
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			snapshot, err := decoder.Next()
			if err == io.EOF {
				logger.Info().Msg("Telemetry source exhausted")
				return nil
			}
			if err != nil {
				return errors.New().Wrap(errors.ErrDecodeFrame, err)
			}

			logSnapshot(snapshot)

			if err := recorder.Record(ctx, snapshot); err != nil {
				return err
			}
		}
	}
}

func logSnapshot(snapshot *engine.EngineData) {
	event := logger.Info()

	if rpm, ok := snapshot.RPM(); ok {
		event.Float64("rpm", rpm)
	}
	if mp, ok := snapshot.ManifoldPressure(); ok {
		event.Float64("map", mp)
	}
	if oilTemp, ok := snapshot.OilTemperature(); ok {
		event.Float64("oil_temp", oilTemp)
	}
	if oilPressure, ok := snapshot.OilPressure(); ok {
		event.Float64("oil_pressure", oilPressure)
	}
	if hottest, ok := snapshot.EGTs().Hottest(); ok {
		event.Int("egt_hottest_cyl", hottest.Number())
		event.Float64("egt_hottest", hottest.Value())
	}
	if spread, ok := snapshot.EGTs().Difference(); ok {
		event.Float64("egt_spread", spread)
	}
	if spread, ok := snapshot.CHTs().Difference(); ok {
		event.Float64("cht_spread", spread)
	}

	event.Msg("engine snapshot")
}

func handleSignals(cancel context.CancelFunc) {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	<-sigs
	logger.Info().Msg("Received termination signal.")
	cancel()
}
