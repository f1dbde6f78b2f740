package config

import (
	"os"
	"strings"

	"codeberg.org/mutker/aerotrace/internal/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

const (
	DefaultInterval    = 1000 // milliseconds between replayed frames
	DefaultFormat      = "csv"
	DefaultLogLevel    = "info"
	DefaultTelemetryDB = "/var/lib/aerotrace/telemetry.db"

	envConfigFile = "AEROTRACE_CONFIG"
	envPrefix     = "AEROTRACE"
)

type Config struct {
	Source      string `mapstructure:"source"`
	Format      string `mapstructure:"format"`
	Interval    int    `mapstructure:"interval"`
	Monitor     bool   `mapstructure:"monitor"`
	Telemetry   bool   `mapstructure:"telemetry"`
	TelemetryDB string `mapstructure:"database"`
	LogLevel    string `mapstructure:"log_level"`
}

var validLogLevels = map[string]bool{
	"debug":   true,
	"info":    true,
	"warning": true,
	"error":   true,
}

var validFormats = map[string]bool{
	"csv":  true,
	"json": true,
}

// Load reads configuration from the config file, environment and
// command-line flags, in increasing order of precedence.
func Load() (*Config, error) {
	errFactory := errors.New()

	v := viper.New()
	v.SetDefault("source", "")
	v.SetDefault("format", DefaultFormat)
	v.SetDefault("interval", DefaultInterval)
	v.SetDefault("monitor", false)
	v.SetDefault("telemetry", false)
	v.SetDefault("database", DefaultTelemetryDB)
	v.SetDefault("log_level", DefaultLogLevel)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Load configuration from file
	if path := os.Getenv(envConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	} else {
		v.SetConfigName("aerotrace")
		v.SetConfigType("toml")
		v.AddConfigPath("/etc")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errFactory.Wrap(errors.ErrReadConfig, err)
			}
		}
	}

	// Command-line flags override file and environment values
	flags := pflag.NewFlagSet("aerotrace", pflag.ContinueOnError)
	flags.ParseErrorsWhitelist = pflag.ParseErrorsWhitelist{UnknownFlags: true}
	flags.String("source", "", "Path to the EMS telemetry source")
	flags.String("format", DefaultFormat, "Telemetry source format (csv or json)")
	flags.Int("interval", DefaultInterval, "Milliseconds between replayed frames")
	flags.Bool("monitor", false, "Decode and log frames without recording")
	flags.Bool("telemetry", false, "Record decoded snapshots to the database")
	flags.String("database", DefaultTelemetryDB, "Path to the telemetry database")
	flags.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")

	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, errFactory.Wrap(errors.ErrBindFlags, err)
	}

	flags.Visit(func(f *pflag.Flag) {
		key := strings.ReplaceAll(f.Name, "-", "_")
		v.Set(key, f.Value.String())
	})

	// Unmarshal the configuration
	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// Validate checks the loaded configuration for usable values
func (c *Config) Validate() error {
	errFactory := errors.New()

	if !validLogLevels[c.LogLevel] {
		return errFactory.WithData(errors.ErrInvalidLogLevel, c.LogLevel)
	}

	if !validFormats[c.Format] {
		return errFactory.WithMessage(errors.ErrInvalidConfig,
			"Format must be csv or json").WithData(c.Format)
	}

	if c.Interval <= 0 {
		return errFactory.WithData(errors.ErrInvalidInterval, c.Interval)
	}

	if c.Telemetry && c.TelemetryDB == "" {
		return errFactory.WithMessage(errors.ErrInvalidConfig,
			"Telemetry recording requires a database path")
	}

	return nil
}
