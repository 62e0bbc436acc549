package config

import (
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// DefaultEnvPrefix is the default prefix for environment variables
const (
	DefaultEnvPrefix         = "ASYNCMOCK_"
	DefaultWaitTimeout       = 5 * time.Second
	DefaultLogLevel          = "warn"
	DefaultBackgroundWorkers = 8
	DefaultFixtureDir        = "testdata"
	DefaultMetricsNamespace  = "asyncmock"
)

// Config holds the settings shared by mocks, wait helpers and the CLI
type Config struct {
	// WaitTimeout bounds every blocking wait on a mocked call
	WaitTimeout time.Duration
	// LogLevel is a logrus level name
	LogLevel string
	// BackgroundWorkers caps concurrently running mocked calls per mock
	BackgroundWorkers int
	// FixtureDir is where result fixtures live
	FixtureDir string
	// MetricsNamespace prefixes every metric name
	MetricsNamespace string
}

// Default returns the default configuration without reading the environment
func Default() *Config {
	return &Config{
		WaitTimeout:       DefaultWaitTimeout,
		LogLevel:          DefaultLogLevel,
		BackgroundWorkers: DefaultBackgroundWorkers,
		FixtureDir:        DefaultFixtureDir,
		MetricsNamespace:  DefaultMetricsNamespace,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.WaitTimeout <= 0 {
		return fmt.Errorf("wait timeout must be positive")
	}
	if err := ValidateLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.BackgroundWorkers < 1 {
		return fmt.Errorf("background workers must be at least 1")
	}
	if c.FixtureDir == "" {
		return fmt.Errorf("fixture directory is required")
	}
	if c.MetricsNamespace == "" {
		return fmt.Errorf("metrics namespace is required")
	}
	return nil
}

// Load loads configuration from environment variables. With no paths an
// optional .env in the working directory is read; named files must exist.
func Load(paths ...string) (*Config, error) {
	if len(paths) == 0 {
		_ = godotenv.Load()
	} else if err := godotenv.Load(paths...); err != nil {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	loader := NewEnvLoader(DefaultEnvPrefix)
	loader.LoadAll()
	return FromLoader(loader)
}

var dotenvOnce sync.Once

// Current returns the configuration mocks and wait helpers use: the
// ASYNCMOCK_ environment over the defaults. An optional .env is read once per
// process. Invalid settings are logged and the defaults used instead.
func Current() *Config {
	dotenvOnce.Do(func() { _ = godotenv.Load() })

	loader := NewEnvLoader(DefaultEnvPrefix)
	loader.LoadAll()
	cfg, err := FromLoader(loader)
	if err != nil {
		logrus.WithError(err).Warn("using default asyncmock configuration")
		return Default()
	}
	return cfg
}

// FromLoader builds a configuration from already loaded variables
func FromLoader(loader *EnvLoader) (*Config, error) {
	cfg := Default()
	var err error

	if cfg.WaitTimeout, err = loader.GetDuration("WAIT_TIMEOUT", DefaultWaitTimeout); err != nil {
		return nil, fmt.Errorf("invalid wait timeout: %w", err)
	}

	if cfg.LogLevel, err = loader.GetStringValidated("LOG_LEVEL", DefaultLogLevel, ValidateNotEmpty, ValidateLogLevel); err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}

	if cfg.BackgroundWorkers, err = loader.GetInt("BACKGROUND_WORKERS", DefaultBackgroundWorkers); err != nil {
		return nil, fmt.Errorf("invalid background workers: %w", err)
	}

	cfg.FixtureDir = loader.GetString("FIXTURE_DIR", DefaultFixtureDir)
	cfg.MetricsNamespace = loader.GetString("METRICS_NAMESPACE", DefaultMetricsNamespace)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// NewLogger creates a logger at the configured level writing to stderr
func (c *Config) NewLogger() *logrus.Logger {
	return c.NewLoggerTo(os.Stderr)
}

// NewLoggerTo creates a logger at the configured level writing to w
func (c *Config) NewLoggerTo(w io.Writer) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(w)
	logger.SetFormatter(&logrus.TextFormatter{
		DisableColors:   true,
		TimestampFormat: "2006-01-02 15:04:05.000",
		FullTimestamp:   true,
	})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.WarnLevel
	}
	logger.SetLevel(level)
	return logger
}
