package config

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, 5*time.Second, cfg.WaitTimeout)
	assert.Equal(t, "warn", cfg.LogLevel)
	assert.Equal(t, 8, cfg.BackgroundWorkers)
	assert.Equal(t, "testdata", cfg.FixtureDir)
	assert.Equal(t, "asyncmock", cfg.MetricsNamespace)
	require.NoError(t, cfg.Validate())
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		errMsg string
	}{
		{name: "zero timeout", mutate: func(c *Config) { c.WaitTimeout = 0 }, errMsg: "wait timeout must be positive"},
		{name: "bad level", mutate: func(c *Config) { c.LogLevel = "loud" }, errMsg: `invalid log level "loud"`},
		{name: "no workers", mutate: func(c *Config) { c.BackgroundWorkers = 0 }, errMsg: "background workers must be at least 1"},
		{name: "no fixture dir", mutate: func(c *Config) { c.FixtureDir = "" }, errMsg: "fixture directory is required"},
		{name: "no namespace", mutate: func(c *Config) { c.MetricsNamespace = "" }, errMsg: "metrics namespace is required"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("ASYNCMOCK_WAIT_TIMEOUT", "250ms")
	t.Setenv("ASYNCMOCK_LOG_LEVEL", "debug")
	t.Setenv("ASYNCMOCK_BACKGROUND_WORKERS", "3")
	t.Setenv("ASYNCMOCK_FIXTURE_DIR", "fixtures")
	t.Setenv("ASYNCMOCK_METRICS_NAMESPACE", "mocks")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 250*time.Millisecond, cfg.WaitTimeout)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, 3, cfg.BackgroundWorkers)
	assert.Equal(t, "fixtures", cfg.FixtureDir)
	assert.Equal(t, "mocks", cfg.MetricsNamespace)
}

func TestLoadInvalidValues(t *testing.T) {
	tests := []struct {
		key    string
		value  string
		errMsg string
	}{
		{key: "WAIT_TIMEOUT", value: "soon", errMsg: "invalid wait timeout"},
		{key: "LOG_LEVEL", value: "chatty", errMsg: "invalid log level"},
		{key: "BACKGROUND_WORKERS", value: "many", errMsg: "invalid background workers"},
		{key: "BACKGROUND_WORKERS", value: "0", errMsg: "invalid configuration"},
	}

	for _, tt := range tests {
		t.Run(tt.key+"="+tt.value, func(t *testing.T) {
			loader := NewEnvLoader(DefaultEnvPrefix)
			loader.Set(tt.key, tt.value)

			_, err := FromLoader(loader)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func TestLoadEnvFile(t *testing.T) {
	const key = "ASYNCMOCK_FIXTURE_DIR"
	_, wasSet := os.LookupEnv(key)
	if wasSet {
		t.Skipf("%s is set in the environment", key)
	}
	t.Cleanup(func() { os.Unsetenv(key) })

	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(key+"=from-dotenv\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "from-dotenv", cfg.FixtureDir)
}

func TestLoadMissingEnvFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to load env file")
}

func TestEnvLoaderGetters(t *testing.T) {
	loader := NewEnvLoader("X_")
	loader.Set("FLAG", "TRUE")
	loader.Set("ONE", "1")

	assert.True(t, loader.GetBool("FLAG", false))
	assert.True(t, loader.GetBool("ONE", false))
	assert.False(t, loader.GetBool("MISSING", false))
	assert.Equal(t, "fallback", loader.GetString("MISSING", "fallback"))

	n, err := loader.GetInt("ONE", 0)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	_, err = loader.GetStringValidated("EMPTY", "", ValidateNotEmpty)
	assert.Error(t, err)
}

func TestNewLogger(t *testing.T) {
	cfg := Default()
	cfg.LogLevel = "info"

	var buf bytes.Buffer
	logger := cfg.NewLoggerTo(&buf)
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())

	logger.Debug("hidden")
	logger.WithField("call_id", "abc").Info("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "call_id=abc")
}

func TestCurrent(t *testing.T) {
	tests := []struct {
		name    string
		timeout string
		want    time.Duration
	}{
		{name: "from environment", timeout: "100ms", want: 100 * time.Millisecond},
		{name: "invalid falls back to defaults", timeout: "soon", want: DefaultWaitTimeout},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("ASYNCMOCK_WAIT_TIMEOUT", tt.timeout)
			assert.Equal(t, tt.want, Current().WaitTimeout)
		})
	}
}
