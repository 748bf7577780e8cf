package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdirTemp moves the test into an empty directory so a developer's .env
// cannot leak into the assertions.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestLoad_Defaults(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "localhost", cfg.Server.Host)
	assert.Equal(t, 8084, cfg.Server.Port)
	assert.Equal(t, 30*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "json", cfg.Logger.Format)
	assert.Equal(t, "none", cfg.Tracing.Exporter)
	assert.Equal(t, 200, cfg.Dashboard.NumDays)
	assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), cfg.Dashboard.Epoch)
	assert.Equal(t, "localhost:8084", cfg.Address())
}

func TestLoad_EnvOverrides(t *testing.T) {
	chdirTemp(t)
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("DASHBOARD_NUM_DAYS", "30")
	t.Setenv("DASHBOARD_EPOCH", "2023-06-01")
	t.Setenv("SECURITY_ALLOWED_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("TRACING_EXPORTER", "stdout")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 30, cfg.Dashboard.NumDays)
	assert.Equal(t, time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC), cfg.Dashboard.Epoch)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Security.AllowedOrigins)
	assert.Equal(t, "stdout", cfg.Tracing.Exporter)
}

func TestLoad_DotEnvFile(t *testing.T) {
	dir := chdirTemp(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("DASHBOARD_NUM_DAYS=45\nLOG_FORMAT=text\n"), 0o600))
	t.Cleanup(func() {
		os.Unsetenv("DASHBOARD_NUM_DAYS")
		os.Unsetenv("LOG_FORMAT")
	})

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 45, cfg.Dashboard.NumDays)
	assert.Equal(t, "text", cfg.Logger.Format)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name string
		key  string
		val  string
	}{
		{"port out of range", "SERVER_PORT", "70000"},
		{"zero days", "DASHBOARD_NUM_DAYS", "0"},
		{"negative days", "DASHBOARD_NUM_DAYS", "-5"},
		{"bad epoch", "DASHBOARD_EPOCH", "01/01/2024"},
		{"bad log level", "LOG_LEVEL", "verbose"},
		{"bad log format", "LOG_FORMAT", "xml"},
		{"unknown tracing exporter", "TRACING_EXPORTER", "jaeger"},
		{"zero rps", "SECURITY_RATE_LIMIT_RPS", "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			chdirTemp(t)
			t.Setenv(tt.key, tt.val)

			_, err := Load()
			assert.Error(t, err)
		})
	}
}
