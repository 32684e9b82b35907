package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "YuHiAYxgw4WDdhxduFavo1/202YPUSwbn9AbO0R4dhs="

func noEnvFile(t *testing.T) string {
	return "-env-file=" + filepath.Join(t.TempDir(), "missing.env")
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg, err := NewConfig([]string{noEnvFile(t)})
	require.NoError(t, err)

	assert.Equal(t, defaultServerAddress, cfg.ServerAddress)
	assert.Equal(t, defaultBaseURL, cfg.BaseURL)
	assert.Empty(t, cfg.DatabaseDSN)
	assert.Empty(t, cfg.RedisAddr)
	assert.Equal(t, defaultDashboardWindow, cfg.DashboardWindow)
	assert.Equal(t, defaultDashboardLimit, cfg.DashboardLimit)
	assert.Equal(t, defaultCodeLength, cfg.CodeLength)
	assert.Equal(t, defaultRecordTimeout, cfg.RecordTimeout)
	assert.NotNil(t, cfg.Location)
	assert.True(t, cfg.GeneratedSecret)
	assert.NotEmpty(t, cfg.JWTSecretKey)
}

func TestNewConfig_FlagsAndEnv(t *testing.T) {
	t.Setenv(envBaseURL, "https://nx.link/")
	t.Setenv(envJWTSecretKey, testSecret)
	t.Setenv(envDashboardLimit, "100")
	t.Setenv(envTimezone, "UTC")

	cfg, err := NewConfig([]string{
		noEnvFile(t),
		"-a", ":9090",
		"-b", "http://flag.example",
		"-d", "postgres://u:p@localhost/db",
		"-code-length", "8",
	})
	require.NoError(t, err)

	assert.Equal(t, "localhost:9090", cfg.ServerAddress)
	// переменная окружения важнее флага
	assert.Equal(t, "https://nx.link", cfg.BaseURL)
	assert.Equal(t, "postgres://u:p@localhost/db", cfg.DatabaseDSN)
	assert.Equal(t, 8, cfg.CodeLength)
	assert.Equal(t, 100, cfg.DashboardLimit)
	assert.Equal(t, time.UTC, cfg.Location)
	assert.False(t, cfg.GeneratedSecret)
}

func TestNewConfig_EnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("REDIS_ADDR=localhost:6379\nRECORD_TIMEOUT=2s\n"), 0o600))
	t.Cleanup(func() {
		_ = os.Unsetenv(envRedisAddr)
		_ = os.Unsetenv(envRecordTimeout)
	})

	cfg, err := NewConfig([]string{"-env-file", path})
	require.NoError(t, err)
	assert.Equal(t, "localhost:6379", cfg.RedisAddr)
	assert.Equal(t, 2*time.Second, cfg.RecordTimeout)
}

func TestNewConfig_Invalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{name: "Короткий ключ JWT", env: map[string]string{envJWTSecretKey: "c2hvcnQ="}},
		{name: "Ключ не base64", env: map[string]string{envJWTSecretKey: "not base64 at all!"}},
		{name: "Неверная длительность", env: map[string]string{envDashboardWindow: "week"}},
		{name: "Неверное число", env: map[string]string{envDashboardLimit: "many"}},
		{name: "Неизвестная таймзона", env: map[string]string{envTimezone: "Mars/Olympus"}},
		{name: "Нулевая длина кода", args: []string{"-code-length", "0"}},
		{name: "Слишком длинный код", args: []string{"-code-length", "64"}},
		{name: "Неизвестный флаг", args: []string{"-unknown"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := NewConfig(append([]string{noEnvFile(t)}, tt.args...))
			assert.Error(t, err)
		})
	}
}
