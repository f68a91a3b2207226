package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerFromEnv_Defaults(t *testing.T) {
	t.Setenv("SERVER_HOST", "")
	t.Setenv("SERVER_PORT", "")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "")
	t.Setenv("SERVER_SHUTDOWN_TIMEOUT", "")

	cfg := LoadServerFromEnv()

	assert.Equal(t, "0.0.0.0", cfg.Host)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout)
	assert.Equal(t, 30*time.Second, cfg.ShutdownTimeout)
	assert.Equal(t, "0.0.0.0:8080", cfg.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestLoadServerFromEnv_Overrides(t *testing.T) {
	t.Setenv("SERVER_HOST", "127.0.0.1")
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SERVER_REQUEST_TIMEOUT", "5s")

	cfg := LoadServerFromEnv()

	assert.Equal(t, "127.0.0.1:9090", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.RequestTimeout)
}

func TestServerConfig_Validate(t *testing.T) {
	cases := []struct {
		name    string
		mutate  func(*ServerConfig)
		wantErr bool
	}{
		{"valid", func(*ServerConfig) {}, false},
		{"port too low", func(c *ServerConfig) { c.Port = 0 }, true},
		{"port too high", func(c *ServerConfig) { c.Port = 70000 }, true},
		{"zero request timeout", func(c *ServerConfig) { c.RequestTimeout = 0 }, true},
		{"zero shutdown timeout", func(c *ServerConfig) { c.ShutdownTimeout = 0 }, true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := &ServerConfig{
				Host:            "localhost",
				Port:            8080,
				RequestTimeout:  time.Second,
				ShutdownTimeout: time.Second,
			}
			tc.mutate(cfg)

			err := cfg.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestLoadStoreFromEnv(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost/analyzer")
	t.Setenv("STORE_MEMORY", "")

	cfg := LoadStoreFromEnv()

	assert.Equal(t, "postgres://localhost/analyzer", cfg.DatabaseURL)
	assert.False(t, cfg.UseMemory)
	assert.NoError(t, cfg.Validate())
}

func TestStoreConfig_Validate_RequiresBackend(t *testing.T) {
	cfg := &StoreConfig{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")

	cfg.UseMemory = true
	assert.NoError(t, cfg.Validate())

	cfg = &StoreConfig{DatabaseURL: "postgres://localhost/analyzer"}
	assert.NoError(t, cfg.Validate())
}

func TestLoadLLMFromEnv(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "")
	t.Setenv("ENRICH_TIMEOUT", "")

	cfg := LoadLLMFromEnv()
	assert.False(t, cfg.Enabled())
	assert.Equal(t, 15*time.Second, cfg.EnrichTimeout)
	assert.NoError(t, cfg.Validate())

	t.Setenv("GEMINI_API_KEY", "key-123")
	t.Setenv("ENRICH_TIMEOUT", "3s")

	cfg = LoadLLMFromEnv()
	assert.True(t, cfg.Enabled())
	assert.Equal(t, 3*time.Second, cfg.EnrichTimeout)
}

func TestGetEnvHelpers_FallBackOnMalformedValues(t *testing.T) {
	t.Setenv("SERVER_PORT", "not-a-number")
	t.Setenv("STORE_MEMORY", "not-a-bool")
	t.Setenv("ENRICH_TIMEOUT", "not-a-duration")

	assert.Equal(t, 8080, LoadServerFromEnv().Port)
	assert.False(t, LoadStoreFromEnv().UseMemory)
	assert.Equal(t, 15*time.Second, LoadLLMFromEnv().EnrichTimeout)
}
