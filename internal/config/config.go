// Package config provides environment-based configuration for the server,
// the store, and the optional model collaborator. Every loader fills
// defaults, so a bare environment yields a runnable configuration.
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// ServerConfig holds the HTTP server settings.
type ServerConfig struct {
	Host            string
	Port            int
	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration
}

// LoadServerFromEnv reads server settings from SERVER_HOST, SERVER_PORT,
// and SERVER_REQUEST_TIMEOUT, with defaults for anything unset.
func LoadServerFromEnv() *ServerConfig {
	return &ServerConfig{
		Host:            getEnv("SERVER_HOST", "0.0.0.0"),
		Port:            getEnvInt("SERVER_PORT", 8080),
		RequestTimeout:  getEnvDuration("SERVER_REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getEnvDuration("SERVER_SHUTDOWN_TIMEOUT", 30*time.Second),
	}
}

// Validate checks that the configuration has valid values.
func (c *ServerConfig) Validate() error {
	if c.Port < 1 || c.Port > 65535 {
		return fmt.Errorf("config error: server port %d out of range", c.Port)
	}
	if c.RequestTimeout <= 0 {
		return fmt.Errorf("config error: request timeout must be positive")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("config error: shutdown timeout must be positive")
	}
	return nil
}

// Addr returns the host:port the server binds to.
func (c *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// StoreConfig selects and configures the persistence backend.
type StoreConfig struct {
	DatabaseURL string
	UseMemory   bool
}

// LoadStoreFromEnv reads DATABASE_URL and STORE_MEMORY.
func LoadStoreFromEnv() *StoreConfig {
	return &StoreConfig{
		DatabaseURL: os.Getenv("DATABASE_URL"),
		UseMemory:   getEnvBool("STORE_MEMORY", false),
	}
}

// Validate checks that a backend is actually configured.
func (c *StoreConfig) Validate() error {
	if !c.UseMemory && c.DatabaseURL == "" {
		return fmt.Errorf("config error: DATABASE_URL is required unless STORE_MEMORY is set")
	}
	return nil
}

// LLMConfig configures the optional enrichment collaborator. A missing API
// key disables enrichment rather than failing anything.
type LLMConfig struct {
	APIKey        string
	EnrichTimeout time.Duration
}

// LoadLLMFromEnv reads GEMINI_API_KEY and ENRICH_TIMEOUT.
func LoadLLMFromEnv() *LLMConfig {
	return &LLMConfig{
		APIKey:        os.Getenv("GEMINI_API_KEY"),
		EnrichTimeout: getEnvDuration("ENRICH_TIMEOUT", 15*time.Second),
	}
}

// Enabled reports whether enrichment can be attempted at all.
func (c *LLMConfig) Enabled() bool {
	return c.APIKey != ""
}

// Validate checks the enrichment settings.
func (c *LLMConfig) Validate() error {
	if c.EnrichTimeout <= 0 {
		return fmt.Errorf("config error: enrich timeout must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
