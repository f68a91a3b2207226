package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific
// endpoint. Paths ending in "/" match by prefix, so "/api/v1/resumes/"
// covers every per-resume route.
type EndpointConfig struct {
	Path   string
	Method string
	Limit  int           // maximum requests per window
	Window time.Duration // time window
	Burst  int           // burst capacity (defaults to Limit if 0)
}

// LoadConfig reads limiter settings from RATE_LIMIT_* environment
// variables, falling back to package defaults.
func LoadConfig() *Config {
	if !getEnvBool("RATE_LIMIT_ENABLED", true) {
		return &Config{Enabled: false}
	}

	return &Config{
		Enabled:         true,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 1000),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		Whitelist:       parseClientSet(os.Getenv("RATE_LIMIT_WHITELIST")),
		Blacklist:       parseClientSet(os.Getenv("RATE_LIMIT_BLACKLIST")),
		EndpointConfigs: DefaultEndpointConfigs(),
	}
}

// DefaultEndpointConfigs returns the default endpoint-specific
// configurations. Document ingestion and analysis run the whole extraction
// pipeline per request, so they get tighter limits than reads.
func DefaultEndpointConfigs() []EndpointConfig {
	return []EndpointConfig{
		// Full-pipeline operations
		{Path: "/api/v1/analyze", Method: "POST", Limit: 30, Window: time.Minute, Burst: 5},
		{Path: "/api/v1/resumes", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Per-resume writes (match, delete)
		{Path: "/api/v1/resumes/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/api/v1/resumes/", Method: "DELETE", Limit: 100, Window: time.Minute, Burst: 10},

		// Reads fall through to the default limit; /health is unlimited via
		// the matcher special case.
	}
}

func getEnvInt(key string, fallback int) int {
	n, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvBool(key string, fallback bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return b
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return d
}

// parseClientSet splits a comma-separated list of client IPs into a set.
func parseClientSet(raw string) map[string]bool {
	set := make(map[string]bool)
	for _, entry := range strings.Split(raw, ",") {
		if entry = strings.TrimSpace(entry); entry != "" {
			set[entry] = true
		}
	}
	return set
}
