package config

import (
	"fmt"
	"os"
	"strconv"
)

// defaultTokenTTLHours is used when AUTH_TOKEN_TTL_HOURS is unset.
const defaultTokenTTLHours = 24

// AuthConfig holds configuration for bearer token generation and
// validation. Auth is opt-in: a nil AuthConfig means the server runs open.
type AuthConfig struct {
	Secret          string
	ExpirationHours int
}

// LoadAuthFromEnv reads AUTH_TOKEN_SECRET and AUTH_TOKEN_TTL_HOURS. An
// unset secret returns (nil, nil), which disables auth entirely.
func LoadAuthFromEnv() (*AuthConfig, error) {
	secret := os.Getenv("AUTH_TOKEN_SECRET")
	if secret == "" {
		return nil, nil
	}

	ttl := defaultTokenTTLHours
	if raw := os.Getenv("AUTH_TOKEN_TTL_HOURS"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			return nil, fmt.Errorf("invalid AUTH_TOKEN_TTL_HOURS: %v", err)
		}
		ttl = parsed
	}
	if ttl < 1 {
		return nil, fmt.Errorf("AUTH_TOKEN_TTL_HOURS must be at least 1 hour, got: %d", ttl)
	}

	return &AuthConfig{Secret: secret, ExpirationHours: ttl}, nil
}
