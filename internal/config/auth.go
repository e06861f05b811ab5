package config

import (
	"errors"
	"time"
)

const minJwtSecretLength = 32

// AuthConfig configures the bearer tokens identifying API callers. The token
// subject is the calling account.
type AuthConfig struct {
	JwtSecret string        `mapstructure:"jwt-secret"`
	Issuer    string        `mapstructure:"issuer"`
	MaxTTL    time.Duration `mapstructure:"max-ttl"`
}

func (cfg *AuthConfig) Validate() error {
	if len(cfg.JwtSecret) < minJwtSecretLength {
		return errors.New("jwt-secret must be at least 32 characters")
	}

	if cfg.Issuer == "" {
		return errors.New("issuer is required")
	}

	if cfg.MaxTTL <= 0 {
		return errors.New("max-ttl must be positive")
	}

	return nil
}
