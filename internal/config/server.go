package config

import (
	"errors"
	"fmt"
	"net"
	"time"
)

type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read-timeout"`
	WriteTimeout time.Duration `mapstructure:"write-timeout"`
	IdleTimeout  time.Duration `mapstructure:"idle-timeout"`
	// RequestTimeout bounds a single API call including its transaction.
	RequestTimeout time.Duration `mapstructure:"request-timeout"`
}

func (cfg *ServerConfig) Validate() error {
	if cfg.Port <= 0 || cfg.Port > 65535 {
		return errors.New("server port must be between 1 and 65535 (inclusive)")
	}

	if net.ParseIP(cfg.Host) == nil {
		return errors.New("invalid server host")
	}

	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return errors.New("server timeouts must be positive")
	}

	if cfg.RequestTimeout <= 0 {
		return errors.New("request-timeout must be positive")
	}

	return nil
}

func (cfg *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
}
