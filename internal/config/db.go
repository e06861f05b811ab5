package config

import (
	"errors"
	"net/url"
)

type DbConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
	DbName   string `mapstructure:"db-name"`
	// Address must point at a replica set (or a single node started as one):
	// every ledger operation runs in a multi-document transaction.
	Address string `mapstructure:"address"`
}

func (cfg *DbConfig) Validate() error {
	if cfg.Address == "" {
		return errors.New("missing db address")
	}

	u, err := url.Parse(cfg.Address)
	if err != nil {
		return errors.New("invalid db address")
	}

	if u.Scheme != "mongodb" && u.Scheme != "mongodb+srv" {
		return errors.New("unsupported db scheme")
	}

	if cfg.DbName == "" {
		return errors.New("missing db name")
	}

	return nil
}
