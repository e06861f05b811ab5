package main

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/staking-rewards-ledger/cmd/staking-rewards-ledger/cli"
)

func init() {
	if err := godotenv.Load(); err != nil {
		log.Debug().Msg("failed to load .env file")
	}

	zerolog.DefaultContextLogger = &log.Logger
}

func main() {
	// setup cli commands and flags
	if err := cli.Setup(); err != nil {
		log.Err(err).Msg("command failed")
		os.Exit(1)
	}
}
