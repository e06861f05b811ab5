package cli

import (
	"context"
	"fmt"

	"github.com/babylonlabs-io/staking-rewards-ledger/consumer"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db"
	dbmodel "github.com/babylonlabs-io/staking-rewards-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/services"
)

// openService connects to the database and builds the service on top of it.
// Operator commands pass a nil publisher: the events they record stay in the
// outbox until a running server relays them.
func openService(
	ctx context.Context,
	cfg *config.Config,
	publisher consumer.EventPublisher,
) (*services.Service, *db.Database, error) {
	if err := dbmodel.Setup(ctx, &cfg.Db); err != nil {
		return nil, nil, fmt.Errorf("error while setting up db model: %w", err)
	}

	dbClient, err := db.New(ctx, cfg.Db, db.WithCustodyAccount(cfg.Ledger.CustodyAccount))
	if err != nil {
		return nil, nil, fmt.Errorf("error while creating db client: %w", err)
	}

	service, err := services.NewService(cfg, db.NewDbWithMetrics(dbClient), publisher)
	if err != nil {
		_ = dbClient.Disconnect(ctx)
		return nil, nil, fmt.Errorf("error while creating service: %w", err)
	}

	return service, dbClient, nil
}
