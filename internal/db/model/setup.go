package model

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
)

const setupTimeout = 30 * time.Second

type index struct {
	Keys   bson.D
	Unique bool
}

var collections = map[string][]index{
	LedgerStateCollection: nil,
	StakeHolderCollection: nil,
	BalanceCollection:     nil,
	CounterCollection:     nil,
	EventOutboxCollection: {
		{Keys: bson.D{{Key: "sequence", Value: 1}}, Unique: true},
		{Keys: bson.D{{Key: "published", Value: 1}, {Key: "sequence", Value: 1}}},
	},
}

// Setup creates the collections and indexes used by the ledger. Collections
// must exist before the first transaction touches them.
func Setup(ctx context.Context, cfg *config.DbConfig) error {
	ctx, cancel := context.WithTimeout(ctx, setupTimeout)
	defer cancel()

	client, err := mongo.Connect(ctx, ClientOptions(cfg))
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("Failed to disconnect setup client")
		}
	}()

	database := client.Database(cfg.DbName)
	existing, err := database.ListCollectionNames(ctx, bson.M{})
	if err != nil {
		return fmt.Errorf("failed to list collections: %w", err)
	}
	exists := make(map[string]struct{}, len(existing))
	for _, name := range existing {
		exists[name] = struct{}{}
	}

	for collection, indexes := range collections {
		if _, ok := exists[collection]; !ok {
			if err := database.CreateCollection(ctx, collection); err != nil {
				return fmt.Errorf("failed to create collection %s: %w", collection, err)
			}
		}

		for _, idx := range indexes {
			if err := createIndex(ctx, database, collection, idx); err != nil {
				return err
			}
		}
	}

	log.Info().Msg("Collections and indexes created successfully")
	return nil
}

func createIndex(ctx context.Context, database *mongo.Database, collection string, idx index) error {
	model := mongo.IndexModel{
		Keys:    idx.Keys,
		Options: options.Index().SetUnique(idx.Unique),
	}
	if _, err := database.Collection(collection).Indexes().CreateOne(ctx, model); err != nil {
		return fmt.Errorf("failed to create index on %s: %w", collection, err)
	}

	log.Debug().Msgf("Index created on collection %s", collection)
	return nil
}

// ClientOptions returns the mongo client options for cfg. Credentials are
// optional so a local single node replica set can run without auth.
func ClientOptions(cfg *config.DbConfig) *options.ClientOptions {
	opts := options.Client().ApplyURI(cfg.Address)
	if cfg.Username != "" {
		opts.SetAuth(options.Credential{
			Username: cfg.Username,
			Password: cfg.Password,
		})
	}
	return opts
}
