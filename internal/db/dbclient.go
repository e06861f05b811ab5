package db

import (
	"context"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
)

type Database struct {
	dbName  string
	client  *mongo.Client
	custody string
}

type Option func(*Database)

// WithCustodyAccount sets the token book account holding the reward pool and
// all staked principal.
func WithCustodyAccount(account string) Option {
	return func(db *Database) {
		if account != "" {
			db.custody = account
		}
	}
}

func New(ctx context.Context, cfg config.DbConfig, opts ...Option) (*Database, error) {
	client, err := mongo.Connect(ctx, model.ClientOptions(&cfg))
	if err != nil {
		return nil, err
	}

	db := &Database{
		dbName:  cfg.DbName,
		client:  client,
		custody: ledger.DefaultCustodyAccount,
	}
	for _, opt := range opts {
		opt(db)
	}
	return db, nil
}

func (db *Database) Ping(ctx context.Context) error {
	return db.client.Ping(ctx, readpref.Primary())
}

func (db *Database) Disconnect(ctx context.Context) error {
	return db.client.Disconnect(ctx)
}

// CustodyAccount returns the token book account owned by the ledger.
func (db *Database) CustodyAccount() string {
	return db.custody
}

func (db *Database) collection(name string) *mongo.Collection {
	return db.client.Database(db.dbName).Collection(name)
}
