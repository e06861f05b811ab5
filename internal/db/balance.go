package db

import (
	"context"
	"errors"
	"fmt"

	sdkmath "cosmossdk.io/math"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
)

// GetBalance returns the token book balance of account, zero when the
// account was never credited.
func (db *Database) GetBalance(ctx context.Context, account string) (sdkmath.Uint, error) {
	var doc model.BalanceDocument
	err := db.collection(model.BalanceCollection).
		FindOne(ctx, bson.M{"_id": account}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return sdkmath.ZeroUint(), nil
	}
	if err != nil {
		return sdkmath.Uint{}, err
	}
	return doc.ToAmount()
}

// CreditBalance mints amount into account. It is the operator's way of
// funding accounts of the token the ledger stakes.
func (db *Database) CreditBalance(ctx context.Context, account string, amount sdkmath.Uint) error {
	if account == "" {
		return errors.New("account is required")
	}
	if amount.IsNil() || amount.IsZero() {
		return errors.New("amount must be positive")
	}

	session, err := db.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(context.Background())

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		balance, err := db.GetBalance(sessCtx, account)
		if err != nil {
			return nil, err
		}
		return nil, db.setBalance(sessCtx, account, balance.Add(amount))
	})
	return err
}

// move transfers amount between two token book accounts. It must run inside
// a transaction.
func (db *Database) move(ctx context.Context, from, to string, amount sdkmath.Uint) error {
	if from == to {
		return nil
	}

	fromBalance, err := db.GetBalance(ctx, from)
	if err != nil {
		return err
	}
	if fromBalance.LT(amount) {
		return fmt.Errorf("%w: %s has %s, needs %s", ledger.ErrInsufficientFunds, from, fromBalance, amount)
	}
	toBalance, err := db.GetBalance(ctx, to)
	if err != nil {
		return err
	}

	if err := db.setBalance(ctx, from, fromBalance.Sub(amount)); err != nil {
		return err
	}
	return db.setBalance(ctx, to, toBalance.Add(amount))
}

func (db *Database) setBalance(ctx context.Context, account string, amount sdkmath.Uint) error {
	_, err := db.collection(model.BalanceCollection).UpdateOne(
		ctx,
		bson.M{"_id": account},
		bson.M{"$set": bson.M{"amount": amount.String()}},
		options.Update().SetUpsert(true),
	)
	return err
}
