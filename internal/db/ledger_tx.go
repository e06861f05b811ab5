package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	sdkmath "cosmossdk.io/math"
	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readconcern"
	"go.mongodb.org/mongo-driver/mongo/writeconcern"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
)

// RunInTx runs fn in a multi-document transaction. The driver retries fn on
// transient transaction errors, so fn must not keep state across attempts.
func (db *Database) RunInTx(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	session, err := db.client.StartSession()
	if err != nil {
		return fmt.Errorf("failed to start session: %w", err)
	}
	defer session.EndSession(context.Background())

	txOpts := options.Transaction().
		SetReadConcern(readconcern.Snapshot()).
		SetWriteConcern(writeconcern.Majority())

	_, err = session.WithTransaction(ctx, func(sessCtx mongo.SessionContext) (interface{}, error) {
		return nil, fn(sessCtx, &mongoTx{db: db})
	}, txOpts)
	return err
}

// mongoTx implements ledger.Tx on top of the session carried by ctx.
type mongoTx struct {
	db *Database
}

func (tx *mongoTx) GetLedgerState(ctx context.Context) (*ledger.GlobalState, error) {
	var doc model.LedgerStateDocument
	err := tx.db.collection(model.LedgerStateCollection).
		FindOne(ctx, bson.M{"_id": model.LedgerStateID}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ledger.NewGlobalState(), nil
	}
	if err != nil {
		return nil, err
	}
	return doc.ToGlobalState()
}

func (tx *mongoTx) SaveLedgerState(ctx context.Context, state *ledger.GlobalState) error {
	doc := model.FromGlobalState(state)
	_, err := tx.db.collection(model.LedgerStateCollection).
		ReplaceOne(ctx, bson.M{"_id": doc.ID}, doc, options.Replace().SetUpsert(true))
	return err
}

func (tx *mongoTx) GetStakeHolder(ctx context.Context, account string) (*ledger.StakeHolder, error) {
	var doc model.StakeHolderDocument
	err := tx.db.collection(model.StakeHolderCollection).
		FindOne(ctx, bson.M{"_id": account}).
		Decode(&doc)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return ledger.NewStakeHolder(), nil
	}
	if err != nil {
		return nil, err
	}
	return doc.ToStakeHolder()
}

func (tx *mongoTx) SaveStakeHolder(ctx context.Context, account string, holder *ledger.StakeHolder) error {
	doc := model.FromStakeHolder(account, holder)
	_, err := tx.db.collection(model.StakeHolderCollection).
		ReplaceOne(ctx, bson.M{"_id": account}, doc, options.Replace().SetUpsert(true))
	return err
}

func (tx *mongoTx) AppendEvents(ctx context.Context, block uint64, events []ledger.Event) error {
	last, err := tx.db.reserveSequence(ctx, int64(len(events)))
	if err != nil {
		return err
	}

	now := time.Now().UTC()
	first := last - int64(len(events)) + 1
	docs := make([]interface{}, 0, len(events))
	for i, ev := range events {
		payload, err := json.Marshal(ev)
		if err != nil {
			return fmt.Errorf("failed to encode %s event: %w", ev.EventType(), err)
		}
		docs = append(docs, &model.EventDocument{
			ID:        uuid.New().String(),
			Sequence:  first + int64(i),
			Block:     block,
			EventType: ev.EventType().String(),
			Payload:   string(payload),
			CreatedAt: now,
		})
	}

	_, err = tx.db.collection(model.EventOutboxCollection).InsertMany(ctx, docs)
	if mongo.IsDuplicateKeyError(err) {
		return &DuplicateKeyError{
			Key:     fmt.Sprintf("sequence %d", first),
			Message: "event sequence already used",
		}
	}
	return err
}

func (tx *mongoTx) TransferIn(ctx context.Context, from string, amount sdkmath.Uint) error {
	return tx.db.move(ctx, from, tx.db.custody, amount)
}

func (tx *mongoTx) TransferOut(ctx context.Context, to string, amount sdkmath.Uint) error {
	return tx.db.move(ctx, tx.db.custody, to, amount)
}

// reserveSequence advances the outbox sequence by n and returns the last
// reserved value.
func (db *Database) reserveSequence(ctx context.Context, n int64) (int64, error) {
	opts := options.FindOneAndUpdate().
		SetUpsert(true).
		SetReturnDocument(options.After)

	var counter model.CounterDocument
	err := db.collection(model.CounterCollection).
		FindOneAndUpdate(ctx, bson.M{"_id": model.EventSequenceCounterID}, bson.M{"$inc": bson.M{"seq": n}}, opts).
		Decode(&counter)
	if err != nil {
		return 0, fmt.Errorf("failed to reserve event sequence: %w", err)
	}
	return counter.Seq, nil
}
