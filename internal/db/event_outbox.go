package db

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db/model"
)

// FindUnpublishedEvents returns up to limit outbox events in commit order.
func (db *Database) FindUnpublishedEvents(ctx context.Context, limit int64) ([]model.EventDocument, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "sequence", Value: 1}}).
		SetLimit(limit)

	cursor, err := db.collection(model.EventOutboxCollection).
		Find(ctx, bson.M{"published": false}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var events []model.EventDocument
	if err := cursor.All(ctx, &events); err != nil {
		return nil, err
	}
	return events, nil
}

func (db *Database) MarkEventsPublished(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	now := time.Now().UTC()
	res, err := db.collection(model.EventOutboxCollection).UpdateMany(
		ctx,
		bson.M{"_id": bson.M{"$in": ids}},
		bson.M{"$set": bson.M{"published": true, "published_at": now}},
	)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return &NotFoundError{
			Key:     ids[0],
			Message: "outbox events not found",
		}
	}
	return nil
}

func (db *Database) CountUnpublishedEvents(ctx context.Context) (int64, error) {
	return db.collection(model.EventOutboxCollection).
		CountDocuments(ctx, bson.M{"published": false})
}
