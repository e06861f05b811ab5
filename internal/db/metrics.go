package db

import (
	"context"
	"time"

	sdkmath "cosmossdk.io/math"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/metrics"
)

type DbWithMetrics struct {
	db DbInterface
}

func NewDbWithMetrics(db DbInterface) *DbWithMetrics {
	return &DbWithMetrics{db: db}
}

func (d *DbWithMetrics) Ping(ctx context.Context) error {
	return d.db.Ping(ctx)
}

func (d *DbWithMetrics) RunInTx(ctx context.Context, fn func(ctx context.Context, tx ledger.Tx) error) error {
	return d.run("RunInTx", func() error {
		return d.db.RunInTx(ctx, fn)
	})
}

func (d *DbWithMetrics) GetBalance(ctx context.Context, account string) (result sdkmath.Uint, err error) {
	//nolint:errcheck
	d.run("GetBalance", func() error {
		result, err = d.db.GetBalance(ctx, account)
		return err
	})
	return
}

func (d *DbWithMetrics) CreditBalance(ctx context.Context, account string, amount sdkmath.Uint) error {
	return d.run("CreditBalance", func() error {
		return d.db.CreditBalance(ctx, account, amount)
	})
}

func (d *DbWithMetrics) FindUnpublishedEvents(ctx context.Context, limit int64) (result []model.EventDocument, err error) {
	//nolint:errcheck
	d.run("FindUnpublishedEvents", func() error {
		result, err = d.db.FindUnpublishedEvents(ctx, limit)
		return err
	})
	return
}

func (d *DbWithMetrics) MarkEventsPublished(ctx context.Context, ids []string) error {
	return d.run("MarkEventsPublished", func() error {
		return d.db.MarkEventsPublished(ctx, ids)
	})
}

func (d *DbWithMetrics) CountUnpublishedEvents(ctx context.Context) (result int64, err error) {
	//nolint:errcheck
	d.run("CountUnpublishedEvents", func() error {
		result, err = d.db.CountUnpublishedEvents(ctx)
		return err
	})
	return
}

// run is private method that executes passed lambda function and send metrics data with spent time, method name
// and an error if any. It returns the error from the lambda function for convenience
func (d *DbWithMetrics) run(method string, f func() error) error {
	startTime := time.Now()
	err := f()
	duration := time.Since(startTime)

	metrics.RecordDbLatency(duration, method, err != nil)
	return err
}
