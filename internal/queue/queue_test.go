package queue

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/staking-rewards-ledger/consumer"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
)

func TestNewQueueManager(t *testing.T) {
	_, err := NewQueueManager(nil)
	assert.Error(t, err)

	qm, err := NewQueueManager(&config.QueueConfig{})
	require.NoError(t, err)
	assert.NoError(t, qm.Stop())
}

func TestPushLedgerEventUnreachableBroker(t *testing.T) {
	qm, err := NewQueueManager(&config.QueueConfig{
		QueueUser:              "user",
		QueuePassword:          "password",
		Url:                    "127.0.0.1:1",
		Exchange:               "ledger",
		QueueName:              "ledger-events",
		QueueType:              config.ClassicQueueType,
		QueueProcessingTimeout: time.Second,
		MsgMaxRetryAttempts:    2,
		ReQueueDelayTime:       time.Millisecond,
	})
	require.NoError(t, err)

	err = qm.PushLedgerEvent(context.Background(), &consumer.LedgerEvent{ID: "id", EventType: "Staked"})
	assert.ErrorContains(t, err, "failed to publish event id")
}
