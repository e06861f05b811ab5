//go:build e2e

package e2etest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sort"
	"strings"
	"testing"
	"time"

	sdkmath "cosmossdk.io/math"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"

	"github.com/babylonlabs-io/staking-rewards-ledger/consumer"
	"github.com/babylonlabs-io/staking-rewards-ledger/e2etest/container"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/api"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/ledger"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/queue"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/services"
	"github.com/babylonlabs-io/staking-rewards-ledger/pkg"
	"github.com/babylonlabs-io/staking-rewards-ledger/testutil"
)

var (
	eventuallyWaitTimeOut = 40 * time.Second
	eventuallyPollTime    = 500 * time.Millisecond
)

type TestManager struct {
	Config    *config.Config
	Service   *services.Service
	DbClient  *db.Database
	Clock     *ledger.ManualClock
	Server    *httptest.Server
	auth      *api.Authenticator
	manager   *container.Manager
	publisher *queue.QueueManager
	events    <-chan amqp.Delivery
	amqpConn  *amqp.Connection
	cancel    context.CancelFunc
}

// StartManager runs mongo and rabbitmq in docker and starts the service with
// its background workers and the HTTP API against them.
func StartManager(t *testing.T) *TestManager {
	manager, err := container.NewManager(t)
	require.NoError(t, err)

	cfg := DefaultLedgerConfig(t)
	dbCfg := manager.RunMongoResource(t)
	queueCfg := manager.RunRabbitMQResource(t)
	cfg.Db = *dbCfg
	cfg.Queue = *queueCfg

	ctx, cancel := context.WithCancel(context.Background())

	require.NoError(t, model.Setup(ctx, &cfg.Db))
	dbClient, err := db.New(ctx, cfg.Db, db.WithCustodyAccount(cfg.Ledger.CustodyAccount))
	require.NoError(t, err)

	publisher, err := queue.NewQueueManager(&cfg.Queue)
	require.NoError(t, err)
	require.NoError(t, publisher.Start())

	clock := ledger.NewManualClock(0)
	service, err := services.NewService(cfg, db.NewDbWithMetrics(dbClient), publisher, services.WithClock(clock))
	require.NoError(t, err)
	service.StartLedgerSync(ctx)

	server := httptest.NewServer(api.NewRouter(cfg, service))

	amqpConn, err := amqp.Dial(container.AMQPURL(&cfg.Queue))
	require.NoError(t, err)
	ch, err := amqpConn.Channel()
	require.NoError(t, err)
	events, err := ch.Consume(cfg.Queue.QueueName, "e2e", true, false, false, false, nil)
	require.NoError(t, err)

	return &TestManager{
		Config:    cfg,
		Service:   service,
		DbClient:  dbClient,
		Clock:     clock,
		Server:    server,
		auth:      api.NewAuthenticator(cfg.Auth),
		manager:   manager,
		publisher: publisher,
		events:    events,
		amqpConn:  amqpConn,
		cancel:    cancel,
	}
}

func (tm *TestManager) Stop(t *testing.T) {
	tm.cancel()
	tm.Server.Close()
	require.NoError(t, tm.amqpConn.Close())
	require.NoError(t, tm.publisher.Stop())
	require.NoError(t, tm.DbClient.Disconnect(context.Background()))
	require.NoError(t, tm.manager.ClearResources())
}

func DefaultLedgerConfig(t *testing.T) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{RequestTimeout: 10 * time.Second},
		Auth: config.AuthConfig{
			JwtSecret: "e2e-secret-e2e-secret-e2e-secret",
			Issuer:    "staking-rewards-ledger",
			MaxTTL:    time.Hour,
		},
		Poller: config.PollerConfig{
			OutboxPollingInterval: 200 * time.Millisecond,
			OutboxBatchSize:       50,
			OutboxPublishWorkers:  4,
			StatsPollingInterval:  time.Second,
		},
		Ledger: config.LedgerConfig{
			Owner:            testutil.RandomAddress(t),
			FeeRecipient:     testutil.RandomAddress(t),
			CustodyAccount:   ledger.DefaultCustodyAccount,
			AddressPrefix:    pkg.DefaultAddressPrefix,
			RewardRateBps:    ledger.DefaultRewardRateBps,
			BlocksPerYear:    ledger.DefaultBlocksPerYear,
			FeeRateBps:       ledger.DefaultFeeRateBps,
			RewardPoolAmount: "1000000000",
			PoolExhaustion:   ledger.PoolExhaustionCliff.String(),
			BlockInterval:    15 * time.Second,
			GenesisTime:      "2024-01-01T00:00:00Z",
		},
	}
}

// Fund credits account in the token book.
func (tm *TestManager) Fund(t *testing.T, account string, amount uint64) {
	require.Nil(t, tm.Service.FundAccount(context.Background(), account, sdkmath.NewUint(amount)))
}

// Post calls a mutating endpoint as caller and returns the status code.
func (tm *TestManager) Post(t *testing.T, path, caller, body string) int {
	token, err := tm.auth.SignToken(caller, time.Minute)
	require.NoError(t, err)

	req, err := http.NewRequest(http.MethodPost, tm.Server.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	return resp.StatusCode
}

// Get decodes the data of a read endpoint into v.
func (tm *TestManager) Get(t *testing.T, path string, v interface{}) {
	resp, err := http.Get(tm.Server.URL + path)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body := struct {
		Data interface{} `json:"data"`
	}{Data: v}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
}

// WaitForEvents reads n events from the queue and returns them in sequence
// order.
func (tm *TestManager) WaitForEvents(t *testing.T, n int) []consumer.LedgerEvent {
	received := make([]consumer.LedgerEvent, 0, n)
	timeout := time.After(eventuallyWaitTimeOut)
	for len(received) < n {
		select {
		case msg := <-tm.events:
			var ev consumer.LedgerEvent
			require.NoError(t, json.Unmarshal(msg.Body, &ev))
			received = append(received, ev)
		case <-timeout:
			t.Fatalf("received %d of %d events", len(received), n)
		}
	}

	sort.Slice(received, func(i, j int) bool {
		return received[i].Sequence < received[j].Sequence
	})
	return received
}
