package container

import (
	"context"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/db/model"
	"github.com/babylonlabs-io/staking-rewards-ledger/testutil"
)

const (
	replicaSetName = "rs0"
	rabbitUser     = "user"
	rabbitPassword = "password"
)

// Manager is a wrapper around all Docker instances, and the Docker API.
// It provides utilities to run and interact with all Docker containers used
// within e2e testing.
type Manager struct {
	cfg       ImageConfig
	pool      *dockertest.Pool
	resources map[string]*dockertest.Resource
}

// NewManager creates a new Manager instance and initializes
// all Docker specific utilities. Returns an error if initialization fails.
func NewManager(t *testing.T) (*Manager, error) {
	pool, err := dockertest.NewPool("")
	if err != nil {
		return nil, err
	}
	pool.MaxWait = 2 * time.Minute

	return &Manager{
		cfg:       NewImageConfig(),
		pool:      pool,
		resources: make(map[string]*dockertest.Resource),
	}, nil
}

// RunMongoResource starts a single node replica set and returns the db
// config pointing at it.
func (m *Manager) RunMongoResource(t *testing.T) *config.DbConfig {
	resource := m.run(t, "mongo", &dockertest.RunOptions{
		Repository: m.cfg.MongoRepository,
		Tag:        m.cfg.MongoVersion,
		Cmd:        []string{"--replSet", replicaSetName, "--bind_ip_all"},
	})

	cfg := &config.DbConfig{
		DbName:  "e2e-ledger",
		Address: fmt.Sprintf("mongodb://localhost:%s/?directConnection=true", resource.GetPort("27017/tcp")),
	}
	require.NoError(t, m.pool.Retry(func() error { return initiateReplicaSet(cfg) }))
	return cfg
}

// RunRabbitMQResource starts a broker and returns the queue config pointing
// at it.
func (m *Manager) RunRabbitMQResource(t *testing.T) *config.QueueConfig {
	resource := m.run(t, "rabbitmq", &dockertest.RunOptions{
		Repository: m.cfg.RabbitMQRepository,
		Tag:        m.cfg.RabbitMQVersion,
		Env: []string{
			"RABBITMQ_DEFAULT_USER=" + rabbitUser,
			"RABBITMQ_DEFAULT_PASS=" + rabbitPassword,
		},
	})

	cfg := &config.QueueConfig{
		QueueUser:              rabbitUser,
		QueuePassword:          rabbitPassword,
		Url:                    "localhost:" + resource.GetPort("5672/tcp"),
		Exchange:               "ledger",
		QueueName:              "ledger-events",
		QueueType:              config.QuorumQueueType,
		QueueProcessingTimeout: 5 * time.Second,
		MsgMaxRetryAttempts:    3,
		ReQueueDelayTime:       100 * time.Millisecond,
	}
	require.NoError(t, m.pool.Retry(func() error {
		conn, err := amqp.Dial(AMQPURL(cfg))
		if err != nil {
			return err
		}
		return conn.Close()
	}))
	return cfg
}

// ClearResources removes all outstanding Docker resources created by the Manager.
func (m *Manager) ClearResources() error {
	for name, resource := range m.resources {
		if err := m.pool.Purge(resource); err != nil {
			return fmt.Errorf("failed to purge %s: %w", name, err)
		}
	}
	return nil
}

func (m *Manager) run(t *testing.T, name string, opts *dockertest.RunOptions) *dockertest.Resource {
	suffix, err := testutil.RandomAlphaNum(4)
	require.NoError(t, err)

	// there can be only 1 container with the same name
	opts.Name = fmt.Sprintf("%s-e2e-%s", name, suffix)
	resource, err := m.pool.RunWithOptions(opts, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err)

	m.resources[name] = resource
	return resource
}

// AMQPURL returns the broker url of cfg.
func AMQPURL(cfg *config.QueueConfig) string {
	u := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(cfg.QueueUser, cfg.QueuePassword),
		Host:   cfg.Url,
	}
	return u.String()
}

func initiateReplicaSet(cfg *config.DbConfig) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, model.ClientOptions(cfg))
	if err != nil {
		return err
	}
	defer client.Disconnect(context.Background()) //nolint:errcheck

	admin := client.Database("admin")
	if err := admin.RunCommand(ctx, bson.D{{Key: "replSetGetStatus", Value: 1}}).Err(); err != nil {
		initiate := bson.D{{Key: "replSetInitiate", Value: bson.M{
			"_id":     replicaSetName,
			"members": bson.A{bson.M{"_id": 0, "host": "localhost:27017"}},
		}}}
		if err := admin.RunCommand(ctx, initiate).Err(); err != nil {
			return err
		}
	}

	var hello struct {
		IsWritablePrimary bool `bson:"isWritablePrimary"`
	}
	if err := admin.RunCommand(ctx, bson.D{{Key: "hello", Value: 1}}).Decode(&hello); err != nil {
		return err
	}
	if !hello.IsWritablePrimary {
		return fmt.Errorf("replica set has no primary yet")
	}
	return nil
}
