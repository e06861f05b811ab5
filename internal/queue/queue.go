package queue

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/avast/retry-go/v4"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog/log"

	"github.com/babylonlabs-io/staking-rewards-ledger/consumer"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/config"
	"github.com/babylonlabs-io/staking-rewards-ledger/internal/observability/metrics"
)

const (
	exchangeKind = "topic"
	routingKey   = "ledger.%s"
	bindingKey   = "ledger.#"
	contentType  = "application/json"
)

var errNacked = errors.New("message was nacked by the broker")

// QueueManager publishes ledger events to a RabbitMQ topic exchange with
// publisher confirms. It reconnects lazily when the channel was closed.
type QueueManager struct {
	cfg *config.QueueConfig

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

var _ consumer.EventPublisher = (*QueueManager)(nil)

func NewQueueManager(cfg *config.QueueConfig) (*QueueManager, error) {
	if cfg == nil {
		return nil, errors.New("queue config is required")
	}
	return &QueueManager{cfg: cfg}, nil
}

func (qm *QueueManager) Start() error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	return qm.connect()
}

// connect must be called with mu held.
func (qm *QueueManager) connect() error {
	amqpURL := url.URL{
		Scheme: "amqp",
		User:   url.UserPassword(qm.cfg.QueueUser, qm.cfg.QueuePassword),
		Host:   qm.cfg.Url,
	}
	conn, err := amqp.Dial(amqpURL.String())
	if err != nil {
		return fmt.Errorf("failed to dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close() //nolint:errcheck
		return fmt.Errorf("failed to open channel: %w", err)
	}

	if err := qm.declare(ch); err != nil {
		conn.Close() //nolint:errcheck
		return err
	}

	qm.conn = conn
	qm.ch = ch
	log.Info().
		Str("exchange", qm.cfg.Exchange).
		Str("queue", qm.cfg.QueueName).
		Msg("Connected to rabbitmq")
	return nil
}

func (qm *QueueManager) declare(ch *amqp.Channel) error {
	err := ch.ExchangeDeclare(qm.cfg.Exchange, exchangeKind, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to declare exchange %s: %w", qm.cfg.Exchange, err)
	}

	args := amqp.Table{"x-queue-type": qm.cfg.QueueType}
	if _, err := ch.QueueDeclare(qm.cfg.QueueName, true, false, false, false, args); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", qm.cfg.QueueName, err)
	}

	if err := ch.QueueBind(qm.cfg.QueueName, bindingKey, qm.cfg.Exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s: %w", qm.cfg.QueueName, err)
	}

	if err := ch.Confirm(false); err != nil {
		return fmt.Errorf("failed to enable publisher confirms: %w", err)
	}
	return nil
}

func (qm *QueueManager) channel() (*amqp.Channel, error) {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	if qm.ch == nil || qm.ch.IsClosed() {
		if qm.conn != nil && !qm.conn.IsClosed() {
			qm.conn.Close() //nolint:errcheck
		}
		if err := qm.connect(); err != nil {
			return nil, err
		}
	}
	return qm.ch, nil
}

// PushLedgerEvent publishes ev and waits for the broker confirmation. Failed
// attempts are retried up to the configured number of times.
func (qm *QueueManager) PushLedgerEvent(ctx context.Context, ev *consumer.LedgerEvent) error {
	body, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", ev.ID, err)
	}

	msg := amqp.Publishing{
		ContentType:  contentType,
		DeliveryMode: amqp.Persistent,
		MessageId:    ev.ID,
		Type:         ev.EventType,
		Timestamp:    ev.CreatedAt,
		Body:         body,
	}

	err = retry.Do(
		func() error {
			return qm.publish(ctx, ev.EventType, msg)
		},
		retry.Context(ctx),
		retry.Attempts(qm.cfg.MsgMaxRetryAttempts),
		retry.Delay(qm.cfg.ReQueueDelayTime),
		retry.LastErrorOnly(true),
		retry.OnRetry(func(n uint, err error) {
			log.Ctx(ctx).Warn().
				Err(err).
				Uint("attempt", n+1).
				Str("event_id", ev.ID).
				Msg("Retrying event publish")
		}),
	)
	if err != nil {
		metrics.RecordQueueSendError()
		return fmt.Errorf("failed to publish event %s: %w", ev.ID, err)
	}

	metrics.RecordQueuePublished(ev.EventType)
	return nil
}

func (qm *QueueManager) publish(ctx context.Context, eventType string, msg amqp.Publishing) error {
	ch, err := qm.channel()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, qm.cfg.QueueProcessingTimeout)
	defer cancel()

	confirmation, err := ch.PublishWithDeferredConfirmWithContext(
		ctx, qm.cfg.Exchange, fmt.Sprintf(routingKey, eventType), false, false, msg,
	)
	if err != nil {
		return err
	}

	acked, err := confirmation.WaitContext(ctx)
	if err != nil {
		return err
	}
	if !acked {
		return errNacked
	}
	return nil
}

// Stop gracefully stops the interaction with the queue, ensuring all resources are properly released.
func (qm *QueueManager) Stop() error {
	qm.mu.Lock()
	defer qm.mu.Unlock()

	log.Info().Msg("Shutting down queue manager")
	if qm.conn == nil || qm.conn.IsClosed() {
		return nil
	}
	if err := qm.ch.Close(); err != nil && !errors.Is(err, amqp.ErrClosed) {
		return err
	}
	return qm.conn.Close()
}
