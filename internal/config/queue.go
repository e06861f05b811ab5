package config

import (
	"errors"
	"time"
)

const (
	QuorumQueueType  = "quorum"
	ClassicQueueType = "classic"
)

type QueueConfig struct {
	QueueUser              string        `mapstructure:"queue-user"`
	QueuePassword          string        `mapstructure:"queue-password"`
	Url                    string        `mapstructure:"url"`
	Exchange               string        `mapstructure:"exchange"`
	QueueName              string        `mapstructure:"queue-name"`
	QueueType              string        `mapstructure:"queue-type"`
	QueueProcessingTimeout time.Duration `mapstructure:"processing-timeout"`
	MsgMaxRetryAttempts    uint          `mapstructure:"msg-max-retry-attempts"`
	ReQueueDelayTime       time.Duration `mapstructure:"requeue-delay-time"`
}

func (cfg *QueueConfig) Validate() error {
	if cfg.QueueUser == "" {
		return errors.New("missing queue user")
	}

	if cfg.QueuePassword == "" {
		return errors.New("missing queue password")
	}

	if cfg.Url == "" {
		return errors.New("missing queue url")
	}

	if cfg.Exchange == "" {
		return errors.New("missing queue exchange")
	}

	if cfg.QueueName == "" {
		return errors.New("missing queue name")
	}

	if cfg.QueueType != QuorumQueueType && cfg.QueueType != ClassicQueueType {
		return errors.New("queue type must be quorum or classic")
	}

	if cfg.QueueProcessingTimeout <= 0 {
		return errors.New("invalid queue processing timeout")
	}

	if cfg.MsgMaxRetryAttempts == 0 {
		return errors.New("invalid queue msg max retry attempts")
	}

	if cfg.ReQueueDelayTime <= 0 {
		return errors.New("invalid requeue delay time")
	}

	return nil
}
