// Package event delivers domain events to Kafka, or to the log when Kafka is
// not configured.
package event

import (
	"context"
	"encoding/json"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"go.uber.org/zap"
)

// Publisher is an EventPublisher that holds resources released on shutdown
type Publisher interface {
	shared.EventPublisher
	Close() error
}

// New returns a KafkaPublisher when Kafka is enabled and a LogPublisher otherwise
func New(cfg config.KafkaConfig, logger *zap.Logger) Publisher {
	if cfg.Enabled {
		logger.Info("Publishing domain events to Kafka",
			zap.Strings("brokers", cfg.Brokers),
			zap.String("topic_prefix", cfg.TopicPrefix),
		)
		return NewKafkaPublisher(cfg, logger)
	}
	return NewLogPublisher(logger)
}

// LogPublisher writes events to the application log
type LogPublisher struct {
	logger *zap.Logger
}

// NewLogPublisher creates a LogPublisher
func NewLogPublisher(logger *zap.Logger) *LogPublisher {
	return &LogPublisher{logger: logger}
}

// Publish logs the JSON form of event under topic
func (p *LogPublisher) Publish(_ context.Context, topic string, event any) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	fields := []zap.Field{zap.String("topic", topic), zap.ByteString("payload", data)}
	if e, ok := event.(shared.DomainEvent); ok {
		fields = append(fields,
			zap.String("aggregate_type", e.AggregateType()),
			zap.String("aggregate_id", e.AggregateID().String()))
	}
	p.logger.Info("domain event", fields...)
	return nil
}

// Close is a no-op
func (p *LogPublisher) Close() error {
	return nil
}
