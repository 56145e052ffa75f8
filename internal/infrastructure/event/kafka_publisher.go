package event

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/KRaymonne/appli-sitinfra-sub004/internal/domain/shared"
	"github.com/KRaymonne/appli-sitinfra-sub004/internal/infrastructure/config"
	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// messageWriter is the part of *kafka.Writer the publisher uses
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes each event as one JSON message. The topic is the
// configured prefix plus the event name and the key is the aggregate id, so
// events of one record stay ordered within a partition.
type KafkaPublisher struct {
	writer      messageWriter
	topicPrefix string
	logger      *zap.Logger
	now         func() time.Time
}

// NewKafkaPublisher creates a publisher writing to cfg.Brokers
func NewKafkaPublisher(cfg config.KafkaConfig, logger *zap.Logger) *KafkaPublisher {
	w := &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Brokers...),
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		WriteTimeout:           cfg.WriteTimeout,
		AllowAutoTopicCreation: true,
	}
	return newKafkaPublisher(w, cfg.TopicPrefix, logger)
}

func newKafkaPublisher(w messageWriter, prefix string, logger *zap.Logger) *KafkaPublisher {
	return &KafkaPublisher{
		writer:      w,
		topicPrefix: prefix,
		logger:      logger,
		now:         time.Now,
	}
}

// Publish serializes event and writes it to prefix+topic
func (p *KafkaPublisher) Publish(ctx context.Context, topic string, event any) error {
	msg, err := p.message(topic, event)
	if err != nil {
		return err
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("failed to publish %s: %w", topic, err)
	}
	p.logger.Debug("event published", zap.String("topic", msg.Topic), zap.ByteString("key", msg.Key))
	return nil
}

func (p *KafkaPublisher) message(topic string, event any) (kafka.Message, error) {
	data, err := json.Marshal(event)
	if err != nil {
		return kafka.Message{}, fmt.Errorf("failed to serialize %s event: %w", topic, err)
	}

	msg := kafka.Message{
		Topic: p.topicPrefix + topic,
		Value: data,
		Time:  p.now(),
		Headers: []kafka.Header{
			{Key: "event-type", Value: []byte(topic)},
		},
	}
	if e, ok := event.(shared.DomainEvent); ok {
		msg.Key = []byte(e.AggregateID().String())
		msg.Headers = append(msg.Headers, kafka.Header{Key: "event-id", Value: []byte(e.EventID().String())})
	}
	return msg, nil
}

// Close flushes pending writes and closes broker connections
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
