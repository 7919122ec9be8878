package event

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/config"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

const TopicProfileEvents = "profile.events"

// messageWriter is the part of *kafka.Writer the producer uses.
type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type KafkaProducerClient struct {
	ProfileEventsWriter messageWriter
	log                 logger.Logger
}

func NewKafkaProducerClient(cfg config.Config, log logger.Logger) (*KafkaProducerClient, error) {
	brokers := cfg.Kafka.Brokers
	if len(brokers) == 0 {
		return nil, fmt.Errorf("config Kafka brokers not found")
	}

	// writer 'profile.events', keyed by user so one user's events stay ordered
	profileWriter := &kafka.Writer{
		Addr:                   kafka.TCP(brokers...),
		Topic:                  TopicProfileEvents,
		Balancer:               &kafka.Hash{},
		AllowAutoTopicCreation: true,
	}

	log.Info("Initialize Kafka Producers successfully.", zap.Strings("brokers", brokers))

	return &KafkaProducerClient{ProfileEventsWriter: profileWriter, log: log}, nil
}

var _ service.EventPublisher = (*KafkaProducerClient)(nil)

func (c *KafkaProducerClient) PublishProfileSaved(ctx context.Context, evt service.ProfileSavedEvent) error {
	value, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("marshal profile event: %w", err)
	}

	err = c.ProfileEventsWriter.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.UserID),
		Value: value,
	})
	if err != nil {
		return fmt.Errorf("write to %s: %w", TopicProfileEvents, err)
	}
	return nil
}

func (c *KafkaProducerClient) Close() {
	if c.ProfileEventsWriter != nil {
		if err := c.ProfileEventsWriter.Close(); err != nil {
			c.log.Warn("Failed to close Kafka writer", zap.Error(err))
		}
	}
	c.log.Info("Closed Kafka Producers")
}
