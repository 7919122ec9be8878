package event

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/config"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

// messageReader is the part of *kafka.Reader the consumer uses.
type messageReader interface {
	FetchMessage(ctx context.Context) (kafka.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// ProfileEventHandler processes one decoded event. A failing event is retried with
// backoff and nothing after it is fetched until it succeeds, since a commit of a later
// offset would skip it.
type ProfileEventHandler func(ctx context.Context, evt service.ProfileSavedEvent) error

const (
	minRetryBackoff = 500 * time.Millisecond
	maxRetryBackoff = 30 * time.Second
)

type ProfileEventConsumer struct {
	reader     messageReader
	log        logger.Logger
	minBackoff time.Duration
	maxBackoff time.Duration
}

func NewProfileEventConsumer(cfg config.Config, log logger.Logger) *ProfileEventConsumer {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  cfg.Kafka.Brokers,
		Topic:    TopicProfileEvents,
		GroupID:  cfg.Kafka.GroupID,
		MinBytes: 10e3,
		MaxBytes: 10e6,
	})
	return &ProfileEventConsumer{reader: reader, log: log, minBackoff: minRetryBackoff, maxBackoff: maxRetryBackoff}
}

// Run reads until ctx is cancelled.
func (c *ProfileEventConsumer) Run(ctx context.Context, handle ProfileEventHandler) error {
	c.log.Info("Worker listening on topic", zap.String("topic", TopicProfileEvents))

	fetchBackoff := c.minBackoff
	for {
		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if ctx.Err() != nil || errors.Is(err, context.Canceled) {
				return nil
			}
			c.log.Error("Failed to read message from Kafka", err, zap.Duration("retry_in", fetchBackoff))
			if !sleep(ctx, fetchBackoff) {
				return nil
			}
			fetchBackoff = c.next(fetchBackoff)
			continue
		}
		fetchBackoff = c.minBackoff

		c.log.Debug("Received message", zap.String("topic", msg.Topic), zap.String("key", string(msg.Key)))

		var evt service.ProfileSavedEvent
		if err := json.Unmarshal(msg.Value, &evt); err != nil {
			c.log.Warn("Failed to unmarshal event, skipping", zap.Error(err), zap.Int64("offset", msg.Offset))
			c.commit(ctx, msg)
			continue
		}

		if !c.process(ctx, msg, evt, handle) {
			return nil
		}
		c.commit(ctx, msg)
	}
}

// process retries handle until it succeeds. It reports false when ctx ends first, in which
// case the message stays uncommitted.
func (c *ProfileEventConsumer) process(ctx context.Context, msg kafka.Message, evt service.ProfileSavedEvent, handle ProfileEventHandler) bool {
	backoff := c.minBackoff
	for attempt := 1; ; attempt++ {
		err := handle(ctx, evt)
		if err == nil {
			return true
		}
		c.log.Error("Failed to process profile event", err,
			zap.String("user_id", evt.UserID),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("retry_in", backoff),
		)
		if !sleep(ctx, backoff) {
			return false
		}
		backoff = c.next(backoff)
	}
}

func (c *ProfileEventConsumer) next(d time.Duration) time.Duration {
	return min(d*2, c.maxBackoff)
}

func sleep(ctx context.Context, d time.Duration) bool {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return false
	case <-t.C:
		return true
	}
}

func (c *ProfileEventConsumer) commit(ctx context.Context, msg kafka.Message) {
	if err := c.reader.CommitMessages(ctx, msg); err != nil {
		c.log.Error("Failed to commit message", err, zap.Int64("offset", msg.Offset))
	}
}

func (c *ProfileEventConsumer) Close() error {
	return c.reader.Close()
}
