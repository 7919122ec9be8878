package event

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

type fakeWriter struct {
	msgs []kafka.Message
	err  error
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	w.msgs = append(w.msgs, msgs...)
	return w.err
}

func (w *fakeWriter) Close() error { return nil }

func TestPublishProfileSaved(t *testing.T) {
	w := &fakeWriter{}
	client := &KafkaProducerClient{ProfileEventsWriter: w, log: logger.NewNop()}

	evt := service.ProfileSavedEvent{
		UserID:  "u1",
		Action:  profile.ActionCreated,
		Columns: []string{profile.ColFullName},
		SavedAt: time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC),
	}
	require.NoError(t, client.PublishProfileSaved(context.Background(), evt))

	require.Len(t, w.msgs, 1)
	assert.Equal(t, "u1", string(w.msgs[0].Key))

	var got service.ProfileSavedEvent
	require.NoError(t, json.Unmarshal(w.msgs[0].Value, &got))
	assert.Equal(t, evt, got)
}

func TestPublishProfileSaved_WriterError(t *testing.T) {
	client := &KafkaProducerClient{ProfileEventsWriter: &fakeWriter{err: errors.New("broker down")}, log: logger.NewNop()}

	err := client.PublishProfileSaved(context.Background(), service.ProfileSavedEvent{UserID: "u1"})

	assert.ErrorContains(t, err, "broker down")
}

type fakeReader struct {
	mu        sync.Mutex
	queue     []kafka.Message
	fetchErrs []error
	committed []int64
	cancel    context.CancelFunc
}

func (r *fakeReader) FetchMessage(ctx context.Context) (kafka.Message, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.fetchErrs) > 0 {
		err := r.fetchErrs[0]
		r.fetchErrs = r.fetchErrs[1:]
		return kafka.Message{}, err
	}
	if len(r.queue) == 0 {
		r.cancel()
		return kafka.Message{}, context.Canceled
	}
	msg := r.queue[0]
	r.queue = r.queue[1:]
	return msg, nil
}

func (r *fakeReader) CommitMessages(_ context.Context, msgs ...kafka.Message) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range msgs {
		r.committed = append(r.committed, m.Offset)
	}
	return nil
}

func (r *fakeReader) Close() error { return nil }

func newTestConsumer(r messageReader) *ProfileEventConsumer {
	return &ProfileEventConsumer{reader: r, log: logger.NewNop(), minBackoff: time.Millisecond, maxBackoff: 4 * time.Millisecond}
}

func eventMessage(offset int64, userID string) kafka.Message {
	value, _ := json.Marshal(service.ProfileSavedEvent{UserID: userID})
	return kafka.Message{Offset: offset, Value: value}
}

func TestConsumerRun(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		queue: []kafka.Message{
			eventMessage(1, "ok"),
			{Offset: 2, Value: []byte("not json")},
			eventMessage(3, "also-ok"),
		},
	}

	var handled []string
	err := newTestConsumer(reader).Run(ctx, func(_ context.Context, evt service.ProfileSavedEvent) error {
		handled = append(handled, evt.UserID)
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"ok", "also-ok"}, handled)
	// Undecodable messages are committed and skipped.
	assert.Equal(t, []int64{1, 2, 3}, reader.committed)
}

func TestConsumerRun_RetriesFailedEventBeforeMovingOn(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		queue:  []kafka.Message{eventMessage(1, "flaky"), eventMessage(2, "ok")},
	}

	failures := 2
	var handled []string
	err := newTestConsumer(reader).Run(ctx, func(_ context.Context, evt service.ProfileSavedEvent) error {
		handled = append(handled, evt.UserID)
		if evt.UserID == "flaky" && failures > 0 {
			failures--
			return errors.New("cache down")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, []string{"flaky", "flaky", "flaky", "ok"}, handled)
	assert.Equal(t, []int64{1, 2}, reader.committed)
}

func TestConsumerRun_FailingEventBlocksLaterCommits(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel: cancel,
		queue:  []kafka.Message{eventMessage(1, "fail"), eventMessage(2, "ok")},
	}

	attempts := 0
	err := newTestConsumer(reader).Run(ctx, func(_ context.Context, evt service.ProfileSavedEvent) error {
		if evt.UserID == "ok" {
			t.Error("message after a failing one must not be processed")
		}
		attempts++
		if attempts == 3 {
			cancel()
		}
		return errors.New("boom")
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Empty(t, reader.committed)
}

func TestConsumerRun_BacksOffOnFetchErrors(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	reader := &fakeReader{
		cancel:    cancel,
		fetchErrs: []error{errors.New("broker unreachable"), errors.New("broker unreachable")},
		queue:     []kafka.Message{eventMessage(1, "ok")},
	}

	start := time.Now()
	err := newTestConsumer(reader).Run(ctx, func(context.Context, service.ProfileSavedEvent) error { return nil })

	require.NoError(t, err)
	assert.Equal(t, []int64{1}, reader.committed)
	// 1ms then 2ms between the failed fetches.
	assert.GreaterOrEqual(t, time.Since(start), 3*time.Millisecond)
}
