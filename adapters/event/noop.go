package event

import (
	"context"

	"github.com/khoahotran/resume-builder/internal/application/service"
)

// NoopPublisher drops events. Used when no Kafka brokers are configured.
type NoopPublisher struct{}

func (NoopPublisher) PublishProfileSaved(context.Context, service.ProfileSavedEvent) error {
	return nil
}
