package service

import (
	"context"
	"time"

	"github.com/khoahotran/resume-builder/internal/domain/profile"
)

// ProfileSavedEvent is published after a successful profile write.
type ProfileSavedEvent struct {
	UserID     string         `json:"user_id"`
	Action     profile.Action `json:"action"`
	TemplateID string         `json:"template_id,omitempty"`
	Columns    []string       `json:"columns"`
	SavedAt    time.Time      `json:"saved_at"`
}

type EventPublisher interface {
	PublishProfileSaved(ctx context.Context, evt ProfileSavedEvent) error
}
