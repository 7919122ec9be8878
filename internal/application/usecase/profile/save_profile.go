package profile

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

type SaveProfileUseCase struct {
	profileRepo profile.Repository
	uploader    service.Uploader
	publisher   service.EventPublisher
	cache       service.PortfolioCache
	folder      string
	logger      logger.Logger
}

// NewSaveProfileUseCase wires the save path. uploader, publisher and cache may be nil.
func NewSaveProfileUseCase(
	r profile.Repository,
	u service.Uploader,
	p service.EventPublisher,
	c service.PortfolioCache,
	folder string,
	log logger.Logger,
) *SaveProfileUseCase {
	return &SaveProfileUseCase{profileRepo: r, uploader: u, publisher: p, cache: c, folder: folder, logger: log}
}

type SaveProfileInput struct {
	UserID string
	Patch  profile.Patch
}

type SaveProfileOutput struct {
	Action profile.Action
}

func (uc *SaveProfileUseCase) Execute(ctx context.Context, input SaveProfileInput) (*SaveProfileOutput, error) {
	if input.UserID == "" {
		return nil, apperror.NewInvalidInput("userId is required", nil)
	}

	patch := input.Patch
	var uploadedID string
	if patch.ProfileImage != nil {
		if url, publicID, ok := uc.offloadImage(ctx, input.UserID, *patch.ProfileImage); ok {
			patch.ProfileImage = &url
			uploadedID = publicID
		}
	}

	rec, err := profile.ToStorage(patch)
	if err != nil {
		return nil, apperror.NewInternal("failed to map profile to storage", err)
	}

	action, err := uc.profileRepo.Upsert(ctx, input.UserID, rec)
	if err != nil {
		if uploadedID != "" {
			uc.discardUpload(ctx, uploadedID)
		}
		return nil, fmt.Errorf("save profile failed: %w", err)
	}
	if action == profile.ActionNoChanges {
		return &SaveProfileOutput{Action: action}, nil
	}

	if uc.cache != nil {
		if err := uc.cache.Invalidate(ctx, input.UserID); err != nil {
			uc.logger.Warn("Failed to invalidate portfolio cache", zap.String("user_id", input.UserID), zap.Error(err))
		}
	}

	if uc.publisher != nil {
		evt := service.ProfileSavedEvent{
			UserID:  input.UserID,
			Action:  action,
			Columns: rec.Columns(),
			SavedAt: time.Now().UTC(),
		}
		if patch.TemplateID != nil {
			evt.TemplateID = *patch.TemplateID
		}
		if err := uc.publisher.PublishProfileSaved(ctx, evt); err != nil {
			uc.logger.Error("Failed to publish 'profile.saved' event", err, zap.String("user_id", input.UserID))
		}
	}

	return &SaveProfileOutput{Action: action}, nil
}

// offloadImage uploads an inline data URI and returns the hosted URL and its public id.
// Failures keep the inline value so a save never fails on the media host.
func (uc *SaveProfileUseCase) offloadImage(ctx context.Context, userID, value string) (string, string, bool) {
	if uc.uploader == nil || !strings.HasPrefix(value, "data:image/") {
		return "", "", false
	}

	data, err := decodeDataURI(value)
	if err != nil {
		uc.logger.Warn("Profile image is not a valid data URI", zap.String("user_id", userID), zap.Error(err))
		return "", "", false
	}

	publicID := fmt.Sprintf("%s-%s", userID, uuid.NewString())
	url, err := uc.uploader.Upload(ctx, bytes.NewReader(data), uc.folder, publicID)
	if err != nil {
		uc.logger.Error("Failed to upload profile image", err, zap.String("user_id", userID))
		return "", "", false
	}
	return url, publicID, true
}

// discardUpload removes an image whose profile write failed, so it is not orphaned.
func (uc *SaveProfileUseCase) discardUpload(ctx context.Context, publicID string) {
	if err := uc.uploader.Delete(context.WithoutCancel(ctx), publicID); err != nil {
		uc.logger.Warn("Failed to delete orphaned profile image", zap.String("public_id", publicID), zap.Error(err))
	}
}

func decodeDataURI(uri string) ([]byte, error) {
	meta, payload, ok := strings.Cut(strings.TrimPrefix(uri, "data:"), ",")
	if !ok {
		return nil, fmt.Errorf("missing payload separator")
	}
	if !strings.HasSuffix(meta, ";base64") {
		return nil, fmt.Errorf("unsupported encoding %q", meta)
	}
	return base64.StdEncoding.DecodeString(payload)
}
