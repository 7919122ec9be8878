package portfolio

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

// ProcessProfileEventUseCase re-renders a portfolio after its profile was saved.
type ProcessProfileEventUseCase struct {
	profileRepo profile.Repository
	cache       service.PortfolioCache
	logger      logger.Logger
}

func NewProcessProfileEventUseCase(r profile.Repository, c service.PortfolioCache, log logger.Logger) *ProcessProfileEventUseCase {
	return &ProcessProfileEventUseCase{profileRepo: r, cache: c, logger: log}
}

func (uc *ProcessProfileEventUseCase) Execute(ctx context.Context, evt service.ProfileSavedEvent) error {
	log := uc.logger.With(zap.String("user_id", evt.UserID), zap.String("action", string(evt.Action)))
	log.Info("Worker processing profile event")

	if evt.UserID == "" {
		log.Warn("Profile event without user id, skip.")
		return nil
	}

	p, found, err := uc.profileRepo.GetByUserID(ctx, evt.UserID)
	if err != nil {
		return fmt.Errorf("get profile failed: %w", err)
	}
	if !found {
		log.Warn("Profile not found, skip.")
		return nil
	}

	doc := Document(p)
	if err := uc.cache.Set(ctx, evt.UserID, doc, 0); err != nil {
		return fmt.Errorf("cache portfolio failed: %w", err)
	}

	log.Info("Portfolio rendered", zap.String("template_id", string(doc.TemplateID)))
	return nil
}
