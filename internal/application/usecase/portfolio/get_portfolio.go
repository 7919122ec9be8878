package portfolio

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/internal/render"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

// ReaderCacheTTL bounds entries written on a read miss. A save that invalidates between the
// profile read and the cache write would otherwise be masked until the full TTL expires.
const ReaderCacheTTL = time.Minute

type GetPortfolioUseCase struct {
	profileRepo profile.Repository
	cache       service.PortfolioCache
	logger      logger.Logger
}

// NewGetPortfolioUseCase builds the public portfolio reader. cache may be nil.
func NewGetPortfolioUseCase(r profile.Repository, c service.PortfolioCache, log logger.Logger) *GetPortfolioUseCase {
	return &GetPortfolioUseCase{profileRepo: r, cache: c, logger: log}
}

type GetPortfolioInput struct {
	UserID string
}

type GetPortfolioOutput struct {
	Document render.Document
	Cached   bool
}

func (uc *GetPortfolioUseCase) Execute(ctx context.Context, input GetPortfolioInput) (*GetPortfolioOutput, error) {
	if input.UserID == "" {
		return nil, apperror.NewInvalidInput("userId is required", nil)
	}

	if uc.cache != nil {
		doc, ok, err := uc.cache.Get(ctx, input.UserID)
		if err != nil {
			uc.logger.Warn("Portfolio cache read failed", zap.String("user_id", input.UserID), zap.Error(err))
		} else if ok {
			return &GetPortfolioOutput{Document: *doc, Cached: true}, nil
		}
	}

	p, found, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("get portfolio failed: %w", err)
	}
	if !found {
		return nil, apperror.NewNotFound("Portfolio", input.UserID)
	}

	doc := Document(p)
	if uc.cache != nil {
		if err := uc.cache.Set(ctx, input.UserID, doc, ReaderCacheTTL); err != nil {
			uc.logger.Warn("Portfolio cache write failed", zap.String("user_id", input.UserID), zap.Error(err))
		}
	}
	return &GetPortfolioOutput{Document: doc}, nil
}

// Document renders p with its chosen template, or the builder default when none is set.
func Document(p *profile.Profile) render.Document {
	templateID := p.BasicInfo.TemplateID
	if templateID == "" {
		templateID = string(catalog.DefaultID)
	}
	return render.Render(p, templateID)
}
