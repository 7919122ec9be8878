package profile

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

type GetProfileUseCase struct {
	profileRepo profile.Repository
	logger      logger.Logger
}

func NewGetProfileUseCase(repo profile.Repository, log logger.Logger) *GetProfileUseCase {
	return &GetProfileUseCase{profileRepo: repo, logger: log}
}

type GetProfileInput struct {
	UserID string
}

type GetProfileOutput struct {
	Exists  bool
	Profile *profile.Profile
}

func (uc *GetProfileUseCase) Execute(ctx context.Context, input GetProfileInput) (*GetProfileOutput, error) {
	if input.UserID == "" {
		return nil, apperror.NewInvalidInput("userId is required", nil)
	}

	p, found, err := uc.profileRepo.GetByUserID(ctx, input.UserID)
	if err != nil {
		return nil, fmt.Errorf("get profile failed: %w", err)
	}
	if !found {
		return &GetProfileOutput{Exists: false}, nil
	}
	if len(p.CorruptedSections) > 0 {
		uc.logger.Warn("Serving profile with reset sections",
			zap.String("user_id", input.UserID), zap.Strings("sections", p.CorruptedSections))
	}
	return &GetProfileOutput{Exists: true, Profile: p}, nil
}
