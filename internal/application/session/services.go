package session

import (
	"context"

	"github.com/khoahotran/resume-builder/internal/application/usecase/assist"
	profileuc "github.com/khoahotran/resume-builder/internal/application/usecase/profile"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
)

// ProfileService adapts the profile use cases to Loader and Saver.
type ProfileService struct {
	GetProfile  *profileuc.GetProfileUseCase
	SaveProfile *profileuc.SaveProfileUseCase
}

func (s ProfileService) Load(ctx context.Context, userID string) (*profile.Profile, bool, error) {
	out, err := s.GetProfile.Execute(ctx, profileuc.GetProfileInput{UserID: userID})
	if err != nil {
		return nil, false, err
	}
	return out.Profile, out.Exists, nil
}

func (s ProfileService) Save(ctx context.Context, userID string, patch profile.Patch) (profile.Action, error) {
	out, err := s.SaveProfile.Execute(ctx, profileuc.SaveProfileInput{UserID: userID, Patch: patch})
	if err != nil {
		return "", err
	}
	return out.Action, nil
}

// AssistService adapts the generate use case to Assistant.
type AssistService struct {
	GenerateText *assist.GenerateUseCase
}

func (s AssistService) Generate(ctx context.Context, kind string, input map[string]any) (string, error) {
	out, err := s.GenerateText.Execute(ctx, assist.GenerateInput{Kind: kind, Context: input})
	if err != nil {
		return "", err
	}
	return out.Text, nil
}
