package portfolio

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/internal/mocks"
	"github.com/khoahotran/resume-builder/internal/render"
	"github.com/khoahotran/resume-builder/pkg/apperror"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

func TestGetPortfolio_CacheHit(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ProfileRepo)
	cache := new(mocks.PortfolioCache)
	doc := &render.Document{TemplateID: catalog.BoldBlack}
	cache.On("Get", ctx, "u1").Return(doc, true, nil)

	out, err := NewGetPortfolioUseCase(repo, cache, logger.NewNop()).Execute(ctx, GetPortfolioInput{UserID: "u1"})

	require.NoError(t, err)
	assert.True(t, out.Cached)
	assert.Equal(t, catalog.BoldBlack, out.Document.TemplateID)
	repo.AssertNotCalled(t, "GetByUserID", mock.Anything, mock.Anything)
}

func TestGetPortfolio_CacheMissRendersAndStores(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ProfileRepo)
	cache := new(mocks.PortfolioCache)

	p := profile.New("u1")
	p.BasicInfo.FullName = "Ada"
	p.BasicInfo.TemplateID = string(catalog.CleanTeal)

	cache.On("Get", ctx, "u1").Return(nil, false, nil)
	repo.On("GetByUserID", ctx, "u1").Return(p, true, nil)
	cache.On("Set", ctx, "u1", mock.MatchedBy(func(d render.Document) bool {
		return d.TemplateID == catalog.CleanTeal && d.Header.Name == "ADA"
	}), ReaderCacheTTL).Return(nil).Once()

	out, err := NewGetPortfolioUseCase(repo, cache, logger.NewNop()).Execute(ctx, GetPortfolioInput{UserID: "u1"})

	require.NoError(t, err)
	assert.False(t, out.Cached)
	assert.Equal(t, catalog.CleanTeal, out.Document.TemplateID)
	cache.AssertExpectations(t)
}

func TestGetPortfolio_CacheErrorsDegrade(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ProfileRepo)
	cache := new(mocks.PortfolioCache)

	cache.On("Get", ctx, "u1").Return(nil, false, errors.New("redis down"))
	cache.On("Set", ctx, "u1", mock.Anything, ReaderCacheTTL).Return(errors.New("redis down"))
	repo.On("GetByUserID", ctx, "u1").Return(profile.New("u1"), true, nil)

	out, err := NewGetPortfolioUseCase(repo, cache, logger.NewNop()).Execute(ctx, GetPortfolioInput{UserID: "u1"})

	require.NoError(t, err)
	assert.Equal(t, catalog.DefaultID, out.Document.TemplateID)
}

func TestGetPortfolio_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.ProfileRepo)
	repo.On("GetByUserID", ctx, "ghost").Return(nil, false, nil)

	_, err := NewGetPortfolioUseCase(repo, nil, logger.NewNop()).Execute(ctx, GetPortfolioInput{UserID: "ghost"})
	assert.True(t, errors.Is(err, apperror.ErrNotFound))
}

func TestProcessProfileEvent(t *testing.T) {
	ctx := context.Background()

	t.Run("renders and caches", func(t *testing.T) {
		repo := new(mocks.ProfileRepo)
		cache := new(mocks.PortfolioCache)
		repo.On("GetByUserID", ctx, "u1").Return(profile.New("u1"), true, nil)
		cache.On("Set", ctx, "u1", mock.AnythingOfType("render.Document"), time.Duration(0)).Return(nil).Once()

		err := NewProcessProfileEventUseCase(repo, cache, logger.NewNop()).
			Execute(ctx, service.ProfileSavedEvent{UserID: "u1", Action: profile.ActionUpdated})

		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("missing profile is skipped", func(t *testing.T) {
		repo := new(mocks.ProfileRepo)
		cache := new(mocks.PortfolioCache)
		repo.On("GetByUserID", ctx, "u1").Return(nil, false, nil)

		err := NewProcessProfileEventUseCase(repo, cache, logger.NewNop()).
			Execute(ctx, service.ProfileSavedEvent{UserID: "u1"})

		require.NoError(t, err)
		cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("cache failure is returned for retry", func(t *testing.T) {
		repo := new(mocks.ProfileRepo)
		cache := new(mocks.PortfolioCache)
		repo.On("GetByUserID", ctx, "u1").Return(profile.New("u1"), true, nil)
		cache.On("Set", ctx, "u1", mock.Anything, mock.Anything).Return(errors.New("oom"))

		err := NewProcessProfileEventUseCase(repo, cache, logger.NewNop()).
			Execute(ctx, service.ProfileSavedEvent{UserID: "u1"})
		assert.Error(t, err)
	})
}
