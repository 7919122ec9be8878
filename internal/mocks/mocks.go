// Package mocks holds testify mocks for the repository and service ports.
package mocks

import (
	"context"
	"io"
	"time"

	"github.com/stretchr/testify/mock"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/domain/catalog"
	"github.com/khoahotran/resume-builder/internal/domain/profile"
	"github.com/khoahotran/resume-builder/internal/render"
)

type ProfileRepo struct {
	mock.Mock
}

func (m *ProfileRepo) GetByUserID(ctx context.Context, userID string) (*profile.Profile, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*profile.Profile), args.Bool(1), args.Error(2)
}

func (m *ProfileRepo) Upsert(ctx context.Context, userID string, rec profile.Record) (profile.Action, error) {
	args := m.Called(ctx, userID, rec)
	return args.Get(0).(profile.Action), args.Error(1)
}

type TemplateRepo struct {
	mock.Mock
}

func (m *TemplateRepo) ListActive(ctx context.Context) ([]catalog.TemplateMeta, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]catalog.TemplateMeta), args.Error(1)
}

func (m *TemplateRepo) Upsert(ctx context.Context, t catalog.TemplateMeta, active bool) error {
	return m.Called(ctx, t, active).Error(0)
}

type LLM struct {
	mock.Mock
}

func (m *LLM) Complete(ctx context.Context, req service.CompletionRequest) (string, error) {
	args := m.Called(ctx, req)
	return args.String(0), args.Error(1)
}

type Uploader struct {
	mock.Mock
}

func (m *Uploader) Upload(ctx context.Context, file io.Reader, folder string, publicID string) (string, error) {
	args := m.Called(ctx, file, folder, publicID)
	return args.String(0), args.Error(1)
}

func (m *Uploader) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

type Publisher struct {
	mock.Mock
}

func (m *Publisher) PublishProfileSaved(ctx context.Context, evt service.ProfileSavedEvent) error {
	return m.Called(ctx, evt).Error(0)
}

type PortfolioCache struct {
	mock.Mock
}

func (m *PortfolioCache) Get(ctx context.Context, userID string) (*render.Document, bool, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Bool(1), args.Error(2)
	}
	return args.Get(0).(*render.Document), args.Bool(1), args.Error(2)
}

func (m *PortfolioCache) Set(ctx context.Context, userID string, doc render.Document, ttl time.Duration) error {
	return m.Called(ctx, userID, doc, ttl).Error(0)
}

func (m *PortfolioCache) Invalidate(ctx context.Context, userID string) error {
	return m.Called(ctx, userID).Error(0)
}

type StoreHealth struct {
	mock.Mock
}

func (m *StoreHealth) Check(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}
