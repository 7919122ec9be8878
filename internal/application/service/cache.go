package service

import (
	"context"
	"time"

	"github.com/khoahotran/resume-builder/internal/render"
)

// PortfolioCache stores rendered portfolio documents per user.
type PortfolioCache interface {
	Get(ctx context.Context, userID string) (*render.Document, bool, error)
	// Set stores doc for ttl. A ttl of zero uses the cache default.
	Set(ctx context.Context, userID string, doc render.Document, ttl time.Duration) error
	Invalidate(ctx context.Context, userID string) error
}
