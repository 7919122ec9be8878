package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/resume-builder/internal/application/service"
	"github.com/khoahotran/resume-builder/internal/config"
	"github.com/khoahotran/resume-builder/internal/render"
	"github.com/khoahotran/resume-builder/pkg/logger"
)

func NewRedisClient(ctx context.Context, cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	log.Info("Connect Redis successfully.")
	return rdb, nil
}

type redisPortfolioCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewRedisPortfolioCache stores rendered documents as JSON under "portfolio:<userId>".
func NewRedisPortfolioCache(rdb *redis.Client, ttl time.Duration) service.PortfolioCache {
	return &redisPortfolioCache{rdb: rdb, ttl: ttl}
}

func portfolioKey(userID string) string {
	return "portfolio:" + userID
}

func (c *redisPortfolioCache) Get(ctx context.Context, userID string) (*render.Document, bool, error) {
	raw, err := c.rdb.Get(ctx, portfolioKey(userID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("redis get portfolio: %w", err)
	}

	var doc render.Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		// A payload from an older document shape is treated as a miss.
		return nil, false, nil
	}
	return &doc, true, nil
}

func (c *redisPortfolioCache) Set(ctx context.Context, userID string, doc render.Document, ttl time.Duration) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("marshal portfolio: %w", err)
	}
	if ttl <= 0 {
		ttl = c.ttl
	}
	if err := c.rdb.Set(ctx, portfolioKey(userID), raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis set portfolio: %w", err)
	}
	return nil
}

func (c *redisPortfolioCache) Invalidate(ctx context.Context, userID string) error {
	if err := c.rdb.Del(ctx, portfolioKey(userID)).Err(); err != nil {
		return fmt.Errorf("redis del portfolio: %w", err)
	}
	return nil
}
