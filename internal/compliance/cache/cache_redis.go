package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"phytoguard/internal/compliance/models"
)

const (
	reportKeyPrefix  = "phytoguard:report:"
	profileKeyPrefix = "phytoguard:profiles:"
)

// RedisCache is the production cache for distributed deployments.
type RedisCache struct {
	client     *redis.Client
	reportTTL  time.Duration
	profileTTL time.Duration
}

// NewRedis constructs a Redis-backed cache. Reports change often (observed
// distances move), hazard profiles far less, hence the separate TTLs.
func NewRedis(client *redis.Client, reportTTL, profileTTL time.Duration) *RedisCache {
	return &RedisCache{
		client:     client,
		reportTTL:  reportTTL,
		profileTTL: profileTTL,
	}
}

func (c *RedisCache) GetReport(ctx context.Context, key string) ([]byte, error) {
	data, err := c.client.Get(ctx, reportKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached report: %w", err)
	}
	return data, nil
}

func (c *RedisCache) SetReport(ctx context.Context, key string, data []byte) error {
	if err := c.client.Set(ctx, reportKeyPrefix+key, data, c.reportTTL).Err(); err != nil {
		return fmt.Errorf("cache report: %w", err)
	}
	return nil
}

func (c *RedisCache) GetProfiles(ctx context.Context, key string) ([]models.ProductEnvironmentalProfile, error) {
	data, err := c.client.Get(ctx, profileKeyPrefix+key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get cached profiles: %w", err)
	}

	var profiles []models.ProductEnvironmentalProfile
	if err := json.Unmarshal(data, &profiles); err != nil {
		return nil, fmt.Errorf("decode cached profiles: %w", err)
	}
	return profiles, nil
}

func (c *RedisCache) SetProfiles(ctx context.Context, key string, profiles []models.ProductEnvironmentalProfile) error {
	data, err := json.Marshal(profiles)
	if err != nil {
		return fmt.Errorf("encode profiles: %w", err)
	}
	if err := c.client.Set(ctx, profileKeyPrefix+key, data, c.profileTTL).Err(); err != nil {
		return fmt.Errorf("cache profiles: %w", err)
	}
	return nil
}
