// Copyright (c) 2026 Dossier. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package preference

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/dossier/internal/platform/constants"
)

// RedisRepository implements [Repository] using go-redis.
type RedisRepository struct {
	client redis.UniversalClient
}

// NewRedisRepository constructs a Redis backed preference store.
func NewRedisRepository(client redis.UniversalClient) *RedisRepository {
	return &RedisRepository{client: client}
}

// GetLocale implements [Repository].
func (repository *RedisRepository) GetLocale(context context.Context, owner string) (string, error) {
	locale, err := repository.client.Get(context, localeKey(owner)).Result()
	if errors.Is(err, redis.Nil) {
		return "", ErrNotSet
	}
	if err != nil {
		return "", fmt.Errorf("preference: get locale: %w", err)
	}
	return locale, nil
}

// SetLocale implements [Repository].
func (repository *RedisRepository) SetLocale(context context.Context, owner, locale string, ttl time.Duration) error {
	if err := repository.client.Set(context, localeKey(owner), locale, ttl).Err(); err != nil {
		return fmt.Errorf("preference: set locale: %w", err)
	}
	return nil
}

// ClearLocale implements [Repository].
func (repository *RedisRepository) ClearLocale(context context.Context, owner string) error {
	if err := repository.client.Del(context, localeKey(owner)).Err(); err != nil {
		return fmt.Errorf("preference: clear locale: %w", err)
	}
	return nil
}

func localeKey(owner string) string {
	return constants.RedisPrefixLocale + owner
}
