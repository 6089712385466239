package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/SaidjonAlixon/qr-kodbot/config"
	"github.com/SaidjonAlixon/qr-kodbot/internal/util"
)

type CacheRepository struct {
	client *config.RedisClient
	ttl    time.Duration
}

func NewCacheRepository(rdb *config.RedisClient, ttl time.Duration) *CacheRepository {
	return &CacheRepository{rdb, ttl}
}

func (r *CacheRepository) SetFile(ctx context.Context, name string, data []byte) error {
	cmd := r.client.Client.Set(ctx, r.key(name), data, r.ttl)
	if err := cmd.Err(); err != nil {
		return util.LogError("ошибка сохранения файла в Redis", err)
	}
	return nil
}

func (r *CacheRepository) GetFile(ctx context.Context, name string) ([]byte, error) {
	val, err := r.client.Client.Get(ctx, r.key(name)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil // нет в кэше
	} else if err != nil {
		return nil, util.LogError("ошибка получения файла из Redis", err)
	}
	return val, nil
}

func (r *CacheRepository) DeleteFile(ctx context.Context, name string) error {
	if err := r.client.Client.Del(ctx, r.key(name)).Err(); err != nil {
		return util.LogError("ошибка удаления файла из Redis", err)
	}
	return nil
}

func (r *CacheRepository) key(name string) string {
	return fmt.Sprintf("file:%s", name)
}
