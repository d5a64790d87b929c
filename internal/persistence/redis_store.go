package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/cartflow/internal/config"
	"github.com/cartflow/internal/models"

	"github.com/redis/go-redis/v9"
)

const redisOpTimeout = 3 * time.Second

// RedisStore Redis 实现（前缀键 -> JSON 快照）
type RedisStore struct {
	client *redis.Client
	key    string
}

// NewRedisClient 按配置创建 Redis 客户端
func NewRedisClient(cfg *config.RedisConfig) *redis.Client {
	addr := strings.TrimSpace(cfg.Host)
	if addr == "" {
		addr = "127.0.0.1"
	}
	port := cfg.Port
	if port <= 0 {
		port = 6379
	}
	return redis.NewClient(&redis.Options{
		Addr:     fmt.Sprintf("%s:%d", addr, port),
		Password: cfg.Password,
		DB:       cfg.DB,
	})
}

// NewRedisStore 创建 Redis 存储
func NewRedisStore(client *redis.Client, prefix, key string) *RedisStore {
	prefix = strings.TrimSpace(prefix)
	if prefix == "" {
		prefix = "cartflow"
	}
	return &RedisStore{
		client: client,
		key:    fmt.Sprintf("%s:%s", prefix, key),
	}
}

// Load 读取快照
func (s *RedisStore) Load() ([]models.CartLine, error) {
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()

	val, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	var snapshot models.CartSnapshot
	if err := json.Unmarshal([]byte(val), &snapshot); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	return snapshot.Items, nil
}

// Save 写入快照（不设过期：购物车跨会话留存）
func (s *RedisStore) Save(lines []models.CartLine) error {
	payload, err := json.Marshal(models.CartSnapshot{Items: lines})
	if err != nil {
		return fmt.Errorf("marshal cart snapshot failed: %w", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), redisOpTimeout)
	defer cancel()
	return s.client.Set(ctx, s.key, payload, 0).Err()
}
