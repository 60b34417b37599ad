// Package cache - простые key-value кэши без срока жизни поверх подключаемого хранилища.
// Значение перезаписывается только явной записью.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/redis/go-redis/v9"
)

// Store - порт хранилища, в котором живет кэш
type Store interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Put(ctx context.Context, key string, value []byte) error
}

// RedisStore хранит значения в Redis без TTL
type RedisStore struct {
	client *redis.Client
	prefix string
}

func NewRedisStore(client *redis.Client, prefix string) *RedisStore {
	return &RedisStore{client: client, prefix: prefix}
}

func (s *RedisStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, err := s.client.Get(ctx, s.prefix+key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to read %s from redis: %w", key, err)
	}
	return val, true, nil
}

func (s *RedisStore) Put(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.prefix+key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to write %s to redis: %w", key, err)
	}
	return nil
}

// MemoryStore - хранилище в памяти процесса
type MemoryStore struct {
	mu    sync.RWMutex
	items map[string][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{items: make(map[string][]byte)}
}

func (s *MemoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.items[key]
	return val, ok, nil
}

func (s *MemoryStore) Put(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = append([]byte(nil), value...)
	return nil
}

// Cache - типизированная обертка над Store с JSON-сериализацией
type Cache[V any] struct {
	store Store
}

func New[V any](store Store) *Cache[V] {
	return &Cache[V]{store: store}
}

func (c *Cache[V]) Get(ctx context.Context, key string) (V, bool, error) {
	var zero V
	raw, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	var v V
	if err := json.Unmarshal(raw, &v); err != nil {
		return zero, false, fmt.Errorf("failed to decode cached %s: %w", key, err)
	}
	return v, true, nil
}

func (c *Cache[V]) Put(ctx context.Context, key string, value V) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to encode %s for cache: %w", key, err)
	}
	return c.store.Put(ctx, key, raw)
}

// AddressKey - ключ адреса по координатам, округленным до 4 знаков (~11 м)
func AddressKey(lat, lon float64) string {
	return fmt.Sprintf("addr:%.4f:%.4f", lat, lon)
}
