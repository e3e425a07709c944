package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "cafebooking:session:"

// RedisStore хранит сессии в redis, истечение сессии делегировано TTL ключа
type RedisStore struct {
	client redis.UniversalClient
}

// NewRedisStore создает хранилище сессий поверх redis клиента
func NewRedisStore(client redis.UniversalClient) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) key(id string) string {
	return keyPrefix + id
}

// Save сохраняет сессию на время ttl
func (s *RedisStore) Save(ctx context.Context, session *Session, ttl time.Duration) error {
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("%w: Save - marshal session %s: %v", ErrEncode, session.ID, err)
	}

	if err := s.client.Set(ctx, s.key(session.ID), payload, ttl).Err(); err != nil {
		return fmt.Errorf("%w: Save - set key: %v", ErrStore, err)
	}

	return nil
}

// Get получает сессию по jti
func (s *RedisStore) Get(ctx context.Context, id string) (*Session, error) {
	payload, err := s.client.Get(ctx, s.key(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - get key: %v", ErrStore, err)
	}

	var session Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("%w: Get - unmarshal session %s: %v", ErrEncode, id, err)
	}

	return &session, nil
}

// Delete удаляет сессию. Отсутствие сессии не считается ошибкой.
func (s *RedisStore) Delete(ctx context.Context, id string) error {
	if err := s.client.Del(ctx, s.key(id)).Err(); err != nil {
		return fmt.Errorf("%w: Delete - del key: %v", ErrStore, err)
	}
	return nil
}
