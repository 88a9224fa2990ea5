package tokenstore

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Stockify-api/internal/application/ports"
	"github.com/redis/go-redis/v9"
)

var _ ports.TokenRevocationStore = (*RedisStore)(nil)

const keyPrefix = "stockify:revoked:"

// RedisStore lista de revocación compartida entre réplicas. Cada jti expira con el token.
type RedisStore struct {
	rdb *redis.Client
}

// NewRedisStore conecta a url (redis://...) y comprueba la conexión.
func NewRedisStore(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("redis url inválida: %w", err)
	}
	rdb := redis.NewClient(opts)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("conectar a redis: %w", err)
	}
	return &RedisStore{rdb: rdb}, nil
}

func (s *RedisStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	if ttl <= 0 {
		return nil
	}
	if err := s.rdb.Set(ctx, keyPrefix+jti, 1, ttl).Err(); err != nil {
		return fmt.Errorf("revocar token: %w", err)
	}
	return nil
}

func (s *RedisStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	n, err := s.rdb.Exists(ctx, keyPrefix+jti).Result()
	if err != nil {
		return false, fmt.Errorf("consultar revocación: %w", err)
	}
	return n > 0, nil
}

// Ping para el health check.
func (s *RedisStore) Ping(ctx context.Context) error {
	return s.rdb.Ping(ctx).Err()
}

// Close cierra el cliente.
func (s *RedisStore) Close() error {
	return s.rdb.Close()
}
