package persistence

import (
	"context"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/spec-kit/clinic-services/internal/config"
)

// Redis carries the domain event relay.
type Redis struct {
	Client  *redis.Client
	service string
	addr    string
}

// NewRedis builds the client for service. The client is always returned so
// the relay can recover once Redis comes up; the error reports the first
// failed ping.
func NewRedis(ctx context.Context, service string, cfg config.RedisConfig, logger *zap.Logger) (*Redis, error) {
	r := &Redis{
		Client: redis.NewClient(&redis.Options{
			Addr:       cfg.Addr,
			Password:   cfg.Password,
			DB:         cfg.DB,
			ClientName: service,
		}),
		service: service,
		addr:    cfg.Addr,
	}

	if err := r.Ping(ctx); err != nil {
		return r, err
	}
	logger.Info("connected to redis", zap.String("addr", cfg.Addr), zap.Int("db", cfg.DB))
	return r, nil
}

// Close closes the client.
func (r *Redis) Close() {
	if r != nil && r.Client != nil {
		_ = r.Client.Close()
	}
}

// Ping verifies connectivity within pingTimeout.
func (r *Redis) Ping(ctx context.Context) error {
	if r == nil || r.Client == nil {
		return errors.New("redis not configured")
	}
	ctx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := r.Client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("%s: redis %s unreachable: %w", r.service, r.addr, err)
	}
	return nil
}
