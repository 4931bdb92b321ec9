// AngelaMos | 2026
// redis.go

package core

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/carterperez-dev/ittools/internal/config"
)

const redisPingTimeout = 5 * time.Second

type Redis struct {
	Client *redis.Client
}

func NewRedis(ctx context.Context, cfg config.RedisConfig) (*Redis, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns
	if cfg.PoolTimeout > 0 {
		opts.PoolTimeout = cfg.PoolTimeout
	}
	opts.ConnMaxIdleTime = 5 * time.Minute

	client := redis.NewClient(opts)

	r := &Redis{Client: client}
	if err := r.Ping(ctx); err != nil {
		_ = client.Close() //nolint:errcheck // cleanup on connection failure
		return nil, err
	}

	return r, nil
}

func (r *Redis) Close() error {
	if r.Client != nil {
		return r.Client.Close()
	}
	return nil
}

func (r *Redis) Ping(ctx context.Context) error {
	pingCtx, cancel := context.WithTimeout(ctx, redisPingTimeout)
	defer cancel()

	if err := r.Client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis ping failed: %w", err)
	}

	return nil
}

func (r *Redis) PoolStats() *redis.PoolStats {
	return r.Client.PoolStats()
}

// Notify publishes an empty signal on channel. Instances that Listen on the
// same channel react to it; the payload carries nothing.
func (r *Redis) Notify(ctx context.Context, channel string) error {
	if err := r.Client.Publish(ctx, channel, time.Now().UTC().Format(time.RFC3339Nano)).Err(); err != nil {
		return fmt.Errorf("publish %s: %w", channel, err)
	}
	return nil
}

// Listen calls fn for every signal on channel until ctx is done. It
// returns once the subscription is confirmed.
func (r *Redis) Listen(ctx context.Context, channel string, fn func(ctx context.Context)) error {
	sub := r.Client.Subscribe(ctx, channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close() //nolint:errcheck // subscription never became active
		return fmt.Errorf("subscribe %s: %w", channel, err)
	}

	go func() {
		defer sub.Close() //nolint:errcheck // best-effort on shutdown

		messages := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-messages:
				if !ok {
					slog.Warn("redis subscription closed", "channel", channel)
					return
				}
				fn(ctx)
			}
		}
	}()

	return nil
}
