package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/infra/adapters/store"
)

// Store backs the party records and the relay transport with a shared
// Redis deployment, so every instance observes the same keys and
// published messages.
type Store struct {
	client *goredis.Client
}

var _ store.Store = (*Store)(nil)

func New(ctx context.Context, url string) (*Store, error) {
	opt, err := goredis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}

	client := goredis.NewClient(opt)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return nil, fmt.Errorf("ping redis: %w", err)
	}

	slog.Info("connected to redis")

	return &Store{client: client}, nil
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	if err := s.client.Set(ctx, key, value, ttl).Err(); err != nil {
		return fmt.Errorf("set %q: %w", key, err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, key).Result()
	if errors.Is(err, goredis.Nil) {
		return "", store.ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get %q: %w", key, err)
	}
	return val, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("delete %q: %w", key, err)
	}
	return nil
}

func (s *Store) Publish(ctx context.Context, channel, payload string) error {
	if err := s.client.Publish(ctx, channel, payload).Err(); err != nil {
		return fmt.Errorf("publish to %q: %w", channel, err)
	}
	return nil
}

func (s *Store) PSubscribe(ctx context.Context, patterns []string, handler store.Handler) error {
	sub := s.client.PSubscribe(ctx, patterns...)

	// Wait for the subscription confirmation so callers know the bus is
	// attached before any party traffic starts.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("subscribe to patterns: %w", err)
	}

	go func() {
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case msg, ok := <-ch:
				if !ok {
					slog.Warn("redis subscription channel closed")
					return
				}
				handler(msg.Channel, msg.Payload)
			}
		}
	}()

	return nil
}

func (s *Store) Close() error {
	if err := s.client.Close(); err != nil {
		slog.Error("close redis client", slog.Any(constant.Error, err))
		return err
	}
	return nil
}
