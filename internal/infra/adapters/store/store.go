package store

import (
	"context"
	"errors"
	"time"
)

// ErrNotFound reports a key that is absent or has expired.
var ErrNotFound = errors.New("key not found")

// Handler receives one published message. It is called from the
// subscriber goroutine and must not block for long.
type Handler func(channel, payload string)

// Store is the key-value and publish/subscribe surface the party
// subsystem needs: durable records with per-key expiration, plus the
// transport for cross-instance relay fan-out.
type Store interface {
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	Get(ctx context.Context, key string) (string, error)
	Delete(ctx context.Context, key string) error

	Publish(ctx context.Context, channel, payload string) error

	// PSubscribe subscribes to the given channel patterns and invokes
	// handler for every matching message until ctx is canceled. It
	// returns once the subscription is established.
	PSubscribe(ctx context.Context, patterns []string, handler Handler) error
}
