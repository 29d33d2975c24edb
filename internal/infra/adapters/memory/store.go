package memory

import (
	"context"
	"strings"
	"sync"
	"time"

	"github.com/moviemate/watchparty/internal/infra/adapters/store"
)

type entry struct {
	value     string
	expiresAt time.Time
	ttl       time.Duration
}

type subscription struct {
	patterns []string
	handler  store.Handler
	ctx      context.Context
}

// Store is an in-process store.Store with the same contract as the
// Redis adapter: per-key TTL and pattern-based publish/subscribe. It
// serves single-node development and lets the full relay path run in
// tests without a Redis server.
type Store struct {
	entries map[string]entry
	subs    []*subscription

	mu sync.RWMutex
}

var _ store.Store = (*Store)(nil)

func NewStore() *Store {
	return &Store{
		entries: make(map[string]entry),
	}
}

func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	e := entry{value: value, ttl: ttl}
	if ttl > 0 {
		e.expiresAt = time.Now().Add(ttl)
	}
	s.entries[key] = e
	return nil
}

func (s *Store) Get(ctx context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.entries[key]
	if !ok {
		return "", store.ErrNotFound
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(s.entries, key)
		return "", store.ErrNotFound
	}
	return e.value, nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.entries, key)
	return nil
}

func (s *Store) Publish(ctx context.Context, channel, payload string) error {
	s.mu.RLock()
	var handlers []store.Handler
	for _, sub := range s.subs {
		if sub.ctx.Err() != nil {
			continue
		}
		for _, p := range sub.patterns {
			if matchPattern(p, channel) {
				handlers = append(handlers, sub.handler)
				break
			}
		}
	}
	s.mu.RUnlock()

	// Handlers run outside the lock so they may publish in turn.
	for _, h := range handlers {
		h(channel, payload)
	}
	return nil
}

func (s *Store) PSubscribe(ctx context.Context, patterns []string, handler store.Handler) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.subs = append(s.subs, &subscription{patterns: patterns, handler: handler, ctx: ctx})
	return nil
}

// TTL reports the duration the key was last set with. Zero when the key
// is absent. Test hook; the store interface itself has no read-back of
// expiry.
func (s *Store) TTL(key string) time.Duration {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.entries[key].ttl
}

// matchPattern supports the trailing-wildcard form used by the relay
// channels ("party-chat:*") plus exact names.
func matchPattern(pattern, channel string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "*"); ok {
		return strings.HasPrefix(channel, prefix)
	}
	return pattern == channel
}
