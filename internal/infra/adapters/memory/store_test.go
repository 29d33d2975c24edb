package memory

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/moviemate/watchparty/internal/infra/adapters/store"
)

func TestStore_SetGetDelete(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", "v", time.Minute); err != nil {
		t.Fatalf("set: %v", err)
	}

	got, err := s.Get(ctx, "k")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != "v" {
		t.Errorf("expected %q, got %q", "v", got)
	}
	if ttl := s.TTL("k"); ttl != time.Minute {
		t.Errorf("expected ttl %v, got %v", time.Minute, ttl)
	}

	if err := s.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := s.Get(ctx, "k"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound after delete, got %v", err)
	}

	// deleting an absent key is not an error
	if err := s.Delete(ctx, "k"); err != nil {
		t.Errorf("delete absent: %v", err)
	}
}

func TestStore_GetExpired(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	if err := s.Set(ctx, "k", "v", time.Nanosecond); err != nil {
		t.Fatalf("set: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	if _, err := s.Get(ctx, "k"); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("expected ErrNotFound for expired key, got %v", err)
	}
}

func TestStore_PublishMatchesPatterns(t *testing.T) {
	s := NewStore()
	ctx := context.Background()

	var mu sync.Mutex
	received := map[string]string{}

	err := s.PSubscribe(ctx, []string{"party-chat:*", "party-controls:*"}, func(channel, payload string) {
		mu.Lock()
		received[channel] = payload
		mu.Unlock()
	})
	if err != nil {
		t.Fatalf("psubscribe: %v", err)
	}

	s.Publish(ctx, "party-chat:p1", "hello")
	s.Publish(ctx, "party-controls:p1", "pause")
	s.Publish(ctx, "party-other:p1", "ignored")

	mu.Lock()
	defer mu.Unlock()
	if received["party-chat:p1"] != "hello" {
		t.Errorf("chat payload not delivered: %v", received)
	}
	if received["party-controls:p1"] != "pause" {
		t.Errorf("controls payload not delivered: %v", received)
	}
	if _, ok := received["party-other:p1"]; ok {
		t.Error("unmatched channel should not be delivered")
	}
}

func TestStore_PublishSkipsCancelledSubscriber(t *testing.T) {
	s := NewStore()
	subCtx, cancel := context.WithCancel(context.Background())

	var calls int
	if err := s.PSubscribe(subCtx, []string{"party-chat:*"}, func(string, string) { calls++ }); err != nil {
		t.Fatalf("psubscribe: %v", err)
	}

	cancel()
	s.Publish(context.Background(), "party-chat:p1", "hello")

	if calls != 0 {
		t.Errorf("cancelled subscriber got %d deliveries", calls)
	}
}

func TestMatchPattern(t *testing.T) {
	cases := []struct {
		pattern, channel string
		want             bool
	}{
		{"party-chat:*", "party-chat:p1", true},
		{"party-chat:*", "party-controls:p1", false},
		{"party-chat:p1", "party-chat:p1", true},
		{"party-chat:p1", "party-chat:p2", false},
	}
	for _, c := range cases {
		if got := matchPattern(c.pattern, c.channel); got != c.want {
			t.Errorf("matchPattern(%q, %q) = %v, want %v", c.pattern, c.channel, got, c.want)
		}
	}
}
