package kafka

import (
	"context"
	"encoding/json"
	"sync"
	"testing"
	"time"

	kafkago "github.com/segmentio/kafka-go"

	"github.com/moviemate/watchparty/internal/domain/events"
)

type fakeWriter struct {
	mu   sync.Mutex
	msgs []kafkago.Message
}

func (f *fakeWriter) WriteMessages(ctx context.Context, msgs ...kafkago.Message) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.msgs = append(f.msgs, msgs...)
	return nil
}

func (f *fakeWriter) written() []kafkago.Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]kafkago.Message(nil), f.msgs...)
}

func TestStreamEmitter_DeliversQueuedEvents(t *testing.T) {
	writer := &fakeWriter{}
	emitter := NewStreamEmitter(writer, 16)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go emitter.Run(ctx)

	emitter.Emit(events.TopicPartyEvents, events.DomainEvent{EventType: events.EventCreateParty, PartyID: "p1"})
	emitter.Emit(events.TopicUserEvents, events.DomainEvent{EventType: events.EventJoinParty, UserID: "u1"})

	deadline := time.After(2 * time.Second)
	for len(writer.written()) < 2 {
		select {
		case <-deadline:
			t.Fatalf("expected 2 messages, got %d", len(writer.written()))
		case <-time.After(10 * time.Millisecond):
		}
	}

	msgs := writer.written()
	if msgs[0].Topic != events.TopicPartyEvents {
		t.Errorf("expected topic %q, got %q", events.TopicPartyEvents, msgs[0].Topic)
	}
	if msgs[1].Topic != events.TopicUserEvents {
		t.Errorf("expected topic %q, got %q", events.TopicUserEvents, msgs[1].Topic)
	}

	var ev events.DomainEvent
	if err := json.Unmarshal(msgs[0].Value, &ev); err != nil {
		t.Fatalf("unmarshal payload: %v", err)
	}
	if ev.EventType != events.EventCreateParty || ev.PartyID != "p1" {
		t.Errorf("unexpected payload: %+v", ev)
	}
}

func TestStreamEmitter_EmitNeverBlocksWhenFull(t *testing.T) {
	// no consumer running; the queue holds one event and the rest drop
	emitter := NewStreamEmitter(&fakeWriter{}, 1)

	done := make(chan struct{})
	go func() {
		for i := 0; i < 10; i++ {
			emitter.Emit(events.TopicEngagementEvents, events.DomainEvent{EventType: events.EventMessageSent})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Emit blocked on a full queue")
	}

	if got := len(emitter.queue); got != 1 {
		t.Errorf("expected queue to hold 1 event, got %d", got)
	}
}

func TestStreamEmitter_RunStopsOnCancel(t *testing.T) {
	emitter := NewStreamEmitter(&fakeWriter{}, 1)

	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		emitter.Run(ctx)
		close(stopped)
	}()

	cancel()

	select {
	case <-stopped:
	case <-time.After(time.Second):
		t.Fatal("Run did not return after cancel")
	}
}
