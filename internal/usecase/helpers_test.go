package usecase

import (
	"encoding/binary"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/moviemate/watchparty/internal/domain/events"
	"github.com/moviemate/watchparty/internal/domain/runtime"
)

type emitted struct {
	topic string
	event events.DomainEvent
}

// fakeEmitter records events synchronously instead of queueing them.
type fakeEmitter struct {
	mu     sync.Mutex
	events []emitted
}

func (f *fakeEmitter) Emit(topic string, event events.DomainEvent) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.events = append(f.events, emitted{topic: topic, event: event})
}

func (f *fakeEmitter) byType(eventType string) []emitted {
	f.mu.Lock()
	defer f.mu.Unlock()

	var out []emitted
	for _, e := range f.events {
		if e.event.EventType == eventType {
			out = append(out, e)
		}
	}
	return out
}

// fakeWire records frames written to one connection.
type fakeWire struct {
	mu          sync.Mutex
	frames      []string
	closed      bool
	closeCode   int
	closeReason string
}

func (f *fakeWire) WriteMessage(messageType int, data []byte) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if messageType == websocket.CloseMessage {
		if len(data) >= 2 {
			f.closeCode = int(binary.BigEndian.Uint16(data[:2]))
			f.closeReason = string(data[2:])
		}
		return nil
	}
	f.frames = append(f.frames, string(data))
	return nil
}

func (f *fakeWire) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func (f *fakeWire) receivedFrames() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.frames...)
}

func wiredConn(partyID, userID string) (*runtime.Connection, *fakeWire) {
	w := &fakeWire{}
	return runtime.NewConnection(partyID, userID, w), w
}
