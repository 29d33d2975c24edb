package memory

import (
	"sync"

	"github.com/moviemate/watchparty/internal/application/metric"
	"github.com/moviemate/watchparty/internal/domain/runtime"
)

// RoomRegistry tracks which connections of this instance belong to
// which party. State is process-local and lost on restart; the state
// store stays canonical for party existence.
type RoomRegistry interface {
	Register(partyID string, conn *runtime.Connection)

	// Unregister is a no-op when the room or the connection is absent.
	Unregister(partyID string, conn *runtime.Connection)

	// Members returns the current local members, nil when none.
	Members(partyID string) []*runtime.Connection

	RemoveRoom(partyID string)
}

type roomRegistry struct {
	// rooms holds map[party_id]set of connections
	rooms map[string]map[*runtime.Connection]struct{}

	mu sync.RWMutex
}

func NewRoomRegistry() RoomRegistry {
	return &roomRegistry{
		rooms: make(map[string]map[*runtime.Connection]struct{}),
	}
}

func (r *roomRegistry) Register(partyID string, conn *runtime.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[partyID]
	if !ok {
		room = make(map[*runtime.Connection]struct{})
		r.rooms[partyID] = room
	}
	room[conn] = struct{}{}

	metric.IncrementWSActiveConnections()
}

func (r *roomRegistry) Unregister(partyID string, conn *runtime.Connection) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[partyID]
	if !ok {
		return
	}

	if _, exists := room[conn]; exists {
		delete(room, conn)
		metric.DecrementWSActiveConnections()
	}

	// An emptied room stays registered until host termination removes
	// it; only the backing party record expires via TTL.
}

func (r *roomRegistry) Members(partyID string) []*runtime.Connection {
	r.mu.RLock()
	defer r.mu.RUnlock()

	room, ok := r.rooms[partyID]
	if !ok || len(room) == 0 {
		return nil
	}

	members := make([]*runtime.Connection, 0, len(room))
	for conn := range room {
		members = append(members, conn)
	}
	return members
}

func (r *roomRegistry) RemoveRoom(partyID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	room, ok := r.rooms[partyID]
	if !ok {
		return
	}

	if n := len(room); n > 0 {
		metric.SubtractWSActiveConnections(n)
	}
	delete(r.rooms, partyID)
}
