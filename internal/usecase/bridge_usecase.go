package usecase

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/gorilla/websocket"

	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/application/metric"
	"github.com/moviemate/watchparty/internal/domain/events"
	"github.com/moviemate/watchparty/internal/domain/runtime"
	"github.com/moviemate/watchparty/internal/infra/adapters/memory"
	"github.com/moviemate/watchparty/internal/infra/adapters/store"
)

// EndOfPartyReason is the close reason sent to every member when the
// host terminates the party.
const EndOfPartyReason = "party ended by host"

// Bridge is the subscriber-side half of the relay. Every instance runs
// one bridge; each processes the same published messages independently
// and touches only its own local rooms, so cross-instance convergence
// is eventual with no barrier or acknowledgment.
type Bridge struct {
	store    store.Store
	registry memory.RoomRegistry
}

func NewBridge(st store.Store, registry memory.RoomRegistry) *Bridge {
	return &Bridge{
		store:    st,
		registry: registry,
	}
}

// Run attaches the bridge to the bus. It must be called once, before
// the gateway accepts connections.
func (b *Bridge) Run(ctx context.Context) error {
	return b.store.PSubscribe(ctx, events.SubscribePatterns(), b.dispatch)
}

func (b *Bridge) dispatch(channel, payload string) {
	partyID := events.PartyFromChannel(channel)
	if partyID == "" {
		slog.Warn("unexpected bus channel", slog.String(constant.Channel, channel))
		return
	}

	members := b.registry.Members(partyID)
	if len(members) == 0 {
		return
	}

	raw := []byte(payload)
	for _, conn := range members {
		if err := conn.Send(raw); err != nil {
			slog.Error("fan out to connection",
				slog.Any(constant.Error, err),
				slog.String(constant.PartyID, partyID),
				slog.String(constant.UserID, conn.UserID),
			)
		}
	}

	var env events.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		return
	}

	metric.RecordRelayFannedOut(env.Type, len(members))

	if env.Type == events.TypeControls && env.Message == events.EndOfPartyMessage {
		b.teardown(partyID, members)
	}
}

func (b *Bridge) teardown(partyID string, members []*runtime.Connection) {
	slog.Info("party ended by host, closing local room", slog.String(constant.PartyID, partyID))

	for _, conn := range members {
		if err := conn.CloseWith(websocket.CloseNormalClosure, EndOfPartyReason); err != nil {
			slog.Error("close connection",
				slog.Any(constant.Error, err),
				slog.String(constant.UserID, conn.UserID),
			)
		}
	}

	b.registry.RemoveRoom(partyID)
}
