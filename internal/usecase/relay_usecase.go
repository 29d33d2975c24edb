package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/application/metric"
	"github.com/moviemate/watchparty/internal/domain/events"
	"github.com/moviemate/watchparty/internal/domain/runtime"
	"github.com/moviemate/watchparty/internal/infra/adapters/kafka"
	"github.com/moviemate/watchparty/internal/infra/adapters/memory"
	"github.com/moviemate/watchparty/internal/infra/adapters/store"
)

// RelayUsecase is the gateway-side half of the relay: it registers
// connections, validates inbound frames and publishes them to the bus.
// Delivery to local peers always round-trips through the bus so one
// instance behaves exactly like many.
type RelayUsecase interface {
	HandleJoin(ctx context.Context, conn *runtime.Connection)

	// HandleMessage validates and publishes one inbound frame. Frames
	// that do not parse or carry an unknown type are dropped silently;
	// the connection stays open.
	HandleMessage(ctx context.Context, conn *runtime.Connection, raw []byte)

	// HandleLeave unregisters the connection and, when the leaving user
	// is the party's host, runs party termination.
	HandleLeave(ctx context.Context, conn *runtime.Connection)
}

type relayUsecase struct {
	registry memory.RoomRegistry
	store    store.Store
	emitter  kafka.Emitter
	party    PartyUsecase
}

func NewRelayUsecase(registry memory.RoomRegistry, st store.Store, emitter kafka.Emitter, party PartyUsecase) RelayUsecase {
	return &relayUsecase{
		registry: registry,
		store:    st,
		emitter:  emitter,
		party:    party,
	}
}

func (u *relayUsecase) HandleJoin(ctx context.Context, conn *runtime.Connection) {
	u.registry.Register(conn.PartyID, conn)

	u.emitter.Emit(events.TopicUserEvents, events.DomainEvent{
		Timestamp: events.Now(),
		PartyID:   conn.PartyID,
		UserID:    conn.UserID,
		EventType: events.EventJoinParty,
	})
}

func (u *relayUsecase) HandleMessage(ctx context.Context, conn *runtime.Connection, raw []byte) {
	var env events.Envelope
	if err := json.Unmarshal(raw, &env); err != nil {
		slog.Warn("drop non-JSON frame",
			slog.Any(constant.Error, err),
			slog.String(constant.PartyID, conn.PartyID),
		)
		return
	}

	if !events.ValidType(env.Type) {
		slog.Warn("drop frame with unknown type",
			slog.String("type", env.Type),
			slog.String(constant.PartyID, conn.PartyID),
		)
		return
	}

	// The payload is republished verbatim; peers receive exactly what
	// the sender wrote.
	if err := u.store.Publish(ctx, events.Channel(env.Type, conn.PartyID), string(raw)); err != nil {
		slog.Error("publish relay message",
			slog.Any(constant.Error, err),
			slog.String(constant.PartyID, conn.PartyID),
		)
		return
	}

	metric.RecordRelayPublished(env.Type)

	eventType, content := engagementFor(env)
	u.emitter.Emit(events.TopicEngagementEvents, events.DomainEvent{
		Timestamp:      events.Now(),
		PartyID:        conn.PartyID,
		UserID:         conn.UserID,
		EventType:      eventType,
		MessageType:    env.Type,
		MessageContent: content,
	})
}

func (u *relayUsecase) HandleLeave(ctx context.Context, conn *runtime.Connection) {
	u.registry.Unregister(conn.PartyID, conn)

	u.emitter.Emit(events.TopicUserEvents, events.DomainEvent{
		Timestamp: events.Now(),
		PartyID:   conn.PartyID,
		UserID:    conn.UserID,
		EventType: events.EventLeaveParty,
	})

	party, err := u.party.Get(ctx, conn.PartyID)
	if err != nil {
		if !errors.Is(err, ErrPartyNotFound) {
			slog.Error("load party on leave",
				slog.Any(constant.Error, err),
				slog.String(constant.PartyID, conn.PartyID),
			)
		}
		return
	}

	// Host identity is a plain string comparison against the record.
	if party.HostID != conn.UserID {
		return
	}

	slog.Info("host left, ending party", slog.String(constant.PartyID, conn.PartyID))

	if err := u.party.End(ctx, conn.PartyID, conn.UserID); err != nil {
		slog.Error("end party",
			slog.Any(constant.Error, err),
			slog.String(constant.PartyID, conn.PartyID),
		)
	}
}

func engagementFor(env events.Envelope) (eventType, content string) {
	name := env.Username
	if name == "" {
		name = env.UserID
	}

	switch env.Type {
	case events.TypeUserJoined:
		return events.EventUserJoined, "User " + name + " joined"
	case events.TypeUserLeft:
		return events.EventUserLeft, "User " + name + " left"
	case events.TypeChat:
		return events.EventMessageSent, "chat messages are not stored to protect user privacy"
	default: // controls
		return events.EventMessageSent, env.Message
	}
}
