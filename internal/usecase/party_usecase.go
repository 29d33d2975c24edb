package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/domain/events"
	"github.com/moviemate/watchparty/internal/domain/models"
	"github.com/moviemate/watchparty/internal/infra/adapters/kafka"
	"github.com/moviemate/watchparty/internal/infra/adapters/store"
)

// ErrPartyNotFound reports a party that never existed or expired.
var ErrPartyNotFound = errors.New("party not found")

type PartyUsecase interface {
	// Create persists a new party record with its full TTL and returns
	// the generated ID and the shareable URL alongside the record.
	Create(ctx context.Context, mediaID, hostID string) (id, url string, party *models.Party, err error)

	Get(ctx context.Context, partyID string) (*models.Party, error)

	// UpdateState applies a playback update last-write-wins and
	// refreshes the record's TTL.
	UpdateState(ctx context.Context, partyID string, timestamp float64, playbackState string) (*models.Party, error)

	// End publishes the termination control message, deletes the party
	// record and emits the end-party event. A failed delete is not
	// fatal: the stale record expires via TTL.
	End(ctx context.Context, partyID, userID string) error
}

type partyUsecase struct {
	store   store.Store
	emitter kafka.Emitter
	host    string
}

func NewPartyUsecase(st store.Store, emitter kafka.Emitter, host string) PartyUsecase {
	return &partyUsecase{
		store:   st,
		emitter: emitter,
		host:    host,
	}
}

func (u *partyUsecase) Create(ctx context.Context, mediaID, hostID string) (string, string, *models.Party, error) {
	partyID := uuid.NewString()
	party := models.NewParty(mediaID, hostID, time.Now())

	payload, err := json.Marshal(party)
	if err != nil {
		return "", "", nil, fmt.Errorf("marshal party: %w", err)
	}

	if err := u.store.Set(ctx, models.PartyKey(partyID), string(payload), models.PartyTTL); err != nil {
		return "", "", nil, fmt.Errorf("store party: %w", err)
	}

	u.emitter.Emit(events.TopicPartyEvents, events.DomainEvent{
		Timestamp: party.CreatedAt,
		PartyID:   partyID,
		UserID:    hostID,
		MediaID:   mediaID,
		EventType: events.EventCreateParty,
	})

	return partyID, u.host + "/party/" + partyID, party, nil
}

func (u *partyUsecase) Get(ctx context.Context, partyID string) (*models.Party, error) {
	payload, err := u.store.Get(ctx, models.PartyKey(partyID))
	if errors.Is(err, store.ErrNotFound) {
		return nil, ErrPartyNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load party: %w", err)
	}

	var party models.Party
	if err := json.Unmarshal([]byte(payload), &party); err != nil {
		return nil, fmt.Errorf("unmarshal party: %w", err)
	}
	return &party, nil
}

func (u *partyUsecase) UpdateState(ctx context.Context, partyID string, timestamp float64, playbackState string) (*models.Party, error) {
	party, err := u.Get(ctx, partyID)
	if err != nil {
		return nil, err
	}

	// Last write wins; no version or conflict check.
	party.Timestamp = timestamp
	party.PlaybackState = models.PlaybackState(playbackState)

	payload, err := json.Marshal(party)
	if err != nil {
		return nil, fmt.Errorf("marshal party: %w", err)
	}

	if err := u.store.Set(ctx, models.PartyKey(partyID), string(payload), models.PartyTTL); err != nil {
		return nil, fmt.Errorf("store party: %w", err)
	}

	return party, nil
}

func (u *partyUsecase) End(ctx context.Context, partyID, userID string) error {
	endMsg, err := json.Marshal(events.Envelope{
		Type:    events.TypeControls,
		Message: events.EndOfPartyMessage,
	})
	if err != nil {
		return fmt.Errorf("marshal end message: %w", err)
	}

	if err := u.store.Publish(ctx, events.Channel(events.TypeControls, partyID), string(endMsg)); err != nil {
		return fmt.Errorf("publish end message: %w", err)
	}

	if err := u.store.Delete(ctx, models.PartyKey(partyID)); err != nil {
		// Local teardown proceeds anyway; the record expires via TTL.
		slog.Warn("delete party record",
			slog.Any(constant.Error, err),
			slog.String(constant.PartyID, partyID),
		)
	}

	u.emitter.Emit(events.TopicPartyEvents, events.DomainEvent{
		Timestamp: events.Now(),
		PartyID:   partyID,
		UserID:    userID,
		EventType: events.EventEndParty,
	})

	return nil
}
