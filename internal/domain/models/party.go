package models

import "time"

type PlaybackState string

const (
	PlaybackPaused  PlaybackState = "paused"
	PlaybackPlaying PlaybackState = "playing"
)

// PartyTTL is how long a party record lives in the state store. It is
// set on creation and refreshed on every explicit re-set, never by reads.
const PartyTTL = 24 * time.Hour

// Party is the durable record of a shared playback session, stored as
// JSON in the state store under PartyKey. HostID is immutable after
// creation; PlaybackState and Timestamp are last-write-wins.
type Party struct {
	MediaID       string        `json:"mediaId"`
	HostID        string        `json:"hostId"`
	CreatedAt     string        `json:"createdAt"`
	PlaybackState PlaybackState `json:"playbackState"`
	Timestamp     float64       `json:"timestamp"`
}

func NewParty(mediaID, hostID string, now time.Time) *Party {
	return &Party{
		MediaID:       mediaID,
		HostID:        hostID,
		CreatedAt:     now.UTC().Format(time.RFC3339),
		PlaybackState: PlaybackPaused,
		Timestamp:     0,
	}
}

func PartyKey(partyID string) string {
	return "party:" + partyID
}
