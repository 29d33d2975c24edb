package events

import "time"

// Event stream topics.
const (
	TopicPartyEvents      = "party-events"
	TopicUserEvents       = "user-events"
	TopicEngagementEvents = "engagement-events"
)

// Domain event types.
const (
	EventCreateParty = "create-party"
	EventJoinParty   = "join-party"
	EventLeaveParty  = "leave-party"
	EventEndParty    = "end-party"
	EventMessageSent = "message-sent"
	EventUserJoined  = "user-joined"
	EventUserLeft    = "user-left"
)

// DomainEvent is the analytics record appended to the event stream.
// Emission is fire-and-forget; there is no read path in this service.
type DomainEvent struct {
	Timestamp      string `json:"timestamp"`
	PartyID        string `json:"partyId,omitempty"`
	UserID         string `json:"userId,omitempty"`
	MediaID        string `json:"mediaId,omitempty"`
	EventType      string `json:"eventType"`
	MessageType    string `json:"messageType,omitempty"`
	MessageContent string `json:"messageContent,omitempty"`
}

// Now formats a timestamp the way every emitted event expects it.
func Now() string {
	return time.Now().UTC().Format(time.RFC3339)
}
