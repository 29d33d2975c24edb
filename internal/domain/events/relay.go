package events

import "strings"

// Relay message types accepted from clients. Anything else is dropped.
const (
	TypeControls   = "controls"
	TypeChat       = "chat"
	TypeUserJoined = "user_joined"
	TypeUserLeft   = "user_left"
)

// EndOfPartyMessage is the controls payload that tears down a party on
// every instance.
const EndOfPartyMessage = "party_ended_by_host"

// Envelope is the decoded view of an inbound relay frame. Only the
// fields the server inspects are listed; the raw payload is republished
// verbatim and may carry arbitrary extra fields.
type Envelope struct {
	Type     string `json:"type"`
	Message  string `json:"message,omitempty"`
	Username string `json:"username,omitempty"`
	UserID   string `json:"userId,omitempty"`
}

func ValidType(t string) bool {
	switch t {
	case TypeControls, TypeChat, TypeUserJoined, TypeUserLeft:
		return true
	}
	return false
}

// Channel names the bus channel for one message type of one party.
func Channel(msgType, partyID string) string {
	return "party-" + msgType + ":" + partyID
}

// PartyFromChannel extracts the party ID from a bus channel name, or ""
// if the name does not follow the party channel layout.
func PartyFromChannel(channel string) string {
	_, partyID, ok := strings.Cut(channel, ":")
	if !ok {
		return ""
	}
	return partyID
}

// SubscribePatterns covers all relay channels across all parties.
func SubscribePatterns() []string {
	return []string{
		Channel(TypeControls, "*"),
		Channel(TypeChat, "*"),
		Channel(TypeUserJoined, "*"),
		Channel(TypeUserLeft, "*"),
	}
}
