package constant

// Shared slog attribute keys.
const (
	Error   = "error"
	PartyID = "party_id"
	UserID  = "user_id"
	MediaID = "media_id"
	Channel = "channel"
	Topic   = "topic"
)
