package dto

import "github.com/moviemate/watchparty/internal/domain/models"

type CreatePartyRequest struct {
	MediaID string `json:"mediaId"`
	HostID  string `json:"hostId"`
}

type CreatePartyResponse struct {
	ID       string        `json:"id"`
	URL      string        `json:"url"`
	PartyVal *models.Party `json:"partyVal"`
}

type UpdateStateRequest struct {
	// Pointer so an explicit 0 position is distinguishable from a
	// missing field.
	Timestamp     *float64 `json:"timestamp"`
	PlaybackState string   `json:"playbackState"`
}

type UpdateStateResponse struct {
	Success       bool                 `json:"success"`
	Timestamp     float64              `json:"timestamp"`
	PlaybackState models.PlaybackState `json:"playbackState"`
}
