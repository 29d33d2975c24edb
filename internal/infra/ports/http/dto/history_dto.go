package dto

import "time"

type TrackClickRequest struct {
	UserID        string  `json:"userId"`
	MovieID       int64   `json:"movieId"`
	MovieTitle    string  `json:"movieTitle"`
	MovieGenreIDs []int   `json:"movieGenreIds"`
	MovieRating   float64 `json:"movieRating"`
}

type TrackClickResponse struct {
	Message       string     `json:"message"`
	Action        string     `json:"action"`
	PreviousClick *time.Time `json:"previousClick,omitempty"`
}

type HistoryUserRequest struct {
	UserID string `json:"userId"`
}
