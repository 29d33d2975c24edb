package output

import "github.com/moviemate/watchparty/internal/domain/models"

// HistoryEntry is a history row enriched with display fields.
type HistoryEntry struct {
	models.MovieHistory
	WatchedAgo string   `json:"watchedAgo"`
	GenreNames []string `json:"genreNames"`
}

// HistoryPage is one page of a user's watch history.
type HistoryPage struct {
	History     []HistoryEntry `json:"history"`
	TotalCount  int            `json:"totalCount"`
	HasMore     bool           `json:"hasMore"`
	CurrentPage int            `json:"currentPage"`
	TotalPages  int            `json:"totalPages"`
}
