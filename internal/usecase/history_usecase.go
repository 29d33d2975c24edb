package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/moviemate/watchparty/internal/domain/models"
	"github.com/moviemate/watchparty/internal/domain/output"
	"github.com/moviemate/watchparty/internal/infra/adapters/postgres/repository"
)

// ErrInvalidSort reports a sort field or order outside the whitelist.
var ErrInvalidSort = errors.New("invalid sort parameters")

var allowedSortFields = map[string]bool{
	"clicked_at":   true,
	"movie_title":  true,
	"movie_rating": true,
}

type TrackClickInput struct {
	UserID        string
	MovieID       int64
	MovieTitle    string
	MovieGenreIDs []int
	MovieRating   float64
}

type HistoryUsecase interface {
	TrackClick(ctx context.Context, input TrackClickInput) (action string, previousClick *time.Time, err error)

	List(ctx context.Context, userID, sortBy, order string, limit, offset int) (*output.HistoryPage, error)

	Delete(ctx context.Context, userID string, movieID int64) error

	Clear(ctx context.Context, userID string) error
}

type historyUsecase struct {
	repo repository.HistoryRepository
}

func NewHistoryUsecase(repo repository.HistoryRepository) HistoryUsecase {
	return &historyUsecase{repo: repo}
}

func (u *historyUsecase) TrackClick(ctx context.Context, input TrackClickInput) (string, *time.Time, error) {
	entry := &models.MovieHistory{
		UserID:        input.UserID,
		MovieID:       input.MovieID,
		MovieTitle:    input.MovieTitle,
		MovieGenreIDs: models.GenreIDs(input.MovieGenreIDs),
		MovieRating:   input.MovieRating,
		ClickedAt:     time.Now().UTC(),
	}

	return u.repo.Upsert(ctx, entry)
}

func (u *historyUsecase) List(ctx context.Context, userID, sortBy, order string, limit, offset int) (*output.HistoryPage, error) {
	if !allowedSortFields[sortBy] {
		return nil, fmt.Errorf("%w: sortBy %q", ErrInvalidSort, sortBy)
	}
	if order != "asc" && order != "desc" {
		return nil, fmt.Errorf("%w: order %q", ErrInvalidSort, order)
	}
	if limit <= 0 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	total, err := u.repo.CountByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	rows, err := u.repo.ListByUser(ctx, userID, sortBy, order, limit, offset)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]output.HistoryEntry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, output.HistoryEntry{
			MovieHistory: row,
			WatchedAgo:   watchedAgo(row.ClickedAt, now),
			GenreNames:   models.GenreNamesByID(row.MovieGenreIDs),
		})
	}

	return &output.HistoryPage{
		History:     entries,
		TotalCount:  total,
		HasMore:     offset+limit < total,
		CurrentPage: offset/limit + 1,
		TotalPages:  (total + limit - 1) / limit,
	}, nil
}

func (u *historyUsecase) Delete(ctx context.Context, userID string, movieID int64) error {
	return u.repo.DeleteByUserAndMovie(ctx, userID, movieID)
}

func (u *historyUsecase) Clear(ctx context.Context, userID string) error {
	return u.repo.ClearByUser(ctx, userID)
}

func watchedAgo(clickedAt, now time.Time) string {
	diff := now.Sub(clickedAt)

	days := int(diff.Hours() / 24)
	hours := int(diff.Hours())
	minutes := int(diff.Minutes())

	switch {
	case days > 0:
		return fmt.Sprintf("%d day%s ago", days, plural(days))
	case hours > 0:
		return fmt.Sprintf("%d hour%s ago", hours, plural(hours))
	case minutes > 0:
		return fmt.Sprintf("%d minute%s ago", minutes, plural(minutes))
	default:
		return "Just now"
	}
}

func plural(n int) string {
	if n > 1 {
		return "s"
	}
	return ""
}
