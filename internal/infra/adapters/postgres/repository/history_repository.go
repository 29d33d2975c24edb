package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/moviemate/watchparty/internal/domain/models"
)

// Upsert outcomes reported back to the client.
const (
	ActionInserted = "inserted"
	ActionUpdated  = "updated"
)

type HistoryRepository interface {
	// Upsert records a click, refreshing clicked_at when the user
	// already clicked this movie. previousClick is set on updates.
	Upsert(ctx context.Context, entry *models.MovieHistory) (action string, previousClick *time.Time, err error)

	// ListByUser returns one page of history. sortBy and order must be
	// pre-validated by the caller; they are interpolated into the query.
	ListByUser(ctx context.Context, userID, sortBy, order string, limit, offset int) ([]models.MovieHistory, error)

	CountByUser(ctx context.Context, userID string) (int, error)

	DeleteByUserAndMovie(ctx context.Context, userID string, movieID int64) error

	ClearByUser(ctx context.Context, userID string) error
}

type historyRepo struct {
	db *sqlx.DB
}

func NewHistoryRepo(db *sqlx.DB) HistoryRepository {
	return &historyRepo{db: db}
}

func (r *historyRepo) Upsert(ctx context.Context, entry *models.MovieHistory) (string, *time.Time, error) {
	var existing struct {
		ID        int64     `db:"id"`
		ClickedAt time.Time `db:"clicked_at"`
	}

	query := "SELECT id, clicked_at FROM movie_history WHERE user_id = $1 AND movie_id = $2"

	err := r.db.GetContext(ctx, &existing, query, entry.UserID, entry.MovieID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return "", nil, fmt.Errorf("check existing history: %w", err)
	}

	if errors.Is(err, sql.ErrNoRows) {
		query = `INSERT INTO movie_history (user_id, movie_id, movie_title, movie_genre_ids, movie_rating, clicked_at)
			VALUES ($1, $2, $3, $4, $5, $6)`

		_, err = r.db.ExecContext(ctx, query,
			entry.UserID, entry.MovieID, entry.MovieTitle, entry.MovieGenreIDs, entry.MovieRating, entry.ClickedAt)
		if err != nil {
			return "", nil, fmt.Errorf("insert history: %w", err)
		}
		return ActionInserted, nil, nil
	}

	query = `UPDATE movie_history
		SET clicked_at = $1, movie_title = $2, movie_genre_ids = $3, movie_rating = $4
		WHERE id = $5`

	_, err = r.db.ExecContext(ctx, query,
		entry.ClickedAt, entry.MovieTitle, entry.MovieGenreIDs, entry.MovieRating, existing.ID)
	if err != nil {
		return "", nil, fmt.Errorf("update history: %w", err)
	}

	prev := existing.ClickedAt
	return ActionUpdated, &prev, nil
}

func (r *historyRepo) ListByUser(ctx context.Context, userID, sortBy, order string, limit, offset int) ([]models.MovieHistory, error) {
	// sortBy/order come from a whitelist checked in the usecase.
	query := fmt.Sprintf(
		"SELECT id, user_id, movie_id, movie_title, movie_genre_ids, movie_rating, clicked_at FROM movie_history WHERE user_id = $1 ORDER BY %s %s LIMIT $2 OFFSET $3",
		sortBy, order,
	)

	var rows []models.MovieHistory
	if err := r.db.SelectContext(ctx, &rows, query, userID, limit, offset); err != nil {
		return nil, fmt.Errorf("list history: %w", err)
	}
	return rows, nil
}

func (r *historyRepo) CountByUser(ctx context.Context, userID string) (int, error) {
	var count int

	query := "SELECT COUNT(*) FROM movie_history WHERE user_id = $1"

	if err := r.db.GetContext(ctx, &count, query, userID); err != nil {
		return 0, fmt.Errorf("count history: %w", err)
	}
	return count, nil
}

func (r *historyRepo) DeleteByUserAndMovie(ctx context.Context, userID string, movieID int64) error {
	query := "DELETE FROM movie_history WHERE user_id = $1 AND movie_id = $2"

	if _, err := r.db.ExecContext(ctx, query, userID, movieID); err != nil {
		return fmt.Errorf("delete history row: %w", err)
	}
	return nil
}

func (r *historyRepo) ClearByUser(ctx context.Context, userID string) error {
	query := "DELETE FROM movie_history WHERE user_id = $1"

	if _, err := r.db.ExecContext(ctx, query, userID); err != nil {
		return fmt.Errorf("clear history: %w", err)
	}
	return nil
}
