package models

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"
)

// GenreIDs is stored as a JSONB column so the row stays portable across
// drivers without array support.
type GenreIDs []int

func (g GenreIDs) Value() (driver.Value, error) {
	if g == nil {
		g = GenreIDs{}
	}
	return json.Marshal(g)
}

func (g *GenreIDs) Scan(src any) error {
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, g)
	case string:
		return json.Unmarshal([]byte(v), g)
	case nil:
		*g = GenreIDs{}
		return nil
	default:
		return fmt.Errorf("scan genre ids: unsupported type %T", src)
	}
}

// MovieHistory is one row of a user's click history, keyed by
// (user_id, movie_id); repeat clicks refresh clicked_at.
type MovieHistory struct {
	ID            int64     `json:"id" db:"id"`
	UserID        string    `json:"user_id" db:"user_id"`
	MovieID       int64     `json:"movie_id" db:"movie_id"`
	MovieTitle    string    `json:"movie_title" db:"movie_title"`
	MovieGenreIDs GenreIDs  `json:"movie_genre_ids" db:"movie_genre_ids"`
	MovieRating   float64   `json:"movie_rating" db:"movie_rating"`
	ClickedAt     time.Time `json:"clicked_at" db:"clicked_at"`
}
