package models

// Movie is the simplified catalog entry served to clients.
type Movie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterURL   *string `json:"poster_url"`
	ReleaseYear string  `json:"release_year"`
	Rating      float64 `json:"rating"`
	GenreIDs    []int   `json:"genre_ids"`
}
