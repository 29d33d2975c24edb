package tmdb

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/moviemate/watchparty/internal/application/config"
	"github.com/moviemate/watchparty/internal/domain/models"
)

const posterBaseURL = "https://image.tmdb.org/t/p/w500"

// Client wraps the TMDB catalog API. Authentication uses the bearer
// token when configured, otherwise the api_key query parameter.
type Client struct {
	baseURL string
	apiKey  string
	bearer  string
	http    *http.Client
}

func New(cfg config.TMDBConfig) *Client {
	return &Client{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		bearer:  cfg.BearerToken,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

type apiMovie struct {
	ID          int     `json:"id"`
	Title       string  `json:"title"`
	Overview    string  `json:"overview"`
	PosterPath  string  `json:"poster_path"`
	ReleaseDate string  `json:"release_date"`
	VoteAverage float64 `json:"vote_average"`
	VoteCount   int     `json:"vote_count"`
	Popularity  float64 `json:"popularity"`
	GenreIDs    []int   `json:"genre_ids"`
}

type apiPage struct {
	Results []apiMovie `json:"results"`
}

func (c *Client) TopRated(ctx context.Context) ([]models.Movie, error) {
	page, err := c.get(ctx, "/movie/top_rated", url.Values{})
	if err != nil {
		return nil, err
	}
	return formatMovies(limit(page.Results, 20)), nil
}

func (c *Client) Popular(ctx context.Context) ([]models.Movie, error) {
	page, err := c.get(ctx, "/movie/popular", url.Values{})
	if err != nil {
		return nil, err
	}
	return formatMovies(limit(page.Results, 20)), nil
}

// MostWatched approximates current engagement from the now-playing
// list: movies with enough votes, ordered by popularity times votes.
func (c *Client) MostWatched(ctx context.Context) ([]models.Movie, error) {
	page, err := c.get(ctx, "/movie/now_playing", url.Values{})
	if err != nil {
		return nil, err
	}

	watched := make([]apiMovie, 0, len(page.Results))
	for _, m := range page.Results {
		if m.VoteCount > 100 {
			watched = append(watched, m)
		}
	}
	sort.Slice(watched, func(i, j int) bool {
		return watched[i].Popularity*float64(watched[i].VoteCount) >
			watched[j].Popularity*float64(watched[j].VoteCount)
	})

	return formatMovies(limit(watched, 20)), nil
}

func (c *Client) Discover(ctx context.Context, genreIDs []int) ([]models.Movie, error) {
	ids := make([]string, len(genreIDs))
	for i, id := range genreIDs {
		ids[i] = strconv.Itoa(id)
	}

	q := url.Values{}
	q.Set("sort_by", "vote_average.desc")
	q.Set("vote_count.gte", "100")
	q.Set("include_adult", "false")
	q.Set("with_genres", strings.Join(ids, ","))

	page, err := c.get(ctx, "/discover/movie", q)
	if err != nil {
		return nil, err
	}
	return formatMovies(limit(page.Results, 20)), nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) (*apiPage, error) {
	q.Set("language", "en-US")
	q.Set("page", "1")
	if c.bearer == "" {
		q.Set("api_key", c.apiKey)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path+"?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build tmdb request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.bearer != "" {
		req.Header.Set("Authorization", "Bearer "+c.bearer)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("tmdb %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("tmdb %s: status %d", path, resp.StatusCode)
	}

	var page apiPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("decode tmdb response: %w", err)
	}
	return &page, nil
}

func limit(movies []apiMovie, n int) []apiMovie {
	if len(movies) > n {
		return movies[:n]
	}
	return movies
}

func formatMovies(raw []apiMovie) []models.Movie {
	movies := make([]models.Movie, 0, len(raw))
	for _, m := range raw {
		movies = append(movies, formatMovie(m))
	}
	return movies
}

func formatMovie(m apiMovie) models.Movie {
	var poster *string
	if m.PosterPath != "" {
		u := posterBaseURL + m.PosterPath
		poster = &u
	}

	year := "N/A"
	if m.ReleaseDate != "" {
		year, _, _ = strings.Cut(m.ReleaseDate, "-")
	}

	genreIDs := m.GenreIDs
	if genreIDs == nil {
		genreIDs = []int{}
	}

	return models.Movie{
		ID:          m.ID,
		Title:       m.Title,
		Overview:    m.Overview,
		PosterURL:   poster,
		ReleaseYear: year,
		Rating:      m.VoteAverage,
		GenreIDs:    genreIDs,
	}
}
