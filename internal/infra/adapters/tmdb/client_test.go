package tmdb

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/moviemate/watchparty/internal/application/config"
)

const topRatedPage = `{"results":[
	{"id":278,"title":"The Shawshank Redemption","overview":"Imprisoned in the 1940s...","poster_path":"/shawshank.jpg","release_date":"1994-09-23","vote_average":8.7,"vote_count":27000,"popularity":130.5,"genre_ids":[18,80]},
	{"id":238,"title":"The Godfather","overview":"Spanning the years 1945 to 1955...","release_date":"","vote_average":8.7,"vote_count":21000,"popularity":120.1}
]}`

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return New(config.TMDBConfig{
		BaseURL: ts.URL,
		APIKey:  "test-key",
	})
}

func TestClient_TopRated(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/top_rated" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("api_key"); got != "test-key" {
			t.Errorf("expected api_key in query, got %q", got)
		}
		w.Write([]byte(topRatedPage))
	})

	movies, err := client.TopRated(context.Background())
	if err != nil {
		t.Fatalf("top rated: %v", err)
	}
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}

	first := movies[0]
	if first.ID != 278 || first.Rating != 8.7 {
		t.Errorf("unexpected movie: %+v", first)
	}
	if first.PosterURL == nil || *first.PosterURL != posterBaseURL+"/shawshank.jpg" {
		t.Errorf("unexpected poster URL: %v", first.PosterURL)
	}
	if first.ReleaseYear != "1994" {
		t.Errorf("expected release year 1994, got %q", first.ReleaseYear)
	}
	if len(first.GenreIDs) != 2 {
		t.Errorf("unexpected genre IDs: %v", first.GenreIDs)
	}

	// missing poster and release date degrade gracefully
	second := movies[1]
	if second.PosterURL != nil {
		t.Errorf("expected nil poster URL, got %v", second.PosterURL)
	}
	if second.ReleaseYear != "N/A" {
		t.Errorf("expected release year N/A, got %q", second.ReleaseYear)
	}
	if second.GenreIDs == nil || len(second.GenreIDs) != 0 {
		t.Errorf("expected empty genre ID slice, got %v", second.GenreIDs)
	}
}

func TestClient_BearerAuth(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("expected bearer header, got %q", got)
		}
		if r.URL.Query().Has("api_key") {
			t.Error("api_key must not be sent alongside a bearer token")
		}
		w.Write([]byte(`{"results":[]}`))
	}))
	t.Cleanup(ts.Close)

	client := New(config.TMDBConfig{BaseURL: ts.URL, BearerToken: "test-token"})

	if _, err := client.Popular(context.Background()); err != nil {
		t.Fatalf("popular: %v", err)
	}
}

func TestClient_Discover(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		if got := q.Get("with_genres"); got != "27,53" {
			t.Errorf("expected with_genres 27,53, got %q", got)
		}
		if got := q.Get("sort_by"); got != "vote_average.desc" {
			t.Errorf("expected sort_by vote_average.desc, got %q", got)
		}
		if got := q.Get("include_adult"); got != "false" {
			t.Errorf("expected include_adult false, got %q", got)
		}
		w.Write([]byte(`{"results":[{"id":1,"title":"It","vote_average":7.2}]}`))
	})

	movies, err := client.Discover(context.Background(), []int{27, 53})
	if err != nil {
		t.Fatalf("discover: %v", err)
	}
	if len(movies) != 1 || movies[0].Title != "It" {
		t.Errorf("unexpected movies: %v", movies)
	}
}

func TestClient_MostWatchedFiltersAndSorts(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/movie/now_playing" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Write([]byte(`{"results":[
			{"id":1,"title":"Sleeper","popularity":50,"vote_count":50},
			{"id":2,"title":"Steady","popularity":10,"vote_count":5000},
			{"id":3,"title":"Blockbuster","popularity":900,"vote_count":8000}
		]}`))
	})

	movies, err := client.MostWatched(context.Background())
	if err != nil {
		t.Fatalf("most watched: %v", err)
	}

	// id 1 is below the vote threshold; the rest sort by popularity*votes
	if len(movies) != 2 {
		t.Fatalf("expected 2 movies, got %d", len(movies))
	}
	if movies[0].ID != 3 || movies[1].ID != 2 {
		t.Errorf("unexpected order: %v, %v", movies[0].ID, movies[1].ID)
	}
}

func TestClient_NonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})

	if _, err := client.TopRated(context.Background()); err == nil {
		t.Error("expected error for non-200 response")
	}
}
