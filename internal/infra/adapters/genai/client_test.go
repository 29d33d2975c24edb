package genai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/moviemate/watchparty/internal/application/config"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()

	ts := httptest.NewServer(handler)
	t.Cleanup(ts.Close)

	return New(config.GeminiConfig{
		BaseURL: ts.URL,
		APIKey:  "test-key",
		Model:   "gemini-1.5-flash",
	})
}

func TestClient_SuggestGenres(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/models/gemini-1.5-flash:generateContent" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		if got := r.URL.Query().Get("key"); got != "test-key" {
			t.Errorf("expected API key in query, got %q", got)
		}

		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if len(req.Contents) != 1 || req.Contents[0].Parts[0].Text != "pick genres" {
			t.Errorf("unexpected request body: %+v", req)
		}

		w.Write([]byte(`{"candidates":[{"content":{"parts":[{"text":" Horror, Science Fiction ,Thriller,"}]}}]}`))
	})

	genres, err := client.SuggestGenres(context.Background(), "pick genres")
	if err != nil {
		t.Fatalf("suggest genres: %v", err)
	}

	want := []string{"horror", "science fiction", "thriller"}
	if !reflect.DeepEqual(genres, want) {
		t.Errorf("expected %v, got %v", want, genres)
	}
}

func TestClient_SuggestGenresEmptyResponse(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"candidates":[]}`))
	})

	if _, err := client.SuggestGenres(context.Background(), "p"); err == nil {
		t.Error("expected error for a response without candidates")
	}
}

func TestClient_SuggestGenresNonOKStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	})

	if _, err := client.SuggestGenres(context.Background(), "p"); err == nil {
		t.Error("expected error for non-200 response")
	}
}

func TestSplitGenres(t *testing.T) {
	cases := []struct {
		in   string
		want []string
	}{
		{"Comedy", []string{"comedy"}},
		{"Action, Thriller", []string{"action", "thriller"}},
		{"  drama ,, ", []string{"drama"}},
	}
	for _, c := range cases {
		if got := splitGenres(c.in); !reflect.DeepEqual(got, c.want) {
			t.Errorf("splitGenres(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}
