package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moviemate/watchparty/internal/domain/events"
	"github.com/moviemate/watchparty/internal/domain/models"
	"github.com/moviemate/watchparty/internal/infra/adapters/memory"
	"github.com/moviemate/watchparty/internal/usecase"
)

type nopEmitter struct{}

func (nopEmitter) Emit(string, events.DomainEvent) {}

func newPartyRouter() *echo.Echo {
	st := memory.NewStore()
	partyUsecase := usecase.NewPartyUsecase(st, nopEmitter{}, "http://localhost:8080")
	h := NewPartyHandler(partyUsecase)

	e := echo.New()
	e.POST("/party", h.Create)
	e.GET("/party/:partyId", h.Get)
	e.PUT("/party/:partyId/state", h.UpdateState)
	return e
}

func doJSON(t *testing.T, e *echo.Echo, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestPartyHandler_Create(t *testing.T) {
	e := newPartyRouter()

	rec := doJSON(t, e, http.MethodPost, "/party", `{"mediaId":"42","hostId":"host-1"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body)
	}

	var resp struct {
		ID       string        `json:"id"`
		URL      string        `json:"url"`
		PartyVal *models.Party `json:"partyVal"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}

	if _, err := uuid.Parse(resp.ID); err != nil {
		t.Errorf("id is not a UUID: %v", err)
	}
	if !strings.HasSuffix(resp.URL, "/party/"+resp.ID) {
		t.Errorf("url %q does not address the party", resp.URL)
	}
	if resp.PartyVal == nil || resp.PartyVal.PlaybackState != models.PlaybackPaused || resp.PartyVal.Timestamp != 0 {
		t.Errorf("unexpected initial record: %+v", resp.PartyVal)
	}
}

func TestPartyHandler_CreateMissingFields(t *testing.T) {
	e := newPartyRouter()

	for _, body := range []string{`{}`, `{"mediaId":"42"}`, `{"hostId":"h1"}`, `not json`} {
		rec := doJSON(t, e, http.MethodPost, "/party", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("body %q: expected 400, got %d", body, rec.Code)
		}
	}
}

func TestPartyHandler_GetNotFound(t *testing.T) {
	e := newPartyRouter()

	rec := doJSON(t, e, http.MethodGet, "/party/unknown", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Invalid URL or the party has expired.") {
		t.Errorf("unexpected error body: %s", rec.Body)
	}
}

func TestPartyHandler_UpdateThenGet(t *testing.T) {
	e := newPartyRouter()

	rec := doJSON(t, e, http.MethodPost, "/party", `{"mediaId":"42","hostId":"host-1"}`)
	var created struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode create response: %v", err)
	}

	rec = doJSON(t, e, http.MethodPut, "/party/"+created.ID+"/state", `{"timestamp":125.5,"playbackState":"playing"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body)
	}

	var updated struct {
		Success       bool    `json:"success"`
		Timestamp     float64 `json:"timestamp"`
		PlaybackState string  `json:"playbackState"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &updated); err != nil {
		t.Fatalf("decode update response: %v", err)
	}
	if !updated.Success || updated.Timestamp != 125.5 || updated.PlaybackState != "playing" {
		t.Errorf("unexpected update response: %+v", updated)
	}

	rec = doJSON(t, e, http.MethodGet, "/party/"+created.ID, "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	var party models.Party
	if err := json.Unmarshal(rec.Body.Bytes(), &party); err != nil {
		t.Fatalf("decode party: %v", err)
	}
	if party.Timestamp != 125.5 || party.PlaybackState != models.PlaybackPlaying {
		t.Errorf("state not persisted: %+v", party)
	}
}

func TestPartyHandler_UpdateValidation(t *testing.T) {
	e := newPartyRouter()

	// timestamp 0 is a legal position; only its absence is rejected
	rec := doJSON(t, e, http.MethodPut, "/party/p1/state", `{"playbackState":"paused"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing timestamp: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodPut, "/party/p1/state", `{"timestamp":10}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing playbackState: expected 400, got %d", rec.Code)
	}

	rec = doJSON(t, e, http.MethodPut, "/party/unknown/state", `{"timestamp":0,"playbackState":"paused"}`)
	if rec.Code != http.StatusNotFound {
		t.Errorf("unknown party: expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Party not found or has expired") {
		t.Errorf("unexpected error body: %s", rec.Body)
	}
}
