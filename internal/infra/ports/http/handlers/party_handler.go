package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/infra/ports/http/dto"
	"github.com/moviemate/watchparty/internal/usecase"
)

type PartyHandler struct {
	partyUsecase usecase.PartyUsecase
}

func NewPartyHandler(partyUsecase usecase.PartyUsecase) *PartyHandler {
	return &PartyHandler{
		partyUsecase: partyUsecase,
	}
}

func (h *PartyHandler) Create(c echo.Context) error {
	var req dto.CreatePartyRequest
	if err := c.Bind(&req); err != nil || req.MediaID == "" || req.HostID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "mediaId and hostId are required"})
	}

	id, url, party, err := h.partyUsecase.Create(c.Request().Context(), req.MediaID, req.HostID)
	if err != nil {
		slog.Error("create party", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not create party"})
	}

	return c.JSON(http.StatusCreated, dto.CreatePartyResponse{
		ID:       id,
		URL:      url,
		PartyVal: party,
	})
}

func (h *PartyHandler) Get(c echo.Context) error {
	partyID := c.Param("partyId")

	party, err := h.partyUsecase.Get(c.Request().Context(), partyID)
	if errors.Is(err, usecase.ErrPartyNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Invalid URL or the party has expired."})
	}
	if err != nil {
		slog.Error("get party", slog.Any(constant.Error, err), slog.String(constant.PartyID, partyID))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not load party"})
	}

	return c.JSON(http.StatusOK, party)
}

func (h *PartyHandler) UpdateState(c echo.Context) error {
	partyID := c.Param("partyId")

	var req dto.UpdateStateRequest
	if err := c.Bind(&req); err != nil || req.Timestamp == nil || req.PlaybackState == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "timestamp and playbackState are required"})
	}

	party, err := h.partyUsecase.UpdateState(c.Request().Context(), partyID, *req.Timestamp, req.PlaybackState)
	if errors.Is(err, usecase.ErrPartyNotFound) {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Party not found or has expired"})
	}
	if err != nil {
		slog.Error("update party state", slog.Any(constant.Error, err), slog.String(constant.PartyID, partyID))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "could not update party state"})
	}

	return c.JSON(http.StatusOK, dto.UpdateStateResponse{
		Success:       true,
		Timestamp:     party.Timestamp,
		PlaybackState: party.PlaybackState,
	})
}
