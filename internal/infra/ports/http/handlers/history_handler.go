package handlers

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/infra/ports/http/dto"
	"github.com/moviemate/watchparty/internal/usecase"
)

type HistoryHandler struct {
	historyUsecase usecase.HistoryUsecase
}

func NewHistoryHandler(historyUsecase usecase.HistoryUsecase) *HistoryHandler {
	return &HistoryHandler{
		historyUsecase: historyUsecase,
	}
}

func (h *HistoryHandler) TrackClick(c echo.Context) error {
	var req dto.TrackClickRequest
	if err := c.Bind(&req); err != nil || req.UserID == "" || req.MovieID == 0 || req.MovieTitle == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId, movieId, and movieTitle are required."})
	}

	if !validUserID(req.UserID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId must be a valid UUID format."})
	}

	action, previousClick, err := h.historyUsecase.TrackClick(c.Request().Context(), usecase.TrackClickInput{
		UserID:        req.UserID,
		MovieID:       req.MovieID,
		MovieTitle:    req.MovieTitle,
		MovieGenreIDs: req.MovieGenreIDs,
		MovieRating:   req.MovieRating,
	})
	if err != nil {
		slog.Error("track movie click", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to track movie click."})
	}

	message := "Movie click tracked successfully."
	if action == "updated" {
		message = "Movie click updated successfully."
	}

	return c.JSON(http.StatusOK, dto.TrackClickResponse{
		Message:       message,
		Action:        action,
		PreviousClick: previousClick,
	})
}

func (h *HistoryHandler) List(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": `A valid "userId" query parameter is required.`})
	}
	if !validUserID(userID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId must be a valid UUID format."})
	}

	limit := intQueryParam(c, "limit", 20)
	offset := intQueryParam(c, "offset", 0)
	sortBy := queryParamOr(c, "sortBy", "clicked_at")
	order := strings.ToLower(queryParamOr(c, "order", "desc"))

	page, err := h.historyUsecase.List(c.Request().Context(), userID, sortBy, order, limit, offset)
	if errors.Is(err, usecase.ErrInvalidSort) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid sort parameters. Allowed sortBy: clicked_at, movie_title, movie_rating; order: asc, desc"})
	}
	if err != nil {
		slog.Error("fetch user history", slog.Any(constant.Error, err), slog.String(constant.UserID, userID))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch user history."})
	}

	return c.JSON(http.StatusOK, page)
}

func (h *HistoryHandler) Delete(c echo.Context) error {
	movieID, err := strconv.ParseInt(c.Param("movieId"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId and movieId are required."})
	}

	var req dto.HistoryUserRequest
	if err := c.Bind(&req); err != nil || req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId and movieId are required."})
	}
	if !validUserID(req.UserID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId must be a valid UUID format."})
	}

	if err := h.historyUsecase.Delete(c.Request().Context(), req.UserID, movieID); err != nil {
		slog.Error("delete movie from history", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete movie from history."})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "Movie deleted from history successfully."})
}

func (h *HistoryHandler) Clear(c echo.Context) error {
	var req dto.HistoryUserRequest
	if err := c.Bind(&req); err != nil || req.UserID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId is required."})
	}
	if !validUserID(req.UserID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "userId must be a valid UUID format."})
	}

	if err := h.historyUsecase.Clear(c.Request().Context(), req.UserID); err != nil {
		slog.Error("clear user history", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to clear user history."})
	}

	return c.JSON(http.StatusOK, map[string]string{"message": "User history cleared successfully."})
}

func validUserID(userID string) bool {
	_, err := uuid.Parse(userID)
	return err == nil
}

func intQueryParam(c echo.Context, name string, fallback int) int {
	if s := c.QueryParam(name); s != "" {
		if n, err := strconv.Atoi(s); err == nil {
			return n
		}
	}
	return fallback
}

func queryParamOr(c echo.Context, name, fallback string) string {
	if s := c.QueryParam(name); s != "" {
		return s
	}
	return fallback
}
