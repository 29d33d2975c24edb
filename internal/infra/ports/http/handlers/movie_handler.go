package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/usecase"
)

type MovieHandler struct {
	recommendUsecase usecase.RecommendUsecase
}

func NewMovieHandler(recommendUsecase usecase.RecommendUsecase) *MovieHandler {
	return &MovieHandler{
		recommendUsecase: recommendUsecase,
	}
}

func (h *MovieHandler) TopRated(c echo.Context) error {
	movies, err := h.recommendUsecase.TopRated(c.Request().Context())
	if err != nil {
		slog.Error("fetch top-rated movies", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get top-rated movies."})
	}
	return c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) Popular(c echo.Context) error {
	movies, err := h.recommendUsecase.Popular(c.Request().Context())
	if err != nil {
		slog.Error("fetch popular movies", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get popular movies."})
	}
	return c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) MostWatched(c echo.Context) error {
	movies, err := h.recommendUsecase.MostWatched(c.Request().Context())
	if err != nil {
		slog.Error("fetch most watched movies", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get most watched movies."})
	}
	return c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) Recommendations(c echo.Context) error {
	mood := c.QueryParam("mood")
	if mood == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": `A "mood" query parameter is required.`})
	}

	movies, err := h.recommendUsecase.ForMood(c.Request().Context(), mood)
	if err != nil {
		slog.Error("mood recommendations", slog.Any(constant.Error, err))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get recommendations."})
	}
	return c.JSON(http.StatusOK, movies)
}

func (h *MovieHandler) Personalized(c echo.Context) error {
	userID := c.QueryParam("userId")
	if userID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": `A "userId" query parameter is required.`})
	}

	movies, err := h.recommendUsecase.Personalized(c.Request().Context(), userID)
	if err != nil {
		slog.Error("personalized recommendations", slog.Any(constant.Error, err), slog.String(constant.UserID, userID))
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to get personalized recommendations."})
	}
	return c.JSON(http.StatusOK, movies)
}
