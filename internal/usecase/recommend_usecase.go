package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/domain/models"
	"github.com/moviemate/watchparty/internal/infra/adapters/genai"
	"github.com/moviemate/watchparty/internal/infra/adapters/postgres/repository"
)

// Catalog is the movie catalog surface the recommender needs,
// implemented by the TMDB client.
type Catalog interface {
	TopRated(ctx context.Context) ([]models.Movie, error)
	Popular(ctx context.Context) ([]models.Movie, error)
	MostWatched(ctx context.Context) ([]models.Movie, error)
	Discover(ctx context.Context, genreIDs []int) ([]models.Movie, error)
}

type RecommendUsecase interface {
	TopRated(ctx context.Context) ([]models.Movie, error)
	Popular(ctx context.Context) ([]models.Movie, error)
	MostWatched(ctx context.Context) ([]models.Movie, error)

	// ForMood maps a free-form mood onto catalog genres and returns the
	// best-rated discoveries, falling back to top-rated when nothing
	// usable comes back.
	ForMood(ctx context.Context, mood string) ([]models.Movie, error)

	// Personalized recommends from the user's recent history. Every
	// failure falls back to top-rated rather than surfacing an error.
	Personalized(ctx context.Context, userID string) ([]models.Movie, error)
}

type recommendUsecase struct {
	catalog   Catalog
	suggester genai.GenreSuggester
	history   repository.HistoryRepository
}

func NewRecommendUsecase(catalog Catalog, suggester genai.GenreSuggester, history repository.HistoryRepository) RecommendUsecase {
	return &recommendUsecase{
		catalog:   catalog,
		suggester: suggester,
		history:   history,
	}
}

func (u *recommendUsecase) TopRated(ctx context.Context) ([]models.Movie, error) {
	return u.catalog.TopRated(ctx)
}

func (u *recommendUsecase) Popular(ctx context.Context) ([]models.Movie, error) {
	return u.catalog.Popular(ctx)
}

func (u *recommendUsecase) MostWatched(ctx context.Context) ([]models.Movie, error) {
	return u.catalog.MostWatched(ctx)
}

func (u *recommendUsecase) ForMood(ctx context.Context, mood string) ([]models.Movie, error) {
	names, err := u.suggester.SuggestGenres(ctx, moodPrompt(mood))
	if err != nil {
		return nil, fmt.Errorf("suggest genres: %w", err)
	}

	slog.Info("genres suggested for mood", slog.String("mood", mood), slog.Any("genres", names))

	return u.discoverOrTopRated(ctx, names)
}

func (u *recommendUsecase) Personalized(ctx context.Context, userID string) ([]models.Movie, error) {
	rows, err := u.history.ListByUser(ctx, userID, "clicked_at", "desc", 20, 0)
	if err != nil {
		slog.Error("load history for recommendations", slog.Any(constant.Error, err))
		return u.catalog.TopRated(ctx)
	}

	if len(rows) == 0 {
		slog.Info("no history for user, returning top-rated", slog.String(constant.UserID, userID))
		return u.catalog.TopRated(ctx)
	}

	names, err := u.suggester.SuggestGenres(ctx, historyPrompt(rows))
	if err != nil {
		slog.Error("suggest genres from history", slog.Any(constant.Error, err))
		return u.catalog.TopRated(ctx)
	}

	return u.discoverOrTopRated(ctx, names)
}

func (u *recommendUsecase) discoverOrTopRated(ctx context.Context, genreNames []string) ([]models.Movie, error) {
	ids := models.GenreIDsByName(genreNames)
	if len(ids) == 0 {
		slog.Warn("no usable genres suggested, falling back to top-rated", slog.Any("genres", genreNames))
		return u.catalog.TopRated(ctx)
	}

	movies, err := u.catalog.Discover(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("discover movies: %w", err)
	}
	if len(movies) == 0 {
		slog.Warn("discovery returned no results, falling back to top-rated")
		return u.catalog.TopRated(ctx)
	}
	return movies, nil
}

func moodPrompt(mood string) string {
	return fmt.Sprintf(`A user wants to watch movies that fit a %q mood.
From the following list of official TMDB movie genres, choose the 1-3 best genres that represent this mood:
%s

Return ONLY a comma-separated list of genre names, and nothing else.
Your response should not contain any special formatting, quotes, or introductory text.

Example for mood "I want to laugh out loud":
Comedy

Example for mood "feeling scared and on edge":
Horror, Thriller

Now, provide the best genres for the mood: %q`, mood, models.GenreList, mood)
}

func historyPrompt(rows []models.MovieHistory) string {
	titles := make([]string, 0, len(rows))
	for _, row := range rows {
		titles = append(titles, fmt.Sprintf("%s (Rating: %g)", row.MovieTitle, row.MovieRating))
	}

	return fmt.Sprintf(`Based on a user's movie watching history, suggest 1-3 genres that would best match their preferences.

User's recently watched movies: %s

From the following list of official TMDB movie genres, choose the 1-3 best genres that represent this user's preferences:
%s

Return ONLY a comma-separated list of genre names, and nothing else.
Your response should not contain any special formatting, quotes, or introductory text.

Example response:
Action, Thriller

Now, provide the best genres for this user's preferences:`, strings.Join(titles, ", "), models.GenreList)
}
