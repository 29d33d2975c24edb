package server

import (
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"

	"github.com/moviemate/watchparty/internal/infra/ports/http/handlers"
	"github.com/moviemate/watchparty/internal/infra/ports/http/middleware"
)

func New(
	partyHandler *handlers.PartyHandler,
	wsHandler *handlers.WebSocketHandler,
	movieHandler *handlers.MovieHandler,
	historyHandler *handlers.HistoryHandler,
) *echo.Echo {
	e := echo.New()

	e.HideBanner = true

	e.Use(echomw.CORS())
	e.Use(middleware.SlogLogger())
	e.Use(middleware.Prometheus())

	e.POST("/party", partyHandler.Create)
	e.GET("/party/:partyId", partyHandler.Get)
	e.PUT("/party/:partyId/state", partyHandler.UpdateState)

	e.GET("/ws", wsHandler.Handle)

	api := e.Group("/api")
	{
		api.GET("/top-rated", movieHandler.TopRated)
		api.GET("/popular", movieHandler.Popular)
		api.GET("/most-watched", movieHandler.MostWatched)
		api.GET("/recommendations", movieHandler.Recommendations)
		api.GET("/personalized", movieHandler.Personalized)

		api.POST("/track-click", historyHandler.TrackClick)
		api.GET("/user-history", historyHandler.List)
		api.DELETE("/user-history/clear", historyHandler.Clear)
		api.DELETE("/user-history/:movieId", historyHandler.Delete)
	}

	return e
}
