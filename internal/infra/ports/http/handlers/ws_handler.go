package handlers

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	"github.com/moviemate/watchparty/internal/application/config"
	"github.com/moviemate/watchparty/internal/application/constant"
	"github.com/moviemate/watchparty/internal/domain/runtime"
	"github.com/moviemate/watchparty/internal/usecase"
)

const greeting = "welcome to the party"

type WebSocketHandler struct {
	upgrader *websocket.Upgrader

	relayUsecase usecase.RelayUsecase
}

func NewWebSocketHandler(cfg *config.Config, relayUsecase usecase.RelayUsecase) *WebSocketHandler {
	return &WebSocketHandler{
		upgrader: &websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				if cfg.Debug {
					return true
				}

				return r.Header.Get("Origin") == cfg.Host
			},
		},
		relayUsecase: relayUsecase,
	}
}

func (h *WebSocketHandler) Handle(c echo.Context) error {
	ws, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		slog.Error("WebSocket upgrade error", slog.Any(constant.Error, err))
		return err
	}
	defer ws.Close()

	partyID := c.QueryParam("partyId")
	userID := c.QueryParam("userId")

	if partyID == "" || userID == "" {
		slog.Warn("connection rejected: missing partyId or userId")
		return nil
	}

	ctx := c.Request().Context()
	conn := runtime.NewConnection(partyID, userID, ws)

	h.relayUsecase.HandleJoin(ctx, conn)

	// The request context dies with the socket; leave handling still
	// needs the store for host termination.
	defer h.relayUsecase.HandleLeave(context.WithoutCancel(ctx), conn)

	if err := conn.Send([]byte(greeting)); err != nil {
		slog.Error("send greeting", slog.Any(constant.Error, err), slog.String(constant.PartyID, partyID))
		return nil
	}

	for {
		_, msg, err := ws.ReadMessage()
		if err != nil {
			h.logReadError(err, conn)
			return nil
		}

		h.relayUsecase.HandleMessage(ctx, conn, msg)
	}
}

func (h *WebSocketHandler) logReadError(err error, conn *runtime.Connection) {
	var closeErr *websocket.CloseError
	if errors.As(err, &closeErr) {
		switch closeErr.Code {
		case websocket.CloseNormalClosure, websocket.CloseGoingAway:
			slog.Info("client disconnected",
				slog.String(constant.PartyID, conn.PartyID),
				slog.String(constant.UserID, conn.UserID),
			)
		default:
			slog.Warn("websocket closed abnormally",
				slog.Int("code", closeErr.Code),
				slog.String(constant.PartyID, conn.PartyID),
			)
		}
		return
	}

	slog.Error("websocket read", slog.Any(constant.Error, err))
}
