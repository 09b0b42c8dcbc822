package handler

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/ricogpa/ricogpa-backend/internal/middleware"
	"github.com/ricogpa/ricogpa-backend/internal/model"
	"github.com/ricogpa/ricogpa-backend/internal/response"
	"github.com/ricogpa/ricogpa-backend/internal/service"
	ws "github.com/ricogpa/ricogpa-backend/internal/websocket"
)

// StreamHandler pushes live GPA summaries over WebSocket.
type StreamHandler struct {
	gpaService *service.GPAService
	log        zerolog.Logger
	upgrader   websocket.Upgrader
}

// NewStreamHandler creates a new StreamHandler.
func NewStreamHandler(gpaService *service.GPAService, log zerolog.Logger, allowedOrigins []string) *StreamHandler {
	return &StreamHandler{
		gpaService: gpaService,
		log:        log.With().Str("component", "ws_handler").Logger(),
		upgrader:   ws.NewUpgrader(allowedOrigins),
	}
}

// SummaryStream godoc
// WS /ws/v1/gpa/stream?token=...
// Sends the current summary on connect, then every recomputed summary.
// Clients may send {"action":"ping"} or {"action":"refresh"}.
func (h *StreamHandler) SummaryStream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenRequired)
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	userID := claims.UserID
	wsLog := h.log.With().Int("user_id", userID).Logger()

	// Hijacked connections do not cancel the request context on disconnect.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Subscribe before the snapshot so no recomputation falls in between.
	sub := h.gpaService.Subscribe(ctx, userID)
	defer sub.Close()
	if _, err := sub.Receive(ctx); err != nil {
		wsLog.Error().Err(err).Msg("Summary subscription failed")
		_ = ws.WriteError(conn, "summary stream unavailable")
		return
	}

	if err := h.sendSummary(ctx, conn, userID); err != nil {
		wsLog.Debug().Err(err).Msg("Initial summary not delivered")
		return
	}

	wsLog.Info().Msg("Summary stream connected")

	actions := make(chan ws.Action)
	go func() {
		defer cancel()
		for {
			var req ws.Request
			if err := ws.ReadJSON(conn, &req); err != nil {
				if ws.IsUnexpectedClose(err) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				} else {
					wsLog.Debug().Msg("Connection closed")
				}
				return
			}
			select {
			case actions <- req.Action:
			case <-ctx.Done():
				return
			}
		}
	}()

	events := sub.Channel()
	for {
		var err error
		select {
		case <-ctx.Done():
			return
		case action := <-actions:
			switch action {
			case ws.ActionPing:
				err = ws.WriteTyped(conn, ws.PongEvent{Event: ws.EventPong})
			case ws.ActionRefresh:
				err = h.sendSummary(ctx, conn, userID)
			default:
				err = ws.WriteError(conn, "unknown action: "+string(action))
			}
		case msg, ok := <-events:
			if !ok {
				return
			}
			var summary model.Summary
			if jsonErr := json.Unmarshal([]byte(msg.Payload), &summary); jsonErr != nil {
				wsLog.Warn().Err(jsonErr).Msg("Skipping unreadable summary event")
				continue
			}
			err = ws.WriteTyped(conn, ws.SummaryEvent{Event: ws.EventSummary, Summary: summary})
		}
		if err != nil {
			wsLog.Debug().Err(err).Msg("Write failed, closing stream")
			return
		}
	}
}

func (h *StreamHandler) sendSummary(ctx context.Context, conn *websocket.Conn, userID int) error {
	summary, err := h.gpaService.Summary(ctx, userID)
	if err != nil {
		return ws.WriteError(conn, "summary unavailable")
	}
	return ws.WriteTyped(conn, ws.SummaryEvent{Event: ws.EventSummary, Summary: summary})
}
