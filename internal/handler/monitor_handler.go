package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/examportal/examportal-backend/internal/middleware"
	"github.com/examportal/examportal-backend/internal/model"
	"github.com/examportal/examportal-backend/internal/service"
	ws "github.com/examportal/examportal-backend/internal/websocket"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

// buildUpgrader creates a WebSocket upgrader with origin validation.
// An empty allowedOrigins slice permits all origins (development mode).
func buildUpgrader(allowedOrigins []string) websocket.Upgrader {
	return websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			if len(allowedOrigins) == 0 {
				return true
			}
			origin := r.Header.Get("Origin")
			for _, allowed := range allowedOrigins {
				if strings.EqualFold(allowed, origin) {
					return true
				}
			}
			return false
		},
	}
}

// MonitorHandler streams live submission events to admins over WebSocket.
// Events arrive via Redis PubSub so every server instance sees every
// submission.
type MonitorHandler struct {
	bus      *service.RedisSubmissionBus
	log      zerolog.Logger
	upgrader websocket.Upgrader
}

// NewMonitorHandler creates a new MonitorHandler.
func NewMonitorHandler(bus *service.RedisSubmissionBus, log zerolog.Logger, allowedOrigins []string) *MonitorHandler {
	return &MonitorHandler{
		bus:      bus,
		log:      log.With().Str("component", "monitor_handler").Logger(),
		upgrader: buildUpgrader(allowedOrigins),
	}
}

// Stream godoc
// WS /ws/v1/admin/monitor?token=...
// Upgrades to WebSocket and forwards every scored submission as it lands.
func (h *MonitorHandler) Stream(c *gin.Context) {
	claims := middleware.GetClaims(c)
	if claims == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	conn, err := h.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.log.Error().Err(err).Msg("WebSocket upgrade failed")
		return
	}
	defer conn.Close()

	wsLog := h.log.With().Str("admin_id", claims.UserID).Logger()
	wsLog.Info().Msg("Admin connected to monitor feed")

	if err := ws.WriteTyped(conn, ws.ConnectedResponse{Event: ws.EventConnected}); err != nil {
		return
	}

	sub := h.bus.Subscribe(c.Request.Context())
	defer sub.Close()

	// Reader goroutine: answers pings and detects client disconnects.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			var msg ws.RequestEnvelope
			if err := ws.ReadJSON(conn, &msg); err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					wsLog.Warn().Err(err).Msg("Unexpected close")
				}
				return
			}
			if msg.Action == ws.ActionPing {
				_ = ws.WriteTyped(conn, ws.PongResponse{Event: ws.EventPong})
			}
		}
	}()

	events := sub.Channel()
	for {
		select {
		case <-done:
			wsLog.Debug().Msg("Admin disconnected from monitor feed")
			return
		case msg, ok := <-events:
			if !ok {
				return
			}
			var event model.SubmissionEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				wsLog.Error().Err(err).Msg("Malformed submission event")
				continue
			}
			if err := ws.WriteTyped(conn, ws.SubmissionResponse{
				Event:      ws.EventSubmission,
				Submission: event,
			}); err != nil {
				return
			}
		}
	}
}
