package handler

import (
	"encoding/json"
	"errors"
	"labourdesk/backend/internal/apperr"
	"labourdesk/backend/internal/models"
	"net/http"
	"slices"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 16 * 1024
)

// ServeChatWebSocket upgrades GET /api/chat/ws. Every text frame carries a
// models.ChatRequest and is answered with one models.ChatReply frame.
func (h *Handler) ServeChatWebSocket(c *gin.Context) {
	if !h.Chat.Enabled() {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "service unavailable"})
		return
	}

	upgrader := websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     h.checkOrigin,
	}
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.Logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	session := &chatSession{
		handler: h,
		conn:    conn,
		send:    make(chan models.ChatReply, 8),
	}
	go session.writePump()
	// The request context stays alive until the read loop ends.
	session.readPump(c)
}

// checkOrigin accepts requests without an Origin header (non-browser clients)
// and browser requests from the configured CORS origins.
func (h *Handler) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}
	return slices.Contains(h.CORSOrigins, "*") || slices.Contains(h.CORSOrigins, origin)
}

type chatSession struct {
	handler *Handler
	conn    *websocket.Conn
	send    chan models.ChatReply
}

func (s *chatSession) readPump(c *gin.Context) {
	defer close(s.send)

	s.conn.SetReadLimit(maxMessageSize)
	_ = s.conn.SetReadDeadline(time.Now().Add(pongWait))
	s.conn.SetPongHandler(func(string) error {
		return s.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, message, err := s.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				s.handler.Logger.Warn("chat websocket read failed", zap.Error(err))
			}
			return
		}

		var req models.ChatRequest
		if err := json.Unmarshal(message, &req); err != nil {
			s.send <- models.ChatReply{Error: "invalid message"}
			continue
		}

		reply, err := s.handler.Chat.Reply(c.Request.Context(), req)
		if err != nil {
			s.send <- models.ChatReply{Error: replyError(err)}
			continue
		}
		s.send <- models.ChatReply{Reply: reply}
	}
}

func (s *chatSession) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		s.conn.Close()
	}()

	for {
		select {
		case reply, ok := <-s.send:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = s.conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""))
				return
			}
			if err := s.conn.WriteJSON(reply); err != nil {
				return
			}

		case <-ticker.C:
			_ = s.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := s.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func replyError(err error) string {
	if ve, ok := apperr.AsValidation(err); ok {
		return ve.Message
	}
	if errors.Is(err, apperr.ErrUnavailable) || apperr.IsUpstream(err) {
		return "assistant is temporarily unavailable"
	}
	return "failed to process request"
}
