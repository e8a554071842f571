package handler

import (
	"labourdesk/backend/internal/models"
	"net/http"

	"github.com/gin-gonic/gin"
)

// ChatReply handles POST /api/chat.
func (h *Handler) ChatReply(c *gin.Context) {
	var req models.ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	reply, err := h.Chat.Reply(c.Request.Context(), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "reply": reply})
}
