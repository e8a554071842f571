package handler

import (
	"labourdesk/backend/internal/contact"
	"net/http"

	"github.com/gin-gonic/gin"
)

// SubmitContact handles POST /api/contact.
func (h *Handler) SubmitContact(c *gin.Context) {
	var in contact.Input
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	id, err := h.Contact.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"success": true, "id": id})
}
