package handler

import (
	"labourdesk/backend/internal/newsletter"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Subscribe handles POST /api/newsletter.
func (h *Handler) Subscribe(c *gin.Context) {
	var in newsletter.SubscribeInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	res, err := h.Newsletter.Subscribe(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	status := http.StatusCreated
	if res.AlreadySubscribed {
		status = http.StatusOK
	}
	c.JSON(status, gin.H{"success": true, "alreadySubscribed": res.AlreadySubscribed})
}

// Unsubscribe handles DELETE /api/newsletter?email=. A JSON body with an
// "email" field is accepted too.
func (h *Handler) Unsubscribe(c *gin.Context) {
	email := c.Query("email")
	if email == "" {
		var body struct {
			Email string `json:"email"`
		}
		if err := c.ShouldBindJSON(&body); err != nil {
			badRequest(c, "email is required")
			return
		}
		email = body.Email
	}

	if err := h.Newsletter.Unsubscribe(c.Request.Context(), email); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true})
}
