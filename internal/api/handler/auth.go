package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const staffKey = "staff"

// RequireStaff rejects requests without a valid staff bearer token and stores
// the staff member's id under "staff" in the gin context.
func (h *Handler) RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || strings.TrimSpace(raw) == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Authorization token missing"})
			return
		}

		claims, err := h.Auth.ParseStaffToken(strings.TrimSpace(raw))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token or expired"})
			return
		}

		c.Set(staffKey, claims.Subject)
		c.Next()
	}
}
