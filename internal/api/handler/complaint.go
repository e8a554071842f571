package handler

import (
	"labourdesk/backend/internal/complaint"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SubmitComplaint handles POST /api/complaints.
func (h *Handler) SubmitComplaint(c *gin.Context) {
	var in complaint.SubmitInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	res, err := h.Complaints.Submit(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":         true,
		"referenceNumber": res.ReferenceNumber,
		"complaintId":     res.ComplaintID,
	})
}

// ListComplaints handles GET /api/complaints?status=&limit=&offset= for staff.
func (h *Handler) ListComplaints(c *gin.Context) {
	res, err := h.Complaints.List(c.Request.Context(), complaint.ListFilter{
		Status: c.Query("status"),
		Limit:  queryInt(c, "limit"),
		Offset: queryInt(c, "offset"),
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"complaints": res.Complaints,
		"total":      res.Total,
		"limit":      res.Limit,
		"offset":     res.Offset,
	})
}

// TrackComplaint handles GET /api/complaints/track/:reference.
func (h *Handler) TrackComplaint(c *gin.Context) {
	view, err := h.Complaints.Track(c.Request.Context(), c.Param("reference"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": view})
}

// UpdateComplaint handles PATCH /api/complaints/:reference for staff.
func (h *Handler) UpdateComplaint(c *gin.Context) {
	var in complaint.UpdateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		badRequest(c, "invalid request body")
		return
	}

	updated, err := h.Complaints.Update(c.Request.Context(), c.Param("reference"), in)
	if err != nil {
		respondError(c, err)
		return
	}

	h.Logger.Info("complaint updated by staff",
		zap.String("staff", c.GetString(staffKey)),
		zap.String("reference", updated.ReferenceNumber),
	)
	c.JSON(http.StatusOK, gin.H{"success": true, "complaint": updated})
}

// queryInt parses a numeric query parameter; anything unparsable reads as 0,
// which the services treat as "use the default".
func queryInt(c *gin.Context, key string) int {
	n, err := strconv.Atoi(c.Query(key))
	if err != nil {
		return 0
	}
	return n
}
