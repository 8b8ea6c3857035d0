package handlers

import (
	"net/http"

	"collabhub/internal/metrics"
	"collabhub/internal/middleware"
	"collabhub/internal/service"

	"github.com/gin-gonic/gin"
)

type CollaborationHandler struct {
	collabService service.CollaborationService
}

func NewCollaborationHandler(collabService service.CollaborationService) *CollaborationHandler {
	return &CollaborationHandler{collabService: collabService}
}

// Join upserts the caller's collaboration on a post back to interested.
func (h *CollaborationHandler) Join(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	postID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Message *string `json:"message"`
	}
	if err := c.ShouldBindJSON(&req); err != nil && c.Request.ContentLength > 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collab, err := h.collabService.Join(c.Request.Context(), postID, userID, req.Message)
	if err != nil {
		respondError(c, err)
		return
	}

	metrics.CollaborationJoins.Inc()
	c.JSON(http.StatusCreated, gin.H{"collaboration": collab})
}

func (h *CollaborationHandler) Withdraw(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.collabService.Withdraw(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "collaboration withdrawn"})
}

func (h *CollaborationHandler) Activate(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	if err := h.collabService.Activate(c.Request.Context(), id, userID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "collaboration activated"})
}
