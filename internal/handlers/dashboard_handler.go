package handlers

import (
	"net/http"

	"collabhub/internal/middleware"
	"collabhub/internal/models"
	"collabhub/internal/service"

	"github.com/gin-gonic/gin"
)

type DashboardHandler struct {
	postService   service.PostService
	collabService service.CollaborationService
}

func NewDashboardHandler(
	postService service.PostService,
	collabService service.CollaborationService,
) *DashboardHandler {
	return &DashboardHandler{
		postService:   postService,
		collabService: collabService,
	}
}

// Get assembles the caller's dashboard: their own posts and their
// non-withdrawn collaborations. Each section degrades independently on
// store failure.
func (h *DashboardHandler) Get(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	ctx := c.Request.Context()

	var errs []string

	posts, err := h.postService.ListByAuthor(ctx, userID)
	if err != nil {
		posts = []models.Post{}
		errs = append(errs, "posts unavailable")
	}

	collabs, err := h.collabService.ListByUser(ctx, userID)
	if err != nil {
		collabs = []models.Collaboration{}
		errs = append(errs, "collaborations unavailable")
	}

	response := gin.H{
		"posts":          posts,
		"collaborations": collabs,
	}
	if len(errs) > 0 {
		response["errors"] = errs
	}

	c.JSON(http.StatusOK, response)
}
