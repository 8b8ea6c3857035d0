package handlers

import (
	"log"
	"net/http"
	"strconv"
	"strings"

	"collabhub/internal/middleware"
	"collabhub/internal/models"
	"collabhub/internal/repository"
	"collabhub/internal/service"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postService   service.PostService
	collabService service.CollaborationService
}

func NewPostHandler(postService service.PostService, collabService service.CollaborationService) *PostHandler {
	return &PostHandler{postService: postService, collabService: collabService}
}

type postRequest struct {
	PostType          string   `json:"post_type" binding:"required"`
	Title             string   `json:"title" binding:"required"`
	Description       string   `json:"description" binding:"required"`
	Tags              []string `json:"tags"`
	SkillsRequired    []string `json:"skills_required"`
	Timeline          *string  `json:"timeline"`
	HasFunding        bool     `json:"has_funding"`
	FundingDetails    *string  `json:"funding_details"`
	OpenSourceProject *string  `json:"open_source_project"`
}

func (r postRequest) toInput() service.PostInput {
	return service.PostInput{
		PostType:          r.PostType,
		Title:             r.Title,
		Description:       r.Description,
		Tags:              r.Tags,
		SkillsRequired:    r.SkillsRequired,
		Timeline:          r.Timeline,
		HasFunding:        r.HasFunding,
		FundingDetails:    r.FundingDetails,
		OpenSourceProject: r.OpenSourceProject,
	}
}

// List is the browse endpoint. Store failures degrade to an empty page
// instead of failing the request.
func (h *PostHandler) List(c *gin.Context) {
	filter := repository.PostFilter{
		Search:   c.Query("q"),
		PostType: c.Query("type"),
		Status:   c.Query("status"),
		Tags:     splitListParam(c.Query("tags")),
		Skills:   splitListParam(c.Query("skills")),
	}

	if funded := c.Query("funded"); funded != "" {
		if value, err := strconv.ParseBool(funded); err == nil {
			filter.HasFunding = &value
		}
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	filter.Limit = limit
	filter.Offset = (page - 1) * limit

	posts, err := h.postService.List(c.Request.Context(), filter)
	if err != nil {
		log.Printf("Failed to list posts: %v", err)
		posts = []models.Post{}
	}

	c.JSON(http.StatusOK, gin.H{
		"items": posts,
		"page":  page,
		"count": len(posts),
	})
}

// Get returns the detail view. When the caller is authenticated, the
// payload carries their own collaboration row and an ownership flag.
func (h *PostHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	post, err := h.postService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	response := gin.H{"post": post}

	if userID, authed := middleware.CurrentUserID(c); authed {
		response["is_owner"] = post.AuthorID == userID
		if collab, err := h.collabService.GetByUserAndPost(c.Request.Context(), userID, id); err == nil {
			response["viewer_collaboration"] = collab
		}
	}

	c.JSON(http.StatusOK, response)
}

func (h *PostHandler) Create(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.Create(c.Request.Context(), userID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"post": post})
}

func (h *PostHandler) Update(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req postRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postService.Update(c.Request.Context(), id, userID, req.toInput())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"post": post})
}

func (h *PostHandler) UpdateStatus(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req struct {
		Status string `json:"status" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.postService.UpdateStatus(c.Request.Context(), id, userID, req.Status); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "status updated", "status": req.Status})
}

func splitListParam(raw string) []string {
	if raw == "" {
		return nil
	}
	var values []string
	for _, part := range strings.Split(raw, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			values = append(values, trimmed)
		}
	}
	return values
}
