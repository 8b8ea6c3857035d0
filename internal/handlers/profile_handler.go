package handlers

import (
	"log"
	"net/http"

	"collabhub/internal/middleware"
	"collabhub/internal/models"
	"collabhub/internal/service"

	"github.com/gin-gonic/gin"
)

type ProfileHandler struct {
	profileService service.ProfileService
}

func NewProfileHandler(profileService service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

func (h *ProfileHandler) List(c *gin.Context) {
	profiles, err := h.profileService.List(c.Request.Context())
	if err != nil {
		log.Printf("Failed to list profiles: %v", err)
		profiles = []models.Profile{}
	}

	c.JSON(http.StatusOK, gin.H{"items": profiles})
}

func (h *ProfileHandler) Get(c *gin.Context) {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	profile, err := h.profileService.Get(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}

type profileRequest struct {
	FullName     *string `json:"full_name"`
	Role         *string `json:"role"`
	Organization *string `json:"organization"`
	Bio          *string `json:"bio"`
	ContactEmail *string `json:"contact_email"`
	AvatarURL    *string `json:"avatar_url"`
}

// UpdateMe edits the caller's own profile only; there is no path for
// editing someone else's.
func (h *ProfileHandler) UpdateMe(c *gin.Context) {
	userID, ok := middleware.CurrentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	var req profileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	profile, err := h.profileService.Update(c.Request.Context(), userID, service.ProfileInput{
		FullName:     req.FullName,
		Role:         req.Role,
		Organization: req.Organization,
		Bio:          req.Bio,
		ContactEmail: req.ContactEmail,
		AvatarURL:    req.AvatarURL,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"profile": profile})
}
