package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"wishlist-service/internal/models"
	"wishlist-service/internal/services"
)

// UserHandler handles profile and user-search endpoints
type UserHandler struct {
	users *services.UserService
}

// NewUserHandler creates a new user handler
func NewUserHandler(users *services.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// GetMe handles GET /api/v1/me
func (h *UserHandler) GetMe(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}

	user, err := h.users.GetProfile(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateMe handles PATCH /api/v1/me (currency, push token, display name)
func (h *UserHandler) UpdateMe(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}

	var req models.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.users.UpdateProfile(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

// GetUser handles GET /api/v1/users/:id (public profile with friendship flag)
func (h *UserHandler) GetUser(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	targetID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	profile, err := h.users.GetPublicProfile(c.Request.Context(), userID, targetID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, profile)
}

// SearchUsers handles GET /api/v1/users/search?q=...
// An empty or too-short query returns an empty result set; debouncing the
// keystrokes is the client's job.
func (h *UserHandler) SearchUsers(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}

	query := c.Query("q")
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))

	results, err := h.users.Search(c.Request.Context(), userID, query, limit)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"results": results,
		"count":   len(results),
	})
}
