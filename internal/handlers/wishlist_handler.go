package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wishlist-service/internal/models"
	"wishlist-service/internal/services"
)

// WishlistHandler handles wishlist endpoints
type WishlistHandler struct {
	wishlists *services.WishlistService
}

// NewWishlistHandler creates a new wishlist handler
func NewWishlistHandler(wishlists *services.WishlistService) *WishlistHandler {
	return &WishlistHandler{wishlists: wishlists}
}

// ListWishlists handles GET /api/v1/wishlists (owned + collaborating)
func (h *WishlistHandler) ListWishlists(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}

	wishlists, err := h.wishlists.List(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"wishlists": wishlists,
		"count":     len(wishlists),
	})
}

// CreateWishlist handles POST /api/v1/wishlists
func (h *WishlistHandler) CreateWishlist(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}

	var req models.CreateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wishlist, err := h.wishlists.Create(c.Request.Context(), userID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, wishlist)
}

// GetWishlist handles GET /api/v1/wishlists/:id
func (h *WishlistHandler) GetWishlist(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	wishlist, err := h.wishlists.Get(c.Request.Context(), userID, wishlistID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wishlist)
}

// UpdateWishlist handles PUT /api/v1/wishlists/:id
func (h *WishlistHandler) UpdateWishlist(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	var req models.UpdateWishlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	wishlist, err := h.wishlists.Update(c.Request.Context(), userID, wishlistID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wishlist)
}

// DeleteWishlist handles DELETE /api/v1/wishlists/:id
func (h *WishlistHandler) DeleteWishlist(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.wishlists.Delete(c.Request.Context(), userID, wishlistID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Wishlist deleted"})
}

// IssueShareToken handles POST /api/v1/wishlists/:id/share-token
func (h *WishlistHandler) IssueShareToken(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	token, err := h.wishlists.IssueShareToken(c.Request.Context(), userID, wishlistID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, token)
}

// ResolveShareToken handles GET /api/v1/shared/:token
func (h *WishlistHandler) ResolveShareToken(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}

	token := c.Param("token")
	if token == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Share token required"})
		return
	}

	wishlist, err := h.wishlists.ResolveShareToken(c.Request.Context(), userID, token)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, wishlist)
}

// AddCollaborator handles POST /api/v1/wishlists/:id/collaborators
func (h *WishlistHandler) AddCollaborator(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	var req models.AddCollaboratorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	collaborator, err := h.wishlists.AddCollaborator(c.Request.Context(), userID, wishlistID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, collaborator)
}

// RemoveCollaborator handles DELETE /api/v1/wishlists/:id/collaborators/:userId
func (h *WishlistHandler) RemoveCollaborator(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseParamID(c, "id")
	if !ok {
		return
	}
	targetID, ok := parseParamID(c, "userId")
	if !ok {
		return
	}

	if err := h.wishlists.RemoveCollaborator(c.Request.Context(), userID, wishlistID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Collaborator removed"})
}

// LeaveWishlist handles POST /api/v1/wishlists/:id/leave
func (h *WishlistHandler) LeaveWishlist(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.wishlists.Leave(c.Request.Context(), userID, wishlistID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Left wishlist"})
}
