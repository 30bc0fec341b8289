package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wishlist-service/internal/models"
	"wishlist-service/internal/services"
)

// FriendHandler handles friendship endpoints
type FriendHandler struct {
	friends *services.FriendService
}

// NewFriendHandler creates a new friend handler
func NewFriendHandler(friends *services.FriendService) *FriendHandler {
	return &FriendHandler{friends: friends}
}

// ListFriends handles GET /api/v1/friends
func (h *FriendHandler) ListFriends(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}

	friends, err := h.friends.ListFriends(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"friends": friends,
		"count":   len(friends),
	})
}

// ListRequests handles GET /api/v1/friends/requests (incoming and outgoing)
func (h *FriendHandler) ListRequests(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}

	requests, err := h.friends.ListRequests(c.Request.Context(), userID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"requests": requests,
		"count":    len(requests),
	})
}

// SendRequest handles POST /api/v1/friends/requests
func (h *FriendHandler) SendRequest(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}

	var req models.SendFriendRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	friendship, err := h.friends.SendRequest(c.Request.Context(), userID, req.AddresseeID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Friend request sent",
		"request": friendship,
	})
}

// AcceptRequest handles POST /api/v1/friends/requests/:id/accept
func (h *FriendHandler) AcceptRequest(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	requestID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	friendship, err := h.friends.AcceptRequest(c.Request.Context(), userID, requestID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":    "Friend request accepted",
		"friendship": friendship,
	})
}

// RejectRequest handles POST /api/v1/friends/requests/:id/reject
func (h *FriendHandler) RejectRequest(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	requestID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.friends.RejectRequest(c.Request.Context(), userID, requestID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request rejected"})
}

// CancelRequest handles DELETE /api/v1/friends/requests/:id
func (h *FriendHandler) CancelRequest(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	requestID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.friends.CancelRequest(c.Request.Context(), userID, requestID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Friend request cancelled"})
}

// BlockUser handles POST /api/v1/users/:id/block
func (h *FriendHandler) BlockUser(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	targetID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.friends.Block(c.Request.Context(), userID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User blocked"})
}

// UnblockUser handles DELETE /api/v1/users/:id/block
func (h *FriendHandler) UnblockUser(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	targetID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	if err := h.friends.Unblock(c.Request.Context(), userID, targetID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User unblocked"})
}
