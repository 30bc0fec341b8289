package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"wishlist-service/internal/lifecycle"
	"wishlist-service/internal/repository"
	"wishlist-service/internal/services"
)

// Stable error codes clients key off. ALREADY_RESERVED in particular is part
// of the reservation contract: clients disable the control on it instead of
// showing an error dialog.
const (
	CodePermissionDenied  = "PERMISSION_DENIED"
	CodeAlreadyReserved   = "ALREADY_RESERVED"
	CodeInvalidTransition = "INVALID_TRANSITION"
)

// viewerID extracts the authenticated user's id set by the auth middleware.
func viewerID(c *gin.Context) (uuid.UUID, bool) {
	raw := c.GetString("user_id")
	if raw == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authenticated"})
		return uuid.Nil, false
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid user identity"})
		return uuid.Nil, false
	}
	return id, true
}

// parseParamID parses a uuid path parameter, writing the 400 itself.
func parseParamID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name})
		return uuid.Nil, false
	}
	return id, true
}

// respondError maps domain errors to HTTP statuses. Not-visible collapses
// into 404 so private wishlists do not leak their existence.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, repository.ErrNotFound), errors.Is(err, services.ErrNotVisible):
		c.JSON(http.StatusNotFound, gin.H{"error": "Not found"})
	case errors.Is(err, lifecycle.ErrPermissionDenied):
		c.JSON(http.StatusForbidden, gin.H{"error": "You are not allowed to do that", "code": CodePermissionDenied})
	case errors.Is(err, lifecycle.ErrInvalidTransition):
		c.JSON(http.StatusConflict, gin.H{"error": "Item is not in a state that allows this", "code": CodeInvalidTransition})
	case errors.Is(err, repository.ErrReservationHeld):
		c.JSON(http.StatusConflict, gin.H{"error": "Item is already reserved", "code": CodeAlreadyReserved})
	case errors.Is(err, services.ErrSelfAction):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Action cannot target yourself"})
	case errors.Is(err, services.ErrAlreadyFriends):
		c.JSON(http.StatusConflict, gin.H{"error": "Already friends"})
	case errors.Is(err, services.ErrRequestPending):
		c.JSON(http.StatusConflict, gin.H{"error": "Friend request already pending"})
	case errors.Is(err, services.ErrBlocked):
		c.JSON(http.StatusForbidden, gin.H{"error": "Interaction not allowed"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
