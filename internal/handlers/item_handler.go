package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"wishlist-service/internal/models"
	"wishlist-service/internal/services"
)

// ItemHandler handles item endpoints: CRUD, the status transitions, and
// reservations.
type ItemHandler struct {
	items *services.ItemService
}

// NewItemHandler creates a new item handler
func NewItemHandler(items *services.ItemService) *ItemHandler {
	return &ItemHandler{items: items}
}

// CreateItem handles POST /api/v1/wishlists/:id/items
func (h *ItemHandler) CreateItem(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	wishlistID, ok := parseParamID(c, "id")
	if !ok {
		return
	}

	var req models.CreateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.Create(c.Request.Context(), userID, wishlistID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}

// UpdateItem handles PUT /api/v1/items/:itemId
func (h *ItemHandler) UpdateItem(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	itemID, ok := parseParamID(c, "itemId")
	if !ok {
		return
	}

	var req models.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.Update(c.Request.Context(), userID, itemID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// DeleteItem handles DELETE /api/v1/items/:itemId
func (h *ItemHandler) DeleteItem(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	itemID, ok := parseParamID(c, "itemId")
	if !ok {
		return
	}

	if err := h.items.Delete(c.Request.Context(), userID, itemID); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item deleted"})
}

// MarkPurchased handles POST /api/v1/items/:itemId/purchase
func (h *ItemHandler) MarkPurchased(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	itemID, ok := parseParamID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.items.MarkPurchased(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// RestoreItem handles POST /api/v1/items/:itemId/restore
// The response carries the purchased-items count left on the wishlist and
// the filter the client should show next, so every screen flips by the same
// rule when the purchased view empties.
func (h *ItemHandler) RestoreItem(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	itemID, ok := parseParamID(c, "itemId")
	if !ok {
		return
	}

	result, err := h.items.Restore(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// ReserveItem handles POST /api/v1/items/:itemId/reserve
// Reserving an item the caller already holds returns 200 with the current
// state; a claim held by someone else returns 409 ALREADY_RESERVED.
func (h *ItemHandler) ReserveItem(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	itemID, ok := parseParamID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.items.Reserve(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// UnreserveItem handles DELETE /api/v1/items/:itemId/reserve
func (h *ItemHandler) UnreserveItem(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	itemID, ok := parseParamID(c, "itemId")
	if !ok {
		return
	}

	item, err := h.items.Unreserve(c.Request.Context(), userID, itemID)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, item)
}

// CopyItem handles POST /api/v1/items/:itemId/copy (the heart action)
func (h *ItemHandler) CopyItem(c *gin.Context) {
	userID, ok := viewerID(c)
	if !ok {
		return
	}
	itemID, ok := parseParamID(c, "itemId")
	if !ok {
		return
	}

	var req models.CopyItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	item, err := h.items.Copy(c.Request.Context(), userID, itemID, req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, item)
}
