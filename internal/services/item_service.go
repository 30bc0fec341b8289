package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wishlist-service/internal/access"
	"wishlist-service/internal/lifecycle"
	"wishlist-service/internal/models"
	"wishlist-service/internal/repository"
)

// ItemService handles item business logic: creation, edits, the status
// state machine, and reservations. Every transition is authorized before
// the repository is touched, so a denied call leaves no trace.
type ItemService struct {
	items     repository.ItemRepositoryInterface
	wishlists *WishlistService
	publisher EventPublisher
	logger    *logrus.Entry
}

// NewItemService creates a new item service
func NewItemService(
	items repository.ItemRepositoryInterface,
	wishlists *WishlistService,
	publisher EventPublisher,
	logger *logrus.Logger,
) *ItemService {
	if logger == nil {
		logger = logrus.New()
	}
	return &ItemService{
		items:     items,
		wishlists: wishlists,
		publisher: publisher,
		logger:    logger.WithField("component", "item-service"),
	}
}

// RestoreResult carries the view-state outcome of a restore alongside the
// item: when the purchased set is emptied the active filter flips back to
// WANTED.
type RestoreResult struct {
	Item               models.ItemResponse `json:"item"`
	PurchasedRemaining int64               `json:"purchasedRemaining"`
	NextFilter         lifecycle.Filter    `json:"nextFilter"`
}

// ShapeItem builds the per-viewer item response. The wishlist owner never
// sees reservation state; every other viewer sees whether any claim exists
// and whether it is theirs.
func ShapeItem(item *models.Item, viewerID uuid.UUID, membership access.Membership) models.ItemResponse {
	resp := models.ItemResponse{
		ID:                         item.ID,
		WishlistID:                 item.WishlistID,
		Title:                      item.Title,
		Description:                item.Description,
		URL:                        item.URL,
		ImageURL:                   item.ImageURL,
		Price:                      item.Price,
		Currency:                   item.Currency,
		Quantity:                   item.Quantity,
		Priority:                   item.Priority,
		Status:                     item.Status,
		AddedByID:                  item.AddedByID,
		DeleteRequiresConfirmation: lifecycle.DeleteRequiresConfirmation(item.Status),
		CreatedAt:                  item.CreatedAt,
		UpdatedAt:                  item.UpdatedAt,
	}

	if !membership.Owner() {
		hasReservations := len(item.Reservations) > 0
		reservedByMe := false
		for i := range item.Reservations {
			if item.Reservations[i].UserID == viewerID {
				reservedByMe = true
				break
			}
		}
		resp.HasReservations = &hasReservations
		resp.ReservedByMe = &reservedByMe
	}

	return resp
}

// Create adds an item to a wishlist. Owner or collaborator.
func (s *ItemService) Create(ctx context.Context, viewerID, wishlistID uuid.UUID, req models.CreateItemRequest) (*models.ItemResponse, error) {
	view, err := s.wishlists.ResolveView(ctx, viewerID, wishlistID)
	if err != nil {
		return nil, err
	}
	if !access.Can(access.ActionAddItem, view.AccessContext(viewerID, nil)) {
		return nil, lifecycle.ErrPermissionDenied
	}

	quantity := req.Quantity
	if quantity == 0 {
		quantity = 1
	}
	priority := req.Priority
	if priority == "" {
		priority = models.PriorityNiceToHave
	}

	addedBy := viewerID
	item := &models.Item{
		ID:          uuid.New(),
		WishlistID:  wishlistID,
		Title:       req.Title,
		Description: req.Description,
		URL:         req.URL,
		ImageURL:    req.ImageURL,
		Price:       req.Price,
		Currency:    req.Currency,
		Quantity:    quantity,
		Priority:    priority,
		Status:      models.ItemStatusWanted,
		AddedByID:   &addedBy,
	}
	if err := s.items.Create(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to create item: %w", err)
	}

	s.publish(ctx, "item.created", item.ID, wishlistID, viewerID)

	resp := ShapeItem(item, viewerID, view.Membership)
	return &resp, nil
}

// Update edits an item's presentational fields. Admin, or a member who
// authored the item.
func (s *ItemService) Update(ctx context.Context, viewerID, itemID uuid.UUID, req models.UpdateItemRequest) (*models.ItemResponse, error) {
	item, view, err := s.load(ctx, viewerID, itemID)
	if err != nil {
		return nil, err
	}
	if !access.Can(access.ActionEditItem, view.AccessContext(viewerID, item)) {
		return nil, lifecycle.ErrPermissionDenied
	}

	if req.Title != nil {
		item.Title = *req.Title
	}
	if req.Description != nil {
		item.Description = *req.Description
	}
	if req.URL != nil {
		item.URL = *req.URL
	}
	if req.ImageURL != nil {
		item.ImageURL = *req.ImageURL
	}
	if req.Price != nil {
		item.Price = req.Price
	}
	if req.Currency != nil {
		item.Currency = *req.Currency
	}
	if req.Quantity != nil {
		item.Quantity = *req.Quantity
	}
	if req.Priority != nil {
		item.Priority = *req.Priority
	}

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to update item: %w", err)
	}

	s.publish(ctx, "item.updated", item.ID, item.WishlistID, viewerID)

	resp := ShapeItem(item, viewerID, view.Membership)
	return &resp, nil
}

// Delete removes an item from either status. Admin, or the item's author.
func (s *ItemService) Delete(ctx context.Context, viewerID, itemID uuid.UUID) error {
	item, view, err := s.load(ctx, viewerID, itemID)
	if err != nil {
		return err
	}
	if err := lifecycle.Authorize(lifecycle.TransitionDelete, item.Status, view.AccessContext(viewerID, item)); err != nil {
		return err
	}

	if err := s.items.Delete(ctx, itemID); err != nil {
		return err
	}

	s.publish(ctx, "item.deleted", itemID, item.WishlistID, viewerID)
	return nil
}

// MarkPurchased transitions WANTED -> PURCHASED and clears any reservations,
// since the reservation sub-state only exists on WANTED items.
func (s *ItemService) MarkPurchased(ctx context.Context, viewerID, itemID uuid.UUID) (*models.ItemResponse, error) {
	item, view, err := s.load(ctx, viewerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Authorize(lifecycle.TransitionMarkPurchased, item.Status, view.AccessContext(viewerID, item)); err != nil {
		return nil, err
	}

	// Clear claims before flipping the status: if the clear fails the item
	// stays WANTED with its reservations intact, and the response below never
	// shows a reservation-free item while rows remain.
	if err := s.items.ClearReservations(ctx, itemID); err != nil {
		return nil, fmt.Errorf("failed to clear reservations: %w", err)
	}
	item.Reservations = nil

	item.Status = lifecycle.NextStatus(lifecycle.TransitionMarkPurchased, item.Status)
	now := time.Now()
	item.PurchasedByID = &viewerID
	item.PurchasedAt = &now

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to mark item purchased: %w", err)
	}

	s.publish(ctx, "item.purchased", item.ID, item.WishlistID, viewerID)

	resp := ShapeItem(item, viewerID, view.Membership)
	return &resp, nil
}

// Restore transitions PURCHASED -> WANTED. Admins only (for a non-group
// wishlist the owner is the only admin, so this covers both gating
// variants). The result reports whether the purchased view just emptied so
// every client flips its filter by the same rule.
func (s *ItemService) Restore(ctx context.Context, viewerID, itemID uuid.UUID) (*RestoreResult, error) {
	item, view, err := s.load(ctx, viewerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Authorize(lifecycle.TransitionRestore, item.Status, view.AccessContext(viewerID, item)); err != nil {
		return nil, err
	}

	item.Status = lifecycle.NextStatus(lifecycle.TransitionRestore, item.Status)
	item.PurchasedByID = nil
	item.PurchasedAt = nil

	if err := s.items.Update(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to restore item: %w", err)
	}

	remaining, err := s.items.CountByStatus(ctx, item.WishlistID, models.ItemStatusPurchased)
	if err != nil {
		return nil, fmt.Errorf("failed to count purchased items: %w", err)
	}

	s.publish(ctx, "item.restored", item.ID, item.WishlistID, viewerID)

	return &RestoreResult{
		Item:               ShapeItem(item, viewerID, view.Membership),
		PurchasedRemaining: remaining,
		NextFilter:         lifecycle.NextFilter(lifecycle.FilterPurchased, int(remaining)),
	}, nil
}

// Reserve places the caller's claim on a WANTED item. Reserving an item the
// caller already holds is a no-op returning the current state; a claim held
// by a different user surfaces as repository.ErrReservationHeld.
func (s *ItemService) Reserve(ctx context.Context, viewerID, itemID uuid.UUID) (*models.ItemResponse, error) {
	item, view, err := s.load(ctx, viewerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Authorize(lifecycle.TransitionReserve, item.Status, view.AccessContext(viewerID, item)); err != nil {
		return nil, err
	}

	reservation := &models.Reservation{
		ID:     uuid.New(),
		ItemID: itemID,
		UserID: viewerID,
	}
	if err := s.items.CreateReservation(ctx, reservation); err != nil {
		return nil, err
	}

	s.publish(ctx, "item.reserved", item.ID, item.WishlistID, viewerID)

	// Re-read so the response reflects the reservation set as stored.
	item, err = s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := ShapeItem(item, viewerID, view.Membership)
	return &resp, nil
}

// Unreserve removes the caller's claim. Removing an absent claim is a no-op.
func (s *ItemService) Unreserve(ctx context.Context, viewerID, itemID uuid.UUID) (*models.ItemResponse, error) {
	item, view, err := s.load(ctx, viewerID, itemID)
	if err != nil {
		return nil, err
	}
	if err := lifecycle.Authorize(lifecycle.TransitionUnreserve, item.Status, view.AccessContext(viewerID, item)); err != nil {
		return nil, err
	}

	if err := s.items.DeleteReservation(ctx, itemID, viewerID); err != nil {
		return nil, fmt.Errorf("failed to remove reservation: %w", err)
	}

	s.publish(ctx, "item.unreserved", item.ID, item.WishlistID, viewerID)

	item, err = s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	resp := ShapeItem(item, viewerID, view.Membership)
	return &resp, nil
}

// Copy duplicates an item into one of the viewer's own wishlists (the heart
// action). The source gate allows it for any item the viewer did not author
// on a list they do not own, and for any item on a group list; the target
// requires add-item permission.
func (s *ItemService) Copy(ctx context.Context, viewerID, itemID uuid.UUID, req models.CopyItemRequest) (*models.ItemResponse, error) {
	item, view, err := s.load(ctx, viewerID, itemID)
	if err != nil {
		return nil, err
	}
	if !access.Can(access.ActionAddToOwnWishlist, view.AccessContext(viewerID, item)) {
		return nil, lifecycle.ErrPermissionDenied
	}

	targetView, err := s.wishlists.ResolveView(ctx, viewerID, req.TargetWishlistID)
	if err != nil {
		return nil, err
	}
	if !access.Can(access.ActionAddItem, targetView.AccessContext(viewerID, nil)) {
		return nil, lifecycle.ErrPermissionDenied
	}

	addedBy := viewerID
	copied := &models.Item{
		ID:          uuid.New(),
		WishlistID:  req.TargetWishlistID,
		Title:       item.Title,
		Description: item.Description,
		URL:         item.URL,
		ImageURL:    item.ImageURL,
		Price:       item.Price,
		Currency:    item.Currency,
		Quantity:    item.Quantity,
		Priority:    item.Priority,
		Status:      models.ItemStatusWanted,
		AddedByID:   &addedBy,
	}
	if err := s.items.Create(ctx, copied); err != nil {
		return nil, fmt.Errorf("failed to copy item: %w", err)
	}

	s.publish(ctx, "item.created", copied.ID, copied.WishlistID, viewerID)

	resp := ShapeItem(copied, viewerID, targetView.Membership)
	return &resp, nil
}

func (s *ItemService) load(ctx context.Context, viewerID, itemID uuid.UUID) (*models.Item, *ViewContext, error) {
	item, err := s.items.GetByID(ctx, itemID)
	if err != nil {
		return nil, nil, err
	}
	view, err := s.wishlists.ResolveView(ctx, viewerID, item.WishlistID)
	if err != nil {
		return nil, nil, err
	}
	return item, view, nil
}

func (s *ItemService) publish(ctx context.Context, eventType string, itemID, wishlistID, actorID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishItemEvent(ctx, eventType, itemID, wishlistID, actorID); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("Failed to publish item event")
	}
}
