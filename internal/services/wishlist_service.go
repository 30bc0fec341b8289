package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wishlist-service/internal/access"
	"wishlist-service/internal/lifecycle"
	"wishlist-service/internal/models"
	"wishlist-service/internal/repository"
)

// ShareTokenTTL is how long an issued share token stays valid.
const ShareTokenTTL = 30 * 24 * time.Hour

// WishlistService handles wishlist business logic
type WishlistService struct {
	wishlists repository.WishlistRepositoryInterface
	items     repository.ItemRepositoryInterface
	friends   repository.FriendRepositoryInterface
	publisher EventPublisher
	logger    *logrus.Entry
}

// NewWishlistService creates a new wishlist service
func NewWishlistService(
	wishlists repository.WishlistRepositoryInterface,
	items repository.ItemRepositoryInterface,
	friends repository.FriendRepositoryInterface,
	publisher EventPublisher,
	logger *logrus.Logger,
) *WishlistService {
	if logger == nil {
		logger = logrus.New()
	}
	return &WishlistService{
		wishlists: wishlists,
		items:     items,
		friends:   friends,
		publisher: publisher,
		logger:    logger.WithField("component", "wishlist-service"),
	}
}

// ViewContext bundles everything derived for one (wishlist, viewer) pair.
type ViewContext struct {
	Wishlist         *models.Wishlist
	Membership       access.Membership
	FriendsWithOwner bool
}

// AccessContext builds the permission-gate context for an item (or the
// wishlist itself when item is nil).
func (v *ViewContext) AccessContext(viewerID uuid.UUID, item *models.Item) access.Context {
	isAuthor := false
	if item != nil && item.AddedByID != nil {
		isAuthor = *item.AddedByID == viewerID
	}
	return access.Context{
		Membership:        v.Membership,
		Privacy:           v.Wishlist.Privacy,
		AllowReservations: v.Wishlist.AllowReservations,
		IsGroupWishlist:   v.Wishlist.IsGroup(),
		IsItemAuthor:      isAuthor,
		FriendsWithOwner:  v.FriendsWithOwner,
	}
}

// ResolveView loads a wishlist and derives the viewer's relationship to it:
// membership, friendship with the owner, and whether the list is visible at
// all. Blocks make the wishlist invisible in both directions.
func (s *WishlistService) ResolveView(ctx context.Context, viewerID, wishlistID uuid.UUID) (*ViewContext, error) {
	wishlist, err := s.wishlists.GetByID(ctx, wishlistID)
	if err != nil {
		return nil, err
	}
	return s.buildView(ctx, viewerID, wishlist)
}

func (s *WishlistService) buildView(ctx context.Context, viewerID uuid.UUID, wishlist *models.Wishlist) (*ViewContext, error) {
	membership := access.Resolve(wishlist, &viewerID)

	friendsWithOwner := false
	if !membership.Owner() {
		blocked, err := s.friends.IsBlocked(ctx, viewerID, wishlist.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check block state: %w", err)
		}
		if blocked {
			return nil, repository.ErrNotFound
		}

		friendsWithOwner, err = s.friends.AreFriends(ctx, viewerID, wishlist.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check friendship: %w", err)
		}
	}

	view := &ViewContext{
		Wishlist:         wishlist,
		Membership:       membership,
		FriendsWithOwner: friendsWithOwner,
	}

	if !s.visible(view) {
		return nil, ErrNotVisible
	}
	return view, nil
}

// visible applies the privacy level to the resolved relationship.
func (s *WishlistService) visible(view *ViewContext) bool {
	if view.Membership.Owner() || view.Membership.CollaboratorOnly() {
		return true
	}
	switch view.Wishlist.Privacy {
	case models.PrivacyPublic:
		return true
	case models.PrivacyFriendsOnly:
		return view.FriendsWithOwner
	default:
		// PRIVATE and GROUP are member-only; share tokens bypass this
		// through ResolveShareToken.
		return false
	}
}

// List returns all wishlists the user owns or collaborates on.
func (s *WishlistService) List(ctx context.Context, userID uuid.UUID) ([]models.WishlistResponse, error) {
	wishlists, err := s.wishlists.GetByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]models.WishlistResponse, 0, len(wishlists))
	for i := range wishlists {
		membership := access.Resolve(&wishlists[i], &userID)
		response = append(response, s.toResponse(&wishlists[i], membership, nil))
	}
	return response, nil
}

// Create creates a wishlist owned by the caller.
func (s *WishlistService) Create(ctx context.Context, ownerID uuid.UUID, req models.CreateWishlistRequest) (*models.WishlistResponse, error) {
	privacy := req.Privacy
	if privacy == "" {
		privacy = models.PrivacyPrivate
	}
	allowReservations := true
	if req.AllowReservations != nil {
		allowReservations = *req.AllowReservations
	}

	wishlist := &models.Wishlist{
		ID:                uuid.New(),
		OwnerID:           ownerID,
		Title:             req.Title,
		Description:       req.Description,
		Privacy:           privacy,
		AllowReservations: allowReservations,
	}
	if err := s.wishlists.Create(ctx, wishlist); err != nil {
		return nil, fmt.Errorf("failed to create wishlist: %w", err)
	}

	s.publish(ctx, "wishlist.created", wishlist.ID, ownerID)

	membership := access.Resolve(wishlist, &ownerID)
	resp := s.toResponse(wishlist, membership, nil)
	return &resp, nil
}

// Get returns the per-viewer view of a wishlist including its items.
func (s *WishlistService) Get(ctx context.Context, viewerID, wishlistID uuid.UUID) (*models.WishlistResponse, error) {
	view, err := s.ResolveView(ctx, viewerID, wishlistID)
	if err != nil {
		return nil, err
	}
	return s.respondWithItems(ctx, viewerID, view)
}

// ResolveShareToken returns the wishlist behind an unexpired share token.
// The token grants read access regardless of privacy level, but a block
// between viewer and owner still makes the wishlist invisible: the token
// bypasses privacy, not blocks.
func (s *WishlistService) ResolveShareToken(ctx context.Context, viewerID uuid.UUID, token string) (*models.WishlistResponse, error) {
	wishlist, err := s.wishlists.GetByShareToken(ctx, token)
	if err != nil {
		return nil, err
	}

	membership := access.Resolve(wishlist, &viewerID)
	friendsWithOwner := false
	if !membership.Owner() {
		blocked, err := s.friends.IsBlocked(ctx, viewerID, wishlist.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check block state: %w", err)
		}
		if blocked {
			return nil, repository.ErrNotFound
		}

		friendsWithOwner, err = s.friends.AreFriends(ctx, viewerID, wishlist.OwnerID)
		if err != nil {
			return nil, fmt.Errorf("failed to check friendship: %w", err)
		}
	}

	view := &ViewContext{Wishlist: wishlist, Membership: membership, FriendsWithOwner: friendsWithOwner}
	return s.respondWithItems(ctx, viewerID, view)
}

// Update applies a partial update. Owner only.
func (s *WishlistService) Update(ctx context.Context, viewerID, wishlistID uuid.UUID, req models.UpdateWishlistRequest) (*models.WishlistResponse, error) {
	view, err := s.ResolveView(ctx, viewerID, wishlistID)
	if err != nil {
		return nil, err
	}
	if !access.Can(access.ActionEditWishlist, view.AccessContext(viewerID, nil)) {
		return nil, lifecycle.ErrPermissionDenied
	}

	wishlist := view.Wishlist
	if req.Title != nil {
		wishlist.Title = *req.Title
	}
	if req.Description != nil {
		wishlist.Description = *req.Description
	}
	if req.Privacy != nil {
		wishlist.Privacy = *req.Privacy
	}
	if req.AllowReservations != nil {
		wishlist.AllowReservations = *req.AllowReservations
	}

	if err := s.wishlists.Update(ctx, wishlist); err != nil {
		return nil, fmt.Errorf("failed to update wishlist: %w", err)
	}

	s.publish(ctx, "wishlist.updated", wishlist.ID, viewerID)

	resp := s.toResponse(wishlist, view.Membership, nil)
	return &resp, nil
}

// Delete removes a wishlist. Owner only.
func (s *WishlistService) Delete(ctx context.Context, viewerID, wishlistID uuid.UUID) error {
	view, err := s.ResolveView(ctx, viewerID, wishlistID)
	if err != nil {
		return err
	}
	if !access.Can(access.ActionDeleteWishlist, view.AccessContext(viewerID, nil)) {
		return lifecycle.ErrPermissionDenied
	}

	if err := s.wishlists.Delete(ctx, wishlistID); err != nil {
		return err
	}

	s.publish(ctx, "wishlist.deleted", wishlistID, viewerID)
	return nil
}

// IssueShareToken mints a fresh share token for the wishlist. Owner only;
// issuing again replaces the previous token.
func (s *WishlistService) IssueShareToken(ctx context.Context, viewerID, wishlistID uuid.UUID) (*models.ShareTokenResponse, error) {
	view, err := s.ResolveView(ctx, viewerID, wishlistID)
	if err != nil {
		return nil, err
	}
	if !view.Membership.Owner() {
		return nil, lifecycle.ErrPermissionDenied
	}

	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return nil, fmt.Errorf("failed to generate share token: %w", err)
	}
	token := hex.EncodeToString(buf)
	expiresAt := time.Now().Add(ShareTokenTTL)

	if err := s.wishlists.SetShareToken(ctx, wishlistID, token, expiresAt); err != nil {
		return nil, fmt.Errorf("failed to store share token: %w", err)
	}

	return &models.ShareTokenResponse{Token: token, ExpiresAt: expiresAt}, nil
}

// AddCollaborator grants a user access to a GROUP wishlist. Admins only.
func (s *WishlistService) AddCollaborator(ctx context.Context, viewerID, wishlistID uuid.UUID, req models.AddCollaboratorRequest) (*models.CollaboratorResponse, error) {
	view, err := s.ResolveView(ctx, viewerID, wishlistID)
	if err != nil {
		return nil, err
	}
	if !view.Membership.Admin() {
		return nil, lifecycle.ErrPermissionDenied
	}
	if req.UserID == view.Wishlist.OwnerID {
		return nil, ErrSelfAction
	}

	role := req.Role
	if role == "" {
		role = models.CollaboratorRoleMember
	}

	collaborator := &models.Collaborator{
		ID:         uuid.New(),
		WishlistID: wishlistID,
		UserID:     req.UserID,
		Role:       role,
	}
	if err := s.wishlists.AddCollaborator(ctx, collaborator); err != nil {
		return nil, fmt.Errorf("failed to add collaborator: %w", err)
	}

	s.publish(ctx, "wishlist.collaborator_added", wishlistID, viewerID)

	resp := collaborator.ToResponse()
	return &resp, nil
}

// RemoveCollaborator revokes a collaborator's access. Admins may remove
// anyone; a collaborator may remove themselves (leave).
func (s *WishlistService) RemoveCollaborator(ctx context.Context, viewerID, wishlistID, targetID uuid.UUID) error {
	view, err := s.ResolveView(ctx, viewerID, wishlistID)
	if err != nil {
		return err
	}

	if viewerID == targetID {
		if !access.Can(access.ActionLeaveWishlist, view.AccessContext(viewerID, nil)) {
			return lifecycle.ErrPermissionDenied
		}
	} else if !view.Membership.Admin() {
		return lifecycle.ErrPermissionDenied
	}

	if err := s.wishlists.RemoveCollaborator(ctx, wishlistID, targetID); err != nil {
		return err
	}

	s.publish(ctx, "wishlist.collaborator_removed", wishlistID, viewerID)
	return nil
}

// Leave removes the caller from a wishlist they collaborate on.
func (s *WishlistService) Leave(ctx context.Context, viewerID, wishlistID uuid.UUID) error {
	return s.RemoveCollaborator(ctx, viewerID, wishlistID, viewerID)
}

func (s *WishlistService) respondWithItems(ctx context.Context, viewerID uuid.UUID, view *ViewContext) (*models.WishlistResponse, error) {
	items, err := s.items.GetByWishlist(ctx, view.Wishlist.ID)
	if err != nil {
		return nil, err
	}

	resp := s.toResponse(view.Wishlist, view.Membership, items)
	itemResponses := make([]models.ItemResponse, 0, len(items))
	for i := range items {
		itemResponses = append(itemResponses, ShapeItem(&items[i], viewerID, view.Membership))
	}
	resp.Items = itemResponses
	resp.ItemCount = len(itemResponses)
	return &resp, nil
}

func (s *WishlistService) toResponse(wishlist *models.Wishlist, membership access.Membership, items []models.Item) models.WishlistResponse {
	collaborators := make([]models.CollaboratorResponse, 0, len(wishlist.Collaborators))
	for i := range wishlist.Collaborators {
		collaborators = append(collaborators, wishlist.Collaborators[i].ToResponse())
	}

	return models.WishlistResponse{
		ID:                wishlist.ID,
		OwnerID:           wishlist.OwnerID,
		Title:             wishlist.Title,
		Description:       wishlist.Description,
		Privacy:           wishlist.Privacy,
		AllowReservations: wishlist.AllowReservations,
		IsOwner:           membership.Owner(),
		IsCollaborator:    membership.CollaboratorOnly(),
		IsAdmin:           membership.Admin(),
		ItemCount:         len(items),
		Collaborators:     collaborators,
		CreatedAt:         wishlist.CreatedAt,
		UpdatedAt:         wishlist.UpdatedAt,
	}
}

func (s *WishlistService) publish(ctx context.Context, eventType string, wishlistID, actorID uuid.UUID) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishWishlistEvent(ctx, eventType, wishlistID, actorID); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("Failed to publish wishlist event")
	}
}

// ErrNotFoundOrHidden normalizes not-visible to not-found at the API edge so
// private wishlists do not leak their existence.
func ErrNotFoundOrHidden(err error) bool {
	return errors.Is(err, repository.ErrNotFound) || errors.Is(err, ErrNotVisible)
}
