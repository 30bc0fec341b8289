package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wishlist-service/internal/access"
	"wishlist-service/internal/lifecycle"
	"wishlist-service/internal/models"
	"wishlist-service/internal/repository"
)

type itemServiceFixture struct {
	items     *MockItemRepository
	wishlists *MockWishlistRepository
	friends   *MockFriendRepository
	service   *ItemService
}

func newItemServiceFixture() *itemServiceFixture {
	items := new(MockItemRepository)
	wishlists := new(MockWishlistRepository)
	friends := new(MockFriendRepository)
	wishlistService := NewWishlistService(wishlists, items, friends, nil, nil)
	return &itemServiceFixture{
		items:     items,
		wishlists: wishlists,
		friends:   friends,
		service:   NewItemService(items, wishlistService, nil, nil),
	}
}

// groupFixture models the collaborative scenario: an owner, a member
// collaborator who authored an item, and a second unrelated collaborator.
type groupFixture struct {
	*itemServiceFixture
	ownerID   uuid.UUID
	authorID  uuid.UUID
	otherID   uuid.UUID
	wishlist  *models.Wishlist
	item      *models.Item
}

func newGroupFixture() *groupFixture {
	f := &groupFixture{
		itemServiceFixture: newItemServiceFixture(),
		ownerID:            uuid.New(),
		authorID:           uuid.New(),
		otherID:            uuid.New(),
	}

	f.wishlist = &models.Wishlist{
		ID:                uuid.New(),
		OwnerID:           f.ownerID,
		Title:             "Team gifts",
		Privacy:           models.PrivacyGroup,
		AllowReservations: true,
		Collaborators: []models.Collaborator{
			{UserID: f.authorID, Role: models.CollaboratorRoleMember},
			{UserID: f.otherID, Role: models.CollaboratorRoleMember},
		},
	}

	authorID := f.authorID
	f.item = &models.Item{
		ID:         uuid.New(),
		WishlistID: f.wishlist.ID,
		Title:      "Espresso machine",
		Status:     models.ItemStatusWanted,
		Quantity:   1,
		Priority:   models.PriorityNiceToHave,
		AddedByID:  &authorID,
	}

	f.wishlists.On("GetByID", mock.Anything, f.wishlist.ID).Return(f.wishlist, nil)
	f.items.On("GetByID", mock.Anything, f.item.ID).Return(f.item, nil)
	f.friends.On("IsBlocked", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)
	f.friends.On("AreFriends", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	return f
}

func TestMarkPurchasedByAdmin(t *testing.T) {
	f := newGroupFixture()
	f.items.On("Update", mock.Anything, f.item).Return(nil)
	f.items.On("ClearReservations", mock.Anything, f.item.ID).Return(nil)

	resp, err := f.service.MarkPurchased(context.Background(), f.ownerID, f.item.ID)

	assert.NoError(t, err)
	assert.Equal(t, models.ItemStatusPurchased, resp.Status)
	assert.False(t, resp.DeleteRequiresConfirmation)
	f.items.AssertCalled(t, "Update", mock.Anything, f.item)
}

func TestMarkPurchasedByItemAuthor(t *testing.T) {
	f := newGroupFixture()
	f.items.On("Update", mock.Anything, f.item).Return(nil)
	f.items.On("ClearReservations", mock.Anything, f.item.ID).Return(nil)

	resp, err := f.service.MarkPurchased(context.Background(), f.authorID, f.item.ID)

	assert.NoError(t, err)
	assert.Equal(t, models.ItemStatusPurchased, resp.Status)
}

func TestMarkPurchasedFailedClearLeavesItemWanted(t *testing.T) {
	f := newGroupFixture()
	f.items.On("ClearReservations", mock.Anything, f.item.ID).Return(assert.AnError)

	resp, err := f.service.MarkPurchased(context.Background(), f.ownerID, f.item.ID)

	assert.ErrorIs(t, err, assert.AnError)
	assert.Nil(t, resp)
	// Status must not flip while reservation rows may remain.
	f.items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	assert.Equal(t, models.ItemStatusWanted, f.item.Status)
}

func TestMarkPurchasedDeniedForUnrelatedCollaborator(t *testing.T) {
	f := newGroupFixture()

	resp, err := f.service.MarkPurchased(context.Background(), f.otherID, f.item.ID)

	assert.ErrorIs(t, err, lifecycle.ErrPermissionDenied)
	assert.Nil(t, resp)
	// A denied transition performs no mutation at all.
	f.items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.items.AssertNotCalled(t, "ClearReservations", mock.Anything, mock.Anything)
}

func TestDeleteDeniedPerformsNoMutation(t *testing.T) {
	f := newGroupFixture()

	err := f.service.Delete(context.Background(), f.otherID, f.item.ID)

	assert.ErrorIs(t, err, lifecycle.ErrPermissionDenied)
	f.items.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestDeleteByAuthorFromEitherStatus(t *testing.T) {
	f := newGroupFixture()
	f.item.Status = models.ItemStatusPurchased
	f.items.On("Delete", mock.Anything, f.item.ID).Return(nil)

	err := f.service.Delete(context.Background(), f.authorID, f.item.ID)

	assert.NoError(t, err)
	f.items.AssertCalled(t, "Delete", mock.Anything, f.item.ID)
}

func TestRestoreLastPurchasedFlipsFilter(t *testing.T) {
	f := newGroupFixture()
	f.item.Status = models.ItemStatusPurchased
	f.items.On("Update", mock.Anything, f.item).Return(nil)
	f.items.On("CountByStatus", mock.Anything, f.wishlist.ID, models.ItemStatusPurchased).Return(int64(0), nil)

	result, err := f.service.Restore(context.Background(), f.ownerID, f.item.ID)

	assert.NoError(t, err)
	assert.Equal(t, models.ItemStatusWanted, result.Item.Status)
	assert.Equal(t, int64(0), result.PurchasedRemaining)
	assert.Equal(t, lifecycle.FilterWanted, result.NextFilter)
}

func TestRestoreNonLastKeepsFilter(t *testing.T) {
	f := newGroupFixture()
	f.item.Status = models.ItemStatusPurchased
	f.items.On("Update", mock.Anything, f.item).Return(nil)
	f.items.On("CountByStatus", mock.Anything, f.wishlist.ID, models.ItemStatusPurchased).Return(int64(2), nil)

	result, err := f.service.Restore(context.Background(), f.ownerID, f.item.ID)

	assert.NoError(t, err)
	assert.Equal(t, int64(2), result.PurchasedRemaining)
	assert.Equal(t, lifecycle.FilterPurchased, result.NextFilter)
}

func TestRestoreDeniedForUnrelatedCollaborator(t *testing.T) {
	f := newGroupFixture()
	f.item.Status = models.ItemStatusPurchased

	_, err := f.service.Restore(context.Background(), f.otherID, f.item.ID)

	assert.ErrorIs(t, err, lifecycle.ErrPermissionDenied)
	f.items.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestReserveByFriendOnFriendsOnlyWishlist(t *testing.T) {
	f := newItemServiceFixture()
	ownerID := uuid.New()
	friendID := uuid.New()

	wishlist := &models.Wishlist{
		ID:                uuid.New(),
		OwnerID:           ownerID,
		Privacy:           models.PrivacyFriendsOnly,
		AllowReservations: true,
	}
	item := &models.Item{
		ID:         uuid.New(),
		WishlistID: wishlist.ID,
		Status:     models.ItemStatusWanted,
	}
	reserved := &models.Item{
		ID:           item.ID,
		WishlistID:   wishlist.ID,
		Status:       models.ItemStatusWanted,
		Reservations: []models.Reservation{{ItemID: item.ID, UserID: friendID}},
	}

	f.wishlists.On("GetByID", mock.Anything, wishlist.ID).Return(wishlist, nil)
	f.items.On("GetByID", mock.Anything, item.ID).Return(item, nil).Once()
	f.friends.On("IsBlocked", mock.Anything, friendID, ownerID).Return(false, nil)
	f.friends.On("AreFriends", mock.Anything, friendID, ownerID).Return(true, nil)
	f.items.On("CreateReservation", mock.Anything, mock.MatchedBy(func(r *models.Reservation) bool {
		return r.ItemID == item.ID && r.UserID == friendID
	})).Return(nil)
	f.items.On("GetByID", mock.Anything, item.ID).Return(reserved, nil)

	resp, err := f.service.Reserve(context.Background(), friendID, item.ID)

	assert.NoError(t, err)
	assert.NotNil(t, resp.HasReservations)
	assert.True(t, *resp.HasReservations)
	assert.True(t, *resp.ReservedByMe)
}

func TestReserveDeniedForNonFriend(t *testing.T) {
	f := newItemServiceFixture()
	ownerID := uuid.New()
	strangerID := uuid.New()

	wishlist := &models.Wishlist{
		ID:                uuid.New(),
		OwnerID:           ownerID,
		Privacy:           models.PrivacyPublic,
		AllowReservations: true,
	}
	item := &models.Item{ID: uuid.New(), WishlistID: wishlist.ID, Status: models.ItemStatusWanted}

	f.wishlists.On("GetByID", mock.Anything, wishlist.ID).Return(wishlist, nil)
	f.items.On("GetByID", mock.Anything, item.ID).Return(item, nil)
	f.friends.On("IsBlocked", mock.Anything, strangerID, ownerID).Return(false, nil)
	f.friends.On("AreFriends", mock.Anything, strangerID, ownerID).Return(false, nil)

	_, err := f.service.Reserve(context.Background(), strangerID, item.ID)

	assert.ErrorIs(t, err, lifecycle.ErrPermissionDenied)
	f.items.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything)
}

func TestReserveConflictSurfacesHeldError(t *testing.T) {
	f := newGroupFixture()

	f.items.On("CreateReservation", mock.Anything, mock.Anything).Return(repository.ErrReservationHeld)

	_, err := f.service.Reserve(context.Background(), f.authorID, f.item.ID)

	assert.ErrorIs(t, err, repository.ErrReservationHeld)
}

func TestShapeItemHidesReservationsFromOwner(t *testing.T) {
	ownerID := uuid.New()
	viewerID := uuid.New()
	item := &models.Item{
		ID:           uuid.New(),
		Status:       models.ItemStatusWanted,
		Reservations: []models.Reservation{{UserID: viewerID}},
	}

	ownerView := ShapeItem(item, ownerID, access.Resolve(&models.Wishlist{OwnerID: ownerID}, &ownerID))
	assert.Nil(t, ownerView.HasReservations)
	assert.Nil(t, ownerView.ReservedByMe)

	viewerShape := ShapeItem(item, viewerID, access.Resolve(&models.Wishlist{OwnerID: ownerID}, &viewerID))
	assert.True(t, *viewerShape.HasReservations)
	assert.True(t, *viewerShape.ReservedByMe)

	thirdID := uuid.New()
	thirdShape := ShapeItem(item, thirdID, access.Resolve(&models.Wishlist{OwnerID: ownerID}, &thirdID))
	assert.True(t, *thirdShape.HasReservations)
	assert.False(t, *thirdShape.ReservedByMe)
}

func TestShapeItemDeleteConfirmationTracksStatus(t *testing.T) {
	viewerID := uuid.New()
	m := access.Resolve(&models.Wishlist{OwnerID: uuid.New()}, &viewerID)

	wanted := ShapeItem(&models.Item{Status: models.ItemStatusWanted}, viewerID, m)
	assert.True(t, wanted.DeleteRequiresConfirmation)

	purchased := ShapeItem(&models.Item{Status: models.ItemStatusPurchased}, viewerID, m)
	assert.False(t, purchased.DeleteRequiresConfirmation)
}
