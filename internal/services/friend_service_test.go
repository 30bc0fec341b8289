package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"wishlist-service/internal/models"
	"wishlist-service/internal/repository"
)

func newFriendService() (*FriendService, *MockFriendRepository) {
	friends := new(MockFriendRepository)
	users := new(MockUserRepository)
	return NewFriendService(friends, users, nil, nil, nil), friends
}

func TestSendRequestToSelf(t *testing.T) {
	service, friends := newFriendService()
	id := uuid.New()

	_, err := service.SendRequest(context.Background(), id, id)

	assert.ErrorIs(t, err, ErrSelfAction)
	friends.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
}

func TestSendRequestBlockedPair(t *testing.T) {
	service, friends := newFriendService()
	a, b := uuid.New(), uuid.New()
	friends.On("IsBlocked", mock.Anything, a, b).Return(true, nil)

	_, err := service.SendRequest(context.Background(), a, b)

	assert.ErrorIs(t, err, ErrBlocked)
	friends.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
}

func TestSendRequestConflictsWithExistingRow(t *testing.T) {
	a, b := uuid.New(), uuid.New()

	cases := []struct {
		name    string
		status  string
		wantErr error
	}{
		{"pending", models.FriendshipPending, ErrRequestPending},
		{"accepted", models.FriendshipAccepted, ErrAlreadyFriends},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			service, friends := newFriendService()
			friends.On("IsBlocked", mock.Anything, a, b).Return(false, nil)
			friends.On("GetBetween", mock.Anything, a, b).Return(&models.Friendship{
				ID:          uuid.New(),
				RequesterID: a,
				AddresseeID: b,
				Status:      tc.status,
			}, nil)

			_, err := service.SendRequest(context.Background(), a, b)

			assert.ErrorIs(t, err, tc.wantErr)
			friends.AssertNotCalled(t, "CreateRequest", mock.Anything, mock.Anything)
		})
	}
}

func TestSendRequestResetsRejectedRow(t *testing.T) {
	service, friends := newFriendService()
	a, b := uuid.New(), uuid.New()
	rejected := &models.Friendship{
		ID:          uuid.New(),
		RequesterID: b,
		AddresseeID: a,
		Status:      models.FriendshipRejected,
	}

	friends.On("IsBlocked", mock.Anything, a, b).Return(false, nil)
	friends.On("GetBetween", mock.Anything, a, b).Return(rejected, nil)
	friends.On("DeleteRequest", mock.Anything, rejected.ID).Return(nil)
	friends.On("CreateRequest", mock.Anything, mock.MatchedBy(func(f *models.Friendship) bool {
		return f.RequesterID == a && f.AddresseeID == b && f.Status == models.FriendshipPending
	})).Return(nil)

	friendship, err := service.SendRequest(context.Background(), a, b)

	assert.NoError(t, err)
	assert.Equal(t, models.FriendshipPending, friendship.Status)
	friends.AssertCalled(t, "DeleteRequest", mock.Anything, rejected.ID)
}

func TestSendRequestFreshPair(t *testing.T) {
	service, friends := newFriendService()
	a, b := uuid.New(), uuid.New()

	friends.On("IsBlocked", mock.Anything, a, b).Return(false, nil)
	friends.On("GetBetween", mock.Anything, a, b).Return(nil, repository.ErrNotFound)
	friends.On("CreateRequest", mock.Anything, mock.Anything).Return(nil)

	friendship, err := service.SendRequest(context.Background(), a, b)

	assert.NoError(t, err)
	assert.Equal(t, a, friendship.RequesterID)
	assert.Equal(t, b, friendship.AddresseeID)
}

func TestAcceptRequestOnlyAddressee(t *testing.T) {
	service, friends := newFriendService()
	requester, addressee := uuid.New(), uuid.New()
	friendship := &models.Friendship{
		ID:          uuid.New(),
		RequesterID: requester,
		AddresseeID: addressee,
		Status:      models.FriendshipPending,
	}
	friends.On("GetRequestByID", mock.Anything, friendship.ID).Return(friendship, nil)

	// The requester cannot accept their own request; the row stays hidden.
	_, err := service.AcceptRequest(context.Background(), requester, friendship.ID)
	assert.ErrorIs(t, err, repository.ErrNotFound)
	friends.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)

	friends.On("UpdateStatus", mock.Anything, friendship, models.FriendshipAccepted).Return(nil)
	accepted, err := service.AcceptRequest(context.Background(), addressee, friendship.ID)
	assert.NoError(t, err)
	assert.NotNil(t, accepted)
}

func TestRejectRequestOnlyAddressee(t *testing.T) {
	service, friends := newFriendService()
	requester, addressee := uuid.New(), uuid.New()
	friendship := &models.Friendship{
		ID:          uuid.New(),
		RequesterID: requester,
		AddresseeID: addressee,
		Status:      models.FriendshipPending,
	}
	friends.On("GetRequestByID", mock.Anything, friendship.ID).Return(friendship, nil)
	friends.On("UpdateStatus", mock.Anything, friendship, models.FriendshipRejected).Return(nil)

	assert.ErrorIs(t, service.RejectRequest(context.Background(), requester, friendship.ID), repository.ErrNotFound)
	assert.NoError(t, service.RejectRequest(context.Background(), addressee, friendship.ID))
}

func TestCancelRequestOnlyRequester(t *testing.T) {
	service, friends := newFriendService()
	requester, addressee := uuid.New(), uuid.New()
	friendship := &models.Friendship{
		ID:          uuid.New(),
		RequesterID: requester,
		AddresseeID: addressee,
		Status:      models.FriendshipPending,
	}
	friends.On("GetRequestByID", mock.Anything, friendship.ID).Return(friendship, nil)
	friends.On("DeleteRequest", mock.Anything, friendship.ID).Return(nil)

	assert.ErrorIs(t, service.CancelRequest(context.Background(), addressee, friendship.ID), repository.ErrNotFound)
	assert.NoError(t, service.CancelRequest(context.Background(), requester, friendship.ID))
}

func TestAcceptNonPendingRequest(t *testing.T) {
	service, friends := newFriendService()
	addressee := uuid.New()
	friendship := &models.Friendship{
		ID:          uuid.New(),
		RequesterID: uuid.New(),
		AddresseeID: addressee,
		Status:      models.FriendshipAccepted,
	}
	friends.On("GetRequestByID", mock.Anything, friendship.ID).Return(friendship, nil)

	_, err := service.AcceptRequest(context.Background(), addressee, friendship.ID)

	assert.ErrorIs(t, err, ErrRequestPending)
}

func TestBlockSelf(t *testing.T) {
	service, friends := newFriendService()
	id := uuid.New()

	assert.ErrorIs(t, service.Block(context.Background(), id, id), ErrSelfAction)
	friends.AssertNotCalled(t, "CreateBlock", mock.Anything, mock.Anything)
}

func TestBlockCreatesBlockRow(t *testing.T) {
	service, friends := newFriendService()
	blocker, blocked := uuid.New(), uuid.New()
	friends.On("CreateBlock", mock.Anything, mock.MatchedBy(func(b *models.Block) bool {
		return b.BlockerID == blocker && b.BlockedID == blocked
	})).Return(nil)

	assert.NoError(t, service.Block(context.Background(), blocker, blocked))
	friends.AssertExpectations(t)
}

func TestListFriendsResolvesOtherSide(t *testing.T) {
	service, friends := newFriendService()
	me := uuid.New()
	alice := &models.User{ID: uuid.New(), DisplayName: "Alice"}
	bob := &models.User{ID: uuid.New(), DisplayName: "Bob"}

	friends.On("ListFriends", mock.Anything, me).Return([]models.Friendship{
		{RequesterID: me, AddresseeID: alice.ID, Addressee: alice, Status: models.FriendshipAccepted},
		{RequesterID: bob.ID, AddresseeID: me, Requester: bob, Status: models.FriendshipAccepted},
	}, nil)

	list, err := service.ListFriends(context.Background(), me)

	assert.NoError(t, err)
	assert.Len(t, list, 2)
	assert.Equal(t, alice.ID, list[0].UserID)
	assert.Equal(t, bob.ID, list[1].UserID)
}
