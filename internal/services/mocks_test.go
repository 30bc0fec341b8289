package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"wishlist-service/internal/models"
	"wishlist-service/internal/repository"
)

// MockUserRepository is a mock implementation of UserRepositoryInterface
type MockUserRepository struct {
	mock.Mock
}

var _ repository.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	args := m.Called(ctx, externalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Update(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) Search(ctx context.Context, searcherID uuid.UUID, query string, limit int) ([]models.User, error) {
	args := m.Called(ctx, searcherID, query, limit)
	return args.Get(0).([]models.User), args.Error(1)
}

// MockWishlistRepository is a mock implementation of WishlistRepositoryInterface
type MockWishlistRepository struct {
	mock.Mock
}

var _ repository.WishlistRepositoryInterface = (*MockWishlistRepository)(nil)

func (m *MockWishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	args := m.Called(ctx, wishlist)
	return args.Error(0)
}

func (m *MockWishlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Wishlist, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) GetByShareToken(ctx context.Context, token string) (*models.Wishlist, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Wishlist), args.Error(1)
}

func (m *MockWishlistRepository) Update(ctx context.Context, wishlist *models.Wishlist) error {
	args := m.Called(ctx, wishlist)
	return args.Error(0)
}

func (m *MockWishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockWishlistRepository) AddCollaborator(ctx context.Context, collaborator *models.Collaborator) error {
	args := m.Called(ctx, collaborator)
	return args.Error(0)
}

func (m *MockWishlistRepository) RemoveCollaborator(ctx context.Context, wishlistID, userID uuid.UUID) error {
	args := m.Called(ctx, wishlistID, userID)
	return args.Error(0)
}

func (m *MockWishlistRepository) SetShareToken(ctx context.Context, wishlistID uuid.UUID, token string, expiresAt time.Time) error {
	args := m.Called(ctx, wishlistID, token, expiresAt)
	return args.Error(0)
}

func (m *MockWishlistRepository) ClearExpiredShareTokens(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// MockItemRepository is a mock implementation of ItemRepositoryInterface
type MockItemRepository struct {
	mock.Mock
}

var _ repository.ItemRepositoryInterface = (*MockItemRepository)(nil)

func (m *MockItemRepository) Create(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Item), args.Error(1)
}

func (m *MockItemRepository) GetByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]models.Item, error) {
	args := m.Called(ctx, wishlistID)
	return args.Get(0).([]models.Item), args.Error(1)
}

func (m *MockItemRepository) CountByStatus(ctx context.Context, wishlistID uuid.UUID, status string) (int64, error) {
	args := m.Called(ctx, wishlistID, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockItemRepository) Update(ctx context.Context, item *models.Item) error {
	args := m.Called(ctx, item)
	return args.Error(0)
}

func (m *MockItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockItemRepository) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *MockItemRepository) DeleteReservation(ctx context.Context, itemID, userID uuid.UUID) error {
	args := m.Called(ctx, itemID, userID)
	return args.Error(0)
}

func (m *MockItemRepository) ClearReservations(ctx context.Context, itemID uuid.UUID) error {
	args := m.Called(ctx, itemID)
	return args.Error(0)
}

// MockFriendRepository is a mock implementation of FriendRepositoryInterface
type MockFriendRepository struct {
	mock.Mock
}

var _ repository.FriendRepositoryInterface = (*MockFriendRepository)(nil)

func (m *MockFriendRepository) CreateRequest(ctx context.Context, friendship *models.Friendship) error {
	args := m.Called(ctx, friendship)
	return args.Error(0)
}

func (m *MockFriendRepository) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.Friendship, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Friendship), args.Error(1)
}

func (m *MockFriendRepository) GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Friendship, error) {
	args := m.Called(ctx, a, b)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Friendship), args.Error(1)
}

func (m *MockFriendRepository) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}

func (m *MockFriendRepository) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friendship, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Friendship), args.Error(1)
}

func (m *MockFriendRepository) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.Friendship, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]models.Friendship), args.Error(1)
}

func (m *MockFriendRepository) UpdateStatus(ctx context.Context, friendship *models.Friendship, status string) error {
	args := m.Called(ctx, friendship, status)
	if args.Error(0) == nil {
		friendship.Status = status
	}
	return args.Error(0)
}

func (m *MockFriendRepository) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockFriendRepository) CreateBlock(ctx context.Context, block *models.Block) error {
	args := m.Called(ctx, block)
	return args.Error(0)
}

func (m *MockFriendRepository) DeleteBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	args := m.Called(ctx, blockerID, blockedID)
	return args.Error(0)
}

func (m *MockFriendRepository) IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error) {
	args := m.Called(ctx, a, b)
	return args.Bool(0), args.Error(1)
}
