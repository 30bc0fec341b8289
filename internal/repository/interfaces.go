package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"wishlist-service/internal/models"
)

// UserRepositoryInterface defines the contract for user data operations
type UserRepositoryInterface interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByExternalID(ctx context.Context, externalID string) (*models.User, error)
	Create(ctx context.Context, user *models.User) error
	Update(ctx context.Context, user *models.User) error
	Search(ctx context.Context, searcherID uuid.UUID, query string, limit int) ([]models.User, error)
}

// WishlistRepositoryInterface defines the contract for wishlist data operations
type WishlistRepositoryInterface interface {
	Create(ctx context.Context, wishlist *models.Wishlist) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Wishlist, error)
	GetByShareToken(ctx context.Context, token string) (*models.Wishlist, error)
	GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error)
	Update(ctx context.Context, wishlist *models.Wishlist) error
	Delete(ctx context.Context, id uuid.UUID) error
	AddCollaborator(ctx context.Context, collaborator *models.Collaborator) error
	RemoveCollaborator(ctx context.Context, wishlistID, userID uuid.UUID) error
	SetShareToken(ctx context.Context, wishlistID uuid.UUID, token string, expiresAt time.Time) error
	ClearExpiredShareTokens(ctx context.Context, now time.Time) (int64, error)
}

// ItemRepositoryInterface defines the contract for item data operations
type ItemRepositoryInterface interface {
	Create(ctx context.Context, item *models.Item) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error)
	GetByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]models.Item, error)
	CountByStatus(ctx context.Context, wishlistID uuid.UUID, status string) (int64, error)
	Update(ctx context.Context, item *models.Item) error
	Delete(ctx context.Context, id uuid.UUID) error
	CreateReservation(ctx context.Context, reservation *models.Reservation) error
	DeleteReservation(ctx context.Context, itemID, userID uuid.UUID) error
	ClearReservations(ctx context.Context, itemID uuid.UUID) error
}

// FriendRepositoryInterface defines the contract for friendship data operations
type FriendRepositoryInterface interface {
	CreateRequest(ctx context.Context, friendship *models.Friendship) error
	GetRequestByID(ctx context.Context, id uuid.UUID) (*models.Friendship, error)
	GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Friendship, error)
	AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error)
	ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friendship, error)
	ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.Friendship, error)
	UpdateStatus(ctx context.Context, friendship *models.Friendship, status string) error
	DeleteRequest(ctx context.Context, id uuid.UUID) error
	CreateBlock(ctx context.Context, block *models.Block) error
	DeleteBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error
	IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error)
}

// Interface assertions
var (
	_ UserRepositoryInterface     = (*UserRepository)(nil)
	_ WishlistRepositoryInterface = (*WishlistRepository)(nil)
	_ ItemRepositoryInterface     = (*ItemRepository)(nil)
	_ FriendRepositoryInterface   = (*FriendRepository)(nil)
)
