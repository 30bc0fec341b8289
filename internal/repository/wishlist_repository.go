package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wishlist-service/internal/models"
)

// WishlistRepository handles wishlist and collaborator data operations
type WishlistRepository struct {
	db *gorm.DB
}

// NewWishlistRepository creates a new wishlist repository
func NewWishlistRepository(db *gorm.DB) *WishlistRepository {
	return &WishlistRepository{db: db}
}

// Create creates a new wishlist
func (r *WishlistRepository) Create(ctx context.Context, wishlist *models.Wishlist) error {
	return r.db.WithContext(ctx).Create(wishlist).Error
}

// GetByID retrieves a wishlist with collaborators. Items are loaded
// separately so their ordering and per-viewer shaping stay in one place.
func (r *WishlistRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Collaborators").
		Preload("Collaborators.User").
		Where("id = ?", id).
		First(&wishlist).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &wishlist, nil
}

// GetByShareToken resolves an unexpired share token to its wishlist.
func (r *WishlistRepository) GetByShareToken(ctx context.Context, token string) (*models.Wishlist, error) {
	var wishlist models.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Collaborators").
		Where("share_token = ? AND (share_token_expires_at IS NULL OR share_token_expires_at > ?)", token, time.Now()).
		First(&wishlist).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &wishlist, nil
}

// GetByUser retrieves all wishlists a user owns or collaborates on.
func (r *WishlistRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]models.Wishlist, error) {
	var wishlists []models.Wishlist
	err := r.db.WithContext(ctx).
		Preload("Collaborators").
		Where("owner_id = ? OR id IN (SELECT wishlist_id FROM wishlist_collaborators WHERE user_id = ?)", userID, userID).
		Order("updated_at DESC").
		Find(&wishlists).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get wishlists: %w", err)
	}

	return wishlists, nil
}

// Update persists wishlist changes.
func (r *WishlistRepository) Update(ctx context.Context, wishlist *models.Wishlist) error {
	return r.db.WithContext(ctx).Save(wishlist).Error
}

// Delete removes a wishlist; collaborators, items and reservations cascade.
func (r *WishlistRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Wishlist{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// AddCollaborator inserts a collaborator row. The unique index rejects a
// second row for the same wishlist+user pair.
func (r *WishlistRepository) AddCollaborator(ctx context.Context, collaborator *models.Collaborator) error {
	return r.db.WithContext(ctx).Create(collaborator).Error
}

// RemoveCollaborator deletes a collaborator row.
func (r *WishlistRepository) RemoveCollaborator(ctx context.Context, wishlistID, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("wishlist_id = ? AND user_id = ?", wishlistID, userID).
		Delete(&models.Collaborator{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// SetShareToken stores a freshly issued share token and its expiry.
func (r *WishlistRepository) SetShareToken(ctx context.Context, wishlistID uuid.UUID, token string, expiresAt time.Time) error {
	return r.db.WithContext(ctx).
		Model(&models.Wishlist{}).
		Where("id = ?", wishlistID).
		Updates(map[string]interface{}{
			"share_token":            token,
			"share_token_expires_at": expiresAt,
		}).Error
}

// ClearExpiredShareTokens nulls out tokens past their expiry. Used by the
// cleanup worker; returns the number of rows touched.
func (r *WishlistRepository) ClearExpiredShareTokens(ctx context.Context, now time.Time) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&models.Wishlist{}).
		Where("share_token IS NOT NULL AND share_token_expires_at < ?", now).
		Updates(map[string]interface{}{
			"share_token":            nil,
			"share_token_expires_at": nil,
		})
	return result.RowsAffected, result.Error
}
