package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"wishlist-service/internal/models"
)

// ErrReservationHeld is returned when a different user already holds a
// reservation on the item. A duplicate insert by the *same* user is not an
// error; CreateReservation absorbs it.
var ErrReservationHeld = errors.New("item already reserved")

const pgUniqueViolation = "23505"

// ItemRepository handles item and reservation data operations
type ItemRepository struct {
	db *gorm.DB
}

// NewItemRepository creates a new item repository
func NewItemRepository(db *gorm.DB) *ItemRepository {
	return &ItemRepository{db: db}
}

// Create creates a new item
func (r *ItemRepository) Create(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Create(item).Error
}

// GetByID retrieves an item with its reservations.
func (r *ItemRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.Item, error) {
	var item models.Item
	err := r.db.WithContext(ctx).
		Preload("Reservations").
		Where("id = ?", id).
		First(&item).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return &item, nil
}

// GetByWishlist retrieves all items of a wishlist, newest first.
func (r *ItemRepository) GetByWishlist(ctx context.Context, wishlistID uuid.UUID) ([]models.Item, error) {
	var items []models.Item
	err := r.db.WithContext(ctx).
		Preload("Reservations").
		Where("wishlist_id = ?", wishlistID).
		Order("created_at DESC").
		Find(&items).Error

	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}

	return items, nil
}

// CountByStatus counts a wishlist's items in the given status.
func (r *ItemRepository) CountByStatus(ctx context.Context, wishlistID uuid.UUID, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Item{}).
		Where("wishlist_id = ? AND status = ?", wishlistID, status).
		Count(&count).Error
	return count, err
}

// Update persists item changes.
func (r *ItemRepository) Update(ctx context.Context, item *models.Item) error {
	return r.db.WithContext(ctx).Save(item).Error
}

// Delete removes an item; its reservations cascade.
func (r *ItemRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Item{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateReservation inserts the caller's claim on an item. The whole
// operation runs in a transaction holding a row lock on the item, so two
// users racing for the same item serialize: the second sees the first's
// claim and gets ErrReservationHeld. The unique index on (item_id, user_id)
// additionally makes the operation idempotent per user: a repeat insert by
// the same holder is absorbed as a no-op returning the existing claim.
func (r *ItemRepository) CreateReservation(ctx context.Context, reservation *models.Reservation) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var item models.Item
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("id = ?", reservation.ItemID).
			First(&item).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrNotFound
			}
			return err
		}

		var held int64
		err = tx.Model(&models.Reservation{}).
			Where("item_id = ? AND user_id <> ?", reservation.ItemID, reservation.UserID).
			Count(&held).Error
		if err != nil {
			return err
		}
		if held > 0 {
			return ErrReservationHeld
		}

		if err := tx.Create(reservation).Error; err != nil {
			var pqErr *pq.Error
			if errors.As(err, &pqErr) && string(pqErr.Code) == pgUniqueViolation {
				// Same caller already holds the claim.
				var existing models.Reservation
				readErr := tx.
					Where("item_id = ? AND user_id = ?", reservation.ItemID, reservation.UserID).
					First(&existing).Error
				if readErr == nil {
					*reservation = existing
					return nil
				}
				return ErrReservationHeld
			}
			return err
		}

		return nil
	})
}

// DeleteReservation removes the caller's claim. Removing a claim that does
// not exist is a no-op, keeping unreserve idempotent as well.
func (r *ItemRepository) DeleteReservation(ctx context.Context, itemID, userID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("item_id = ? AND user_id = ?", itemID, userID).
		Delete(&models.Reservation{}).Error
}

// ClearReservations removes every claim on an item. Called when an item
// leaves the WANTED state.
func (r *ItemRepository) ClearReservations(ctx context.Context, itemID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("item_id = ?", itemID).
		Delete(&models.Reservation{}).Error
}
