package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"wishlist-service/internal/models"
)

// FriendRepository handles friendship and block data operations
type FriendRepository struct {
	db *gorm.DB
}

// NewFriendRepository creates a new friend repository
func NewFriendRepository(db *gorm.DB) *FriendRepository {
	return &FriendRepository{db: db}
}

// CreateRequest inserts a pending friend request.
func (r *FriendRepository) CreateRequest(ctx context.Context, friendship *models.Friendship) error {
	return r.db.WithContext(ctx).Create(friendship).Error
}

// GetRequestByID retrieves a friendship row by ID.
func (r *FriendRepository) GetRequestByID(ctx context.Context, id uuid.UUID) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

// GetBetween retrieves the friendship row for an unordered user pair, in
// either direction, regardless of status.
func (r *FriendRepository) GetBetween(ctx context.Context, a, b uuid.UUID) (*models.Friendship, error) {
	var friendship models.Friendship
	err := r.db.WithContext(ctx).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)", a, b, b, a).
		First(&friendship).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &friendship, nil
}

// AreFriends reports whether an accepted friendship exists between the pair.
func (r *FriendRepository) AreFriends(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Friendship{}).
		Where("status = ?", models.FriendshipAccepted).
		Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}

// ListFriends retrieves all accepted friendships involving the user, with
// both profiles preloaded.
func (r *FriendRepository) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Addressee").
		Where("status = ?", models.FriendshipAccepted).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Order("updated_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list friends: %w", err)
	}
	return friendships, nil
}

// ListPendingRequests retrieves pending requests involving the user, both
// incoming and outgoing.
func (r *FriendRepository) ListPendingRequests(ctx context.Context, userID uuid.UUID) ([]models.Friendship, error) {
	var friendships []models.Friendship
	err := r.db.WithContext(ctx).
		Preload("Requester").
		Preload("Addressee").
		Where("status = ?", models.FriendshipPending).
		Where("requester_id = ? OR addressee_id = ?", userID, userID).
		Order("created_at DESC").
		Find(&friendships).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list pending requests: %w", err)
	}
	return friendships, nil
}

// UpdateStatus transitions a friendship row to a new status.
func (r *FriendRepository) UpdateStatus(ctx context.Context, friendship *models.Friendship, status string) error {
	friendship.Status = status
	return r.db.WithContext(ctx).
		Model(friendship).
		Update("status", status).Error
}

// DeleteRequest removes a friendship row (cancel, unfriend, or cleanup on block).
func (r *FriendRepository) DeleteRequest(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id).Delete(&models.Friendship{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// CreateBlock inserts a block and removes any friendship rows between the
// pair in the same transaction.
func (r *FriendRepository) CreateBlock(ctx context.Context, block *models.Block) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(block).Error; err != nil {
			return err
		}
		return tx.
			Where("(requester_id = ? AND addressee_id = ?) OR (requester_id = ? AND addressee_id = ?)",
				block.BlockerID, block.BlockedID, block.BlockedID, block.BlockerID).
			Delete(&models.Friendship{}).Error
	})
}

// DeleteBlock removes a block placed by the blocker.
func (r *FriendRepository) DeleteBlock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	result := r.db.WithContext(ctx).
		Where("blocker_id = ? AND blocked_id = ?", blockerID, blockedID).
		Delete(&models.Block{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// IsBlocked reports whether a block exists in either direction.
func (r *FriendRepository) IsBlocked(ctx context.Context, a, b uuid.UUID) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Block{}).
		Where("(blocker_id = ? AND blocked_id = ?) OR (blocker_id = ? AND blocked_id = ?)", a, b, b, a).
		Count(&count).Error
	return count > 0, err
}
