package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"wishlist-service/internal/models"
)

// UserCacheTTL is how long profile lookups stay cached in Redis.
const UserCacheTTL = 5 * time.Minute

const userCachePrefix = "wishlist:users:"

// ErrNotFound is returned by repositories when the requested row does not exist.
var ErrNotFound = errors.New("record not found")

// UserRepository handles user data operations with an optional Redis
// read-through cache for profile lookups.
type UserRepository struct {
	db    *gorm.DB
	redis *redis.Client
}

// NewUserRepository creates a new user repository with optional Redis caching
func NewUserRepository(db *gorm.DB, redisClient *redis.Client) *UserRepository {
	return &UserRepository{db: db, redis: redisClient}
}

// GetByID retrieves a user by ID, consulting the cache first.
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	cacheKey := userCachePrefix + id.String()

	if r.redis != nil {
		val, err := r.redis.Get(ctx, cacheKey).Result()
		if err == nil {
			var user models.User
			if err := json.Unmarshal([]byte(val), &user); err == nil {
				return &user, nil
			}
		}
	}

	var user models.User
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	if r.redis != nil {
		if data, marshalErr := json.Marshal(&user); marshalErr == nil {
			r.redis.Set(ctx, cacheKey, data, UserCacheTTL)
		}
	}

	return &user, nil
}

// GetByExternalID retrieves a user by the identity provider's subject claim.
func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*models.User, error) {
	var user models.User
	err := r.db.WithContext(ctx).Where("external_id = ?", externalID).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return &user, nil
}

// Create creates a new user row.
func (r *UserRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

// Update persists profile changes and drops the cached copy.
func (r *UserRepository) Update(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Save(user).Error; err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}
	r.invalidate(ctx, user.ID)
	return nil
}

// Search finds users whose display name or email matches the query,
// excluding the searcher and anyone in a block relation with them.
func (r *UserRepository) Search(ctx context.Context, searcherID uuid.UUID, query string, limit int) ([]models.User, error) {
	if limit <= 0 || limit > 50 {
		limit = 20
	}

	pattern := "%" + query + "%"
	var users []models.User
	err := r.db.WithContext(ctx).
		Where("(display_name ILIKE ? OR email ILIKE ?)", pattern, pattern).
		Where("id <> ?", searcherID).
		Where("id NOT IN (SELECT blocked_id FROM user_blocks WHERE blocker_id = ?)", searcherID).
		Where("id NOT IN (SELECT blocker_id FROM user_blocks WHERE blocked_id = ?)", searcherID).
		Order("display_name ASC").
		Limit(limit).
		Find(&users).Error

	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}
	return users, nil
}

func (r *UserRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.redis != nil {
		r.redis.Del(ctx, userCachePrefix+id.String())
	}
}

// Ping verifies the Redis connection when caching is enabled.
func (r *UserRepository) Ping(ctx context.Context) error {
	if r.redis == nil {
		return fmt.Errorf("redis not configured")
	}
	return r.redis.Ping(ctx).Err()
}
