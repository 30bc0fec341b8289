package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"wishlist-service/internal/models"
	"wishlist-service/internal/repository"
)

// UserService handles profile and user-search business logic
type UserService struct {
	users   repository.UserRepositoryInterface
	friends repository.FriendRepositoryInterface
}

// NewUserService creates a new user service
func NewUserService(users repository.UserRepositoryInterface, friends repository.FriendRepositoryInterface) *UserService {
	return &UserService{users: users, friends: friends}
}

// EnsureUser resolves the identity provider's subject to a local user row,
// provisioning one on first contact.
func (s *UserService) EnsureUser(ctx context.Context, externalID, email, displayName string) (*models.User, error) {
	user, err := s.users.GetByExternalID(ctx, externalID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to resolve user: %w", err)
	}

	if displayName == "" {
		if at := strings.Index(email, "@"); at > 0 {
			displayName = email[:at]
		} else {
			displayName = "New user"
		}
	}

	user = &models.User{
		ID:          uuid.New(),
		ExternalID:  externalID,
		Email:       email,
		DisplayName: displayName,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to provision user: %w", err)
	}
	return user, nil
}

// GetProfile returns the caller's own profile.
func (s *UserService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile applies a partial profile update (currency, push token,
// display name, notification preferences).
func (s *UserService) UpdateProfile(ctx context.Context, userID uuid.UUID, req models.UpdateProfileRequest) (*models.User, error) {
	user, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.DisplayName != nil {
		user.DisplayName = *req.DisplayName
	}
	if req.AvatarURL != nil {
		user.AvatarURL = *req.AvatarURL
	}
	if req.Currency != nil {
		user.Currency = strings.ToUpper(*req.Currency)
	}
	if req.PushToken != nil {
		user.PushToken = *req.PushToken
	}
	if req.NotificationPrefs != nil {
		user.NotificationPrefs = req.NotificationPrefs
	}

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// GetPublicProfile returns the target user's public view for the given
// viewer, including the friendship boolean. A block in either direction
// makes the target invisible.
func (s *UserService) GetPublicProfile(ctx context.Context, viewerID, targetID uuid.UUID) (*models.PublicProfile, error) {
	target, err := s.users.GetByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if viewerID != targetID {
		blocked, err := s.friends.IsBlocked(ctx, viewerID, targetID)
		if err != nil {
			return nil, fmt.Errorf("failed to check block state: %w", err)
		}
		if blocked {
			return nil, repository.ErrNotFound
		}
	}

	isFriend := false
	requestSent := false
	if viewerID != targetID {
		friendship, err := s.friends.GetBetween(ctx, viewerID, targetID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check friendship: %w", err)
		}
		if friendship != nil {
			isFriend = friendship.Status == models.FriendshipAccepted
			requestSent = friendship.Status == models.FriendshipPending && friendship.RequesterID == viewerID
		}
	}

	profile := target.ToPublicProfile(isFriend, requestSent)
	return &profile, nil
}

// Search finds users by display name or email fragment. The 300ms debounce
// and the empty-query short-circuit are client concerns; the server just
// refuses queries too short to be selective.
func (s *UserService) Search(ctx context.Context, searcherID uuid.UUID, query string, limit int) ([]models.PublicProfile, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []models.PublicProfile{}, nil
	}

	users, err := s.users.Search(ctx, searcherID, query, limit)
	if err != nil {
		return nil, err
	}

	profiles := make([]models.PublicProfile, 0, len(users))
	for i := range users {
		friendship, err := s.friends.GetBetween(ctx, searcherID, users[i].ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("failed to check friendship: %w", err)
		}
		isFriend := friendship != nil && friendship.Status == models.FriendshipAccepted
		requestSent := friendship != nil && friendship.Status == models.FriendshipPending && friendship.RequesterID == searcherID
		profiles = append(profiles, users[i].ToPublicProfile(isFriend, requestSent))
	}

	return profiles, nil
}
