package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"wishlist-service/internal/models"
	"wishlist-service/internal/repository"
)

// PushNotifier sends push notifications through the external push gateway.
// Failures are logged, never propagated: a lost notification must not fail
// the mutation that triggered it.
type PushNotifier interface {
	NotifyFriendRequest(ctx context.Context, to *models.User, from *models.User) error
	NotifyRequestAccepted(ctx context.Context, to *models.User, by *models.User) error
}

// EventPublisher publishes entity-change events to the message bus so other
// screens and services can invalidate by entity id instead of listening on
// an ad hoc global registry.
type EventPublisher interface {
	PublishFriendshipEvent(ctx context.Context, eventType string, friendship *models.Friendship) error
	PublishWishlistEvent(ctx context.Context, eventType string, wishlistID, actorID uuid.UUID) error
	PublishItemEvent(ctx context.Context, eventType string, itemID, wishlistID, actorID uuid.UUID) error
}

// FriendService handles friendship business logic
type FriendService struct {
	friends   repository.FriendRepositoryInterface
	users     repository.UserRepositoryInterface
	notifier  PushNotifier
	publisher EventPublisher
	logger    *logrus.Entry
}

// NewFriendService creates a new friend service
func NewFriendService(
	friends repository.FriendRepositoryInterface,
	users repository.UserRepositoryInterface,
	notifier PushNotifier,
	publisher EventPublisher,
	logger *logrus.Logger,
) *FriendService {
	if logger == nil {
		logger = logrus.New()
	}
	return &FriendService{
		friends:   friends,
		users:     users,
		notifier:  notifier,
		publisher: publisher,
		logger:    logger.WithField("component", "friend-service"),
	}
}

// ListFriends returns the caller's accepted friends.
func (s *FriendService) ListFriends(ctx context.Context, userID uuid.UUID) ([]models.FriendResponse, error) {
	friendships, err := s.friends.ListFriends(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]models.FriendResponse, 0, len(friendships))
	for i := range friendships {
		other := friendships[i].Addressee
		if friendships[i].AddresseeID == userID {
			other = friendships[i].Requester
		}
		if other == nil {
			continue
		}
		response = append(response, models.FriendResponse{
			UserID:      other.ID,
			DisplayName: other.DisplayName,
			AvatarURL:   other.AvatarURL,
			Since:       friendships[i].UpdatedAt,
		})
	}
	return response, nil
}

// ListRequests returns the caller's pending requests, both directions.
func (s *FriendService) ListRequests(ctx context.Context, userID uuid.UUID) ([]models.FriendRequestResponse, error) {
	friendships, err := s.friends.ListPendingRequests(ctx, userID)
	if err != nil {
		return nil, err
	}

	response := make([]models.FriendRequestResponse, 0, len(friendships))
	for i := range friendships {
		f := &friendships[i]
		direction := "incoming"
		other := f.Requester
		if f.RequesterID == userID {
			direction = "outgoing"
			other = f.Addressee
		}
		if other == nil {
			continue
		}
		response = append(response, models.FriendRequestResponse{
			ID:        f.ID,
			Direction: direction,
			User:      other.ToPublicProfile(false, direction == "outgoing"),
			CreatedAt: f.CreatedAt,
		})
	}
	return response, nil
}

// SendRequest creates a pending friend request from the caller to the
// addressee. A previously rejected pair may try again; an existing pending
// or accepted row conflicts.
func (s *FriendService) SendRequest(ctx context.Context, requesterID, addresseeID uuid.UUID) (*models.Friendship, error) {
	if requesterID == addresseeID {
		return nil, ErrSelfAction
	}

	blocked, err := s.friends.IsBlocked(ctx, requesterID, addresseeID)
	if err != nil {
		return nil, fmt.Errorf("failed to check block state: %w", err)
	}
	if blocked {
		return nil, ErrBlocked
	}

	existing, err := s.friends.GetBetween(ctx, requesterID, addresseeID)
	if err != nil && !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing friendship: %w", err)
	}
	if existing != nil {
		switch existing.Status {
		case models.FriendshipAccepted:
			return nil, ErrAlreadyFriends
		case models.FriendshipPending:
			return nil, ErrRequestPending
		default:
			// Rejected earlier; clear the row so the pair can start over.
			if err := s.friends.DeleteRequest(ctx, existing.ID); err != nil {
				return nil, fmt.Errorf("failed to reset rejected request: %w", err)
			}
		}
	}

	friendship := &models.Friendship{
		ID:          uuid.New(),
		RequesterID: requesterID,
		AddresseeID: addresseeID,
		Status:      models.FriendshipPending,
	}
	if err := s.friends.CreateRequest(ctx, friendship); err != nil {
		return nil, fmt.Errorf("failed to create friend request: %w", err)
	}

	s.publish(ctx, "friendship.requested", friendship)
	s.notifyRequest(ctx, friendship)

	return friendship, nil
}

// AcceptRequest accepts a pending request. Only the addressee may accept.
func (s *FriendService) AcceptRequest(ctx context.Context, userID, requestID uuid.UUID) (*models.Friendship, error) {
	friendship, err := s.friends.GetRequestByID(ctx, requestID)
	if err != nil {
		return nil, err
	}
	if friendship.AddresseeID != userID {
		return nil, repository.ErrNotFound
	}
	if friendship.Status != models.FriendshipPending {
		return nil, ErrRequestPending
	}

	if err := s.friends.UpdateStatus(ctx, friendship, models.FriendshipAccepted); err != nil {
		return nil, fmt.Errorf("failed to accept request: %w", err)
	}

	s.publish(ctx, "friendship.accepted", friendship)
	s.notifyAccepted(ctx, friendship)

	return friendship, nil
}

// RejectRequest rejects a pending request. Only the addressee may reject.
func (s *FriendService) RejectRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	friendship, err := s.friends.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if friendship.AddresseeID != userID {
		return repository.ErrNotFound
	}
	if friendship.Status != models.FriendshipPending {
		return ErrRequestPending
	}

	if err := s.friends.UpdateStatus(ctx, friendship, models.FriendshipRejected); err != nil {
		return fmt.Errorf("failed to reject request: %w", err)
	}

	s.publish(ctx, "friendship.rejected", friendship)
	return nil
}

// CancelRequest withdraws a pending request. Only the requester may cancel.
func (s *FriendService) CancelRequest(ctx context.Context, userID, requestID uuid.UUID) error {
	friendship, err := s.friends.GetRequestByID(ctx, requestID)
	if err != nil {
		return err
	}
	if friendship.RequesterID != userID {
		return repository.ErrNotFound
	}
	if friendship.Status != models.FriendshipPending {
		return ErrRequestPending
	}

	if err := s.friends.DeleteRequest(ctx, friendship.ID); err != nil {
		return fmt.Errorf("failed to cancel request: %w", err)
	}

	s.publish(ctx, "friendship.cancelled", friendship)
	return nil
}

// Block places a block on the target, removing any friendship between the pair.
func (s *FriendService) Block(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	if blockerID == blockedID {
		return ErrSelfAction
	}

	block := &models.Block{
		ID:        uuid.New(),
		BlockerID: blockerID,
		BlockedID: blockedID,
	}
	if err := s.friends.CreateBlock(ctx, block); err != nil {
		return fmt.Errorf("failed to block user: %w", err)
	}
	return nil
}

// Unblock removes a block the caller placed.
func (s *FriendService) Unblock(ctx context.Context, blockerID, blockedID uuid.UUID) error {
	return s.friends.DeleteBlock(ctx, blockerID, blockedID)
}

func (s *FriendService) publish(ctx context.Context, eventType string, friendship *models.Friendship) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishFriendshipEvent(ctx, eventType, friendship); err != nil {
		s.logger.WithError(err).WithField("event", eventType).Warn("Failed to publish friendship event")
	}
}

func (s *FriendService) notifyRequest(ctx context.Context, friendship *models.Friendship) {
	if s.notifier == nil {
		return
	}
	to, err := s.users.GetByID(ctx, friendship.AddresseeID)
	if err != nil {
		s.logger.WithError(err).Warn("Failed to load addressee for notification")
		return
	}
	from, err := s.users.GetByID(ctx, friendship.RequesterID)
	if err != nil {
		return
	}
	if err := s.notifier.NotifyFriendRequest(ctx, to, from); err != nil {
		s.logger.WithError(err).Warn("Failed to send friend request notification")
	}
}

func (s *FriendService) notifyAccepted(ctx context.Context, friendship *models.Friendship) {
	if s.notifier == nil {
		return
	}
	to, err := s.users.GetByID(ctx, friendship.RequesterID)
	if err != nil {
		return
	}
	by, err := s.users.GetByID(ctx, friendship.AddresseeID)
	if err != nil {
		return
	}
	if err := s.notifier.NotifyRequestAccepted(ctx, to, by); err != nil {
		s.logger.WithError(err).Warn("Failed to send acceptance notification")
	}
}
