// Package events publishes entity-change events to NATS. Cross-screen and
// cross-service refresh subscribes here and invalidates by entity id,
// replacing the ad hoc listener registries the mobile clients used to carry.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"

	"wishlist-service/internal/models"
)

// Subject prefixes. Concrete subjects are "<prefix>.<event>", e.g.
// "wishlist.item.reserved" or "friendship.accepted".
const (
	SubjectWishlists = "wishlist"
	SubjectFriends   = "friendship"
)

// Event is the wire shape of every published event.
type Event struct {
	Type       string    `json:"type"`
	EntityID   string    `json:"entityId"`
	WishlistID string    `json:"wishlistId,omitempty"`
	ActorID    string    `json:"actorId,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}

// Publisher publishes domain events over a NATS connection.
type Publisher struct {
	conn   *nats.Conn
	logger *logrus.Entry
}

// NewPublisher connects to NATS. The URL comes from NATS_URL.
func NewPublisher(logger *logrus.Logger) (*Publisher, error) {
	if logger == nil {
		logger = logrus.New()
	}

	natsURL := os.Getenv("NATS_URL")
	if natsURL == "" {
		natsURL = nats.DefaultURL
	}

	conn, err := nats.Connect(natsURL,
		nats.Name("wishlist-service"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to NATS: %w", err)
	}

	return &Publisher{
		conn:   conn,
		logger: logger.WithField("component", "events"),
	}, nil
}

// Close drains and closes the NATS connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		if err := p.conn.Drain(); err != nil {
			p.logger.WithError(err).Warn("Failed to drain NATS connection")
		}
	}
}

// PublishWishlistEvent publishes a wishlist-level event.
func (p *Publisher) PublishWishlistEvent(ctx context.Context, eventType string, wishlistID, actorID uuid.UUID) error {
	return p.publish(ctx, SubjectWishlists+"."+eventType, Event{
		Type:       eventType,
		EntityID:   wishlistID.String(),
		WishlistID: wishlistID.String(),
		ActorID:    actorID.String(),
		OccurredAt: time.Now().UTC(),
	})
}

// PublishItemEvent publishes an item-level event, carrying the parent
// wishlist id so subscribers can invalidate the containing list.
func (p *Publisher) PublishItemEvent(ctx context.Context, eventType string, itemID, wishlistID, actorID uuid.UUID) error {
	return p.publish(ctx, SubjectWishlists+"."+eventType, Event{
		Type:       eventType,
		EntityID:   itemID.String(),
		WishlistID: wishlistID.String(),
		ActorID:    actorID.String(),
		OccurredAt: time.Now().UTC(),
	})
}

// PublishFriendshipEvent publishes a friendship lifecycle event.
func (p *Publisher) PublishFriendshipEvent(ctx context.Context, eventType string, friendship *models.Friendship) error {
	return p.publish(ctx, SubjectFriends+"."+eventType, Event{
		Type:       eventType,
		EntityID:   friendship.ID.String(),
		ActorID:    friendship.RequesterID.String(),
		OccurredAt: time.Now().UTC(),
	})
}

func (p *Publisher) publish(_ context.Context, subject string, event Event) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}
	if err := p.conn.Publish(subject, data); err != nil {
		return fmt.Errorf("failed to publish %s: %w", subject, err)
	}
	p.logger.WithFields(logrus.Fields{"subject": subject, "entity": event.EntityID}).Debug("Event published")
	return nil
}
