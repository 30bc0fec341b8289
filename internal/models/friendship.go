package models

import (
	"time"

	"github.com/google/uuid"
)

// Friendship statuses.
const (
	FriendshipPending  = "PENDING"
	FriendshipAccepted = "ACCEPTED"
	FriendshipRejected = "REJECTED"
)

// Friendship is a directed request that becomes a symmetric relation once
// accepted. At most one row exists per unordered user pair.
type Friendship struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	RequesterID uuid.UUID `json:"requesterId" gorm:"type:uuid;not null;index:idx_friendships_requester;uniqueIndex:idx_friendships_unique"`
	AddresseeID uuid.UUID `json:"addresseeId" gorm:"type:uuid;not null;index:idx_friendships_addressee;uniqueIndex:idx_friendships_unique"`
	Status      string    `json:"status" gorm:"type:varchar(20);not null;default:'PENDING'"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	Requester *User `json:"requester,omitempty" gorm:"foreignKey:RequesterID"`
	Addressee *User `json:"addressee,omitempty" gorm:"foreignKey:AddresseeID"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}

// Block prevents any interaction between two users. Blocking also removes
// the friendship and any pending request between the pair.
type Block struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	BlockerID uuid.UUID `json:"blockerId" gorm:"type:uuid;not null;index:idx_blocks_blocker;uniqueIndex:idx_blocks_unique"`
	BlockedID uuid.UUID `json:"blockedId" gorm:"type:uuid;not null;uniqueIndex:idx_blocks_unique"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Block) TableName() string {
	return "user_blocks"
}

// SendFriendRequestRequest represents the request body for sending a friend request
type SendFriendRequestRequest struct {
	AddresseeID uuid.UUID `json:"addresseeId" binding:"required"`
}

// FriendRequestResponse represents a pending request in API responses
type FriendRequestResponse struct {
	ID        uuid.UUID     `json:"id"`
	Direction string        `json:"direction"` // "incoming" or "outgoing"
	User      PublicProfile `json:"user"`
	CreatedAt time.Time     `json:"createdAt"`
}

// FriendResponse represents an accepted friend in API responses
type FriendResponse struct {
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Since       time.Time `json:"since"`
}
