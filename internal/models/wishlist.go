package models

import (
	"time"

	"github.com/google/uuid"
)

// Privacy levels for a wishlist.
const (
	PrivacyPrivate     = "PRIVATE"
	PrivacyFriendsOnly = "FRIENDS_ONLY"
	PrivacyPublic      = "PUBLIC"
	PrivacyGroup       = "GROUP"
)

// Collaborator roles.
const (
	CollaboratorRoleAdmin  = "ADMIN"
	CollaboratorRoleMember = "MEMBER"
)

// Wishlist represents a list of giftable items owned by exactly one user.
// Collaborators are only meaningful on GROUP lists, but rows on other
// privacy levels are tolerated and simply ignored by the access rules.
type Wishlist struct {
	ID      uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	OwnerID uuid.UUID `json:"ownerId" gorm:"type:uuid;not null;index:idx_wishlists_owner_id"`

	Title       string `json:"title" gorm:"type:varchar(100);not null"`
	Description string `json:"description" gorm:"type:text"`
	Privacy     string `json:"privacy" gorm:"type:varchar(20);not null;default:'PRIVATE'"`

	AllowReservations bool `json:"allowReservations" gorm:"default:true"`

	ShareToken          *string    `json:"-" gorm:"type:varchar(64);uniqueIndex:idx_wishlists_share_token"`
	ShareTokenExpiresAt *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Collaborators []Collaborator `json:"collaborators,omitempty" gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
	Items         []Item         `json:"items,omitempty" gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Wishlist) TableName() string {
	return "wishlists"
}

// IsGroup reports whether collaborator-based access rules apply.
func (w *Wishlist) IsGroup() bool {
	return w.Privacy == PrivacyGroup
}

// Collaborator grants a non-owner user write access to a GROUP wishlist.
type Collaborator struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	WishlistID uuid.UUID `json:"wishlistId" gorm:"type:uuid;not null;index:idx_collaborators_wishlist_id;uniqueIndex:idx_collaborators_unique"`
	UserID     uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_collaborators_unique"`
	Role       string    `json:"role" gorm:"type:varchar(20);not null;default:'MEMBER'"`
	CreatedAt  time.Time `json:"createdAt"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

// TableName specifies the table name for GORM
func (Collaborator) TableName() string {
	return "wishlist_collaborators"
}

// CreateWishlistRequest represents the request body for creating a wishlist
type CreateWishlistRequest struct {
	Title             string `json:"title" binding:"required,min=1,max=100"`
	Description       string `json:"description"`
	Privacy           string `json:"privacy" binding:"omitempty,oneof=PRIVATE FRIENDS_ONLY PUBLIC GROUP"`
	AllowReservations *bool  `json:"allowReservations"`
}

// UpdateWishlistRequest represents the request body for updating a wishlist
type UpdateWishlistRequest struct {
	Title             *string `json:"title" binding:"omitempty,min=1,max=100"`
	Description       *string `json:"description"`
	Privacy           *string `json:"privacy" binding:"omitempty,oneof=PRIVATE FRIENDS_ONLY PUBLIC GROUP"`
	AllowReservations *bool   `json:"allowReservations"`
}

// AddCollaboratorRequest represents the request body for adding a collaborator
type AddCollaboratorRequest struct {
	UserID uuid.UUID `json:"userId" binding:"required"`
	Role   string    `json:"role" binding:"omitempty,oneof=ADMIN MEMBER"`
}

// WishlistResponse is the per-viewer view of a wishlist. The permission
// fields are derived for the requesting viewer and never persisted.
type WishlistResponse struct {
	ID                uuid.UUID              `json:"id"`
	OwnerID           uuid.UUID              `json:"ownerId"`
	Title             string                 `json:"title"`
	Description       string                 `json:"description,omitempty"`
	Privacy           string                 `json:"privacy"`
	AllowReservations bool                   `json:"allowReservations"`
	IsOwner           bool                   `json:"isOwner"`
	IsCollaborator    bool                   `json:"isCollaborator"`
	IsAdmin           bool                   `json:"isAdmin"`
	ItemCount         int                    `json:"itemCount"`
	Collaborators     []CollaboratorResponse `json:"collaborators,omitempty"`
	Items             []ItemResponse         `json:"items,omitempty"`
	CreatedAt         time.Time              `json:"createdAt"`
	UpdatedAt         time.Time              `json:"updatedAt"`
}

// CollaboratorResponse represents a collaborator in API responses
type CollaboratorResponse struct {
	UserID      uuid.UUID `json:"userId"`
	DisplayName string    `json:"displayName,omitempty"`
	Role        string    `json:"role"`
	AddedAt     time.Time `json:"addedAt"`
}

// ToResponse converts a Collaborator to a CollaboratorResponse
func (c *Collaborator) ToResponse() CollaboratorResponse {
	resp := CollaboratorResponse{
		UserID:  c.UserID,
		Role:    c.Role,
		AddedAt: c.CreatedAt,
	}
	if c.User != nil {
		resp.DisplayName = c.User.DisplayName
	}
	return resp
}

// ShareTokenResponse represents an issued share token
type ShareTokenResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}
