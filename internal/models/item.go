package models

import (
	"time"

	"github.com/google/uuid"
)

// Item statuses. Status and reservation are orthogonal: a WANTED item may
// carry reservations; a PURCHASED item never does (reservations are cleared
// on purchase).
const (
	ItemStatusWanted    = "WANTED"
	ItemStatusPurchased = "PURCHASED"
)

// Item priorities.
const (
	PriorityMustHave   = "MUST_HAVE"
	PriorityNiceToHave = "NICE_TO_HAVE"
)

// Item represents a single giftable entry belonging to exactly one wishlist.
// AddedByID is nullable: items imported before collaborator tracking existed
// have no recorded author.
type Item struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	WishlistID uuid.UUID `json:"wishlistId" gorm:"type:uuid;not null;index:idx_items_wishlist_id"`

	Title       string   `json:"title" gorm:"type:varchar(200);not null"`
	Description string   `json:"description" gorm:"type:text"`
	URL         string   `json:"url" gorm:"type:varchar(1000)"`
	ImageURL    string   `json:"imageUrl" gorm:"type:varchar(1000)"`
	Price       *float64 `json:"price" gorm:"type:decimal(10,2)"`
	Currency    string   `json:"currency" gorm:"type:varchar(3)"`
	Quantity    int      `json:"quantity" gorm:"default:1"`

	Priority string `json:"priority" gorm:"type:varchar(20);not null;default:'NICE_TO_HAVE'"`
	Status   string `json:"status" gorm:"type:varchar(20);not null;default:'WANTED';index:idx_items_status"`

	AddedByID     *uuid.UUID `json:"addedById" gorm:"type:uuid"`
	PurchasedByID *uuid.UUID `json:"-" gorm:"type:uuid"`
	PurchasedAt   *time.Time `json:"-"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`

	// Relationships
	Reservations []Reservation `json:"-" gorm:"foreignKey:ItemID;constraint:OnDelete:CASCADE"`
}

// TableName specifies the table name for GORM
func (Item) TableName() string {
	return "wishlist_items"
}

// Reservation is a per-item, per-user claim that the item will be gifted.
// The unique index makes reserve naturally idempotent: a second insert by
// the same holder conflicts instead of creating a duplicate record.
type Reservation struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ItemID    uuid.UUID `json:"itemId" gorm:"type:uuid;not null;index:idx_reservations_item_id;uniqueIndex:idx_reservations_unique"`
	UserID    uuid.UUID `json:"userId" gorm:"type:uuid;not null;uniqueIndex:idx_reservations_unique"`
	CreatedAt time.Time `json:"createdAt"`
}

// TableName specifies the table name for GORM
func (Reservation) TableName() string {
	return "item_reservations"
}

// CreateItemRequest represents the request body for creating an item
type CreateItemRequest struct {
	Title       string   `json:"title" binding:"required,min=1,max=200"`
	Description string   `json:"description"`
	URL         string   `json:"url" binding:"omitempty,max=1000"`
	ImageURL    string   `json:"imageUrl" binding:"omitempty,max=1000"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Currency    string   `json:"currency" binding:"omitempty,len=3"`
	Quantity    int      `json:"quantity" binding:"omitempty,gte=1"`
	Priority    string   `json:"priority" binding:"omitempty,oneof=MUST_HAVE NICE_TO_HAVE"`
}

// UpdateItemRequest represents the request body for updating an item
type UpdateItemRequest struct {
	Title       *string  `json:"title" binding:"omitempty,min=1,max=200"`
	Description *string  `json:"description"`
	URL         *string  `json:"url" binding:"omitempty,max=1000"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,max=1000"`
	Price       *float64 `json:"price" binding:"omitempty,gte=0"`
	Currency    *string  `json:"currency" binding:"omitempty,len=3"`
	Quantity    *int     `json:"quantity" binding:"omitempty,gte=1"`
	Priority    *string  `json:"priority" binding:"omitempty,oneof=MUST_HAVE NICE_TO_HAVE"`
}

// CopyItemRequest represents the request body for copying an item into one
// of the viewer's own wishlists (the heart action).
type CopyItemRequest struct {
	TargetWishlistID uuid.UUID `json:"targetWishlistId" binding:"required"`
}

// ItemResponse is the per-viewer view of an item. Reservation state is
// viewer-dependent: the wishlist owner never sees HasReservations so the
// surprise is preserved; everyone else sees it plus their own claim.
type ItemResponse struct {
	ID          uuid.UUID  `json:"id"`
	WishlistID  uuid.UUID  `json:"wishlistId"`
	Title       string     `json:"title"`
	Description string     `json:"description,omitempty"`
	URL         string     `json:"url,omitempty"`
	ImageURL    string     `json:"imageUrl,omitempty"`
	Price       *float64   `json:"price,omitempty"`
	Currency    string     `json:"currency,omitempty"`
	Quantity    int        `json:"quantity"`
	Priority    string     `json:"priority"`
	Status      string     `json:"status"`
	AddedByID   *uuid.UUID `json:"addedById,omitempty"`

	HasReservations *bool `json:"hasReservations,omitempty"`
	ReservedByMe    *bool `json:"reservedByMe,omitempty"`

	DeleteRequiresConfirmation bool `json:"deleteRequiresConfirmation"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
