package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// User represents an account known to this service. Identity (credentials,
// sessions) lives in the external identity provider; this row only carries
// profile data the wishlist domain needs.
type User struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	ExternalID  string    `json:"externalId" gorm:"type:varchar(255);not null;uniqueIndex:idx_users_external_id"`
	Email       string    `json:"email" gorm:"type:varchar(255);not null;index:idx_users_email"`
	DisplayName string    `json:"displayName" gorm:"type:varchar(100);not null"`
	AvatarURL   string    `json:"avatarUrl" gorm:"type:varchar(500)"`

	Currency  string `json:"currency" gorm:"type:varchar(3);default:'EUR'"`
	PushToken string `json:"-" gorm:"type:varchar(500)"`

	NotificationPrefs datatypes.JSON `json:"notificationPrefs,omitempty" gorm:"type:jsonb"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// UpdateProfileRequest represents the request body for PATCH /me
type UpdateProfileRequest struct {
	DisplayName       *string        `json:"displayName" binding:"omitempty,min=1,max=100"`
	AvatarURL         *string        `json:"avatarUrl" binding:"omitempty,max=500"`
	Currency          *string        `json:"currency" binding:"omitempty,len=3"`
	PushToken         *string        `json:"pushToken" binding:"omitempty,max=500"`
	NotificationPrefs datatypes.JSON `json:"notificationPrefs"`
}

// PublicProfile is the view of a user exposed to other users. IsFriend is
// computed per viewer, never persisted.
type PublicProfile struct {
	ID          uuid.UUID `json:"id"`
	DisplayName string    `json:"displayName"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	IsFriend    bool      `json:"isFriend"`
	RequestSent bool      `json:"requestSent"`
}

// ToPublicProfile converts a User to its public view for a given viewer.
func (u *User) ToPublicProfile(isFriend, requestSent bool) PublicProfile {
	return PublicProfile{
		ID:          u.ID,
		DisplayName: u.DisplayName,
		AvatarURL:   u.AvatarURL,
		IsFriend:    isFriend,
		RequestSent: requestSent,
	}
}
