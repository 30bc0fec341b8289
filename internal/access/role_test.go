package access

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"wishlist-service/internal/models"
)

func TestResolveUnresolvedInputs(t *testing.T) {
	viewerID := uuid.New()
	wishlist := &models.Wishlist{ID: uuid.New(), OwnerID: uuid.New()}

	cases := []struct {
		name     string
		wishlist *models.Wishlist
		viewerID *uuid.UUID
	}{
		{"both nil", nil, nil},
		{"wishlist nil", nil, &viewerID},
		{"viewer nil", wishlist, nil},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := Resolve(tc.wishlist, tc.viewerID)

			// Tri-state: unresolved is nil, never false.
			assert.Nil(t, m.IsOwner)
			assert.Nil(t, m.IsCollaborator)
			assert.Nil(t, m.IsAdmin)
			assert.False(t, m.Known())
			assert.Equal(t, RoleUnknown, m.Role())
		})
	}
}

func TestResolveOwner(t *testing.T) {
	ownerID := uuid.New()
	wishlist := &models.Wishlist{ID: uuid.New(), OwnerID: ownerID}

	m := Resolve(wishlist, &ownerID)

	assert.True(t, m.Known())
	assert.True(t, *m.IsOwner)
	assert.False(t, *m.IsCollaborator)
	assert.True(t, *m.IsAdmin)
	assert.Equal(t, RoleOwner, m.Role())
}

func TestResolveCollaborator(t *testing.T) {
	memberID := uuid.New()
	adminID := uuid.New()
	wishlist := &models.Wishlist{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Privacy: models.PrivacyGroup,
		Collaborators: []models.Collaborator{
			{UserID: memberID, Role: models.CollaboratorRoleMember},
			{UserID: adminID, Role: models.CollaboratorRoleAdmin},
		},
	}

	member := Resolve(wishlist, &memberID)
	assert.False(t, *member.IsOwner)
	assert.True(t, *member.IsCollaborator)
	assert.False(t, *member.IsAdmin)
	assert.Equal(t, RoleCollaborator, member.Role())

	admin := Resolve(wishlist, &adminID)
	assert.False(t, *admin.IsOwner)
	assert.True(t, *admin.IsCollaborator)
	assert.True(t, *admin.IsAdmin)
	assert.Equal(t, RoleCollaborator, admin.Role())
}

func TestResolveStranger(t *testing.T) {
	viewerID := uuid.New()
	wishlist := &models.Wishlist{
		ID:      uuid.New(),
		OwnerID: uuid.New(),
		Collaborators: []models.Collaborator{
			{UserID: uuid.New(), Role: models.CollaboratorRoleAdmin},
		},
	}

	m := Resolve(wishlist, &viewerID)

	assert.False(t, *m.IsOwner)
	assert.False(t, *m.IsCollaborator)
	assert.False(t, *m.IsAdmin)
	assert.Equal(t, RoleViewer, m.Role())
}

func TestResolveOwnerIgnoresOwnCollaboratorRow(t *testing.T) {
	// Defensive: a collaborator row for the owner must not demote them.
	ownerID := uuid.New()
	wishlist := &models.Wishlist{
		ID:      uuid.New(),
		OwnerID: ownerID,
		Collaborators: []models.Collaborator{
			{UserID: ownerID, Role: models.CollaboratorRoleMember},
		},
	}

	m := Resolve(wishlist, &ownerID)

	assert.True(t, *m.IsOwner)
	assert.False(t, *m.IsCollaborator)
	assert.True(t, *m.IsAdmin)
}
