// Package access derives a viewer's relationship to a wishlist and decides
// which actions that relationship permits. Everything here is a pure
// function of its inputs; callers re-resolve whenever the wishlist or the
// viewer identity changes.
package access

import (
	"github.com/google/uuid"

	"wishlist-service/internal/models"
)

// Role is the viewer's resolved relationship to a wishlist. RoleUnknown is
// deliberately distinct from RoleViewer: while either the wishlist or the
// viewer identity is still unresolved, no permission may be granted or
// denied, so the flags stay tri-state instead of defaulting to false.
type Role int

const (
	RoleUnknown Role = iota
	RoleOwner
	RoleCollaborator
	RoleViewer
)

func (r Role) String() string {
	switch r {
	case RoleOwner:
		return "owner"
	case RoleCollaborator:
		return "collaborator"
	case RoleViewer:
		return "viewer"
	default:
		return "unknown"
	}
}

// Membership carries the three derived flags. All pointers are nil until
// both the wishlist and the viewer are known.
type Membership struct {
	IsOwner        *bool
	IsCollaborator *bool
	IsAdmin        *bool
}

// Known reports whether the membership has been resolved.
func (m Membership) Known() bool {
	return m.IsOwner != nil && m.IsCollaborator != nil && m.IsAdmin != nil
}

// Role collapses the flags into a single Role value.
func (m Membership) Role() Role {
	if !m.Known() {
		return RoleUnknown
	}
	switch {
	case *m.IsOwner:
		return RoleOwner
	case *m.IsCollaborator:
		return RoleCollaborator
	default:
		return RoleViewer
	}
}

// Owner reports whether the viewer owns the wishlist. Unresolved counts as no.
func (m Membership) Owner() bool { return m.IsOwner != nil && *m.IsOwner }

// Admin reports whether the viewer is the owner or an ADMIN collaborator.
func (m Membership) Admin() bool { return m.IsAdmin != nil && *m.IsAdmin }

// CollaboratorOnly reports whether the viewer collaborates without owning.
func (m Membership) CollaboratorOnly() bool {
	return m.IsCollaborator != nil && *m.IsCollaborator
}

// Resolve derives the viewer's membership from the wishlist's owner and
// collaborator list. Either input may be nil while still loading; in that
// case every flag is nil, never false.
func Resolve(wishlist *models.Wishlist, viewerID *uuid.UUID) Membership {
	if wishlist == nil || viewerID == nil {
		return Membership{}
	}

	isOwner := wishlist.OwnerID == *viewerID

	isCollaborator := false
	isAdmin := isOwner
	if !isOwner {
		for _, c := range wishlist.Collaborators {
			if c.UserID != *viewerID {
				continue
			}
			isCollaborator = true
			if c.Role == models.CollaboratorRoleAdmin {
				isAdmin = true
			}
			break
		}
	}

	return Membership{
		IsOwner:        &isOwner,
		IsCollaborator: &isCollaborator,
		IsAdmin:        &isAdmin,
	}
}
