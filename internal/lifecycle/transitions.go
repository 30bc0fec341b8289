// Package lifecycle implements the item state machine: the WANTED/PURCHASED
// status axis, the terminal delete transition, and the per-viewer
// reservation sub-state layered on WANTED items. Authorization is decided
// here, before any storage mutation, so a denied transition never reaches
// the database.
package lifecycle

import (
	"errors"

	"wishlist-service/internal/access"
	"wishlist-service/internal/models"
)

// Transition identifies a state-machine edge.
type Transition int

const (
	TransitionMarkPurchased Transition = iota
	TransitionRestore
	TransitionDelete
	TransitionReserve
	TransitionUnreserve
)

var (
	// ErrPermissionDenied is returned when the caller's role does not allow
	// the transition. No mutation has happened when this is returned.
	ErrPermissionDenied = errors.New("permission denied")

	// ErrInvalidTransition is returned when the item's current status does
	// not admit the transition regardless of role.
	ErrInvalidTransition = errors.New("invalid status transition")
)

// Authorize checks that the transition is legal from the item's current
// status and permitted for the caller's access context.
func Authorize(t Transition, status string, ctx access.Context) error {
	if err := checkStatus(t, status); err != nil {
		return err
	}
	if !access.Can(actionFor(t), ctx) {
		return ErrPermissionDenied
	}
	return nil
}

func checkStatus(t Transition, status string) error {
	switch t {
	case TransitionMarkPurchased:
		if status != models.ItemStatusWanted {
			return ErrInvalidTransition
		}
	case TransitionRestore:
		if status != models.ItemStatusPurchased {
			return ErrInvalidTransition
		}
	case TransitionReserve, TransitionUnreserve:
		// Reservation only exists on the WANTED side of the status axis.
		if status != models.ItemStatusWanted {
			return ErrInvalidTransition
		}
	case TransitionDelete:
		// Delete is terminal from either state.
	}
	return nil
}

func actionFor(t Transition) access.Action {
	switch t {
	case TransitionMarkPurchased:
		return access.ActionMarkPurchased
	case TransitionDelete:
		return access.ActionDeleteItem
	case TransitionRestore:
		return access.ActionRestoreItem
	default:
		return access.ActionReserveItem
	}
}

// NextStatus returns the status an item holds after the transition.
func NextStatus(t Transition, status string) string {
	switch t {
	case TransitionMarkPurchased:
		return models.ItemStatusPurchased
	case TransitionRestore:
		return models.ItemStatusWanted
	default:
		return status
	}
}
