package lifecycle

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"wishlist-service/internal/access"
	"wishlist-service/internal/models"
)

func ctxWith(isOwner, isCollaborator, isAdmin, isAuthor bool) access.Context {
	return access.Context{
		Membership: access.Membership{
			IsOwner:        &isOwner,
			IsCollaborator: &isCollaborator,
			IsAdmin:        &isAdmin,
		},
		AllowReservations: true,
		IsItemAuthor:      isAuthor,
	}
}

func TestAuthorizeMarkPurchased(t *testing.T) {
	admin := ctxWith(false, true, true, false)
	author := ctxWith(false, true, false, true)
	bystander := ctxWith(false, true, false, false)

	assert.NoError(t, Authorize(TransitionMarkPurchased, models.ItemStatusWanted, admin))
	assert.NoError(t, Authorize(TransitionMarkPurchased, models.ItemStatusWanted, author))
	assert.ErrorIs(t, Authorize(TransitionMarkPurchased, models.ItemStatusWanted, bystander), ErrPermissionDenied)

	// Already purchased: not a permission problem, a status one.
	assert.ErrorIs(t, Authorize(TransitionMarkPurchased, models.ItemStatusPurchased, admin), ErrInvalidTransition)
}

func TestAuthorizeRestore(t *testing.T) {
	owner := ctxWith(true, false, true, false)
	member := ctxWith(false, true, false, false)

	assert.NoError(t, Authorize(TransitionRestore, models.ItemStatusPurchased, owner))
	assert.ErrorIs(t, Authorize(TransitionRestore, models.ItemStatusPurchased, member), ErrPermissionDenied)
	assert.ErrorIs(t, Authorize(TransitionRestore, models.ItemStatusWanted, owner), ErrInvalidTransition)
}

func TestAuthorizeDelete(t *testing.T) {
	author := ctxWith(false, true, false, true)
	bystander := ctxWith(false, true, false, false)

	// Delete is terminal from either state, same rule as purchase.
	assert.NoError(t, Authorize(TransitionDelete, models.ItemStatusWanted, author))
	assert.NoError(t, Authorize(TransitionDelete, models.ItemStatusPurchased, author))
	assert.ErrorIs(t, Authorize(TransitionDelete, models.ItemStatusWanted, bystander), ErrPermissionDenied)
}

func TestAuthorizeReserveOnlyOnWanted(t *testing.T) {
	owner := ctxWith(true, false, true, false)

	assert.NoError(t, Authorize(TransitionReserve, models.ItemStatusWanted, owner))
	assert.ErrorIs(t, Authorize(TransitionReserve, models.ItemStatusPurchased, owner), ErrInvalidTransition)
	assert.ErrorIs(t, Authorize(TransitionUnreserve, models.ItemStatusPurchased, owner), ErrInvalidTransition)
}

func TestNextStatus(t *testing.T) {
	assert.Equal(t, models.ItemStatusPurchased, NextStatus(TransitionMarkPurchased, models.ItemStatusWanted))
	assert.Equal(t, models.ItemStatusWanted, NextStatus(TransitionRestore, models.ItemStatusPurchased))
	// Reservation transitions never move the status axis.
	assert.Equal(t, models.ItemStatusWanted, NextStatus(TransitionReserve, models.ItemStatusWanted))
}

func TestNextFilterFlipsWhenPurchasedEmpties(t *testing.T) {
	// Restoring the last purchased item flips the view back to WANTED.
	assert.Equal(t, FilterWanted, NextFilter(FilterPurchased, 0))

	// A non-last restore keeps the current view.
	assert.Equal(t, FilterPurchased, NextFilter(FilterPurchased, 3))

	// The WANTED view never flips.
	assert.Equal(t, FilterWanted, NextFilter(FilterWanted, 0))
	assert.Equal(t, FilterWanted, NextFilter(FilterWanted, 5))
}

func TestDeleteRequiresConfirmation(t *testing.T) {
	assert.True(t, DeleteRequiresConfirmation(models.ItemStatusWanted))
	assert.False(t, DeleteRequiresConfirmation(models.ItemStatusPurchased))
}
