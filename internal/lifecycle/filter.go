package lifecycle

import "wishlist-service/internal/models"

// Filter is the active status view of an item list. It is view state shared
// by every wishlist-detail screen variant, not a data invariant, but the
// rules below must be identical everywhere so they live next to the state
// machine they mirror.
type Filter string

const (
	FilterWanted    Filter = Filter(models.ItemStatusWanted)
	FilterPurchased Filter = Filter(models.ItemStatusPurchased)
)

// NextFilter returns the filter to show after a restore. When the restore
// emptied the purchased set the view flips back to WANTED; otherwise the
// active filter is kept.
func NextFilter(active Filter, purchasedRemaining int) Filter {
	if active == FilterPurchased && purchasedRemaining == 0 {
		return FilterWanted
	}
	return active
}

// DeleteRequiresConfirmation reports whether deleting an item in the given
// status needs a confirmation step. WANTED items are still live wishes, so
// deleting one is guarded; PURCHASED items are already done and deleting
// them is treated as low-risk cleanup.
func DeleteRequiresConfirmation(status string) bool {
	return status == models.ItemStatusWanted
}
