package access

// Action enumerates the user-facing operations the gate decides on.
type Action int

const (
	ActionEditWishlist Action = iota
	ActionDeleteWishlist
	ActionLeaveWishlist
	ActionAddItem
	ActionEditItem
	ActionRestoreItem
	ActionMarkPurchased
	ActionDeleteItem
	ActionReserveItem
	ActionAddToOwnWishlist
)

func (a Action) String() string {
	switch a {
	case ActionEditWishlist:
		return "edit_wishlist"
	case ActionDeleteWishlist:
		return "delete_wishlist"
	case ActionLeaveWishlist:
		return "leave_wishlist"
	case ActionAddItem:
		return "add_item"
	case ActionEditItem:
		return "edit_item"
	case ActionRestoreItem:
		return "restore_item"
	case ActionMarkPurchased:
		return "mark_purchased"
	case ActionDeleteItem:
		return "delete_item"
	case ActionReserveItem:
		return "reserve_item"
	case ActionAddToOwnWishlist:
		return "add_to_own_wishlist"
	default:
		return "unknown"
	}
}

// Context is everything the gate needs to decide an action. Membership must
// come from Resolve; the rest is read off the wishlist and item at hand.
type Context struct {
	Membership        Membership
	Privacy           string
	AllowReservations bool
	IsGroupWishlist   bool
	IsItemAuthor      bool
	FriendsWithOwner  bool
}

// Can reports whether the action is permitted in the given context. An
// unresolved membership permits nothing: granting before both the wishlist
// and the viewer identity are known would briefly expose owner-only
// operations to a non-owner.
func Can(action Action, ctx Context) bool {
	m := ctx.Membership
	if !m.Known() {
		return false
	}

	switch action {
	case ActionEditWishlist, ActionDeleteWishlist:
		return m.Owner()

	case ActionLeaveWishlist:
		return m.CollaboratorOnly()

	case ActionAddItem:
		return m.Owner() || m.CollaboratorOnly()

	case ActionEditItem, ActionRestoreItem:
		if m.Admin() {
			return true
		}
		return (m.Owner() || m.CollaboratorOnly()) && ctx.IsItemAuthor

	case ActionMarkPurchased, ActionDeleteItem:
		return m.Admin() || ctx.IsItemAuthor

	case ActionReserveItem:
		if !ctx.AllowReservations {
			return false
		}
		if m.Owner() {
			return true
		}
		if ctx.IsGroupWishlist {
			return m.CollaboratorOnly()
		}
		if ctx.Privacy == "FRIENDS_ONLY" || ctx.Privacy == "PUBLIC" {
			return ctx.FriendsWithOwner
		}
		return false

	case ActionAddToOwnWishlist:
		if ctx.IsGroupWishlist {
			return true
		}
		return !m.Owner() && !ctx.IsItemAuthor

	default:
		return false
	}
}
