package services

import "errors"

// Domain errors shared by the service layer. Handlers translate these to
// HTTP status codes; everything else bubbles up as a 500.
var (
	ErrSelfAction     = errors.New("action cannot target yourself")
	ErrBlocked        = errors.New("interaction not allowed")
	ErrAlreadyFriends = errors.New("already friends")
	ErrRequestPending = errors.New("friend request already pending")
	ErrNotVisible     = errors.New("wishlist not visible to viewer")
)
