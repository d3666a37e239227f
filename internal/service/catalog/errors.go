package catalog

import "errors"

var (
	ErrArtistNotFound = errors.New("artist not found")
	ErrArtistOnly     = errors.New("only artists manage a calendar")
	ErrPastDate       = errors.New("date is in the past")
	ErrDateBooked     = errors.New("date is held by an accepted booking")
	ErrDateNotBlocked = errors.New("date is not blocked")
)
