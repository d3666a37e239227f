package booking

import "errors"

var (
	ErrPastDate          = errors.New("event date is in the past")
	ErrArtistUnavailable = errors.New("artist is unavailable on that date")
	ErrArtistNotFound    = errors.New("artist not found")
	ErrBookingNotFound   = errors.New("booking not found")
	ErrAlreadyResponded  = errors.New("booking has already been responded to")
	ErrNotYourBooking    = errors.New("booking belongs to another artist")
	ErrOrganizerOnly     = errors.New("only organizers can request bookings")
	ErrInvalidAction     = errors.New("invalid response action")
)
