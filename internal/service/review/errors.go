package review

import "errors"

var (
	ErrBookingNotFound = errors.New("booking not found")
	ErrNotYourBooking  = errors.New("booking belongs to another organizer")
	ErrBookingNotDone  = errors.New("booking is not completed yet")
	ErrAlreadyReviewed = errors.New("booking already has a review")
	ErrInvalidRating   = errors.New("rating must be between 1 and 5")
	ErrOrganizerOnly   = errors.New("only organizers can do this")
	ErrArtistNotFound  = errors.New("artist not found")
)
