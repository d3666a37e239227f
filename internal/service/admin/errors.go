package admin

import "errors"

var (
	ErrStaffOnly      = errors.New("staff access required")
	ErrArtistNotFound = errors.New("artist not found")
)
