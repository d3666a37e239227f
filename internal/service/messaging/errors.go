package messaging

import "errors"

var (
	ErrConversationNotFound = errors.New("conversation not found")
	ErrNotParticipant       = errors.New("user is not part of this conversation")
	ErrOrganizerOnly        = errors.New("only organizers can start conversations")
	ErrArtistNotFound       = errors.New("artist not found")
	ErrEmptyMessage         = errors.New("message content is empty")
)
