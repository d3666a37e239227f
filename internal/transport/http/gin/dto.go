package httpgin

import (
	"time"

	"github.com/microcosm-cc/bluemonday"

	"github.com/Nithya-42/Stagelink/internal/domain"
)

// sanitizer strips all markup from user-supplied free text before it
// reaches storage.
var sanitizer = bluemonday.StrictPolicy()

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type LoginResponse struct {
	Token string      `json:"token"`
	ID    int64       `json:"id"`
	Email string      `json:"email"`
	Role  domain.Role `json:"role"`
	Staff bool        `json:"staff,omitempty"`
}

type CreateBookingRequest struct {
	ArtistID     int64  `json:"artist_id" binding:"required"`
	EventDate    string `json:"event_date" binding:"required"`
	EventDetails string `json:"event_details" binding:"required"`
}

type RespondBookingRequest struct {
	Action string `json:"action" binding:"required,oneof=accept decline"`
}

type BlockDateRequest struct {
	Date string `json:"date" binding:"required"`
}

type AddReviewRequest struct {
	BookingID string `json:"booking_id" binding:"required,uuid"`
	Rating    int    `json:"rating" binding:"required,min=1,max=5"`
	Comment   string `json:"comment"`
}

type StartConversationRequest struct {
	ArtistID int64 `json:"artist_id" binding:"required"`
}

type SendMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type NotificationsResponse struct {
	Notifications []domain.Notification `json:"notifications"`
	UnreadCount   int64                 `json:"unread_count"`
}

type UnreadCountResponse struct {
	UnreadCount int64 `json:"unread_count"`
}

type AvailabilityResponse struct {
	Date      string `json:"date"`
	Available bool   `json:"available"`
}

type ToggleFavoriteResponse struct {
	Favorited bool `json:"favorited"`
}

type CompletedResponse struct {
	Completed int64 `json:"completed"`
}

func parseDate(s string) (time.Time, error) {
	return time.Parse(time.DateOnly, s)
}
