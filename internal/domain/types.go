package domain

import (
	"time"

	"github.com/google/uuid"
)

type Role string

const (
	RoleArtist    Role = "ARTIST"
	RoleOrganizer Role = "ORGANIZER"
)

type BookingStatus string

const (
	BookingPending   BookingStatus = "PENDING"
	BookingAccepted  BookingStatus = "ACCEPTED"
	BookingDeclined  BookingStatus = "DECLINED"
	BookingCompleted BookingStatus = "COMPLETED"
)

type User struct {
	ID                 int64
	Email              string
	PasswordHash       string `json:"-"`
	Role               Role
	Active             bool
	Staff              bool
	EmailNotifications bool
	CreatedAt          time.Time
}

type ArtistProfile struct {
	UserID          int64
	IsGroup         bool
	GroupName       string
	ContactName     string
	Phone           string
	Category        string
	Location        string
	PricingPerEvent string
	Bio             string
	Approved        bool
}

// DisplayName is the public name of the act: the group name for a named
// group, the contact name otherwise.
func (p ArtistProfile) DisplayName() string {
	if p.IsGroup && p.GroupName != "" {
		return p.GroupName
	}
	return p.ContactName
}

type GroupMember struct {
	ID       int64
	ArtistID int64
	Name     string
	Role     string
}

type OrganizerProfile struct {
	UserID           int64
	FullName         string
	OrganizationName string
	Phone            string
}

func (p OrganizerProfile) DisplayName() string { return p.FullName }

type Booking struct {
	ID           uuid.UUID
	ArtistID     int64
	OrganizerID  int64
	EventDate    time.Time // date only, midnight UTC
	EventDetails string
	Status       BookingStatus
	CreatedAt    time.Time
}

type Availability struct {
	ID       int64
	ArtistID int64
	Date     time.Time // date only, midnight UTC
	IsBooked bool
}

type Notification struct {
	ID          int64
	RecipientID int64
	SenderID    *int64
	Message     string
	BookingID   *uuid.UUID
	IsRead      bool
	CreatedAt   time.Time
}

type Review struct {
	ID          int64
	BookingID   uuid.UUID
	ArtistID    int64
	OrganizerID int64
	Rating      int
	Comment     string
	CreatedAt   time.Time
}

type Favorite struct {
	ID          int64
	ArtistID    int64
	OrganizerID int64
	CreatedAt   time.Time
}

type Conversation struct {
	ID          int64
	ArtistID    int64
	OrganizerID int64
	CreatedAt   time.Time
}

type ConversationWithUnread struct {
	Conversation
	HasUnread bool
}

type Message struct {
	ID             int64
	ConversationID int64
	SenderID       int64
	Content        string
	IsRead         bool
	CreatedAt      time.Time
}

type ArtistSummary struct {
	ArtistProfile
	Members []GroupMember
}
