package booking

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Nithya-42/Stagelink/internal/domain"
)

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("UTC+5", 5*60*60)
	in := time.Date(2026, 3, 14, 2, 30, 45, 123, loc)

	got := DateOnly(in)

	// 02:30 at UTC+5 is the previous day in UTC
	assert.Equal(t, time.Date(2026, 3, 13, 0, 0, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestDateOnly_AlreadyMidnightUTC(t *testing.T) {
	in := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	assert.Equal(t, in, DateOnly(in))
}

func TestRequestMessage(t *testing.T) {
	date := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)

	got := RequestMessage("Acme Events", date)

	assert.Equal(t, "Acme Events has sent you a booking request for 01 Dec, 2025.", got)
}

func TestResponseMessage(t *testing.T) {
	assert.Equal(t,
		"The Jazz Trio has ACCEPTED your booking request.",
		ResponseMessage("The Jazz Trio", domain.BookingAccepted),
	)
	assert.Equal(t,
		"The Jazz Trio has DECLINED your booking request.",
		ResponseMessage("The Jazz Trio", domain.BookingDeclined),
	)
}

func TestService_Respond_InvalidAction(t *testing.T) {
	s := &Service{now: time.Now}

	_, err := s.Respond(context.Background(), 1, uuid.New(), Action("maybe"))

	require.ErrorIs(t, err, ErrInvalidAction)
}

func TestService_Create_PastDate(t *testing.T) {
	today := time.Date(2026, 6, 15, 10, 0, 0, 0, time.UTC)
	s := &Service{now: func() time.Time { return today }}

	_, err := s.Create(
		context.Background(),
		1, 2,
		today.AddDate(0, 0, -1),
		"birthday party",
		"",
	)

	require.ErrorIs(t, err, ErrPastDate)
}

func TestService_Create_PastDate_IgnoresTimeOfDay(t *testing.T) {
	// 23:59 yesterday is still yesterday; 00:00 today is not past.
	today := time.Date(2026, 6, 15, 0, 30, 0, 0, time.UTC)
	s := &Service{now: func() time.Time { return today }}

	_, err := s.Create(
		context.Background(),
		1, 2,
		time.Date(2026, 6, 14, 23, 59, 0, 0, time.UTC),
		"gig",
		"",
	)

	require.ErrorIs(t, err, ErrPastDate)
}
