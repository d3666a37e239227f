package booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/Nithya-42/Stagelink/internal/domain"
	redisx "github.com/Nithya-42/Stagelink/internal/redis"
	"github.com/Nithya-42/Stagelink/internal/repository"
	postgresrepo "github.com/Nithya-42/Stagelink/internal/repository/postgres"
	redisrepo "github.com/Nithya-42/Stagelink/internal/repository/redis"
	"github.com/Nithya-42/Stagelink/internal/uow"
)

// Action is an artist's answer to a pending booking request.
type Action string

const (
	ActionAccept  Action = "accept"
	ActionDecline Action = "decline"
)

// eventDateFormat matches the wording of the request notification,
// e.g. "01 Dec, 2025".
const eventDateFormat = "02 Jan, 2006"

type Service struct {
	store   *postgresrepo.Store
	cache   *redisrepo.Cache
	pubsub  *redisx.NotificationsPubSub
	limiter *redisrepo.SlidingWindowLimiter
	uow     *uow.UoW
	now     func() time.Time
}

func New(
	store *postgresrepo.Store,
	cache *redisrepo.Cache,
	pubsub *redisx.NotificationsPubSub,
	limiter *redisrepo.SlidingWindowLimiter,
) *Service {
	return &Service{
		store:   store,
		cache:   cache,
		pubsub:  pubsub,
		limiter: limiter,
		uow:     uow.NewUoW(store),
		now:     time.Now,
	}
}

// Create files a booking request from an organizer to an artist.
//
// The date validation, the availability conflict check, the booking
// insert and the notification to the artist all happen inside one
// serializable transaction, so a concurrent accept or direct block of
// the same date cannot slip between the check and the write.
//
// Parameters:
//   - ctx: request-scoped context.
//   - organizerID: ID of the organizer making the request.
//   - artistID: ID of the artist being booked.
//   - eventDate: requested calendar day.
//   - eventDetails: free-text description of the event.
//   - rlKey: rate-limit bucket key ("" disables the limiter).
//
// Returns:
//   - *domain.Booking: the created PENDING booking.
//   - error: booking.ErrPastDate if the date is before today.
//   - error: booking.ErrArtistUnavailable if the date is already blocked.
//   - error: booking.ErrArtistNotFound if no approved artist matches.
//   - error: booking.ErrOrganizerOnly if the caller is not an organizer.
func (s *Service) Create(
	ctx context.Context,
	organizerID, artistID int64,
	eventDate time.Time,
	eventDetails string,
	rlKey string,
) (*domain.Booking, error) {
	const op = "service.booking.Create"

	eventDate = DateOnly(eventDate)
	if eventDate.Before(DateOnly(s.now())) {
		return nil, fmt.Errorf("%s:%w", op, ErrPastDate)
	}

	if s.limiter != nil && rlKey != "" {
		ok, _, retry, err := s.limiter.Allow(ctx, rlKey)
		if err != nil {
			return nil, fmt.Errorf("%s:%w", op, err)
		}
		if !ok {
			return nil, fmt.Errorf("%s: rate limited, retry in %s", op, retry)
		}
	}

	var created *domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		organizer, err := s.store.Users().With(tx).Get(ctx, organizerID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		if organizer.Role != domain.RoleOrganizer {
			return fmt.Errorf("%s:%w", op, ErrOrganizerOnly)
		}

		artist, err := s.store.Users().With(tx).GetArtistProfile(ctx, artistID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrArtistNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}
		if !artist.Approved {
			return fmt.Errorf("%s:%w", op, ErrArtistNotFound)
		}

		blocked, err := s.store.Availability().With(tx).Exists(ctx, artistID, eventDate)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}
		if blocked {
			return fmt.Errorf("%s:%w", op, ErrArtistUnavailable)
		}

		b, err := s.store.Bookings().With(tx).Create(ctx, artistID, organizerID, eventDate, eventDetails)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		organizerName, err := s.organizerDisplayName(ctx, tx, organizer)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		message := RequestMessage(organizerName, eventDate)

		if _, err := s.store.Notifications().With(tx).
			Create(ctx, artistID, &organizerID, message, &b.ID); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		created = b

		after(func(ctx context.Context) {
			if s.pubsub != nil {
				_ = s.pubsub.PublishCreated(ctx, artistID)
			}
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// Respond lets the booking's target artist accept or decline a PENDING
// request. Accepting blocks the event date on the artist's calendar;
// both actions notify the organizer. Status change, availability and
// notification commit or roll back together.
//
// Returns:
//   - *domain.Booking: the booking with its new status.
//   - error: booking.ErrBookingNotFound if no such booking exists.
//   - error: booking.ErrNotYourBooking if the caller is not its artist.
//   - error: booking.ErrAlreadyResponded if the booking left PENDING.
//   - error: booking.ErrInvalidAction for an unknown action.
func (s *Service) Respond(
	ctx context.Context,
	artistID int64,
	bookingID uuid.UUID,
	action Action,
) (*domain.Booking, error) {
	const op = "service.booking.Respond"

	if action != ActionAccept && action != ActionDecline {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidAction)
	}

	var responded *domain.Booking

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		b, err := s.store.Bookings().With(tx).GetForUpdate(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrBookingNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		if b.ArtistID != artistID {
			return fmt.Errorf("%s:%w", op, ErrNotYourBooking)
		}

		if b.Status != domain.BookingPending {
			return fmt.Errorf("%s:%w", op, ErrAlreadyResponded)
		}

		newStatus := domain.BookingDeclined
		if action == ActionAccept {
			newStatus = domain.BookingAccepted
		}

		if err := s.store.Bookings().With(tx).UpdateStatus(ctx, bookingID, newStatus); err != nil {
			if errors.Is(err, repository.ErrNotPending) {
				return fmt.Errorf("%s:%w", op, ErrAlreadyResponded)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		if action == ActionAccept {
			if _, err := s.store.Availability().With(tx).
				EnsureBlocked(ctx, artistID, b.EventDate, true); err != nil {
				return fmt.Errorf("%s:%w", op, err)
			}
		}

		artist, err := s.store.Users().With(tx).GetArtistProfile(ctx, artistID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		message := ResponseMessage(artist.DisplayName(), newStatus)

		if _, err := s.store.Notifications().With(tx).
			Create(ctx, b.OrganizerID, &artistID, message, &b.ID); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		b.Status = newStatus
		responded = b

		organizerID := b.OrganizerID
		after(func(ctx context.Context) {
			if s.cache != nil && action == ActionAccept {
				_ = s.cache.InvalidateArtist(ctx, artistID)
			}
			if s.pubsub != nil {
				_ = s.pubsub.PublishCreated(ctx, organizerID)
			}
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return responded, nil
}

// CompleteElapsed transitions ACCEPTED bookings whose event date has
// passed to COMPLETED. It is driven by the app's background sweeper.
//
// Returns:
//   - int64: the number of bookings completed.
func (s *Service) CompleteElapsed(ctx context.Context) (int64, error) {
	const op = "service.booking.CompleteElapsed"

	n, err := s.store.Bookings().CompleteElapsed(ctx, DateOnly(s.now()))
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return n, nil
}

// Get retrieves a booking visible only to its two parties.
func (s *Service) Get(ctx context.Context, userID int64, bookingID uuid.UUID) (*domain.Booking, error) {
	const op = "service.booking.Get"

	b, err := s.store.Bookings().Get(ctx, bookingID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrBookingNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	if b.ArtistID != userID && b.OrganizerID != userID {
		return nil, fmt.Errorf("%s:%w", op, ErrBookingNotFound)
	}

	return b, nil
}

// ListForUser lists the caller's bookings: requests received for an
// artist, requests sent for an organizer.
func (s *Service) ListForUser(ctx context.Context, user *domain.User) ([]domain.Booking, error) {
	const op = "service.booking.ListForUser"

	var (
		out []domain.Booking
		err error
	)

	switch user.Role {
	case domain.RoleArtist:
		out, err = s.store.Bookings().ListByArtist(ctx, user.ID)
	case domain.RoleOrganizer:
		out, err = s.store.Bookings().ListByOrganizer(ctx, user.ID)
	default:
		return nil, fmt.Errorf("%s:%w", op, repository.ErrRoleMismatch)
	}
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ListUpcoming lists the organizer's future accepted bookings, soonest first.
func (s *Service) ListUpcoming(ctx context.Context, organizerID int64) ([]domain.Booking, error) {
	const op = "service.booking.ListUpcoming"

	out, err := s.store.Bookings().ListUpcomingByOrganizer(ctx, organizerID, DateOnly(s.now()))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ListPast lists the organizer's elapsed accepted or completed bookings.
func (s *Service) ListPast(ctx context.Context, organizerID int64) ([]domain.Booking, error) {
	const op = "service.booking.ListPast"

	out, err := s.store.Bookings().ListPastByOrganizer(ctx, organizerID, DateOnly(s.now()))
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

func (s *Service) organizerDisplayName(ctx context.Context, tx postgresrepo.DB, organizer *domain.User) (string, error) {
	profile, err := s.store.Users().With(tx).GetOrganizerProfile(ctx, organizer.ID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return organizer.Email, nil
		}
		return "", err
	}

	if profile.FullName == "" {
		return organizer.Email, nil
	}

	return profile.DisplayName(), nil
}

// DateOnly truncates a timestamp to its UTC calendar day.
func DateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RequestMessage is the notification text an artist receives when an
// organizer files a booking request.
func RequestMessage(organizerName string, eventDate time.Time) string {
	return fmt.Sprintf("%s has sent you a booking request for %s.",
		organizerName, eventDate.Format(eventDateFormat))
}

// ResponseMessage is the notification text an organizer receives when
// the artist answers the request.
func ResponseMessage(artistName string, status domain.BookingStatus) string {
	return fmt.Sprintf("%s has %s your booking request.", artistName, status)
}
