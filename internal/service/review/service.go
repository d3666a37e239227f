package review

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/Nithya-42/Stagelink/internal/domain"
	"github.com/Nithya-42/Stagelink/internal/repository"
	postgresrepo "github.com/Nithya-42/Stagelink/internal/repository/postgres"
	"github.com/Nithya-42/Stagelink/internal/uow"
)

// Service covers the post-event flows: reviews on completed bookings
// and the organizer's favorite artists.
type Service struct {
	store *postgresrepo.Store
	uow   *uow.UoW
}

func New(store *postgresrepo.Store) *Service {
	return &Service{
		store: store,
		uow:   uow.NewUoW(store),
	}
}

// Add files a review for a completed booking. One review per booking,
// by the booking's organizer only.
//
// Returns:
//   - *domain.Review: the stored review.
//   - error: review.ErrInvalidRating for a rating outside 1..5.
//   - error: review.ErrBookingNotFound / ErrNotYourBooking on bad access.
//   - error: review.ErrBookingNotDone if the booking is not COMPLETED.
//   - error: review.ErrAlreadyReviewed on a second review.
func (s *Service) Add(
	ctx context.Context,
	organizerID int64,
	bookingID uuid.UUID,
	rating int,
	comment string,
) (*domain.Review, error) {
	const op = "service.review.Add"

	if rating < 1 || rating > 5 {
		return nil, fmt.Errorf("%s:%w", op, ErrInvalidRating)
	}

	var created *domain.Review

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		b, err := s.store.Bookings().With(tx).Get(ctx, bookingID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrBookingNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		if b.OrganizerID != organizerID {
			return fmt.Errorf("%s:%w", op, ErrNotYourBooking)
		}

		if b.Status != domain.BookingCompleted {
			return fmt.Errorf("%s:%w", op, ErrBookingNotDone)
		}

		rv, err := s.store.Reviews().With(tx).
			Create(ctx, bookingID, b.ArtistID, organizerID, rating, comment)
		if err != nil {
			if errors.Is(err, repository.ErrConflict) {
				return fmt.Errorf("%s:%w", op, ErrAlreadyReviewed)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		created = rv

		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

// ListForArtist lists reviews an artist has received.
func (s *Service) ListForArtist(ctx context.Context, artistID int64) ([]domain.Review, error) {
	const op = "service.review.ListForArtist"

	out, err := s.store.Reviews().ListByArtist(ctx, artistID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// ToggleFavorite saves or unsaves an artist for an organizer. Returns
// true when the artist ends up favorited.
func (s *Service) ToggleFavorite(ctx context.Context, organizer *domain.User, artistID int64) (bool, error) {
	const op = "service.review.ToggleFavorite"

	if organizer.Role != domain.RoleOrganizer {
		return false, fmt.Errorf("%s:%w", op, ErrOrganizerOnly)
	}

	if _, err := s.store.Users().GetArtistProfile(ctx, artistID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return false, fmt.Errorf("%s:%w", op, ErrArtistNotFound)
		}
		return false, fmt.Errorf("%s:%w", op, err)
	}

	saved, err := s.store.Favorites().Toggle(ctx, artistID, organizer.ID)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, err)
	}

	return saved, nil
}

// ListFavorites lists the organizer's saved artists.
func (s *Service) ListFavorites(ctx context.Context, organizer *domain.User) ([]domain.ArtistProfile, error) {
	const op = "service.review.ListFavorites"

	if organizer.Role != domain.RoleOrganizer {
		return nil, fmt.Errorf("%s:%w", op, ErrOrganizerOnly)
	}

	out, err := s.store.Favorites().ListArtistsByOrganizer(ctx, organizer.ID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
