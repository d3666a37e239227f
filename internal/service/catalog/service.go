package catalog

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Nithya-42/Stagelink/internal/domain"
	redisx "github.com/Nithya-42/Stagelink/internal/redis"
	"github.com/Nithya-42/Stagelink/internal/repository"
	postgresrepo "github.com/Nithya-42/Stagelink/internal/repository/postgres"
	redisrepo "github.com/Nithya-42/Stagelink/internal/repository/redis"
	"github.com/Nithya-42/Stagelink/internal/service/booking"
	"github.com/Nithya-42/Stagelink/internal/uow"
)

type Config struct {
	ArtistSummaryTTL time.Duration
	ArtistListTTL    time.Duration
	CalendarTTL      time.Duration
}

// Service serves the public artist directory and the availability
// calendar, with short-TTL caching in front of the directory reads.
type Service struct {
	store *postgresrepo.Store
	cache *redisrepo.Cache
	uow   *uow.UoW
	cfg   Config
	now   func() time.Time
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, cfg Config) *Service {
	if cfg.ArtistSummaryTTL <= 0 {
		cfg.ArtistSummaryTTL = 60 * time.Second
	}

	if cfg.ArtistListTTL <= 0 {
		cfg.ArtistListTTL = 30 * time.Second
	}

	if cfg.CalendarTTL <= 0 {
		cfg.CalendarTTL = 15 * time.Second
	}

	return &Service{
		store: store,
		cache: cache,
		uow:   uow.NewUoW(store),
		cfg:   cfg,
		now:   time.Now,
	}
}

// ListArtists lists approved artists, optionally filtered by category
// and location.
func (s *Service) ListArtists(ctx context.Context, category, location string) ([]domain.ArtistProfile, error) {
	const op = "service.catalog.ListArtists"

	key := redisx.KeyArtistList(category, location)

	artists, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.ArtistListTTL,
		func(ctx context.Context) ([]domain.ArtistProfile, error) {
			return s.store.Users().ListApprovedArtists(ctx, category, location)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return artists, nil
}

// GetArtist retrieves an approved artist's public profile with the
// group roster when the act is a group.
//
// Returns:
//   - error: catalog.ErrArtistNotFound for missing or unapproved profiles.
func (s *Service) GetArtist(ctx context.Context, artistID int64) (*domain.ArtistSummary, error) {
	const op = "service.catalog.GetArtist"

	key := redisx.KeyArtistSummary(artistID)

	summary, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.ArtistSummaryTTL,
		func(ctx context.Context) (domain.ArtistSummary, error) {
			p, err := s.store.Users().GetArtistProfile(ctx, artistID)
			if err != nil {
				if errors.Is(err, repository.ErrNotFound) {
					return domain.ArtistSummary{}, ErrArtistNotFound
				}
				return domain.ArtistSummary{}, err
			}

			if !p.Approved {
				return domain.ArtistSummary{}, ErrArtistNotFound
			}

			out := domain.ArtistSummary{ArtistProfile: *p}

			if p.IsGroup {
				members, err := s.store.Users().ListGroupMembers(ctx, artistID)
				if err != nil {
					return domain.ArtistSummary{}, err
				}
				out.Members = members
			}

			return out, nil
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return &summary, nil
}

// Calendar returns the artist's blocked dates for the public profile
// calendar.
func (s *Service) Calendar(ctx context.Context, artistID int64) ([]domain.Availability, error) {
	const op = "service.catalog.Calendar"

	key := redisx.KeyArtistCalendar(artistID)

	days, err := redisrepo.GetOrSetJSON(
		ctx,
		s.cache,
		key,
		s.cfg.CalendarTTL,
		func(ctx context.Context) ([]domain.Availability, error) {
			return s.store.Availability().ListByArtist(ctx, artistID)
		},
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return days, nil
}

// IsAvailable reports whether the artist can still be booked on the
// given date. The check always hits the database: booking creation
// depends on it being current.
func (s *Service) IsAvailable(ctx context.Context, artistID int64, date time.Time) (bool, error) {
	const op = "service.catalog.IsAvailable"

	blocked, err := s.store.Availability().Exists(ctx, artistID, booking.DateOnly(date))
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, err)
	}

	return !blocked, nil
}

// BlockDate lets an artist mark a day unbookable. Blocking an already
// blocked day is a no-op returning the existing record.
func (s *Service) BlockDate(ctx context.Context, artist *domain.User, date time.Time) (*domain.Availability, error) {
	const op = "service.catalog.BlockDate"

	if artist.Role != domain.RoleArtist {
		return nil, fmt.Errorf("%s:%w", op, ErrArtistOnly)
	}

	date = booking.DateOnly(date)
	if date.Before(booking.DateOnly(s.now())) {
		return nil, fmt.Errorf("%s:%w", op, ErrPastDate)
	}

	var blocked *domain.Availability

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		a, err := s.store.Availability().With(tx).EnsureBlocked(ctx, artist.ID, date, false)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		blocked = a

		artistID := artist.ID
		after(func(ctx context.Context) {
			if s.cache != nil {
				_ = s.cache.InvalidateArtist(ctx, artistID)
			}
		})

		return nil
	})
	if err != nil {
		return nil, err
	}

	return blocked, nil
}

// UnblockDate removes a manually blocked day. Days blocked by accepted
// bookings refuse with ErrDateBooked.
func (s *Service) UnblockDate(ctx context.Context, artist *domain.User, date time.Time) error {
	const op = "service.catalog.UnblockDate"

	if artist.Role != domain.RoleArtist {
		return fmt.Errorf("%s:%w", op, ErrArtistOnly)
	}

	date = booking.DateOnly(date)

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		if err := s.store.Availability().With(tx).Unblock(ctx, artist.ID, date); err != nil {
			switch {
			case errors.Is(err, repository.ErrDateBlocked):
				return fmt.Errorf("%s:%w", op, ErrDateBooked)
			case errors.Is(err, repository.ErrNotFound):
				return fmt.Errorf("%s:%w", op, ErrDateNotBlocked)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		artistID := artist.ID
		after(func(ctx context.Context) {
			if s.cache != nil {
				_ = s.cache.InvalidateArtist(ctx, artistID)
			}
		})

		return nil
	})

	return err
}

// MyCalendar lists the acting artist's own blocked dates, including
// which of them are held by bookings.
func (s *Service) MyCalendar(ctx context.Context, artist *domain.User) ([]domain.Availability, error) {
	const op = "service.catalog.MyCalendar"

	if artist.Role != domain.RoleArtist {
		return nil, fmt.Errorf("%s:%w", op, ErrArtistOnly)
	}

	out, err := s.store.Availability().ListByArtist(ctx, artist.ID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}
