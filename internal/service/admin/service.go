package admin

import (
	"context"
	"errors"
	"fmt"

	"github.com/Nithya-42/Stagelink/internal/domain"
	"github.com/Nithya-42/Stagelink/internal/mailer"
	"github.com/Nithya-42/Stagelink/internal/repository"
	postgresrepo "github.com/Nithya-42/Stagelink/internal/repository/postgres"
	redisrepo "github.com/Nithya-42/Stagelink/internal/repository/redis"
	"github.com/Nithya-42/Stagelink/internal/uow"
)

const approvalSubject = "Your StageLink Account has been Approved!"

type Service struct {
	store  *postgresrepo.Store
	cache  *redisrepo.Cache
	mailer *mailer.Mailer
	uow    *uow.UoW
}

func New(store *postgresrepo.Store, cache *redisrepo.Cache, m *mailer.Mailer) *Service {
	return &Service{
		store:  store,
		cache:  cache,
		mailer: m,
		uow:    uow.NewUoW(store),
	}
}

// ApproveArtist marks an artist profile approved and reactivates the
// owning account so the artist can log in. Both writes share one
// transaction. When the artist opted in to email, a templated approval
// mail goes out after commit, fire-and-forget.
//
// Returns:
//   - error: admin.ErrStaffOnly when the caller is not staff.
//   - error: admin.ErrArtistNotFound when no artist profile matches.
func (s *Service) ApproveArtist(ctx context.Context, actor *domain.User, artistID int64) error {
	const op = "service.admin.ApproveArtist"

	if !actor.Staff {
		return fmt.Errorf("%s:%w", op, ErrStaffOnly)
	}

	return s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		profile, err := s.store.Users().With(tx).GetArtistProfile(ctx, artistID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fmt.Errorf("%s:%w", op, ErrArtistNotFound)
			}
			return fmt.Errorf("%s:%w", op, err)
		}

		user, err := s.store.Users().With(tx).Get(ctx, artistID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		if err := s.store.Users().With(tx).ApproveArtist(ctx, artistID); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		name := profile.DisplayName()
		email := user.Email
		optedIn := user.EmailNotifications

		after(func(ctx context.Context) {
			if s.cache != nil {
				_ = s.cache.InvalidateArtist(ctx, artistID)
			}
			if optedIn && s.mailer != nil {
				body := fmt.Sprintf(
					"Hi %s,\n\nYour artist profile has been approved. You can now log in and start receiving booking requests.\n\n— The StageLink Team",
					name,
				)
				s.mailer.Send(email, approvalSubject, body)
			}
		})

		return nil
	})
}
