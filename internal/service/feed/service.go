package feed

import (
	"context"
	"fmt"

	"github.com/Nithya-42/Stagelink/internal/domain"
	postgresrepo "github.com/Nithya-42/Stagelink/internal/repository/postgres"
	"github.com/Nithya-42/Stagelink/internal/uow"
)

// Service is the notification feed: an append-only log per recipient,
// read-marked in bulk whenever it is listed.
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

// List returns the recipient's notifications, newest first, and flips
// every unread one to read in the same transaction. The returned unread
// count reflects the state before the flip, so a client can show "n new"
// exactly once.
func (s *Service) List(ctx context.Context, recipientID int64) ([]domain.Notification, int64, error) {
	const op = "service.feed.List"

	var (
		items  []domain.Notification
		unread int64
	)

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		out, err := s.store.Notifications().With(tx).ListByRecipient(ctx, recipientID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		n, err := s.store.Notifications().With(tx).MarkAllRead(ctx, recipientID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		items = out
		unread = n

		return nil
	})
	if err != nil {
		return nil, 0, err
	}

	return items, unread, nil
}

// UnreadCount returns the recipient's unread badge count without
// touching read flags.
func (s *Service) UnreadCount(ctx context.Context, recipientID int64) (int64, error) {
	const op = "service.feed.UnreadCount"

	n, err := s.store.Notifications().CountUnread(ctx, recipientID)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, err)
	}

	return n, nil
}
