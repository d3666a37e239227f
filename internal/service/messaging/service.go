package messaging

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/Nithya-42/Stagelink/internal/domain"
	"github.com/Nithya-42/Stagelink/internal/repository"
	postgresrepo "github.com/Nithya-42/Stagelink/internal/repository/postgres"
	"github.com/Nithya-42/Stagelink/internal/uow"
)

// Service is the inbox: one conversation per (artist, organizer) pair
// with per-message read bookkeeping.
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

// Start opens (or returns) the conversation between the acting
// organizer and an artist.
func (s *Service) Start(ctx context.Context, organizer *domain.User, artistID int64) (*domain.Conversation, error) {
	const op = "service.messaging.Start"

	if organizer.Role != domain.RoleOrganizer {
		return nil, fmt.Errorf("%s:%w", op, ErrOrganizerOnly)
	}

	if _, err := s.store.Users().GetArtistProfile(ctx, artistID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, fmt.Errorf("%s:%w", op, ErrArtistNotFound)
		}
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	c, err := s.store.Conversations().GetOrCreate(ctx, artistID, organizer.ID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return c, nil
}

// Inbox lists the user's conversations with unread flags.
func (s *Service) Inbox(ctx context.Context, userID int64) ([]domain.ConversationWithUnread, error) {
	const op = "service.messaging.Inbox"

	out, err := s.store.Conversations().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return out, nil
}

// Messages returns a conversation's messages for one of its
// participants and, in the same transaction, marks the other party's
// unread messages as read.
func (s *Service) Messages(ctx context.Context, userID, conversationID int64) ([]domain.Message, error) {
	const op = "service.messaging.Messages"

	var items []domain.Message

	err := s.uow.Do(ctx, func(
		ctx context.Context,
		tx postgresrepo.DB,
		after func(uow.AfterCommit),
	) error {
		c, err := s.conversationFor(ctx, tx, userID, conversationID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		if _, err := s.store.Conversations().With(tx).MarkRead(ctx, c.ID, userID); err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		out, err := s.store.Conversations().With(tx).ListMessages(ctx, c.ID)
		if err != nil {
			return fmt.Errorf("%s:%w", op, err)
		}

		items = out

		return nil
	})
	if err != nil {
		return nil, err
	}

	return items, nil
}

// Send appends a message from a participant to the conversation.
func (s *Service) Send(ctx context.Context, userID, conversationID int64, content string) (*domain.Message, error) {
	const op = "service.messaging.Send"

	content = strings.TrimSpace(content)
	if content == "" {
		return nil, fmt.Errorf("%s:%w", op, ErrEmptyMessage)
	}

	if _, err := s.conversationFor(ctx, nil, userID, conversationID); err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	m, err := s.store.Conversations().CreateMessage(ctx, conversationID, userID, content)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, err)
	}

	return m, nil
}

func (s *Service) conversationFor(ctx context.Context, tx postgresrepo.DB, userID, conversationID int64) (*domain.Conversation, error) {
	repo := s.store.Conversations()
	if tx != nil {
		repo = repo.With(tx)
	}

	c, err := repo.Get(ctx, conversationID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrConversationNotFound
		}
		return nil, err
	}

	if c.ArtistID != userID && c.OrganizerID != userID {
		return nil, ErrNotParticipant
	}

	return c, nil
}
