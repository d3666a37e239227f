package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nithya-42/Stagelink/internal/domain"
)

type ConversationRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ConversationRepo) With(db DB) *ConversationRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ConversationRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// GetOrCreate returns the conversation between the artist and organizer,
// creating it on first contact. The upsert keeps the (artist, organizer)
// pair unique under concurrent starts.
func (r *ConversationRepo) GetOrCreate(ctx context.Context, artistID, organizerID int64) (*domain.Conversation, error) {
	const op = "postgres.ConversationRepo.GetOrCreate"

	db := r.handle()

	var c domain.Conversation
	err := db.QueryRow(ctx,
		`INSERT INTO conversations(artist_id, organizer_id)
       	 VALUES ($1, $2)
       	 ON CONFLICT (artist_id, organizer_id)
       	 DO UPDATE SET artist_id = EXCLUDED.artist_id
       	 RETURNING id, artist_id, organizer_id, created_at`,
		artistID, organizerID,
	).Scan(&c.ID, &c.ArtistID, &c.OrganizerID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &c, nil
}

// Get retrieves a conversation by its ID.
func (r *ConversationRepo) Get(ctx context.Context, id int64) (*domain.Conversation, error) {
	const op = "postgres.ConversationRepo.Get"

	db := r.handle()

	var c domain.Conversation
	err := db.QueryRow(ctx,
		`SELECT id, artist_id, organizer_id, created_at
       	 FROM conversations WHERE id = $1`,
		id,
	).Scan(&c.ID, &c.ArtistID, &c.OrganizerID, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &c, nil
}

// ListByUser lists the conversations a user takes part in, newest first,
// each flagged when it holds messages from the other party not yet read.
func (r *ConversationRepo) ListByUser(ctx context.Context, userID int64) ([]domain.ConversationWithUnread, error) {
	const op = "postgres.ConversationRepo.ListByUser"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT c.id, c.artist_id, c.organizer_id, c.created_at,
		        EXISTS (
		          SELECT 1 FROM messages m
		          WHERE m.conversation_id = c.id
		            AND NOT m.is_read
		            AND m.sender_id <> $1
		        ) AS has_unread
		 FROM conversations c
		 WHERE c.artist_id = $1 OR c.organizer_id = $1
		 ORDER BY c.created_at DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.ConversationWithUnread
	for rows.Next() {
		var c domain.ConversationWithUnread
		if err := rows.Scan(&c.ID, &c.ArtistID, &c.OrganizerID, &c.CreatedAt,
			&c.HasUnread); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// ListMessages lists the conversation's messages in send order.
func (r *ConversationRepo) ListMessages(ctx context.Context, conversationID int64) ([]domain.Message, error) {
	const op = "postgres.ConversationRepo.ListMessages"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, conversation_id, sender_id, content, is_read, created_at
		 FROM messages
		 WHERE conversation_id = $1
		 ORDER BY created_at, id`,
		conversationID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Message
	for rows.Next() {
		var m domain.Message
		if err := rows.Scan(&m.ID, &m.ConversationID, &m.SenderID, &m.Content,
			&m.IsRead, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// MarkRead flips the other party's unread messages in the conversation
// to read.
func (r *ConversationRepo) MarkRead(ctx context.Context, conversationID, readerID int64) (int64, error) {
	const op = "postgres.ConversationRepo.MarkRead"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE messages SET is_read = TRUE
		 WHERE conversation_id = $1 AND sender_id <> $2 AND NOT is_read`,
		conversationID, readerID,
	)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return tag.RowsAffected(), nil
}

// CreateMessage appends a message to the conversation.
func (r *ConversationRepo) CreateMessage(ctx context.Context, conversationID, senderID int64, content string) (*domain.Message, error) {
	const op = "postgres.ConversationRepo.CreateMessage"

	db := r.handle()

	m := domain.Message{
		ConversationID: conversationID,
		SenderID:       senderID,
		Content:        content,
	}

	err := db.QueryRow(ctx,
		`INSERT INTO messages(conversation_id, sender_id, content)
       	 VALUES ($1, $2, $3)
       	 RETURNING id, created_at`,
		conversationID, senderID, content,
	).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &m, nil
}
