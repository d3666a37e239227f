package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nithya-42/Stagelink/internal/domain"
)

type NotificationRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *NotificationRepo) With(db DB) *NotificationRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *NotificationRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create appends a notification to the recipient's feed.
func (r *NotificationRepo) Create(
	ctx context.Context,
	recipientID int64,
	senderID *int64,
	message string,
	bookingID *uuid.UUID,
) (*domain.Notification, error) {
	const op = "postgres.NotificationRepo.Create"

	db := r.handle()

	n := domain.Notification{
		RecipientID: recipientID,
		SenderID:    senderID,
		Message:     message,
		BookingID:   bookingID,
	}

	err := db.QueryRow(ctx,
		`INSERT INTO notifications(recipient_id, sender_id, message, booking_id)
       	 VALUES ($1, $2, $3, $4)
       	 RETURNING id, created_at`,
		recipientID, senderID, message, bookingID,
	).Scan(&n.ID, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &n, nil
}

// ListByRecipient lists the recipient's notifications, newest first.
func (r *NotificationRepo) ListByRecipient(ctx context.Context, recipientID int64) ([]domain.Notification, error) {
	const op = "postgres.NotificationRepo.ListByRecipient"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, recipient_id, sender_id, message, booking_id, is_read, created_at
		 FROM notifications
		 WHERE recipient_id = $1
		 ORDER BY created_at DESC, id DESC`,
		recipientID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Notification
	for rows.Next() {
		var n domain.Notification
		if err := rows.Scan(&n.ID, &n.RecipientID, &n.SenderID, &n.Message,
			&n.BookingID, &n.IsRead, &n.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, n)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// MarkAllRead flips every unread notification of the recipient to read.
// Returns the number of notifications flipped.
func (r *NotificationRepo) MarkAllRead(ctx context.Context, recipientID int64) (int64, error) {
	const op = "postgres.NotificationRepo.MarkAllRead"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE notifications SET is_read = TRUE
		 WHERE recipient_id = $1 AND NOT is_read`,
		recipientID,
	)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return tag.RowsAffected(), nil
}

// CountUnread returns the recipient's unread notification count.
func (r *NotificationRepo) CountUnread(ctx context.Context, recipientID int64) (int64, error) {
	const op = "postgres.NotificationRepo.CountUnread"

	db := r.handle()

	var count int64
	err := db.QueryRow(ctx,
		`SELECT count(*) FROM notifications
		 WHERE recipient_id = $1 AND NOT is_read`,
		recipientID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return count, nil
}
