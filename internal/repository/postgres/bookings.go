package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nithya-42/Stagelink/internal/domain"
	"github.com/Nithya-42/Stagelink/internal/repository"
)

type BookingRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *BookingRepo) With(db DB) *BookingRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *BookingRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

const bookingColumns = `id, artist_id, organizer_id, event_date, event_details, status, created_at`

// Create inserts a new booking request with a fresh ID and PENDING status.
func (r *BookingRepo) Create(
	ctx context.Context,
	artistID, organizerID int64,
	eventDate time.Time,
	eventDetails string,
) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Create"

	db := r.handle()

	b := domain.Booking{
		ID:           uuid.New(),
		ArtistID:     artistID,
		OrganizerID:  organizerID,
		EventDate:    eventDate,
		EventDetails: eventDetails,
		Status:       domain.BookingPending,
	}

	err := db.QueryRow(ctx,
		`INSERT INTO bookings(id, artist_id, organizer_id, event_date, event_details, status)
       	 VALUES ($1, $2, $3, $4, $5, $6)
       	 RETURNING created_at`,
		b.ID, b.ArtistID, b.OrganizerID, b.EventDate, b.EventDetails, b.Status,
	).Scan(&b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &b, nil
}

// Get retrieves a booking by its ID.
//
// Returns:
//   - *domain.Booking: the booking when found.
//   - error: repository.ErrNotFound if the booking is not found.
func (r *BookingRepo) Get(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.Get"

	db := r.handle()

	var b domain.Booking
	err := db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1`,
		id,
	).Scan(&b.ID, &b.ArtistID, &b.OrganizerID, &b.EventDate, &b.EventDetails,
		&b.Status, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &b, nil
}

// GetForUpdate retrieves a booking by its ID with a row lock, so a
// concurrent respond cannot read the same PENDING status.
func (r *BookingRepo) GetForUpdate(ctx context.Context, id uuid.UUID) (*domain.Booking, error) {
	const op = "postgres.BookingRepo.GetForUpdate"

	db := r.handle()

	var b domain.Booking
	err := db.QueryRow(ctx,
		`SELECT `+bookingColumns+` FROM bookings WHERE id = $1 FOR UPDATE`,
		id,
	).Scan(&b.ID, &b.ArtistID, &b.OrganizerID, &b.EventDate, &b.EventDetails,
		&b.Status, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &b, nil
}

// UpdateStatus transitions a PENDING booking to the given status.
//
// Returns:
//   - error: repository.ErrNotPending if the booking is no longer PENDING.
//   - error: repository.ErrNotFound if the booking does not exist.
func (r *BookingRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.BookingStatus) error {
	const op = "postgres.BookingRepo.UpdateStatus"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE bookings SET status = $2 WHERE id = $1 AND status = 'PENDING'`,
		id, status,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM bookings WHERE id = $1)`, id,
		).Scan(&exists); err != nil {
			return fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		if !exists {
			return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
		}
		return fmt.Errorf("%s:%w", op, repository.ErrNotPending)
	}

	return nil
}

// CompleteElapsed moves ACCEPTED bookings whose event date has passed to
// COMPLETED. Returns the number of bookings transitioned.
func (r *BookingRepo) CompleteElapsed(ctx context.Context, before time.Time) (int64, error) {
	const op = "postgres.BookingRepo.CompleteElapsed"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE bookings SET status = 'COMPLETED'
		 WHERE status = 'ACCEPTED' AND event_date < $1`,
		before,
	)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return tag.RowsAffected(), nil
}

// ListByOrganizer lists an organizer's bookings, most recent event first.
func (r *BookingRepo) ListByOrganizer(ctx context.Context, organizerID int64) ([]domain.Booking, error) {
	const op = "postgres.BookingRepo.ListByOrganizer"

	return r.list(ctx, op,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE organizer_id = $1
		 ORDER BY event_date DESC`,
		organizerID,
	)
}

// ListByArtist lists an artist's booking requests, newest request first.
func (r *BookingRepo) ListByArtist(ctx context.Context, artistID int64) ([]domain.Booking, error) {
	const op = "postgres.BookingRepo.ListByArtist"

	return r.list(ctx, op,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE artist_id = $1
		 ORDER BY created_at DESC`,
		artistID,
	)
}

// ListUpcomingByOrganizer lists the organizer's future ACCEPTED bookings,
// soonest first.
func (r *BookingRepo) ListUpcomingByOrganizer(ctx context.Context, organizerID int64, from time.Time) ([]domain.Booking, error) {
	const op = "postgres.BookingRepo.ListUpcomingByOrganizer"

	return r.list(ctx, op,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE organizer_id = $1 AND status = 'ACCEPTED' AND event_date >= $2
		 ORDER BY event_date`,
		organizerID, from,
	)
}

// ListPastByOrganizer lists the organizer's elapsed ACCEPTED or COMPLETED
// bookings, most recent first.
func (r *BookingRepo) ListPastByOrganizer(ctx context.Context, organizerID int64, before time.Time) ([]domain.Booking, error) {
	const op = "postgres.BookingRepo.ListPastByOrganizer"

	return r.list(ctx, op,
		`SELECT `+bookingColumns+` FROM bookings
		 WHERE organizer_id = $1
		   AND status IN ('ACCEPTED', 'COMPLETED')
		   AND event_date < $2
		 ORDER BY event_date DESC`,
		organizerID, before,
	)
}

func (r *BookingRepo) list(ctx context.Context, op, sql string, args ...any) ([]domain.Booking, error) {
	db := r.handle()

	rows, err := db.Query(ctx, sql, args...)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Booking
	for rows.Next() {
		var b domain.Booking
		if err := rows.Scan(&b.ID, &b.ArtistID, &b.OrganizerID, &b.EventDate,
			&b.EventDetails, &b.Status, &b.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}
