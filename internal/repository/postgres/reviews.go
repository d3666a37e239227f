package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nithya-42/Stagelink/internal/domain"
)

type ReviewRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *ReviewRepo) With(db DB) *ReviewRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *ReviewRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Create inserts a review for a booking. The UNIQUE constraint on
// booking_id surfaces a second review as repository.ErrConflict.
func (r *ReviewRepo) Create(
	ctx context.Context,
	bookingID uuid.UUID,
	artistID, organizerID int64,
	rating int,
	comment string,
) (*domain.Review, error) {
	const op = "postgres.ReviewRepo.Create"

	db := r.handle()

	rv := domain.Review{
		BookingID:   bookingID,
		ArtistID:    artistID,
		OrganizerID: organizerID,
		Rating:      rating,
		Comment:     comment,
	}

	err := db.QueryRow(ctx,
		`INSERT INTO reviews(booking_id, artist_id, organizer_id, rating, comment)
       	 VALUES ($1, $2, $3, $4, $5)
       	 RETURNING id, created_at`,
		bookingID, artistID, organizerID, rating, comment,
	).Scan(&rv.ID, &rv.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &rv, nil
}

// ExistsForBooking reports whether the booking has already been reviewed.
func (r *ReviewRepo) ExistsForBooking(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	const op = "postgres.ReviewRepo.ExistsForBooking"

	db := r.handle()

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM reviews WHERE booking_id = $1)`,
		bookingID,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return exists, nil
}

// ListByArtist lists reviews received by an artist, newest first.
func (r *ReviewRepo) ListByArtist(ctx context.Context, artistID int64) ([]domain.Review, error) {
	const op = "postgres.ReviewRepo.ListByArtist"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, booking_id, artist_id, organizer_id, rating, comment, created_at
		 FROM reviews
		 WHERE artist_id = $1
		 ORDER BY created_at DESC`,
		artistID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Review
	for rows.Next() {
		var rv domain.Review
		if err := rows.Scan(&rv.ID, &rv.BookingID, &rv.ArtistID, &rv.OrganizerID,
			&rv.Rating, &rv.Comment, &rv.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, rv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}
