package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nithya-42/Stagelink/internal/domain"
	"github.com/Nithya-42/Stagelink/internal/repository"
)

type AvailabilityRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *AvailabilityRepo) With(db DB) *AvailabilityRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *AvailabilityRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// EnsureBlocked is the single creation entry point for blocked dates.
// Both the direct "block this date" action and booking acceptance go
// through it. The upsert rides on the (artist_id, date) uniqueness
// constraint: when the row already exists it is returned unchanged,
// except that is_booked may be promoted from false to true (a manual
// block that later gets booked), never demoted.
func (r *AvailabilityRepo) EnsureBlocked(
	ctx context.Context,
	artistID int64,
	date time.Time,
	isBooked bool,
) (*domain.Availability, error) {
	const op = "postgres.AvailabilityRepo.EnsureBlocked"

	db := r.handle()

	var a domain.Availability
	err := db.QueryRow(ctx,
		`INSERT INTO availability(artist_id, date, is_booked)
       	 VALUES ($1, $2, $3)
       	 ON CONFLICT (artist_id, date)
       	 DO UPDATE SET is_booked = availability.is_booked OR EXCLUDED.is_booked
       	 RETURNING id, artist_id, date, is_booked`,
		artistID, date, isBooked,
	).Scan(&a.ID, &a.ArtistID, &a.Date, &a.IsBooked)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &a, nil
}

// Exists reports whether the artist has the given date blocked.
func (r *AvailabilityRepo) Exists(ctx context.Context, artistID int64, date time.Time) (bool, error) {
	const op = "postgres.AvailabilityRepo.Exists"

	db := r.handle()

	var exists bool
	err := db.QueryRow(ctx,
		`SELECT EXISTS (
		   SELECT 1 FROM availability WHERE artist_id = $1 AND date = $2
		 )`,
		artistID, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return exists, nil
}

// ListByArtist lists the artist's blocked dates in calendar order.
func (r *AvailabilityRepo) ListByArtist(ctx context.Context, artistID int64) ([]domain.Availability, error) {
	const op = "postgres.AvailabilityRepo.ListByArtist"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, artist_id, date, is_booked
		 FROM availability
		 WHERE artist_id = $1
		 ORDER BY date`,
		artistID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.Availability
	for rows.Next() {
		var a domain.Availability
		if err := rows.Scan(&a.ID, &a.ArtistID, &a.Date, &a.IsBooked); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// Unblock removes a manually blocked date. Dates blocked by an accepted
// booking are protected.
//
// Returns:
//   - error: repository.ErrDateBlocked if the date is held by a booking.
//   - error: repository.ErrNotFound if the date is not blocked at all.
func (r *AvailabilityRepo) Unblock(ctx context.Context, artistID int64, date time.Time) error {
	const op = "postgres.AvailabilityRepo.Unblock"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`DELETE FROM availability
		 WHERE artist_id = $1 AND date = $2 AND NOT is_booked`,
		artistID, date,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		var exists bool
		if err := db.QueryRow(ctx,
			`SELECT EXISTS (
			   SELECT 1 FROM availability WHERE artist_id = $1 AND date = $2
			 )`,
			artistID, date,
		).Scan(&exists); err != nil {
			return fmt.Errorf("%s:%w", op, translateDBErr(err))
		}
		if exists {
			return fmt.Errorf("%s:%w", op, repository.ErrDateBlocked)
		}
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	return nil
}
