package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nithya-42/Stagelink/internal/domain"
)

type FavoriteRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *FavoriteRepo) With(db DB) *FavoriteRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *FavoriteRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Toggle creates the (artist, organizer) favorite when absent and
// removes it when present. Returns true when the artist ends up
// favorited.
func (r *FavoriteRepo) Toggle(ctx context.Context, artistID, organizerID int64) (bool, error) {
	const op = "postgres.FavoriteRepo.Toggle"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`INSERT INTO favorites(artist_id, organizer_id)
       	 VALUES ($1, $2)
       	 ON CONFLICT (artist_id, organizer_id) DO NOTHING`,
		artistID, organizerID,
	)
	if err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() > 0 {
		return true, nil
	}

	if _, err := db.Exec(ctx,
		`DELETE FROM favorites WHERE artist_id = $1 AND organizer_id = $2`,
		artistID, organizerID,
	); err != nil {
		return false, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return false, nil
}

// ListArtistsByOrganizer lists the organizer's saved artist profiles.
func (r *FavoriteRepo) ListArtistsByOrganizer(ctx context.Context, organizerID int64) ([]domain.ArtistProfile, error) {
	const op = "postgres.FavoriteRepo.ListArtistsByOrganizer"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT p.user_id, p.is_group, p.group_name, p.contact_name, p.phone,
		        p.category, p.location, p.pricing_per_event, p.bio, p.is_approved
		 FROM favorites f
		 JOIN artist_profiles p ON p.user_id = f.artist_id
		 WHERE f.organizer_id = $1
		 ORDER BY f.created_at DESC`,
		organizerID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.ArtistProfile
	for rows.Next() {
		var p domain.ArtistProfile
		if err := rows.Scan(&p.UserID, &p.IsGroup, &p.GroupName, &p.ContactName,
			&p.Phone, &p.Category, &p.Location, &p.PricingPerEvent, &p.Bio,
			&p.Approved); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// CountByOrganizer returns how many artists the organizer has saved.
func (r *FavoriteRepo) CountByOrganizer(ctx context.Context, organizerID int64) (int64, error) {
	const op = "postgres.FavoriteRepo.CountByOrganizer"

	db := r.handle()

	var count int64
	err := db.QueryRow(ctx,
		`SELECT count(*) FROM favorites WHERE organizer_id = $1`,
		organizerID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return count, nil
}
