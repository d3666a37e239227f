package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Nithya-42/Stagelink/internal/domain"
	"github.com/Nithya-42/Stagelink/internal/repository"
)

type UserRepo struct {
	pool *pgxpool.Pool
	db   DB
}

func (r *UserRepo) With(db DB) *UserRepo {
	cp := *r
	cp.db = db
	return &cp
}

func (r *UserRepo) handle() DB {
	if r.db != nil {
		return r.db
	}
	return r.pool
}

// Get retrieves a user account by its ID.
//
// Returns:
//   - *domain.User: the user when found.
//   - error: repository.ErrNotFound if the user is not found.
func (r *UserRepo) Get(ctx context.Context, id int64) (*domain.User, error) {
	const op = "postgres.UserRepo.Get"

	db := r.handle()

	var u domain.User
	err := db.QueryRow(ctx,
		`SELECT id, email, password_hash, role, is_active, is_staff,
		        email_notifications_enabled, created_at
       	 FROM users WHERE id = $1`,
		id,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.Staff,
		&u.EmailNotifications, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &u, nil
}

// GetByEmail retrieves a user account by its unique email.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	const op = "postgres.UserRepo.GetByEmail"

	db := r.handle()

	var u domain.User
	err := db.QueryRow(ctx,
		`SELECT id, email, password_hash, role, is_active, is_staff,
		        email_notifications_enabled, created_at
       	 FROM users WHERE email = $1`,
		email,
	).Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Role, &u.Active, &u.Staff,
		&u.EmailNotifications, &u.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &u, nil
}

// GetArtistProfile retrieves an artist profile by the owning user ID.
func (r *UserRepo) GetArtistProfile(ctx context.Context, userID int64) (*domain.ArtistProfile, error) {
	const op = "postgres.UserRepo.GetArtistProfile"

	db := r.handle()

	var p domain.ArtistProfile
	err := db.QueryRow(ctx,
		`SELECT user_id, is_group, group_name, contact_name, phone, category,
		        location, pricing_per_event, bio, is_approved
       	 FROM artist_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.IsGroup, &p.GroupName, &p.ContactName, &p.Phone,
		&p.Category, &p.Location, &p.PricingPerEvent, &p.Bio, &p.Approved)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &p, nil
}

// GetOrganizerProfile retrieves an organizer profile by the owning user ID.
func (r *UserRepo) GetOrganizerProfile(ctx context.Context, userID int64) (*domain.OrganizerProfile, error) {
	const op = "postgres.UserRepo.GetOrganizerProfile"

	db := r.handle()

	var p domain.OrganizerProfile
	err := db.QueryRow(ctx,
		`SELECT user_id, full_name, organization_name, phone
       	 FROM organizer_profiles WHERE user_id = $1`,
		userID,
	).Scan(&p.UserID, &p.FullName, &p.OrganizationName, &p.Phone)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return &p, nil
}

// ListApprovedArtists lists approved artist profiles, optionally filtered by
// category and location (both matched case-insensitively).
func (r *UserRepo) ListApprovedArtists(ctx context.Context, category, location string) ([]domain.ArtistProfile, error) {
	const op = "postgres.UserRepo.ListApprovedArtists"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT user_id, is_group, group_name, contact_name, phone, category,
		        location, pricing_per_event, bio, is_approved
		 FROM artist_profiles
		 WHERE is_approved
		   AND ($1 = '' OR lower(category) = lower($1))
		   AND ($2 = '' OR lower(location) = lower($2))
		 ORDER BY contact_name`,
		category, location,
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

// ListGroupMembers lists the roster of a group act.
func (r *UserRepo) ListGroupMembers(ctx context.Context, artistID int64) ([]domain.GroupMember, error) {
	const op = "postgres.UserRepo.ListGroupMembers"

	db := r.handle()

	rows, err := db.Query(ctx,
		`SELECT id, artist_id, name, role
		 FROM group_members
		 WHERE artist_id = $1
		 ORDER BY id`,
		artistID,
	)
	if err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	defer rows.Close()

	var out []domain.GroupMember
	for rows.Next() {
		var m domain.GroupMember
		if err := rows.Scan(&m.ID, &m.ArtistID, &m.Name, &m.Role); err != nil {
			return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
		}

		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return out, nil
}

// ApproveArtist marks the artist profile approved and reactivates the
// owning account. Both rows change in the caller's transaction.
//
// Returns:
//   - error: repository.ErrNotFound if no artist profile exists for the ID.
func (r *UserRepo) ApproveArtist(ctx context.Context, artistID int64) error {
	const op = "postgres.UserRepo.ApproveArtist"

	db := r.handle()

	tag, err := db.Exec(ctx,
		`UPDATE artist_profiles SET is_approved = TRUE WHERE user_id = $1`,
		artistID,
	)
	if err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%s:%w", op, repository.ErrNotFound)
	}

	if _, err := db.Exec(ctx,
		`UPDATE users SET is_active = TRUE WHERE id = $1`,
		artistID,
	); err != nil {
		return fmt.Errorf("%s:%w", op, translateDBErr(err))
	}

	return nil
}
