package postgres

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"
)

// RunMigrations applies the schema statements in order. Every statement
// is idempotent, so re-running on startup is safe.
func RunMigrations(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	migrations := []string{
		createUsersTable,
		createArtistProfilesTable,
		createGroupMembersTable,
		createOrganizerProfilesTable,
		createBookingsTable,
		createAvailabilityTable,
		createNotificationsTable,
		createReviewsTable,
		createFavoritesTable,
		createConversationsTable,
		createMessagesTable,
		createNotificationsRecipientIndex,
		createBookingsPartyIndexes,
	}

	for i, migration := range migrations {
		if _, err := pool.Exec(ctx, migration); err != nil {
			return fmt.Errorf("migration %d failed: %w", i+1, err)
		}
	}

	logger.Info("database migrations applied", "count", len(migrations))

	return nil
}

const createUsersTable = `
CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    email VARCHAR(255) UNIQUE NOT NULL,
    password_hash VARCHAR(255) NOT NULL,
    role VARCHAR(20) NOT NULL,
    is_active BOOLEAN NOT NULL DEFAULT TRUE,
    is_staff BOOLEAN NOT NULL DEFAULT FALSE,
    email_notifications_enabled BOOLEAN NOT NULL DEFAULT TRUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    CHECK (role IN ('ARTIST', 'ORGANIZER'))
);`

const createArtistProfilesTable = `
CREATE TABLE IF NOT EXISTS artist_profiles (
    user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    is_group BOOLEAN NOT NULL DEFAULT FALSE,
    group_name VARCHAR(255) NOT NULL DEFAULT '',
    contact_name VARCHAR(255) NOT NULL,
    phone VARCHAR(20) NOT NULL DEFAULT '',
    category VARCHAR(100) NOT NULL,
    location VARCHAR(100) NOT NULL,
    pricing_per_event NUMERIC(10,2) NOT NULL DEFAULT 0,
    bio TEXT NOT NULL DEFAULT '',
    is_approved BOOLEAN NOT NULL DEFAULT FALSE
);`

const createGroupMembersTable = `
CREATE TABLE IF NOT EXISTS group_members (
    id BIGSERIAL PRIMARY KEY,
    artist_id BIGINT NOT NULL REFERENCES artist_profiles(user_id) ON DELETE CASCADE,
    name VARCHAR(255) NOT NULL,
    role VARCHAR(100) NOT NULL DEFAULT ''
);`

const createOrganizerProfilesTable = `
CREATE TABLE IF NOT EXISTS organizer_profiles (
    user_id BIGINT PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
    full_name VARCHAR(255) NOT NULL,
    organization_name VARCHAR(255) NOT NULL DEFAULT '',
    phone VARCHAR(20) NOT NULL DEFAULT ''
);`

const createBookingsTable = `
CREATE TABLE IF NOT EXISTS bookings (
    id UUID PRIMARY KEY,
    artist_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    organizer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    event_date DATE NOT NULL,
    event_details TEXT NOT NULL DEFAULT '',
    status VARCHAR(20) NOT NULL DEFAULT 'PENDING',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    CHECK (status IN ('PENDING', 'ACCEPTED', 'DECLINED', 'COMPLETED'))
);`

const createAvailabilityTable = `
CREATE TABLE IF NOT EXISTS availability (
    id BIGSERIAL PRIMARY KEY,
    artist_id BIGINT NOT NULL REFERENCES artist_profiles(user_id) ON DELETE CASCADE,
    date DATE NOT NULL,
    is_booked BOOLEAN NOT NULL DEFAULT FALSE,

    UNIQUE (artist_id, date)
);`

const createNotificationsTable = `
CREATE TABLE IF NOT EXISTS notifications (
    id BIGSERIAL PRIMARY KEY,
    recipient_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    sender_id BIGINT REFERENCES users(id) ON DELETE SET NULL,
    message TEXT NOT NULL,
    booking_id UUID REFERENCES bookings(id) ON DELETE CASCADE,
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const createReviewsTable = `
CREATE TABLE IF NOT EXISTS reviews (
    id BIGSERIAL PRIMARY KEY,
    booking_id UUID UNIQUE NOT NULL REFERENCES bookings(id) ON DELETE CASCADE,
    artist_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    organizer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    rating INTEGER NOT NULL,
    comment TEXT NOT NULL DEFAULT '',
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    CHECK (rating BETWEEN 1 AND 5)
);`

const createFavoritesTable = `
CREATE TABLE IF NOT EXISTS favorites (
    id BIGSERIAL PRIMARY KEY,
    artist_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    organizer_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE (artist_id, organizer_id)
);`

const createConversationsTable = `
CREATE TABLE IF NOT EXISTS conversations (
    id BIGSERIAL PRIMARY KEY,
    artist_id BIGINT NOT NULL REFERENCES artist_profiles(user_id) ON DELETE CASCADE,
    organizer_id BIGINT NOT NULL REFERENCES organizer_profiles(user_id) ON DELETE CASCADE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),

    UNIQUE (artist_id, organizer_id)
);`

const createMessagesTable = `
CREATE TABLE IF NOT EXISTS messages (
    id BIGSERIAL PRIMARY KEY,
    conversation_id BIGINT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
    sender_id BIGINT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
    content TEXT NOT NULL,
    is_read BOOLEAN NOT NULL DEFAULT FALSE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);`

const createNotificationsRecipientIndex = `
CREATE INDEX IF NOT EXISTS notifications_recipient_created_idx
ON notifications (recipient_id, created_at DESC);`

const createBookingsPartyIndexes = `
CREATE INDEX IF NOT EXISTS bookings_artist_idx ON bookings (artist_id, created_at DESC);
CREATE INDEX IF NOT EXISTS bookings_organizer_idx ON bookings (organizer_id, event_date DESC);`
