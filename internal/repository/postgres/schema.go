package postgres

import (
	"context"
	"database/sql"
	"fmt"
)

// schemaDDL is idempotent and applied at startup. The exclusion constraint on
// schedule_entries is the database-level backstop for the room-exclusivity
// invariant: two committed entries in the same room can never overlap, even if
// an application-level check were bypassed. tstzrange is half-open by default,
// so windows that only touch at an endpoint do not collide.
const schemaDDL = `
CREATE EXTENSION IF NOT EXISTS pgcrypto;
CREATE EXTENSION IF NOT EXISTS btree_gist;

CREATE TABLE IF NOT EXISTS users (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	username TEXT NOT NULL UNIQUE,
	role TEXT NOT NULL CHECK (role IN ('Presenter', 'Listener')),
	email TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS rooms (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	name TEXT NOT NULL UNIQUE,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS presentations (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	title TEXT NOT NULL,
	description TEXT,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS presentation_presenters (
	presentation_id UUID NOT NULL REFERENCES presentations(id) ON DELETE CASCADE,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	PRIMARY KEY (presentation_id, user_id)
);

CREATE TABLE IF NOT EXISTS schedule_entries (
	id UUID PRIMARY KEY DEFAULT gen_random_uuid(),
	presentation_id UUID NOT NULL REFERENCES presentations(id) ON DELETE CASCADE,
	room_id UUID NOT NULL REFERENCES rooms(id) ON DELETE CASCADE,
	start_time TIMESTAMPTZ NOT NULL,
	end_time TIMESTAMPTZ NOT NULL,
	created_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	CONSTRAINT schedule_entries_window_valid CHECK (start_time < end_time),
	CONSTRAINT schedule_entries_no_overlap EXCLUDE USING gist (
		room_id WITH =,
		tstzrange(start_time, end_time) WITH &&
	)
);

CREATE TABLE IF NOT EXISTS schedule_listeners (
	schedule_entry_id UUID NOT NULL REFERENCES schedule_entries(id) ON DELETE CASCADE,
	user_id UUID NOT NULL REFERENCES users(id) ON DELETE CASCADE,
	PRIMARY KEY (schedule_entry_id, user_id)
);
`

// Migrate applies the schema DDL. Safe to run on every startup.
func Migrate(ctx context.Context, db *sql.DB) error {
	if _, err := db.ExecContext(ctx, schemaDDL); err != nil {
		return fmt.Errorf("apply schema: %w", err)
	}
	return nil
}
