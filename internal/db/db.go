package db

import (
	"fmt"
	"log"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// Connect initializes the database connection and runs migrations.
func Connect(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}

	if err := runMigrations(db); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return db, nil
}

func runMigrations(db *sqlx.DB) error {
	migrations := []string{
		`CREATE TABLE IF NOT EXISTS users (
            id SERIAL PRIMARY KEY,
            username TEXT NOT NULL UNIQUE,
            lat DOUBLE PRECISION,
            lon DOUBLE PRECISION,
            address TEXT NOT NULL DEFAULT 'Location off',
            status TEXT NOT NULL DEFAULT 'free',
            favorite_locations JSONB NOT NULL DEFAULT '[]',
            created_at TIMESTAMPTZ DEFAULT NOW(),
            updated_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS sent_gifts (
            id SERIAL PRIMARY KEY,
            sender_id INT NOT NULL REFERENCES users(id),
            sender_name TEXT NOT NULL,
            receiver_id INT NOT NULL REFERENCES users(id),
            receiver_name TEXT NOT NULL,
            address TEXT NOT NULL,
            lat DOUBLE PRECISION NOT NULL,
            lon DOUBLE PRECISION NOT NULL,
            gift_type TEXT NOT NULL,
            content JSONB NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ DEFAULT NOW(),
            updated_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS sent_gifts_collab (
            id SERIAL PRIMARY KEY,
            session_id TEXT NOT NULL,
            sender_ids JSONB NOT NULL,
            sender_names JSONB NOT NULL,
            receiver_id INT NOT NULL REFERENCES users(id),
            receiver_name TEXT NOT NULL,
            address TEXT NOT NULL,
            lat DOUBLE PRECISION NOT NULL,
            lon DOUBLE PRECISION NOT NULL,
            content JSONB NOT NULL,
            status TEXT NOT NULL DEFAULT 'pending',
            created_at TIMESTAMPTZ DEFAULT NOW(),
            updated_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS collab_gift_basket (
            id SERIAL PRIMARY KEY,
            session_id TEXT NOT NULL,
            sender_id INT NOT NULL REFERENCES users(id),
            receiver_id INT NOT NULL REFERENCES users(id),
            gift_type TEXT NOT NULL,
            address TEXT NOT NULL,
            lat DOUBLE PRECISION NOT NULL,
            lon DOUBLE PRECISION NOT NULL,
            content JSONB NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            UNIQUE(session_id, sender_id, receiver_id, gift_type, address)
        );`,
		`CREATE TABLE IF NOT EXISTS gift_drafts (
            id SERIAL PRIMARY KEY,
            sender_id INT NOT NULL REFERENCES users(id),
            receiver_id INT,
            receiver_name TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            lat DOUBLE PRECISION,
            lon DOUBLE PRECISION,
            gift_type TEXT NOT NULL,
            content JSONB NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            updated_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS gift_drafts_collab (
            id SERIAL PRIMARY KEY,
            session_id TEXT NOT NULL,
            sender_id INT NOT NULL REFERENCES users(id),
            receiver_id INT,
            receiver_name TEXT NOT NULL DEFAULT '',
            address TEXT NOT NULL DEFAULT '',
            lat DOUBLE PRECISION,
            lon DOUBLE PRECISION,
            gift_type TEXT NOT NULL,
            content JSONB NOT NULL,
            created_at TIMESTAMPTZ DEFAULT NOW(),
            updated_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS nudges (
            id SERIAL PRIMARY KEY,
            sender_id INT NOT NULL REFERENCES users(id),
            receiver_id INT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL DEFAULT 'sent',
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE TABLE IF NOT EXISTS sent_invites (
            id SERIAL PRIMARY KEY,
            session_id TEXT NOT NULL,
            host_id INT NOT NULL REFERENCES users(id),
            receiver_id INT NOT NULL REFERENCES users(id),
            status TEXT NOT NULL DEFAULT 'sent',
            created_at TIMESTAMPTZ DEFAULT NOW()
        );`,
		`CREATE INDEX IF NOT EXISTS idx_sent_gifts_receiver ON sent_gifts(receiver_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_sent_gifts_sender ON sent_gifts(sender_id, status);`,
		`CREATE INDEX IF NOT EXISTS idx_basket_session ON collab_gift_basket(session_id);`,
		`CREATE INDEX IF NOT EXISTS idx_invites_receiver ON sent_invites(receiver_id, status);`,
	}

	for _, m := range migrations {
		if _, err := db.Exec(m); err != nil {
			return err
		}
	}
	log.Println("database migrations applied")
	return nil
}
