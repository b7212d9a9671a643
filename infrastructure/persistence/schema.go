package persistence

import (
	"database/sql"
	"fmt"

	"ig-dashboard/infrastructure/logger"
)

var postgresSchema = []struct {
	name string
	ddl  string
}{
	{"users", `CREATE TABLE IF NOT EXISTS users (
        id SERIAL PRIMARY KEY,
        username TEXT NOT NULL UNIQUE,
        password TEXT NOT NULL,
        instagram_id TEXT UNIQUE,
        access_token TEXT,
        refresh_token TEXT,
        token_expiry TIMESTAMPTZ,
        created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`},
	{"instagram_profiles", `CREATE TABLE IF NOT EXISTS instagram_profiles (
        id SERIAL PRIMARY KEY,
        instagram_id TEXT NOT NULL UNIQUE,
        username TEXT NOT NULL,
        name TEXT,
        profile_picture_url TEXT,
        biography TEXT,
        website TEXT,
        is_business BOOLEAN,
        media_count INTEGER,
        followers_count INTEGER,
        following_count INTEGER,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`},
	{"instagram_media", `CREATE TABLE IF NOT EXISTS instagram_media (
        id SERIAL PRIMARY KEY,
        instagram_id TEXT NOT NULL,
        media_id TEXT NOT NULL UNIQUE,
        user_id INTEGER NOT NULL,
        media_type TEXT NOT NULL,
        media_url TEXT NOT NULL,
        permalink TEXT NOT NULL,
        thumbnail_url TEXT,
        caption TEXT,
        timestamp TEXT NOT NULL,
        like_count INTEGER,
        comments_count INTEGER,
        comments_data JSONB,
        updated_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
    )`},
}

// EnsureSchema creates the dashboard tables if they do not exist.
func EnsureSchema(db *sql.DB) error {
	for _, t := range postgresSchema {
		if _, err := db.Exec(t.ddl); err != nil {
			return fmt.Errorf("create %s table: %w", t.name, err)
		}
	}
	if _, err := db.Exec(`CREATE INDEX IF NOT EXISTS idx_instagram_media_instagram_id ON instagram_media(instagram_id)`); err != nil {
		logger.GetLogger().WithField("error", err).Warn("failed creating idx_instagram_media_instagram_id")
	}
	return nil
}
