package db

import (
	"context"

	log "github.com/sirupsen/logrus"
)

var migrations = []struct {
	name string
	sql  string
}{
	{"users", `
      CREATE TABLE IF NOT EXISTS users (
          id        TEXT PRIMARY KEY,
          username  TEXT NOT NULL UNIQUE,
          password  TEXT NOT NULL,
          fullname  TEXT NOT NULL
      )`},
	{"authentications", `
      CREATE TABLE IF NOT EXISTS authentications (
          token TEXT PRIMARY KEY
      )`},
	{"songs", `
      CREATE TABLE IF NOT EXISTS songs (
          id          TEXT PRIMARY KEY,
          title       TEXT NOT NULL,
          year        INT NOT NULL,
          performer   TEXT NOT NULL,
          genre       TEXT NOT NULL DEFAULT '',
          duration    INT NOT NULL DEFAULT 0,
          inserted_at TIMESTAMPTZ NOT NULL DEFAULT now(),
          updated_at  TIMESTAMPTZ NOT NULL DEFAULT now()
      )`},
	{"playlists", `
      CREATE TABLE IF NOT EXISTS playlists (
          id         TEXT PRIMARY KEY,
          name       TEXT NOT NULL,
          owner      TEXT NOT NULL,
          created_at TIMESTAMPTZ NOT NULL DEFAULT now()
      )`},
	{"playlist_songs", `
      CREATE TABLE IF NOT EXISTS playlist_songs (
          id          TEXT PRIMARY KEY,
          playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          song_id     TEXT NOT NULL REFERENCES songs(id) ON DELETE CASCADE,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now()
      )`},
	{"playlist_songs index", `
      CREATE INDEX IF NOT EXISTS idx_playlist_songs_pair
      ON playlist_songs(playlist_id, song_id)`},
	{"collaborations", `
      CREATE TABLE IF NOT EXISTS collaborations (
          id          TEXT PRIMARY KEY,
          playlist_id TEXT NOT NULL REFERENCES playlists(id) ON DELETE CASCADE,
          user_id     TEXT NOT NULL,
          created_at  TIMESTAMPTZ NOT NULL DEFAULT now(),
          UNIQUE (playlist_id, user_id)
      )`},
}

// AutoMigrate creates every table the service needs. Each statement is
// idempotent so it runs on every start.
func AutoMigrate(ctx context.Context, conn DB) error {
	for _, m := range migrations {
		if _, err := conn.Exec(ctx, m.sql); err != nil {
			log.WithFields(log.Fields{"module": "db", "migration": m.name}).Errorf("migrate: %v", err)
			return err
		}
	}
	return nil
}
