// Package songs is the song catalog playlists refer to.
package songs

import "time"

type Song struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Year       int       `json:"year"`
	Performer  string    `json:"performer"`
	Genre      string    `json:"genre"`
	Duration   int       `json:"duration"`
	InsertedAt time.Time `json:"insertedAt"`
	UpdatedAt  time.Time `json:"updatedAt"`
}

// SongSummary is the catalog listing shape.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

const (
	minYear = 1900
	maxYear = 2021
)
