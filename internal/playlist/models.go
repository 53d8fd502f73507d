package playlist

// PlaylistSummary is how a playlist appears in a user's listing.
type PlaylistSummary struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
}

// SongSummary is one membership entry of a playlist, resolved against the
// song catalog.
type SongSummary struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Performer string `json:"performer"`
}

// SongEntry links a song to a playlist. The same song may be linked more
// than once.
type SongEntry struct {
	ID         string
	PlaylistID string
	SongID     string
}
