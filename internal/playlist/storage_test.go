package playlist

import (
	"context"
	"errors"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/handika51/openmusic-api/internal/apperr"
)

func setupMockStore(t *testing.T) (*PostgresStore, pgxmock.PgxPoolIface) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	return NewPostgresStore(mock), mock
}

func TestStore_AddPlaylist(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectQuery("INSERT INTO playlists").
		WithArgs(pgxmock.AnyArg(), "Road Trip", "user-1").
		WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow("playlist-1"))

	id, err := s.AddPlaylist(context.Background(), "Road Trip", "user-1")
	require.NoError(t, err)
	assert.Equal(t, "playlist-1", id)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_AddSongToPlaylist(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectExec("INSERT INTO playlist_songs").
		WithArgs(pgxmock.AnyArg(), "playlist-1", "song-1").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	n, err := s.AddSongToPlaylist(context.Background(), SongEntry{PlaylistID: "playlist-1", SongID: "song-1"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetPlaylists(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectQuery("FROM playlists p").
		WithArgs("user-2").
		WillReturnRows(pgxmock.NewRows([]string{"id", "name", "username"}).
			AddRow("playlist-1", "Road Trip", "dicoding").
			AddRow("playlist-2", "Focus", "user-2"))

	list, err := s.GetPlaylists(context.Background(), "user-2")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, PlaylistSummary{ID: "playlist-1", Name: "Road Trip", Username: "dicoding"}, list[0])
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_GetPlaylistSongs_Empty(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectQuery("FROM playlist_songs ps").
		WithArgs("playlist-1").
		WillReturnRows(pgxmock.NewRows([]string{"id", "title", "performer"}))

	songs, err := s.GetPlaylistSongs(context.Background(), "playlist-1")
	require.NoError(t, err)
	assert.NotNil(t, songs)
	assert.Empty(t, songs)
}

func TestStore_DeletePlaylistSong_RemovesDuplicates(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM playlist_songs").
		WithArgs("playlist-1", "song-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 2))

	n, err := s.DeletePlaylistSong(context.Background(), "playlist-1", "song-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
}

func TestStore_DeletePlaylist(t *testing.T) {
	s, mock := setupMockStore(t)
	defer mock.Close()

	mock.ExpectExec("DELETE FROM playlists").
		WithArgs("playlist-1").
		WillReturnResult(pgxmock.NewResult("DELETE", 0))

	n, err := s.DeletePlaylist(context.Background(), "playlist-1")
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestStore_GetPlaylistOwner(t *testing.T) {
	ctx := context.Background()

	t.Run("found", func(t *testing.T) {
		s, mock := setupMockStore(t)
		defer mock.Close()

		mock.ExpectQuery("SELECT owner FROM playlists").
			WithArgs("playlist-1").
			WillReturnRows(pgxmock.NewRows([]string{"owner"}).AddRow("user-1"))

		owner, err := s.GetPlaylistOwner(ctx, "playlist-1")
		require.NoError(t, err)
		assert.Equal(t, "user-1", owner)
	})

	t.Run("missing", func(t *testing.T) {
		s, mock := setupMockStore(t)
		defer mock.Close()

		mock.ExpectQuery("SELECT owner FROM playlists").
			WithArgs("nope").
			WillReturnRows(pgxmock.NewRows([]string{"owner"}))

		_, err := s.GetPlaylistOwner(ctx, "nope")
		assert.ErrorIs(t, err, apperr.ErrNotFound)
	})

	t.Run("db error stays internal", func(t *testing.T) {
		s, mock := setupMockStore(t)
		defer mock.Close()

		mock.ExpectQuery("SELECT owner FROM playlists").
			WithArgs("playlist-1").
			WillReturnError(errors.New("connection refused"))

		_, err := s.GetPlaylistOwner(ctx, "playlist-1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, apperr.ErrNotFound)
		assert.Equal(t, 500, apperr.Status(err))
	})
}
