package songs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCache_SongExists(t *testing.T) {
	ctx := context.Background()
	ttl := 5 * time.Minute

	t.Run("hit skips the store", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		store := new(MockStore)
		c := NewCache(store, rdb, ttl)

		rmock.ExpectGet("songs:exists:song-1").SetVal("1")

		ok, err := c.SongExists(ctx, "song-1")
		require.NoError(t, err)
		assert.True(t, ok)
		store.AssertNotCalled(t, "SongExists", ctx, "song-1")
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("miss fills the cache", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		store := new(MockStore)
		c := NewCache(store, rdb, ttl)

		rmock.ExpectGet("songs:exists:song-1").RedisNil()
		store.On("SongExists", ctx, "song-1").Return(true, nil)
		rmock.ExpectSet("songs:exists:song-1", "1", ttl).SetVal("OK")

		ok, err := c.SongExists(ctx, "song-1")
		require.NoError(t, err)
		assert.True(t, ok)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("negative answers are not cached", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		store := new(MockStore)
		c := NewCache(store, rdb, ttl)

		rmock.ExpectGet("songs:exists:song-x").RedisNil()
		store.On("SongExists", ctx, "song-x").Return(false, nil)

		ok, err := c.SongExists(ctx, "song-x")
		require.NoError(t, err)
		assert.False(t, ok)
		assert.NoError(t, rmock.ExpectationsWereMet())
	})

	t.Run("redis down falls through", func(t *testing.T) {
		rdb, rmock := redismock.NewClientMock()
		store := new(MockStore)
		c := NewCache(store, rdb, ttl)

		rmock.ExpectGet("songs:exists:song-1").SetErr(errors.New("connection refused"))
		store.On("SongExists", ctx, "song-1").Return(true, nil)
		rmock.ExpectSet("songs:exists:song-1", "1", ttl).SetErr(errors.New("connection refused"))

		ok, err := c.SongExists(ctx, "song-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})

	t.Run("nil client", func(t *testing.T) {
		store := new(MockStore)
		store.On("SongExists", ctx, "song-1").Return(true, nil)

		ok, err := NewCache(store, nil, ttl).SongExists(ctx, "song-1")
		require.NoError(t, err)
		assert.True(t, ok)
	})
}

func TestCache_DeleteInvalidates(t *testing.T) {
	ctx := context.Background()
	rdb, rmock := redismock.NewClientMock()
	store := new(MockStore)
	c := NewCache(store, rdb, time.Minute)

	store.On("DeleteSongByID", ctx, "song-1").Return(nil)
	rmock.ExpectDel("songs:exists:song-1").SetVal(1)

	require.NoError(t, c.DeleteSongByID(ctx, "song-1"))
	store.AssertExpectations(t)
	assert.NoError(t, rmock.ExpectationsWereMet())
}
