package songs

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

const existsKeyPrefix = "songs:exists:"

// Cache remembers positive SongExists answers in redis. Misses, redis
// failures and negative answers fall through to the store.
type Cache struct {
	Store
	rdb    *redis.Client
	ttl    time.Duration
	logger *log.Entry
}

func NewCache(store Store, rdb *redis.Client, ttl time.Duration) *Cache {
	return &Cache{
		Store:  store,
		rdb:    rdb,
		ttl:    ttl,
		logger: log.WithFields(log.Fields{"module": "songs", "component": "cache"}),
	}
}

func (c *Cache) SongExists(ctx context.Context, id string) (bool, error) {
	if c.rdb == nil {
		return c.Store.SongExists(ctx, id)
	}

	key := existsKeyPrefix + id
	err := c.rdb.Get(ctx, key).Err()
	if err == nil {
		return true, nil
	}
	if !errors.Is(err, redis.Nil) {
		c.logger.Warnf("get %s: %v", key, err)
	}

	exists, err := c.Store.SongExists(ctx, id)
	if err != nil || !exists {
		return exists, err
	}
	if err := c.rdb.Set(ctx, key, "1", c.ttl).Err(); err != nil {
		c.logger.Warnf("set %s: %v", key, err)
	}
	return true, nil
}

// DeleteSongByID deletes through to the store and drops the cached answer.
func (c *Cache) DeleteSongByID(ctx context.Context, id string) error {
	if err := c.Store.DeleteSongByID(ctx, id); err != nil {
		return err
	}
	if c.rdb != nil {
		if err := c.rdb.Del(ctx, existsKeyPrefix+id).Err(); err != nil {
			c.logger.Warnf("del %s: %v", existsKeyPrefix+id, err)
		}
	}
	return nil
}
