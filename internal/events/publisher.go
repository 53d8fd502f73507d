// Package events broadcasts playlist changes over redis pub/sub.
package events

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	log "github.com/sirupsen/logrus"
)

// Channel is the redis channel every event is published on.
const Channel = "broadcast"

const (
	PlaylistCreated      = "playlist.created"
	PlaylistDeleted      = "playlist.deleted"
	PlaylistSongAdded    = "playlist.song_added"
	PlaylistSongRemoved  = "playlist.song_removed"
	CollaborationAdded   = "collaboration.added"
	CollaborationRemoved = "collaboration.removed"
)

// Publisher sends best-effort notifications. A nil client turns it into a
// no-op.
type Publisher struct {
	rdb    *redis.Client
	logger *log.Entry
}

func NewPublisher(rdb *redis.Client) *Publisher {
	return &Publisher{
		rdb:    rdb,
		logger: log.WithFields(log.Fields{"module": "events"}),
	}
}

// Publish never fails the caller; delivery errors are only logged.
func (p *Publisher) Publish(ctx context.Context, eventType string, payload any) {
	if p == nil || p.rdb == nil {
		return
	}
	data, err := json.Marshal(map[string]any{
		"type":    eventType,
		"payload": payload,
	})
	if err != nil {
		p.logger.Errorf("marshal %s: %v", eventType, err)
		return
	}
	if err := p.rdb.Publish(ctx, Channel, string(data)).Err(); err != nil {
		p.logger.WithField("event", eventType).Warnf("publish: %v", err)
	}
}
