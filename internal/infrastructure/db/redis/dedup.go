package redis

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const dedupTTL = 7 * 24 * time.Hour

// DedupMarker provides idempotency checks for notification delivery backed
// by Redis. Keys carry a producer-chosen identity, e.g. cuota_vencida:<id>,
// so periodic scans never notify the same event twice within the TTL window.
type DedupMarker struct {
	client *redis.Client
}

// NewDedupMarker creates a DedupMarker wrapping the given Redis client.
func NewDedupMarker(client *redis.Client) *DedupMarker {
	return &DedupMarker{client: client}
}

// IsMarked reports whether this key has already been processed.
func (d *DedupMarker) IsMarked(ctx context.Context, key string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(key)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this key has been processed (expires after dedupTTL).
func (d *DedupMarker) Mark(ctx context.Context, key string) error {
	return d.client.Set(ctx, d.key(key), "1", dedupTTL).Err()
}

func (d *DedupMarker) key(key string) string {
	return "notifdedup:" + key
}
