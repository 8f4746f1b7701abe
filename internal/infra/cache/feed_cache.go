package cache

import (
	"time"

	"github.com/dgraph-io/ristretto"
	"github.com/xavierca1/pkwt-tracker/internal/entity"
)

// FeedCache keeps computed notification feeds in memory with a TTL. Any reminder change
// clears it, so a stale feed lives at most until the next write or the TTL.
type FeedCache struct {
	c   *ristretto.Cache
	ttl time.Duration
}

func NewFeedCache(ttl time.Duration) (*FeedCache, error) {
	c, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     1_000, // one unit per feed
		BufferItems: 64,
	})
	if err != nil {
		return nil, err
	}
	return &FeedCache{c: c, ttl: ttl}, nil
}

func (f *FeedCache) Get(key string) ([]entity.Notification, bool) {
	v, ok := f.c.Get(key)
	if !ok {
		return nil, false
	}
	feed, ok := v.([]entity.Notification)
	return feed, ok
}

func (f *FeedCache) Set(key string, feed []entity.Notification) {
	f.c.SetWithTTL(key, feed, 1, f.ttl)
	f.c.Wait()
}

func (f *FeedCache) Clear() {
	f.c.Clear()
}

func (f *FeedCache) Close() {
	f.c.Close()
}
