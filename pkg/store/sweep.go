package store

import (
	"context"
	"time"

	"github.com/cachemir/cachemir-core/pkg/indices"
)

// DefaultSweepInterval is how often RunSweeper wakes to remove expired
// keys, matching the "roughly once per second" cadence.
const DefaultSweepInterval = time.Second

// RunSweeper blocks, waking every interval to remove every key whose TTL
// has elapsed. It returns when ctx is cancelled. Get and TTL already expire
// keys on demand, so the sweeper's only job is to reclaim memory and index
// space for keys nobody has touched since they expired.
func (s *Store) RunSweeper(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			s.sweepOnce()
		}
	}
}

func (s *Store) sweepOnce() {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Unix()

	var expired []*indices.TTLItem
	s.ttl.AscendExpired(now, func(item *indices.TTLItem) {
		expired = append(expired, item)
	})

	for _, item := range expired {
		if e, ok := s.data.Lookup(item.Key); ok {
			s.removeLocked(item.Key, e)
		}
	}
}
