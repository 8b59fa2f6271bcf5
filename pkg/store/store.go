// Package store coordinates the progressive hash map with the LRU, LFU, and
// TTL indices under a single mutex, exposing the get/set/del/ttl/evict
// operations a command dispatcher calls directly.
package store

import (
	"strconv"
	"sync"
	"time"

	"github.com/cachemir/cachemir-core/pkg/indices"
	"github.com/cachemir/cachemir-core/pkg/progressivemap"
	"github.com/cachemir/cachemir-core/pkg/protocol"
)

// DefaultRehashSteps matches progressivemap.DefaultRehashSteps; exposed here
// so callers configuring a Store don't need to import progressivemap too.
const DefaultRehashSteps = progressivemap.DefaultRehashSteps

// Store owns the map and all three indices. Every public method takes the
// mutex for its entire duration, including the time spent copying payload
// bytes into a response, so no caller ever observes a borrowed pointer to
// a freed Entry.
type Store struct {
	mu sync.Mutex

	data *progressivemap.ProgressiveMap[*Entry]
	lru  *indices.LRU
	lfu  *indices.LFU
	ttl  *indices.TTLIndex

	now func() time.Time
}

// New returns an empty Store using the default rehash step count.
func New() *Store {
	return NewWithRehashSteps(DefaultRehashSteps)
}

// NewWithRehashSteps returns an empty Store whose underlying map migrates
// up to steps buckets per operation while resizing.
func NewWithRehashSteps(steps int) *Store {
	return &Store{
		data: progressivemap.NewWithSteps[*Entry](steps),
		lru:  indices.NewLRU(),
		lfu:  indices.NewLFU(),
		ttl:  indices.NewTTL(),
		now:  time.Now,
	}
}

// Len returns the number of live keys. Exposed mainly for tests asserting
// the map/LRU/LFU/TTL size invariants.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data.Len()
}

// isExpiredLocked reports whether e has a TTL that has already elapsed as
// of now. Callers must hold s.mu.
func (s *Store) isExpiredLocked(e *Entry, now int64) bool {
	return e.hasTTL && e.expiresAt <= now
}

// removeLocked unwinds key's entry from the map and every index it
// participates in. Callers must hold s.mu and must have already confirmed
// key maps to e.
func (s *Store) removeLocked(key string, e *Entry) {
	s.lru.Remove(e.lruHandle)
	s.lfu.Remove(e.lfuHandle)
	if e.hasTTL {
		s.ttl.Remove(e.ttlHandle)
	}
	s.data.Delete(key)
}

// lookupLiveLocked returns key's entry if present and not expired. An
// expired entry is deleted eagerly before returning, so on-demand
// expiration never merely masks a stale entry.
func (s *Store) lookupLiveLocked(key string, now int64) (*Entry, bool) {
	e, ok := s.data.Lookup(key)
	if !ok {
		return nil, false
	}
	if s.isExpiredLocked(e, now) {
		s.removeLocked(key, e)
		return nil, false
	}
	return e, true
}

// Get implements the `get K` command: on a hit it bumps access_count,
// moves the key to the LRU front and promotes its LFU bucket, and returns
// the stored value. The returned slice is a fresh copy, not the Entry's
// backing array, so callers may use it after the lock is released.
func (s *Store) Get(key string) ([]byte, protocol.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	e, ok := s.lookupLiveLocked(key, s.now().Unix())
	if !ok {
		return nil, protocol.StatusNX
	}

	e.accessCount++
	s.lru.MoveToFront(e.lruHandle)
	s.lfu.Touch(e.lfuHandle)

	value := append([]byte(nil), e.value...)
	return value, protocol.StatusOK
}

// Set implements the `set K V` command. A replacement is treated as
// delete-then-insert: the new entry starts with access_count 0, no TTL,
// fresh LRU/LFU placement, regardless of what the prior entry carried.
func (s *Store) Set(key string, value []byte) protocol.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.setLocked(key, value, false, 0)
	return protocol.StatusOK
}

// SetEx implements the `set ex K V S` command: like Set, but the entry
// carries a TTL expiring S seconds from now and is indexed for expiration.
func (s *Store) SetEx(key string, value []byte, ttlSeconds int64) protocol.Status {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := s.now().Unix()
	s.setLocked(key, value, true, now+ttlSeconds)
	return protocol.StatusOK
}

func (s *Store) setLocked(key string, value []byte, hasTTL bool, expiresAt int64) {
	now := s.now().Unix()

	if existing, ok := s.data.Lookup(key); ok {
		s.removeLocked(key, existing)
	}

	e := &Entry{
		value:     value,
		createdAt: now,
		hasTTL:    hasTTL,
		expiresAt: expiresAt,
	}
	e.lruHandle = s.lru.PushFront(key)
	e.lfuHandle = s.lfu.Insert(key)
	if hasTTL {
		e.ttlHandle = s.ttl.Insert(key, expiresAt)
	}

	s.data.Set(key, e)
}

// Del implements the `del K` command. An absent key is a no-op that still
// reports OK.
func (s *Store) Del(key string) protocol.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e, ok := s.data.Lookup(key); ok {
		s.removeLocked(key, e)
	}
	return protocol.StatusOK
}

// TTL implements the `ttl K` command: NX on an absent or expired key, ERR
// on a key that exists without a TTL, otherwise the remaining whole
// seconds as a decimal payload.
func (s *Store) TTL(key string) ([]byte, protocol.Status) {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now().Unix()
	e, ok := s.lookupLiveLocked(key, now)
	if !ok {
		return nil, protocol.StatusNX
	}
	if !e.hasTTL {
		return nil, protocol.StatusErr
	}

	remaining := e.expiresAt - now
	if remaining < 0 {
		remaining = 0
	}
	return []byte(strconv.FormatInt(remaining, 10)), protocol.StatusOK
}

// LRUEvict implements `lru_evict`: drops the least-recently-used key, or
// reports ERR if the store is empty.
func (s *Store) LRUEvict() protocol.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.lru.Back()
	if !ok {
		return protocol.StatusErr
	}

	key := node.Key()
	if e, ok := s.data.Lookup(key); ok {
		s.removeLocked(key, e)
	}
	return protocol.StatusOK
}

// LFUEvict implements `lfu_evict`: drops the oldest key in the
// lowest-frequency bucket, or reports ERR if the store is empty.
func (s *Store) LFUEvict() protocol.Status {
	s.mu.Lock()
	defer s.mu.Unlock()

	node, ok := s.lfu.EvictMin()
	if !ok {
		return protocol.StatusErr
	}

	// EvictMin already spliced node out of the LFU index; unwind the rest
	// of the entry's indices and its map slot directly, rather than going
	// through removeLocked (which would try to remove from the LFU index
	// a second time).
	key := node.Key()
	e, ok := s.data.Lookup(key)
	if !ok {
		return protocol.StatusOK
	}
	s.lru.Remove(e.lruHandle)
	if e.hasTTL {
		s.ttl.Remove(e.ttlHandle)
	}
	s.data.Delete(key)
	return protocol.StatusOK
}
