// Package cachemir documents the shared packages that make up
// cachemir-core's public surface: the progressive hash map, the LRU/LFU/
// TTL indices, the store that coordinates them, the wire protocol, and the
// client SDK that speaks it.
//
// # Overview
//
// cachemir-core is a single-node in-memory key-value cache. Its defining
// property is that neither a hash table resize nor an eviction decision
// ever costs more than a small, bounded amount of work: the map migrates a
// few buckets per operation instead of rehashing everything at once, and
// the LRU/LFU/TTL indices each locate their next victim in O(1) or
// O(log N).
//
// # Key Features
//
//   - Incremental (progressive) rehashing: grow/shrink amortized across
//     many operations, not paid for by one unlucky caller
//   - LRU and LFU eviction, selectable per call
//   - TTL expiration, both lazily on access and via a periodic sweep
//   - A small fixed-width binary wire protocol, no text parsing
//   - Connection pooling on the client side
//
// # Architecture Components
//
// ProgressiveMap (pkg/progressivemap):
//   - Chained hash table keyed by string, generic over value type
//   - Two-table migration (ht1/ht2) with a cursor tracking progress
//   - Grows at load factor 0.75, shrinks at 0.25 down to a minimum capacity
//
// Indices (pkg/indices):
//   - LRU: doubly-linked list, MRU at the front
//   - LFU: frequency buckets of insertion-ordered lists plus a lazily
//     cleaned min-heap to find the smallest active frequency
//   - TTL: a B-tree ordered by (expires_at, key) for fast ascending sweep
//     and O(log N) removal
//
// Store (pkg/store):
//   - Owns the map and all three indices behind a single mutex
//   - get/set/set-ex/del/ttl/lru_evict/lfu_evict, matching the wire
//     protocol's command grammar one-to-one
//   - A background sweep goroutine removes expired keys; Get and TTL also
//     expire on demand so correctness never depends on sweep timing
//
// Protocol (pkg/protocol):
//   - Request: total_len, nargs, then nargs length-prefixed arguments
//   - Response: total_len, status (OK/ERR/NX), then an optional payload
//   - All integers little-endian; oversized frames close the connection
//     without a reply
//
// Client (pkg/client):
//   - Connection pool over the wire protocol
//   - One method per Store operation
//
// Configuration (pkg/config):
//   - Flags, then CACHEMIR_-prefixed environment variables, then defaults
//   - Validation before a server or client is allowed to start
//
// Server (internal/server):
//   - One goroutine per accepted connection
//   - In-order, pipelined request/response handling per connection
//
// # Usage Example
//
//	import "github.com/cachemir/cachemir-core/pkg/client"
//
//	c := client.New("localhost:2203")
//	defer c.Close()
//
//	c.Set("user:123", []byte("john_doe"))
//	value, err := c.Get("user:123")
//	c.Del("user:123")
//
// # Thread Safety
//
// The Store serializes every operation through one mutex; callers never
// see a partially-applied mutation across the map and its indices. The
// Client is safe for concurrent use: its connection pool hands out and
// reclaims connections under its own lock.
//
// For detailed documentation of specific components, refer to their
// individual package documentation.
package cachemir
