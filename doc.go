// Package cachemir documents cachemir-core, a single-node in-memory key-value
// cache server core: a TCP server speaking a fixed-width binary protocol
// over a store that layers TTL expiration and LRU/LFU eviction on top of a
// progressively-rehashing hash table.
//
// # Architecture Overview
//
// cachemir-core consists of four layered components:
//
//   - ProgressiveMap (pkg/progressivemap): a chained hash table that grows
//     and shrinks by migrating a bounded number of buckets per operation,
//     so no single Set, Lookup, or Delete ever pays for a full resize.
//   - Indices (pkg/indices): an LRU list, an LFU frequency-bucket index,
//     and a TTL ordered index, each giving the Store O(1) or O(log N)
//     access to the key it needs to evict or expire next.
//   - Store (pkg/store): owns the map and all three indices behind one
//     mutex, exposing get/set/set-ex/del/ttl/lru_evict/lfu_evict and
//     running the periodic TTL sweep.
//   - Server (internal/server) and Protocol (pkg/protocol): the TCP front
//     end and fixed-width wire codec that turn socket bytes into Store
//     calls and back.
//
// # Quick Start
//
// Server:
//
//	import "github.com/cachemir/cachemir-core/internal/server"
//	import "github.com/cachemir/cachemir-core/pkg/config"
//
//	cfg := config.LoadServerConfig()
//	srv := server.New(cfg.Host, cfg.Port, readTimeout, writeTimeout, sweepInterval, cfg.RehashSteps)
//	log.Fatal(srv.Start(context.Background()))
//
// Client:
//
//	import "github.com/cachemir/cachemir-core/pkg/client"
//
//	c := client.New("localhost:2203")
//	defer c.Close()
//
//	c.Set("user:123", []byte("john_doe"))
//	value, err := c.Get("user:123")
//	c.SetEx("session:abc", []byte("token"), 1800)
//	ttl, err := c.TTL("session:abc")
//
// # Supported Operations
//
//   - get, set, set ex, del, ttl — the key-value surface
//   - lru_evict, lfu_evict — explicit eviction, driven by whatever memory
//     policy the caller wants layered on top
//
// # Package Structure
//
//   - pkg/progressivemap: the incrementally-rehashing hash table
//   - pkg/indices: LRU, LFU, and TTL auxiliary structures
//   - pkg/store: the mutex-guarded coordinator and expiration sweeper
//   - pkg/protocol: the fixed-width binary wire codec
//   - pkg/config: server/client configuration management
//   - pkg/client: client SDK with connection pooling
//   - internal/server: the TCP server and command dispatcher
//   - cmd/server: server executable
//   - cmd/client-example: example client usage
//
// For detailed documentation of individual packages, see their respective
// godoc pages.
package cachemir
