package store

import "github.com/cachemir/cachemir-core/pkg/indices"

// Entry is the value type held inside the ProgressiveMap. It carries the
// stored payload plus handles into every index the key participates in, so
// that any destruction path can unwind all of them without a secondary
// lookup.
type Entry struct {
	value       []byte
	createdAt   int64
	expiresAt   int64
	hasTTL      bool
	accessCount uint64

	lruHandle *indices.LRUNode
	lfuHandle *indices.LFUNode
	ttlHandle *indices.TTLItem
}
