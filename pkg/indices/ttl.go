package indices

import "github.com/google/btree"

// ttlDegree is the branching factor handed to the underlying B-tree. 32
// matches google/btree's own README benchmarks and keeps node fan-out wide
// enough that ascending sweeps over the key counts this cache targets stay
// within a handful of levels.
const ttlDegree = 32

// TTLItem is a handle into the TTL index for one key with an expiration.
// It is ordered by (expiresAt, key) so ascending iteration walks expirations
// in the order they will fire.
type TTLItem struct {
	ExpiresAt int64
	Key       string
}

// Less implements btree.Item.
func (a *TTLItem) Less(than btree.Item) bool {
	b := than.(*TTLItem)
	if a.ExpiresAt != b.ExpiresAt {
		return a.ExpiresAt < b.ExpiresAt
	}
	return a.Key < b.Key
}

// TTLIndex orders keys with a TTL by (expiresAt, key), backed by a B-tree
// for O(log N) insert, remove, and ascending iteration.
type TTLIndex struct {
	tree *btree.BTree
}

// NewTTL returns an empty TTL index.
func NewTTL() *TTLIndex {
	return &TTLIndex{tree: btree.New(ttlDegree)}
}

// Len returns the number of keys currently tracked.
func (t *TTLIndex) Len() int {
	return t.tree.Len()
}

// Insert adds key with the given absolute expiration and returns its handle.
func (t *TTLIndex) Insert(key string, expiresAt int64) *TTLItem {
	item := &TTLItem{ExpiresAt: expiresAt, Key: key}
	t.tree.ReplaceOrInsert(item)
	return item
}

// Remove splices item out of the index.
func (t *TTLIndex) Remove(item *TTLItem) {
	t.tree.Delete(item)
}

// AscendExpired calls fn, in ascending expiration order, for every item
// whose ExpiresAt is at or before cutoff. It stops at the first item that
// has not yet expired, since ascending order guarantees nothing past that
// point has expired either.
func (t *TTLIndex) AscendExpired(cutoff int64, fn func(item *TTLItem)) {
	t.tree.Ascend(func(i btree.Item) bool {
		item := i.(*TTLItem)
		if item.ExpiresAt > cutoff {
			return false
		}
		fn(item)
		return true
	})
}
