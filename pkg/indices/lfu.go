package indices

import "container/heap"

// LFUNode is a handle into the LFU frequency index for one key. The Store
// keeps the handle on the key's Entry so Touch and Remove are O(1) splices.
type LFUNode struct {
	key        string
	freq       uint64
	prev, next *LFUNode
}

// Key returns the key this node tracks.
func (n *LFUNode) Key() string {
	return n.key
}

// Freq returns the node's current frequency bucket.
func (n *LFUNode) Freq() uint64 {
	return n.freq
}

type lfuBucket struct {
	head, tail *LFUNode
	size       int
}

func (b *lfuBucket) pushFront(n *LFUNode) {
	n.prev = nil
	n.next = b.head
	if b.head != nil {
		b.head.prev = n
	}
	b.head = n
	if b.tail == nil {
		b.tail = n
	}
	b.size++
}

func (b *lfuBucket) unlink(n *LFUNode) {
	if n.prev != nil {
		n.prev.next = n.next
	} else {
		b.head = n.next
	}
	if n.next != nil {
		n.next.prev = n.prev
	} else {
		b.tail = n.prev
	}
	n.prev = nil
	n.next = nil
	b.size--
}

// freqHeap is a lazily-cleaned min-heap of frequency values: entries may go
// stale when a bucket empties out, and are discarded the next time they
// would otherwise surface at the top (checked against LFU.buckets).
type freqHeap []uint64

func (h freqHeap) Len() int            { return len(h) }
func (h freqHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h freqHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *freqHeap) Push(x interface{}) { *h = append(*h, x.(uint64)) }
func (h *freqHeap) Pop() interface{} {
	old := *h
	n := len(old)
	x := old[n-1]
	*h = old[:n-1]
	return x
}

// LFU maintains, for every tracked key, a bucket keyed by access frequency.
// Within a bucket, keys are ordered by insertion so the tail is always the
// oldest key at that frequency — the tie-break the eviction order requires.
// Emptied buckets are dropped from the map immediately; the frequency heap
// used to locate the smallest active frequency is cleaned lazily.
type LFU struct {
	buckets map[uint64]*lfuBucket
	heap    freqHeap
	size    int
}

// NewLFU returns an empty LFU index.
func NewLFU() *LFU {
	return &LFU{buckets: make(map[uint64]*lfuBucket)}
}

// Len returns the number of keys currently tracked.
func (l *LFU) Len() int {
	return l.size
}

func (l *LFU) bucketFor(freq uint64) *lfuBucket {
	b, ok := l.buckets[freq]
	if !ok {
		b = &lfuBucket{}
		l.buckets[freq] = b
		heap.Push(&l.heap, freq)
	}
	return b
}

func (l *LFU) dropBucketIfEmpty(freq uint64, b *lfuBucket) {
	if b.size == 0 {
		delete(l.buckets, freq)
	}
}

// Insert adds key at frequency 0 and returns its handle.
func (l *LFU) Insert(key string) *LFUNode {
	n := &LFUNode{key: key, freq: 0}
	l.bucketFor(0).pushFront(n)
	l.size++
	return n
}

// Touch moves n from its current frequency bucket to freq+1, as happens on
// every successful Get.
func (l *LFU) Touch(n *LFUNode) {
	old := l.buckets[n.freq]
	old.unlink(n)
	l.dropBucketIfEmpty(n.freq, old)

	n.freq++
	l.bucketFor(n.freq).pushFront(n)
}

// Remove splices n out of whatever bucket it is in.
func (l *LFU) Remove(n *LFUNode) {
	b := l.buckets[n.freq]
	b.unlink(n)
	l.dropBucketIfEmpty(n.freq, b)
	l.size--
}

// EvictMin removes and returns the oldest key in the lowest-frequency
// bucket, or false if the index is empty.
func (l *LFU) EvictMin() (*LFUNode, bool) {
	for l.heap.Len() > 0 {
		freq := l.heap[0]
		b, ok := l.buckets[freq]
		if !ok || b.size == 0 {
			heap.Pop(&l.heap)
			continue
		}

		victim := b.tail
		b.unlink(victim)
		l.dropBucketIfEmpty(freq, b)
		l.size--
		return victim, true
	}
	return nil, false
}
