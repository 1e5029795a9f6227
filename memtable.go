package lsm

import "bytes"

// boundKind tags a Bound as unbounded, inclusive, or exclusive —
// mirroring Rust's std::ops::Bound, which the original mem_table.rs
// scans against directly.
type boundKind int

const (
	boundUnbounded boundKind = iota
	boundIncluded
	boundExcluded
)

// Bound marks one edge of a MemTable.Scan range.
type Bound struct {
	kind boundKind
	key  []byte
}

// Included bounds a scan edge at key, inclusive.
func Included(key []byte) Bound { return Bound{kind: boundIncluded, key: key} }

// Excluded bounds a scan edge just past key.
func Excluded(key []byte) Bound { return Bound{kind: boundExcluded, key: key} }

// Unbounded leaves a scan edge open.
var Unbounded = Bound{kind: boundUnbounded}

// MemTable is an ordered mapping from Key to Value with unique keys;
// the last Put for a key wins. Keys and values are copied on insert, so
// the table owns its storage independent of caller buffers. Many
// readers and many writers may proceed concurrently.
type MemTable struct {
	data *skipList
}

// NewMemTable returns an empty MemTable.
func NewMemTable() *MemTable {
	return &MemTable{data: newSkipList()}
}

// Put inserts or overwrites key's value.
func (m *MemTable) Put(key, value []byte) {
	m.data.put(key, value)
}

// Get retrieves key's current value.
func (m *MemTable) Get(key []byte) ([]byte, bool) {
	return m.data.get(key)
}

// Size returns the approximate memory footprint of all stored entries.
func (m *MemTable) Size() int64 {
	return m.data.Size()
}

// Count returns the number of distinct keys stored.
func (m *MemTable) Count() int {
	return m.data.Count()
}

// Scan returns an iterator over [lower, upper) (honoring each bound's
// inclusive/exclusive/unbounded kind), positioned on the first in-range
// entry. The iterator is invalid if the range is empty.
func (m *MemTable) Scan(lower, upper Bound) *MemTableIterator {
	it := &MemTableIterator{list: m.data, upper: upper}
	it.seekLower(lower)
	return it
}

// Flush walks the whole table in key order, forwarding each pair to
// builder.Add. Callers must not mutate the table concurrently with a
// flush they expect to observe a consistent snapshot from; per-entry
// delivery order is still guaranteed non-decreasing.
func (m *MemTable) Flush(builder *SsTableBuilder) {
	it := m.Scan(Unbounded, Unbounded)
	for it.IsValid() {
		builder.Add(it.Key(), it.Value())
		it.Next()
	}
}

// MemTableIterator scans a MemTable over a bounded key range.
//
// Rather than holding a live cursor (and so a lock) across the whole
// scan, it re-seeks the skip list each call to Next(), searching for
// "the first key strictly after the last one emitted". This keeps no
// lock held between calls while still guaranteeing every emitted entry
// was present at some point during the scan, in non-decreasing key
// order, with no stronger isolation than that.
type MemTableIterator struct {
	list    *skipList
	upper   Bound
	key     []byte
	value   []byte
	started bool
	valid   bool
}

func (it *MemTableIterator) seekLower(lower Bound) {
	var node *skipNode
	switch lower.kind {
	case boundIncluded:
		node = it.list.seekFrom(lower.key)
	case boundExcluded:
		node = it.list.seekFromExclusive(lower.key)
	default:
		node = it.list.first()
	}
	it.started = true
	it.setNode(node)
}

func (it *MemTableIterator) setNode(node *skipNode) {
	if node == nil || !it.withinUpper(node.entry.key) {
		it.valid = false
		it.key = nil
		it.value = nil
		return
	}
	it.valid = true
	it.key = node.entry.key
	it.value = node.entry.value
}

func (it *MemTableIterator) withinUpper(key []byte) bool {
	switch it.upper.kind {
	case boundIncluded:
		return bytes.Compare(key, it.upper.key) <= 0
	case boundExcluded:
		return bytes.Compare(key, it.upper.key) < 0
	default:
		return true
	}
}

// Key returns the current key. Precondition: IsValid().
func (it *MemTableIterator) Key() []byte { return it.key }

// Value returns the current value. Precondition: IsValid().
func (it *MemTableIterator) Value() []byte { return it.value }

// IsValid reports whether the iterator is positioned at an entry.
func (it *MemTableIterator) IsValid() bool { return it.valid }

// Next advances to the next key strictly greater than the current one.
// Precondition: IsValid().
func (it *MemTableIterator) Next() error {
	node := it.list.seekFromExclusive(it.key)
	it.setNode(node)
	return nil
}
