package lsm

// StorageIterator is the capability shared by every ordered-key
// iterator in this package: single block, single SST, the memtable
// scan, and both merge iterators. MergeIterator takes a homogeneous
// slice of StorageIterator; TwoMergeIterator takes two, of any
// concrete type implementing it, so a memtable iterator can be merged
// with an SST iterator through this one interface.
type StorageIterator interface {
	// Key returns the current key. Precondition: IsValid().
	Key() []byte
	// Value returns the current value. Precondition: IsValid().
	Value() []byte
	// IsValid reports whether the iterator is positioned at an entry.
	IsValid() bool
	// Next advances to the next entry. Precondition: IsValid(). Once an
	// iterator is invalid it stays invalid; Next must not be called again.
	Next() error
}
