package lsm

import "go.uber.org/zap"

// SsTableIterator walks one SsTable in key order, crossing block
// boundaries transparently.
type SsTableIterator struct {
	table     *SsTable
	blockIdx  int
	blockIter *BlockIterator
}

// NewSsTableIterator creates an iterator positioned at table's first
// entry.
func NewSsTableIterator(table *SsTable) (*SsTableIterator, error) {
	it := &SsTableIterator{table: table}
	if err := it.SeekToFirst(); err != nil {
		return nil, err
	}
	return it, nil
}

// SeekToFirst repositions the iterator at the table's first entry.
func (it *SsTableIterator) SeekToFirst() error {
	block, err := it.table.ReadBlock(0)
	if err != nil {
		return err
	}
	it.blockIdx = 0
	it.blockIter = SeekToFirstBlockIterator(block)
	return nil
}

// SeekToKey repositions the iterator at the first entry whose key is >=
// key. If key falls strictly between two blocks — greater than every
// key in the block FindBlockIdx names but less than the next block's
// first key — the iterator advances to that next block's first entry;
// with no next block, it becomes invalid.
func (it *SsTableIterator) SeekToKey(key []byte) error {
	idx := it.table.FindBlockIdx(key)
	block, err := it.table.ReadBlock(idx)
	if err != nil {
		return err
	}

	log.Debug("seeking sstable key", zap.Int("block_idx", idx))

	blockIter := SeekToKeyBlockIterator(block, key)
	if !blockIter.IsValid() {
		nextIdx, nextIter, err := it.loadNextBlock(idx)
		if err != nil {
			return err
		}
		if nextIter != nil {
			idx, blockIter = nextIdx, nextIter
		}
	}

	it.blockIdx = idx
	it.blockIter = blockIter
	return nil
}

// loadNextBlock loads the block after idx, seeking to its first entry.
// It returns (idx, nil, nil) when idx is already the last block.
func (it *SsTableIterator) loadNextBlock(idx int) (int, *BlockIterator, error) {
	if idx+1 >= it.table.NumBlocks() {
		return idx, nil, nil
	}
	block, err := it.table.ReadBlock(idx + 1)
	if err != nil {
		return 0, nil, err
	}
	return idx + 1, SeekToFirstBlockIterator(block), nil
}

// Key returns the current key. Precondition: IsValid().
func (it *SsTableIterator) Key() []byte { return it.blockIter.Key() }

// Value returns the current value. Precondition: IsValid().
func (it *SsTableIterator) Value() []byte { return it.blockIter.Value() }

// IsValid reports whether the iterator is positioned at an entry.
func (it *SsTableIterator) IsValid() bool { return it.blockIter.IsValid() }

// Next advances to the next entry, crossing into the following block
// when the current one is exhausted. Precondition: IsValid().
func (it *SsTableIterator) Next() error {
	it.blockIter.Next()
	if it.blockIter.IsValid() {
		return nil
	}

	nextIdx, nextIter, err := it.loadNextBlock(it.blockIdx)
	if err != nil {
		return err
	}
	it.blockIdx = nextIdx
	if nextIter != nil {
		it.blockIter = nextIter
	}
	return nil
}
