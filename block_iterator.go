package lsm

import (
	"bytes"
	"encoding/binary"
)

// BlockIterator walks a single Block in key order. Keys and values
// returned by Key()/Value() alias the iterator's internal buffers;
// callers that need to retain one past the next mutation must copy it.
type BlockIterator struct {
	block *Block
	key   []byte
	value []byte
	idx   int
}

// NewBlockIterator creates an iterator over block, initially invalid.
func NewBlockIterator(block *Block) *BlockIterator {
	return &BlockIterator{block: block}
}

// SeekToFirstBlockIterator creates an iterator already positioned at
// the block's first entry.
func SeekToFirstBlockIterator(block *Block) *BlockIterator {
	it := NewBlockIterator(block)
	it.SeekToFirst()
	return it
}

// SeekToKeyBlockIterator creates an iterator positioned at the first
// entry whose key is >= key.
func SeekToKeyBlockIterator(block *Block, key []byte) *BlockIterator {
	it := NewBlockIterator(block)
	it.SeekToKey(key)
	return it
}

// Key returns the current entry's key. Precondition: IsValid().
func (it *BlockIterator) Key() []byte { return it.key }

// Value returns the current entry's value. Precondition: IsValid().
func (it *BlockIterator) Value() []byte { return it.value }

// IsValid reports whether the iterator is positioned at an entry. An
// empty current key means invalid, since keys are never empty.
func (it *BlockIterator) IsValid() bool { return len(it.key) > 0 }

// SeekToFirst positions the iterator at index 0.
func (it *BlockIterator) SeekToFirst() {
	it.seekToIdx(0)
}

// Next advances to the next entry. Precondition: IsValid().
func (it *BlockIterator) Next() error {
	it.seekToIdx(it.idx + 1)
	return nil
}

// seekToIdx loads the entry at offsets[idx], or invalidates the
// iterator if idx is out of range.
func (it *BlockIterator) seekToIdx(idx int) {
	if idx >= len(it.block.offsets) {
		it.key = nil
		it.value = nil
		it.idx = len(it.block.offsets)
		return
	}
	it.idx = idx
	it.decodeAt(int(it.block.offsets[idx]))
}

// decodeAt parses the entry starting at the given byte offset into the
// block's data section.
func (it *BlockIterator) decodeAt(offset int) {
	data := it.block.data
	keyLen := int(binary.BigEndian.Uint16(data[offset:]))
	keyStart := offset + sizeofU16
	key := data[keyStart : keyStart+keyLen]

	valueLenStart := keyStart + keyLen
	valueLen := int(binary.BigEndian.Uint16(data[valueLenStart:]))
	valueStart := valueLenStart + sizeofU16
	value := data[valueStart : valueStart+valueLen]

	it.key = append(it.key[:0], key...)
	it.value = append(it.value[:0], value...)
}

// SeekToKey performs a binary search over the offset index to land on
// the smallest entry whose key is >= key, invalidating the iterator if
// no such entry exists.
func (it *BlockIterator) SeekToKey(key []byte) {
	if it.IsValid() && bytes.Equal(it.key, key) {
		return
	}

	low, high := 0, len(it.block.offsets)
	for low < high {
		mid := (low + high) / 2
		it.seekToIdx(mid)
		switch bytes.Compare(it.key, key) {
		case -1:
			low = mid + 1
		case 1:
			high = mid
		default:
			return
		}
	}
	it.seekToIdx(low)
}
