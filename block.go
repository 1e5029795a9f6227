package lsm

import "encoding/binary"

// sizeofU16 and sizeofU64 are the on-disk widths of the fixed-size
// fields in the block and SST formats; named the way the Rust original
// names its SIZEOF_* constants.
const (
	sizeofU16 = 2
	sizeofU64 = 8
)

// Block is the smallest unit of read and caching in the LSM tree: a
// sorted run of key-value entries plus the offset index needed to
// binary-search them.
//
// Encoded layout (all multi-byte integers big-endian):
//
//	data_section | offset_section (u16 x N) | u16 N | u64 checksum
//
// where each entry in the data section is
//
//	u16 key_len | key | u16 value_len | value
type Block struct {
	data    []byte
	offsets []uint16
}

// Encode renders the block to its on-disk byte image.
func (b *Block) Encode() []byte {
	offsetBytes := encodeOffsets(b.offsets)

	buf := make([]byte, 0, len(b.data)+len(offsetBytes)+sizeofU16+sizeofU64)
	buf = append(buf, b.data...)
	buf = append(buf, offsetBytes...)
	buf = binary.BigEndian.AppendUint16(buf, uint16(len(b.offsets)))
	buf = binary.BigEndian.AppendUint64(buf, fingerprint(b.data, offsetBytes))
	return buf
}

// DecodeBlock parses a block's on-disk byte image, verifying its
// checksum. A mismatched checksum, an offset count the byte length
// can't support, or entry lengths that run past the data section all
// report ErrCorruptBlock.
func DecodeBlock(raw []byte) (*Block, error) {
	if len(raw) < sizeofU16+sizeofU64 {
		return nil, ErrCorruptBlock
	}

	checksumStart := len(raw) - sizeofU64
	checksum := binary.BigEndian.Uint64(raw[checksumStart:])

	numOffsetsStart := checksumStart - sizeofU16
	if numOffsetsStart < 0 {
		return nil, ErrCorruptBlock
	}
	numOffsets := int(binary.BigEndian.Uint16(raw[numOffsetsStart:checksumStart]))

	offsetsStart := numOffsetsStart - numOffsets*sizeofU16
	if offsetsStart < 0 {
		return nil, ErrCorruptBlock
	}

	offsetBytes := raw[offsetsStart:numOffsetsStart]
	offsets := make([]uint16, numOffsets)
	for i := range offsets {
		offsets[i] = binary.BigEndian.Uint16(offsetBytes[i*2:])
	}

	data := make([]byte, offsetsStart)
	copy(data, raw[:offsetsStart])

	if fingerprint(data, offsetBytes) != checksum {
		return nil, ErrCorruptBlock
	}

	// Each entry's key_len and value_len headers, and the bytes they
	// cover, must lie within the data section.
	for _, off := range offsets {
		pos := int(off)
		for field := 0; field < 2; field++ {
			if pos+sizeofU16 > len(data) {
				return nil, ErrCorruptBlock
			}
			pos += sizeofU16 + int(binary.BigEndian.Uint16(data[pos:]))
			if pos > len(data) {
				return nil, ErrCorruptBlock
			}
		}
	}

	return &Block{data: data, offsets: offsets}, nil
}

// BlockBuilder packs sorted key-value entries into a single Block,
// rejecting an add once the projected encoded size would exceed the
// target — except a block is never allowed to stay empty, so the first
// add always succeeds even if the entry alone overflows target.
type BlockBuilder struct {
	data       []byte
	offsets    []uint16
	targetSize int
}

// NewBlockBuilder creates a builder targeting the given encoded block
// size.
func NewBlockBuilder(targetSize int) *BlockBuilder {
	return &BlockBuilder{targetSize: targetSize}
}

func (b *BlockBuilder) estimatedSize() int {
	return len(b.data) + len(b.offsets)*sizeofU16 + sizeofU16
}

// Add appends a key-value pair. It returns false, leaving the builder
// unchanged, when the block is non-empty and adding the entry would
// push the projected size past targetSize. The projected size counts
// the data section, the offsets and the u16 entry count, but not the
// trailing u64 checksum, so an encoded block can exceed targetSize by
// those 8 bytes. key must not be empty; violating that is an invariant
// violation (programmer error), not a recoverable condition.
func (b *BlockBuilder) Add(key, value []byte) bool {
	if len(key) == 0 {
		invariantViolated("BlockBuilder.Add: empty key")
	}

	// Three new u16 fields land in the encoding: the key_len and
	// value_len headers in the data section, plus the new entry in the
	// offset section.
	newSize := b.estimatedSize() + len(key) + len(value) + 3*sizeofU16
	if newSize > b.targetSize && !b.IsEmpty() {
		return false
	}

	b.offsets = append(b.offsets, uint16(len(b.data)))
	b.data = binary.BigEndian.AppendUint16(b.data, uint16(len(key)))
	b.data = append(b.data, key...)
	b.data = binary.BigEndian.AppendUint16(b.data, uint16(len(value)))
	b.data = append(b.data, value...)
	return true
}

// IsEmpty reports whether any entry has been added yet.
func (b *BlockBuilder) IsEmpty() bool {
	return len(b.offsets) == 0
}

// Build finalizes the block. Calling Build on an empty builder is an
// invariant violation: every block must hold at least one entry.
func (b *BlockBuilder) Build() *Block {
	if b.IsEmpty() {
		invariantViolated("BlockBuilder.Build: block is empty")
	}
	return &Block{data: b.data, offsets: b.offsets}
}
