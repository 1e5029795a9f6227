package lsm

import (
	"bytes"
	"encoding/binary"

	"go.uber.org/zap"
)

// SsTableBuilder streams key-value input into fixed-capacity blocks,
// accumulating BlockMeta as each block fills, and emits a complete SST
// byte image on Build. Callers must feed keys in non-decreasing order —
// the builder does not sort.
type SsTableBuilder struct {
	meta         []BlockMeta
	data         []byte
	blockSize    int
	currentBlock *BlockBuilder
	firstKey     []byte
	lastKey      []byte
}

// NewSsTableBuilder creates a builder targeting blockSize-byte blocks.
func NewSsTableBuilder(blockSize int) *SsTableBuilder {
	return &SsTableBuilder{
		blockSize:    blockSize,
		currentBlock: NewBlockBuilder(blockSize),
	}
}

// Add appends a key-value pair. key must be >= every key previously
// added (an invariant violation otherwise, since this builder never
// sorts its input).
func (b *SsTableBuilder) Add(key, value []byte) {
	if b.lastKey != nil && bytes.Compare(key, b.lastKey) < 0 {
		invariantViolated("SsTableBuilder.Add: out-of-order key %q after %q", key, b.lastKey)
	}
	b.lastKey = append(b.lastKey[:0], key...)

	if b.currentBlock.IsEmpty() {
		b.firstKey = append([]byte(nil), key...)
	}

	if b.currentBlock.Add(key, value) {
		return
	}

	b.finalizeBlock()

	if !b.currentBlock.Add(key, value) {
		invariantViolated("SsTableBuilder.Add: entry does not fit a fresh block")
	}
	b.firstKey = append([]byte(nil), key...)
}

// EstimatedSize approximates the SST's encoded size using only the data
// blocks written so far (meta blocks are a small fraction of total
// size).
func (b *SsTableBuilder) EstimatedSize() int {
	return len(b.data)
}

func (b *SsTableBuilder) finalizeBlock() {
	if b.currentBlock.IsEmpty() {
		return
	}
	block := b.currentBlock.Build()
	b.meta = append(b.meta, BlockMeta{Offset: uint32(len(b.data)), FirstKey: b.firstKey})
	b.data = append(b.data, block.Encode()...)
	b.currentBlock = NewBlockBuilder(b.blockSize)
}

// encodeImage finalizes any in-flight block and renders the complete
// SST byte image: data blocks, meta section, meta checksum, and the
// trailing meta_offset.
func (b *SsTableBuilder) encodeImage() []byte {
	b.finalizeBlock()

	metaOffset := uint32(len(b.data))
	buf := make([]byte, len(b.data), len(b.data)+estimateMetaSize(b.meta)+4)
	copy(buf, b.data)
	buf = encodeBlockMetas(b.meta, buf)
	buf = binary.BigEndian.AppendUint32(buf, metaOffset)

	log.Debug("built sstable image", zap.Int("num_blocks", len(b.meta)), zap.Int("bytes", len(buf)))
	return buf
}

// Build finalizes the builder into an in-memory SsTable, with no file
// on disk.
func (b *SsTableBuilder) Build() *SsTable {
	buf := b.encodeImage()
	metaOffset := uint32(len(buf) - 4 - estimateMetaSize(b.meta))
	return &SsTable{file: newByteFile(buf), metas: b.meta, metaOffset: metaOffset}
}

// BuildToFile finalizes the builder and writes the SST image to path,
// returning a handle backed by the written file.
func (b *SsTableBuilder) BuildToFile(path string) (*SsTable, error) {
	buf := b.encodeImage()
	metaOffset := uint32(len(buf) - 4 - estimateMetaSize(b.meta))

	f, err := createOSFile(path, buf)
	if err != nil {
		return nil, err
	}
	return &SsTable{file: f, metas: b.meta, metaOffset: metaOffset}, nil
}
