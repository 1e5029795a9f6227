package lsm

import (
	"bytes"
	"encoding/binary"
	"sort"

	"go.uber.org/zap"
)

// SsTable is an immutable, sorted, block-structured table, opened from
// a FileReader. Its on-disk image (all multi-byte integers big-endian):
//
//	block_1 || ... || block_M
//	    || meta_1 || ... || meta_M || u64 meta_checksum
//	    || u32 meta_offset
//
// where meta_i = u32 offset_i | u16 first_key_len_i | first_key_i, and
// meta_offset is the byte length of the block sequence.
type SsTable struct {
	file        FileReader
	metas       []BlockMeta
	metaOffset  uint32
	blockCache  BlockCache
	id          uint64
}

// OpenSSTable reads an SST's footer and meta section from file and
// returns a handle ready for reads. It does not decode any data block
// eagerly.
func OpenSSTable(file FileReader) (*SsTable, error) {
	return openSSTableWithCache(file, 0, nil)
}

func openSSTableWithCache(file FileReader, id uint64, cache BlockCache) (*SsTable, error) {
	size := file.Size()
	if size < 4 {
		return nil, ErrCorruptMeta
	}

	offsetBuf, err := file.ReadAt(size-4, 4)
	if err != nil {
		return nil, err
	}
	metaOffset := binary.BigEndian.Uint32(offsetBuf)
	if metaOffset > size-4 {
		return nil, ErrCorruptMeta
	}

	metaLen := (size - 4) - metaOffset
	metaBuf, err := file.ReadAt(metaOffset, metaLen)
	if err != nil {
		return nil, err
	}

	metas, err := decodeBlockMetas(metaBuf)
	if err != nil {
		return nil, err
	}

	log.Debug("opened sstable", zap.Uint32("meta_offset", metaOffset), zap.Int("num_blocks", len(metas)))

	return &SsTable{file: file, metas: metas, metaOffset: metaOffset, blockCache: cache, id: id}, nil
}

// NumBlocks returns the number of data blocks in the table.
func (t *SsTable) NumBlocks() int { return len(t.metas) }

// ReadBlock decodes the i-th data block from the underlying file. It
// does not consult the table's BlockCache — that collaborator is an
// unwired seam (see blockcache.go) reserved for a future hot-read path.
func (t *SsTable) ReadBlock(i int) (*Block, error) {
	if i < 0 || i >= len(t.metas) {
		invariantViolated("SsTable.ReadBlock: index %d out of range [0,%d)", i, len(t.metas))
	}

	start := t.metas[i].Offset
	var end uint32
	if i+1 < len(t.metas) {
		end = t.metas[i+1].Offset
	} else {
		end = t.metaOffset
	}

	log.Debug("loading block", zap.Int("block_idx", i), zap.Uint32("offset", start), zap.Uint32("len", end-start))

	raw, err := t.file.ReadAt(start, end-start)
	if err != nil {
		return nil, err
	}
	return DecodeBlock(raw)
}

// FindBlockIdx returns the index of the block whose first_key equals
// key, if any; otherwise i-1, where i is the smallest index whose
// first_key > key, saturating at 0 if no block's first_key is <= key.
// If key is present in the table it lies in the returned block, but a
// key below the table's entire range also maps to block 0 — callers
// must seek within that block and check validity to tell the two cases
// apart.
func (t *SsTable) FindBlockIdx(key []byte) int {
	i := sort.Search(len(t.metas), func(i int) bool {
		return bytes.Compare(t.metas[i].FirstKey, key) > 0
	})
	if i == 0 {
		return 0
	}
	return i - 1
}
