package lsm

import "encoding/binary"

// BlockMeta is one index record per data block in an SST: the block's
// byte offset from the file start, and its first key (for binary
// search in SsTable.FindBlockIdx).
type BlockMeta struct {
	Offset   uint32
	FirstKey []byte
}

// encodedSize is the number of bytes this record occupies in the meta
// section: u32 offset | u16 first_key_len | first_key.
func (m BlockMeta) encodedSize() int {
	return 4 + 2 + len(m.FirstKey)
}

// estimateMetaSize predicts the exact byte length encodeBlockMetas will
// append, including the trailing checksum.
func estimateMetaSize(metas []BlockMeta) int {
	size := sizeofU64
	for _, m := range metas {
		size += m.encodedSize()
	}
	return size
}

// encodeBlockMetas appends the encoded meta section — each record
// followed by a single checksum covering the whole ordered sequence —
// to buf, returning the extended slice.
func encodeBlockMetas(metas []BlockMeta, buf []byte) []byte {
	want := estimateMetaSize(metas)
	start := len(buf)

	for _, m := range metas {
		buf = binary.BigEndian.AppendUint32(buf, m.Offset)
		buf = binary.BigEndian.AppendUint16(buf, uint16(len(m.FirstKey)))
		buf = append(buf, m.FirstKey...)
	}
	buf = binary.BigEndian.AppendUint64(buf, metaFingerprint(metas))

	if len(buf)-start != want {
		invariantViolated("encodeBlockMetas: wrote %d bytes, estimated %d", len(buf)-start, want)
	}
	return buf
}

// decodeBlockMetas parses the meta section (already trimmed to exclude
// the trailing u32 meta_offset), verifying its checksum. Records are
// read while more than 8 bytes remain; what is left must then be
// exactly the 8-byte trailing checksum.
func decodeBlockMetas(buf []byte) ([]BlockMeta, error) {
	var metas []BlockMeta
	for len(buf) > sizeofU64 {
		if len(buf) < 6 {
			return nil, ErrCorruptMeta
		}
		offset := binary.BigEndian.Uint32(buf)
		firstKeyLen := int(binary.BigEndian.Uint16(buf[4:]))
		recordEnd := 6 + firstKeyLen
		if recordEnd > len(buf) {
			return nil, ErrCorruptMeta
		}
		firstKey := make([]byte, firstKeyLen)
		copy(firstKey, buf[6:recordEnd])
		metas = append(metas, BlockMeta{Offset: offset, FirstKey: firstKey})
		buf = buf[recordEnd:]
	}

	if len(buf) != sizeofU64 {
		return nil, ErrCorruptMeta
	}
	checksum := binary.BigEndian.Uint64(buf)
	if metaFingerprint(metas) != checksum {
		return nil, ErrCorruptMeta
	}

	return metas, nil
}

// metaFingerprint computes the fixed-seed checksum covering the
// ordered BlockMeta sequence, re-encoding each record (minus the
// trailing checksum) in order.
func metaFingerprint(metas []BlockMeta) uint64 {
	d := fingerprintDigest()
	for _, m := range metas {
		var hdr [6]byte
		binary.BigEndian.PutUint32(hdr[:4], m.Offset)
		binary.BigEndian.PutUint16(hdr[4:], uint16(len(m.FirstKey)))
		d.Write(hdr[:])
		d.Write(m.FirstKey)
	}
	return d.Sum64()
}
