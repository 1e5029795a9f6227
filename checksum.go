package lsm

import (
	"encoding/binary"

	"github.com/cespare/xxhash/v2"
)

// fingerprint computes the fixed-seed 64-bit checksum used for Block and
// BlockMeta integrity (spec: a stable hash with a fixed seed, not a
// process-local default hash — see the "Hash choice" note). Every
// argument is written to the digest in order, so callers control what's
// covered by passing the logical parts in the order the format defines.
func fingerprint(parts ...[]byte) uint64 {
	d := xxhash.New()
	for _, p := range parts {
		d.Write(p)
	}
	return d.Sum64()
}

// fingerprintDigest opens a streaming xxhash digest for callers, like
// metaFingerprint, that need to cover a sequence of heterogeneous
// records rather than a flat list of byte slices.
func fingerprintDigest() *xxhash.Digest {
	return xxhash.New()
}

// encodeOffsets renders a block's offset vector as the big-endian u16
// sequence that both the on-disk format and the checksum cover.
func encodeOffsets(offsets []uint16) []byte {
	buf := make([]byte, len(offsets)*2)
	for i, off := range offsets {
		binary.BigEndian.PutUint16(buf[i*2:], off)
	}
	return buf
}
