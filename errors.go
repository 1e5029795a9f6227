package lsm

import (
	"errors"
	"fmt"
)

var (
	// ErrCorruptBlock is returned when a block's checksum does not match its
	// decoded (data, offsets), its declared entry count disagrees with the
	// byte length, or an entry's lengths run past the data section.
	ErrCorruptBlock = errors.New("lsm: corrupt block")

	// ErrCorruptMeta is returned when an SST's meta-section checksum does not
	// match its decoded BlockMeta sequence, or its meta_offset falls outside
	// the file.
	ErrCorruptMeta = errors.New("lsm: corrupt sstable meta section")

	// ErrShortRead is returned when a FileReader returns fewer bytes than
	// requested.
	ErrShortRead = errors.New("lsm: short read")

	// ErrPropagatedIO is wrapped around any underlying os package failure
	// (open, stat, read, write) a FileReader implementation surfaces, so
	// callers can distinguish "the disk failed" from a corruption error.
	ErrPropagatedIO = errors.New("lsm: propagated I/O error")
)

// invariantViolated reports a programmer error: an empty key passed to
// BlockBuilder.Add, Build called on an empty BlockBuilder, out-of-order
// keys fed to SsTableBuilder.Add, an entry that does not fit a fresh
// block, an out-of-range SsTable.ReadBlock index, or a meta section
// whose encoded length differs from its estimate. These are fatal and
// are not expected in production, so they panic rather than return an
// error a caller could mistakenly ignore. Calling Next on an invalid
// iterator is not checked and does not panic.
func invariantViolated(format string, args ...any) {
	panic(fmt.Sprintf("lsm: invariant violated: "+format, args...))
}
