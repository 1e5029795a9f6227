package lsm

import (
	"io"
	"os"

	"github.com/pkg/errors"
)

// FileReader abstracts random-access reads over an SST's backing
// storage: read by (offset, length), plus a size query. Reads are
// assumed atomic with respect to the returned byte sequence.
type FileReader interface {
	ReadAt(offset, length uint32) ([]byte, error)
	Size() uint32
}

// osFile is a FileReader backed by a real file on disk.
type osFile struct {
	f    *os.File
	size uint32
}

// OpenOSFile opens path as a FileReader backed by a real file on disk,
// for callers building an SsTable from a file written by BuildToFile.
func OpenOSFile(path string) (FileReader, error) {
	return openOSFile(path)
}

// openOSFile opens path for random-access reads.
func openOSFile(path string) (*osFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(ErrPropagatedIO, "open sstable file: %v", err)
	}
	info, err := f.Stat()
	if err != nil {
		f.Close()
		return nil, errors.Wrapf(ErrPropagatedIO, "stat sstable file: %v", err)
	}
	return &osFile{f: f, size: uint32(info.Size())}, nil
}

// createOSFile writes data to path and reopens it for reading.
func createOSFile(path string, data []byte) (*osFile, error) {
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return nil, errors.Wrapf(ErrPropagatedIO, "write sstable file: %v", err)
	}
	return openOSFile(path)
}

func (f *osFile) ReadAt(offset, length uint32) ([]byte, error) {
	buf := make([]byte, length)
	n, err := f.f.ReadAt(buf, int64(offset))
	if err != nil && err != io.EOF {
		return nil, errors.Wrapf(ErrPropagatedIO, "read sstable file: %v", err)
	}
	if uint32(n) < length {
		return nil, ErrShortRead
	}
	return buf, nil
}

func (f *osFile) Size() uint32 { return f.size }

// Close releases the underlying file handle.
func (f *osFile) Close() error {
	return f.f.Close()
}

// byteFile is an in-memory FileReader, the Go analogue of the Rust
// original's Bytes-backed FileObject used throughout the chapters this
// core covers. Useful for tests and for callers that want an SST image
// without touching disk.
type byteFile struct {
	data []byte
}

func newByteFile(data []byte) *byteFile {
	return &byteFile{data: data}
}

func (f *byteFile) ReadAt(offset, length uint32) ([]byte, error) {
	end := uint64(offset) + uint64(length)
	if end > uint64(len(f.data)) {
		return nil, ErrShortRead
	}
	out := make([]byte, length)
	copy(out, f.data[offset:end])
	return out, nil
}

func (f *byteFile) Size() uint32 { return uint32(len(f.data)) }
