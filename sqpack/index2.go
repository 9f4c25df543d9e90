package sqpack

import (
	"fmt"
	"io"
	"os"

	sqbin "github.com/sqpack-tools/sqex/internal/binary"
	"github.com/sqpack-tools/sqex/sqerr"
)

// entrySize is the on-disk size of one Index2Entry: hash:u32 + packed:u32.
const entrySize = 8

// Index2Entry locates one file's content within a data file: which
// .datN file (DataFileID) and what byte offset into it (OffsetBytes).
type Index2Entry struct {
	Hash        uint32
	DataFileID  uint8
	OffsetBytes uint64
}

// readIndex2Entry reads one packed entry, unpacking the LSB-first bit
// fields: bit 0 is reserved, bits [1:4) are the data file id, and bits
// [4:32) are the upper 28 bits of the byte offset (the low 7 bits are
// always zero, since offsets are 128-byte aligned).
func readIndex2Entry(r io.Reader) (Index2Entry, error) {
	hash, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return Index2Entry{}, sqerr.Io("reading index2 entry hash", err)
	}
	packed, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return Index2Entry{}, sqerr.Io("reading index2 entry packed fields", err)
	}

	dataFileID := uint8((packed >> 1) & 0x7) //nolint:gosec // 3-bit field fits uint8
	offsetHigh28 := packed >> 4
	offsetBytes := uint64(offsetHigh28) << 7

	return Index2Entry{Hash: hash, DataFileID: dataFileID, OffsetBytes: offsetBytes}, nil
}

// IndexStore holds the parsed entry table of one .win32.index2 file.
type IndexStore struct {
	indexPath string
	entries   map[uint32]Index2Entry
}

// LoadIndexStore parses the pack header, index header, and entry table at
// indexPath.
func LoadIndexStore(indexPath string) (*IndexStore, error) {
	f, err := os.Open(indexPath) //nolint:gosec // index path is derived from the caller's repository root, not untrusted input
	if err != nil {
		return nil, sqerr.Io(fmt.Sprintf("opening index file %q", indexPath), err)
	}
	defer func() { _ = f.Close() }()

	if _, err := ReadPackHeader(f); err != nil {
		return nil, err
	}
	indexHeader, err := ReadIndexHeader(f)
	if err != nil {
		return nil, err
	}

	if _, err := f.Seek(int64(indexHeader.IndexDataOffset), io.SeekStart); err != nil {
		return nil, sqerr.Io("seeking to index data table", err)
	}

	count := indexHeader.IndexDataSize / entrySize
	entries := make(map[uint32]Index2Entry, count)
	for i := uint32(0); i < count; i++ {
		entry, err := readIndex2Entry(f)
		if err != nil {
			return nil, err
		}
		entries[entry.Hash] = entry
	}

	return &IndexStore{indexPath: indexPath, entries: entries}, nil
}

// Get looks up the entry for hash, returning *sqerr.MissingEntryError if
// absent.
func (s *IndexStore) Get(hash uint32) (Index2Entry, error) {
	entry, ok := s.entries[hash]
	if !ok {
		return Index2Entry{}, &sqerr.MissingEntryError{
			Path:      fmt.Sprintf("hash %#08x", hash),
			IndexPath: s.indexPath,
		}
	}
	return entry, nil
}

// Len returns the number of entries in the store.
func (s *IndexStore) Len() int {
	return len(s.entries)
}

// Entries returns every entry in the store, in arbitrary order.
func (s *IndexStore) Entries() []Index2Entry {
	entries := make([]Index2Entry, 0, len(s.entries))
	for _, entry := range s.entries {
		entries = append(entries, entry)
	}
	return entries
}

// IndexPath returns the path this store was loaded from.
func (s *IndexStore) IndexPath() string {
	return s.indexPath
}
