package sqpack

import (
	"fmt"
	"io"

	sqbin "github.com/sqpack-tools/sqex/internal/binary"
	"github.com/sqpack-tools/sqex/sqerr"
)

// IndexHeader describes where the index2 entry table lives within the
// file, following immediately after a PackHeader.
type IndexHeader struct {
	Size            uint32
	IndexType       uint32
	IndexDataOffset uint32
	IndexDataSize   uint32
}

// ReadIndexHeader reads and validates an IndexHeader from r, including
// skipping the padding out to h.Size.
func ReadIndexHeader(r io.Reader) (IndexHeader, error) {
	var h IndexHeader
	fields := []*uint32{&h.Size, &h.IndexType, &h.IndexDataOffset, &h.IndexDataSize}
	for _, f := range fields {
		v, err := sqbin.ReadUint32LE(r)
		if err != nil {
			return IndexHeader{}, sqerr.Io("reading index header field", err)
		}
		*f = v
	}

	if h.IndexType != 1 {
		return IndexHeader{}, &sqerr.InvalidFormatError{
			What:   "index header",
			Reason: fmt.Sprintf("index_type %d, want 1", h.IndexType),
		}
	}

	const headerSize = 4 + 4 + 4 + 4
	if h.Size < headerSize {
		return IndexHeader{}, &sqerr.InvalidFormatError{
			What:   "index header",
			Reason: fmt.Sprintf("size %d smaller than fixed header %d", h.Size, headerSize),
		}
	}
	if err := sqbin.SkipBytes(r, int(h.Size-headerSize)); err != nil {
		return IndexHeader{}, sqerr.Io("skipping index header padding", err)
	}

	return h, nil
}
