package sqpack

import (
	"fmt"
	"io"

	sqbin "github.com/sqpack-tools/sqex/internal/binary"
	"github.com/sqpack-tools/sqex/sqerr"
)

// ContentType identifies the kind of payload an entry's blocks decode to.
// Only Binary is implemented; the others are recognized so a caller gets
// a clear error rather than silently misreading the block table.
type ContentType uint32

// Content type values, pinned from the on-disk enum.
const (
	ContentEmpty   ContentType = 1
	ContentBinary  ContentType = 2
	ContentModel   ContentType = 3
	ContentTexture ContentType = 4
)

// BlockDescriptor locates one compressed block within an entry's content,
// relative to EntryHeader.ContentBase.
type BlockDescriptor struct {
	Offset           uint32
	BlockSize        uint16
	DecompressedSize uint16
}

// EntryHeader is the block-table header at the start of an entry's data.
type EntryHeader struct {
	HeaderSize       uint32
	ContentType      ContentType
	UncompressedSize uint32
	Unknown          uint32
	BlockSize        uint32
	NumBlocks        uint32
	Blocks           []BlockDescriptor

	// ContentBase is entryStart + HeaderSize: block offsets are relative
	// to this position in the data file, not to the entry start.
	ContentBase int64
}

// ReadEntryHeader reads an EntryHeader from r, which must be positioned at
// entryStart. Only ContentBinary is supported; any other content type
// yields *sqerr.UnsupportedContentTypeError.
func ReadEntryHeader(r io.Reader, entryStart int64) (*EntryHeader, error) {
	var h EntryHeader

	headerSize, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return nil, sqerr.Io("reading entry header size", err)
	}
	h.HeaderSize = headerSize

	contentType, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return nil, sqerr.Io("reading entry content type", err)
	}
	h.ContentType = ContentType(contentType)
	if h.ContentType != ContentBinary {
		return nil, &sqerr.UnsupportedContentTypeError{ContentType: contentType}
	}

	fields := []*uint32{&h.UncompressedSize, &h.Unknown, &h.BlockSize, &h.NumBlocks}
	for _, f := range fields {
		v, err := sqbin.ReadUint32LE(r)
		if err != nil {
			return nil, sqerr.Io("reading entry header field", err)
		}
		*f = v
	}

	h.Blocks = make([]BlockDescriptor, h.NumBlocks)
	for i := range h.Blocks {
		offset, err := sqbin.ReadUint32LE(r)
		if err != nil {
			return nil, sqerr.Io("reading block descriptor offset", err)
		}
		blockSize, err := sqbin.ReadUint16LE(r)
		if err != nil {
			return nil, sqerr.Io("reading block descriptor size", err)
		}
		decompressedSize, err := sqbin.ReadUint16LE(r)
		if err != nil {
			return nil, sqerr.Io("reading block descriptor decompressed size", err)
		}
		h.Blocks[i] = BlockDescriptor{Offset: offset, BlockSize: blockSize, DecompressedSize: decompressedSize}
	}

	h.ContentBase = entryStart + int64(h.HeaderSize)
	return &h, nil
}

// blockHeaderSize is the fixed on-disk size of a DataBlockHeader.
const blockHeaderSize = 4 + 4 + 4 + 4

// knownHeaderSize is the only valid value for DataBlockHeader.HeaderSize.
const knownHeaderSize = 0x10

// notCompressedSentinel is the CompressedLength value meaning "this block
// is stored raw, read DecompressedLength bytes".
const notCompressedSentinel = 32000

// blockPadding is the alignment a compressed block's physical footprint
// (header + body) is padded to.
const blockPadding = 0x80

// dataBlockHeader is the small per-block header preceding each block's
// payload.
type dataBlockHeader struct {
	compressedLength   uint32
	decompressedLength uint32
}

func readDataBlockHeader(r io.Reader) (dataBlockHeader, error) {
	headerSize, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return dataBlockHeader{}, sqerr.Io("reading block header size", err)
	}
	if headerSize != knownHeaderSize {
		return dataBlockHeader{}, &sqerr.InvalidFormatError{
			What:   "data block header",
			Reason: fmt.Sprintf("header_size %#x, want %#x", headerSize, knownHeaderSize),
		}
	}
	if err := sqbin.SkipBytes(r, 4); err != nil {
		return dataBlockHeader{}, sqerr.Io("skipping block header reserved field", err)
	}
	compressedLength, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return dataBlockHeader{}, sqerr.Io("reading block compressed length", err)
	}
	decompressedLength, err := sqbin.ReadUint32LE(r)
	if err != nil {
		return dataBlockHeader{}, sqerr.Io("reading block decompressed length", err)
	}
	return dataBlockHeader{compressedLength: compressedLength, decompressedLength: decompressedLength}, nil
}

// isCompressed reports whether the block body is deflate-compressed.
func (h dataBlockHeader) isCompressed() bool {
	return h.compressedLength < notCompressedSentinel
}

// sourceSize is the number of bytes making up the block's body on disk.
func (h dataBlockHeader) sourceSize() uint32 {
	if !h.isCompressed() {
		return h.decompressedLength
	}
	padded := h.compressedLength + knownHeaderSize
	if rem := padded % blockPadding; rem != 0 {
		return h.compressedLength + (blockPadding - rem)
	}
	return h.compressedLength
}
