package sqpack

import (
	"fmt"
	"io"

	"github.com/sqpack-tools/sqex/blockcodec"
	"github.com/sqpack-tools/sqex/sqerr"
)

// BlockReader exposes an entry's block-compressed content as a single
// sequential byte stream, decompressing blocks on demand and reusing one
// internal buffer sized to the largest block seen so far.
type BlockReader struct {
	data        io.ReadSeeker
	contentBase int64
	blocks      []BlockDescriptor
	nextBlock   int

	buf    []byte
	bufPos int
	bufLen int
}

// NewBlockReader returns a BlockReader over data's entry content, as
// described by header. data must already support seeking to arbitrary
// block offsets relative to header.ContentBase.
func NewBlockReader(data io.ReadSeeker, header *EntryHeader) *BlockReader {
	return &BlockReader{
		data:        data,
		contentBase: header.ContentBase,
		blocks:      header.Blocks,
	}
}

// Read implements io.Reader.
func (b *BlockReader) Read(p []byte) (int, error) {
	if b.bufPos >= b.bufLen {
		if err := b.fillNextBlock(); err != nil {
			return 0, err
		}
	}

	n := copy(p, b.buf[b.bufPos:b.bufLen])
	b.bufPos += n
	return n, nil
}

func (b *BlockReader) fillNextBlock() error {
	if b.nextBlock >= len(b.blocks) {
		return io.EOF
	}
	block := b.blocks[b.nextBlock]
	b.nextBlock++

	if _, err := b.data.Seek(b.contentBase+int64(block.Offset), io.SeekStart); err != nil {
		return sqerr.Io("seeking to block", err)
	}

	header, err := readDataBlockHeader(b.data)
	if err != nil {
		return err
	}
	if header.decompressedLength != uint32(block.DecompressedSize) {
		return &sqerr.InvalidFormatError{
			What: "data block header",
			Reason: fmt.Sprintf("decompressed_length %d disagrees with block descriptor %d",
				header.decompressedLength, block.DecompressedSize),
		}
	}

	sourceSize := int(header.sourceSize())
	src := make([]byte, sourceSize)
	if _, err := io.ReadFull(b.data, src); err != nil {
		return sqerr.Io("reading block body", err)
	}

	decompressedLength := int(header.decompressedLength)
	if cap(b.buf) < decompressedLength {
		b.buf = make([]byte, decompressedLength)
	}
	b.buf = b.buf[:decompressedLength]

	tag := blockcodec.TagDeflate
	if !header.isCompressed() {
		tag = blockcodec.TagNone
	}
	codec, err := blockcodec.Get(tag)
	if err != nil {
		return err
	}
	n, err := codec.Decompress(b.buf, src, decompressedLength)
	if err != nil {
		return err
	}

	b.bufPos = 0
	b.bufLen = n
	return nil
}
