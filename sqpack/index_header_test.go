package sqpack

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func buildIndexHeaderBytes(size, indexType, dataOffset, dataSize uint32) []byte {
	buf := make([]byte, size)
	binary.LittleEndian.PutUint32(buf[0:], size)
	binary.LittleEndian.PutUint32(buf[4:], indexType)
	binary.LittleEndian.PutUint32(buf[8:], dataOffset)
	binary.LittleEndian.PutUint32(buf[12:], dataSize)
	return buf
}

func TestReadIndexHeader(t *testing.T) {
	t.Parallel()

	data := buildIndexHeaderBytes(2048, 1, 4096, 800)
	h, err := ReadIndexHeader(bytes.NewReader(data))
	if err != nil {
		t.Fatalf("ReadIndexHeader() error = %v", err)
	}
	if h.Size != 2048 || h.IndexDataOffset != 4096 || h.IndexDataSize != 800 {
		t.Errorf("ReadIndexHeader() = %+v, unexpected fields", h)
	}
}

func TestReadIndexHeaderWrongType(t *testing.T) {
	t.Parallel()

	data := buildIndexHeaderBytes(2048, 2, 4096, 800)
	if _, err := ReadIndexHeader(bytes.NewReader(data)); err == nil {
		t.Fatal("expected error for index_type != 1")
	}
}
